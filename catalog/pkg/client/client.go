// Package client reads catalog entries from the catalog service and keeps
// them in process until they expire or a change notification invalidates
// them.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Alturino/journey/catalog/pkg/response"
	"github.com/Alturino/journey/catalog/pkg/subscription"
	"github.com/Alturino/journey/internal/constants"
	inErrors "github.com/Alturino/journey/internal/errors"
	"github.com/Alturino/journey/internal/log"
)

type entryKey struct {
	kind subscription.Kind
	id   uuid.UUID
}

type entry struct {
	value     interface{}
	expiresAt time.Time
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	ttl        time.Duration
	now        func() time.Time

	mu      sync.Mutex
	entries map[entryKey]entry
}

func New(baseURL string, ttl time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   5 * time.Second,
		},
		ttl:     ttl,
		now:     time.Now,
		entries: map[entryKey]entry{},
	}
}

func (cl *Client) FindExperienceById(c context.Context, id uuid.UUID) (response.Experience, error) {
	return fetch[response.Experience](c, cl, subscription.KindExperience, id, "/experiences/", "experience")
}

func (cl *Client) FindAccommodationById(c context.Context, id uuid.UUID) (response.Accommodation, error) {
	return fetch[response.Accommodation](c, cl, subscription.KindAccommodation, id, "/accommodations/", "accommodation")
}

func (cl *Client) FindMenuItemById(c context.Context, id uuid.UUID) (response.MenuItem, error) {
	return fetch[response.MenuItem](c, cl, subscription.KindMenuItem, id, "/menu-items/", "menuItem")
}

func (cl *Client) Invalidate(kind subscription.Kind, id uuid.UUID) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	delete(cl.entries, entryKey{kind: kind, id: id})
}

// Watch invalidates cached entries for every change received until changes
// is closed or c is done.
func (cl *Client) Watch(c context.Context, changes <-chan subscription.Change) {
	logger := zerolog.Ctx(c).With().Str(constants.KEY_TAG, "Client Watch").Logger()
	for {
		select {
		case <-c.Done():
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			cl.Invalidate(change.Kind, change.ID)
			logger.Debug().Any(constants.KEY_CATALOG_CHANGE, change).Msg("invalidated catalog entry")
		}
	}
}

func (cl *Client) lookup(key entryKey) (interface{}, bool) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	e, ok := cl.entries[key]
	if !ok {
		return nil, false
	}
	if cl.now().After(e.expiresAt) {
		delete(cl.entries, key)
		return nil, false
	}
	return e.value, true
}

func (cl *Client) store(key entryKey, value interface{}) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	cl.entries[key] = entry{value: value, expiresAt: cl.now().Add(cl.ttl)}
}

type envelope struct {
	StatusCode int                        `json:"statusCode"`
	Message    string                     `json:"message"`
	Data       map[string]json.RawMessage `json:"data"`
}

func fetch[T any](
	c context.Context,
	cl *Client,
	kind subscription.Kind,
	id uuid.UUID,
	path string,
	field string,
) (T, error) {
	var value T
	key := entryKey{kind: kind, id: id}
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "Client fetch").
		Str(constants.KEY_CATALOG_KIND, string(kind)).
		Str(constants.KEY_ENTITY_ID, id.String()).
		Logger()

	if cached, ok := cl.lookup(key); ok {
		if value, ok := cached.(T); ok {
			logger.Trace().Msg("found catalog entry in memory")
			return value, nil
		}
	}

	url := cl.baseURL + path + id.String()
	req, err := http.NewRequestWithContext(c, http.MethodGet, url, nil)
	if err != nil {
		return value, fmt.Errorf("failed creating request with error=%w", err)
	}
	if requestID := log.RequestIDFromContext(c); requestID != "" {
		req.Header.Set(constants.HEADER_REQUEST_ID, requestID)
	}

	logger.Trace().Str(constants.KEY_REQUEST_URL, url).Msg("requesting catalog entry")
	res, err := cl.httpClient.Do(req)
	if err != nil {
		return value, fmt.Errorf("failed requesting %s with error=%w", url, err)
	}
	defer res.Body.Close()

	body := envelope{}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return value, fmt.Errorf("failed decoding %s response with error=%w", url, err)
	}
	switch {
	case res.StatusCode == http.StatusNotFound:
		return value, fmt.Errorf("%s id=%s: %s with error=%w", kind, id, body.Message, inErrors.ErrNotFound)
	case res.StatusCode != http.StatusOK:
		return value, fmt.Errorf("catalog responded status=%d message=%s", res.StatusCode, body.Message)
	}

	raw, ok := body.Data[field]
	if !ok {
		return value, fmt.Errorf("catalog response is missing field=%s", field)
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return value, fmt.Errorf("failed decoding %s with error=%w", field, err)
	}
	cl.store(key, value)
	logger.Debug().Msg("fetched catalog entry")
	return value, nil
}

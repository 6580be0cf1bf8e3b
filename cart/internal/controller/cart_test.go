package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/journey/cart/internal/service"
	"github.com/Alturino/journey/cart/internal/store"
	catalogRes "github.com/Alturino/journey/catalog/pkg/response"
	inErrors "github.com/Alturino/journey/internal/errors"
)

type fakeCatalog struct{}

var (
	palmHat = catalogRes.Experience{
		ID: uuid.New(), Name: "Palm Hat Workshop", IsPaid: true, Price: decimal.NewFromInt(300000), IsVisible: true,
		Slots: []catalogRes.Slot{{ID: uuid.New(), Date: "2024-03-20", StartTime: "10:00", EndTime: "12:00", Available: true}},
	}
	glass = catalogRes.Experience{
		ID: uuid.New(), Name: "Glass Blowing Experience", IsPaid: true, Price: decimal.NewFromInt(450000), IsVisible: true,
		Slots: []catalogRes.Slot{{ID: uuid.New(), Date: "2024-03-20", StartTime: "11:00", EndTime: "13:00", Available: true}},
	}
	villa = catalogRes.Accommodation{ID: uuid.New(), Name: "Villa A", PricePerNight: decimal.NewFromInt(500000)}
)

func (fakeCatalog) FindExperienceById(_ context.Context, id uuid.UUID) (catalogRes.Experience, error) {
	for _, e := range []catalogRes.Experience{palmHat, glass} {
		if e.ID == id {
			return e, nil
		}
	}
	return catalogRes.Experience{}, inErrors.ErrNotFound
}

func (fakeCatalog) FindAccommodationById(_ context.Context, id uuid.UUID) (catalogRes.Accommodation, error) {
	if id == villa.ID {
		return villa, nil
	}
	return catalogRes.Accommodation{}, inErrors.ErrNotFound
}

func (fakeCatalog) FindMenuItemById(context.Context, uuid.UUID) (catalogRes.MenuItem, error) {
	return catalogRes.MenuItem{}, inErrors.ErrNotFound
}

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

type harness struct {
	t         *testing.T
	router    *mux.Router
	sessionID uuid.UUID
}

func newHarness(t *testing.T) harness {
	svc, err := service.NewCartService(store.NewMemoryStore(time.Hour), fakeCatalog{})
	require.NoError(t, err)
	router := mux.NewRouter()
	AttachCartController(router, &svc)
	return harness{t: t, router: router, sessionID: uuid.New()}
}

func (h harness) do(method string, path string, body interface{}) (int, envelope) {
	h.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, httptest.NewRequest(method, "/carts/"+h.sessionID.String()+path, reader))
	res := envelope{}
	require.NoError(h.t, json.NewDecoder(rec.Body).Decode(&res))
	return rec.Code, res
}

func experienceBody(e catalogRes.Experience) map[string]interface{} {
	slot := e.Slots[0]
	return map[string]interface{}{
		"kind":         "experience",
		"entityId":     e.ID,
		"selectedSlot": map[string]string{"date": slot.Date, "startTime": slot.StartTime, "endTime": slot.EndTime},
	}
}

func TestCartRoutes(t *testing.T) {
	t.Run("given empty session should return empty cart", func(t *testing.T) {
		h := newHarness(t)
		code, res := h.do(http.MethodGet, "", nil)
		assert.Equal(t, http.StatusOK, code)
		assert.JSONEq(t, `{"cart":{"sessionId":"`+h.sessionID.String()+`","items":[],"itemCount":0,"total":"0"}}`, string(res.Data))
	})

	t.Run("given conflicting experience should respond 409 with message", func(t *testing.T) {
		h := newHarness(t)
		code, _ := h.do(http.MethodPost, "/items", experienceBody(palmHat))
		require.Equal(t, http.StatusOK, code)

		code, res := h.do(http.MethodPost, "/items", experienceBody(glass))

		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, `This time slot conflicts with "Palm Hat Workshop" in your journey`, res.Message)
	})

	t.Run("given candidate slot should report conflict", func(t *testing.T) {
		h := newHarness(t)
		_, _ = h.do(http.MethodPost, "/items", experienceBody(palmHat))

		code, res := h.do(http.MethodPost, "/conflicts", map[string]interface{}{
			"slot": map[string]string{"date": "2024-03-20", "startTime": "11:00", "endTime": "11:30"},
		})

		assert.Equal(t, http.StatusOK, code)
		body := struct {
			Conflict struct {
				HasConflict bool   `json:"hasConflict"`
				ItemName    string `json:"itemName"`
			} `json:"conflict"`
		}{}
		require.NoError(t, json.Unmarshal(res.Data, &body))
		assert.True(t, body.Conflict.HasConflict)
		assert.Equal(t, "Palm Hat Workshop", body.Conflict.ItemName)
	})

	t.Run("given free slot should omit conflicting item", func(t *testing.T) {
		h := newHarness(t)
		_, _ = h.do(http.MethodPost, "/items", experienceBody(palmHat))

		code, res := h.do(http.MethodPost, "/conflicts", map[string]interface{}{
			"slot": map[string]string{"date": "2024-03-20", "startTime": "12:00", "endTime": "13:00"},
		})

		assert.Equal(t, http.StatusOK, code)
		body := struct {
			Conflict map[string]json.RawMessage `json:"conflict"`
		}{}
		require.NoError(t, json.Unmarshal(res.Data, &body))
		assert.Equal(t, json.RawMessage("false"), body.Conflict["hasConflict"])
		assert.NotContains(t, body.Conflict, "itemId")
		assert.NotContains(t, body.Conflict, "itemName")
	})

	t.Run("given stay then removal by name should empty cart", func(t *testing.T) {
		h := newHarness(t)
		code, _ := h.do(http.MethodPost, "/items", map[string]interface{}{
			"kind":          "accommodation",
			"entityId":      villa.ID,
			"selectedDates": map[string]string{"checkIn": "2024-03-20T14:00:00Z", "checkOut": "2024-03-23T12:00:00Z"},
		})
		require.Equal(t, http.StatusOK, code)

		code, _ = h.do(http.MethodDelete, "/items?"+url.Values{"name": {"Villa A"}}.Encode(), nil)
		assert.Equal(t, http.StatusOK, code)

		_, res := h.do(http.MethodGet, "", nil)
		assert.Contains(t, string(res.Data), `"itemCount":0`)
	})

	t.Run("given item id should remove that item", func(t *testing.T) {
		h := newHarness(t)
		_, res := h.do(http.MethodPost, "/items", experienceBody(palmHat))
		body := struct {
			Result struct {
				ItemID string `json:"itemId"`
			} `json:"result"`
		}{}
		require.NoError(t, json.Unmarshal(res.Data, &body))

		code, res := h.do(http.MethodDelete, "/items/"+body.Result.ItemID, nil)

		assert.Equal(t, http.StatusOK, code)
		assert.Contains(t, string(res.Data), `"removed":1`)
	})

	badRequests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{name: "given unknown kind should be bad request", method: http.MethodPost, path: "/items", body: map[string]interface{}{"kind": "flight", "entityId": uuid.New()}, status: http.StatusBadRequest},
		{name: "given food without order details should be bad request", method: http.MethodPost, path: "/items", body: map[string]interface{}{"kind": "food", "entityId": uuid.New()}, status: http.StatusBadRequest},
		{name: "given unknown entity should be not found", method: http.MethodPost, path: "/items", body: map[string]interface{}{"kind": "food", "entityId": uuid.New(), "orderDetails": map[string]string{"deliveryOption": "takeaway"}}, status: http.StatusNotFound},
		{name: "given reversed stay should be bad request", method: http.MethodPost, path: "/items", body: map[string]interface{}{"kind": "accommodation", "entityId": villa.ID, "selectedDates": map[string]string{"checkIn": "2024-03-23T00:00:00Z", "checkOut": "2024-03-20T00:00:00Z"}}, status: http.StatusBadRequest},
		{name: "given malformed item id should be bad request", method: http.MethodDelete, path: "/items/not-a-uuid", status: http.StatusBadRequest},
	}
	for _, test := range badRequests {
		t.Run(test.name, func(t *testing.T) {
			h := newHarness(t)
			code, res := h.do(test.method, test.path, test.body)
			assert.Equal(t, test.status, code)
			assert.Equal(t, "failed", res.Status)
		})
	}

	t.Run("given malformed session id should be bad request", func(t *testing.T) {
		h := newHarness(t)
		rec := httptest.NewRecorder()
		h.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/carts/abc", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

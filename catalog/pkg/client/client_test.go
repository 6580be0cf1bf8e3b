package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/journey/catalog/pkg/response"
	"github.com/Alturino/journey/catalog/pkg/subscription"
	inErrors "github.com/Alturino/journey/internal/errors"
)

func newCatalogServer(t *testing.T, menuItem response.MenuItem, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path != "/menu-items/"+menuItem.ID.String() {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{"status": "failed", "statusCode": http.StatusNotFound, "message": "resource not found"})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":     "success",
			"statusCode": http.StatusOK,
			"data":       map[string]interface{}{"menuItem": menuItem},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClientFindMenuItemById(t *testing.T) {
	menuItem := response.MenuItem{ID: uuid.New(), Name: "Nasi Goreng", Venue: "Pasar Nusantara", Price: decimal.NewFromInt(65000), IsAvailable: true}

	t.Run("given repeated lookups should hit the catalog once", func(t *testing.T) {
		hits := &atomic.Int32{}
		cl := New(newCatalogServer(t, menuItem, hits).URL, time.Minute)

		for range 3 {
			found, err := cl.FindMenuItemById(context.Background(), menuItem.ID)
			require.NoError(t, err)
			assert.Equal(t, menuItem.Name, found.Name)
			assert.True(t, menuItem.Price.Equal(found.Price))
		}
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("given invalidation should fetch again", func(t *testing.T) {
		hits := &atomic.Int32{}
		cl := New(newCatalogServer(t, menuItem, hits).URL, time.Minute)

		_, err := cl.FindMenuItemById(context.Background(), menuItem.ID)
		require.NoError(t, err)
		cl.Invalidate(subscription.KindMenuItem, menuItem.ID)
		_, err = cl.FindMenuItemById(context.Background(), menuItem.ID)
		require.NoError(t, err)

		assert.Equal(t, int32(2), hits.Load())
	})

	t.Run("given expired entry should fetch again", func(t *testing.T) {
		hits := &atomic.Int32{}
		cl := New(newCatalogServer(t, menuItem, hits).URL, time.Minute)
		now := time.Now()
		cl.now = func() time.Time { return now }

		_, err := cl.FindMenuItemById(context.Background(), menuItem.ID)
		require.NoError(t, err)
		now = now.Add(2 * time.Minute)
		_, err = cl.FindMenuItemById(context.Background(), menuItem.ID)
		require.NoError(t, err)

		assert.Equal(t, int32(2), hits.Load())
	})

	t.Run("given unknown id should fail with not found", func(t *testing.T) {
		hits := &atomic.Int32{}
		cl := New(newCatalogServer(t, menuItem, hits).URL, time.Minute)

		_, err := cl.FindMenuItemById(context.Background(), uuid.New())

		assert.True(t, errors.Is(err, inErrors.ErrNotFound), "got %v", err)
	})
}

func TestClientWatch(t *testing.T) {
	menuItem := response.MenuItem{ID: uuid.New(), Name: "Es Teh", Price: decimal.NewFromInt(10000), IsAvailable: true}
	hits := &atomic.Int32{}
	cl := New(newCatalogServer(t, menuItem, hits).URL, time.Minute)
	_, err := cl.FindMenuItemById(context.Background(), menuItem.ID)
	require.NoError(t, err)

	changes := make(chan subscription.Change)
	done := make(chan struct{})
	go func() {
		cl.Watch(context.Background(), changes)
		close(done)
	}()
	changes <- subscription.Change{Kind: subscription.KindMenuItem, ID: menuItem.ID, Op: subscription.OpUpsert}
	close(changes)
	<-done

	_, cached := cl.lookup(entryKey{kind: subscription.KindMenuItem, id: menuItem.ID})
	assert.False(t, cached)
}

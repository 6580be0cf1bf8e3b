package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Alturino/journey/cart/pkg/journey"
)

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryStore keeps encoded carts in process. It serves single instance
// deployments and tests.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[uuid.UUID]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, entries: map[uuid.UUID]memoryEntry{}}
}

func (s *MemoryStore) loadLocked(sessionID uuid.UUID) (*journey.Cart, error) {
	cart := journey.NewCart()
	entry, ok := s.entries[sessionID]
	if !ok {
		return cart, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, sessionID)
		return cart, nil
	}
	if err := json.Unmarshal(entry.payload, cart); err != nil {
		return nil, fmt.Errorf("failed decoding cart with error=%w", err)
	}
	return cart, nil
}

func (s *MemoryStore) Load(_ context.Context, sessionID uuid.UUID) (*journey.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(sessionID)
}

func (s *MemoryStore) Update(
	_ context.Context,
	sessionID uuid.UUID,
	fn func(*journey.Cart) error,
) (*journey.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.loadLocked(sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(cart); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(cart)
	if err != nil {
		return nil, fmt.Errorf("failed encoding cart with error=%w", err)
	}
	s.entries[sessionID] = memoryEntry{payload: payload, expiresAt: s.now().Add(s.ttl)}
	return cart, nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}

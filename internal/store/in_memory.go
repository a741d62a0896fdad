package store

import (
	"context"
	"sync"

	"github.com/orderhub/orderhub/internal/order"
)

// inMemory implements OrderStore using an append-only slice.
type inMemory struct {
	mu      sync.RWMutex
	records []order.Record
}

// NewInMemoryStore creates a new instance of OrderStore.
func NewInMemoryStore() OrderStore {
	return &inMemory{}
}

// Append adds a record to the store.
func (s *inMemory) Append(_ context.Context, rec order.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, rec)
	return nil
}

// Snapshot returns a copy of all records in insertion order.
func (s *inMemory) Snapshot(_ context.Context) ([]order.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]order.Record, len(s.records))
	copy(list, s.records)
	return list, nil
}

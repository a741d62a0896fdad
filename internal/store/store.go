// Package store provides an interface for order storage operations.
package store

import (
	"context"

	"github.com/orderhub/orderhub/internal/order"
)

// OrderStore is an append-only collection of order records.
// It abstracts the underlying data store, allowing for different implementations.
type OrderStore interface {
	// Append adds a record to the store. Records are never mutated or
	// removed afterwards. Safe for concurrent use.
	Append(ctx context.Context, rec order.Record) error

	// Snapshot returns a copy of all stored records in insertion order.
	// Safe for concurrent use and does not block future appends.
	Snapshot(ctx context.Context) ([]order.Record, error)
}

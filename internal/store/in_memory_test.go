package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderhub/orderhub/internal/order"
)

func testRecord(id string) order.Record {
	return order.Record{
		OrderID:   id,
		CreatedAt: time.Now().UTC(),
		Items:     []order.Item{{ProductID: 1, Name: "widget", Quantity: 1, UnitPrice: decimal.NewFromInt(10)}},
		Subtotal:  decimal.NewFromInt(10),
		Total:     decimal.NewFromInt(11),
		Currency:  "USD",
		Payment:   order.PaymentOutcome{Success: true, TransactionID: "MOCK-x"},
		Customer:  order.Customer{Email: "a@b.c"},
		Country:   "US",
	}
}

func Test_InMemory_AppendAndSnapshot(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap)

	require.NoError(t, s.Append(ctx, testRecord("a")))
	require.NoError(t, s.Append(ctx, testRecord("b")))
	require.NoError(t, s.Append(ctx, testRecord("c")))

	snap, err = s.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap, 3)
	assert.Equal(t, "a", snap[0].OrderID)
	assert.Equal(t, "b", snap[1].OrderID)
	assert.Equal(t, "c", snap[2].OrderID)
}

func Test_InMemory_SnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	require.NoError(t, s.Append(ctx, testRecord("a")))

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	snap[0].OrderID = "mutated"

	again, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", again[0].OrderID)
}

func Test_InMemory_ConcurrentAppends(t *testing.T) {
	const writers = 20
	const perWriter = 50

	ctx := context.Background()
	s := NewInMemoryStore()

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_ = s.Append(ctx, testRecord(fmt.Sprintf("%d-%d", w, i)))
			}
		}(w)
	}
	wg.Wait()

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap, writers*perWriter)

	seen := make(map[string]bool, len(snap))
	for _, rec := range snap {
		assert.False(t, seen[rec.OrderID], "duplicate record %s", rec.OrderID)
		seen[rec.OrderID] = true
	}
}

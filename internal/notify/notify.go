// Package notify delivers order notifications across independent channels.
// Delivery is best effort: a failing channel is logged as a warning and
// never affects sibling channels or the order itself.
package notify

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/orderhub/orderhub/internal/audit"
	"github.com/orderhub/orderhub/internal/order"
)

// Notifier is a single delivery channel.
type Notifier interface {
	// Channel is the lower-case name the channel is requested by.
	Channel() string

	// Ready reports whether the record carries the contact information
	// the channel needs. A channel that is not ready is silently skipped.
	Ready(rec *order.Record) bool

	// Notify attempts delivery for the record.
	Notify(ctx context.Context, rec *order.Record) error
}

// Fanout dispatches a notification to every requested channel.
type Fanout struct {
	channels map[string]Notifier
	auditLog *audit.Logger
	logger   *slog.Logger
}

// NewFanout creates a Fanout over the given notifiers.
func NewFanout(auditLog *audit.Logger, logger *slog.Logger, notifiers ...Notifier) *Fanout {
	channels := make(map[string]Notifier, len(notifiers))
	for _, n := range notifiers {
		channels[n.Channel()] = n
	}
	return &Fanout{
		channels: channels,
		auditLog: auditLog,
		logger:   logger.With("component", "notify"),
	}
}

// Send attempts delivery on each requested channel and returns once every
// attempt has finished. Channel names are case-insensitive; unknown names
// are ignored. Failures and panics are confined to their channel and
// recorded as audit warnings.
func (f *Fanout) Send(ctx context.Context, rec *order.Record, requested []string) {
	var wg sync.WaitGroup
	for _, name := range requested {
		name := strings.ToLower(strings.TrimSpace(name))
		n, ok := f.channels[name]
		if !ok {
			f.logger.DebugContext(ctx, "Ignoring unknown notification channel", "channel", name, "order_id", rec.OrderID)
			continue
		}
		if !n.Ready(rec) {
			f.logger.DebugContext(ctx, "Skipping channel without contact info", "channel", name, "order_id", rec.OrderID)
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.attempt(ctx, n, name, rec)
		}()
	}
	wg.Wait()
}

// attempt runs one channel send inside its own failure boundary.
func (f *Fanout) attempt(ctx context.Context, n Notifier, name string, rec *order.Record) {
	defer func() {
		if r := recover(); r != nil {
			f.auditLog.Warnf(rec.OrderID, "notification '%s' failed: panic: %v", name, r)
		}
	}()
	if err := n.Notify(ctx, rec); err != nil {
		f.auditLog.Warnf(rec.OrderID, "notification '%s' failed: %v", name, err)
	}
}

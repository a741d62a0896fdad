// Package audit provides the append-only order audit trail.
//
// The line format is part of the external interface of the service:
//
//	<RFC3339Nano UTC timestamp> [<LEVEL>][<orderID>] <message>
//
// with the orderID segment omitted for events that precede order creation.
// Lines are written atomically, so concurrent orders never interleave
// partial lines; lines issued for a single order appear in issue order.
package audit

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

const (
	LevelInfo = "INFO"
	LevelWarn = "WARN"
)

// Logger appends timestamped lines to a shared sink.
type Logger struct {
	mu  sync.Mutex
	w   io.Writer
	c   io.Closer
	now func() time.Time
}

// New creates a Logger writing to w.
func New(w io.Writer) *Logger {
	return &Logger{w: w, now: time.Now}
}

// NewFile creates a Logger appending to the file at path, creating it
// if necessary.
func NewFile(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log %s: %w", path, err)
	}
	l := New(f)
	l.c = f
	return l, nil
}

// Infof appends an INFO line for the given order. An empty orderID emits
// the pre-validation form without the order segment.
func (l *Logger) Infof(orderID, format string, args ...any) {
	l.logf(LevelInfo, orderID, format, args...)
}

// Warnf appends a WARN line for the given order.
func (l *Logger) Warnf(orderID, format string, args ...any) {
	l.logf(LevelWarn, orderID, format, args...)
}

func (l *Logger) logf(level, orderID, format string, args ...any) {
	tag := "[" + level + "]"
	if orderID != "" {
		tag += "[" + orderID + "]"
	}
	line := fmt.Sprintf("%s %s %s\n", l.now().UTC().Format(time.RFC3339Nano), tag, fmt.Sprintf(format, args...))

	l.mu.Lock()
	defer l.mu.Unlock()
	// Errors from the sink are swallowed: the audit trail must never fail
	// an order.
	_, _ = io.WriteString(l.w, line)
}

// Close closes the underlying file, if the Logger owns one.
func (l *Logger) Close() error {
	if l.c == nil {
		return nil
	}
	return l.c.Close()
}

// Package payment simulates payment execution for the supported methods.
// Outcomes are always data; no call returns an error or panics.
package payment

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderhub/orderhub/internal/order"
)

// ErrUnknownMethod is the outcome error text for an unrecognized method.
const ErrUnknownMethod = "Unknown payment method"

// Source supplies randomness for the simulated gateways. It abstracts
// math/rand so tests can make outcomes deterministic.
type Source interface {
	// Intn returns a non-negative pseudo-random int in [0, n).
	Intn(n int) int
}

// lockedSource serializes access to a *rand.Rand, which is not safe for
// concurrent use.
type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

// Config holds the failure probabilities of the simulated gateways,
// in percent.
type Config struct {
	CardFailPercent   int `koanf:"cardFailPercent"`
	PaypalFailPercent int `koanf:"paypalFailPercent"`
}

// DefaultConfig mirrors the reference gateway behavior: cards decline
// about 5% of the time, PayPal errors about 10%.
func DefaultConfig() Config {
	return Config{CardFailPercent: 5, PaypalFailPercent: 10}
}

// method is a single simulated payment gateway.
type method interface {
	pay(amount decimal.Decimal, currency string) order.PaymentOutcome
}

// Dispatcher routes a payment to the gateway registered for the method name.
type Dispatcher struct {
	methods map[string]method
}

// NewDispatcher creates a Dispatcher with the card, paypal and mock gateways.
// A nil src uses a time-seeded source.
func NewDispatcher(cfg Config, src Source) *Dispatcher {
	if src == nil {
		src = &lockedSource{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
	}
	return &Dispatcher{
		methods: map[string]method{
			"card":   &randomMethod{prefix: "CARD", failPercent: cfg.CardFailPercent, failErr: "Card declined", src: src},
			"paypal": &randomMethod{prefix: "PP", failPercent: cfg.PaypalFailPercent, failErr: "PayPal error", src: src},
			"mock":   mockMethod{},
		},
	}
}

// Pay executes the payment for the given method name, case-insensitively.
// An unrecognized method yields a failed outcome, never an error.
func (d *Dispatcher) Pay(name string, amount decimal.Decimal, currency string) order.PaymentOutcome {
	m, ok := d.methods[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return order.PaymentOutcome{Success: false, Error: ErrUnknownMethod}
	}
	return m.pay(amount, currency)
}

// randomMethod succeeds unless the draw lands below failPercent.
type randomMethod struct {
	prefix      string
	failPercent int
	failErr     string
	src         Source
}

func (m *randomMethod) pay(_ decimal.Decimal, _ string) order.PaymentOutcome {
	if m.src.Intn(100) < m.failPercent {
		return order.PaymentOutcome{Success: false, Error: m.failErr}
	}
	return order.PaymentOutcome{Success: true, TransactionID: transactionID(m.prefix)}
}

// mockMethod always succeeds; used for testing and demo flows.
type mockMethod struct{}

func (mockMethod) pay(_ decimal.Decimal, _ string) order.PaymentOutcome {
	return order.PaymentOutcome{Success: true, TransactionID: transactionID("MOCK")}
}

func transactionID(prefix string) string {
	return prefix + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

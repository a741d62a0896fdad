package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderhub/orderhub/internal/audit"
	"github.com/orderhub/orderhub/internal/config"
	"github.com/orderhub/orderhub/internal/service"
)

// lockedBuffer is a concurrency-safe audit sink for the wired pipeline.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Payment.CardFailPercent = 0
	cfg.Payment.PaypalFailPercent = 0
	return cfg
}

func Test_WiredPipeline_PlaceAndList(t *testing.T) {
	buf := &lockedBuffer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	deps := SetupDependencies(testConfig(), audit.New(buf), logger)
	handler := SetupHttpHandler(deps)

	body := `{
		"items": [{"product_id": 1, "name": "widget", "quantity": 2, "unit_price": "100"}],
		"customer_email": "jane@example.com",
		"payment_method": "mock",
		"notify_via": ["email", "telegram", "pigeon"],
		"currency": "USD",
		"country": "US"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var placed service.OrderResponseDto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &placed))
	assert.Equal(t, "paid", placed.Status)
	assert.Equal(t, "217", placed.Total.String())

	req = httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var list []service.OrderDto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, placed.OrderID, list[0].OrderID)

	out := buf.String()
	assert.Contains(t, out, "[EMAIL] to=jane@example.com")
	assert.Contains(t, out, "[TG] Order "+placed.OrderID)
	assert.Contains(t, out, "[INFO]["+placed.OrderID+"] total=217 USD, paySuccess=true, method=mock")
}

func Test_WiredPipeline_RejectionHasNoSideEffects(t *testing.T) {
	buf := &lockedBuffer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	deps := SetupDependencies(testConfig(), audit.New(buf), logger)
	handler := SetupHttpHandler(deps)

	body := `{
		"items": [{"product_id": 1, "name": "widget", "quantity": 2, "unit_price": "100"}],
		"payment_method": "mock"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var list []service.OrderDto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list)
}

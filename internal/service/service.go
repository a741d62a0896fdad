// Package service provides the implementation of the order-orchestration
// business logic.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/orderhub/orderhub/internal/audit"
	ordererrors "github.com/orderhub/orderhub/internal/errors"
	"github.com/orderhub/orderhub/internal/notify"
	"github.com/orderhub/orderhub/internal/order"
	"github.com/orderhub/orderhub/internal/payment"
	"github.com/orderhub/orderhub/internal/pricing"
	"github.com/orderhub/orderhub/internal/store"
)

// Defaults applied to a request before validation.
const (
	defaultPaymentMethod = "card"
	defaultCurrency      = "USD"
	defaultCountry       = "US"
)

// OrderService defines the methods for placing and querying orders.
// It abstracts the underlying business logic and data access.
type OrderService interface {
	// PlaceOrder runs the full pipeline for one order request: validate,
	// price, pay, persist, notify, log. Only validation errors are
	// returned; payment failure is reported through the response status.
	PlaceOrder(ctx context.Context, dto PlaceOrderDto) (*OrderResponseDto, error)

	// ListOrders returns all persisted orders in insertion order.
	// Returns an empty slice if no orders exist.
	ListOrders(ctx context.Context) ([]OrderDto, error)
}

// Service implements OrderService.
type Service struct {
	orderStore    store.OrderStore
	dispatcher    *payment.Dispatcher
	fanout        *notify.Fanout
	auditLog      *audit.Logger
	logger        *slog.Logger
	ordersCounter metric.Int64Counter
}

// NewService creates a new instance of OrderService with the provided
// collaborators.
func NewService(orderStore store.OrderStore, dispatcher *payment.Dispatcher, fanout *notify.Fanout, auditLog *audit.Logger, logger *slog.Logger) *Service {
	meter := otel.Meter("orderhub")
	ordersCounter, err := meter.Int64Counter("orders_placed", metric.WithDescription("Total number of persisted orders"))
	if err != nil {
		panic(fmt.Sprintf("failed to create orders_placed counter: %v", err))
	}
	return &Service{
		orderStore:    orderStore,
		dispatcher:    dispatcher,
		fanout:        fanout,
		auditLog:      auditLog,
		logger:        logger.With("component", "service"),
		ordersCounter: ordersCounter,
	}
}

// OrderItemDto represents a single order line in requests and responses.
type OrderItemDto struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// PlaceOrderDto represents the data transfer object for placing an order.
type PlaceOrderDto struct {
	Items         []OrderItemDto `json:"items" validate:"required"`
	CustomerEmail string         `json:"customer_email"`
	CustomerPhone string         `json:"customer_phone"`
	PaymentMethod string         `json:"payment_method"`
	NotifyVia     []string       `json:"notify_via"`
	PromoCode     string         `json:"promo_code"`
	Currency      string         `json:"currency"`
	Country       string         `json:"country"`
}

// OrderResponseDto is returned to the caller after the pipeline completes.
// Status is "paid" or "failed"; a failed payment is a normal response,
// not an error.
type OrderResponseDto struct {
	OrderID  string               `json:"order_id"`
	Status   string               `json:"status"`
	Total    decimal.Decimal      `json:"total"`
	Currency string               `json:"currency"`
	Payment  order.PaymentOutcome `json:"payment"`
	Items    []OrderItemDto       `json:"items"`
}

// OrderDto represents a persisted order in query responses.
type OrderDto struct {
	OrderID   string               `json:"order_id"`
	CreatedAt string               `json:"created_at"`
	Items     []OrderItemDto       `json:"items"`
	Subtotal  decimal.Decimal      `json:"subtotal"`
	Discount  decimal.Decimal      `json:"discount"`
	Total     decimal.Decimal      `json:"total"`
	Currency  string               `json:"currency"`
	Payment   order.PaymentOutcome `json:"payment"`
	Customer  order.Customer       `json:"customer"`
	Country   string               `json:"country"`
	PromoCode string               `json:"promo_code,omitempty"`
}

// PlaceOrder runs the order pipeline. The record is persisted before the
// notification phase, so a notification fault can never lose an order.
func (s *Service) PlaceOrder(ctx context.Context, dto PlaceOrderDto) (*OrderResponseDto, error) {
	applyDefaults(&dto)

	if err := validate(dto); err != nil {
		s.auditLog.Warnf("", "order rejected: %v", err)
		return nil, err
	}

	items := toItems(dto.Items)
	subtotal := order.Subtotal(items)
	discount := pricing.Discount(subtotal, dto.PromoCode)
	total := pricing.Total(subtotal.Sub(discount), dto.Country)

	outcome := s.dispatcher.Pay(dto.PaymentMethod, total, dto.Currency)

	rec := order.Record{
		OrderID:   newOrderID(),
		CreatedAt: time.Now().UTC(),
		Items:     items,
		Subtotal:  subtotal,
		Discount:  discount,
		Total:     total,
		Currency:  dto.Currency,
		Payment:   outcome,
		Customer:  order.Customer{Email: dto.CustomerEmail, Phone: dto.CustomerPhone},
		Country:   dto.Country,
		PromoCode: dto.PromoCode,
	}

	// Payment failure is not grounds for dropping the order: the record is
	// appended unconditionally once validation has passed.
	if err := s.orderStore.Append(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to persist order %s: %w", rec.OrderID, err)
	}
	s.ordersCounter.Add(ctx, 1)

	s.fanout.Send(ctx, &rec, dto.NotifyVia)

	s.auditLog.Infof(rec.OrderID, "total=%s %s, paySuccess=%t, method=%s",
		rec.Total, rec.Currency, outcome.Success, dto.PaymentMethod)
	s.logger.InfoContext(ctx, "Order processed",
		"order_id", rec.OrderID,
		"total", rec.Total.String(),
		"currency", rec.Currency,
		"pay_success", outcome.Success,
		"method", dto.PaymentMethod,
	)

	status := "failed"
	if outcome.Success {
		status = "paid"
	}
	return &OrderResponseDto{
		OrderID:  rec.OrderID,
		Status:   status,
		Total:    rec.Total,
		Currency: rec.Currency,
		Payment:  outcome,
		Items:    dto.Items,
	}, nil
}

// ListOrders retrieves all persisted orders and returns them as OrderDtos.
func (s *Service) ListOrders(ctx context.Context) ([]OrderDto, error) {
	records, err := s.orderStore.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]OrderDto, len(records))
	for i := range records {
		dtos[i] = toDto(&records[i])
	}
	return dtos, nil
}

// applyDefaults fills in the request defaults before validation.
func applyDefaults(dto *PlaceOrderDto) {
	if strings.TrimSpace(dto.PaymentMethod) == "" {
		dto.PaymentMethod = defaultPaymentMethod
	}
	if strings.TrimSpace(dto.Currency) == "" {
		dto.Currency = defaultCurrency
	}
	if strings.TrimSpace(dto.Country) == "" {
		dto.Country = defaultCountry
	}
}

// validate rejects a request before any side effect has occurred.
func validate(dto PlaceOrderDto) error {
	if len(dto.Items) == 0 {
		return ordererrors.ErrNoItems
	}
	for _, it := range dto.Items {
		if it.Quantity <= 0 {
			return ordererrors.ErrInvalidQuantity
		}
		if it.UnitPrice.IsNegative() {
			return ordererrors.ErrNegativePrice
		}
	}
	if strings.TrimSpace(dto.CustomerEmail) == "" && strings.TrimSpace(dto.CustomerPhone) == "" {
		return ordererrors.ErrContactRequired
	}
	return nil
}

// newOrderID generates a process-unique order identifier.
func newOrderID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func toItems(dtos []OrderItemDto) []order.Item {
	items := make([]order.Item, len(dtos))
	for i, d := range dtos {
		items[i] = order.Item{
			ProductID: d.ProductID,
			Name:      d.Name,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
		}
	}
	return items
}

// toDto converts an order.Record to an OrderDto.
func toDto(rec *order.Record) OrderDto {
	items := make([]OrderItemDto, len(rec.Items))
	for i, it := range rec.Items {
		items[i] = OrderItemDto{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		}
	}
	return OrderDto{
		OrderID:   rec.OrderID,
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		Items:     items,
		Subtotal:  rec.Subtotal,
		Discount:  rec.Discount,
		Total:     rec.Total,
		Currency:  rec.Currency,
		Payment:   rec.Payment,
		Customer:  rec.Customer,
		Country:   rec.Country,
		PromoCode: rec.PromoCode,
	}
}

// Package order defines the domain types shared by the pricing, payment,
// notification and persistence layers.
package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a single order line. The line total is Quantity × UnitPrice.
type Item struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Customer is the contact snapshot taken at order creation.
// At least one of Email or Phone is present on any persisted record.
type Customer struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// PaymentOutcome is the result of a payment attempt. Failure is a value,
// not an error: TransactionID is set iff Success, Error iff not.
type PaymentOutcome struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Record is the immutable persisted representation of a processed order.
// It is created once per validated request, regardless of payment outcome,
// and is never mutated or removed from the store afterwards.
type Record struct {
	OrderID   string          `json:"order_id"`
	CreatedAt time.Time       `json:"created_at"`
	Items     []Item          `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
	Currency  string          `json:"currency"`
	Payment   PaymentOutcome  `json:"payment"`
	Customer  Customer        `json:"customer"`
	Country   string          `json:"country"`
	PromoCode string          `json:"promo_code,omitempty"`
}

// Subtotal sums Quantity × UnitPrice over all items.
func Subtotal(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}

// Package pricing computes discounts and tax-inclusive totals.
// All functions are pure and deterministic.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Discount rules, additive when several match.
var (
	promoBlackRate = decimal.NewFromFloat(0.10) // BLACK: 10% of subtotal
	promoLoyalFlat = decimal.NewFromInt(5)      // LOYAL: flat 5 units
	bulkThreshold  = decimal.NewFromInt(500)    // above this, bulkFlat applies
	bulkFlat       = decimal.NewFromInt(15)
)

// taxRates maps upper-case country codes to tax rates. Unlisted countries
// fall back to defaultTaxRate.
var taxRates = map[string]decimal.Decimal{
	"US": decimal.NewFromFloat(0.085),
	"PL": decimal.NewFromFloat(0.23),
	"UA": decimal.NewFromFloat(0.20),
}

var defaultTaxRate = decimal.NewFromFloat(0.18)

// Discount returns the discount for the given subtotal and promo code.
// Promo matching is case-insensitive; the result is clamped to [0, subtotal].
func Discount(subtotal decimal.Decimal, promo string) decimal.Decimal {
	discount := decimal.Zero
	switch strings.ToUpper(strings.TrimSpace(promo)) {
	case "BLACK":
		discount = discount.Add(subtotal.Mul(promoBlackRate))
	case "LOYAL":
		discount = discount.Add(promoLoyalFlat)
	}
	if subtotal.GreaterThan(bulkThreshold) {
		discount = discount.Add(bulkFlat)
	}
	if discount.IsNegative() {
		return decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	return discount
}

// TaxRate returns the tax rate for a country code, case-insensitively.
func TaxRate(country string) decimal.Decimal {
	if rate, ok := taxRates[strings.ToUpper(strings.TrimSpace(country))]; ok {
		return rate
	}
	return defaultTaxRate
}

// Total applies the country tax rate to amount and rounds the result
// to a monetary value.
func Total(amount decimal.Decimal, country string) decimal.Decimal {
	return RoundMoney(amount.Mul(decimal.NewFromInt(1).Add(TaxRate(country))))
}

// RoundMoney rounds to 2 decimal places, half away from zero. This is the
// single rounding rule for all monetary values in the system.
func RoundMoney(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

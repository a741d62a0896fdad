package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func Test_Discount(t *testing.T) {
	tests := []struct {
		name     string
		subtotal string
		promo    string
		want     string
	}{
		{name: "no promo, below threshold", subtotal: "200", promo: "", want: "0"},
		{name: "BLACK takes 10 percent", subtotal: "200", promo: "BLACK", want: "20"},
		{name: "BLACK is case-insensitive", subtotal: "200", promo: "black", want: "20"},
		{name: "LOYAL takes flat 5", subtotal: "50", promo: "LOYAL", want: "5"},
		{name: "LOYAL below threshold gets no bulk discount", subtotal: "50", promo: "loyal", want: "5"},
		{name: "unknown promo ignored", subtotal: "200", promo: "SPRING", want: "0"},
		{name: "bulk discount above 500", subtotal: "600", promo: "", want: "15"},
		{name: "bulk discount not at exactly 500", subtotal: "500", promo: "", want: "0"},
		{name: "BLACK and bulk are additive", subtotal: "600", promo: "BLACK", want: "75"},
		{name: "LOYAL and bulk are additive", subtotal: "600", promo: "LOYAL", want: "20"},
		{name: "discount clamped to subtotal", subtotal: "3", promo: "LOYAL", want: "3"},
		{name: "zero subtotal yields zero discount", subtotal: "0", promo: "BLACK", want: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Discount(dec(tt.subtotal), tt.promo)
			assert.True(t, dec(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func Test_Discount_NeverExceedsSubtotal(t *testing.T) {
	for _, subtotal := range []string{"0", "0.01", "4.99", "5", "100", "500.01", "1000"} {
		for _, promo := range []string{"", "BLACK", "LOYAL", "bogus"} {
			d := Discount(dec(subtotal), promo)
			assert.False(t, d.IsNegative(), "subtotal=%s promo=%s", subtotal, promo)
			assert.True(t, d.LessThanOrEqual(dec(subtotal)), "subtotal=%s promo=%s discount=%s", subtotal, promo, d)
		}
	}
}

func Test_TaxRate(t *testing.T) {
	tests := []struct {
		country string
		want    string
	}{
		{country: "US", want: "0.085"},
		{country: "us", want: "0.085"},
		{country: "PL", want: "0.23"},
		{country: "UA", want: "0.20"},
		{country: "ua", want: "0.20"},
		{country: "DE", want: "0.18"},
		{country: "", want: "0.18"},
	}
	for _, tt := range tests {
		t.Run("country "+tt.country, func(t *testing.T) {
			assert.True(t, dec(tt.want).Equal(TaxRate(tt.country)))
		})
	}
}

func Test_Total(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		country string
		want    string
	}{
		{name: "US tax on 200", amount: "200", country: "US", want: "217"},
		{name: "PL tax on 525", amount: "525", country: "PL", want: "645.75"},
		{name: "UA tax on 100", amount: "100", country: "UA", want: "120"},
		{name: "default tax on 100", amount: "100", country: "XX", want: "118"},
		{name: "result is rounded to cents", amount: "33.33", country: "US", want: "36.16"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Total(dec(tt.amount), tt.country)
			assert.True(t, dec(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

// The monetary rounding rule is round-half-away-from-zero; pin it so a
// library change cannot silently switch to banker's rounding.
func Test_RoundMoney_HalfAwayFromZero(t *testing.T) {
	assert.True(t, dec("2.35").Equal(RoundMoney(dec("2.345"))))
	assert.True(t, dec("2.13").Equal(RoundMoney(dec("2.125"))))
	assert.True(t, dec("-2.13").Equal(RoundMoney(dec("-2.125"))))
	assert.True(t, dec("10").Equal(RoundMoney(dec("10"))))
}

package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func Test_Subtotal(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		want  string
	}{
		{name: "no items", items: nil, want: "0"},
		{
			name:  "single line",
			items: []Item{{Quantity: 2, UnitPrice: decimal.RequireFromString("100")}},
			want:  "200",
		},
		{
			name: "multiple lines sum",
			items: []Item{
				{Quantity: 3, UnitPrice: decimal.RequireFromString("19.99")},
				{Quantity: 1, UnitPrice: decimal.RequireFromString("0.01")},
			},
			want: "59.98",
		},
		{
			name:  "fractional prices stay exact",
			items: []Item{{Quantity: 3, UnitPrice: decimal.RequireFromString("0.10")}},
			want:  "0.30",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Subtotal(tt.items)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

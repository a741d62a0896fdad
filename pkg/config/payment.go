package config

import (
	"fmt"
	"strings"
)

type PaymentConfig struct {
	CardFailPercent   int `koanf:"cardFailPercent"`
	PaypalFailPercent int `koanf:"paypalFailPercent"`
}

// String returns a string representation of the payment configuration.
func (c *PaymentConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Payment ---\n")
	b.WriteString(fmt.Sprintf("  cardFailPercent: %d\n", c.CardFailPercent))
	b.WriteString(fmt.Sprintf("  paypalFailPercent: %d\n", c.PaypalFailPercent))
	return b.String()
}

func (c *PaymentConfig) Validate() error {
	if c.CardFailPercent < 0 || c.CardFailPercent > 100 {
		return fmt.Errorf("invalid card failure percent: %d", c.CardFailPercent)
	}
	if c.PaypalFailPercent < 0 || c.PaypalFailPercent > 100 {
		return fmt.Errorf("invalid paypal failure percent: %d", c.PaypalFailPercent)
	}
	return nil
}

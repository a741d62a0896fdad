package notify

import (
	"context"
	"errors"
	"strings"

	"github.com/orderhub/orderhub/internal/audit"
	"github.com/orderhub/orderhub/internal/order"
)

// The built-in channels simulate delivery by appending to the audit trail,
// which stands in for the external providers.

var errMalformedEmail = errors.New("malformed email address")

// EmailNotifier delivers order confirmations by email.
type EmailNotifier struct {
	auditLog *audit.Logger
}

func NewEmailNotifier(auditLog *audit.Logger) *EmailNotifier {
	return &EmailNotifier{auditLog: auditLog}
}

func (n *EmailNotifier) Channel() string { return "email" }

func (n *EmailNotifier) Ready(rec *order.Record) bool {
	return strings.TrimSpace(rec.Customer.Email) != ""
}

func (n *EmailNotifier) Notify(_ context.Context, rec *order.Record) error {
	if !strings.Contains(rec.Customer.Email, "@") {
		return errMalformedEmail
	}
	n.auditLog.Infof(rec.OrderID, "[EMAIL] to=%s; subject=Order %s; body=Total: %s %s",
		rec.Customer.Email, rec.OrderID, rec.Total, rec.Currency)
	return nil
}

// SMSNotifier delivers payment status by SMS.
type SMSNotifier struct {
	auditLog *audit.Logger
}

func NewSMSNotifier(auditLog *audit.Logger) *SMSNotifier {
	return &SMSNotifier{auditLog: auditLog}
}

func (n *SMSNotifier) Channel() string { return "sms" }

func (n *SMSNotifier) Ready(rec *order.Record) bool {
	return strings.TrimSpace(rec.Customer.Phone) != ""
}

func (n *SMSNotifier) Notify(_ context.Context, rec *order.Record) error {
	n.auditLog.Infof(rec.OrderID, "[SMS] to=%s; text=Order %s paid: %t",
		rec.Customer.Phone, rec.OrderID, rec.Payment.Success)
	return nil
}

// TelegramNotifier posts order summaries to a channel; it needs no
// per-customer contact information.
type TelegramNotifier struct {
	auditLog *audit.Logger
}

func NewTelegramNotifier(auditLog *audit.Logger) *TelegramNotifier {
	return &TelegramNotifier{auditLog: auditLog}
}

func (n *TelegramNotifier) Channel() string { return "telegram" }

func (n *TelegramNotifier) Ready(_ *order.Record) bool { return true }

func (n *TelegramNotifier) Notify(_ context.Context, rec *order.Record) error {
	n.auditLog.Infof(rec.OrderID, "[TG] Order %s: %s %s", rec.OrderID, rec.Total, rec.Currency)
	return nil
}

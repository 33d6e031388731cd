package models

import "time"

// PaymentStatus is the buyer-visible payment state projected onto an order
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Order is the storefront order record. Only the payment fields are owned here.
type Order struct {
	CreatedAt        time.Time     `db:"created_at"`
	UpdatedAt        time.Time     `db:"updated_at"`
	GatewayReference *string       `db:"gateway_reference"`
	ID               string        `db:"id"`
	Currency         string        `db:"currency"`
	PaymentStatus    PaymentStatus `db:"payment_status"`
	TotalCents       int64         `db:"total_cents"`
}

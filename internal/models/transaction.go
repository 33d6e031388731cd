package models

import (
	"time"

	"github.com/google/uuid"
)

// Provider identifies the gateway that processed a payment attempt
type Provider string

const (
	ProviderMPesa    Provider = "mpesa"
	ProviderCheckout Provider = "checkout"
	ProviderSandbox  Provider = "sandbox"
)

// TransactionStatus represents the lifecycle state of a payment attempt
type TransactionStatus string

const (
	TransactionStatusCreated   TransactionStatus = "CREATED"
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusSucceeded TransactionStatus = "SUCCEEDED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	TransactionStatusExpired   TransactionStatus = "EXPIRED"
)

// IsTerminal reports whether no further transitions are permitted
func (s TransactionStatus) IsTerminal() bool {
	switch s {
	case TransactionStatusSucceeded, TransactionStatusFailed, TransactionStatusExpired:
		return true
	default:
		return false
	}
}

var validTransitions = map[TransactionStatus][]TransactionStatus{
	TransactionStatusCreated: {TransactionStatusPending, TransactionStatusFailed},
	TransactionStatusPending: {TransactionStatusSucceeded, TransactionStatusFailed, TransactionStatusExpired},
}

// IsValidTransition checks if a status transition is allowed
func IsValidTransition(from, to TransactionStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transaction is a ledger entry for a single payment attempt against an order
type Transaction struct {
	CreatedAt             time.Time         `db:"created_at"`
	UpdatedAt             time.Time         `db:"updated_at"`
	ProviderCorrelationID *string           `db:"provider_correlation_id"`
	GatewayReference      *string           `db:"gateway_reference"`
	FailureReason         *string           `db:"failure_reason"`
	RawCallback           []byte            `db:"raw_callback"`
	OrderID               string            `db:"order_id"`
	Provider              Provider          `db:"provider"`
	Status                TransactionStatus `db:"status"`
	Currency              string            `db:"currency"`
	PayerPhone            string            `db:"payer_phone"`
	PayerEmail            string            `db:"payer_email"`
	AmountCents           int64             `db:"amount_cents"`
	ProjectionPending     bool              `db:"projection_pending"`
	ID                    uuid.UUID         `db:"id"`
}

// CorrelationID returns the provider correlation id or an empty string
func (t *Transaction) CorrelationID() string {
	if t.ProviderCorrelationID == nil {
		return ""
	}
	return *t.ProviderCorrelationID
}

// TransactionEvent is an append-only record of a status change
type TransactionEvent struct {
	CreatedAt     time.Time         `db:"created_at"`
	Reason        string            `db:"reason"`
	FromStatus    TransactionStatus `db:"from_status"`
	ToStatus      TransactionStatus `db:"to_status"`
	ID            uuid.UUID         `db:"id"`
	TransactionID uuid.UUID         `db:"transaction_id"`
}

// Transition describes a guarded status change applied by the ledger.
// The update only happens while the stored status still equals From.
type Transition struct {
	GatewayReference  *string
	FailureReason     *string
	CorrelationID     *string
	RawCallback       []byte
	Reason            string
	From              TransactionStatus
	To                TransactionStatus
	ProjectionPending bool
	ID                uuid.UUID
}

// IdempotencyKey tracks processed requests to prevent duplicate initiations
type IdempotencyKey struct {
	CreatedAt      time.Time `db:"created_at"`
	Key            string    `db:"key"`
	RequestPath    string    `db:"request_path"`
	ResponseBody   string    `db:"response_body"`
	ResponseStatus int       `db:"response_status"`
}

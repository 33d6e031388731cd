package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/payments/internal/gateway"
	"github.com/storefront/payments/internal/models"
)

// HealthChecker validates system health.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// GatewayResolver looks up an enabled payment provider
type GatewayResolver interface {
	Get(provider models.Provider) (gateway.Gateway, bool)
}

// Initiator starts payment attempts and exposes the ledger view
type Initiator interface {
	Initiate(ctx context.Context, req PaymentRequest) (*InitiationResult, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	ListTransactionEvents(ctx context.Context, id uuid.UUID) ([]*models.TransactionEvent, error)
}

// Reconciler applies provider callbacks to the ledger
type Reconciler interface {
	HandleCallback(ctx context.Context, provider models.Provider, req gateway.CallbackRequest) (*CallbackAck, error)
}

// Projector applies a terminal outcome to the order record
type Projector interface {
	Apply(ctx context.Context, orderID string, outcome ProjectionOutcome, reference string) error
}

// OrderStatusReader serves the buyer-visible payment status
type OrderStatusReader interface {
	GetPaymentStatus(ctx context.Context, orderID string) (*models.Order, error)
}

// Ensure concrete types implement interfaces
var (
	_ Initiator         = (*InitiationService)(nil)
	_ Reconciler        = (*ReconciliationService)(nil)
	_ Projector         = (*OrderProjector)(nil)
	_ OrderStatusReader = (*OrderProjector)(nil)
	_ GatewayResolver   = (*gateway.Registry)(nil)
)

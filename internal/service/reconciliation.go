package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/storefront/payments/internal/gateway"
	"github.com/storefront/payments/internal/models"
	"github.com/storefront/payments/internal/repository"
)

// AckResult describes what a callback did
type AckResult string

const (
	AckApplied  AckResult = "applied"
	AckReplayed AckResult = "replayed"
	AckIgnored  AckResult = "ignored"
)

const duplicatePaymentReason = "duplicate_payment"

// CallbackAck is returned for every callback the provider should not retry
type CallbackAck struct {
	Result        AckResult
	Status        models.TransactionStatus
	TransactionID uuid.UUID
}

// ReconciliationService matches provider callbacks to ledger entries and
// applies each terminal outcome exactly once.
type ReconciliationService struct {
	transactions repository.TransactionRepository
	projector    Projector
	gateways     GatewayResolver
	logger       *slog.Logger
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(
	transactions repository.TransactionRepository,
	projector Projector,
	gateways GatewayResolver,
	logger *slog.Logger,
) *ReconciliationService {
	return &ReconciliationService{
		transactions: transactions,
		projector:    projector,
		gateways:     gateways,
		logger:       logger,
	}
}

// HandleCallback authenticates, parses and applies a provider callback.
//
// Replays and callbacks that lose a race are acknowledged without mutation.
// Only store failures are reported as internal errors, so providers retry
// nothing they have already delivered in a valid form.
func (s *ReconciliationService) HandleCallback(ctx context.Context, provider models.Provider, req gateway.CallbackRequest) (*CallbackAck, error) {
	gw, ok := s.gateways.Get(provider)
	if !ok {
		return nil, &ServiceError{Code: ErrCodeUnknownProvider, Message: "unknown payment provider"}
	}

	logger := s.logger.With("provider", provider)

	notification, err := gw.ParseCallback(req)
	if err != nil {
		if gateway.IsKind(err, gateway.KindUnauthorized) {
			logger.Warn("callback failed authentication", "error", err)
			return nil, &ServiceError{Code: ErrCodeUnauthorizedCallback, Message: "callback authentication failed", Err: err}
		}
		logger.Warn("malformed callback rejected", "error", err)
		return nil, &ServiceError{Code: ErrCodeMalformedCallback, Message: "malformed callback", Err: err}
	}

	logger = logger.With("correlation_id", notification.CorrelationID)

	if notification.Outcome == gateway.OutcomeIgnored {
		logger.Debug("callback acknowledged without effect")
		return &CallbackAck{Result: AckIgnored}, nil
	}

	txn, err := s.transactions.FindByCorrelationID(ctx, provider, notification.CorrelationID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			logger.Warn("callback for unknown correlation id rejected", "outcome", notification.Outcome)
			return nil, &ServiceError{Code: ErrCodeUnknownCorrelation, Message: "unknown correlation id"}
		}
		return nil, internalError("failed to resolve correlation id", err)
	}

	logger = logger.With("transaction_id", txn.ID, "order_id", txn.OrderID)

	if txn.Status.IsTerminal() {
		logger.Info("callback replay acknowledged", "status", txn.Status)
		return &CallbackAck{Result: AckReplayed, Status: txn.Status, TransactionID: txn.ID}, nil
	}

	if notification.AmountCents != 0 && notification.AmountCents != txn.AmountCents {
		logger.Warn("callback amount differs from ledger amount",
			"callback_amount_cents", notification.AmountCents,
			"amount_cents", txn.AmountCents,
		)
	}

	transition := models.Transition{
		ID:                txn.ID,
		From:              models.TransactionStatusPending,
		RawCallback:       req.Body,
		ProjectionPending: true,
		Reason:            "callback",
	}
	if notification.Outcome == gateway.OutcomeSucceeded {
		reference := notification.Reference
		transition.To = models.TransactionStatusSucceeded
		transition.GatewayReference = &reference
	} else {
		reason := notification.Reason
		transition.To = models.TransactionStatusFailed
		transition.FailureReason = &reason
	}

	updated, err := s.transactions.Transition(ctx, transition)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrStateConflict):
		return s.ackCurrent(ctx, logger, txn.ID)
	case errors.Is(err, models.ErrDuplicateSuccess):
		return s.resolveDuplicateSuccess(ctx, logger, txn, notification, req.Body)
	default:
		return nil, internalError("failed to apply callback", err)
	}

	logger.Info("transaction reconciled",
		"status", updated.Status,
		"reference", notification.Reference,
		"reason", notification.Reason,
	)

	_ = projectTransaction(ctx, s.transactions, s.projector, logger, updated) //nolint:errcheck // retried by the sweeper

	return &CallbackAck{Result: AckApplied, Status: updated.Status, TransactionID: updated.ID}, nil
}

// resolveDuplicateSuccess fails a transaction whose success lost to another
// transaction of the same order. The money was still taken, so the payment
// is logged for a refund.
func (s *ReconciliationService) resolveDuplicateSuccess(ctx context.Context, logger *slog.Logger, txn *models.Transaction, notification *gateway.Notification, raw []byte) (*CallbackAck, error) {
	logger.Error("duplicate successful payment for order, refund required",
		"reference", notification.Reference,
		"amount_cents", txn.AmountCents,
		"currency", txn.Currency,
	)

	reason := duplicatePaymentReason
	updated, err := s.transactions.Transition(ctx, models.Transition{
		ID:            txn.ID,
		From:          models.TransactionStatusPending,
		To:            models.TransactionStatusFailed,
		FailureReason: &reason,
		RawCallback:   raw,
		Reason:        duplicatePaymentReason,
	})
	if errors.Is(err, models.ErrStateConflict) {
		return s.ackCurrent(ctx, logger, txn.ID)
	}
	if err != nil {
		return nil, internalError("failed to record duplicate payment", err)
	}

	return &CallbackAck{Result: AckApplied, Status: updated.Status, TransactionID: updated.ID}, nil
}

// ackCurrent acknowledges a callback that lost the transition race
func (s *ReconciliationService) ackCurrent(ctx context.Context, logger *slog.Logger, id uuid.UUID) (*CallbackAck, error) {
	current, err := s.transactions.FindByID(ctx, id)
	if err != nil {
		return nil, internalError("failed to reload transaction", err)
	}

	logger.Info("callback lost transition race", "status", current.Status)
	return &CallbackAck{Result: AckReplayed, Status: current.Status, TransactionID: current.ID}, nil
}

package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/storefront/payments/internal/models"
	"github.com/storefront/payments/internal/repository"
)

// ProjectionOutcome is the order-level result of a terminal transaction
type ProjectionOutcome string

const (
	OutcomePaid   ProjectionOutcome = "paid"
	OutcomeFailed ProjectionOutcome = "failed"
)

const defaultProjectionAttempts = 3

// OrderProjector writes reconciled outcomes onto orders. A paid order is
// never moved back to failed.
type OrderProjector struct {
	orders      repository.OrderRepository
	logger      *slog.Logger
	maxAttempts int
}

// NewOrderProjector creates a new OrderProjector
func NewOrderProjector(orders repository.OrderRepository, logger *slog.Logger) *OrderProjector {
	return &OrderProjector{
		orders:      orders,
		logger:      logger,
		maxAttempts: defaultProjectionAttempts,
	}
}

// Apply sets the order's payment status for outcome. Repeating a call is a
// no-op; concurrent writers are resolved by re-reading and retrying.
func (p *OrderProjector) Apply(ctx context.Context, orderID string, outcome ProjectionOutcome, reference string) error {
	target := models.PaymentStatusFailed
	var ref *string
	if outcome == OutcomePaid {
		target = models.PaymentStatusPaid
		if reference != "" {
			ref = &reference
		}
	}

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		order, err := p.orders.GetOrder(ctx, orderID)
		if err != nil {
			return &ServiceError{
				Code:    ErrCodeProjectionFailed,
				Message: "failed to read order",
				Err:     err,
			}
		}

		if order.PaymentStatus == models.PaymentStatusPaid {
			if outcome == OutcomePaid && order.GatewayReference != nil && reference != "" && *order.GatewayReference != reference {
				p.logger.Warn("order already paid with a different reference",
					"order_id", orderID,
					"existing_reference", *order.GatewayReference,
					"reference", reference,
				)
			}
			return nil
		}
		if order.PaymentStatus == target {
			return nil
		}

		err = p.orders.UpdatePaymentStatus(ctx, orderID, order.PaymentStatus, target, ref)
		if err == nil {
			p.logger.Info("order payment status updated",
				"order_id", orderID,
				"from", order.PaymentStatus,
				"to", target,
			)
			return nil
		}
		if !errors.Is(err, models.ErrStateConflict) {
			return &ServiceError{
				Code:    ErrCodeProjectionFailed,
				Message: "failed to update order payment status",
				Err:     err,
			}
		}

		p.logger.Debug("order changed during projection, retrying",
			"order_id", orderID,
			"attempt", attempt,
		)
	}

	return &ServiceError{
		Code:      ErrCodeProjectionFailed,
		Message:   "order kept changing during projection",
		Err:       models.ErrStateConflict,
		Retryable: true,
	}
}

// GetPaymentStatus returns the order with its projected payment status
func (p *OrderProjector) GetPaymentStatus(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := p.orders.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{Code: ErrCodeOrderNotFound, Message: "order not found"}
		}
		return nil, internalError("failed to load order", err)
	}
	return order, nil
}

// projectTransaction applies a terminal transaction to its order and clears
// the pending flag once the order reflects it. Failures leave the flag set
// for the sweeper.
func projectTransaction(ctx context.Context, transactions repository.TransactionRepository, projector Projector, logger *slog.Logger, txn *models.Transaction) error {
	outcome := OutcomeFailed
	reference := ""
	if txn.Status == models.TransactionStatusSucceeded {
		outcome = OutcomePaid
		if txn.GatewayReference != nil {
			reference = *txn.GatewayReference
		}
	}

	if err := projector.Apply(ctx, txn.OrderID, outcome, reference); err != nil {
		logger.Error("order projection failed, will retry",
			"transaction_id", txn.ID,
			"order_id", txn.OrderID,
			"status", txn.Status,
			"error", err,
		)
		return err
	}

	if err := transactions.ClearProjectionPending(ctx, txn.ID); err != nil {
		logger.Error("failed to clear projection flag",
			"transaction_id", txn.ID,
			"error", err,
		)
		return internalError("failed to clear projection flag", err)
	}

	return nil
}

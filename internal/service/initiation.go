package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/payments/internal/gateway"
	"github.com/storefront/payments/internal/models"
	"github.com/storefront/payments/internal/repository"
)

// InitiationResult is the correlation handle returned to the caller
type InitiationResult struct {
	CheckoutURL     string
	CustomerMessage string
	CorrelationID   string
	Provider        models.Provider
	Status          models.TransactionStatus
	TransactionID   uuid.UUID
}

// InitiationService creates payment attempts and hands them to a gateway
type InitiationService struct {
	transactions   repository.TransactionRepository
	orders         repository.OrderRepository
	gateways       GatewayResolver
	logger         *slog.Logger
	gatewayTimeout time.Duration
}

// NewInitiationService creates a new InitiationService
func NewInitiationService(
	transactions repository.TransactionRepository,
	orders repository.OrderRepository,
	gateways GatewayResolver,
	gatewayTimeout time.Duration,
	logger *slog.Logger,
) *InitiationService {
	return &InitiationService{
		transactions:   transactions,
		orders:         orders,
		gateways:       gateways,
		gatewayTimeout: gatewayTimeout,
		logger:         logger,
	}
}

// Initiate records a new attempt, asks the provider to start it and moves it
// to PENDING. Every call leaves exactly one ledger row behind: PENDING on
// success and FAILED otherwise, even when the caller goes away mid-call.
func (s *InitiationService) Initiate(ctx context.Context, req PaymentRequest) (*InitiationResult, error) {
	if err := ValidatePaymentRequest(req); err != nil {
		return nil, err
	}

	gw, ok := s.gateways.Get(req.Provider)
	if !ok {
		return nil, &ServiceError{
			Code:    ErrCodeValidation,
			Message: fmt.Sprintf("provider: %s is not enabled", req.Provider),
		}
	}

	order, err := s.orders.GetOrder(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{Code: ErrCodeOrderNotFound, Message: "order not found"}
		}
		return nil, internalError("failed to load order", err)
	}
	if order.PaymentStatus == models.PaymentStatusPaid {
		return nil, &ServiceError{Code: ErrCodeOrderAlreadyPaid, Message: "order has already been paid"}
	}
	// the order projection can lag a settled payment; the ledger is authoritative
	settled, err := s.transactions.FindSucceededByOrderID(ctx, req.OrderID)
	switch {
	case err == nil:
		s.logger.Warn("initiation refused: order already has a succeeded transaction",
			"order_id", req.OrderID,
			"transaction_id", settled.ID,
			"projection_pending", settled.ProjectionPending,
		)
		return nil, &ServiceError{Code: ErrCodeOrderAlreadyPaid, Message: "order has already been paid"}
	case !errors.Is(err, models.ErrNotFound):
		return nil, internalError("failed to check settled payments", err)
	}
	if !strings.EqualFold(order.Currency, req.Currency) {
		return nil, &ServiceError{
			Code:    ErrCodeValidation,
			Message: fmt.Sprintf("currency: order is priced in %s", order.Currency),
		}
	}

	txn := &models.Transaction{
		ID:          uuid.New(),
		OrderID:     req.OrderID,
		Provider:    req.Provider,
		Status:      models.TransactionStatusCreated,
		AmountCents: req.AmountCents,
		Currency:    strings.ToUpper(req.Currency),
		PayerPhone:  req.PayerPhone,
		PayerEmail:  req.PayerEmail,
	}
	if err := s.transactions.Create(ctx, txn); err != nil {
		return nil, internalError("failed to create transaction", err)
	}

	logger := s.logger.With(
		"transaction_id", txn.ID,
		"order_id", txn.OrderID,
		"provider", txn.Provider,
	)

	gwCtx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	handle, err := gw.Initiate(gwCtx, gateway.InitiationRequest{
		TransactionID: txn.ID,
		OrderID:       txn.OrderID,
		AmountCents:   txn.AmountCents,
		Currency:      txn.Currency,
		PayerPhone:    txn.PayerPhone,
		PayerEmail:    txn.PayerEmail,
	})
	cancel()

	// The ledger must be settled even if the caller has gone away.
	settleCtx := context.WithoutCancel(ctx)

	if err != nil {
		s.failInitiation(settleCtx, logger, txn, failureReason(err))
		return nil, gatewayServiceError(err)
	}

	correlationID := handle.CorrelationID
	pending, err := s.transactions.Transition(settleCtx, models.Transition{
		ID:            txn.ID,
		From:          models.TransactionStatusCreated,
		To:            models.TransactionStatusPending,
		CorrelationID: &correlationID,
		Reason:        "gateway accepted",
	})
	if err != nil {
		logger.Error("failed to record pending transaction",
			"correlation_id", correlationID,
			"error", err,
		)
		s.failInitiation(settleCtx, logger, txn, "ledger_write_failed")
		return nil, internalError("failed to record pending transaction", err)
	}

	logger.Info("payment initiated",
		"correlation_id", correlationID,
		"amount_cents", txn.AmountCents,
		"currency", txn.Currency,
	)

	return &InitiationResult{
		TransactionID:   pending.ID,
		Provider:        pending.Provider,
		CorrelationID:   correlationID,
		CheckoutURL:     handle.CheckoutURL,
		CustomerMessage: handle.CustomerMessage,
		Status:          pending.Status,
	}, nil
}

// GetTransaction returns the ledger entry for operators
func (s *InitiationService) GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	txn, err := s.transactions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{Code: ErrCodeTransactionNotFound, Message: "transaction not found"}
		}
		return nil, internalError("failed to load transaction", err)
	}
	return txn, nil
}

// ListTransactionEvents returns the status history of a transaction, oldest first
func (s *InitiationService) ListTransactionEvents(ctx context.Context, id uuid.UUID) ([]*models.TransactionEvent, error) {
	events, err := s.transactions.ListEvents(ctx, id)
	if err != nil {
		return nil, internalError("failed to load transaction events", err)
	}
	return events, nil
}

func (s *InitiationService) failInitiation(ctx context.Context, logger *slog.Logger, txn *models.Transaction, reason string) {
	_, err := s.transactions.Transition(ctx, models.Transition{
		ID:            txn.ID,
		From:          models.TransactionStatusCreated,
		To:            models.TransactionStatusFailed,
		FailureReason: &reason,
		Reason:        "initiation failed",
	})
	if err != nil {
		logger.Error("failed to mark initiation as failed", "reason", reason, "error", err)
		return
	}
	logger.Warn("payment initiation failed", "reason", reason)
}

func failureReason(err error) string {
	var gwErr *gateway.Error
	if errors.As(err, &gwErr) {
		return "gateway_" + string(gwErr.Kind)
	}
	return "gateway_error"
}

func gatewayServiceError(err error) *ServiceError {
	if gateway.IsKind(err, gateway.KindInvalidRequest) {
		var gwErr *gateway.Error
		errors.As(err, &gwErr)
		return &ServiceError{Code: ErrCodeValidation, Message: gwErr.Message, Err: err}
	}
	return &ServiceError{
		Code:      ErrCodeGatewayError,
		Message:   "payment provider could not start the payment",
		Err:       err,
		Retryable: gateway.IsRetryable(err),
	}
}

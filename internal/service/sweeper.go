package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/storefront/payments/internal/models"
	"github.com/storefront/payments/internal/repository"
)

const (
	expiredReason   = "payment_window_elapsed"
	abandonedReason = "initiation_abandoned"
)

// SweepResult counts what a single sweep changed
type SweepResult struct {
	Expired     int
	Abandoned   int
	Reprojected int
}

// Sweeper expires stale attempts and retries failed order projections
type Sweeper struct {
	transactions repository.TransactionRepository
	projector    Projector
	logger       *slog.Logger
	now          func() time.Time
	expiryWindow time.Duration
	interval     time.Duration
	batchSize    int
}

// NewSweeper creates a new Sweeper
func NewSweeper(
	transactions repository.TransactionRepository,
	projector Projector,
	expiryWindow, interval time.Duration,
	batchSize int,
	logger *slog.Logger,
) *Sweeper {
	return &Sweeper{
		transactions: transactions,
		projector:    projector,
		expiryWindow: expiryWindow,
		interval:     interval,
		batchSize:    batchSize,
		logger:       logger,
		now:          time.Now,
	}
}

// Run sweeps on every interval until ctx is cancelled
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("sweeper started",
		"interval", s.interval.String(),
		"expiry_window", s.expiryWindow.String(),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper stopped")
			return nil
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error("sweep failed", "error", err)
			}
		}
	}
}

// SweepOnce runs a single pass:
//   - PENDING older than the expiry window become EXPIRED and fail their order
//   - CREATED older than the window become FAILED without touching the order
//   - terminal transactions whose projection is still pending are re-projected
func (s *Sweeper) SweepOnce(ctx context.Context) (*SweepResult, error) {
	result := &SweepResult{}
	cutoff := s.now().Add(-s.expiryWindow)

	var errs []error

	expired, err := s.expirePending(ctx, cutoff)
	result.Expired = expired
	if err != nil {
		errs = append(errs, err)
	}

	abandoned, err := s.failAbandoned(ctx, cutoff)
	result.Abandoned = abandoned
	if err != nil {
		errs = append(errs, err)
	}

	reprojected, err := s.reproject(ctx)
	result.Reprojected = reprojected
	if err != nil {
		errs = append(errs, err)
	}

	if expired+abandoned+reprojected > 0 {
		s.logger.Info("sweep completed",
			"expired", expired,
			"abandoned", abandoned,
			"reprojected", reprojected,
		)
	}

	return result, errors.Join(errs...)
}

func (s *Sweeper) expirePending(ctx context.Context, cutoff time.Time) (int, error) {
	stale, err := s.transactions.ListStale(ctx, models.TransactionStatusPending, cutoff, s.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale pending transactions: %w", err)
	}

	count := 0
	for _, txn := range stale {
		reason := expiredReason
		updated, err := s.transactions.Transition(ctx, models.Transition{
			ID:                txn.ID,
			From:              models.TransactionStatusPending,
			To:                models.TransactionStatusExpired,
			FailureReason:     &reason,
			ProjectionPending: true,
			Reason:            "expiry sweep",
		})
		if errors.Is(err, models.ErrStateConflict) {
			// a callback settled it first
			continue
		}
		if err != nil {
			s.logger.Error("failed to expire transaction", "transaction_id", txn.ID, "error", err)
			continue
		}

		count++
		logger := s.logger.With(
			"transaction_id", updated.ID,
			"order_id", updated.OrderID,
			"provider", updated.Provider,
			"correlation_id", updated.CorrelationID(),
		)
		logger.Info("transaction expired")

		_ = projectTransaction(ctx, s.transactions, s.projector, logger, updated) //nolint:errcheck // retried next sweep
	}

	return count, nil
}

func (s *Sweeper) failAbandoned(ctx context.Context, cutoff time.Time) (int, error) {
	stale, err := s.transactions.ListStale(ctx, models.TransactionStatusCreated, cutoff, s.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list abandoned transactions: %w", err)
	}

	count := 0
	for _, txn := range stale {
		reason := abandonedReason
		_, err := s.transactions.Transition(ctx, models.Transition{
			ID:            txn.ID,
			From:          models.TransactionStatusCreated,
			To:            models.TransactionStatusFailed,
			FailureReason: &reason,
			Reason:        "expiry sweep",
		})
		if errors.Is(err, models.ErrStateConflict) {
			continue
		}
		if err != nil {
			s.logger.Error("failed to fail abandoned transaction", "transaction_id", txn.ID, "error", err)
			continue
		}

		count++
		s.logger.Warn("abandoned initiation failed",
			"transaction_id", txn.ID,
			"order_id", txn.OrderID,
			"provider", txn.Provider,
		)
	}

	return count, nil
}

func (s *Sweeper) reproject(ctx context.Context) (int, error) {
	pending, err := s.transactions.ListProjectionPending(ctx, s.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list unprojected transactions: %w", err)
	}

	count := 0
	for _, txn := range pending {
		logger := s.logger.With("transaction_id", txn.ID, "order_id", txn.OrderID)
		if err := projectTransaction(ctx, s.transactions, s.projector, logger, txn); err != nil {
			continue
		}
		count++
	}

	return count, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/payments/internal/db"
	"github.com/storefront/payments/internal/models"
)

// TransactionRepository is the payment ledger. Every status change goes
// through Transition, which only applies while the stored status matches.
type TransactionRepository interface {
	Create(ctx context.Context, txn *models.Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	FindByCorrelationID(ctx context.Context, provider models.Provider, correlationID string) (*models.Transaction, error)
	FindSucceededByOrderID(ctx context.Context, orderID string) (*models.Transaction, error)
	Transition(ctx context.Context, t models.Transition) (*models.Transaction, error)
	ClearProjectionPending(ctx context.Context, id uuid.UUID) error
	ListStale(ctx context.Context, status models.TransactionStatus, createdBefore time.Time, limit int) ([]*models.Transaction, error)
	ListProjectionPending(ctx context.Context, limit int) ([]*models.Transaction, error)
	ListEvents(ctx context.Context, id uuid.UUID) ([]*models.TransactionEvent, error)
}

const transactionColumns = `
	id, order_id, provider, provider_correlation_id, status, amount_cents, currency,
	payer_phone, payer_email, gateway_reference, failure_reason, raw_callback,
	projection_pending, created_at, updated_at`

type transactionRepository struct {
	db *db.DB
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(database *db.DB) TransactionRepository {
	return &transactionRepository{db: database}
}

// Create inserts a new ledger row and its creation event
func (r *transactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	now := time.Now().UTC()
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = now
	}
	txn.UpdatedAt = txn.CreatedAt

	return withTx(ctx, r.db, func(tx *db.Tx) error {
		query := `
			INSERT INTO payment_transactions (
				id, order_id, provider, provider_correlation_id, status, amount_cents, currency,
				payer_phone, payer_email, gateway_reference, failure_reason, raw_callback,
				projection_pending, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		_, err := tx.ExecContext(ctx, tx.Rebind(query),
			txn.ID,
			txn.OrderID,
			string(txn.Provider),
			txn.ProviderCorrelationID,
			string(txn.Status),
			txn.AmountCents,
			txn.Currency,
			txn.PayerPhone,
			txn.PayerEmail,
			txn.GatewayReference,
			txn.FailureReason,
			nullBytes(txn.RawCallback),
			txn.ProjectionPending,
			txn.CreatedAt,
			txn.UpdatedAt,
		)
		if err != nil {
			if db.IsUniqueViolation(err) {
				return models.ErrDuplicateCorrelation
			}
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		return insertEvent(ctx, tx, txn.ID, "", txn.Status, "created", txn.CreatedAt)
	})
}

// FindByID retrieves a transaction by its UUID
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	query := `SELECT` + transactionColumns + ` FROM payment_transactions WHERE id = ?`
	txn, err := scanTransaction(r.db.QueryRowContext(ctx, r.db.Rebind(query), id))
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction by id: %w", err)
	}
	return txn, nil
}

// FindByCorrelationID resolves a provider correlation id to its transaction
func (r *transactionRepository) FindByCorrelationID(ctx context.Context, provider models.Provider, correlationID string) (*models.Transaction, error) {
	query := `SELECT` + transactionColumns + `
		FROM payment_transactions
		WHERE provider = ? AND provider_correlation_id = ?`
	txn, err := scanTransaction(r.db.QueryRowContext(ctx, r.db.Rebind(query), string(provider), correlationID))
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction by correlation id: %w", err)
	}
	return txn, nil
}

// FindSucceededByOrderID returns the single succeeded transaction of an order, if any
func (r *transactionRepository) FindSucceededByOrderID(ctx context.Context, orderID string) (*models.Transaction, error) {
	query := `SELECT` + transactionColumns + `
		FROM payment_transactions
		WHERE order_id = ? AND status = ?`
	txn, err := scanTransaction(r.db.QueryRowContext(ctx, r.db.Rebind(query), orderID, string(models.TransactionStatusSucceeded)))
	if err != nil {
		return nil, fmt.Errorf("failed to find succeeded transaction: %w", err)
	}
	return txn, nil
}

// Transition applies a guarded status change and records it in the event history.
//
// Returns models.ErrStateConflict when the stored status no longer equals t.From,
// models.ErrDuplicateSuccess when the order already has a succeeded transaction and
// models.ErrDuplicateCorrelation when the correlation id is mapped elsewhere.
func (r *transactionRepository) Transition(ctx context.Context, t models.Transition) (*models.Transaction, error) {
	if !models.IsValidTransition(t.From, t.To) {
		return nil, fmt.Errorf("invalid transition %s -> %s", t.From, t.To)
	}

	now := time.Now().UTC()

	err := withTx(ctx, r.db, func(tx *db.Tx) error {
		query := `
			UPDATE payment_transactions
			SET status = ?,
			    provider_correlation_id = COALESCE(?, provider_correlation_id),
			    gateway_reference = COALESCE(?, gateway_reference),
			    failure_reason = COALESCE(?, failure_reason),
			    raw_callback = COALESCE(?, raw_callback),
			    projection_pending = ?,
			    updated_at = ?
			WHERE id = ? AND status = ?
		`
		result, err := tx.ExecContext(ctx, tx.Rebind(query),
			string(t.To),
			t.CorrelationID,
			t.GatewayReference,
			t.FailureReason,
			nullBytes(t.RawCallback),
			t.ProjectionPending,
			now,
			t.ID,
			string(t.From),
		)
		if err != nil {
			if db.IsUniqueViolation(err) {
				if t.To == models.TransactionStatusSucceeded {
					return models.ErrDuplicateSuccess
				}
				return models.ErrDuplicateCorrelation
			}
			return fmt.Errorf("failed to transition transaction: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return models.ErrStateConflict
		}

		return insertEvent(ctx, tx, t.ID, t.From, t.To, t.Reason, now)
	})
	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, t.ID)
}

// ClearProjectionPending marks the terminal outcome as applied to the order
func (r *transactionRepository) ClearProjectionPending(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE payment_transactions
		SET projection_pending = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), false, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to clear projection flag: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	return nil
}

// ListStale returns transactions in status created before the given instant, oldest first
func (r *transactionRepository) ListStale(ctx context.Context, status models.TransactionStatus, createdBefore time.Time, limit int) ([]*models.Transaction, error) {
	query := `SELECT` + transactionColumns + `
		FROM payment_transactions
		WHERE status = ? AND created_at < ?
		ORDER BY created_at
		LIMIT ?`
	return r.list(ctx, query, string(status), createdBefore.UTC(), limit)
}

// ListProjectionPending returns terminal transactions whose order update has not landed
func (r *transactionRepository) ListProjectionPending(ctx context.Context, limit int) ([]*models.Transaction, error) {
	query := `SELECT` + transactionColumns + `
		FROM payment_transactions
		WHERE projection_pending = ?
		ORDER BY updated_at
		LIMIT ?`
	return r.list(ctx, query, true, limit)
}

// ListEvents returns the status history of a transaction, oldest first
func (r *transactionRepository) ListEvents(ctx context.Context, id uuid.UUID) ([]*models.TransactionEvent, error) {
	query := `
		SELECT id, transaction_id, from_status, to_status, reason, created_at
		FROM transaction_events
		WHERE transaction_id = ?
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), id)
	if err != nil {
		return nil, fmt.Errorf("failed to list transaction events: %w", err)
	}
	defer rows.Close()

	var events []*models.TransactionEvent
	for rows.Next() {
		var (
			event    models.TransactionEvent
			from, to string
		)
		if err := rows.Scan(&event.ID, &event.TransactionID, &from, &to, &event.Reason, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction event: %w", err)
		}
		event.FromStatus = models.TransactionStatus(from)
		event.ToStatus = models.TransactionStatus(to)
		events = append(events, &event)
	}

	return events, rows.Err()
}

func (r *transactionRepository) list(ctx context.Context, query string, args ...any) ([]*models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []*models.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}

	return txns, rows.Err()
}

func insertEvent(ctx context.Context, tx *db.Tx, txnID uuid.UUID, from, to models.TransactionStatus, reason string, at time.Time) error {
	query := `
		INSERT INTO transaction_events (id, transaction_id, from_status, to_status, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, tx.Rebind(query), uuid.New(), txnID, string(from), string(to), reason, at); err != nil {
		return fmt.Errorf("failed to record transaction event: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var (
		txn                      models.Transaction
		provider, status         string
		correlationID, reference sql.NullString
		failureReason            sql.NullString
	)

	err := row.Scan(
		&txn.ID,
		&txn.OrderID,
		&provider,
		&correlationID,
		&status,
		&txn.AmountCents,
		&txn.Currency,
		&txn.PayerPhone,
		&txn.PayerEmail,
		&reference,
		&failureReason,
		&txn.RawCallback,
		&txn.ProjectionPending,
		&txn.CreatedAt,
		&txn.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	txn.Provider = models.Provider(provider)
	txn.Status = models.TransactionStatus(status)
	txn.ProviderCorrelationID = nullStringPtr(correlationID)
	txn.GatewayReference = nullStringPtr(reference)
	txn.FailureReason = nullStringPtr(failureReason)

	return &txn, nil
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

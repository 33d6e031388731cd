package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/storefront/payments/internal/db"
	"github.com/storefront/payments/internal/models"
)

// OrderRepository is the boundary to the storefront order store. Payment
// status writes are conditional on the status the caller last read.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	UpdatePaymentStatus(ctx context.Context, id string, from, to models.PaymentStatus, reference *string) error
}

type orderRepository struct {
	db *db.DB
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(database *db.DB) OrderRepository {
	return &orderRepository{db: database}
}

// Create inserts an order in the pending payment state
func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	now := time.Now().UTC()
	if order.PaymentStatus == "" {
		order.PaymentStatus = models.PaymentStatusPending
	}
	order.CreatedAt = now
	order.UpdatedAt = now

	query := `
		INSERT INTO orders (id, total_cents, currency, payment_status, gateway_reference, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		order.ID,
		order.TotalCents,
		order.Currency,
		string(order.PaymentStatus),
		order.GatewayReference,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// GetOrder retrieves an order by id
func (r *orderRepository) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	query := `
		SELECT id, total_cents, currency, payment_status, gateway_reference, created_at, updated_at
		FROM orders
		WHERE id = ?
	`

	var (
		order     models.Order
		status    string
		reference sql.NullString
	)
	err := r.db.QueryRowContext(ctx, r.db.Rebind(query), id).Scan(
		&order.ID,
		&order.TotalCents,
		&order.Currency,
		&status,
		&reference,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order by id: %w", err)
	}

	order.PaymentStatus = models.PaymentStatus(status)
	order.GatewayReference = nullStringPtr(reference)

	return &order, nil
}

// UpdatePaymentStatus moves an order's payment status from one value to another.
// Returns models.ErrStateConflict when the stored status is no longer from.
func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, id string, from, to models.PaymentStatus, reference *string) error {
	query := `
		UPDATE orders
		SET payment_status = ?,
		    gateway_reference = COALESCE(?, gateway_reference),
		    updated_at = ?
		WHERE id = ? AND payment_status = ?
	`
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		string(to),
		reference,
		time.Now().UTC(),
		id,
		string(from),
	)
	if err != nil {
		return fmt.Errorf("failed to update order payment status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrStateConflict
	}

	return nil
}

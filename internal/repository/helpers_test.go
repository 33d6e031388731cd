package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/storefront/payments/internal/db"
	"github.com/storefront/payments/internal/models"
)

func setupTestDB(t *testing.T) *db.DB {
	t.Helper()
	return db.NewTestDB(t)
}

func seedOrder(t *testing.T, database *db.DB, id string, total int64) *models.Order {
	t.Helper()

	order := &models.Order{ID: id, TotalCents: total, Currency: "KES"}
	require.NoError(t, NewOrderRepository(database).Create(context.Background(), order))
	return order
}

func newPendingTransaction(t *testing.T, repo TransactionRepository, orderID, correlationID string) *models.Transaction {
	t.Helper()
	ctx := context.Background()

	txn := &models.Transaction{
		OrderID:     orderID,
		Provider:    models.ProviderMPesa,
		Status:      models.TransactionStatusCreated,
		AmountCents: 1500,
		Currency:    "KES",
		PayerPhone:  "254712345678",
	}
	require.NoError(t, repo.Create(ctx, txn))

	pending, err := repo.Transition(ctx, models.Transition{
		ID:            txn.ID,
		From:          models.TransactionStatusCreated,
		To:            models.TransactionStatusPending,
		CorrelationID: strPtr(correlationID),
		Reason:        "gateway accepted",
	})
	require.NoError(t, err)
	return pending
}

func strPtr(s string) *string {
	return &s
}

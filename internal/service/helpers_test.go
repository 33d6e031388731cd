package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/storefront/payments/internal/config"
	"github.com/storefront/payments/internal/db"
	"github.com/storefront/payments/internal/gateway"
	"github.com/storefront/payments/internal/models"
	"github.com/storefront/payments/internal/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// scriptedGateway hands out predetermined correlation ids and parses
// sandbox-format callbacks.
type scriptedGateway struct {
	*gateway.Sandbox
	provider models.Provider
	ids      []string
	mu       sync.Mutex
}

func newScriptedGateway(provider models.Provider, ids ...string) *scriptedGateway {
	return &scriptedGateway{
		Sandbox:  gateway.NewSandbox(config.SandboxConfig{Enabled: true}, testLogger()),
		provider: provider,
		ids:      ids,
	}
}

func (g *scriptedGateway) Provider() models.Provider {
	return g.provider
}

func (g *scriptedGateway) Initiate(ctx context.Context, req gateway.InitiationRequest) (*gateway.Handle, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.ids) == 0 {
		return g.Sandbox.Initiate(ctx, req)
	}
	id := g.ids[0]
	g.ids = g.ids[1:]
	return &gateway.Handle{CorrelationID: id, CustomerMessage: "check your phone"}, nil
}

// failingProjector always fails, leaving projections pending
type failingProjector struct{}

func (failingProjector) Apply(context.Context, string, ProjectionOutcome, string) error {
	return &ServiceError{Code: ErrCodeProjectionFailed, Message: "order store unavailable"}
}

type testEnv struct {
	db             *db.DB
	transactions   repository.TransactionRepository
	orders         repository.OrderRepository
	projector      *OrderProjector
	gateways       *gateway.Registry
	initiation     *InitiationService
	reconciliation *ReconciliationService
	sweeper        *Sweeper
}

func newTestEnv(t *testing.T, gateways ...gateway.Gateway) *testEnv {
	t.Helper()

	database := db.NewTestDB(t)
	transactions := repository.NewTransactionRepository(database)
	orders := repository.NewOrderRepository(database)
	projector := NewOrderProjector(orders, testLogger())

	if len(gateways) == 0 {
		gateways = []gateway.Gateway{newScriptedGateway(models.ProviderMPesa, "C1", "C2", "C3")}
	}
	registry := gateway.NewRegistry(gateways...)

	return &testEnv{
		db:             database,
		transactions:   transactions,
		orders:         orders,
		projector:      projector,
		gateways:       registry,
		initiation:     NewInitiationService(transactions, orders, registry, time.Second, testLogger()),
		reconciliation: NewReconciliationService(transactions, projector, registry, testLogger()),
		sweeper:        NewSweeper(transactions, projector, 15*time.Minute, time.Minute, 100, testLogger()),
	}
}

func (e *testEnv) seedOrder(t *testing.T, id string, totalCents int64, currency string) {
	t.Helper()
	require.NoError(t, e.orders.Create(context.Background(), &models.Order{ID: id, TotalCents: totalCents, Currency: currency}))
}

func (e *testEnv) initiateMPesa(t *testing.T, orderID string) *InitiationResult {
	t.Helper()
	result, err := e.initiation.Initiate(context.Background(), PaymentRequest{
		OrderID:     orderID,
		Provider:    models.ProviderMPesa,
		Currency:    "KES",
		PayerPhone:  "+254712345678",
		AmountCents: 1500,
	})
	require.NoError(t, err)
	return result
}

func (e *testEnv) countTransactions(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, e.db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM payment_transactions").Scan(&n))
	return n
}

func (e *testEnv) order(t *testing.T, id string) *models.Order {
	t.Helper()
	order, err := e.orders.GetOrder(context.Background(), id)
	require.NoError(t, err)
	return order
}

func (e *testEnv) transaction(t *testing.T, result *InitiationResult) *models.Transaction {
	t.Helper()
	txn, err := e.transactions.FindByID(context.Background(), result.TransactionID)
	require.NoError(t, err)
	return txn
}

func callback(t *testing.T, correlation, result, reference string) gateway.CallbackRequest {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"correlation": correlation,
		"result":      result,
		"reference":   reference,
	})
	require.NoError(t, err)
	return gateway.CallbackRequest{Body: body}
}

func serviceErrorCode(t *testing.T, err error) string {
	t.Helper()
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	return svcErr.Code
}

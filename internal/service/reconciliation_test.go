package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storefront/payments/internal/gateway"
	gatewaymocks "github.com/storefront/payments/internal/gateway/mocks"
	"github.com/storefront/payments/internal/models"
	"github.com/storefront/payments/internal/repository/mocks"
)

func TestReconciliationService_SuccessAndReplay(t *testing.T) {
	env := newTestEnv(t)
	env.seedOrder(t, "O1", 1500, "KES")
	result := env.initiateMPesa(t, "O1")
	ctx := context.Background()

	ack, err := env.reconciliation.HandleCallback(ctx, models.ProviderMPesa, callback(t, "C1", "success", "QFT123"))
	require.NoError(t, err)
	assert.Equal(t, AckApplied, ack.Result)
	assert.Equal(t, models.TransactionStatusSucceeded, ack.Status)
	assert.Equal(t, result.TransactionID, ack.TransactionID)

	txn := env.transaction(t, result)
	assert.Equal(t, models.TransactionStatusSucceeded, txn.Status)
	require.NotNil(t, txn.GatewayReference)
	assert.Equal(t, "QFT123", *txn.GatewayReference)
	assert.False(t, txn.ProjectionPending)
	assert.NotEmpty(t, txn.RawCallback)

	order := env.order(t, "O1")
	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
	require.NotNil(t, order.GatewayReference)
	assert.Equal(t, "QFT123", *order.GatewayReference)

	replay, err := env.reconciliation.HandleCallback(ctx, models.ProviderMPesa, callback(t, "C1", "success", "QFT123"))
	require.NoError(t, err)
	assert.Equal(t, AckReplayed, replay.Result)
	assert.Equal(t, models.TransactionStatusSucceeded, replay.Status)

	contradicting, err := env.reconciliation.HandleCallback(ctx, models.ProviderMPesa, callback(t, "C1", "failed", ""))
	require.NoError(t, err)
	assert.Equal(t, AckReplayed, contradicting.Result)

	after := env.transaction(t, result)
	assert.True(t, txn.UpdatedAt.Equal(after.UpdatedAt), "replays must not mutate the ledger")
	assert.Equal(t, models.TransactionStatusSucceeded, after.Status)
	assert.Equal(t, models.PaymentStatusPaid, env.order(t, "O1").PaymentStatus)

	events, err := env.transactions.ListEvents(ctx, result.TransactionID)
	require.NoError(t, err)
	assert.Len(t, events, 3, "created, pending, succeeded")
}

func TestReconciliationService_Failure(t *testing.T) {
	env := newTestEnv(t)
	env.seedOrder(t, "O1", 1500, "KES")
	result := env.initiateMPesa(t, "O1")

	ack, err := env.reconciliation.HandleCallback(context.Background(), models.ProviderMPesa, callback(t, "C1", "cancelled", ""))
	require.NoError(t, err)
	assert.Equal(t, AckApplied, ack.Result)
	assert.Equal(t, models.TransactionStatusFailed, ack.Status)

	txn := env.transaction(t, result)
	require.NotNil(t, txn.FailureReason)
	assert.Equal(t, "cancelled_by_user", *txn.FailureReason)
	assert.Nil(t, txn.GatewayReference)
	assert.Equal(t, models.PaymentStatusFailed, env.order(t, "O1").PaymentStatus)
}

func TestReconciliationService_UnknownCorrelation(t *testing.T) {
	env := newTestEnv(t)
	env.seedOrder(t, "O1", 1500, "KES")
	env.initiateMPesa(t, "O1")
	before := env.countTransactions(t)

	ack, err := env.reconciliation.HandleCallback(context.Background(), models.ProviderMPesa, callback(t, "UNKNOWN", "success", "X"))

	assert.Nil(t, ack)
	assert.Equal(t, ErrCodeUnknownCorrelation, serviceErrorCode(t, err))
	assert.Equal(t, before, env.countTransactions(t), "unknown correlation ids never create state")
	assert.Equal(t, models.PaymentStatusPending, env.order(t, "O1").PaymentStatus)
}

func TestReconciliationService_Rejections(t *testing.T) {
	t.Run("malformed payload", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.reconciliation.HandleCallback(context.Background(), models.ProviderMPesa, gateway.CallbackRequest{Body: []byte(`{"correlation":`)})

		assert.Equal(t, ErrCodeMalformedCallback, serviceErrorCode(t, err))
	})

	t.Run("unknown provider", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.reconciliation.HandleCallback(context.Background(), "paypal", callback(t, "C1", "success", "R"))

		assert.Equal(t, ErrCodeUnknownProvider, serviceErrorCode(t, err))
	})

	t.Run("failed authentication", func(t *testing.T) {
		gw := gatewaymocks.NewMockGateway(t)
		gw.On("Provider").Return(models.ProviderCheckout)
		gw.On("ParseCallback", mock.Anything).
			Return(nil, &gateway.Error{Kind: gateway.KindUnauthorized, Message: "signature mismatch"})
		env := newTestEnv(t, gw)

		_, err := env.reconciliation.HandleCallback(context.Background(), models.ProviderCheckout, gateway.CallbackRequest{Body: []byte(`{}`)})

		assert.Equal(t, ErrCodeUnauthorizedCallback, serviceErrorCode(t, err))
	})

	t.Run("ignored event", func(t *testing.T) {
		gw := gatewaymocks.NewMockGateway(t)
		gw.On("Provider").Return(models.ProviderCheckout)
		gw.On("ParseCallback", mock.Anything).
			Return(&gateway.Notification{CorrelationID: "cs_1", Outcome: gateway.OutcomeIgnored}, nil)
		env := newTestEnv(t, gw)

		ack, err := env.reconciliation.HandleCallback(context.Background(), models.ProviderCheckout, gateway.CallbackRequest{Body: []byte(`{}`)})

		require.NoError(t, err)
		assert.Equal(t, AckIgnored, ack.Result)
	})
}

func TestReconciliationService_StoreFailureIsInternal(t *testing.T) {
	txRepo := mocks.NewMockTransactionRepository(t)
	orderRepo := mocks.NewMockOrderRepository(t)
	registry := gateway.NewRegistry(newScriptedGateway(models.ProviderMPesa))
	svc := NewReconciliationService(txRepo, NewOrderProjector(orderRepo, testLogger()), registry, testLogger())

	txRepo.On("FindByCorrelationID", mock.Anything, models.ProviderMPesa, "C1").
		Return(nil, errors.New("connection refused"))

	_, err := svc.HandleCallback(context.Background(), models.ProviderMPesa, callback(t, "C1", "success", "R"))

	assert.Equal(t, ErrCodeInternalError, serviceErrorCode(t, err))
}

func TestReconciliationService_ConcurrentCallbacksApplyOnce(t *testing.T) {
	env := newTestEnv(t)
	env.seedOrder(t, "O1", 1500, "KES")
	result := env.initiateMPesa(t, "O1")

	callbacks := []gateway.CallbackRequest{
		callback(t, "C1", "success", "QFT123"),
		callback(t, "C1", "failed", ""),
		callback(t, "C1", "success", "QFT123"),
		callback(t, "C1", "cancelled", ""),
		callback(t, "C1", "success", "QFT123"),
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		applied []*CallbackAck
	)
	for _, cb := range callbacks {
		wg.Add(1)
		go func(cb gateway.CallbackRequest) {
			defer wg.Done()
			ack, err := env.reconciliation.HandleCallback(context.Background(), models.ProviderMPesa, cb)
			if !assert.NoError(t, err) {
				return
			}
			if ack.Result == AckApplied {
				mu.Lock()
				applied = append(applied, ack)
				mu.Unlock()
			}
		}(cb)
	}
	wg.Wait()

	require.Len(t, applied, 1, "exactly one callback applies")

	txn := env.transaction(t, result)
	assert.Equal(t, applied[0].Status, txn.Status)

	expectedOrder := models.PaymentStatusFailed
	if txn.Status == models.TransactionStatusSucceeded {
		expectedOrder = models.PaymentStatusPaid
	}
	assert.Equal(t, expectedOrder, env.order(t, "O1").PaymentStatus)
}

func TestReconciliationService_AtMostOneSuccessPerOrder(t *testing.T) {
	env := newTestEnv(t)
	env.seedOrder(t, "O1", 1500, "KES")
	first := env.initiateMPesa(t, "O1")
	second := env.initiateMPesa(t, "O1")
	ctx := context.Background()

	_, err := env.reconciliation.HandleCallback(ctx, models.ProviderMPesa, callback(t, "C1", "success", "QFT123"))
	require.NoError(t, err)

	ack, err := env.reconciliation.HandleCallback(ctx, models.ProviderMPesa, callback(t, "C2", "success", "QFT124"))
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusFailed, ack.Status)

	loser := env.transaction(t, second)
	assert.Equal(t, models.TransactionStatusFailed, loser.Status)
	require.NotNil(t, loser.FailureReason)
	assert.Equal(t, duplicatePaymentReason, *loser.FailureReason)
	assert.False(t, loser.ProjectionPending)

	succeeded, err := env.transactions.FindSucceededByOrderID(ctx, "O1")
	require.NoError(t, err)
	assert.Equal(t, first.TransactionID, succeeded.ID)

	order := env.order(t, "O1")
	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, "QFT123", *order.GatewayReference)
}

func TestReconciliationService_FailureNeverDowngradesPaidOrder(t *testing.T) {
	env := newTestEnv(t)
	env.seedOrder(t, "O1", 1500, "KES")
	env.initiateMPesa(t, "O1")
	env.initiateMPesa(t, "O1")
	ctx := context.Background()

	_, err := env.reconciliation.HandleCallback(ctx, models.ProviderMPesa, callback(t, "C1", "success", "QFT123"))
	require.NoError(t, err)
	_, err = env.reconciliation.HandleCallback(ctx, models.ProviderMPesa, callback(t, "C2", "failed", ""))
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPaid, env.order(t, "O1").PaymentStatus)
}

func TestReconciliationService_ProjectionFailureLeavesFlag(t *testing.T) {
	env := newTestEnv(t)
	env.reconciliation.projector = failingProjector{}
	env.seedOrder(t, "O1", 1500, "KES")
	result := env.initiateMPesa(t, "O1")

	ack, err := env.reconciliation.HandleCallback(context.Background(), models.ProviderMPesa, callback(t, "C1", "success", "QFT123"))
	require.NoError(t, err, "the callback is accepted even when the order write fails")
	assert.Equal(t, AckApplied, ack.Result)

	txn := env.transaction(t, result)
	assert.Equal(t, models.TransactionStatusSucceeded, txn.Status)
	assert.True(t, txn.ProjectionPending)
	assert.Equal(t, models.PaymentStatusPending, env.order(t, "O1").PaymentStatus)
}

func TestReconciliationService_AmountMismatchStillApplies(t *testing.T) {
	gw := gatewaymocks.NewMockGateway(t)
	gw.On("Provider").Return(models.ProviderMPesa)
	gw.On("Initiate", mock.Anything, mock.Anything).Return(&gateway.Handle{CorrelationID: "C1"}, nil)
	gw.On("ParseCallback", mock.Anything).
		Return(&gateway.Notification{CorrelationID: "C1", Outcome: gateway.OutcomeSucceeded, Reference: "QFT123", AmountCents: 100}, nil)

	env := newTestEnv(t, gw)
	env.seedOrder(t, "O1", 1500, "KES")
	env.initiateMPesa(t, "O1")

	ack, err := env.reconciliation.HandleCallback(context.Background(), models.ProviderMPesa, gateway.CallbackRequest{Body: []byte(`{}`)})

	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusSucceeded, ack.Status)
}

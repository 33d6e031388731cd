package handlers

import (
	"context"

	"github.com/storefront/payments/internal/api"
	"github.com/storefront/payments/internal/models"
	"github.com/storefront/payments/internal/service"
)

// CreatePayment handles POST /api/v1/payments
func (h *Handler) CreatePayment(
	ctx context.Context,
	request api.CreatePaymentRequestObject,
) (api.CreatePaymentResponseObject, error) {
	body := request.Body
	result, err := h.initiator.Initiate(ctx, service.PaymentRequest{
		OrderID:     body.OrderId,
		Provider:    models.Provider(body.Provider),
		Currency:    body.Currency,
		PayerPhone:  valueOf(body.PayerPhone),
		PayerEmail:  valueOf(body.PayerEmail),
		AmountCents: body.AmountCents,
	})
	if err != nil {
		status, resp := h.errorResponse(ctx, "CreatePayment", err)
		return api.CreatePaymentdefaultJSONResponse{StatusCode: status, Body: resp}, nil
	}

	return api.CreatePayment201JSONResponse{
		TransactionId:   result.TransactionID,
		Provider:        string(result.Provider),
		Status:          api.TransactionStatus(result.Status),
		CorrelationId:   optional(result.CorrelationID),
		CheckoutUrl:     optional(result.CheckoutURL),
		CustomerMessage: optional(result.CustomerMessage),
	}, nil
}

// GetPayment handles GET /api/v1/payments/{transactionId}. The operator view
// carries the full status history of the attempt.
func (h *Handler) GetPayment(
	ctx context.Context,
	request api.GetPaymentRequestObject,
) (api.GetPaymentResponseObject, error) {
	txn, err := h.initiator.GetTransaction(ctx, request.TransactionId)
	if err != nil {
		status, resp := h.errorResponse(ctx, "GetPayment", err)
		return api.GetPaymentdefaultJSONResponse{StatusCode: status, Body: resp}, nil
	}

	events, err := h.initiator.ListTransactionEvents(ctx, txn.ID)
	if err != nil {
		status, resp := h.errorResponse(ctx, "GetPayment", err)
		return api.GetPaymentdefaultJSONResponse{StatusCode: status, Body: resp}, nil
	}

	return api.GetPayment200JSONResponse{
		TransactionId:     txn.ID,
		OrderId:           txn.OrderID,
		Provider:          string(txn.Provider),
		Status:            api.TransactionStatus(txn.Status),
		AmountCents:       txn.AmountCents,
		Currency:          txn.Currency,
		CorrelationId:     txn.ProviderCorrelationID,
		GatewayReference:  txn.GatewayReference,
		FailureReason:     txn.FailureReason,
		ProjectionPending: txn.ProjectionPending,
		Events:            toEventResponses(events),
		CreatedAt:         txn.CreatedAt,
		UpdatedAt:         txn.UpdatedAt,
	}, nil
}

func toEventResponses(events []*models.TransactionEvent) []api.TransactionEvent {
	out := make([]api.TransactionEvent, 0, len(events))
	for _, e := range events {
		event := api.TransactionEvent{
			ToStatus:  api.TransactionStatus(e.ToStatus),
			Reason:    e.Reason,
			CreatedAt: e.CreatedAt,
		}
		// the creation event has no previous status
		if e.FromStatus != "" {
			from := api.TransactionStatus(e.FromStatus)
			event.FromStatus = &from
		}
		out = append(out, event)
	}
	return out
}

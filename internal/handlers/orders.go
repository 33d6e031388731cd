package handlers

import (
	"context"

	"github.com/storefront/payments/internal/api"
)

// GetOrderPaymentStatus handles GET /api/v1/orders/{orderId}/payment-status.
// Only the projected status is exposed; gateway detail stays in the ledger.
func (h *Handler) GetOrderPaymentStatus(
	ctx context.Context,
	request api.GetOrderPaymentStatusRequestObject,
) (api.GetOrderPaymentStatusResponseObject, error) {
	order, err := h.statusReader.GetPaymentStatus(ctx, request.OrderId)
	if err != nil {
		status, resp := h.errorResponse(ctx, "GetOrderPaymentStatus", err)
		return api.GetOrderPaymentStatusdefaultJSONResponse{StatusCode: status, Body: resp}, nil
	}

	return api.GetOrderPaymentStatus200JSONResponse{
		OrderId:       order.ID,
		PaymentStatus: api.PaymentStatus(order.PaymentStatus),
	}, nil
}

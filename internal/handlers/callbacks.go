package handlers

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/storefront/payments/internal/api"
	"github.com/storefront/payments/internal/gateway"
	"github.com/storefront/payments/internal/models"
)

// HandleCallback handles POST /api/v1/callbacks/{provider}.
//
// 200 tells the provider to stop delivering. 4xx responses mark payloads that
// will never be accepted; only store failures answer 500 so the provider
// retries.
func (h *Handler) HandleCallback(
	ctx context.Context,
	request api.HandleCallbackRequestObject,
) (api.HandleCallbackResponseObject, error) {
	provider := models.Provider(request.Provider)

	body, err := io.ReadAll(request.Body)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to read callback body", "provider", provider, "error", err)
		return api.HandleCallbackdefaultJSONResponse{
			StatusCode: http.StatusBadRequest,
			Body:       api.ErrorResponse{Error: api.ErrorCodeMalformedCallback, Message: "unreadable callback body"},
		}, nil
	}

	cb := gateway.CallbackRequest{Header: http.Header{}, Query: url.Values{}, Body: body}
	if sig := request.Params.StripeSignature; sig != nil {
		cb.Header.Set(gateway.CheckoutSignatureHeader, *sig)
	}
	if token := request.Params.Token; token != nil {
		cb.Query.Set("token", *token)
	}

	ack, err := h.reconciler.HandleCallback(ctx, provider, cb)
	if err != nil {
		status, resp := h.errorResponse(ctx, "HandleCallback", err)
		return api.HandleCallbackdefaultJSONResponse{StatusCode: status, Body: resp}, nil
	}

	resp := api.HandleCallback200JSONResponse{Result: api.AckResult(ack.Result)}
	if ack.Status != "" {
		status := api.TransactionStatus(ack.Status)
		resp.Status = &status
		resp.TransactionId = &ack.TransactionID
	}
	return resp, nil
}

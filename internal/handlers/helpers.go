package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/storefront/payments/internal/api"
	"github.com/storefront/payments/internal/service"
)

// maxRequestBody bounds request bodies
const maxRequestBody = 1 << 20

// errorResponse maps a service error to its HTTP status and body. Anything
// that is not a ServiceError is logged and reported as an internal error.
func (h *Handler) errorResponse(ctx context.Context, operation string, err error) (int, api.ErrorResponse) {
	svcErr := extractServiceError(err)
	if svcErr == nil {
		h.logger.ErrorContext(ctx, "unexpected error", "operation", operation, "error", err)
		return http.StatusInternalServerError, internalErrorBody()
	}

	status, code := mapServiceError(svcErr)
	if code == api.ErrorCodeInternalError {
		h.logger.ErrorContext(ctx, "request failed", "operation", operation, "error", err)
		return status, internalErrorBody()
	}

	return status, api.ErrorResponse{Error: code, Message: svcErr.Message}
}

func internalErrorBody() api.ErrorResponse {
	return api.ErrorResponse{Error: api.ErrorCodeInternalError, Message: "internal error"}
}

func mapServiceError(svcErr *service.ServiceError) (int, api.ErrorCode) {
	switch svcErr.Code {
	case service.ErrCodeValidation:
		return http.StatusBadRequest, api.ErrorCodeValidationError
	case service.ErrCodeMalformedCallback:
		return http.StatusBadRequest, api.ErrorCodeMalformedCallback
	case service.ErrCodeUnauthorizedCallback:
		return http.StatusUnauthorized, api.ErrorCodeUnauthorizedCallback
	case service.ErrCodeOrderNotFound:
		return http.StatusNotFound, api.ErrorCodeOrderNotFound
	case service.ErrCodeTransactionNotFound:
		return http.StatusNotFound, api.ErrorCodeTransactionNotFound
	case service.ErrCodeUnknownCorrelation:
		return http.StatusNotFound, api.ErrorCodeUnknownCorrelation
	case service.ErrCodeUnknownProvider:
		return http.StatusNotFound, api.ErrorCodeUnknownProvider
	case service.ErrCodeOrderAlreadyPaid:
		return http.StatusConflict, api.ErrorCodeOrderAlreadyPaid
	case service.ErrCodeGatewayError:
		if svcErr.Retryable {
			return http.StatusServiceUnavailable, api.ErrorCodeGatewayError
		}
		return http.StatusBadGateway, api.ErrorCodeGatewayError
	default:
		return http.StatusInternalServerError, api.ErrorCodeInternalError
	}
}

func extractServiceError(err error) *service.ServiceError {
	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func valueOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

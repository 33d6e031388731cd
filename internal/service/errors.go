package service

import "fmt"

// ServiceError represents a business logic error with a code
type ServiceError struct {
	Err       error
	Message   string
	Code      string
	Retryable bool
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeValidation           = "validation_error"
	ErrCodeOrderNotFound        = "order_not_found"
	ErrCodeOrderAlreadyPaid     = "order_already_paid"
	ErrCodeGatewayError         = "gateway_error"
	ErrCodeUnknownProvider      = "unknown_provider"
	ErrCodeUnknownCorrelation   = "unknown_correlation"
	ErrCodeMalformedCallback    = "malformed_callback"
	ErrCodeUnauthorizedCallback = "unauthorized_callback"
	ErrCodeStateConflict        = "state_conflict"
	ErrCodeProjectionFailed     = "projection_failed"
	ErrCodeTransactionNotFound  = "transaction_not_found"
	ErrCodeInternalError        = "internal_error"
)

func internalError(message string, err error) *ServiceError {
	return &ServiceError{Code: ErrCodeInternalError, Message: message, Err: err}
}

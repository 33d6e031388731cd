package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies provider failures
type ErrorKind string

const (
	KindTimeout           ErrorKind = "timeout"
	KindCanceled          ErrorKind = "canceled"
	KindTransport         ErrorKind = "transport"
	KindUnavailable       ErrorKind = "unavailable"
	KindAuthentication    ErrorKind = "authentication"
	KindRejected          ErrorKind = "rejected"
	KindInvalidRequest    ErrorKind = "invalid_request"
	KindMalformedCallback ErrorKind = "malformed_callback"
	KindUnauthorized      ErrorKind = "unauthorized_callback"
)

// Error is the normalized error returned by all providers
type Error struct {
	Err       error
	Kind      ErrorKind
	Message   string
	Retryable bool
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a gateway error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var gwErr *Error
	return errors.As(err, &gwErr) && gwErr.Kind == kind
}

// IsRetryable reports whether err is a gateway error that may succeed on retry
func IsRetryable(err error) bool {
	var gwErr *Error
	return errors.As(err, &gwErr) && gwErr.Retryable
}

func malformed(format string, args ...any) *Error {
	return &Error{Kind: KindMalformedCallback, Message: fmt.Sprintf(format, args...)}
}

func unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func invalidRequest(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

// transportError classifies an error returned by http.Client.Do
func transportError(err error) *Error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Kind: KindTimeout, Message: "provider did not respond in time", Retryable: true, Err: err}
	case errors.Is(err, context.Canceled):
		return &Error{Kind: KindCanceled, Message: "request canceled", Retryable: true, Err: err}
	default:
		return &Error{Kind: KindTransport, Message: "provider unreachable", Retryable: true, Err: err}
	}
}

// statusError classifies a non-2xx provider response
func statusError(status int, message string) *Error {
	switch {
	case status == http.StatusTooManyRequests || status >= 500:
		return &Error{Kind: KindUnavailable, Message: fmt.Sprintf("provider returned %d: %s", status, message), Retryable: true}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &Error{Kind: KindAuthentication, Message: fmt.Sprintf("provider returned %d: %s", status, message)}
	default:
		return &Error{Kind: KindRejected, Message: fmt.Sprintf("provider returned %d: %s", status, message)}
	}
}

package service

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/storefront/payments/internal/models"
)

// PaymentRequest is an immutable request to pay for an order
type PaymentRequest struct {
	OrderID     string          `json:"order_id" validate:"required,max=64"`
	Provider    models.Provider `json:"provider" validate:"required,oneof=mpesa checkout sandbox"`
	Currency    string          `json:"currency" validate:"required,iso4217"`
	PayerPhone  string          `json:"payer_phone" validate:"omitempty,e164"`
	PayerEmail  string          `json:"payer_email" validate:"omitempty,email"`
	AmountCents int64           `json:"amount_cents" validate:"gt=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidatePaymentRequest checks field formats and the payer contact each
// provider flow needs.
func ValidatePaymentRequest(req PaymentRequest) error {
	if err := validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return &ServiceError{Code: ErrCodeValidation, Message: err.Error()}
		}

		messages := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			messages = append(messages, fieldMessage(fe))
		}
		sort.Strings(messages)

		return &ServiceError{Code: ErrCodeValidation, Message: strings.Join(messages, "; ")}
	}

	switch req.Provider {
	case models.ProviderMPesa:
		if req.PayerPhone == "" {
			return &ServiceError{Code: ErrCodeValidation, Message: "payer_phone: required for mpesa"}
		}
	case models.ProviderCheckout:
		if req.PayerEmail == "" {
			return &ServiceError{Code: ErrCodeValidation, Message: "payer_email: required for checkout"}
		}
	}

	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", fe.Field())
	case "gt":
		return fmt.Sprintf("%s: must be greater than %s", fe.Field(), fe.Param())
	case "iso4217":
		return fmt.Sprintf("%s: must be an ISO 4217 currency code", fe.Field())
	case "e164":
		return fmt.Sprintf("%s: must be an E.164 phone number", fe.Field())
	case "email":
		return fmt.Sprintf("%s: must be a valid email address", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s: must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s: failed %s validation", fe.Field(), fe.Tag())
	}
}

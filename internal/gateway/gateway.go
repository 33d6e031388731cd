// Package gateway adapts external payment providers to a single interface.
//
// Each provider turns a generic InitiationRequest into its own API calls and
// parses its own callback payloads into a Notification. Errors returned by
// providers are normalized into *Error so callers can decide on retries
// without knowing which provider produced them.
package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/storefront/payments/internal/models"
)

// Gateway is implemented by every payment provider
type Gateway interface {
	Provider() models.Provider
	Initiate(ctx context.Context, req InitiationRequest) (*Handle, error)
	ParseCallback(req CallbackRequest) (*Notification, error)
}

// PushInitiator starts a payment by pushing a prompt to the payer's phone
type PushInitiator interface {
	InitiatePush(ctx context.Context, phone string, amountCents int64, currency, reference string) (correlationID, customerMessage string, err error)
}

// HostedSessionInitiator starts a payment on a provider-hosted checkout page
type HostedSessionInitiator interface {
	InitiateHostedSession(ctx context.Context, amountCents int64, currency, successURL, cancelURL string, metadata map[string]string) (sessionURL, correlationID string, err error)
}

// InitiationRequest is the provider-neutral description of a payment attempt
type InitiationRequest struct {
	OrderID       string
	Currency      string
	PayerPhone    string
	PayerEmail    string
	AmountCents   int64
	TransactionID uuid.UUID
}

// Handle is what a provider returns once it has accepted a payment attempt
type Handle struct {
	CorrelationID   string
	CheckoutURL     string
	CustomerMessage string
}

// CallbackRequest carries the parts of an inbound callback a provider needs
// to authenticate and parse it.
type CallbackRequest struct {
	Header http.Header
	Query  url.Values
	Body   []byte
}

// Outcome is the normalized result reported by a callback
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	// OutcomeIgnored marks events that are acknowledged but change nothing
	OutcomeIgnored Outcome = "ignored"
)

// Notification is a parsed, authenticated callback
type Notification struct {
	CorrelationID string
	Outcome       Outcome
	Reference     string
	Reason        string
	// AmountCents is zero when the provider did not report an amount
	AmountCents int64
}

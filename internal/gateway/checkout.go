package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/storefront/payments/internal/config"
	"github.com/storefront/payments/internal/models"
)

// CheckoutSignatureHeader carries the webhook signature
const CheckoutSignatureHeader = "Stripe-Signature"

// Checkout initiates payments through provider-hosted checkout sessions
type Checkout struct {
	client     *http.Client
	logger     *slog.Logger
	now        func() time.Time
	cfg        config.CheckoutConfig
	successURL string
	cancelURL  string
}

// NewCheckout creates a hosted checkout gateway
func NewCheckout(cfg config.CheckoutConfig, successURL, cancelURL string, client *http.Client, logger *slog.Logger) *Checkout {
	return &Checkout{
		cfg:        cfg,
		successURL: successURL,
		cancelURL:  cancelURL,
		client:     client,
		logger:     logger,
		now:        time.Now,
	}
}

// Provider returns models.ProviderCheckout
func (c *Checkout) Provider() models.Provider {
	return models.ProviderCheckout
}

// Initiate creates a checkout session and returns its hosted URL
func (c *Checkout) Initiate(ctx context.Context, req InitiationRequest) (*Handle, error) {
	metadata := map[string]string{
		"order_id":       req.OrderID,
		"transaction_id": req.TransactionID.String(),
	}
	if req.PayerEmail != "" {
		metadata["customer_email"] = req.PayerEmail
	}

	sessionURL, correlationID, err := c.InitiateHostedSession(ctx, req.AmountCents, req.Currency, c.successURL, c.cancelURL, metadata)
	if err != nil {
		return nil, err
	}

	return &Handle{CorrelationID: correlationID, CheckoutURL: sessionURL}, nil
}

type checkoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// InitiateHostedSession creates a single line-item checkout session. The
// transaction id, when present in metadata, doubles as the provider
// idempotency key so a retried call never opens two sessions.
func (c *Checkout) InitiateHostedSession(ctx context.Context, amountCents int64, currency, successURL, cancelURL string, metadata map[string]string) (string, string, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", strings.ToLower(currency))
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(amountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", "Order "+metadata["order_id"])

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch k {
		case "customer_email":
			form.Set("customer_email", metadata[k])
		case "transaction_id":
			form.Set("client_reference_id", metadata[k])
			form.Set("metadata["+k+"]", metadata[k])
		default:
			form.Set("metadata["+k+"]", metadata[k])
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return "", "", fmt.Errorf("failed to build checkout session request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if id := metadata["transaction_id"]; id != "" {
		req.Header.Set("Idempotency-Key", id)
	}

	var session checkoutSession
	if err := do(c.client, req, &session, describeCheckoutError); err != nil {
		return "", "", err
	}
	if session.ID == "" || session.URL == "" {
		return "", "", &Error{Kind: KindRejected, Message: "checkout session response missing id or url"}
	}

	c.logger.Debug("checkout session created", "session_id", session.ID)

	return session.URL, session.ID, nil
}

type checkoutEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID            string `json:"id"`
			PaymentStatus string `json:"payment_status"`
			PaymentIntent string `json:"payment_intent"`
			Currency      string `json:"currency"`
			AmountTotal   int64  `json:"amount_total"`
		} `json:"object"`
	} `json:"data"`
}

// ParseCallback verifies the webhook signature and maps session events to outcomes
func (c *Checkout) ParseCallback(req CallbackRequest) (*Notification, error) {
	if err := c.verifySignature(req.Header.Get(CheckoutSignatureHeader), req.Body); err != nil {
		return nil, err
	}

	var event checkoutEvent
	if err := json.Unmarshal(req.Body, &event); err != nil {
		return nil, malformed("invalid json: %v", err)
	}
	if event.Type == "" {
		return nil, malformed("event type missing")
	}

	session := event.Data.Object
	notification := &Notification{
		CorrelationID: session.ID,
		AmountCents:   session.AmountTotal,
		Outcome:       OutcomeIgnored,
	}

	switch event.Type {
	case "checkout.session.completed":
		if session.PaymentStatus == "paid" || session.PaymentStatus == "no_payment_required" {
			notification.Outcome = OutcomeSucceeded
		}
	case "checkout.session.async_payment_succeeded":
		notification.Outcome = OutcomeSucceeded
	case "checkout.session.async_payment_failed":
		notification.Outcome = OutcomeFailed
		notification.Reason = "payment_failed"
	case "checkout.session.expired":
		notification.Outcome = OutcomeFailed
		notification.Reason = "checkout_session_expired"
	}

	if notification.Outcome == OutcomeIgnored {
		return notification, nil
	}

	if session.ID == "" {
		return nil, malformed("event %s missing session id", event.ID)
	}
	if notification.Outcome == OutcomeSucceeded {
		notification.Reference = session.PaymentIntent
		if notification.Reference == "" {
			notification.Reference = session.ID
		}
	}

	return notification, nil
}

// verifySignature checks a "t=<unix>,v1=<hex>" header against
// HMAC-SHA256(secret, "<t>.<body>") within the configured tolerance.
func (c *Checkout) verifySignature(header string, body []byte) error {
	if header == "" {
		return unauthorized("missing signature header")
	}

	var (
		timestamp  int64
		signatures []string
	)
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch key {
		case "t":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return unauthorized("invalid signature timestamp")
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, value)
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return unauthorized("malformed signature header")
	}

	age := c.now().Sub(time.Unix(timestamp, 0))
	if age < 0 {
		age = -age
	}
	if c.cfg.SignatureTolerance > 0 && age > c.cfg.SignatureTolerance {
		return unauthorized("signature timestamp outside tolerance")
	}

	expected := c.sign(timestamp, body)
	for _, sig := range signatures {
		decoded, err := hex.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			return nil
		}
	}

	return unauthorized("signature mismatch")
}

func (c *Checkout) sign(timestamp int64, body []byte) []byte {
	mac := hmac.New(sha256.New, []byte(c.cfg.WebhookSecret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(body)
	return mac.Sum(nil)
}

func describeCheckoutError(body []byte) string {
	var resp struct {
		Error struct {
			Type    string `json:"type"`
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || resp.Error.Message == "" {
		return strings.TrimSpace(string(body))
	}
	return resp.Error.Type + ": " + resp.Error.Message
}

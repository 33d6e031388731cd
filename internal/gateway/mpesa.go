package gateway

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/storefront/payments/internal/config"
	"github.com/storefront/payments/internal/models"
)

const (
	mpesaCurrency      = "KES"
	mpesaTokenMargin   = time.Minute
	mpesaTokenTimeout  = 30 * time.Second
	mpesaTimestampForm = "20060102150405"
)

// mpesaResultReasons maps documented STK result codes to failure reasons
var mpesaResultReasons = map[int]string{
	1:    "insufficient_funds",
	1001: "subscriber_busy",
	1019: "transaction_expired",
	1025: "push_failed",
	1032: "cancelled_by_user",
	1037: "user_unreachable",
	2001: "invalid_pin",
}

// MPesa initiates payments with the Daraja STK push API
type MPesa struct {
	tokenExpiry time.Time
	client      *http.Client
	logger      *slog.Logger
	group       singleflight.Group
	now         func() time.Time
	cfg         config.MPesaConfig
	callbackURL string
	token       string
	mu          sync.Mutex
}

// NewMPesa creates an M-Pesa gateway. callbackBaseURL is the public base URL
// of this service; the shared callback token is appended as a query parameter.
func NewMPesa(cfg config.MPesaConfig, callbackBaseURL string, client *http.Client, logger *slog.Logger) *MPesa {
	callbackURL := strings.TrimSuffix(callbackBaseURL, "/") + "/api/v1/callbacks/" + string(models.ProviderMPesa)
	if cfg.CallbackToken != "" {
		callbackURL += "?" + url.Values{"token": {cfg.CallbackToken}}.Encode()
	}

	return &MPesa{
		cfg:         cfg,
		client:      client,
		logger:      logger,
		callbackURL: callbackURL,
		now:         time.Now,
	}
}

// Provider returns models.ProviderMPesa
func (m *MPesa) Provider() models.Provider {
	return models.ProviderMPesa
}

// Initiate sends an STK push to the payer's phone
func (m *MPesa) Initiate(ctx context.Context, req InitiationRequest) (*Handle, error) {
	if req.PayerPhone == "" {
		return nil, invalidRequest("payer phone is required")
	}

	correlationID, message, err := m.InitiatePush(ctx, req.PayerPhone, req.AmountCents, req.Currency, req.OrderID)
	if err != nil {
		return nil, err
	}

	return &Handle{CorrelationID: correlationID, CustomerMessage: message}, nil
}

type stkPushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
	Amount            int64  `json:"Amount"`
}

type stkPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

// InitiatePush sends the STK push and returns the CheckoutRequestID as the
// correlation id. Daraja only accepts whole shillings.
func (m *MPesa) InitiatePush(ctx context.Context, phone string, amountCents int64, currency, reference string) (string, string, error) {
	if !strings.EqualFold(currency, mpesaCurrency) {
		return "", "", invalidRequest("mpesa only supports %s, got %s", mpesaCurrency, currency)
	}

	amount := ToMajor(amountCents, currency)
	if !amount.IsInteger() {
		return "", "", invalidRequest("mpesa amounts must be whole shillings, got %s", amount.StringFixed(2))
	}

	token, err := m.accessToken(ctx)
	if err != nil {
		return "", "", err
	}

	phone = strings.TrimPrefix(phone, "+")
	timestamp := m.now().Format(mpesaTimestampForm)
	payload := stkPushRequest{
		BusinessShortCode: m.cfg.ShortCode,
		Password:          base64.StdEncoding.EncodeToString([]byte(m.cfg.ShortCode + m.cfg.PassKey + timestamp)),
		Timestamp:         timestamp,
		TransactionType:   m.cfg.TransactionType,
		Amount:            amount.IntPart(),
		PartyA:            phone,
		PartyB:            m.cfg.ShortCode,
		PhoneNumber:       phone,
		CallBackURL:       m.callbackURL,
		AccountReference:  reference,
		TransactionDesc:   "Order " + reference,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode stk push: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.BaseURL+"/mpesa/stkpush/v1/processrequest", bytes.NewReader(body))
	if err != nil {
		return "", "", fmt.Errorf("failed to build stk push request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	var resp stkPushResponse
	if err := do(m.client, req, &resp, describeMPesaError); err != nil {
		if IsKind(err, KindAuthentication) {
			m.invalidateToken(token)
		}
		return "", "", err
	}

	if resp.ResponseCode != "0" || resp.CheckoutRequestID == "" {
		return "", "", &Error{
			Kind:    KindRejected,
			Message: fmt.Sprintf("stk push rejected: %s %s", resp.ResponseCode, resp.ResponseDescription),
		}
	}

	m.logger.Debug("mpesa stk push accepted",
		"checkout_request_id", resp.CheckoutRequestID,
		"merchant_request_id", resp.MerchantRequestID,
	)

	return resp.CheckoutRequestID, resp.CustomerMessage, nil
}

type mpesaTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

// accessToken returns a cached OAuth token, refreshing it once for all
// concurrent callers when it is missing or about to expire.
func (m *MPesa) accessToken(ctx context.Context) (string, error) {
	if token, ok := m.cachedToken(); ok {
		return token, nil
	}

	// the fetch is shared, so it must not inherit one caller's deadline
	ch := m.group.DoChan("token", func() (any, error) {
		if token, ok := m.cachedToken(); ok {
			return token, nil
		}
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), mpesaTokenTimeout)
		defer cancel()
		return m.fetchToken(fetchCtx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", transportError(ctx.Err())
	}
}

func (m *MPesa) cachedToken() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token != "" && m.now().Before(m.tokenExpiry) {
		return m.token, true
	}
	return "", false
}

func (m *MPesa) fetchToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.cfg.BaseURL+"/oauth/v1/generate?grant_type=client_credentials", nil)
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.SetBasicAuth(m.cfg.ConsumerKey, m.cfg.ConsumerSecret)

	var resp mpesaTokenResponse
	if err := do(m.client, req, &resp, describeMPesaError); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", &Error{Kind: KindAuthentication, Message: "token response did not include an access token"}
	}

	expiresIn, err := strconv.Atoi(resp.ExpiresIn)
	if err != nil || expiresIn <= 0 {
		expiresIn = 3599
	}

	m.mu.Lock()
	m.token = resp.AccessToken
	m.tokenExpiry = m.now().Add(time.Duration(expiresIn)*time.Second - mpesaTokenMargin)
	m.mu.Unlock()

	m.logger.Debug("mpesa access token refreshed", "expires_in", expiresIn)

	return resp.AccessToken, nil
}

func (m *MPesa) invalidateToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == token {
		m.token = ""
	}
}

type mpesaCallback struct {
	Body struct {
		STKCallback *struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []struct {
					Value any    `json:"Value"`
					Name  string `json:"Name"`
				} `json:"Item"`
			} `json:"CallbackMetadata"`
			ResultCode *int `json:"ResultCode"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

// ParseCallback authenticates and parses a Daraja STK callback
func (m *MPesa) ParseCallback(req CallbackRequest) (*Notification, error) {
	if m.cfg.CallbackToken != "" {
		token := req.Query.Get("token")
		if subtle.ConstantTimeCompare([]byte(token), []byte(m.cfg.CallbackToken)) != 1 {
			return nil, unauthorized("callback token mismatch")
		}
	}

	var payload mpesaCallback
	if err := json.Unmarshal(req.Body, &payload); err != nil {
		return nil, malformed("invalid json: %v", err)
	}

	cb := payload.Body.STKCallback
	if cb == nil || cb.CheckoutRequestID == "" || cb.ResultCode == nil {
		return nil, malformed("missing stkCallback fields")
	}

	notification := &Notification{CorrelationID: cb.CheckoutRequestID}

	if *cb.ResultCode != 0 {
		notification.Outcome = OutcomeFailed
		notification.Reason = mpesaFailureReason(*cb.ResultCode)
		return notification, nil
	}

	for _, item := range cb.CallbackMetadata.Item {
		switch item.Name {
		case "MpesaReceiptNumber":
			if s, ok := item.Value.(string); ok {
				notification.Reference = s
			}
		case "Amount":
			if amount, ok := metadataDecimal(item.Value); ok {
				notification.AmountCents = ToMinor(amount, mpesaCurrency)
			}
		}
	}

	if notification.Reference == "" {
		return nil, malformed("successful callback without MpesaReceiptNumber")
	}

	notification.Outcome = OutcomeSucceeded
	return notification, nil
}

func mpesaFailureReason(code int) string {
	if reason, ok := mpesaResultReasons[code]; ok {
		return reason
	}
	return fmt.Sprintf("provider_declined_%d", code)
}

func metadataDecimal(v any) (decimal.Decimal, bool) {
	switch value := v.(type) {
	case float64:
		return decimal.NewFromFloat(value), true
	case string:
		d, err := decimal.NewFromString(value)
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}

func describeMPesaError(body []byte) string {
	var resp struct {
		ErrorCode    string `json:"errorCode"`
		ErrorMessage string `json:"errorMessage"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || resp.ErrorMessage == "" {
		return strings.TrimSpace(string(body))
	}
	return resp.ErrorCode + " " + resp.ErrorMessage
}

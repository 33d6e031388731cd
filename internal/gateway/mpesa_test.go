package gateway

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/payments/internal/config"
)

type fakeDaraja struct {
	lastPush    stkPushRequest
	pushStatus  int
	pushBody    string
	tokenCalls  atomic.Int32
	pushCalls   atomic.Int32
	mu          sync.Mutex
	blockPushes bool
}

func (f *fakeDaraja) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key", user)
		assert.Equal(t, "secret", pass)
		assert.Equal(t, "client_credentials", r.URL.Query().Get("grant_type"))
		time.Sleep(10 * time.Millisecond)
		_, _ = w.Write([]byte(`{"access_token":"tok-1","expires_in":"3599"}`)) //nolint:errcheck // test server
	})
	mux.HandleFunc("/mpesa/stkpush/v1/processrequest", func(w http.ResponseWriter, r *http.Request) {
		f.pushCalls.Add(1)
		if f.blockPushes {
			<-r.Context().Done()
			return
		}
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		var req stkPushRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		f.mu.Lock()
		f.lastPush = req
		f.mu.Unlock()

		status := f.pushStatus
		if status == 0 {
			status = http.StatusOK
		}
		body := f.pushBody
		if body == "" {
			body = `{"MerchantRequestID":"M1","CheckoutRequestID":"ws_CO_1","ResponseCode":"0","ResponseDescription":"Success. Request accepted for processing","CustomerMessage":"Success. Request accepted for processing"}`
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body)) //nolint:errcheck // test server
	})
	return mux
}

func newTestMPesa(t *testing.T, fake *fakeDaraja) *MPesa {
	t.Helper()
	server := httptest.NewServer(fake.handler(t))
	t.Cleanup(server.Close)

	cfg := config.MPesaConfig{
		BaseURL:         server.URL,
		ConsumerKey:     "key",
		ConsumerSecret:  "secret",
		ShortCode:       "174379",
		PassKey:         "passkey",
		TransactionType: "CustomerPayBillOnline",
		CallbackToken:   "cb-token",
		Enabled:         true,
	}
	m := NewMPesa(cfg, "https://shop.example.com/", server.Client(), testLogger())
	m.now = func() time.Time { return time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC) }
	return m
}

func TestMPesa_InitiatePush(t *testing.T) {
	fake := &fakeDaraja{}
	m := newTestMPesa(t, fake)

	correlationID, message, err := m.InitiatePush(context.Background(), "+254712345678", 1500, "KES", "O1")
	require.NoError(t, err)

	assert.Equal(t, "ws_CO_1", correlationID)
	assert.NotEmpty(t, message)

	push := fake.lastPush
	assert.Equal(t, int64(15), push.Amount)
	assert.Equal(t, "254712345678", push.PhoneNumber)
	assert.Equal(t, "254712345678", push.PartyA)
	assert.Equal(t, "174379", push.PartyB)
	assert.Equal(t, "20240301103000", push.Timestamp)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("174379passkey20240301103000")), push.Password)
	assert.Equal(t, "O1", push.AccountReference)
	assert.Equal(t, "https://shop.example.com/api/v1/callbacks/mpesa?token=cb-token", push.CallBackURL)
}

func TestMPesa_TokenIsSharedAcrossConcurrentCallers(t *testing.T) {
	fake := &fakeDaraja{}
	m := newTestMPesa(t, fake)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := m.InitiatePush(context.Background(), "254712345678", 100, "KES", "O1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), fake.tokenCalls.Load())
	assert.Equal(t, int32(8), fake.pushCalls.Load())
}

func TestMPesa_TokenFetchOutlivesImpatientCaller(t *testing.T) {
	fake := &fakeDaraja{}
	m := newTestMPesa(t, fake)

	impatient, cancel := context.WithTimeout(context.Background(), 3*time.Millisecond)
	defer cancel()

	var wg sync.WaitGroup
	var impatientErr, patientErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _, impatientErr = m.InitiatePush(impatient, "254712345678", 100, "KES", "O1")
	}()
	go func() {
		defer wg.Done()
		time.Sleep(time.Millisecond)
		_, _, patientErr = m.InitiatePush(context.Background(), "254712345678", 100, "KES", "O2")
	}()
	wg.Wait()

	assert.True(t, IsKind(impatientErr, KindTimeout), "got %v", impatientErr)
	require.NoError(t, patientErr)
	assert.Equal(t, int32(1), fake.tokenCalls.Load())
	assert.Equal(t, int32(1), fake.pushCalls.Load())
}

func TestMPesa_CallbackTokenIsQueryEscaped(t *testing.T) {
	m := NewMPesa(config.MPesaConfig{CallbackToken: "a&b=c+d e"}, "https://shop.example.com", http.DefaultClient, testLogger())

	u, err := url.Parse(m.callbackURL)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/callbacks/mpesa", u.Path)
	assert.Equal(t, "a&b=c+d e", u.Query().Get("token"))
	assert.Len(t, u.Query(), 1)

	_, err = m.ParseCallback(CallbackRequest{Query: u.Query(), Body: []byte(`{}`)})
	assert.False(t, IsKind(err, KindUnauthorized), "the encoded token must authenticate: %v", err)
}

func TestMPesa_InitiatePush_Validation(t *testing.T) {
	tests := []struct {
		name     string
		currency string
		amount   int64
	}{
		{name: "fractional shillings", currency: "KES", amount: 1550},
		{name: "unsupported currency", currency: "USD", amount: 1500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeDaraja{}
			m := newTestMPesa(t, fake)

			_, _, err := m.InitiatePush(context.Background(), "254712345678", tt.amount, tt.currency, "O1")

			assert.True(t, IsKind(err, KindInvalidRequest), "got %v", err)
			assert.False(t, IsRetryable(err))
			assert.Zero(t, fake.pushCalls.Load(), "provider must not be called")
		})
	}
}

func TestMPesa_InitiatePush_ProviderErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		kind      ErrorKind
		status    int
		retryable bool
	}{
		{
			name:      "server error is retryable",
			status:    http.StatusInternalServerError,
			body:      `{"requestId":"r1","errorCode":"500.001.1001","errorMessage":"Unable to lock subscriber"}`,
			kind:      KindUnavailable,
			retryable: true,
		},
		{
			name:      "throttled is retryable",
			status:    http.StatusTooManyRequests,
			body:      `{}`,
			kind:      KindUnavailable,
			retryable: true,
		},
		{
			name:   "bad request is permanent",
			status: http.StatusBadRequest,
			body:   `{"requestId":"r1","errorCode":"400.002.02","errorMessage":"Bad Request - Invalid PhoneNumber"}`,
			kind:   KindRejected,
		},
		{
			name:   "non-zero response code is a rejection",
			status: http.StatusOK,
			body:   `{"ResponseCode":"1","ResponseDescription":"Rejected"}`,
			kind:   KindRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMPesa(t, &fakeDaraja{pushStatus: tt.status, pushBody: tt.body})

			_, _, err := m.InitiatePush(context.Background(), "254712345678", 100, "KES", "O1")

			require.Error(t, err)
			assert.True(t, IsKind(err, tt.kind), "got %v", err)
			assert.Equal(t, tt.retryable, IsRetryable(err))
		})
	}
}

func TestMPesa_InitiatePush_Timeout(t *testing.T) {
	m := newTestMPesa(t, &fakeDaraja{blockPushes: true})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, _, err := m.InitiatePush(ctx, "254712345678", 100, "KES", "O1")

	assert.True(t, IsKind(err, KindTimeout), "got %v", err)
	assert.True(t, IsRetryable(err))
}

func TestMPesa_UnauthorizedPushDropsCachedToken(t *testing.T) {
	fake := &fakeDaraja{pushStatus: http.StatusUnauthorized, pushBody: `{"errorCode":"404.001.04","errorMessage":"Invalid Access Token"}`}
	m := newTestMPesa(t, fake)

	_, _, err := m.InitiatePush(context.Background(), "254712345678", 100, "KES", "O1")
	assert.True(t, IsKind(err, KindAuthentication))

	_, _, err = m.InitiatePush(context.Background(), "254712345678", 100, "KES", "O1")
	assert.Error(t, err)

	assert.Equal(t, int32(2), fake.tokenCalls.Load())
}

func TestMPesa_ParseCallback(t *testing.T) {
	m := NewMPesa(config.MPesaConfig{CallbackToken: "cb-token"}, "https://shop.example.com", http.DefaultClient, testLogger())
	validQuery := url.Values{"token": {"cb-token"}}

	tests := []struct {
		query   url.Values
		want    *Notification
		name    string
		body    string
		errKind ErrorKind
	}{
		{
			name:  "success with receipt",
			query: validQuery,
			body: `{"Body":{"stkCallback":{"MerchantRequestID":"M1","CheckoutRequestID":"C1","ResultCode":0,"ResultDesc":"The service request is processed successfully.",
				"CallbackMetadata":{"Item":[{"Name":"Amount","Value":15.00},{"Name":"MpesaReceiptNumber","Value":"QFT123"},{"Name":"TransactionDate","Value":20240301103512},{"Name":"PhoneNumber","Value":254712345678}]}}}}`,
			want: &Notification{CorrelationID: "C1", Outcome: OutcomeSucceeded, Reference: "QFT123", AmountCents: 1500},
		},
		{
			name:  "cancelled by user",
			query: validQuery,
			body:  `{"Body":{"stkCallback":{"MerchantRequestID":"M1","CheckoutRequestID":"C1","ResultCode":1032,"ResultDesc":"Request cancelled by user"}}}`,
			want:  &Notification{CorrelationID: "C1", Outcome: OutcomeFailed, Reason: "cancelled_by_user"},
		},
		{
			name:  "unknown failure code",
			query: validQuery,
			body:  `{"Body":{"stkCallback":{"CheckoutRequestID":"C1","ResultCode":9999}}}`,
			want:  &Notification{CorrelationID: "C1", Outcome: OutcomeFailed, Reason: "provider_declined_9999"},
		},
		{
			name:    "wrong token",
			query:   url.Values{"token": {"nope"}},
			body:    `{"Body":{"stkCallback":{"CheckoutRequestID":"C1","ResultCode":0}}}`,
			errKind: KindUnauthorized,
		},
		{
			name:    "invalid json",
			query:   validQuery,
			body:    `{not json`,
			errKind: KindMalformedCallback,
		},
		{
			name:    "missing result code",
			query:   validQuery,
			body:    `{"Body":{"stkCallback":{"CheckoutRequestID":"C1"}}}`,
			errKind: KindMalformedCallback,
		},
		{
			name:    "success without receipt",
			query:   validQuery,
			body:    `{"Body":{"stkCallback":{"CheckoutRequestID":"C1","ResultCode":0,"CallbackMetadata":{"Item":[]}}}}`,
			errKind: KindMalformedCallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.ParseCallback(CallbackRequest{Query: tt.query, Body: []byte(tt.body)})

			if tt.errKind != "" {
				assert.True(t, IsKind(err, tt.errKind), "got %v", err)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

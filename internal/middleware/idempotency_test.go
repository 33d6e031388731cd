package middleware

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storefront/payments/internal/models"
	"github.com/storefront/payments/internal/service/mocks"
)

const paymentsPath = "/api/v1/payments"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testHandler(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body)) //nolint:errcheck // test helper
	})
}

func postWithKey(path, key string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(`{}`))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	return req
}

func TestIdempotency_Bypassed(t *testing.T) {
	tests := []struct {
		name string
		req  *http.Request
	}{
		{
			name: "GET request",
			req: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, paymentsPath, nil)
				r.Header.Set(IdempotencyKeyHeader, "k")
				return r
			}(),
		},
		{name: "unguarded path", req: postWithKey("/api/v1/callbacks/mpesa", "k")},
		{name: "missing key", req: postWithKey(paymentsPath, "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockIdempotencyRepository(t)
			called := false
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			Idempotency(repo, testLogger(), paymentsPath)(handler).ServeHTTP(rec, tt.req)

			assert.True(t, called)
			repo.AssertNotCalled(t, "Get")
			repo.AssertNotCalled(t, "Store")
		})
	}
}

func TestIdempotency_FirstResponseStored(t *testing.T) {
	repo := mocks.NewMockIdempotencyRepository(t)
	repo.On("Get", mock.Anything, "key-1", paymentsPath).Return(nil, nil)

	var stored *models.IdempotencyKey
	repo.On("Store", mock.Anything, mock.AnythingOfType("*models.IdempotencyKey")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*models.IdempotencyKey) }).
		Return(nil)

	handler := testHandler(http.StatusCreated, `{"transaction_id":"t1"}`)
	rec := httptest.NewRecorder()
	Idempotency(repo, testLogger(), paymentsPath)(handler).ServeHTTP(rec, postWithKey(paymentsPath+"/", "key-1"))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, `{"transaction_id":"t1"}`, rec.Body.String())
	assert.Empty(t, rec.Header().Get(ReplayedHeader))

	require.NotNil(t, stored)
	assert.Equal(t, "key-1", stored.Key)
	assert.Equal(t, paymentsPath, stored.RequestPath)
	assert.Equal(t, http.StatusCreated, stored.ResponseStatus)
	assert.Equal(t, `{"transaction_id":"t1"}`, stored.ResponseBody)
}

func TestIdempotency_ImplicitOKIsStored(t *testing.T) {
	repo := mocks.NewMockIdempotencyRepository(t)
	repo.On("Get", mock.Anything, "key-1", paymentsPath).Return(nil, nil)
	repo.On("Store", mock.Anything, mock.MatchedBy(func(k *models.IdempotencyKey) bool {
		return k.ResponseStatus == http.StatusOK && k.ResponseBody == "ok"
	})).Return(nil)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok")) //nolint:errcheck // test helper
	})
	rec := httptest.NewRecorder()
	Idempotency(repo, testLogger(), paymentsPath)(handler).ServeHTTP(rec, postWithKey(paymentsPath, "key-1"))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	repo := mocks.NewMockIdempotencyRepository(t)
	repo.On("Get", mock.Anything, "dup", paymentsPath).Return(&models.IdempotencyKey{
		Key:            "dup",
		RequestPath:    paymentsPath,
		ResponseStatus: http.StatusCreated,
		ResponseBody:   `{"transaction_id":"first"}`,
	}, nil)

	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	Idempotency(repo, testLogger(), paymentsPath)(handler).ServeHTTP(rec, postWithKey(paymentsPath, "dup"))

	assert.False(t, called, "handler must not run for a replay")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "true", rec.Header().Get(ReplayedHeader))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, `{"transaction_id":"first"}`, rec.Body.String())
	repo.AssertNotCalled(t, "Store")
}

func TestIdempotency_NonSuccessNotStored(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusConflict, http.StatusInternalServerError, http.StatusBadGateway} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			repo := mocks.NewMockIdempotencyRepository(t)
			repo.On("Get", mock.Anything, "k", paymentsPath).Return(nil, nil)

			rec := httptest.NewRecorder()
			Idempotency(repo, testLogger(), paymentsPath)(testHandler(status, `{"error":"x"}`)).
				ServeHTTP(rec, postWithKey(paymentsPath, "k"))

			assert.Equal(t, status, rec.Code)
			repo.AssertNotCalled(t, "Store")
		})
	}
}

func TestIdempotency_RepoGetErrorFailsOpen(t *testing.T) {
	repo := mocks.NewMockIdempotencyRepository(t)
	repo.On("Get", mock.Anything, "k", paymentsPath).Return(nil, errors.New("database connection failed"))

	rec := httptest.NewRecorder()
	Idempotency(repo, testLogger(), paymentsPath)(testHandler(http.StatusCreated, `{}`)).
		ServeHTTP(rec, postWithKey(paymentsPath, "k"))

	assert.Equal(t, http.StatusCreated, rec.Code)
	repo.AssertNotCalled(t, "Store")
}

func TestIdempotency_RepoStoreErrorDoesNotAffectResponse(t *testing.T) {
	repo := mocks.NewMockIdempotencyRepository(t)
	repo.On("Get", mock.Anything, "k", paymentsPath).Return(nil, nil)
	repo.On("Store", mock.Anything, mock.Anything).Return(errors.New("failed to store"))

	rec := httptest.NewRecorder()
	Idempotency(repo, testLogger(), paymentsPath)(testHandler(http.StatusCreated, `{"ok":true}`)).
		ServeHTTP(rec, postWithKey(paymentsPath, "k"))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, `{"ok":true}`, rec.Body.String())
}

func TestIdempotency_ConcurrentDuplicateRejected(t *testing.T) {
	repo := mocks.NewMockIdempotencyRepository(t)
	repo.On("Get", mock.Anything, "k", paymentsPath).Return(nil, nil)
	repo.On("Store", mock.Anything, mock.Anything).Return(nil).Once()

	entered := make(chan struct{})
	release := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.WriteHeader(http.StatusCreated)
	})
	mw := Idempotency(repo, testLogger(), paymentsPath)(handler)

	var wg sync.WaitGroup
	first := httptest.NewRecorder()
	wg.Add(1)
	go func() {
		defer wg.Done()
		mw.ServeHTTP(first, postWithKey(paymentsPath, "k"))
	}()

	<-entered
	second := httptest.NewRecorder()
	mw.ServeHTTP(second, postWithKey(paymentsPath, "k"))
	close(release)
	wg.Wait()

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), "idempotency_conflict")
}

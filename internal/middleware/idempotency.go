// Package middleware provides HTTP middleware for the payments API.
package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/storefront/payments/internal/models"
)

// IdempotencyKeyHeader is the header clients use to make a POST safe to retry
const IdempotencyKeyHeader = "Idempotency-Key"

// ReplayedHeader marks responses served from the idempotency cache
const ReplayedHeader = "X-Idempotent-Replayed"

// IdempotencyRepository defines the interface for idempotency storage
type IdempotencyRepository interface {
	Get(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error)
	Store(ctx context.Context, idemKey *models.IdempotencyKey) error
}

// Idempotency replays the first 2xx response recorded for an
// (Idempotency-Key, path) pair on the given POST paths. Requests without the
// header pass through untouched. A second request arriving while the first
// is still running is rejected with 409.
func Idempotency(repo IdempotencyRepository, logger *slog.Logger, paths ...string) func(http.Handler) http.Handler {
	guarded := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		guarded[normalizeRequestPath(p)] = struct{}{}
	}

	var mu sync.Mutex
	inFlight := make(map[string]struct{})

	begin := func(id string) bool {
		mu.Lock()
		defer mu.Unlock()
		if _, busy := inFlight[id]; busy {
			return false
		}
		inFlight[id] = struct{}{}
		return true
	}
	end := func(id string) {
		mu.Lock()
		delete(inFlight, id)
		mu.Unlock()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestPath := normalizeRequestPath(r.URL.Path)
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}
			if _, ok := guarded[requestPath]; !ok {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get(IdempotencyKeyHeader)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			logger := logger.With("idempotency_key", key, "path", requestPath)

			cached, err := repo.Get(ctx, key, requestPath)
			if err != nil {
				logger.Error("failed to check idempotency cache", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if cached != nil {
				logger.Debug("returning cached idempotent response", "status", cached.ResponseStatus)
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set(ReplayedHeader, "true")
				w.WriteHeader(cached.ResponseStatus)
				//nolint:errcheck // best effort response writing
				w.Write([]byte(cached.ResponseBody))
				return
			}

			id := requestPath + "\x00" + key
			if !begin(id) {
				logger.Warn("concurrent request with the same idempotency key")
				writeConflict(w)
				return
			}
			defer end(id)

			var body bytes.Buffer
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Tee(&body)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			if status < 200 || status >= 300 {
				return
			}

			// the client may already be gone; the record must still land
			storeCtx := context.WithoutCancel(ctx)
			if err := repo.Store(storeCtx, &models.IdempotencyKey{
				Key:            key,
				RequestPath:    requestPath,
				ResponseStatus: status,
				ResponseBody:   body.String(),
				CreatedAt:      time.Now().UTC(),
			}); err != nil {
				logger.Error("failed to store idempotency key", "error", err)
			}
		})
	}
}

func writeConflict(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusConflict)
	//nolint:errcheck // best effort response writing
	json.NewEncoder(w).Encode(map[string]string{
		"error":   "idempotency_conflict",
		"message": "a request with this idempotency key is already in progress",
	})
}

func normalizeRequestPath(urlPath string) string {
	if urlPath == "/" {
		return urlPath
	}
	return strings.TrimSuffix(urlPath, "/")
}

package gateway

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/payments/internal/config"
	"github.com/storefront/payments/internal/models"
)

// SandboxCorrelationPrefix prefixes every sandbox correlation id
const SandboxCorrelationPrefix = "sbx_"

// Sandbox is a local provider that accepts every payment after an optional
// injected delay and fails a configurable share of initiations.
// Results are reported by posting a sandbox callback.
type Sandbox struct {
	logger *slog.Logger
	cfg    config.SandboxConfig
}

// NewSandbox creates a sandbox gateway
func NewSandbox(cfg config.SandboxConfig, logger *slog.Logger) *Sandbox {
	return &Sandbox{cfg: cfg, logger: logger}
}

// Provider returns models.ProviderSandbox
func (s *Sandbox) Provider() models.Provider {
	return models.ProviderSandbox
}

// Initiate returns a fresh sandbox correlation id
func (s *Sandbox) Initiate(ctx context.Context, req InitiationRequest) (*Handle, error) {
	if err := injectLatency(ctx, s.cfg.MinLatencyMS, s.cfg.MaxLatencyMS); err != nil {
		return nil, transportError(err)
	}

	if shouldInjectFailure(s.cfg.FailureRate) {
		s.logger.Debug("injecting sandbox failure", "order_id", req.OrderID)
		return nil, &Error{Kind: KindUnavailable, Message: "random failure injection", Retryable: true}
	}

	correlationID := SandboxCorrelationPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
	return &Handle{
		CorrelationID:   correlationID,
		CustomerMessage: "Sandbox payment created. Post a sandbox callback to complete it.",
	}, nil
}

type sandboxCallback struct {
	Correlation string `json:"correlation"`
	Result      string `json:"result"`
	Reference   string `json:"reference"`
	AmountCents int64  `json:"amount_cents"`
}

// ParseCallback parses {"correlation","result","reference"} payloads
func (s *Sandbox) ParseCallback(req CallbackRequest) (*Notification, error) {
	var cb sandboxCallback
	if err := json.Unmarshal(req.Body, &cb); err != nil {
		return nil, malformed("invalid json: %v", err)
	}
	if cb.Correlation == "" {
		return nil, malformed("correlation is required")
	}

	notification := &Notification{
		CorrelationID: cb.Correlation,
		AmountCents:   cb.AmountCents,
	}

	switch cb.Result {
	case "success":
		if cb.Reference == "" {
			return nil, malformed("reference is required for success")
		}
		notification.Outcome = OutcomeSucceeded
		notification.Reference = cb.Reference
	case "failed":
		notification.Outcome = OutcomeFailed
		notification.Reason = "payment_failed"
	case "cancelled":
		notification.Outcome = OutcomeFailed
		notification.Reason = "cancelled_by_user"
	default:
		return nil, malformed("unknown result %q", cb.Result)
	}

	return notification, nil
}

func injectLatency(ctx context.Context, minMS, maxMS int) error {
	if minMS <= 0 && maxMS <= 0 {
		return nil
	}

	sleepMS := minMS
	if rangeMS := maxMS - minMS; rangeMS > 0 {
		if offset, err := rand.Int(rand.Reader, big.NewInt(int64(rangeMS))); err == nil {
			sleepMS += int(offset.Int64())
		}
	}

	timer := time.NewTimer(time.Duration(sleepMS) * time.Millisecond)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func shouldInjectFailure(failureRate float64) bool {
	if failureRate <= 0 {
		return false
	}
	if failureRate >= 1 {
		return true
	}

	const precision = 1000000
	randomNum, err := rand.Int(rand.Reader, big.NewInt(precision))
	if err != nil {
		return false
	}

	threshold := int64(failureRate * precision)
	return randomNum.Int64() < threshold
}

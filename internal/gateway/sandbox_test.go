package gateway

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/payments/internal/config"
)

func TestSandbox_Initiate(t *testing.T) {
	s := NewSandbox(config.SandboxConfig{Enabled: true}, testLogger())

	first, err := s.Initiate(context.Background(), InitiationRequest{OrderID: "O1", AmountCents: 1500, Currency: "KES"})
	require.NoError(t, err)
	second, err := s.Initiate(context.Background(), InitiationRequest{OrderID: "O1", AmountCents: 1500, Currency: "KES"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first.CorrelationID, SandboxCorrelationPrefix))
	assert.NotEqual(t, first.CorrelationID, second.CorrelationID)
}

func TestSandbox_Initiate_FailureInjection(t *testing.T) {
	s := NewSandbox(config.SandboxConfig{Enabled: true, FailureRate: 1}, testLogger())

	_, err := s.Initiate(context.Background(), InitiationRequest{OrderID: "O1"})

	assert.True(t, IsKind(err, KindUnavailable))
	assert.True(t, IsRetryable(err))
}

func TestSandbox_Initiate_LatencyRespectsDeadline(t *testing.T) {
	s := NewSandbox(config.SandboxConfig{Enabled: true, MinLatencyMS: 5000, MaxLatencyMS: 5000}, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := s.Initiate(ctx, InitiationRequest{OrderID: "O1"})

	assert.True(t, IsKind(err, KindTimeout), "got %v", err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSandbox_ParseCallback(t *testing.T) {
	s := NewSandbox(config.SandboxConfig{Enabled: true}, testLogger())

	tests := []struct {
		want      *Notification
		name      string
		body      string
		malformed bool
	}{
		{
			name: "success",
			body: `{"correlation":"sbx_1","result":"success","reference":"SBX-REF"}`,
			want: &Notification{CorrelationID: "sbx_1", Outcome: OutcomeSucceeded, Reference: "SBX-REF"},
		},
		{
			name: "failed",
			body: `{"correlation":"sbx_1","result":"failed"}`,
			want: &Notification{CorrelationID: "sbx_1", Outcome: OutcomeFailed, Reason: "payment_failed"},
		},
		{
			name: "cancelled",
			body: `{"correlation":"sbx_1","result":"cancelled","amount_cents":1500}`,
			want: &Notification{CorrelationID: "sbx_1", Outcome: OutcomeFailed, Reason: "cancelled_by_user", AmountCents: 1500},
		},
		{name: "success without reference", body: `{"correlation":"sbx_1","result":"success"}`, malformed: true},
		{name: "missing correlation", body: `{"result":"failed"}`, malformed: true},
		{name: "unknown result", body: `{"correlation":"sbx_1","result":"maybe"}`, malformed: true},
		{name: "not json", body: `<xml/>`, malformed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ParseCallback(CallbackRequest{Body: []byte(tt.body)})

			if tt.malformed {
				assert.True(t, IsKind(err, KindMalformedCallback), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

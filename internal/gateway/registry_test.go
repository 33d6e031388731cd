package gateway

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/payments/internal/config"
	"github.com/storefront/payments/internal/models"
)

func TestNewRegistryFromConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Checkout.Enabled = true
	cfg.Checkout.SecretKey = "sk"
	cfg.Checkout.WebhookSecret = "whsec"

	registry, err := NewRegistryFromConfig(cfg, http.DefaultClient, testLogger())
	require.NoError(t, err)

	assert.Equal(t, []models.Provider{models.ProviderCheckout, models.ProviderSandbox}, registry.Providers())

	gw, ok := registry.Get(models.ProviderCheckout)
	require.True(t, ok)
	assert.IsType(t, &Checkout{}, gw)

	_, ok = registry.Get(models.ProviderMPesa)
	assert.False(t, ok)
}

func TestNewRegistryFromConfig_NoProviders(t *testing.T) {
	cfg := config.Defaults()
	cfg.Sandbox.Enabled = false

	_, err := NewRegistryFromConfig(cfg, http.DefaultClient, testLogger())
	assert.Error(t, err)
}

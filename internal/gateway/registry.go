package gateway

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/storefront/payments/internal/config"
	"github.com/storefront/payments/internal/models"
)

// Registry resolves enabled gateways by provider
type Registry struct {
	gateways map[models.Provider]Gateway
}

// NewRegistry creates a registry from the given gateways
func NewRegistry(gateways ...Gateway) *Registry {
	r := &Registry{gateways: make(map[models.Provider]Gateway, len(gateways))}
	for _, gw := range gateways {
		r.gateways[gw.Provider()] = gw
	}
	return r
}

// NewRegistryFromConfig builds every provider enabled in cfg
func NewRegistryFromConfig(cfg *config.Config, client *http.Client, logger *slog.Logger) (*Registry, error) {
	var gateways []Gateway

	if cfg.MPesa.Enabled {
		gateways = append(gateways, NewMPesa(cfg.MPesa, cfg.Payments.CallbackBaseURL, client, logger.With("provider", models.ProviderMPesa)))
	}
	if cfg.Checkout.Enabled {
		gateways = append(gateways, NewCheckout(cfg.Checkout, cfg.Payments.SuccessURL, cfg.Payments.CancelURL, client, logger.With("provider", models.ProviderCheckout)))
	}
	if cfg.Sandbox.Enabled {
		gateways = append(gateways, NewSandbox(cfg.Sandbox, logger.With("provider", models.ProviderSandbox)))
	}

	if len(gateways) == 0 {
		return nil, fmt.Errorf("no payment providers enabled")
	}

	return NewRegistry(gateways...), nil
}

// Get returns the gateway for provider
func (r *Registry) Get(provider models.Provider) (Gateway, bool) {
	gw, ok := r.gateways[provider]
	return gw, ok
}

// Providers lists the enabled providers in stable order
func (r *Registry) Providers() []models.Provider {
	providers := make([]models.Provider, 0, len(r.gateways))
	for p := range r.gateways {
		providers = append(providers, p)
	}
	sort.Slice(providers, func(i, j int) bool { return providers[i] < providers[j] })
	return providers
}

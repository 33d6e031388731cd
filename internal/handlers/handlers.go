// Package handlers implements HTTP handlers for the payments API.
package handlers

import (
	"log/slog"

	"github.com/storefront/payments/internal/api"
	"github.com/storefront/payments/internal/service"
)

// Handler implements the api.StrictServerInterface for all endpoints
type Handler struct {
	initiator     service.Initiator
	reconciler    service.Reconciler
	statusReader  service.OrderStatusReader
	healthChecker service.HealthChecker
	logger        *slog.Logger
}

var _ api.StrictServerInterface = (*Handler)(nil)

// NewHandler creates a new Handler with injected service dependencies.
func NewHandler(
	initiator service.Initiator,
	reconciler service.Reconciler,
	statusReader service.OrderStatusReader,
	healthChecker service.HealthChecker,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		initiator:     initiator,
		reconciler:    reconciler,
		statusReader:  statusReader,
		healthChecker: healthChecker,
		logger:        logger,
	}
}

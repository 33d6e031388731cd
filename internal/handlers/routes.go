package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/storefront/payments/internal/api"
	"github.com/storefront/payments/internal/config"
	"github.com/storefront/payments/internal/db"
	"github.com/storefront/payments/internal/middleware"
	"github.com/storefront/payments/internal/repository"
	"github.com/storefront/payments/internal/service"
)

const paymentsPath = "/api/v1/payments"

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(
	database *db.DB,
	cfg *config.Config,
	gateways service.GatewayResolver,
	logger *slog.Logger,
) (http.Handler, error) {
	transactions := repository.NewTransactionRepository(database)
	orders := repository.NewOrderRepository(database)

	projector := service.NewOrderProjector(orders, logger)
	initiation := service.NewInitiationService(transactions, orders, gateways, cfg.Payments.GatewayTimeout, logger)
	reconciliation := service.NewReconciliationService(transactions, projector, gateways, logger)

	handler := NewHandler(initiation, reconciliation, projector, database, logger)

	doc, err := api.GetSwagger()
	if err != nil {
		return nil, err
	}
	// callbacks carry provider payloads that are signature-checked byte for byte
	validate, err := api.RequestValidator(doc, "handleCallback")
	if err != nil {
		return nil, fmt.Errorf("failed to build request validator: %w", err)
	}

	idempotencyRepo := repository.NewIdempotencyRepository(database)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)

	api.RegisterDocsRoutes(r)

	strictHandler := api.NewStrictHandlerWithOptions(handler, nil, api.StrictHTTPServerOptions{
		RequestErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			writeError(w, http.StatusBadRequest, api.ErrorCodeValidationError, "request body must be a JSON object")
		},
		ResponseErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.ErrorContext(r.Context(), "failed to write response", "path", r.URL.Path, "error", err)
			writeError(w, http.StatusInternalServerError, api.ErrorCodeInternalError, "internal error")
		},
	})

	r.Group(func(r chi.Router) {
		r.Use(chimw.RequestSize(maxRequestBody))
		r.Use(middleware.Idempotency(idempotencyRepo, logger, paymentsPath))
		r.Use(validate)

		api.HandlerWithOptions(strictHandler, api.ChiServerOptions{
			BaseRouter: r,
			ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
				writeError(w, http.StatusBadRequest, api.ErrorCodeValidationError, err.Error())
			},
		})
	})

	return r, nil
}

func writeError(w http.ResponseWriter, status int, code api.ErrorCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Nothing useful to do if write fails
	json.NewEncoder(w).Encode(api.ErrorResponse{Error: code, Message: message})
}

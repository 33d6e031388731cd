package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/storefront/payments/internal/db"
	"github.com/storefront/payments/internal/gateway"
	"github.com/storefront/payments/internal/handlers"
	"github.com/storefront/payments/internal/repository"
	"github.com/storefront/payments/internal/service"
)

func serveCmd() *cobra.Command {
	var autoMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the expiry sweeper",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, logger, database, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer database.Close()

			if autoMigrate || database.Dialect() == db.DialectSQLite {
				if err := database.Migrate(ctx); err != nil {
					return err
				}
			}

			client := &http.Client{Timeout: cfg.Payments.GatewayTimeout}
			registry, err := gateway.NewRegistryFromConfig(cfg, client, logger)
			if err != nil {
				return err
			}

			router, err := handlers.NewRouter(database, cfg, registry, logger)
			if err != nil {
				return err
			}

			sweeper := service.NewSweeper(
				repository.NewTransactionRepository(database),
				service.NewOrderProjector(repository.NewOrderRepository(database), logger),
				cfg.Payments.ExpiryWindow,
				cfg.Payments.SweepInterval,
				cfg.Payments.SweepBatchSize,
				logger.With("component", "sweeper"),
			)

			server := &http.Server{
				Addr:         ":" + cfg.Server.Port,
				Handler:      router,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
				IdleTimeout:  cfg.Server.IdleTimeout,
			}

			logger.Info("starting payments api",
				"port", cfg.Server.Port,
				"log_level", cfg.Logger.Level,
				"providers", registry.Providers(),
			)

			g, gctx := errgroup.WithContext(ctx)

			g.Go(func() error {
				logger.Info("server listening", "address", server.Addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			})

			g.Go(func() error {
				return sweeper.Run(gctx)
			})

			g.Go(func() error {
				<-gctx.Done()
				logger.Info("shutting down server...")

				shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					logger.Error("server forced to shutdown", "error", err)
					return err
				}
				return nil
			})

			if err := g.Wait(); err != nil {
				return err
			}

			logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().BoolVar(&autoMigrate, "migrate", false, "apply migrations before serving (always on for sqlite)")

	return cmd
}

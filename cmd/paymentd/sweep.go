package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storefront/payments/internal/repository"
	"github.com/storefront/payments/internal/service"
)

func sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Run a single expiry and re-projection pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, database, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close()

			sweeper := service.NewSweeper(
				repository.NewTransactionRepository(database),
				service.NewOrderProjector(repository.NewOrderRepository(database), logger),
				cfg.Payments.ExpiryWindow,
				cfg.Payments.SweepInterval,
				cfg.Payments.SweepBatchSize,
				logger,
			)

			result, err := sweeper.SweepOnce(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "expired=%d abandoned=%d reprojected=%d\n",
				result.Expired, result.Abandoned, result.Reprojected)
			return err
		},
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/storefront/payments/internal/models"
	"github.com/storefront/payments/internal/repository"
)

func orderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Manage storefront orders",
	}
	cmd.AddCommand(orderCreateCmd())
	cmd.AddCommand(orderShowCmd())
	return cmd
}

func orderCreateCmd() *cobra.Command {
	var (
		id       string
		total    int64
		currency string
	)

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create an order awaiting payment (development seeding)",
		Example: `  paymentd order create --id O1 --total 1500 --currency KES`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if total <= 0 {
				return fmt.Errorf("--total must be greater than 0")
			}

			_, _, database, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close()

			orders := repository.NewOrderRepository(database)
			order := &models.Order{ID: id, TotalCents: total, Currency: strings.ToUpper(currency)}
			if err := orders.Create(cmd.Context(), order); err != nil {
				return err
			}

			return printJSON(cmd, order)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "order id")
	cmd.Flags().Int64Var(&total, "total", 0, "order total in minor units")
	cmd.Flags().StringVar(&currency, "currency", "KES", "ISO 4217 currency code")
	_ = cmd.MarkFlagRequired("id")    //nolint:errcheck // flag is defined above
	_ = cmd.MarkFlagRequired("total") //nolint:errcheck // flag is defined above

	return cmd
}

func orderShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <order-id>",
		Short: "Print an order and its payment status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, database, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close()

			order, err := repository.NewOrderRepository(database).GetOrder(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("order %s: %w", args[0], err)
			}
			return printJSON(cmd, order)
		},
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

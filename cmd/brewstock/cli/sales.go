package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brewstock/brewstock/internal/shared"
)

func newSalesCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Inspect the sales ledger",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show every recorded sale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderSales(cmd.OutOrStdout(), e.session.Ledger.Records())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "total",
		Short: "Show the sum of all recorded sales",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Total Sales: %s (%d records)\n",
				shared.FormatMoney(e.session.Ledger.Total()), e.session.Ledger.Len())
			return err
		},
	})
	return cmd
}

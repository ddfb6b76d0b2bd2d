package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brewstock/brewstock/internal/suppliers"
)

func newSuppliersCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suppliers",
		Short: "Maintain the supplier directory",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show every supplier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderSuppliers(cmd.OutOrStdout(), e.session.Suppliers.List())
		},
	})

	var s suppliers.Supplier
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a supplier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s.Name = strings.TrimSpace(s.Name)
			if err := e.session.Suppliers.Add(s); err != nil {
				return err
			}
			if err := e.session.SaveSuppliers(cmd.Context()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: supplier added but not saved: %v\n", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added supplier %s.\n", s.Name)
			return nil
		},
	}
	add.Flags().StringVar(&s.Name, "name", "", "supplier name")
	add.Flags().StringVar(&s.ContactInfo, "contact", "", "phone, email or address")
	add.Flags().StringArrayVar(&s.Products, "product", nil, "product supplied, repeatable")
	_ = add.MarkFlagRequired("name")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove NAME",
		Short: "Delete a supplier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.session.Suppliers.Remove(args[0]); err != nil {
				return err
			}
			if err := e.session.SaveSuppliers(cmd.Context()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: supplier removed but not saved: %v\n", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed supplier %s.\n", args[0])
			return nil
		},
	})
	return cmd
}

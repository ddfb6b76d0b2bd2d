package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/brewstock/brewstock/internal/inventory"
	"github.com/brewstock/brewstock/internal/shared"
)

func newInventoryCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "List and maintain stocked items",
	}
	cmd.AddCommand(newInventoryListCommand(e))
	cmd.AddCommand(newInventoryAddCommand(e))
	cmd.AddCommand(newInventoryUpdateCommand(e))
	cmd.AddCommand(newInventoryRemoveCommand(e))
	return cmd
}

func newInventoryListCommand(e *env) *cobra.Command {
	var availableOnly bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show every item with its expiration status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items := e.session.Catalog.List()
			if availableOnly {
				items = e.session.Catalog.Available()
			}
			return renderItems(cmd.OutOrStdout(), items, e.session.Now())
		},
	}
	cmd.Flags().BoolVar(&availableOnly, "available", false, "only items with stock on hand")
	return cmd
}

type addFlags struct {
	name, batch, category, location string
	quantity                        int
	weight, unit, packaging         string
	expires, price                  string
}

func newInventoryAddCommand(e *env) *cobra.Command {
	var f addFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := f.item()
			if err != nil {
				return err
			}
			if err := e.session.Catalog.Add(item); err != nil {
				return err
			}
			if err := e.session.SaveInventory(cmd.Context()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: item added but not saved: %v\n", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (batch %s).\n", item.Name, item.BatchNumber)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.name, "name", "", "item name")
	fl.StringVar(&f.batch, "batch", "", "batch number, unique across the inventory")
	fl.StringVar(&f.category, "category", "", "one of: "+joinChoices(inventory.Categories()))
	fl.StringVar(&f.location, "location", "", "one of: "+joinChoices(inventory.Locations()))
	fl.IntVar(&f.quantity, "quantity", 0, "units on hand")
	fl.StringVar(&f.weight, "weight", "", "weight or volume per unit")
	fl.StringVar(&f.unit, "unit", "", "one of: "+joinChoices(inventory.WeightUnits()))
	fl.StringVar(&f.packaging, "packaging", "", "packaging description")
	fl.StringVar(&f.expires, "expires", "", "expiration date, yyyy-mm-dd")
	fl.StringVar(&f.price, "price", "", "unit price")
	for _, name := range []string{"name", "batch", "category", "location", "weight", "unit", "price"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (f addFlags) item() (inventory.Item, error) {
	category, err := inventory.ParseCategory(f.category)
	if err != nil {
		return inventory.Item{}, err
	}
	location, err := inventory.ParseLocation(f.location)
	if err != nil {
		return inventory.Item{}, err
	}
	unit, err := inventory.ParseWeightUnit(f.unit)
	if err != nil {
		return inventory.Item{}, err
	}
	price, err := shared.ParseMoney(f.price)
	if err != nil {
		return inventory.Item{}, err
	}
	item := inventory.Item{
		Name:        strings.TrimSpace(f.name),
		BatchNumber: strings.TrimSpace(f.batch),
		Category:    category,
		Location:    location,
		Quantity:    f.quantity,
		Weight:      strings.TrimSpace(f.weight),
		WeightUnit:  unit,
		Packaging:   strings.TrimSpace(f.packaging),
		Price:       price,
	}
	if f.expires != "" {
		exp, err := time.ParseInLocation(inventory.DateLayout, f.expires, time.Local)
		if err != nil {
			return inventory.Item{}, fmt.Errorf("expires: %w", err)
		}
		item.ExpirationDate = &exp
	}
	return item, nil
}

func newInventoryUpdateCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "update NAME FIELD VALUE",
		Short: "Change one field of an item",
		Long: "Change one field of an item. FIELD is one of: " + joinChoices(inventory.Fields()) +
			". An empty VALUE clears the expiration date.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := inventory.ParseField(args[1])
			if err != nil {
				return err
			}
			if err := e.session.Catalog.Update(args[0], field, args[2]); err != nil {
				return err
			}
			if err := e.session.SaveInventory(cmd.Context()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: item updated but not saved: %v\n", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s of %s.\n", field, args[0])
			return nil
		},
	}
}

func newInventoryRemoveCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.session.Catalog.Remove(args[0]); err != nil {
				return err
			}
			if err := e.session.SaveInventory(cmd.Context()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: item removed but not saved: %v\n", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", args[0])
			return nil
		},
	}
}

func joinChoices[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

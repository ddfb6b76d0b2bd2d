package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brewstock/brewstock/internal/sales"
	"github.com/brewstock/brewstock/internal/shared"
)

func newSellCommand(e *env) *cobra.Command {
	var (
		items []string
		cash  string
	)
	cmd := &cobra.Command{
		Use:   "sell",
		Short: "Ring up a sale",
		Long: "Ring up a sale. With --item flags the sale is committed in one go and --cash is required; " +
			"without them the cart is built interactively.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(items) == 0 {
				return e.sellInteractive(cmd.Context(), newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()), cmd.OutOrStdout())
			}
			if cash == "" {
				return errors.New("--cash is required with --item")
			}
			return e.sellBatch(cmd.Context(), cmd.OutOrStdout(), items, cash)
		},
	}
	cmd.Flags().StringArrayVar(&items, "item", nil, "NAME=QTY to add to the cart, repeatable")
	cmd.Flags().StringVar(&cash, "cash", "", "cash tendered")
	return cmd
}

func (e *env) sellBatch(ctx context.Context, out io.Writer, items []string, cashText string) error {
	tx := e.session.NewSale()
	for _, spec := range items {
		name, qty, err := parseItemSpec(spec)
		if err != nil {
			return err
		}
		if _, err := tx.Select(name, qty); err != nil {
			return err
		}
	}
	cash, err := shared.ParseMoney(cashText)
	if err != nil {
		return err
	}
	if err := tx.Checkout(); err != nil {
		return err
	}
	res, err := tx.Tender(ctx, cash)
	if err != nil {
		_ = tx.Cancel()
		return err
	}
	return e.finishSale(ctx, out, res)
}

func parseItemSpec(spec string) (string, int, error) {
	i := strings.LastIndex(spec, "=")
	if i <= 0 {
		return "", 0, fmt.Errorf("item %q: want NAME=QTY", spec)
	}
	qty, err := strconv.Atoi(strings.TrimSpace(spec[i+1:]))
	if err != nil {
		return "", 0, fmt.Errorf("item %q: quantity must be a whole number", spec)
	}
	return strings.TrimSpace(spec[:i]), qty, nil
}

func (e *env) sellInteractive(ctx context.Context, p *prompter, out io.Writer) error {
	tx := e.session.NewSale()
	for {
		available := e.session.Catalog.Available()
		if len(available) == 0 && len(tx.Lines()) == 0 {
			fmt.Fprintln(out, "No items available for sale.")
			return tx.Cancel()
		}
		if err := renderItems(out, available, e.session.Now()); err != nil {
			return err
		}
		reply, err := p.ask("Item name ('done' to pay, 'cancel' to abort): ")
		if err != nil {
			return e.abandon(tx, out, err)
		}
		switch {
		case isWord(reply, wordCancel):
			return e.abandon(tx, out, nil)
		case isWord(reply, wordDone):
			if err := tx.Checkout(); err != nil {
				fmt.Fprintln(out, "Cart is empty, pick an item first.")
				continue
			}
			done, err := e.collectPayment(ctx, p, out, tx)
			if err != nil || done {
				return err
			}
			continue
		case reply == "":
			continue
		}

		qtyText, err := p.ask("Quantity: ")
		if err != nil {
			return e.abandon(tx, out, err)
		}
		if isWord(qtyText, wordCancel) {
			return e.abandon(tx, out, nil)
		}
		qty, err := strconv.Atoi(qtyText)
		if err != nil {
			fmt.Fprintln(out, "Quantity must be a whole number.")
			continue
		}
		line, err := tx.Select(reply, qty)
		if err != nil {
			fmt.Fprintf(out, "Not added: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "Cart: %s x%d = %s\n", line.ItemName, line.Quantity, shared.FormatFixed(line.Subtotal))
	}
}

// collectPayment runs the payment prompt. It reports done=false when the
// operator went back to item selection.
func (e *env) collectPayment(ctx context.Context, p *prompter, out io.Writer, tx *sales.Transaction) (bool, error) {
	for {
		if err := renderCart(out, tx.Lines(), tx.GrandTotal()); err != nil {
			return true, err
		}
		reply, err := p.ask("Received cash ('back' to add items, 'cancel' to abort): ")
		if err != nil {
			return true, e.abandon(tx, out, err)
		}
		switch {
		case isWord(reply, wordBack):
			fmt.Fprintln(out, "Returning to product selection...")
			return false, tx.Resume()
		case isWord(reply, wordCancel):
			return true, e.abandon(tx, out, nil)
		}
		cash, err := shared.ParseMoney(reply)
		if err != nil {
			fmt.Fprintln(out, "Invalid cash input, enter a number.")
			continue
		}
		res, err := tx.Tender(ctx, cash)
		if errors.Is(err, sales.ErrInsufficientPayment) {
			fmt.Fprintf(out, "Insufficient funds, the total is %s.\n", shared.FormatFixed(tx.GrandTotal()))
			continue
		}
		if err != nil {
			return true, err
		}
		return true, e.finishSale(ctx, out, res)
	}
}

func (e *env) finishSale(ctx context.Context, out io.Writer, res sales.Result) error {
	if err := renderCart(out, res.Receipt.Lines, res.Receipt.Total); err != nil {
		return err
	}
	fmt.Fprintf(out, "Received Cash: %s\n", shared.FormatFixed(res.Receipt.Cash))
	fmt.Fprintf(out, "Change Due: %s\n", shared.FormatFixed(res.Change))
	if res.ReceiptPath != "" && res.ReceiptErr == nil {
		fmt.Fprintf(out, "Receipt generated: %s\n", res.ReceiptPath)
	}
	if res.PersistErr != nil {
		fmt.Fprintf(out, "Warning: sale recorded in memory only: %v\n", res.PersistErr)
	}
	if res.ReceiptErr != nil {
		fmt.Fprintf(out, "Warning: receipt not written: %v\n", res.ReceiptErr)
	}
	if err := e.session.SaveInventory(ctx); err != nil {
		fmt.Fprintf(out, "Warning: inventory not saved: %v\n", err)
	}
	return nil
}

func (e *env) abandon(tx *sales.Transaction, out io.Writer, cause error) error {
	if tx.State() == sales.StateBuilding || tx.State() == sales.StateAwaitingPayment {
		_ = tx.Cancel()
	}
	fmt.Fprintln(out, "Sale cancelled.")
	if cause != nil && !errors.Is(cause, io.EOF) {
		return cause
	}
	return nil
}

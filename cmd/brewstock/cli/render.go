package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brewstock/brewstock/internal/inventory"
	"github.com/brewstock/brewstock/internal/sales"
	"github.com/brewstock/brewstock/internal/shared"
	"github.com/brewstock/brewstock/internal/suppliers"
)

func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cells ...string) {
	fmt.Fprintln(tw, strings.Join(cells, "\t"))
}

func renderItems(w io.Writer, items []inventory.Item, now time.Time) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No items in inventory.")
		return err
	}
	tw := newTable(w, "NAME", "BATCH", "CATEGORY", "LOCATION", "QTY", "WEIGHT", "PACKAGING", "EXPIRES", "STATUS", "PRICE")
	for _, item := range items {
		exp := inventory.StatusNoDate
		if item.ExpirationDate != nil {
			exp = item.ExpirationDate.Format(inventory.DateLayout)
		}
		row(tw,
			item.Name,
			item.BatchNumber,
			string(item.Category),
			string(item.Location),
			strconv.Itoa(item.Quantity),
			item.Weight+" "+string(item.WeightUnit),
			item.Packaging,
			exp,
			item.Status(now),
			shared.FormatMoney(item.Price),
		)
	}
	return tw.Flush()
}

func renderCart(w io.Writer, lines []sales.CartLine, total decimal.Decimal) error {
	tw := newTable(w, "ITEM", "BATCH", "QTY", "TOTAL")
	for _, l := range lines {
		row(tw, l.ItemName, l.BatchNumber, strconv.Itoa(l.Quantity), shared.FormatFixed(l.Subtotal))
	}
	row(tw, "", "", "Grand Total:", shared.FormatFixed(total))
	return tw.Flush()
}

func renderSales(w io.Writer, records []sales.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No sales recorded.")
		return err
	}
	tw := newTable(w, "DATE", "ITEM", "QTY", "TOTAL", "BATCH")
	for _, r := range records {
		row(tw, r.SoldAt.Format("2006-01-02 15:04:05"), r.ItemName, strconv.Itoa(r.QuantitySold), shared.FormatFixed(r.TotalPrice), r.BatchNumber)
	}
	return tw.Flush()
}

func renderSuppliers(w io.Writer, list []suppliers.Supplier) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No suppliers.")
		return err
	}
	tw := newTable(w, "NAME", "CONTACT", "PRODUCTS")
	for _, s := range list {
		row(tw, s.Name, s.ContactInfo, strings.Join(s.Products, ", "))
	}
	return tw.Flush()
}

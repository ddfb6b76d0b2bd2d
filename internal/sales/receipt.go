package sales

import (
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brewstock/brewstock/internal/platform/files"
)

const receiptTimeLayout = "2006-01-02 15:04:05"

// Receipt summarises one committed transaction.
type Receipt struct {
	TransactionID uuid.UUID
	IssuedAt      time.Time
	Lines         []CartLine
	Total         decimal.Decimal
	Cash          decimal.Decimal
	Change        decimal.Decimal
}

// Render returns the printable receipt text.
func (r Receipt) Render() []byte {
	var b bytes.Buffer
	b.WriteString("Coffee Shop Receipt\n")
	b.WriteString("===================\n")
	fmt.Fprintf(&b, "Date: %s\n", r.IssuedAt.Format(receiptTimeLayout))
	if r.TransactionID != uuid.Nil {
		fmt.Fprintf(&b, "Ref: %s\n", r.TransactionID)
	}
	b.WriteString("\n")
	for _, line := range r.Lines {
		fmt.Fprintf(&b, "%-40s%dx\n", line.ItemName, line.Quantity)
		fmt.Fprintf(&b, "%-40s%s\n", line.BatchNumber, line.Subtotal.StringFixed(2))
		b.WriteString("\n")
	}
	b.WriteString("-----------------------\n")
	fmt.Fprintf(&b, "Total: PHP %s\n", r.Total.StringFixed(2))
	b.WriteString("-----------------------\n")
	fmt.Fprintf(&b, "%-24sPHP %10s\n", "Received Cash", r.Cash.StringFixed(2))
	fmt.Fprintf(&b, "%-24sPHP %10s\n", "Change Due", r.Change.StringFixed(2))
	return b.Bytes()
}

// ReceiptSink stores rendered receipts and returns where each went.
type ReceiptSink interface {
	Write(r Receipt) (string, error)
}

// ReceiptWriter writes one write-once file per receipt under Dir.
type ReceiptWriter struct {
	Dir string
}

// Write creates <Dir>/Receipt_yyyyMMdd_HHmmss_<id>.txt. The short transaction
// id keeps two sales within the same second apart.
func (w ReceiptWriter) Write(r Receipt) (string, error) {
	name := fmt.Sprintf("Receipt_%s_%s.txt", r.IssuedAt.Format("20060102_150405"), shortID(r.TransactionID))
	path := filepath.Join(w.Dir, name)
	if err := files.CreateNew(path, r.Render()); err != nil {
		return "", fmt.Errorf("sales: write receipt: %w", err)
	}
	return path, nil
}

func shortID(id uuid.UUID) string {
	if id == uuid.Nil {
		id = uuid.New()
	}
	return id.String()[:8]
}

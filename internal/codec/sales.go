package codec

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/brewstock/brewstock/internal/sales"
	"github.com/brewstock/brewstock/internal/shared"
)

const (
	saleDatePrefix  = "Sale Date:"
	saleDateLayout  = "2006-01-02 15:04:05"
	saleBlockRule   = "----------------------------"
	labelItem       = "Item"
	labelQuantity   = "Quantity Sold"
	labelTotal      = "Total Price"
	labelBatch      = "Batch Number"
	detailSeparator = ", "
	labelSeparator  = ": "
)

var saleLabels = []string{labelItem, labelQuantity, labelTotal, labelBatch}

// EncodeSale renders r as a three-line ledger block ending in a newline.
func EncodeSale(r sales.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", saleDatePrefix, r.SoldAt.Format(saleDateLayout))
	fmt.Fprintf(&b, "%s: %s, %s: %d, %s: %s, %s: %s\n",
		labelItem, r.ItemName,
		labelQuantity, r.QuantitySold,
		labelTotal, shared.FormatFixed(r.TotalPrice),
		labelBatch, r.BatchNumber,
	)
	b.WriteString(saleBlockRule + "\n")
	return b.String()
}

// EncodeSales renders records as consecutive blocks, ready to append.
func EncodeSales(records []sales.Record) []byte {
	var b strings.Builder
	for _, r := range records {
		b.WriteString(EncodeSale(r))
	}
	return []byte(b.String())
}

// DecodeSales parses a ledger. Each block starts at a "Sale Date:" line and
// runs until the rule line, the next block or the end of input. A block that
// cannot be parsed yields a zero Record in its place together with a
// LineError; text outside blocks is ignored.
func DecodeSales(r io.Reader, logger *slog.Logger) ([]sales.Record, []LineError, error) {
	lines, err := readLines(r)
	var (
		records []sales.Record
		bad     []LineError
	)
	for i := 0; i < len(lines); i++ {
		head := lines[i]
		if !strings.HasPrefix(head.text, saleDatePrefix) {
			continue
		}
		var body []string
		lineErr := head.err
		for i+1 < len(lines) {
			next := lines[i+1]
			if strings.HasPrefix(next.text, saleDatePrefix) {
				break
			}
			i++
			if next.err != nil {
				lineErr = next.err
				continue
			}
			if isRule(next.text) {
				break
			}
			if strings.TrimSpace(next.text) != "" {
				body = append(body, next.text)
			}
		}
		var (
			rec  sales.Record
			derr = lineErr
		)
		if derr == nil {
			rec, derr = decodeSaleBlock(head.text, body)
		}
		if derr != nil {
			bad = append(bad, LineError{Line: head.no, Text: head.text, Err: derr})
			rec = sales.Record{}
		}
		records = append(records, rec)
	}
	report(logger, "sales", bad)
	return records, bad, err
}

func isRule(s string) bool {
	s = strings.TrimSpace(s)
	return len(s) >= 3 && strings.Trim(s, "-") == ""
}

func decodeSaleBlock(head string, body []string) (sales.Record, error) {
	soldAt, err := time.ParseInLocation(saleDateLayout, strings.TrimSpace(strings.TrimPrefix(head, saleDatePrefix)), time.Local)
	if err != nil {
		return sales.Record{}, fmt.Errorf("%w: sale date: %w", ErrMalformed, err)
	}
	if len(body) == 0 {
		return sales.Record{}, fmt.Errorf("%w: missing sale details", ErrMalformed)
	}
	fields, err := splitLabeled(strings.Join(body, detailSeparator))
	if err != nil {
		return sales.Record{}, err
	}
	qty, err := strconv.Atoi(fields[labelQuantity])
	if err != nil {
		return sales.Record{}, fmt.Errorf("%w: %s %q", ErrMalformed, labelQuantity, fields[labelQuantity])
	}
	total, err := shared.ParseMoney(fields[labelTotal])
	if err != nil {
		return sales.Record{}, fmt.Errorf("%w: %s: %w", ErrMalformed, labelTotal, err)
	}
	return sales.Record{
		ItemName:     fields[labelItem],
		QuantitySold: qty,
		TotalPrice:   total,
		BatchNumber:  fields[labelBatch],
		SoldAt:       soldAt,
	}, nil
}

// splitLabeled reads the "Item: ..., Quantity Sold: ..., Total Price: ...,
// Batch Number: ..." detail. The trailing labels are located from the right,
// so the item name may itself contain ", " or a label.
func splitLabeled(detail string) (map[string]string, error) {
	rest := strings.TrimSpace(detail)
	first := saleLabels[0] + labelSeparator
	if !strings.HasPrefix(rest, first) {
		return nil, fmt.Errorf("%w: expected label %q", ErrMalformed, saleLabels[0])
	}
	rest = rest[len(first):]
	fields := make(map[string]string, len(saleLabels))
	for i := len(saleLabels) - 1; i > 0; i-- {
		marker := detailSeparator + saleLabels[i] + labelSeparator
		at := strings.LastIndex(rest, marker)
		if at < 0 {
			return nil, fmt.Errorf("%w: missing label %q", ErrMalformed, saleLabels[i])
		}
		fields[saleLabels[i]] = strings.TrimSpace(rest[at+len(marker):])
		rest = rest[:at]
	}
	fields[saleLabels[0]] = strings.TrimSpace(rest)
	return fields, nil
}

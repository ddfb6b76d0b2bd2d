package codec

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brewstock/brewstock/internal/inventory"
	"github.com/brewstock/brewstock/internal/shared"
)

// ItemSeparator delimits inventory fields.
const ItemSeparator = " | "

const (
	itemFields = 10
	noDate     = "N/A"
)

// EncodeItem renders item as one inventory line without a trailing newline.
func EncodeItem(item inventory.Item) string {
	exp := noDate
	if item.ExpirationDate != nil {
		exp = item.ExpirationDate.Format(inventory.DateLayout)
	}
	return strings.Join([]string{
		item.Name,
		item.BatchNumber,
		string(item.Category),
		string(item.Location),
		strconv.Itoa(item.Quantity),
		item.Weight,
		string(item.WeightUnit),
		item.Packaging,
		exp,
		shared.FormatMoney(item.Price),
	}, ItemSeparator)
}

// EncodeInventory renders every item, one per line.
func EncodeInventory(items []inventory.Item) []byte {
	var b strings.Builder
	for _, item := range items {
		b.WriteString(EncodeItem(item))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// DecodeItem parses one inventory line. Field values are checked for type
// only; catalog rules such as uniqueness are left to the catalog.
func DecodeItem(text string) (inventory.Item, error) {
	parts := strings.Split(text, ItemSeparator)
	if len(parts) != itemFields {
		return inventory.Item{}, fmt.Errorf("%w: %d fields, want %d", ErrMalformed, len(parts), itemFields)
	}
	category, err := inventory.ParseCategory(parts[2])
	if err != nil {
		return inventory.Item{}, err
	}
	location, err := inventory.ParseLocation(parts[3])
	if err != nil {
		return inventory.Item{}, err
	}
	qty, err := strconv.Atoi(strings.TrimSpace(parts[4]))
	if err != nil {
		return inventory.Item{}, fmt.Errorf("%w: quantity %q", ErrMalformed, parts[4])
	}
	weight := strings.TrimSpace(parts[5])
	if _, err := decimal.NewFromString(weight); err != nil {
		return inventory.Item{}, fmt.Errorf("%w: weight %q", ErrMalformed, parts[5])
	}
	unit, err := inventory.ParseWeightUnit(parts[6])
	if err != nil {
		return inventory.Item{}, err
	}
	var exp *time.Time
	if raw := strings.TrimSpace(parts[8]); raw != "" && raw != noDate {
		t, err := time.ParseInLocation(inventory.DateLayout, raw, time.Local)
		if err != nil {
			return inventory.Item{}, fmt.Errorf("%w: expiration date %q", ErrMalformed, raw)
		}
		exp = &t
	}
	price, err := shared.ParseMoney(parts[9])
	if err != nil {
		return inventory.Item{}, fmt.Errorf("%w: price: %w", ErrMalformed, err)
	}
	return inventory.Item{
		Name:           parts[0],
		BatchNumber:    parts[1],
		Category:       category,
		Location:       location,
		Quantity:       qty,
		Weight:         weight,
		WeightUnit:     unit,
		Packaging:      parts[7],
		ExpirationDate: exp,
		Price:          price,
	}, nil
}

// DecodeInventory parses an inventory store. Blank lines are ignored. The
// returned error is set only when r itself fails.
func DecodeInventory(r io.Reader, logger *slog.Logger) ([]inventory.Item, []LineError, error) {
	lines, err := readLines(r)
	var (
		items []inventory.Item
		bad   []LineError
	)
	for _, l := range lines {
		if l.err != nil {
			bad = append(bad, LineError{Line: l.no, Text: l.text, Err: l.err})
			continue
		}
		if strings.TrimSpace(l.text) == "" {
			continue
		}
		item, derr := DecodeItem(l.text)
		if derr != nil {
			bad = append(bad, LineError{Line: l.no, Text: l.text, Err: derr})
			continue
		}
		items = append(items, item)
	}
	report(logger, "inventory", bad)
	return items, bad, err
}

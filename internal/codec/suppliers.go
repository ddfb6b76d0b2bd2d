package codec

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/brewstock/brewstock/internal/suppliers"
)

const (
	supplierSeparator = "|"
	productSeparator  = ","
)

// EncodeSupplier renders s as name|contact|p1,p2.
func EncodeSupplier(s suppliers.Supplier) string {
	return s.Name + supplierSeparator + s.ContactInfo + supplierSeparator + strings.Join(s.Products, productSeparator)
}

// EncodeSuppliers renders every supplier, one per line.
func EncodeSuppliers(list []suppliers.Supplier) []byte {
	var b strings.Builder
	for _, s := range list {
		b.WriteString(EncodeSupplier(s))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// DecodeSupplier parses one supplier line. At least name and contact are
// required; a missing or empty product field means no products.
func DecodeSupplier(text string) (suppliers.Supplier, error) {
	parts := strings.Split(text, supplierSeparator)
	if len(parts) < 2 {
		return suppliers.Supplier{}, fmt.Errorf("%w: %d fields, want at least 2", ErrMalformed, len(parts))
	}
	s := suppliers.Supplier{Name: parts[0], ContactInfo: parts[1]}
	if len(parts) > 2 && parts[2] != "" {
		s.Products = strings.Split(parts[2], productSeparator)
	}
	return s, nil
}

// DecodeSuppliers parses a supplier store, skipping blank lines.
func DecodeSuppliers(r io.Reader, logger *slog.Logger) ([]suppliers.Supplier, []LineError, error) {
	lines, err := readLines(r)
	var (
		out []suppliers.Supplier
		bad []LineError
	)
	for _, l := range lines {
		if l.err != nil {
			bad = append(bad, LineError{Line: l.no, Text: l.text, Err: l.err})
			continue
		}
		if strings.TrimSpace(l.text) == "" {
			continue
		}
		s, derr := DecodeSupplier(l.text)
		if derr != nil {
			bad = append(bad, LineError{Line: l.no, Text: l.text, Err: derr})
			continue
		}
		out = append(out, s)
	}
	report(logger, "suppliers", bad)
	return out, bad, err
}

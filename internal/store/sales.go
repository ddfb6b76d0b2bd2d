package store

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/brewstock/brewstock/internal/codec"
	"github.com/brewstock/brewstock/internal/platform/files"
	"github.com/brewstock/brewstock/internal/sales"
)

// SalesFile is the append-only sales ledger file. It implements
// sales.Backend.
type SalesFile struct {
	path   string
	logger *slog.Logger
}

var _ sales.Backend = (*SalesFile)(nil)

func NewSalesFile(path string, logger *slog.Logger) *SalesFile {
	return &SalesFile{path: path, logger: defaultLogger(logger).With(slog.String("store", "sales"))}
}

// Load decodes every block in the file. Malformed blocks come back as zero
// records; a missing file yields no records.
func (s *SalesFile) Load(ctx context.Context) ([]sales.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := files.Read(s.path)
	if err != nil {
		if files.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: load sales: %w", err)
	}
	records, _, err := codec.DecodeSales(bytes.NewReader(data), s.logger)
	if err != nil {
		return records, fmt.Errorf("store: load sales: %w", err)
	}
	return records, nil
}

// Append writes the encoded blocks after the existing content in one call.
func (s *SalesFile) Append(ctx context.Context, records []sales.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}
	if err := files.Append(s.path, codec.EncodeSales(records)); err != nil {
		return fmt.Errorf("store: append sales: %w", err)
	}
	return nil
}

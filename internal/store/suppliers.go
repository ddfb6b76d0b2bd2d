package store

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/brewstock/brewstock/internal/codec"
	"github.com/brewstock/brewstock/internal/platform/files"
	"github.com/brewstock/brewstock/internal/suppliers"
)

// SupplierFile is the supplier store: name|contact|products per line.
type SupplierFile struct {
	path   string
	logger *slog.Logger
}

func NewSupplierFile(path string, logger *slog.Logger) *SupplierFile {
	return &SupplierFile{path: path, logger: defaultLogger(logger).With(slog.String("store", "suppliers"))}
}

// Path returns the backing file.
func (s *SupplierFile) Path() string { return s.path }

// Load adds every decodable supplier to d. A missing file leaves d empty.
func (s *SupplierFile) Load(ctx context.Context, d *suppliers.Directory) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := files.Read(s.path)
	if err != nil {
		if files.IsNotExist(err) {
			s.logger.Info("supplier file not found, starting empty", slog.String("path", s.path))
			return nil
		}
		return fmt.Errorf("store: load suppliers: %w", err)
	}
	list, _, decodeErr := codec.DecodeSuppliers(bytes.NewReader(data), s.logger)
	for _, sup := range list {
		if err := d.Add(sup); err != nil {
			s.logger.Warn("skipped supplier", slog.String("supplier", sup.Name), slog.Any("error", err))
		}
	}
	if decodeErr != nil {
		return fmt.Errorf("store: load suppliers: %w", decodeErr)
	}
	return nil
}

// Save rewrites the whole file from d.
func (s *SupplierFile) Save(ctx context.Context, d *suppliers.Directory) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := files.Replace(s.path, codec.EncodeSuppliers(d.List())); err != nil {
		return fmt.Errorf("store: save suppliers: %w", err)
	}
	return nil
}

// Package store persists the catalog, the supplier directory and the sales
// ledger to flat text files through the codec.
package store

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/brewstock/brewstock/internal/codec"
	"github.com/brewstock/brewstock/internal/inventory"
	"github.com/brewstock/brewstock/internal/platform/files"
)

// InventoryFile is the inventory store: one item per line.
type InventoryFile struct {
	path   string
	logger *slog.Logger
}

// NewInventoryFile returns a store backed by path.
func NewInventoryFile(path string, logger *slog.Logger) *InventoryFile {
	return &InventoryFile{path: path, logger: defaultLogger(logger).With(slog.String("store", "inventory"))}
}

// Path returns the backing file.
func (s *InventoryFile) Path() string { return s.path }

// Load adds every decodable item to c. A missing file leaves c empty.
// Malformed lines and items the catalog refuses are logged and skipped.
func (s *InventoryFile) Load(ctx context.Context, c *inventory.Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := files.Read(s.path)
	if err != nil {
		if files.IsNotExist(err) {
			s.logger.Info("inventory file not found, starting empty", slog.String("path", s.path))
			return nil
		}
		return fmt.Errorf("store: load inventory: %w", err)
	}
	items, _, decodeErr := codec.DecodeInventory(bytes.NewReader(data), s.logger)
	for _, item := range items {
		if err := c.Add(item); err != nil {
			s.logger.Warn("skipped inventory item", slog.String("item", item.Name), slog.Any("error", err))
		}
	}
	if decodeErr != nil {
		return fmt.Errorf("store: load inventory: %w", decodeErr)
	}
	s.logger.Debug("inventory loaded", slog.Int("items", c.Len()))
	return nil
}

// Save rewrites the whole file from c.
func (s *InventoryFile) Save(ctx context.Context, c *inventory.Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := files.Replace(s.path, codec.EncodeInventory(c.List())); err != nil {
		return fmt.Errorf("store: save inventory: %w", err)
	}
	return nil
}

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

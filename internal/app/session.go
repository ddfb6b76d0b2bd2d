package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/brewstock/brewstock/internal/inventory"
	"github.com/brewstock/brewstock/internal/observability"
	"github.com/brewstock/brewstock/internal/sales"
	"github.com/brewstock/brewstock/internal/store"
	"github.com/brewstock/brewstock/internal/suppliers"
)

// ErrStoreNotLoaded is returned when saving a store whose file could not be
// read at startup. The file is left as it was.
var ErrStoreNotLoaded = errors.New("app: store was not loaded, refusing to overwrite")

// Session owns the single catalog, ledger and supplier directory of a
// process and the files behind them.
type Session struct {
	Config    *Config
	Logger    *slog.Logger
	Catalog   *inventory.Catalog
	Ledger    *sales.Ledger
	Suppliers *suppliers.Directory
	Metrics   *observability.Metrics

	// Now stamps sales. Defaults to time.Now.
	Now func() time.Time

	inventoryFile *store.InventoryFile
	supplierFile  *store.SupplierFile
	receipts      sales.ReceiptSink
	loadErr       error

	// Set for stores whose file exists but could not be read in full.
	inventoryUnread bool
	suppliersUnread bool
}

// OpenSession builds a session and loads every store. Load failures are
// logged and kept in LoadErr; the session stays usable with whatever was read.
func OpenSession(ctx context.Context, cfg *Config, logger *slog.Logger, mode StoreMode) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		Config:    cfg,
		Logger:    logger,
		Catalog:   inventory.NewCatalog(),
		Suppliers: suppliers.NewDirectory(),
		Metrics:   observability.NewMetrics(),
		Now:       time.Now,
	}
	if mode == StoreMemory {
		s.Ledger = sales.NewLedger(nil, logger)
		logger.Debug("session opened in memory")
		return s
	}

	s.inventoryFile = store.NewInventoryFile(cfg.Path(cfg.InventoryFile), logger)
	s.supplierFile = store.NewSupplierFile(cfg.Path(cfg.SuppliersFile), logger)
	s.Ledger = sales.NewLedger(store.NewSalesFile(cfg.Path(cfg.SalesFile), logger), logger)
	s.receipts = sales.ReceiptWriter{Dir: cfg.Path(cfg.ReceiptsDir)}

	// Stores are independent; each slot keeps its own error.
	errs := make([]error, 3)
	var g errgroup.Group
	g.Go(func() error {
		errs[0] = s.inventoryFile.Load(ctx, s.Catalog)
		return nil
	})
	g.Go(func() error {
		errs[1] = s.supplierFile.Load(ctx, s.Suppliers)
		return nil
	})
	g.Go(func() error {
		errs[2] = s.Ledger.LoadAll(ctx)
		return nil
	})
	_ = g.Wait()
	s.inventoryUnread = errs[0] != nil
	s.suppliersUnread = errs[1] != nil
	s.loadErr = errors.Join(errs...)
	if s.loadErr != nil {
		logger.Error("session loaded with errors", slog.Any("error", s.loadErr))
	}
	logger.Debug("session opened",
		slog.Int("items", s.Catalog.Len()),
		slog.Int("suppliers", s.Suppliers.Len()),
		slog.Int("sales", s.Ledger.Len()),
	)
	return s
}

// LoadErr reports what could not be read when the session opened.
func (s *Session) LoadErr() error { return s.loadErr }

// NewSale starts a transaction against the session catalog and ledger.
func (s *Session) NewSale() *sales.Transaction {
	return sales.NewTransaction(s.Catalog, s.Ledger, s.receipts, sales.Options{
		Logger:   s.Logger,
		Now:      s.Now,
		Observer: s.Metrics,
	})
}

// SaveInventory rewrites the inventory file.
func (s *Session) SaveInventory(ctx context.Context) error {
	if s.inventoryFile == nil {
		return nil
	}
	if s.inventoryUnread {
		s.Logger.Warn("inventory changes kept in memory only", slog.String("path", s.inventoryFile.Path()))
		return fmt.Errorf("%w: %s", ErrStoreNotLoaded, s.inventoryFile.Path())
	}
	if err := s.inventoryFile.Save(ctx, s.Catalog); err != nil {
		s.Logger.Error("save inventory", slog.Any("error", err))
		return err
	}
	return nil
}

// SaveSuppliers rewrites the supplier file.
func (s *Session) SaveSuppliers(ctx context.Context) error {
	if s.supplierFile == nil {
		return nil
	}
	if s.suppliersUnread {
		s.Logger.Warn("supplier changes kept in memory only", slog.String("path", s.supplierFile.Path()))
		return fmt.Errorf("%w: %s", ErrStoreNotLoaded, s.supplierFile.Path())
	}
	if err := s.supplierFile.Save(ctx, s.Suppliers); err != nil {
		s.Logger.Error("save suppliers", slog.Any("error", err))
		return err
	}
	return nil
}

// Close saves inventory, suppliers and, when configured, the metrics
// textfile. The ledger is written on every sale and needs no final flush.
func (s *Session) Close(ctx context.Context) error {
	return errors.Join(s.SaveInventory(ctx), s.SaveSuppliers(ctx), s.WriteMetrics())
}

// WriteMetrics writes the metrics textfile when one is configured.
func (s *Session) WriteMetrics() error {
	if s.inventoryFile == nil || s.Config == nil || s.Config.MetricsFile == "" {
		return nil
	}
	return s.Metrics.WriteTextfile(s.Config.Path(s.Config.MetricsFile))
}

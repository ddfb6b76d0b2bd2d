package sales

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
)

// Backend is the durable side of a Ledger.
type Backend interface {
	// Load returns every stored record, including invalid ones.
	Load(ctx context.Context) ([]Record, error)
	// Append durably adds records after the existing content without
	// rewriting it.
	Append(ctx context.Context, records []Record) error
}

// Ledger is the append-only log of committed sales. It is not safe for
// concurrent use.
type Ledger struct {
	backend Backend
	logger  *slog.Logger
	records []Record
}

// NewLedger constructs a ledger over backend. A nil backend keeps records in
// memory only.
func NewLedger(backend Backend, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{backend: backend, logger: logger}
}

// LoadAll replaces the in-memory log with the backend content. Records with a
// non-positive quantity or total are dropped. Records read before a backend
// failure are kept.
func (l *Ledger) LoadAll(ctx context.Context) error {
	if l.backend == nil {
		return nil
	}
	stored, loadErr := l.backend.Load(ctx)
	kept := make([]Record, 0, len(stored))
	for _, r := range stored {
		if r.Valid() {
			kept = append(kept, r)
		}
	}
	if dropped := len(stored) - len(kept); dropped > 0 {
		l.logger.Debug("discarded invalid sale records", slog.Int("count", dropped))
	}
	l.records = kept
	if loadErr != nil {
		return fmt.Errorf("%w: load: %w", ErrPersist, loadErr)
	}
	return nil
}

// Validate reports the first record that Append would refuse.
func (l *Ledger) Validate(records ...Record) error {
	for i, r := range records {
		if err := r.check(); err != nil {
			return fmt.Errorf("%w: #%d %q: %v", ErrInvalidRecord, i, r.ItemName, err)
		}
	}
	return nil
}

// Append adds records to the log. Invalid input is refused as a whole with
// ErrInvalidRecord. When the backend write fails the records remain in memory
// and the returned error wraps ErrPersist.
func (l *Ledger) Append(ctx context.Context, records ...Record) error {
	if len(records) == 0 {
		return nil
	}
	if err := l.Validate(records...); err != nil {
		return err
	}
	l.records = append(l.records, records...)
	if l.backend == nil {
		return nil
	}
	if err := l.backend.Append(ctx, records); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// Total sums TotalPrice over every record.
func (l *Ledger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, r := range l.records {
		total = total.Add(r.TotalPrice)
	}
	return total
}

// Records returns a copy of the log in append order.
func (l *Ledger) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	return len(l.records)
}

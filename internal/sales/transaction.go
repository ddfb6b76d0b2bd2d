package sales

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brewstock/brewstock/internal/inventory"
)

// Observer is told how each transaction ended.
type Observer interface {
	SaleCommitted(Result)
	SaleAborted()
}

// Options tunes a Transaction.
type Options struct {
	Logger *slog.Logger
	// Now stamps records and receipts. Defaults to time.Now.
	Now      func() time.Time
	Observer Observer
}

// Transaction assembles a cart against a catalog and commits it together with
// the matching ledger records. Catalog and ledger are touched only by Tender.
type Transaction struct {
	id       uuid.UUID
	catalog  *inventory.Catalog
	ledger   *Ledger
	receipts ReceiptSink
	logger   *slog.Logger
	now      func() time.Time
	observer Observer

	state State
	lines []CartLine
	index map[string]int
	total decimal.Decimal
}

// Result describes a committed transaction. PersistErr and ReceiptErr report
// failures that happened after the sale was already applied in memory.
type Result struct {
	ID          uuid.UUID
	Records     []Record
	Receipt     Receipt
	ReceiptPath string
	Change      decimal.Decimal
	PersistErr  error
	ReceiptErr  error
}

// NewTransaction starts a transaction in StateBuilding. receipts may be nil.
func NewTransaction(catalog *inventory.Catalog, ledger *Ledger, receipts ReceiptSink, opts Options) *Transaction {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	id := uuid.New()
	return &Transaction{
		id:       id,
		catalog:  catalog,
		ledger:   ledger,
		receipts: receipts,
		logger:   opts.Logger.With(slog.String("transaction", id.String())),
		now:      opts.Now,
		observer: opts.Observer,
		state:    StateBuilding,
		index:    make(map[string]int),
		total:    decimal.Zero,
	}
}

// Select adds qty units of the named item to the cart, merging with an
// existing line for the same item. The unit price is captured now.
func (t *Transaction) Select(name string, qty int) (CartLine, error) {
	if err := t.require(StateBuilding); err != nil {
		return CartLine{}, err
	}
	if qty <= 0 {
		return CartLine{}, fmt.Errorf("%w: %d", inventory.ErrInvalidQuantity, qty)
	}
	item, err := t.catalog.Get(name)
	if err != nil {
		return CartLine{}, err
	}
	if !item.Available() {
		return CartLine{}, fmt.Errorf("%w: %q", ErrUnavailable, name)
	}
	pos, inCart := t.index[name]
	already := 0
	if inCart {
		already = t.lines[pos].Quantity
	}
	if already+qty > item.Quantity {
		return CartLine{}, fmt.Errorf("%w: %q has %d, cart wants %d", inventory.ErrInsufficientStock, name, item.Quantity, already+qty)
	}

	subtotal := item.Price.Mul(decimal.NewFromInt(int64(qty)))
	if !inCart {
		t.index[name] = len(t.lines)
		t.lines = append(t.lines, CartLine{
			ItemName:    name,
			BatchNumber: item.BatchNumber,
			UnitPrice:   item.Price,
			Subtotal:    decimal.Zero,
		})
		pos = t.index[name]
	}
	line := &t.lines[pos]
	line.Quantity += qty
	line.Subtotal = line.Subtotal.Add(subtotal)
	t.total = t.total.Add(subtotal)
	return *line, nil
}

// Checkout stops item selection and waits for payment.
func (t *Transaction) Checkout() error {
	if err := t.require(StateBuilding); err != nil {
		return err
	}
	if len(t.lines) == 0 {
		return ErrEmptyCart
	}
	t.state = StateAwaitingPayment
	return nil
}

// Resume returns from the payment prompt to item selection, keeping the cart.
func (t *Transaction) Resume() error {
	if err := t.require(StateAwaitingPayment); err != nil {
		return err
	}
	t.state = StateBuilding
	return nil
}

// Cancel discards the cart. Catalog and ledger are untouched.
func (t *Transaction) Cancel() error {
	if t.state != StateBuilding && t.state != StateAwaitingPayment {
		return fmt.Errorf("%w: cancel in %s", ErrInvalidState, t.state)
	}
	t.abort()
	t.logger.Info("sale cancelled")
	return nil
}

// Tender accepts cash and commits the sale. Cash below the grand total is
// refused with ErrInsufficientPayment and the transaction keeps waiting.
// Any other error aborts the transaction with catalog and ledger unchanged.
func (t *Transaction) Tender(ctx context.Context, cash decimal.Decimal) (Result, error) {
	if err := t.require(StateAwaitingPayment); err != nil {
		return Result{}, err
	}
	if cash.LessThan(t.total) {
		return Result{}, fmt.Errorf("%w: tendered %s, total %s", ErrInsufficientPayment, cash.StringFixed(2), t.total.StringFixed(2))
	}

	soldAt := t.now()
	records := make([]Record, 0, len(t.lines))
	moves := make([]inventory.Movement, 0, len(t.lines))
	for _, line := range t.lines {
		records = append(records, Record{
			ItemName:     line.ItemName,
			QuantitySold: line.Quantity,
			TotalPrice:   line.Subtotal,
			BatchNumber:  line.BatchNumber,
			SoldAt:       soldAt,
		})
		moves = append(moves, inventory.Movement{Name: line.ItemName, Amount: line.Quantity})
	}
	if err := t.ledger.Validate(records...); err != nil {
		t.abort()
		return Result{}, fmt.Errorf("sales: commit: %w", err)
	}

	snapshot := t.catalog.Snapshot()
	if err := t.catalog.DecrementAll(moves); err != nil {
		t.abort()
		t.logger.Error("commit decrement failed", slog.Any("error", err))
		return Result{}, fmt.Errorf("sales: commit: %w", err)
	}
	res := Result{ID: t.id, Records: records, Change: cash.Sub(t.total)}
	if err := t.ledger.Append(ctx, records...); err != nil {
		if !errors.Is(err, ErrPersist) {
			t.catalog.Restore(snapshot)
			t.abort()
			return Result{}, fmt.Errorf("sales: commit: %w", err)
		}
		t.logger.Error("sale committed but ledger not saved", slog.Any("error", err))
		res.PersistErr = err
	}
	t.state = StateCommitted

	res.Receipt = Receipt{
		TransactionID: t.id,
		IssuedAt:      soldAt,
		Lines:         t.Lines(),
		Total:         t.total,
		Cash:          cash,
		Change:        res.Change,
	}
	if t.receipts != nil {
		path, err := t.receipts.Write(res.Receipt)
		if err != nil {
			t.logger.Error("receipt not written", slog.Any("error", err))
			res.ReceiptErr = err
		}
		res.ReceiptPath = path
	}
	t.logger.Info("sale committed",
		slog.Int("lines", len(records)),
		slog.String("total", t.total.StringFixed(2)),
		slog.String("change", res.Change.StringFixed(2)),
	)
	if t.observer != nil {
		t.observer.SaleCommitted(res)
	}
	return res, nil
}

// Lines returns a copy of the cart in selection order.
func (t *Transaction) Lines() []CartLine {
	out := make([]CartLine, len(t.lines))
	copy(out, t.lines)
	return out
}

// GrandTotal is the sum of all line subtotals.
func (t *Transaction) GrandTotal() decimal.Decimal { return t.total }

// State returns the current lifecycle stage.
func (t *Transaction) State() State { return t.state }

// ID identifies the transaction in logs and on the receipt.
func (t *Transaction) ID() uuid.UUID { return t.id }

func (t *Transaction) require(want State) error {
	if t.state != want {
		return fmt.Errorf("%w: %s, want %s", ErrInvalidState, t.state, want)
	}
	return nil
}

func (t *Transaction) abort() {
	t.state = StateAborted
	t.lines = nil
	t.index = make(map[string]int)
	t.total = decimal.Zero
	if t.observer != nil {
		t.observer.SaleAborted()
	}
}

package sales

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brewstock/brewstock/internal/shared"
)

// Record is one committed sale line as stored in the ledger.
type Record struct {
	ItemName     string
	QuantitySold int
	TotalPrice   decimal.Decimal
	BatchNumber  string
	SoldAt       time.Time
}

// Valid reports whether r counts as a sale: a positive quantity and a
// positive total. Replayed records failing it are dropped.
func (r Record) Valid() bool {
	return r.QuantitySold > 0 && r.TotalPrice.IsPositive()
}

// check is the stricter rule for records entering the ledger: besides being
// Valid they need a single-line name and batch and a total in whole centavos.
func (r Record) check() error {
	switch {
	case !r.Valid():
		return fmt.Errorf("quantity %d and total %s must be positive", r.QuantitySold, r.TotalPrice)
	case r.ItemName == "":
		return errors.New("item name is required")
	case strings.ContainsAny(r.ItemName+r.BatchNumber, "\r\n"):
		return errors.New("item name and batch must be single-line")
	case !shared.HasMoneyScale(r.TotalPrice):
		return fmt.Errorf("total %s has more than %d decimal places", r.TotalPrice, shared.MoneyScale)
	}
	return nil
}

// CartLine is an item chosen during a sale and not yet committed.
type CartLine struct {
	ItemName    string
	BatchNumber string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// State is the lifecycle stage of a Transaction.
type State int

const (
	StateBuilding State = iota
	StateAwaitingPayment
	StateCommitted
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateBuilding:
		return "building"
	case StateAwaitingPayment:
		return "awaiting_payment"
	case StateCommitted:
		return "committed"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidRecord indicates a record that cannot be stored.
	ErrInvalidRecord = errors.New("sales: invalid record")
	// ErrPersist wraps failures of the durable ledger backend.
	ErrPersist = errors.New("sales: ledger persist failed")
	// ErrEmptyCart is returned on checkout with no selected lines.
	ErrEmptyCart = errors.New("sales: cart is empty")
	// ErrUnavailable indicates the item has no stock on hand.
	ErrUnavailable = errors.New("sales: item is not available")
	// ErrInsufficientPayment is returned when tendered cash is below the total.
	ErrInsufficientPayment = errors.New("sales: insufficient payment")
	// ErrInvalidState indicates an operation not allowed in the current state.
	ErrInvalidState = errors.New("sales: operation not allowed in current state")
)

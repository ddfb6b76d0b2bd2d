package inventory

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category enumerates the fixed item categories.
type Category string

const (
	CategoryRoastedBeans       Category = "Roasted Beans"
	CategoryAccessories        Category = "Accessories"
	CategoryDisposableProducts Category = "Disposable Products"
	CategoryCoffeeEquipment    Category = "Coffee Equipment"
	CategoryOther              Category = "Other"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{CategoryRoastedBeans, CategoryAccessories, CategoryDisposableProducts, CategoryCoffeeEquipment, CategoryOther}
}

// ParseCategory matches s against the category names, ignoring case.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: category %q", ErrUnknownChoice, s)
}

// Location enumerates where stock is kept.
type Location string

const (
	LocationShopStorage Location = "Coffee Shop Storage"
	LocationOnDisplay   Location = "On Display"
	LocationOther       Location = "Other"
)

// Locations lists every location in display order.
func Locations() []Location {
	return []Location{LocationShopStorage, LocationOnDisplay, LocationOther}
}

// ParseLocation matches s against the location names, ignoring case.
func ParseLocation(s string) (Location, error) {
	for _, l := range Locations() {
		if strings.EqualFold(strings.TrimSpace(s), string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: location %q", ErrUnknownChoice, s)
}

// WeightUnit enumerates the units a weight may be expressed in.
type WeightUnit string

const (
	UnitGram       WeightUnit = "g"
	UnitKilogram   WeightUnit = "kg"
	UnitMilliliter WeightUnit = "ml"
	UnitLiter      WeightUnit = "l"
)

// WeightUnits lists every unit in display order.
func WeightUnits() []WeightUnit {
	return []WeightUnit{UnitGram, UnitKilogram, UnitMilliliter, UnitLiter}
}

// ParseWeightUnit matches s against the unit symbols, ignoring case.
func ParseWeightUnit(s string) (WeightUnit, error) {
	for _, u := range WeightUnits() {
		if strings.EqualFold(strings.TrimSpace(s), string(u)) {
			return u, nil
		}
	}
	return "", fmt.Errorf("%w: weight unit %q", ErrUnknownChoice, s)
}

// Item is one stocked product keyed by Name.
type Item struct {
	Name           string     `validate:"required,nosep,nolabel"`
	BatchNumber    string     `validate:"required,nosep,nolabel"`
	Category       Category   `validate:"category"`
	Location       Location   `validate:"location"`
	Quantity       int        `validate:"gte=0"`
	Weight         string     `validate:"decimal"`
	WeightUnit     WeightUnit `validate:"weightunit"`
	Packaging      string     `validate:"nosep"`
	ExpirationDate *time.Time
	Price          decimal.Decimal `validate:"gt=0"`
}

// Status labels shown next to an item's expiration date.
const (
	StatusExpired = "Expired"
	StatusValid   = "Valid"
	StatusNoDate  = "N/A"
)

// Expired reports whether the item has an expiration date before now.
func (i Item) Expired(now time.Time) bool {
	return i.ExpirationDate != nil && i.ExpirationDate.Before(now)
}

// Status returns the expiration label. It never affects sale eligibility.
func (i Item) Status(now time.Time) string {
	switch {
	case i.ExpirationDate == nil:
		return StatusNoDate
	case i.Expired(now):
		return StatusExpired
	default:
		return StatusValid
	}
}

// Available reports whether the item can be sold.
func (i Item) Available() bool {
	return i.Quantity > 0
}

func (i Item) clone() Item {
	if i.ExpirationDate != nil {
		exp := *i.ExpirationDate
		i.ExpirationDate = &exp
	}
	return i
}

// Field names an updatable item attribute.
type Field string

const (
	FieldCategory       Field = "category"
	FieldLocation       Field = "location"
	FieldQuantity       Field = "quantity"
	FieldWeight         Field = "weight"
	FieldWeightUnit     Field = "weight_unit"
	FieldPackaging      Field = "packaging"
	FieldExpirationDate Field = "expiration_date"
	FieldPrice          Field = "price"
)

// Fields lists the updatable fields.
func Fields() []Field {
	return []Field{FieldCategory, FieldLocation, FieldQuantity, FieldWeight, FieldWeightUnit, FieldPackaging, FieldExpirationDate, FieldPrice}
}

// ParseField accepts "weight unit", "weight-unit" and "Weight_Unit" alike.
func ParseField(s string) (Field, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	for _, f := range Fields() {
		if norm == string(f) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: field %q", ErrUnknownChoice, s)
}

// Movement is a quantity change applied to one item.
type Movement struct {
	Name   string
	Amount int
}

// DateLayout is the textual form of expiration dates.
const DateLayout = "2006-01-02"

var (
	// ErrNotFound indicates the item name is not in the catalog.
	ErrNotFound = errors.New("inventory: item not found")
	// ErrDuplicateName indicates the item name is already used.
	ErrDuplicateName = errors.New("inventory: item name already exists")
	// ErrDuplicateBatch indicates the batch number is already used by another item.
	ErrDuplicateBatch = errors.New("inventory: batch number already exists")
	// ErrInsufficientStock triggered when a decrement exceeds the quantity on hand.
	ErrInsufficientStock = errors.New("inventory: insufficient stock")
	// ErrInvalidQuantity indicates a non-positive movement amount.
	ErrInvalidQuantity = errors.New("inventory: quantity must be positive")
	// ErrUnknownChoice indicates a value outside a fixed enumeration.
	ErrUnknownChoice = errors.New("inventory: unknown choice")
)

package inventory

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/brewstock/brewstock/internal/shared"
)

// Catalog owns the authoritative name → item mapping. It enforces unique
// names, unique batch numbers, non-negative quantities and positive prices.
// A Catalog is not safe for concurrent use.
type Catalog struct {
	items    map[string]*Item
	order    []string
	batches  map[string]string
	validate *validator.Validate
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		items:    make(map[string]*Item),
		batches:  make(map[string]string),
		validate: newValidator(),
	}
}

func newValidator() *validator.Validate {
	v := shared.NewValidator()
	register := func(tag string, ok func(string) bool) {
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return ok(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("inventory: register %s: %v", tag, err))
		}
	}
	register("category", func(s string) bool { _, err := ParseCategory(s); return err == nil })
	register("location", func(s string) bool { _, err := ParseLocation(s); return err == nil })
	register("weightunit", func(s string) bool { _, err := ParseWeightUnit(s); return err == nil })
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		item := sl.Current().Interface().(Item)
		if !shared.HasMoneyScale(item.Price) {
			sl.ReportError(item.Price, "Price", "Price", "moneyscale", "")
		}
	}, Item{})
	return v
}

// Add inserts item. The catalog is unchanged when it returns an error.
func (c *Catalog) Add(item Item) error {
	if err := shared.ValidateStruct(c.validate, item); err != nil {
		return fmt.Errorf("inventory: add %q: %w", item.Name, err)
	}
	if _, ok := c.items[item.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, item.Name)
	}
	if owner, ok := c.batches[item.BatchNumber]; ok {
		return fmt.Errorf("%w: %q is used by %q", ErrDuplicateBatch, item.BatchNumber, owner)
	}
	stored := item.clone()
	c.items[item.Name] = &stored
	c.batches[item.BatchNumber] = item.Name
	c.order = append(c.order, item.Name)
	return nil
}

// Update parses value for field and applies it to the named item. Setting a
// field to its current value succeeds. An empty value clears the expiration
// date.
func (c *Catalog) Update(name string, field Field, value string) error {
	current, ok := c.items[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	next := current.clone()
	if err := applyField(&next, field, value); err != nil {
		return fmt.Errorf("inventory: update %q: %w", name, err)
	}
	if err := shared.ValidateStruct(c.validate, next); err != nil {
		return fmt.Errorf("inventory: update %q: %w", name, err)
	}
	*current = next
	return nil
}

func applyField(item *Item, field Field, value string) error {
	invalid := func(reason string, cause error) error {
		return &shared.ValidationError{Field: string(field), Reason: reason, Err: cause}
	}
	value = strings.TrimSpace(value)
	switch field {
	case FieldCategory:
		cat, err := ParseCategory(value)
		if err != nil {
			return invalid("must be one of the fixed categories", err)
		}
		item.Category = cat
	case FieldLocation:
		loc, err := ParseLocation(value)
		if err != nil {
			return invalid("must be one of the fixed locations", err)
		}
		item.Location = loc
	case FieldQuantity:
		qty, err := strconv.Atoi(value)
		if err != nil {
			return invalid("must be a whole number", err)
		}
		item.Quantity = qty
	case FieldWeight:
		item.Weight = value
	case FieldWeightUnit:
		unit, err := ParseWeightUnit(value)
		if err != nil {
			return invalid("must be one of g, kg, ml, l", err)
		}
		item.WeightUnit = unit
	case FieldPackaging:
		item.Packaging = value
	case FieldExpirationDate:
		if value == "" {
			item.ExpirationDate = nil
			return nil
		}
		exp, err := time.ParseInLocation(DateLayout, value, time.Local)
		if err != nil {
			return invalid("must be a date in yyyy-MM-dd format", err)
		}
		item.ExpirationDate = &exp
	case FieldPrice:
		price, err := shared.ParseMoney(value)
		if err != nil {
			return invalid("must be a number", err)
		}
		item.Price = price
	default:
		return invalid("is not updatable", ErrUnknownChoice)
	}
	return nil
}

// Remove deletes the named item.
func (c *Catalog) Remove(name string) error {
	item, ok := c.items[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(c.batches, item.BatchNumber)
	delete(c.items, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns a copy of the named item.
func (c *Catalog) Get(name string) (Item, error) {
	item, ok := c.items[name]
	if !ok {
		return Item{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return item.clone(), nil
}

// List returns copies of all items in insertion order.
func (c *Catalog) List() []Item {
	out := make([]Item, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.items[name].clone())
	}
	return out
}

// Available returns the items with stock on hand, in insertion order.
func (c *Catalog) Available() []Item {
	var out []Item
	for _, name := range c.order {
		if item := c.items[name]; item.Available() {
			out = append(out, item.clone())
		}
	}
	return out
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Snapshot is a point-in-time copy of a catalog.
type Snapshot struct {
	items []Item
}

// Snapshot captures the current contents for a later Restore.
func (c *Catalog) Snapshot() Snapshot {
	return Snapshot{items: c.List()}
}

// Restore replaces the catalog contents with s.
func (c *Catalog) Restore(s Snapshot) {
	c.items = make(map[string]*Item, len(s.items))
	c.batches = make(map[string]string, len(s.items))
	c.order = c.order[:0]
	for _, item := range s.items {
		stored := item.clone()
		c.items[item.Name] = &stored
		c.batches[item.BatchNumber] = item.Name
		c.order = append(c.order, item.Name)
	}
}

// Decrement reduces the named item's quantity by amount. The item stays
// listed when it reaches zero.
func (c *Catalog) Decrement(name string, amount int) error {
	return c.DecrementAll([]Movement{{Name: name, Amount: amount}})
}

// DecrementAll applies every movement or none of them. Movements naming the
// same item are summed before checking stock.
func (c *Catalog) DecrementAll(moves []Movement) error {
	wanted := make(map[string]int, len(moves))
	for _, m := range moves {
		if m.Amount <= 0 {
			return fmt.Errorf("%w: %q amount %d", ErrInvalidQuantity, m.Name, m.Amount)
		}
		if _, ok := c.items[m.Name]; !ok {
			return fmt.Errorf("%w: %q", ErrNotFound, m.Name)
		}
		wanted[m.Name] += m.Amount
	}
	for name, amount := range wanted {
		if have := c.items[name].Quantity; amount > have {
			return fmt.Errorf("%w: %q has %d, need %d", ErrInsufficientStock, name, have, amount)
		}
	}
	for name, amount := range wanted {
		c.items[name].Quantity -= amount
	}
	return nil
}

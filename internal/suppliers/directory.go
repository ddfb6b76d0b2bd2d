// Package suppliers keeps the supplier directory: who supplies what and how
// to reach them.
package suppliers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/brewstock/brewstock/internal/shared"
)

// Supplier is one directory entry keyed by Name. Products keep their entry
// order and may repeat.
type Supplier struct {
	Name        string   `validate:"required,nosep"`
	ContactInfo string   `validate:"nosep"`
	Products    []string `validate:"dive,required,nosep,nocomma"`
}

var (
	ErrNotFound  = fmt.Errorf("suppliers: %w", shared.ErrNotFound)
	ErrDuplicate = fmt.Errorf("suppliers: %w", shared.ErrDuplicate)
)

// Directory is an insertion-ordered set of suppliers. Not safe for concurrent use.
type Directory struct {
	byName   map[string]int
	entries  []Supplier
	validate *validator.Validate
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{byName: make(map[string]int), validate: shared.NewValidator()}
}

// Add inserts s. Names are unique.
func (d *Directory) Add(s Supplier) error {
	if err := shared.ValidateStruct(d.validate, s); err != nil {
		return fmt.Errorf("suppliers: add %q: %w", s.Name, err)
	}
	if _, ok := d.byName[s.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicate, s.Name)
	}
	d.byName[s.Name] = len(d.entries)
	d.entries = append(d.entries, clone(s))
	return nil
}

// Remove deletes the named supplier.
func (d *Directory) Remove(name string) error {
	pos, ok := d.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	d.entries = append(d.entries[:pos], d.entries[pos+1:]...)
	delete(d.byName, name)
	for i := pos; i < len(d.entries); i++ {
		d.byName[d.entries[i].Name] = i
	}
	return nil
}

// Get returns a copy of the named supplier.
func (d *Directory) Get(name string) (Supplier, error) {
	pos, ok := d.byName[name]
	if !ok {
		return Supplier{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return clone(d.entries[pos]), nil
}

// List returns copies of every supplier in insertion order.
func (d *Directory) List() []Supplier {
	out := make([]Supplier, 0, len(d.entries))
	for _, s := range d.entries {
		out = append(out, clone(s))
	}
	return out
}

func (d *Directory) Len() int { return len(d.entries) }

// IsNotFound reports whether err means the supplier does not exist.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func clone(s Supplier) Supplier {
	if s.Products != nil {
		s.Products = append([]string(nil), s.Products...)
	}
	return s
}

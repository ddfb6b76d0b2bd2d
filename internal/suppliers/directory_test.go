package suppliers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brewstock/brewstock/internal/shared"
)

func TestDirectoryAddRemove(t *testing.T) {
	d := NewDirectory()
	require.NoError(t, d.Add(Supplier{Name: "Bean Co", ContactInfo: "0917 555 0101", Products: []string{"Arabica", "Robusta", "Arabica"}}))
	require.NoError(t, d.Add(Supplier{Name: "Cup World"}))
	require.NoError(t, d.Add(Supplier{Name: "Filter House", ContactInfo: "sales@filter.example"}))

	err := d.Add(Supplier{Name: "Bean Co"})
	require.ErrorIs(t, err, ErrDuplicate)
	require.ErrorIs(t, err, shared.ErrDuplicate)

	require.NoError(t, d.Remove("Cup World"))
	require.True(t, IsNotFound(d.Remove("Cup World")))

	var names []string
	for _, s := range d.List() {
		names = append(names, s.Name)
	}
	require.Equal(t, []string{"Bean Co", "Filter House"}, names)

	got, err := d.Get("Filter House")
	require.NoError(t, err)
	require.Equal(t, "sales@filter.example", got.ContactInfo)

	beans, err := d.Get("Bean Co")
	require.NoError(t, err)
	require.Equal(t, []string{"Arabica", "Robusta", "Arabica"}, beans.Products)
	beans.Products[0] = "changed"
	again, _ := d.Get("Bean Co")
	require.Equal(t, "Arabica", again.Products[0])
}

func TestDirectoryRejectsSeparators(t *testing.T) {
	d := NewDirectory()
	require.ErrorIs(t, d.Add(Supplier{Name: ""}), shared.ErrValidation)
	require.ErrorIs(t, d.Add(Supplier{Name: "A|B"}), shared.ErrValidation)
	require.ErrorIs(t, d.Add(Supplier{Name: "A", ContactInfo: "x|y"}), shared.ErrValidation)
	require.ErrorIs(t, d.Add(Supplier{Name: "A", Products: []string{"milk, oat"}}), shared.ErrValidation)
	require.ErrorIs(t, d.Add(Supplier{Name: "A", Products: []string{""}}), shared.ErrValidation)
	require.Zero(t, d.Len())
}

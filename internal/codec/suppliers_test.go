package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brewstock/brewstock/internal/suppliers"
)

func TestSupplierRoundTrip(t *testing.T) {
	list := []suppliers.Supplier{
		{Name: "Bean Co", ContactInfo: "0917 555 0101", Products: []string{"Arabica", "Robusta", "Arabica"}},
		{Name: "Cup World", ContactInfo: ""},
	}
	data := EncodeSuppliers(list)
	require.Equal(t, "Bean Co|0917 555 0101|Arabica,Robusta,Arabica\nCup World||\n", string(data))

	got, bad, err := DecodeSuppliers(strings.NewReader(string(data)), nil)
	require.NoError(t, err)
	require.Empty(t, bad)
	require.Equal(t, list, got)
}

func TestDecodeSupplier(t *testing.T) {
	s, err := DecodeSupplier("Filter House|sales@filter.example")
	require.NoError(t, err)
	require.Equal(t, "Filter House", s.Name)
	require.Nil(t, s.Products)

	_, err = DecodeSupplier("just a name")
	require.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeSuppliersSkipsShortLines(t *testing.T) {
	input := "orphan\n\nBean Co|0917|Arabica\n"
	got, bad, err := DecodeSuppliers(strings.NewReader(input), nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, bad, 1)
	require.Equal(t, 1, bad[0].Line)
}

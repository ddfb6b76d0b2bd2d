package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/brewstock/brewstock/internal/inventory"
	"github.com/brewstock/brewstock/internal/sales"
	"github.com/brewstock/brewstock/internal/suppliers"
)

func TestInventoryFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "inventory.txt")
	file := NewInventoryFile(path, nil)

	c := inventory.NewCatalog()
	require.NoError(t, c.Add(inventory.Item{
		Name: "Espresso Beans", BatchNumber: "B1",
		Category: inventory.CategoryRoastedBeans, Location: inventory.LocationShopStorage,
		Quantity: 10, Weight: "250", WeightUnit: inventory.UnitGram, Packaging: "Bag",
		Price: decimal.RequireFromString("250"),
	}))
	require.NoError(t, file.Save(ctx, c))

	loaded := inventory.NewCatalog()
	require.NoError(t, file.Load(ctx, loaded))
	require.Equal(t, 1, loaded.Len())
	item, err := loaded.Get("Espresso Beans")
	require.NoError(t, err)
	require.Equal(t, 10, item.Quantity)
	require.True(t, decimal.NewFromInt(250).Equal(item.Price))
}

func TestInventoryFileKeepsItemsAroundOverlongLine(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "inventory.txt")
	content := "Beans | B1 | Roasted Beans | On Display | 5 | 1 | kg | Bag | N/A | ₱900.00\n" +
		strings.Repeat("z", 2<<20) + "\n" +
		"Filters | F2 | Accessories | Other | 40 | 10 | g | Box | N/A | ₱3.25\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	file := NewInventoryFile(path, nil)
	c := inventory.NewCatalog()
	require.NoError(t, file.Load(ctx, c))
	require.Equal(t, 2, c.Len())

	require.NoError(t, c.Add(inventory.Item{
		Name: "Mugs", BatchNumber: "M1",
		Category: inventory.CategoryAccessories, Location: inventory.LocationOnDisplay,
		Quantity: 3, Weight: "300", WeightUnit: inventory.UnitGram, Packaging: "Box",
		Price: decimal.RequireFromString("150"),
	}))
	require.NoError(t, file.Save(ctx, c))

	reloaded := inventory.NewCatalog()
	require.NoError(t, file.Load(ctx, reloaded))
	for _, name := range []string{"Beans", "Filters", "Mugs"} {
		_, err := reloaded.Get(name)
		require.NoError(t, err, name)
	}
}

func TestInventoryFileMissingIsEmpty(t *testing.T) {
	c := inventory.NewCatalog()
	file := NewInventoryFile(filepath.Join(t.TempDir(), "none.txt"), nil)
	require.NoError(t, file.Load(context.Background(), c))
	require.Zero(t, c.Len())
}

func TestInventoryFileSkipsBadAndDuplicateLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.txt")
	content := strings.Join([]string{
		"Beans | B1 | Roasted Beans | On Display | 5 | 1 | kg | Bag | N/A | ₱900.00",
		"Short | S1 | Other | Other | 1 | 1 | g | Box | N/A",
		"Beans | B2 | Roasted Beans | On Display | 5 | 1 | kg | Bag | N/A | ₱900.00",
		"Cups | B1 | Other | Other | 5 | 1 | g | Box | N/A | ₱1.00",
		"Free | F1 | Other | Other | 5 | 1 | g | Box | N/A | ₱0.00",
		"Filters | F2 | Accessories | Other | 40 | 10 | g | Box | 2027-01-01 | ₱3.25",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c := inventory.NewCatalog()
	require.NoError(t, NewInventoryFile(path, nil).Load(context.Background(), c))

	var names []string
	for _, item := range c.List() {
		names = append(names, item.Name)
	}
	require.Equal(t, []string{"Beans", "Filters"}, names)
}

func TestSupplierFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "suppliers.txt")
	file := NewSupplierFile(path, nil)

	d := suppliers.NewDirectory()
	require.NoError(t, d.Add(suppliers.Supplier{Name: "Bean Co", ContactInfo: "0917", Products: []string{"Arabica"}}))
	require.NoError(t, d.Add(suppliers.Supplier{Name: "Cup World"}))
	require.NoError(t, file.Save(ctx, d))

	loaded := suppliers.NewDirectory()
	require.NoError(t, file.Load(ctx, loaded))
	require.Equal(t, d.List(), loaded.List())
}

func TestSalesFileAppendsWithoutRewriting(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "SalesReport.txt")
	require.NoError(t, os.WriteFile(path, []byte("Sale Date: garbage from an older run\n"), 0o644))

	file := NewSalesFile(path, nil)
	rec := sales.Record{
		ItemName:     "Espresso Beans",
		QuantitySold: 3,
		TotalPrice:   decimal.NewFromInt(750),
		BatchNumber:  "B1",
		SoldAt:       time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local),
	}
	require.NoError(t, file.Append(ctx, []sales.Record{rec}))
	require.NoError(t, file.Append(ctx, []sales.Record{rec}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "Sale Date: garbage from an older run\n"))

	ledger := sales.NewLedger(file, nil)
	require.NoError(t, ledger.LoadAll(ctx))
	require.Equal(t, 2, ledger.Len())
	require.True(t, decimal.NewFromInt(1500).Equal(ledger.Total()))
}

func TestSalesFileMissing(t *testing.T) {
	records, err := NewSalesFile(filepath.Join(t.TempDir(), "none.txt"), nil).Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, records)
}

package inventory

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/brewstock/brewstock/internal/shared"
)

func espresso() Item {
	return Item{
		Name:        "Espresso Beans",
		BatchNumber: "B1",
		Category:    CategoryRoastedBeans,
		Location:    LocationShopStorage,
		Quantity:    10,
		Weight:      "250",
		WeightUnit:  UnitGram,
		Packaging:   "Bag",
		Price:       decimal.RequireFromString("250"),
	}
}

func TestAddRejectsDuplicates(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Add(espresso()))

	dupName := espresso()
	dupName.BatchNumber = "B2"
	require.ErrorIs(t, c.Add(dupName), ErrDuplicateName)

	dupBatch := espresso()
	dupBatch.Name = "House Blend"
	require.ErrorIs(t, c.Add(dupBatch), ErrDuplicateBatch)

	require.Equal(t, 1, c.Len())
}

func TestAddValidatesFields(t *testing.T) {
	cases := map[string]func(*Item){
		"empty name":        func(i *Item) { i.Name = "" },
		"separator in name": func(i *Item) { i.Name = "Beans | Dark" },
		"negative quantity": func(i *Item) { i.Quantity = -1 },
		"zero price":        func(i *Item) { i.Price = decimal.Zero },
		"sub-centavo price": func(i *Item) { i.Price = decimal.RequireFromString("0.004") },
		"three decimals":    func(i *Item) { i.Price = decimal.RequireFromString("250.125") },
		"label in name":     func(i *Item) { i.Name = "Mug, Quantity Sold: 99" },
		"label in batch":    func(i *Item) { i.BatchNumber = "B1, Batch Number: B2" },
		"bad weight":        func(i *Item) { i.Weight = "heavy" },
		"unknown category":  func(i *Item) { i.Category = "Pastries" },
		"unknown unit":      func(i *Item) { i.WeightUnit = "lb" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := NewCatalog()
			item := espresso()
			mutate(&item)
			err := c.Add(item)
			require.ErrorIs(t, err, shared.ErrValidation)
			require.Zero(t, c.Len())
		})
	}
}

func TestUpdateFields(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Add(espresso()))

	require.NoError(t, c.Update("Espresso Beans", FieldQuantity, "12"))
	require.NoError(t, c.Update("Espresso Beans", FieldPrice, "₱300.50"))
	require.NoError(t, c.Update("Espresso Beans", FieldCategory, "accessories"))
	require.NoError(t, c.Update("Espresso Beans", FieldExpirationDate, "2030-01-31"))

	item, err := c.Get("Espresso Beans")
	require.NoError(t, err)
	require.Equal(t, 12, item.Quantity)
	require.True(t, decimal.RequireFromString("300.50").Equal(item.Price))
	require.Equal(t, CategoryAccessories, item.Category)
	require.NotNil(t, item.ExpirationDate)
	require.Equal(t, "2030-01-31", item.ExpirationDate.Format(DateLayout))

	require.NoError(t, c.Update("Espresso Beans", FieldExpirationDate, ""))
	item, err = c.Get("Espresso Beans")
	require.NoError(t, err)
	require.Nil(t, item.ExpirationDate)
}

func TestUpdateRejectsInvalidValues(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Add(espresso()))

	require.ErrorIs(t, c.Update("Missing", FieldQuantity, "1"), ErrNotFound)
	require.ErrorIs(t, c.Update("Espresso Beans", FieldQuantity, "-3"), shared.ErrValidation)
	require.ErrorIs(t, c.Update("Espresso Beans", FieldQuantity, "many"), shared.ErrValidation)
	require.ErrorIs(t, c.Update("Espresso Beans", FieldPrice, "0"), shared.ErrValidation)
	require.ErrorIs(t, c.Update("Espresso Beans", FieldLocation, "Basement"), ErrUnknownChoice)
	require.ErrorIs(t, c.Update("Espresso Beans", FieldExpirationDate, "31/01/2030"), shared.ErrValidation)

	item, err := c.Get("Espresso Beans")
	require.NoError(t, err)
	require.Equal(t, espresso(), item)
}

func TestPriceKeepsAtMostTwoDecimals(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Add(espresso()))

	err := c.Update("Espresso Beans", FieldPrice, "250.125")
	require.ErrorIs(t, err, shared.ErrValidation)
	var ve *shared.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "Price", ve.Field)

	require.NoError(t, c.Update("Espresso Beans", FieldPrice, "250.10"))
	item, err := c.Get("Espresso Beans")
	require.NoError(t, err)
	require.Equal(t, "250.1", item.Price.String())
}

func TestUpdateSameValueIsAccepted(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Add(espresso()))
	require.NoError(t, c.Update("Espresso Beans", FieldQuantity, "10"))
}

func TestRemoveFreesBatchNumber(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Add(espresso()))
	require.NoError(t, c.Remove("Espresso Beans"))
	require.ErrorIs(t, c.Remove("Espresso Beans"), ErrNotFound)

	reuse := espresso()
	reuse.Name = "House Blend"
	require.NoError(t, c.Add(reuse))
}

func TestListKeepsInsertionOrder(t *testing.T) {
	c := NewCatalog()
	names := []string{"Zeta Cups", "Alpha Filters", "Mid Grinder"}
	for i, n := range names {
		item := espresso()
		item.Name = n
		item.BatchNumber = string(rune('A' + i))
		require.NoError(t, c.Add(item))
	}
	var got []string
	for _, item := range c.List() {
		got = append(got, item.Name)
	}
	require.Equal(t, names, got)
}

func TestGetReturnsCopy(t *testing.T) {
	c := NewCatalog()
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.Local)
	item := espresso()
	item.ExpirationDate = &exp
	require.NoError(t, c.Add(item))

	got, err := c.Get("Espresso Beans")
	require.NoError(t, err)
	got.Quantity = 0
	*got.ExpirationDate = exp.AddDate(1, 0, 0)

	again, err := c.Get("Espresso Beans")
	require.NoError(t, err)
	require.Equal(t, 10, again.Quantity)
	require.True(t, again.ExpirationDate.Equal(exp))
}

func TestDecrement(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Add(espresso()))

	require.NoError(t, c.Decrement("Espresso Beans", 3))
	require.ErrorIs(t, c.Decrement("Espresso Beans", 0), ErrInvalidQuantity)
	require.ErrorIs(t, c.Decrement("Espresso Beans", 8), ErrInsufficientStock)
	require.ErrorIs(t, c.Decrement("Missing", 1), ErrNotFound)

	require.NoError(t, c.Decrement("Espresso Beans", 7))
	item, err := c.Get("Espresso Beans")
	require.NoError(t, err)
	require.Zero(t, item.Quantity)
	require.Equal(t, 1, c.Len(), "sold-out items stay listed")
	require.Empty(t, c.Available())
}

func TestDecrementAllIsAllOrNothing(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Add(espresso()))
	cups := espresso()
	cups.Name = "Paper Cups"
	cups.BatchNumber = "C1"
	cups.Quantity = 2
	require.NoError(t, c.Add(cups))

	err := c.DecrementAll([]Movement{
		{Name: "Espresso Beans", Amount: 4},
		{Name: "Paper Cups", Amount: 1},
		{Name: "Paper Cups", Amount: 2},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	beans, _ := c.Get("Espresso Beans")
	paper, _ := c.Get("Paper Cups")
	require.Equal(t, 10, beans.Quantity)
	require.Equal(t, 2, paper.Quantity)

	require.NoError(t, c.DecrementAll([]Movement{
		{Name: "Espresso Beans", Amount: 4},
		{Name: "Paper Cups", Amount: 2},
	}))
	beans, _ = c.Get("Espresso Beans")
	require.Equal(t, 6, beans.Quantity)
}

func TestStatus(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.Local)
	item := espresso()
	require.Equal(t, StatusNoDate, item.Status(now))

	past := now.AddDate(0, 0, -1)
	item.ExpirationDate = &past
	require.Equal(t, StatusExpired, item.Status(now))
	require.True(t, item.Available(), "expired stock remains sellable")

	future := now.AddDate(0, 1, 0)
	item.ExpirationDate = &future
	require.Equal(t, StatusValid, item.Status(now))
}

func TestParseField(t *testing.T) {
	f, err := ParseField("Weight Unit")
	require.NoError(t, err)
	require.Equal(t, FieldWeightUnit, f)

	f, err = ParseField("expiration-date")
	require.NoError(t, err)
	require.Equal(t, FieldExpirationDate, f)

	_, err = ParseField("name")
	require.ErrorIs(t, err, ErrUnknownChoice)
}

func TestSnapshotRestore(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Add(espresso()))
	snap := c.Snapshot()

	require.NoError(t, c.Decrement("Espresso Beans", 4))
	extra := espresso()
	extra.Name = "House Blend"
	extra.BatchNumber = "B9"
	require.NoError(t, c.Add(extra))

	c.Restore(snap)
	require.Equal(t, 1, c.Len())
	item, err := c.Get("Espresso Beans")
	require.NoError(t, err)
	require.Equal(t, 10, item.Quantity)

	require.NoError(t, c.Add(extra), "batch index is rebuilt")
}

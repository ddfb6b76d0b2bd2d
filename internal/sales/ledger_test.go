package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type memoryBackend struct {
	stored    []Record
	appends   int
	failWrite error
	failLoad  error
}

func (b *memoryBackend) Load(context.Context) ([]Record, error) {
	if b.failLoad != nil {
		return nil, b.failLoad
	}
	return append([]Record(nil), b.stored...), nil
}

func (b *memoryBackend) Append(_ context.Context, records []Record) error {
	if b.failWrite != nil {
		return b.failWrite
	}
	b.appends++
	b.stored = append(b.stored, records...)
	return nil
}

func record(name string, qty int, total string) Record {
	return Record{
		ItemName:     name,
		QuantitySold: qty,
		TotalPrice:   decimal.RequireFromString(total),
		BatchNumber:  "B-" + name,
		SoldAt:       time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local),
	}
}

func TestLedgerLoadAllDiscardsInvalid(t *testing.T) {
	backend := &memoryBackend{stored: []Record{
		record("Espresso Beans", 3, "750"),
		{},
		record("Paper Cups", 0, "10"),
		record("Filters", 2, "0"),
		record("Grinder", 1, "4500.50"),
	}}
	l := NewLedger(backend, nil)
	require.NoError(t, l.LoadAll(context.Background()))

	require.Equal(t, 2, l.Len())
	require.True(t, decimal.RequireFromString("5250.50").Equal(l.Total()))
}

func TestLedgerLoadAllBackendError(t *testing.T) {
	l := NewLedger(&memoryBackend{failLoad: errors.New("permission denied")}, nil)
	err := l.LoadAll(context.Background())
	require.ErrorIs(t, err, ErrPersist)
	require.Zero(t, l.Len())
}

func TestLedgerAppend(t *testing.T) {
	backend := &memoryBackend{}
	l := NewLedger(backend, nil)
	ctx := context.Background()

	require.NoError(t, l.Append(ctx, record("A", 1, "10"), record("B", 2, "20")))
	require.Equal(t, 1, backend.appends, "one backend write per append call")
	require.Len(t, backend.stored, 2)

	err := l.Append(ctx, record("C", 1, "5"), record("D", 0, "5"))
	require.ErrorIs(t, err, ErrInvalidRecord)
	require.Equal(t, 2, l.Len(), "refused batch is not partially applied")

	records := l.Records()
	records[0].ItemName = "mutated"
	require.Equal(t, "A", l.Records()[0].ItemName)
	require.True(t, decimal.NewFromInt(30).Equal(l.Total()))
}

func TestLedgerAppendKeepsRecordsWhenBackendFails(t *testing.T) {
	backend := &memoryBackend{failWrite: errors.New("disk full")}
	l := NewLedger(backend, nil)

	err := l.Append(context.Background(), record("A", 1, "10"))
	require.ErrorIs(t, err, ErrPersist)
	require.Equal(t, 1, l.Len())
}

func TestLedgerInMemory(t *testing.T) {
	l := NewLedger(nil, nil)
	require.NoError(t, l.LoadAll(context.Background()))
	require.NoError(t, l.Append(context.Background(), record("A", 1, "10")))
	require.True(t, decimal.NewFromInt(10).Equal(l.Total()))
}

func TestRecordValid(t *testing.T) {
	require.True(t, record("A", 1, "0.01").Valid())
	require.True(t, record("", 1, "1").Valid(), "replay filters on quantity and total only")
	require.False(t, record("A", -1, "1").Valid())
	require.False(t, record("A", 1, "-1").Valid())
	require.False(t, record("A", 1, "0").Valid())
}

func TestLedgerAppendIsStricterThanReplay(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(&memoryBackend{stored: []Record{record("", 1, "10")}}, nil)
	require.NoError(t, l.LoadAll(ctx))
	require.Equal(t, 1, l.Len(), "a stored record with an empty name still counts")

	for name, r := range map[string]Record{
		"empty name":     record("", 1, "10"),
		"multi-line":     record("A\nB", 1, "10"),
		"sub-centavo":    record("A", 1, "10.005"),
		"zero total":     record("A", 1, "0"),
		"negative count": record("A", -2, "10"),
	} {
		require.ErrorIs(t, l.Append(ctx, r), ErrInvalidRecord, name)
	}
	require.Equal(t, 1, l.Len())
}

package journal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerAddAssignsIDs(t *testing.T) {
	t.Parallel()

	l := NewLedger()
	a, err := l.Add(openTrade("tcs", day(2024, 1, 1)))
	require.NoError(t, err)
	b, err := l.Add(openTrade("infy", day(2024, 1, 2)))
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "TCS", a.Stock)
	assert.Equal(t, 2, l.Len())

	got, err := l.Get(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "INFY", got.Stock)
}

func TestLedgerAddRejectsInvalid(t *testing.T) {
	t.Parallel()

	l := NewLedger()
	bad := openTrade("TCS", day(2024, 1, 1))
	bad.Quantity = 0

	_, err := l.Add(bad)
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, 0, l.Len())
}

func TestLedgerUpdateKeepsIDAndPosition(t *testing.T) {
	t.Parallel()

	l := NewLedger()
	first, _ := l.Add(openTrade("TCS", day(2024, 1, 1)))
	second, _ := l.Add(openTrade("INFY", day(2024, 1, 2)))
	_, _ = l.Add(openTrade("WIPRO", day(2024, 1, 3)))

	edit := second
	edit.ID = "ignored"
	edit.Status = StatusClosed
	edit.ExitPrice = dec("130")

	updated, err := l.Update(second.ID, edit)
	require.NoError(t, err)
	assert.Equal(t, second.ID, updated.ID)

	trades := l.Trades()
	require.Len(t, trades, 3)
	assert.Equal(t, first.ID, trades[0].ID)
	assert.Equal(t, second.ID, trades[1].ID)
	assert.Equal(t, StatusClosed, trades[1].Status)
	assert.True(t, trades[1].ExitPrice.Equal(dec("130")))
}

func TestLedgerUpdateValidationLeavesRecord(t *testing.T) {
	t.Parallel()

	l := NewLedger()
	rec, _ := l.Add(openTrade("TCS", day(2024, 1, 1)))

	bad := rec
	bad.Quantity = -3
	_, err := l.Update(rec.ID, bad)
	require.Error(t, err)

	got, _ := l.Get(rec.ID)
	assert.Equal(t, int64(10), got.Quantity)
}

func TestLedgerNotFound(t *testing.T) {
	t.Parallel()

	l := NewLedger()
	_, err := l.Get("missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = l.Update("missing", openTrade("TCS", day(2024, 1, 1)))
	assert.True(t, errors.Is(err, ErrNotFound))

	assert.True(t, errors.Is(l.Delete("missing"), ErrNotFound))
}

func TestLedgerDelete(t *testing.T) {
	t.Parallel()

	l := NewLedger()
	a, _ := l.Add(openTrade("TCS", day(2024, 1, 1)))
	b, _ := l.Add(openTrade("INFY", day(2024, 1, 2)))

	require.NoError(t, l.Delete(a.ID))
	trades := l.Trades()
	require.Len(t, trades, 1)
	assert.Equal(t, b.ID, trades[0].ID)
}

func TestLedgerTradesIsCopy(t *testing.T) {
	t.Parallel()

	l := NewLedger()
	_, _ = l.Add(openTrade("TCS", day(2024, 1, 1)))

	trades := l.Trades()
	trades[0].Stock = "CHANGED"
	assert.Equal(t, "TCS", l.Trades()[0].Stock)

	c := l.Clone()
	_, _ = c.Add(openTrade("INFY", day(2024, 1, 2)))
	assert.Equal(t, 1, l.Len())
}

func TestAssignIDsFillsMissingAndDuplicates(t *testing.T) {
	t.Parallel()

	a := openTrade("TCS", day(2024, 1, 1))
	a.ID = "dup"
	b := openTrade("INFY", day(2024, 1, 2))
	b.ID = "dup"
	c := openTrade("WIPRO", day(2024, 1, 3))

	l := NewLedger(a, b, c)
	assert.Equal(t, 2, l.assignIDs())

	trades := l.Trades()
	assert.Equal(t, "dup", trades[0].ID)
	assert.NotEqual(t, "dup", trades[1].ID)
	assert.NotEmpty(t, trades[2].ID)
}

package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyHeader = "Date,Stock,Entry Price,Target 1,Target 2,Target 3,Stop Loss,Quantity,Status,Exit Price,Notes\n"

func newTestCSV(t *testing.T, opts ...StoreOption) (*CSVStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data", "trades.csv")
	return NewCSVStore(path, opts...), path
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func readHeader(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	header, err := csv.NewReader(strings.NewReader(string(data))).Read()
	require.NoError(t, err)
	return header
}

func TestCSVLoadMissingCreatesEmpty(t *testing.T) {
	t.Parallel()

	s, path := newTestCSV(t)
	l, rep, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, 0, rep.Dropped)

	assert.Equal(t, Columns, readHeader(t, path))
	assert.Equal(t, []string{
		"Date", "Stock", "Entry Price", "Target 1", "Target 2", "Target 3",
		"Stop Loss", "Quantity", "Status", "Exit Price", "Notes",
	}, Columns[:11])
}

func TestCSVRoundTrip(t *testing.T) {
	t.Parallel()

	s, path := newTestCSV(t)

	closed := openTrade("INFY", day(2024, 2, 1))
	closed.Status = StatusClosed
	closed.ExitPrice = dec("1510.25")
	closed.Target2 = dec("0")
	closed.Notes = "took profit, early\nsecond line \"quoted\""

	bare := TradeRecord{
		Date:       day(2024, 3, 5),
		Stock:      "RELIANCE",
		EntryPrice: dec("2450.5"),
		Quantity:   3,
		Status:     StatusOpen,
	}

	l := NewLedger()
	for _, rec := range []TradeRecord{openTrade("TCS", day(2024, 1, 1)), closed, bare} {
		_, err := l.Add(rec)
		require.NoError(t, err)
	}

	require.NoError(t, s.Save(l))
	loaded, rep, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Dropped)
	assert.Equal(t, 0, rep.Assigned)

	want := l.Trades()
	got := loaded.Trades()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "row %d: want %+v got %+v", i, want[i], got[i])
	}

	first, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(loaded))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestCSVSaveFormat(t *testing.T) {
	t.Parallel()

	s, path := newTestCSV(t)
	rec := openTrade("TCS", day(2024, 1, 9))
	rec.ID = "01HQ3K4ZJ8X5V9W2Y7T6R5P4N3"
	require.NoError(t, s.Save(NewLedger(rec)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	r := csv.NewReader(strings.NewReader(string(data)))
	_, err = r.Read()
	require.NoError(t, err)
	row, err := r.Read()
	require.NoError(t, err)

	want := []string{
		"2024-01-09", "TCS", "100", "110", "", "", "95", "10", "Open", "", "breakout",
		"01HQ3K4ZJ8X5V9W2Y7T6R5P4N3",
	}
	assert.Equal(t, want, row)
}

func TestCSVLoadDropsBadDate(t *testing.T) {
	t.Parallel()

	s, path := newTestCSV(t)
	writeFile(t, path, legacyHeader+
		"2024-01-01,TCS,100,110,,,95,10,Open,,\n"+
		"not-a-date,INFY,1500,,,,,5,Open,,\n")

	l, rep, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 1, rep.Dropped)
	assert.Equal(t, 2, rep.Rows)
	require.Len(t, rep.Issues, 1)
	assert.Equal(t, 3, rep.Issues[0].Line)
	assert.Equal(t, "Date", rep.Issues[0].Column)
	assert.Equal(t, "TCS", l.Trades()[0].Stock)
}

func TestCSVLoadLegacyFile(t *testing.T) {
	t.Parallel()

	s, path := newTestCSV(t)
	writeFile(t, path, legacyHeader+
		"2024-01-01 00:00:00,tcs,100.0,110.0,0.0,,95.0,10.0,Open,0.0,first\n"+
		"2024-01-15,INFY,abc,,,,,5,Open,,\n"+
		"2024-02-01,WIPRO,400,,,,,2.5,Open,,\n"+
		"2024-02-10,HDFC,1600,nan,NaN,,,4,Closed,1650,\n"+
		"2024-02-11,SBIN,600,,,,,1,Watching,,\n")

	l, rep, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 5, rep.Rows)
	assert.Equal(t, 2, rep.Dropped)
	assert.Equal(t, 3, rep.Assigned)

	columns := []string{rep.Issues[0].Column, rep.Issues[1].Column}
	assert.Equal(t, []string{"Entry Price", "Quantity"}, columns)

	trades := l.Trades()
	require.Len(t, trades, 3)
	assert.Equal(t, "TCS", trades[0].Stock)
	assert.Equal(t, int64(10), trades[0].Quantity)
	assert.True(t, trades[0].Target2.IsZero())
	assert.True(t, trades[0].ExitPrice.IsZero())
	assert.True(t, trades[1].Target1.IsZero())
	assert.Equal(t, Status("Watching"), trades[2].Status)
	for _, tr := range trades {
		assert.NotEmpty(t, tr.ID)
	}

	require.NoError(t, s.Save(l))
	assert.Equal(t, Columns, readHeader(t, path))
}

func TestCSVLoadReorderedColumns(t *testing.T) {
	t.Parallel()

	s, path := newTestCSV(t)
	writeFile(t, path, "ID,Status,Quantity,Entry Price,Stock,Date\n"+
		"abc,Open,7,250,ITC,2024-04-01\n")

	l, rep, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Dropped)
	trades := l.Trades()
	require.Len(t, trades, 1)
	assert.Equal(t, "abc", trades[0].ID)
	assert.Equal(t, "ITC", trades[0].Stock)
	assert.Equal(t, int64(7), trades[0].Quantity)
}

func TestCSVLoadMissingColumn(t *testing.T) {
	t.Parallel()

	s, path := newTestCSV(t)
	writeFile(t, path, "Date,Stock\n2024-01-01,TCS\n")

	_, _, err := s.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Entry Price")
}

func TestCSVLoadEmptyFile(t *testing.T) {
	t.Parallel()

	s, path := newTestCSV(t)
	writeFile(t, path, "")

	l, _, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())
}

func TestCSVSaveLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	s, path := newTestCSV(t)
	l := NewLedger()
	_, _ = l.Add(openTrade("TCS", day(2024, 1, 1)))
	require.NoError(t, s.Save(l))
	require.NoError(t, s.Save(l))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".tmp-"), e.Name())
	}
}

func TestCSVSaveFailureKeepsDirectoryClean(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "trades.csv")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "occupied"), 0o755))

	s := NewCSVStore(target)
	err := s.Save(NewLedger(openTrade("TCS", day(2024, 1, 1))))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "trades.csv", entries[0].Name())
	assert.True(t, entries[0].IsDir())
}

func TestCSVBackupsRotate(t *testing.T) {
	t.Parallel()

	s, path := newTestCSV(t, WithBackups(2))
	l := NewLedger()

	for _, stock := range []string{"TCS", "INFY", "WIPRO"} {
		_, err := l.Add(openTrade(stock, day(2024, 1, 1)))
		require.NoError(t, err)
		require.NoError(t, s.Save(l))
	}

	_, err := os.Stat(versionPath(path, 3))
	assert.True(t, os.IsNotExist(err))

	v1, _, err := NewCSVStore(versionPath(path, 1)).Load()
	require.NoError(t, err)
	assert.Equal(t, 2, v1.Len())

	v2, _, err := NewCSVStore(versionPath(path, 2)).Load()
	require.NoError(t, err)
	assert.Equal(t, 1, v2.Len())

	cur, _, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cur.Len())
}

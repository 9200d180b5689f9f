package journal

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func openTrade(stock string, date time.Time) TradeRecord {
	return TradeRecord{
		Date:       date,
		Stock:      stock,
		EntryPrice: dec("100"),
		Target1:    dec("110"),
		StopLoss:   dec("95"),
		Quantity:   10,
		Status:     StatusOpen,
		Notes:      "breakout",
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2024-01-15", want: day(2024, 1, 15)},
		{in: " 2024-01-15 ", want: day(2024, 1, 15)},
		{in: "2024-01-15 13:45:00", want: day(2024, 1, 15)},
		{in: "2024-01-15T13:45:00Z", want: day(2024, 1, 15)},
		{in: "15/01/2024", wantErr: true},
		{in: "", wantErr: true},
		{in: "2024-13-01", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "%s: got %s", tt.in, got)
	}
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	s, err := ParseStatus("open")
	require.NoError(t, err)
	assert.Equal(t, StatusOpen, s)

	s, err = ParseStatus(" CLOSED ")
	require.NoError(t, err)
	assert.Equal(t, StatusClosed, s)

	_, err = ParseStatus("pending")
	assert.Error(t, err)
}

func TestNormalized(t *testing.T) {
	t.Parallel()

	rec := TradeRecord{
		Stock: " tcs ",
		Date:  time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC),
	}
	n := rec.Normalized()
	assert.Equal(t, "TCS", n.Stock)
	assert.True(t, n.Date.Equal(day(2024, 3, 1)))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	closed := openTrade("INFY", day(2024, 2, 1))
	closed.Status = StatusClosed
	closed.ExitPrice = dec("120")

	tests := []struct {
		name    string
		mutate  func(*TradeRecord)
		wantErr bool
		field   string
	}{
		{name: "valid open", mutate: func(*TradeRecord) {}},
		{name: "valid closed", mutate: func(r *TradeRecord) { *r = closed }},
		{name: "zero quantity", mutate: func(r *TradeRecord) { r.Quantity = 0 }, wantErr: true, field: "quantity"},
		{name: "missing stock", mutate: func(r *TradeRecord) { r.Stock = "  " }, wantErr: true, field: "stock"},
		{name: "missing date", mutate: func(r *TradeRecord) { r.Date = time.Time{} }, wantErr: true, field: "date"},
		{name: "zero entry", mutate: func(r *TradeRecord) { r.EntryPrice = decimal.Zero }, wantErr: true, field: "entry_price"},
		{name: "negative target", mutate: func(r *TradeRecord) { r.Target2 = dec("-1") }, wantErr: true, field: "target2"},
		{name: "unknown status", mutate: func(r *TradeRecord) { r.Status = "Pending" }, wantErr: true, field: "status"},
		{
			name: "closed without exit",
			mutate: func(r *TradeRecord) {
				r.Status = StatusClosed
				r.ExitPrice = decimal.Zero
			},
			wantErr: true,
			field:   "exit_price",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := openTrade("TCS", day(2024, 1, 1))
			tt.mutate(&rec)

			err := Validate(rec)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			require.NotEmpty(t, ve.Fields)
			assert.Equal(t, tt.field, ve.Fields[0].Field)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestTradeRecordEqualIgnoresDecimalScale(t *testing.T) {
	t.Parallel()

	a := openTrade("TCS", day(2024, 1, 1))
	b := a
	b.EntryPrice = dec("100.00")
	assert.True(t, a.Equal(b))

	b.Quantity = 11
	assert.False(t, a.Equal(b))
}

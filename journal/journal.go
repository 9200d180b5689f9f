// journal/journal.go
package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the position state of a trade.
type Status string

const (
	StatusOpen   Status = "Open"
	StatusClosed Status = "Closed"
)

// ParseStatus accepts any casing of Open/Closed.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open":
		return StatusOpen, nil
	case "closed":
		return StatusClosed, nil
	}
	return "", fmt.Errorf("unknown status %q (want Open or Closed)", s)
}

// DateLayout is the on-disk date format.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDate reads a calendar date. Timestamps are accepted and cut down to
// the day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TradeRecord is one row of the ledger. Zero decimals on the optional
// levels mean "not set".
type TradeRecord struct {
	ID         string
	Date       time.Time
	Stock      string
	EntryPrice decimal.Decimal
	Target1    decimal.Decimal
	Target2    decimal.Decimal
	Target3    decimal.Decimal
	StopLoss   decimal.Decimal
	Quantity   int64
	Status     Status
	ExitPrice  decimal.Decimal
	Notes      string
}

// IsOpen reports whether the position is still open.
func (t TradeRecord) IsOpen() bool { return t.Status == StatusOpen }

// IsClosed reports whether the position has been exited.
func (t TradeRecord) IsClosed() bool { return t.Status == StatusClosed }

// Normalized returns a copy with the ticker upper-cased and the date cut
// to the calendar day.
func (t TradeRecord) Normalized() TradeRecord {
	t.Stock = NormalizeSymbol(t.Stock)
	t.Date = Day(t.Date)
	t.Notes = strings.TrimRight(t.Notes, "\r\n")
	return t
}

// Equal compares field by field, treating decimals by value.
func (t TradeRecord) Equal(o TradeRecord) bool {
	return t.ID == o.ID &&
		t.Date.Equal(o.Date) &&
		t.Stock == o.Stock &&
		t.EntryPrice.Equal(o.EntryPrice) &&
		t.Target1.Equal(o.Target1) &&
		t.Target2.Equal(o.Target2) &&
		t.Target3.Equal(o.Target3) &&
		t.StopLoss.Equal(o.StopLoss) &&
		t.Quantity == o.Quantity &&
		t.Status == o.Status &&
		t.ExitPrice.Equal(o.ExitPrice) &&
		t.Notes == o.Notes
}

// NormalizeSymbol trims and upper-cases a ticker.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func (t TradeRecord) String() string {
	return fmt.Sprintf("%s %s %s x%d @ %s", t.Date.Format(DateLayout), t.Stock, t.Status, t.Quantity, t.EntryPrice)
}

// Qty returns the quantity as a decimal for price arithmetic.
func (t TradeRecord) Qty() decimal.Decimal {
	return decimal.NewFromInt(t.Quantity)
}

package journal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Columns is the backing table header, in order. The first eleven are the
// legacy journal layout; ID was appended so older files still line up.
var Columns = []string{
	"Date", "Stock", "Entry Price", "Target 1", "Target 2", "Target 3",
	"Stop Loss", "Quantity", "Status", "Exit Price", "Notes", "ID",
}

// requiredColumns must be present in a header for the file to load at all.
var requiredColumns = []string{"Date", "Stock", "Entry Price", "Quantity", "Status"}

// row is the text form of a TradeRecord shared by every backend.
type row struct {
	Date     string
	Stock    string
	Entry    string
	Target1  string
	Target2  string
	Target3  string
	StopLoss string
	Quantity string
	Status   string
	Exit     string
	Notes    string
	ID       string
}

func (r row) fields() []string {
	return []string{
		r.Date, r.Stock, r.Entry, r.Target1, r.Target2, r.Target3,
		r.StopLoss, r.Quantity, r.Status, r.Exit, r.Notes, r.ID,
	}
}

// RowIssue describes a row dropped on load.
type RowIssue struct {
	Line   int
	Column string
	Reason string
}

func (i RowIssue) String() string {
	return fmt.Sprintf("line %d: %s: %s", i.Line, i.Column, i.Reason)
}

// LoadReport summarises a load. Dropped rows are not fatal.
type LoadReport struct {
	Rows     int
	Dropped  int
	Assigned int
	Issues   []RowIssue
}

func (r *LoadReport) drop(line int, column, reason string) {
	r.Dropped++
	r.Issues = append(r.Issues, RowIssue{Line: line, Column: column, Reason: reason})
}

type columnError struct {
	column string
	err    error
}

func (e *columnError) Error() string { return e.column + ": " + e.err.Error() }

func parseRow(r row) (TradeRecord, error) {
	var (
		t   TradeRecord
		err error
	)

	if t.Date, err = ParseDate(r.Date); err != nil {
		return t, &columnError{"Date", err}
	}
	t.Stock = NormalizeSymbol(r.Stock)
	if t.EntryPrice, err = parseDecimal(r.Entry, true); err != nil {
		return t, &columnError{"Entry Price", err}
	}
	if t.Target1, err = parseDecimal(r.Target1, false); err != nil {
		return t, &columnError{"Target 1", err}
	}
	if t.Target2, err = parseDecimal(r.Target2, false); err != nil {
		return t, &columnError{"Target 2", err}
	}
	if t.Target3, err = parseDecimal(r.Target3, false); err != nil {
		return t, &columnError{"Target 3", err}
	}
	if t.StopLoss, err = parseDecimal(r.StopLoss, false); err != nil {
		return t, &columnError{"Stop Loss", err}
	}
	if t.Quantity, err = parseQuantity(r.Quantity); err != nil {
		return t, &columnError{"Quantity", err}
	}
	t.Status = Status(strings.TrimSpace(r.Status))
	if t.ExitPrice, err = parseDecimal(r.Exit, false); err != nil {
		return t, &columnError{"Exit Price", err}
	}
	t.Notes = r.Notes
	t.ID = strings.TrimSpace(r.ID)
	return t, nil
}

func formatRow(t TradeRecord) row {
	return row{
		Date:     t.Date.Format(DateLayout),
		Stock:    t.Stock,
		Entry:    t.EntryPrice.String(),
		Target1:  optional(t.Target1),
		Target2:  optional(t.Target2),
		Target3:  optional(t.Target3),
		StopLoss: optional(t.StopLoss),
		Quantity: strconv.FormatInt(t.Quantity, 10),
		Status:   string(t.Status),
		Exit:     optional(t.ExitPrice),
		Notes:    t.Notes,
		ID:       t.ID,
	}
}

// optional writes unset levels as empty cells.
func optional(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func blank(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "nan")
}

func parseDecimal(s string, required bool) (decimal.Decimal, error) {
	if blank(s) {
		if required {
			return decimal.Zero, fmt.Errorf("value is required")
		}
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a number: %q", s)
	}
	return d, nil
}

// parseQuantity accepts integral decimals such as "5.0", which spreadsheet
// tools like to write.
func parseQuantity(s string) (int64, error) {
	d, err := parseDecimal(s, true)
	if err != nil {
		return 0, err
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("not a whole number: %q", s)
	}
	q := d.IntPart()
	if q < 1 {
		return 0, fmt.Errorf("must be at least 1, got %d", q)
	}
	return q, nil
}

package journal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldError names a single rejected field.
type FieldError struct {
	Field string
	Msg   string
}

// ValidationError is returned by add and edit before the ledger is touched.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", f.Field, f.Msg))
	}
	return "invalid trade: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Msg: msg})
}

// Validate checks a record about to be added or edited.
func Validate(t TradeRecord) error {
	v := &ValidationError{}

	if t.Date.IsZero() {
		v.add("date", "is required")
	}
	if NormalizeSymbol(t.Stock) == "" {
		v.add("stock", "is required")
	}
	if !t.EntryPrice.IsPositive() {
		v.add("entry_price", "must be positive")
	}
	if t.Quantity < 1 {
		v.add("quantity", "must be at least 1")
	}
	levels := []struct {
		name string
		val  decimal.Decimal
	}{
		{"target1", t.Target1},
		{"target2", t.Target2},
		{"target3", t.Target3},
		{"stop_loss", t.StopLoss},
	}
	for _, lvl := range levels {
		if lvl.val.IsNegative() {
			v.add(lvl.name, "must not be negative")
		}
	}

	switch t.Status {
	case StatusOpen:
	case StatusClosed:
		if !t.ExitPrice.IsPositive() {
			v.add("exit_price", "must be positive for a closed trade")
		}
	default:
		v.add("status", "must be Open or Closed")
	}

	if len(v.Fields) > 0 {
		return v
	}
	return nil
}

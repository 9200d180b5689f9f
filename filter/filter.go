// Package filter narrows a ledger to the rows a user asked to see.
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
)

// Status selects trades by position state.
type Status string

const (
	All    Status = "All"
	Open   Status = "Open"
	Closed Status = "Closed"
)

// ParseStatus accepts all/open/closed in any case. Empty means All.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return All, nil
	case "open":
		return Open, nil
	case "closed":
		return Closed, nil
	}
	return "", fmt.Errorf("unknown status filter %q (want All, Open or Closed)", s)
}

// Criteria is the user's filter. Zero dates leave that side of the range
// open; an empty Symbol matches any stock.
type Criteria struct {
	From   time.Time
	To     time.Time
	Symbol string
	Status Status
}

// Match reports whether t passes every criterion. Date bounds are inclusive
// and compared by calendar day.
func (c Criteria) Match(t journal.TradeRecord) bool {
	day := journal.Day(t.Date)
	if !c.From.IsZero() && day.Before(journal.Day(c.From)) {
		return false
	}
	if !c.To.IsZero() && day.After(journal.Day(c.To)) {
		return false
	}
	if c.Symbol != "" && !strings.Contains(strings.ToUpper(t.Stock), strings.ToUpper(strings.TrimSpace(c.Symbol))) {
		return false
	}
	switch c.Status {
	case Open:
		return t.Status == journal.StatusOpen
	case Closed:
		return t.Status == journal.StatusClosed
	}
	return true
}

// Apply returns the trades matching c in their original order. It never
// returns nil.
func Apply(trades []journal.TradeRecord, c Criteria) []journal.TradeRecord {
	out := make([]journal.TradeRecord, 0, len(trades))
	for _, t := range trades {
		if c.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Bounds returns the earliest and latest trade dates, used as the default
// range. ok is false for an empty ledger.
func Bounds(trades []journal.TradeRecord) (from, to time.Time, ok bool) {
	for i, t := range trades {
		day := journal.Day(t.Date)
		if i == 0 || day.Before(from) {
			from = day
		}
		if i == 0 || day.After(to) {
			to = day
		}
	}
	return from, to, len(trades) > 0
}

// Package pnl computes realized and unrealized profit and loss over a ledger.
package pnl

import (
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/journal"
)

// LookupFunc returns the current price of a symbol, or false when no price is
// available.
type LookupFunc func(symbol string) (decimal.Decimal, bool)

// Summary holds the ledger totals.
type Summary struct {
	Open   decimal.Decimal // unrealized, open positions with a price
	Closed decimal.Decimal // realized
	Total  decimal.Decimal

	// Partial is set when at least one open position had no price and
	// so contributed nothing to Open.
	Partial  bool
	Unpriced []string
}

// ComputeSummary totals PnL. Closed trades never consult lookup. Trades whose
// status is neither Open nor Closed count toward neither bucket.
func ComputeSummary(trades []journal.TradeRecord, lookup LookupFunc) Summary {
	s := Summary{Open: decimal.Zero, Closed: decimal.Zero}
	seen := map[string]bool{}

	for _, t := range trades {
		switch {
		case t.IsClosed():
			s.Closed = s.Closed.Add(Realized(t))
		case t.IsOpen():
			var (
				price decimal.Decimal
				ok    bool
			)
			if lookup != nil {
				price, ok = lookup(t.Stock)
			}
			if !ok {
				s.Partial = true
				if !seen[t.Stock] {
					seen[t.Stock] = true
					s.Unpriced = append(s.Unpriced, t.Stock)
				}
				continue
			}
			s.Open = s.Open.Add(Unrealized(t, price))
		}
	}

	s.Total = s.Open.Add(s.Closed)
	return s
}

// Realized is (exit - entry) * quantity.
func Realized(t journal.TradeRecord) decimal.Decimal {
	return t.ExitPrice.Sub(t.EntryPrice).Mul(t.Qty())
}

// Unrealized is (price - entry) * quantity.
func Unrealized(t journal.TradeRecord, price decimal.Decimal) decimal.Decimal {
	return price.Sub(t.EntryPrice).Mul(t.Qty())
}

// ChangePct is the percent move from entry to price, rounded to two places.
// A zero entry yields zero.
func ChangePct(entry, price decimal.Decimal) decimal.Decimal {
	if entry.IsZero() {
		return decimal.Zero
	}
	return price.Sub(entry).Div(entry).Mul(decimal.NewFromInt(100)).Round(2)
}

// Package dashboard turns a ledger and live prices into the rows, totals and
// alerts shown to the user.
package dashboard

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/alert"
	"github.com/rustyeddy/tradejournal/filter"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/pnl"
	"github.com/rustyeddy/tradejournal/risk"
)

const (
	PriceNA     = "Price N/A"
	ClosedLabel = "Closed"
)

// Row is one visible trade with its derived fields.
type Row struct {
	Trade     journal.TradeRecord
	Price     decimal.Decimal
	Priced    bool
	ChangePct decimal.Decimal
	Current   string
	Alerts    []alert.Level
	RR        decimal.Decimal
	PnL       decimal.Decimal // realized when closed, unrealized when open and priced
}

// BuildRows derives display rows. Only open trades consult lookup, and only
// open trades with a price are checked for alerts.
func BuildRows(trades []journal.TradeRecord, lookup pnl.LookupFunc, tolPct decimal.Decimal) []Row {
	rows := make([]Row, 0, len(trades))
	for _, t := range trades {
		r := Row{Trade: t, RR: risk.TradeRR(t)}

		switch {
		case t.IsOpen():
			if lookup != nil {
				r.Price, r.Priced = lookup(t.Stock)
			}
			if !r.Priced {
				r.Current = PriceNA
				break
			}
			r.ChangePct = pnl.ChangePct(t.EntryPrice, r.Price)
			r.Current = current(r.Price, r.ChangePct)
			r.Alerts = alert.NearWithin(tolPct, r.Price, t.Target1, t.Target2, t.Target3, t.StopLoss)
			r.PnL = pnl.Unrealized(t, r.Price)
		case t.IsClosed():
			r.Current = ClosedLabel
			r.PnL = pnl.Realized(t)
		default:
			r.Current = ClosedLabel
		}

		rows = append(rows, r)
	}
	return rows
}

// current renders "123.45 (+2.30%)".
func current(price, changePct decimal.Decimal) string {
	sign := ""
	if !changePct.IsNegative() {
		sign = "+"
	}
	return fmt.Sprintf("%s (%s%s%%)", price.StringFixed(2), sign, changePct.StringFixed(2))
}

// Input is everything one dashboard frame is built from.
type Input struct {
	Trades       []journal.TradeRecord
	Report       journal.LoadReport
	Criteria     filter.Criteria
	Lookup       pnl.LookupFunc
	TolerancePct decimal.Decimal
	State        State
	Now          time.Time
}

// View is one rendered frame.
type View struct {
	Rows      []Row
	Summary   pnl.Summary
	Criteria  filter.Criteria
	State     State
	Total     int
	Dropped   int
	UpdatedAt time.Time
}

// Build computes the summary over the whole ledger and the rows over the
// filtered subset. Each symbol is looked up at most once per frame.
func Build(in Input) View {
	lookup := memo(in.Lookup)
	tol := in.TolerancePct
	if tol.IsZero() {
		tol = alert.DefaultTolerancePct
	}

	return View{
		Rows:      BuildRows(filter.Apply(in.Trades, in.Criteria), lookup, tol),
		Summary:   pnl.ComputeSummary(in.Trades, lookup),
		Criteria:  in.Criteria,
		State:     in.State,
		Total:     len(in.Trades),
		Dropped:   in.Report.Dropped,
		UpdatedAt: in.Now,
	}
}

type quote struct {
	price decimal.Decimal
	ok    bool
}

func memo(lookup pnl.LookupFunc) pnl.LookupFunc {
	if lookup == nil {
		return nil
	}
	seen := map[string]quote{}
	return func(symbol string) (decimal.Decimal, bool) {
		if q, ok := seen[symbol]; ok {
			return q.price, q.ok
		}
		p, ok := lookup(symbol)
		seen[symbol] = quote{p, ok}
		return p, ok
	}
}

package risk

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/journal"
)

type Violation struct {
	Code string
	Msg  string
}

func (v Violation) String() string { return v.Code + ": " + v.Msg }

type Decision struct {
	Allowed    bool
	Violations []Violation

	PlannedRisk    decimal.Decimal
	PlannedRiskPct decimal.Decimal
	PlannedRR      decimal.Decimal
}

func (d *Decision) add(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.Allowed = false
}

var hundred = decimal.NewFromInt(100)

// Evaluate checks a trade about to be opened against p. openTrades is the
// number of positions already open. Violations are advisory; the journal
// still records the trade.
func Evaluate(p Policy, t journal.TradeRecord, openTrades int) Decision {
	d := Decision{Allowed: true}

	if t.StopLoss.IsZero() {
		d.add("NO_STOP", "no stop loss set")
	}

	d.PlannedRisk = PlannedRisk(t.Quantity, t.EntryPrice, t.StopLoss)
	d.PlannedRiskPct = RiskPct(d.PlannedRisk, p.Capital)
	d.PlannedRR = TradeRR(t)

	if p.MaxRiskPct.IsPositive() && p.Capital.IsPositive() && d.PlannedRiskPct.GreaterThan(p.MaxRiskPct) {
		d.add("RISK_TOO_HIGH",
			fmt.Sprintf("planned risk %s%% exceeds max %s%%",
				d.PlannedRiskPct.Mul(hundred).StringFixed(2), p.MaxRiskPct.Mul(hundred).StringFixed(2)))
	}
	if p.MinRR.IsPositive() && !t.Target1.IsZero() && !t.StopLoss.IsZero() && d.PlannedRR.LessThan(p.MinRR) {
		d.add("RR_TOO_LOW",
			fmt.Sprintf("RR %s below minimum %s", d.PlannedRR.StringFixed(2), p.MinRR.StringFixed(2)))
	}
	if p.MaxOpenTrades > 0 && openTrades >= p.MaxOpenTrades {
		d.add("TOO_MANY_OPEN_TRADES",
			fmt.Sprintf("open trades %d >= max %d", openTrades, p.MaxOpenTrades))
	}

	return d
}

package risk

import (
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/journal"
)

// PlannedRisk is the absolute loss if the stop is hit: |entry - stop| * qty.
// No stop means no planned risk.
func PlannedRisk(qty int64, entry, stop decimal.Decimal) decimal.Decimal {
	if stop.IsZero() {
		return decimal.Zero
	}
	return entry.Sub(stop).Abs().Mul(decimal.NewFromInt(qty))
}

// RR is reward over risk, |target - entry| / |entry - stop|, rounded to two
// places. Zero when either level is unset or the stop sits on the entry.
func RR(entry, stop, target decimal.Decimal) decimal.Decimal {
	if stop.IsZero() || target.IsZero() {
		return decimal.Zero
	}
	risk := entry.Sub(stop).Abs()
	if risk.IsZero() {
		return decimal.Zero
	}
	return target.Sub(entry).Abs().Div(risk).Round(2)
}

// TradeRR is RR against the trade's first target.
func TradeRR(t journal.TradeRecord) decimal.Decimal {
	return RR(t.EntryPrice, t.StopLoss, t.Target1)
}

// RiskPct is planned risk as a fraction of capital.
func RiskPct(plannedRisk, capital decimal.Decimal) decimal.Decimal {
	if !capital.IsPositive() {
		return decimal.Zero
	}
	return plannedRisk.Div(capital)
}

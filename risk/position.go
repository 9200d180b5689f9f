package risk

import (
	"github.com/shopspring/decimal"
)

// Inputs for sizing a cash equity position.
type Inputs struct {
	Capital decimal.Decimal
	RiskPct decimal.Decimal // fraction, 0.01 = 1%
	Entry   decimal.Decimal
	Stop    decimal.Decimal
}

type Result struct {
	Shares       int64
	RiskPerShare decimal.Decimal
	RiskAmount   decimal.Decimal // capital * risk pct
	Cost         decimal.Decimal // shares * entry
}

// Calculate sizes a position so that hitting the stop loses at most
// Capital * RiskPct. Shares are rounded down and capped at what Capital can
// buy outright.
func Calculate(in Inputs) Result {
	riskAmt := in.Capital.Mul(in.RiskPct)
	perShare := in.Entry.Sub(in.Stop).Abs()

	res := Result{RiskPerShare: perShare, RiskAmount: riskAmt, Cost: decimal.Zero}
	if perShare.IsZero() || !in.Entry.IsPositive() {
		return res
	}

	shares := riskAmt.Div(perShare).Floor()
	if afford := in.Capital.Div(in.Entry).Floor(); shares.GreaterThan(afford) {
		shares = afford
	}
	if shares.IsNegative() {
		shares = decimal.Zero
	}

	res.Shares = shares.IntPart()
	res.Cost = shares.Mul(in.Entry)
	return res
}

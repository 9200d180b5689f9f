// Package alert flags open positions whose live price has come close to one
// of the trade's planned levels.
package alert

import (
	"github.com/shopspring/decimal"
)

// Level identifies which planned level a price is near.
type Level int

const (
	NearTarget1 Level = iota + 1
	NearTarget2
	NearTarget3
	NearStopLoss
)

func (l Level) String() string {
	switch l {
	case NearTarget1:
		return "Near Target 1"
	case NearTarget2:
		return "Near Target 2"
	case NearTarget3:
		return "Near Target 3"
	case NearStopLoss:
		return "Near Stop Loss"
	}
	return "Unknown"
}

// DefaultTolerancePct is the band, in percent of the level, that counts as near.
var DefaultTolerancePct = decimal.NewFromInt(2)

var hundred = decimal.NewFromInt(100)

// NearTargets reports the levels within DefaultTolerancePct of price.
func NearTargets(price, t1, t2, t3, sl decimal.Decimal) []Level {
	return NearWithin(DefaultTolerancePct, price, t1, t2, t3, sl)
}

// NearWithin reports, in the order t1, t2, t3, sl, every level L that is set
// and satisfies |price-L| / |L| * 100 <= tolPct. Unset (zero) levels never
// fire.
func NearWithin(tolPct, price, t1, t2, t3, sl decimal.Decimal) []Level {
	var out []Level
	for _, c := range []struct {
		level Level
		value decimal.Decimal
	}{
		{NearTarget1, t1},
		{NearTarget2, t2},
		{NearTarget3, t3},
		{NearStopLoss, sl},
	} {
		if Near(tolPct, price, c.value) {
			out = append(out, c.level)
		}
	}
	return out
}

// Near reports whether price is within tolPct percent of level. The test is
// done as |price-level|*100 <= tolPct*|level| so it stays exact.
func Near(tolPct, price, level decimal.Decimal) bool {
	if level.IsZero() {
		return false
	}
	diff := price.Sub(level).Abs().Mul(hundred)
	return diff.LessThanOrEqual(tolPct.Mul(level.Abs()))
}

// Labels renders levels as display strings.
func Labels(levels []Level) []string {
	out := make([]string, 0, len(levels))
	for _, l := range levels {
		out = append(out, l.String())
	}
	return out
}

package risk

import "github.com/shopspring/decimal"

// Policy holds the personal limits a new trade is checked against. Zero
// values disable the matching check.
type Policy struct {
	Capital       decimal.Decimal
	MaxRiskPct    decimal.Decimal // fraction of capital, 0.01 = 1%
	MinRR         decimal.Decimal
	MaxOpenTrades int
}

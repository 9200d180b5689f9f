package alert

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNearTargets(t *testing.T) {
	t.Parallel()

	zero := decimal.Zero
	tests := []struct {
		name           string
		price          string
		t1, t2, t3, sl decimal.Decimal
		want           []Level
	}{
		{"near t1 only", "108", d("110"), d("120"), zero, d("95"), []Level{NearTarget1}},
		{"exact boundary", "102", d("100"), zero, zero, zero, []Level{NearTarget1}},
		{"just outside", "102.01", d("100"), zero, zero, zero, nil},
		{"below level", "98", d("100"), zero, zero, zero, []Level{NearTarget1}},
		{"stop loss", "96", d("110"), zero, zero, d("95"), []Level{NearStopLoss}},
		{"unset levels never fire", "0", zero, zero, zero, zero, nil},
		{"several fire in order", "100", d("101"), d("99"), d("100.5"), d("101.5"),
			[]Level{NearTarget1, NearTarget2, NearTarget3, NearStopLoss}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := NearTargets(d(tt.price), tt.t1, tt.t2, tt.t3, tt.sl)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNearWithinCustomTolerance(t *testing.T) {
	t.Parallel()

	got := NearWithin(d("5"), d("105"), d("100"), decimal.Zero, decimal.Zero, decimal.Zero)
	assert.Equal(t, []Level{NearTarget1}, got)

	got = NearWithin(d("0.5"), d("101"), d("100"), decimal.Zero, decimal.Zero, decimal.Zero)
	assert.Empty(t, got)
}

func TestLabels(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]string{"Near Target 1", "Near Target 2", "Near Target 3", "Near Stop Loss"},
		Labels([]Level{NearTarget1, NearTarget2, NearTarget3, NearStopLoss}))
	assert.Equal(t, "Unknown", Level(0).String())
}

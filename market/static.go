package market

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// StaticProvider serves prices from memory. Used offline and in tests.
type StaticProvider struct {
	mu     sync.RWMutex
	prices map[string]decimal.Decimal
}

func NewStaticProvider(prices map[string]decimal.Decimal) *StaticProvider {
	sp := &StaticProvider{prices: make(map[string]decimal.Decimal, len(prices))}
	for k, v := range prices {
		sp.Set(k, v)
	}
	return sp
}

func (sp *StaticProvider) Set(symbol string, price decimal.Decimal) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	sp.prices[strings.ToUpper(symbol)] = price
}

func (sp *StaticProvider) Quote(_ context.Context, symbol string) (decimal.Decimal, error) {
	sp.mu.RLock()
	defer sp.mu.RUnlock()
	p, ok := sp.prices[strings.ToUpper(symbol)]
	if !ok || !usable(p) {
		return decimal.Zero, ErrUnavailable
	}
	return p, nil
}

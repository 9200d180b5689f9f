package market

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Provider names accepted in config.
const (
	ProviderYahoo   = "yahoo"
	ProviderFinnhub = "finnhub"
	ProviderStatic  = "static"
)

// NewProvider builds the named provider. static seeds the static provider
// and is ignored by the others.
func NewProvider(name string, static map[string]decimal.Decimal, opts ...Option) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ProviderYahoo, "":
		return NewYahooProvider(opts...), nil
	case ProviderFinnhub:
		return NewFinnhubProvider(opts...), nil
	case ProviderStatic:
		return NewStaticProvider(static), nil
	}
	return nil, fmt.Errorf("unknown price provider %q", name)
}

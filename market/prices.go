// Package market supplies live prices for open positions.
package market

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ErrUnavailable means the provider has no usable price for a symbol.
var ErrUnavailable = errors.New("price unavailable")

// Provider returns the latest price for a journal ticker.
type Provider interface {
	Quote(ctx context.Context, symbol string) (decimal.Decimal, error)
}

const (
	DefaultSuffix    = ".NS"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second
)

type options struct {
	baseURL   string
	suffix    string
	apiKey    string
	timeout   time.Duration
	rateLimit int
	log       zerolog.Logger
}

// Option configures a Provider.
type Option func(*options)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithSuffix sets the exchange suffix appended to journal tickers,
// e.g. ".NS" turns TCS into TCS.NS. Empty sends tickers as they are.
func WithSuffix(s string) Option {
	return func(o *options) { o.suffix = s }
}

// WithAPIKey sets the provider token.
func WithAPIKey(k string) Option {
	return func(o *options) { o.apiKey = k }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithRateLimit caps requests per second. Zero or less leaves the default.
func WithRateLimit(perSecond int) Option {
	return func(o *options) {
		if perSecond > 0 {
			o.rateLimit = perSecond
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}

func buildOptions(opts []Option) options {
	o := options{
		suffix:    DefaultSuffix,
		timeout:   DefaultTimeout,
		rateLimit: DefaultRateLimit,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ExchangeSymbol maps a journal ticker to the provider's symbol. Tickers that
// already carry a suffix are left alone.
func ExchangeSymbol(stock, suffix string) string {
	s := strings.ToUpper(strings.TrimSpace(stock))
	if s == "" || suffix == "" || strings.Contains(s, ".") {
		return s
	}
	return s + suffix
}

// usable reports whether a provider price can be shown. Providers report
// missing data as zero.
func usable(p decimal.Decimal) bool {
	return p.IsPositive()
}

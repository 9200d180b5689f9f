package market

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/quote"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// YahooProvider reads regular market prices through finance-go.
type YahooProvider struct {
	suffix  string
	limiter *rate.Limiter
	log     zerolog.Logger
	fetch   func(symbol string) (float64, error)
}

var yahooClientOnce sync.Once

// NewYahooProvider also installs an HTTP client with the configured timeout
// as finance-go's shared client. Only the first provider's timeout applies.
func NewYahooProvider(opts ...Option) *YahooProvider {
	o := buildOptions(opts)
	yahooClientOnce.Do(func() {
		finance.SetHTTPClient(&http.Client{Timeout: o.timeout})
	})
	return &YahooProvider{
		suffix:  o.suffix,
		limiter: rate.NewLimiter(rate.Limit(o.rateLimit), o.rateLimit),
		log:     o.log.With().Str("provider", "yahoo").Logger(),
		fetch:   yahooPrice,
	}
}

func yahooPrice(symbol string) (float64, error) {
	q, err := quote.Get(symbol)
	if err != nil {
		return 0, err
	}
	if q == nil {
		return 0, ErrUnavailable
	}
	return q.RegularMarketPrice, nil
}

func (y *YahooProvider) Quote(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if err := y.limiter.Wait(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("rate limit wait: %w", err)
	}

	sym := ExchangeSymbol(symbol, y.suffix)
	price, err := y.fetchContext(ctx, sym)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			return decimal.Zero, err
		}
		y.log.Debug().Err(err).Str("symbol", sym).Msg("quote failed")
		return decimal.Zero, fmt.Errorf("%w: %s: %v", ErrUnavailable, sym, err)
	}

	p := decimal.NewFromFloat(price)
	if !usable(p) {
		return decimal.Zero, ErrUnavailable
	}
	return p, nil
}

type fetchResult struct {
	price float64
	err   error
}

// fetchContext gives up on fetch once ctx is done; finance-go calls take
// no context.
func (y *YahooProvider) fetchContext(ctx context.Context, sym string) (float64, error) {
	done := make(chan fetchResult, 1)
	go func() {
		p, err := y.fetch(sym)
		done <- fetchResult{price: p, err: err}
	}()

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case r := <-done:
		return r.price, r.err
	}
}

package market

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const DefaultFinnhubURL = "https://finnhub.io/api/v1"

// FinnhubProvider reads the current price from Finnhub's /quote endpoint.
type FinnhubProvider struct {
	client  *resty.Client
	apiKey  string
	suffix  string
	limiter *rate.Limiter
	log     zerolog.Logger
}

// finnhubQuote is the subset of the /quote response we use. c is the current
// price; Finnhub returns zeros for unknown symbols.
type finnhubQuote struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	PercentChange float64 `json:"dp"`
	PrevClose     float64 `json:"pc"`
	Timestamp     int64   `json:"t"`
}

func NewFinnhubProvider(opts ...Option) *FinnhubProvider {
	o := buildOptions(append([]Option{WithBaseURL(DefaultFinnhubURL)}, opts...))

	client := resty.New()
	client.SetBaseURL(o.baseURL)
	client.SetTimeout(o.timeout)

	return &FinnhubProvider{
		client:  client,
		apiKey:  o.apiKey,
		suffix:  o.suffix,
		limiter: rate.NewLimiter(rate.Limit(o.rateLimit), o.rateLimit),
		log:     o.log.With().Str("provider", "finnhub").Logger(),
	}
}

func (f *FinnhubProvider) Quote(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if f.apiKey == "" {
		return decimal.Zero, fmt.Errorf("finnhub API key not configured")
	}
	if err := f.limiter.Wait(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("rate limit wait: %w", err)
	}

	sym := ExchangeSymbol(symbol, f.suffix)
	var q finnhubQuote
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol": sym,
			"token":  f.apiKey,
		}).
		SetResult(&q).
		Get("/quote")
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: fetch %s: %v", ErrUnavailable, sym, err)
	}
	if resp.IsError() {
		f.log.Debug().Int("status", resp.StatusCode()).Str("symbol", sym).Msg("quote failed")
		return decimal.Zero, fmt.Errorf("%w: %s: API error %d", ErrUnavailable, sym, resp.StatusCode())
	}

	p := decimal.NewFromFloat(q.Current)
	if !usable(p) {
		return decimal.Zero, ErrUnavailable
	}
	return p, nil
}

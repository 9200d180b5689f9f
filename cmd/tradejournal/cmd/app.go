package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/market"
	"github.com/rustyeddy/tradejournal/risk"
)

func openService() (*journal.Service, error) {
	store, err := journal.Open(
		journal.Backend(cfg.Journal.Type),
		cfg.JournalPath(),
		journal.WithBackups(cfg.Journal.Backups),
		journal.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return journal.NewService(store, logger), nil
}

func newPriceCache() (*market.Cache, error) {
	static, err := cfg.StaticPrices()
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.PriceTimeout()
	if err != nil {
		return nil, err
	}
	ttl, err := cfg.PriceTTL()
	if err != nil {
		return nil, err
	}

	p, err := market.NewProvider(cfg.Prices.Provider, static,
		market.WithSuffix(cfg.Prices.Suffix),
		market.WithAPIKey(cfg.Prices.FinnhubAPIKey),
		market.WithTimeout(timeout),
		market.WithRateLimit(cfg.Prices.RateLimit),
		market.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	return market.NewCache(p, ttl,
		market.WithLookupTimeout(timeout),
		market.WithCacheLogger(logger),
	), nil
}

func riskPolicy() risk.Policy {
	return risk.Policy{
		Capital:       decimal.NewFromFloat(cfg.Risk.Capital),
		MaxRiskPct:    decimal.NewFromFloat(cfg.Risk.MaxRiskPct),
		MinRR:         decimal.NewFromFloat(cfg.Risk.MinRR),
		MaxOpenTrades: cfg.Risk.MaxOpenTrades,
	}
}

var cache *market.Cache

// priceCache is shared by every frame of a run so watch reuses quotes.
func priceCache() (*market.Cache, error) {
	if cache != nil {
		return cache, nil
	}
	c, err := newPriceCache()
	if err != nil {
		return nil, err
	}
	cache = c
	return cache, nil
}

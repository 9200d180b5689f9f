package market

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const DefaultTTL = 5 * time.Minute

type cacheEntry struct {
	price     decimal.Decimal
	fetchedAt time.Time
}

// Cache remembers successful quotes for a TTL. Failures are never cached, so
// the next lookup asks the provider again. Safe for concurrent use.
type Cache struct {
	provider Provider
	ttl      time.Duration
	timeout  time.Duration
	log      zerolog.Logger
	now      func() time.Time // injectable clock for testing

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

// WithLookupTimeout bounds each provider call made by Lookup.
func WithLookupTimeout(d time.Duration) CacheOption {
	return func(c *Cache) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithCacheLogger sets the logger.
func WithCacheLogger(log zerolog.Logger) CacheOption {
	return func(c *Cache) { c.log = log }
}

// NewCache wraps p. A ttl of zero or less uses DefaultTTL.
func NewCache(p Provider, ttl time.Duration, opts ...CacheOption) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		provider: p,
		ttl:      ttl,
		timeout:  DefaultTimeout,
		log:      zerolog.Nop(),
		now:      time.Now,
		entries:  make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func cacheKey(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func (c *Cache) get(key string) (decimal.Decimal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.fetchedAt) >= c.ttl {
		return decimal.Zero, false
	}
	return e.price, true
}

// Quote returns a cached price if fresh, otherwise asks the provider.
func (c *Cache) Quote(ctx context.Context, symbol string) (decimal.Decimal, error) {
	key := cacheKey(symbol)
	if p, ok := c.get(key); ok {
		return p, nil
	}

	p, err := c.provider.Quote(ctx, key)
	if err != nil {
		return decimal.Zero, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{price: p, fetchedAt: c.now()}
	c.mu.Unlock()
	return p, nil
}

// Lookup is Quote with a bounded background context, shaped for the PnL
// engine: any failure is reported as "no price".
func (c *Cache) Lookup(symbol string) (decimal.Decimal, bool) {
	return c.LookupContext(context.Background())(symbol)
}

// LookupContext returns a lookup bound to ctx, so cancelling ctx abandons
// in-flight quotes.
func (c *Cache) LookupContext(ctx context.Context) func(string) (decimal.Decimal, bool) {
	return func(symbol string) (decimal.Decimal, bool) {
		qctx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		p, err := c.Quote(qctx, symbol)
		if err != nil {
			if !errors.Is(err, ErrUnavailable) {
				c.log.Warn().Err(err).Str("symbol", symbol).Msg("price lookup failed")
			}
			return decimal.Zero, false
		}
		return p, true
	}
}

// Invalidate drops every cached price.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Len is the number of cached symbols, fresh or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

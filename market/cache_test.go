package market

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingProvider returns a scripted price and counts calls per symbol.
type countingProvider struct {
	mu     sync.Mutex
	calls  map[string]int
	prices map[string]decimal.Decimal
	err    error
}

func newCountingProvider() *countingProvider {
	return &countingProvider{calls: map[string]int{}, prices: map[string]decimal.Decimal{}}
}

func (p *countingProvider) Quote(_ context.Context, symbol string) (decimal.Decimal, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls[symbol]++
	if p.err != nil {
		return decimal.Zero, p.err
	}
	price, ok := p.prices[symbol]
	if !ok {
		return decimal.Zero, ErrUnavailable
	}
	return price, nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestCacheHonoursTTL(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2024, 1, 1, 9, 15, 0, 0, time.UTC)}
	p := newCountingProvider()
	p.prices["TCS"] = decimal.RequireFromString("3500.5")

	c := NewCache(p, time.Minute, WithClock(clock.Now))

	price, ok := c.Lookup("tcs")
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.RequireFromString("3500.5")))

	clock.Advance(59 * time.Second)
	_, ok = c.Lookup("TCS")
	require.True(t, ok)
	assert.Equal(t, 1, p.calls["TCS"])

	p.prices["TCS"] = decimal.RequireFromString("3510")
	clock.Advance(time.Second)
	price, ok = c.Lookup("TCS")
	require.True(t, ok)
	assert.Equal(t, 2, p.calls["TCS"])
	assert.True(t, price.Equal(decimal.RequireFromString("3510")))
}

func TestCacheDoesNotCacheFailures(t *testing.T) {
	t.Parallel()

	p := newCountingProvider()
	c := NewCache(p, time.Hour)

	_, ok := c.Lookup("INFY")
	assert.False(t, ok)
	_, ok = c.Lookup("INFY")
	assert.False(t, ok)
	assert.Equal(t, 2, p.calls["INFY"])
	assert.Equal(t, 0, c.Len())

	p.prices["INFY"] = decimal.NewFromInt(1500)
	_, ok = c.Lookup("INFY")
	assert.True(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestCacheQuotePropagatesErrors(t *testing.T) {
	t.Parallel()

	p := newCountingProvider()
	p.err = errors.New("boom")
	c := NewCache(p, 0)

	_, err := c.Quote(context.Background(), "TCS")
	assert.EqualError(t, err, "boom")

	_, ok := c.Lookup("TCS")
	assert.False(t, ok)
}

func TestCacheInvalidate(t *testing.T) {
	t.Parallel()

	p := newCountingProvider()
	p.prices["TCS"] = decimal.NewFromInt(1)
	c := NewCache(p, time.Hour)

	_, _ = c.Lookup("TCS")
	c.Invalidate()
	_, _ = c.Lookup("TCS")
	assert.Equal(t, 2, p.calls["TCS"])
}

func TestCacheLookupContextCancelled(t *testing.T) {
	t.Parallel()

	c := NewCache(blockingProvider{}, time.Hour, WithLookupTimeout(time.Second))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := c.LookupContext(ctx)("TCS")
	assert.False(t, ok)
}

type blockingProvider struct{}

func (blockingProvider) Quote(ctx context.Context, _ string) (decimal.Decimal, error) {
	<-ctx.Done()
	return decimal.Zero, ctx.Err()
}

func TestCacheConcurrentLookups(t *testing.T) {
	t.Parallel()

	p := newCountingProvider()
	p.prices["TCS"] = decimal.NewFromInt(10)
	c := NewCache(p, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := c.Lookup("TCS")
			assert.True(t, ok)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, c.Len())
}

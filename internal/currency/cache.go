package currency

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// RatePair is one exchange rate entry returned by a Source.
type RatePair struct {
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Rate         decimal.Decimal `json:"rate"`
}

// Source supplies exchange rates from an external system, typically the
// database or an HTTP endpoint. Implementations own their timeout policy.
type Source interface {
	FetchRates(ctx context.Context) ([]RatePair, error)
}

// DefaultFreshness is how long fetched rates are served before a refetch.
const DefaultFreshness = 5 * time.Minute

// PairKey builds the "{FROM}-{TO}" key used by the cached rate map.
func PairKey(from, to string) string {
	return strings.ToUpper(from) + "-" + strings.ToUpper(to)
}

// RateCache is a process-wide, time-bound view of externally supplied
// exchange rates. The map is rebuilt as a full replacement on every
// successful fetch, never mutated in place, so readers always see a
// consistent snapshot. A failed fetch keeps the previous (possibly expired)
// map serving until a future fetch succeeds.
type RateCache struct {
	source    Source
	freshness time.Duration

	mu        sync.RWMutex
	rates     map[string]decimal.Decimal
	fetchedAt time.Time
}

// NewRateCache builds a cache over source. A non-positive freshness selects
// DefaultFreshness.
func NewRateCache(source Source, freshness time.Duration) *RateCache {
	if freshness <= 0 {
		freshness = DefaultFreshness
	}
	return &RateCache{source: source, freshness: freshness}
}

// Rates returns the cached rate map, refetching first when the cache is
// stale or empty. Fetch failures are logged and invisible to the caller
// beyond "no update happened". The lock is held across the staleness check
// and the fetch so concurrent callers trigger a single refresh.
func (c *RateCache) Rates(ctx context.Context) map[string]decimal.Decimal {
	c.mu.RLock()
	if c.fresh() {
		rates := c.rates
		c.mu.RUnlock()
		return rates
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fresh() {
		// Another caller refreshed while we waited for the lock.
		return c.rates
	}

	pairs, err := c.source.FetchRates(ctx)
	if err != nil {
		slog.Warn("exchange rate fetch failed, serving cached rates", "error", err, "cached_pairs", len(c.rates))
		return c.rates
	}

	rebuilt := make(map[string]decimal.Decimal, 2*len(pairs))
	for _, p := range pairs {
		if p.FromCurrency == "" || p.ToCurrency == "" || p.Rate.Sign() <= 0 {
			slog.Warn("skipping malformed exchange rate entry", "from", p.FromCurrency, "to", p.ToCurrency, "rate", p.Rate)
			continue
		}
		rebuilt[PairKey(p.FromCurrency, p.ToCurrency)] = p.Rate
		rebuilt[PairKey(p.ToCurrency, p.FromCurrency)] = decimal.NewFromInt(1).Div(p.Rate)
	}
	c.rates = rebuilt
	c.fetchedAt = time.Now()
	return c.rates
}

// Snapshot returns whatever is currently cached without triggering a fetch.
// Rendering paths that cannot block on a refresh use this and accept a small
// staleness window.
func (c *RateCache) Snapshot() map[string]decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rates
}

// Clear resets the map and timestamp, forcing the next access to refetch.
func (c *RateCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rates = nil
	c.fetchedAt = time.Time{}
}

// fresh must be called with at least a read lock held.
func (c *RateCache) fresh() bool {
	return c.rates != nil && time.Since(c.fetchedAt) < c.freshness
}

package currency

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

// stubSource counts fetches and serves canned pairs or an error.
type stubSource struct {
	mu      sync.Mutex
	pairs   []RatePair
	err     error
	fetches int
}

func (s *stubSource) FetchRates(_ context.Context) ([]RatePair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	if s.err != nil {
		return nil, s.err
	}
	return s.pairs, nil
}

func (s *stubSource) fetchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

func usdEurPairs() []RatePair {
	return []RatePair{
		{FromCurrency: "USD", ToCurrency: "EUR", Rate: decimal.RequireFromString("0.9")},
		{FromCurrency: "USD", ToCurrency: "NPR", Rate: decimal.NewFromInt(133)},
	}
}

func TestRateCache_SingleFetchWithinFreshnessWindow(t *testing.T) {
	src := &stubSource{pairs: usdEurPairs()}
	cache := NewRateCache(src, time.Minute)
	ctx := context.Background()

	first := cache.Rates(ctx)
	second := cache.Rates(ctx)

	assert.Equal(t, 1, src.fetchCount(), "two calls inside the window must issue one fetch")
	assert.Equal(t, len(first), len(second))
}

func TestRateCache_RefetchAfterExpiry(t *testing.T) {
	src := &stubSource{pairs: usdEurPairs()}
	cache := NewRateCache(src, 30*time.Millisecond)
	ctx := context.Background()

	cache.Rates(ctx)
	time.Sleep(40 * time.Millisecond)
	cache.Rates(ctx)

	assert.Equal(t, 2, src.fetchCount())
}

func TestRateCache_StoresDirectAndReciprocal(t *testing.T) {
	src := &stubSource{pairs: usdEurPairs()}
	cache := NewRateCache(src, time.Minute)

	rates := cache.Rates(context.Background())

	direct, ok := rates[PairKey("USD", "EUR")]
	require.True(t, ok)
	assert.True(t, direct.Equal(decimal.RequireFromString("0.9")))

	reciprocal, ok := rates[PairKey("EUR", "USD")]
	require.True(t, ok)
	assert.True(t, reciprocal.Sub(decimal.NewFromInt(1).Div(decimal.RequireFromString("0.9"))).Abs().LessThan(decimal.New(1, -10)))
}

func TestRateCache_FetchFailureKeepsStaleMap(t *testing.T) {
	src := &stubSource{pairs: usdEurPairs()}
	cache := NewRateCache(src, 10*time.Millisecond)
	ctx := context.Background()

	fresh := cache.Rates(ctx)
	require.NotEmpty(t, fresh)

	src.mu.Lock()
	src.err = errors.New("rate endpoint down")
	src.mu.Unlock()
	time.Sleep(20 * time.Millisecond)

	stale := cache.Rates(ctx)
	assert.Equal(t, len(fresh), len(stale), "stale map must keep serving after a failed fetch")
	_, ok := stale[PairKey("USD", "EUR")]
	assert.True(t, ok)
}

func TestRateCache_SkipsMalformedEntries(t *testing.T) {
	src := &stubSource{pairs: []RatePair{
		{FromCurrency: "USD", ToCurrency: "EUR", Rate: decimal.RequireFromString("0.9")},
		{FromCurrency: "", ToCurrency: "EUR", Rate: decimal.NewFromInt(2)},
		{FromCurrency: "USD", ToCurrency: "GBP", Rate: decimal.Zero},
	}}
	cache := NewRateCache(src, time.Minute)

	rates := cache.Rates(context.Background())

	assert.Len(t, rates, 2, "only the valid pair and its reciprocal survive")
}

func TestRateCache_ClearForcesRefetch(t *testing.T) {
	src := &stubSource{pairs: usdEurPairs()}
	cache := NewRateCache(src, time.Hour)
	ctx := context.Background()

	cache.Rates(ctx)
	cache.Clear()
	assert.Empty(t, cache.Snapshot())
	cache.Rates(ctx)

	assert.Equal(t, 2, src.fetchCount())
}

func TestRateCache_SnapshotDoesNotFetch(t *testing.T) {
	src := &stubSource{pairs: usdEurPairs()}
	cache := NewRateCache(src, time.Minute)

	assert.Empty(t, cache.Snapshot())
	assert.Equal(t, 0, src.fetchCount())
}

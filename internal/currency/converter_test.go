package currency

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func seededConverter(t *testing.T, pairs []RatePair) *Converter {
	t.Helper()
	cache := NewRateCache(&stubSource{pairs: pairs}, time.Minute)
	cache.Rates(context.Background()) // warm the cache
	return NewConverter(cache)
}

func TestConverter_PrefersDirectCachedRate(t *testing.T) {
	// Cached USD->NPR of 133 beats the static table's 140.
	cv := seededConverter(t, []RatePair{
		{FromCurrency: "USD", ToCurrency: "NPR", Rate: decimal.NewFromInt(133)},
	})

	got := cv.Convert(context.Background(), decimal.NewFromInt(100), "USD", "NPR")
	assert.True(t, got.Equal(decimal.NewFromInt(13300)), "got %s", got)
}

func TestConverter_PivotThroughBase(t *testing.T) {
	// No direct EUR->NPR pair; EUR-USD reciprocal and USD-NPR compose.
	cv := seededConverter(t, []RatePair{
		{FromCurrency: "USD", ToCurrency: "EUR", Rate: decimal.RequireFromString("0.8")},
		{FromCurrency: "USD", ToCurrency: "NPR", Rate: decimal.NewFromInt(132)},
	})

	// 80 EUR -> 100 USD -> 13200 NPR.
	got := cv.Convert(context.Background(), decimal.NewFromInt(80), "EUR", "NPR")
	assert.True(t, got.Equal(decimal.NewFromInt(13200)), "got %s", got)
}

func TestConverter_FallsBackToStaticTable(t *testing.T) {
	cv := seededConverter(t, []RatePair{
		{FromCurrency: "USD", ToCurrency: "EUR", Rate: decimal.RequireFromString("0.8")},
	})

	// No cached NPR pair at all: static rate 140 applies.
	got := cv.Convert(context.Background(), decimal.NewFromInt(100), "USD", "NPR")
	assert.True(t, got.Equal(decimal.NewFromInt(14000)), "got %s", got)
}

func TestConverter_IdentitySkipsLookup(t *testing.T) {
	cache := NewRateCache(&stubSource{pairs: usdEurPairs()}, time.Minute)
	cv := NewConverter(cache)

	amount := decimal.RequireFromString("55.555")
	got := cv.Convert(context.Background(), amount, "USD", "usd")
	assert.True(t, got.Equal(amount), "identity must not round")
	assert.Empty(t, cache.Snapshot(), "identity conversion must not trigger a fetch")
}

func TestFormatWithCachedRates(t *testing.T) {
	cv := seededConverter(t, []RatePair{
		{FromCurrency: "USD", ToCurrency: "NPR", Rate: decimal.NewFromInt(133)},
	})

	got := cv.FormatWithCachedRates(decimal.NewFromInt(100), "USD", "NPR")
	assert.Equal(t, "रू 13,300.00 ($100.00)", got)
}

func TestFormatWithCachedRates_SameCurrency(t *testing.T) {
	cv := seededConverter(t, nil)
	assert.Equal(t, "$100.00", cv.FormatWithCachedRates(decimal.NewFromInt(100), "USD", "USD"))
}

func TestFormatWithCachedRates_MissingExpenseCurrency(t *testing.T) {
	cv := seededConverter(t, nil)
	// Must not panic; formats with the display currency alone.
	assert.Equal(t, "$42.00", cv.FormatWithCachedRates(decimal.NewFromInt(42), "", "USD"))
}

func TestFormatWithIndicator_NegativeRendersZero(t *testing.T) {
	cv := seededConverter(t, nil)
	assert.Equal(t, "$0.00", cv.FormatWithIndicator(decimal.NewFromInt(-50), "USD", "USD"))
}

func TestFormatWithIndicator_AbsurdAmountFlagged(t *testing.T) {
	cv := seededConverter(t, nil)
	huge := decimal.New(2, 12) // 2 * 10^12, above the threshold
	got := cv.FormatWithIndicator(huge, "USD", "NPR")
	assert.Contains(t, got, "(amount error)")
	assert.NotContains(t, got, "रू", "no conversion is attempted for flagged amounts")
}

func TestFormatWithIndicator_ImplausibleRateMarked(t *testing.T) {
	// A corrupted cached USD->EUR rate of 500 is far outside the narrow band.
	cv := seededConverter(t, []RatePair{
		{FromCurrency: "USD", ToCurrency: "EUR", Rate: decimal.NewFromInt(500)},
	})

	got := cv.FormatWithIndicator(decimal.NewFromInt(100), "USD", "EUR")
	assert.Contains(t, got, "(check rate)")
}

func TestFormatWithIndicator_PlausibleRateUnmarked(t *testing.T) {
	cv := seededConverter(t, []RatePair{
		{FromCurrency: "USD", ToCurrency: "EUR", Rate: decimal.RequireFromString("0.9")},
	})

	got := cv.FormatWithIndicator(decimal.NewFromInt(100), "USD", "EUR")
	assert.Equal(t, "90,00 € ($100.00)", got)
}

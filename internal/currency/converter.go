package currency

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
)

// Markers appended to display strings when a value could not be converted
// cleanly. They surface data problems to the user instead of hiding them.
const (
	checkRateMarker   = " (check rate)"
	amountErrorMarker = " (amount error)"
)

// maxPlausibleAmount is the absolute threshold above which a stored amount
// is treated as a data entry error rather than converted.
var maxPlausibleAmount = decimal.New(1, 12) // 10^12

// Converter converts and formats amounts using a RateCache backed by
// database rates, falling back to the static table when no cached rate
// covers a pair. Preference order: direct cached rate, cached two-hop via
// USD, static table.
type Converter struct {
	cache *RateCache
}

// NewConverter builds a Converter over the given cache.
func NewConverter(cache *RateCache) *Converter {
	return &Converter{cache: cache}
}

// Convert converts amount using fresh database rates when available. The
// cache refresh happens inside Rates; any fetch failure has already been
// swallowed there, so this never returns an error.
func (cv *Converter) Convert(ctx context.Context, amount decimal.Decimal, from, to string) decimal.Decimal {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)
	if from == to {
		return amount
	}
	if rate, ok := lookupPair(cv.cache.Rates(ctx), from, to); ok {
		return amount.Mul(rate).Round(2)
	}
	return Convert(amount, from, to)
}

// FormatWithCachedRates formats amount converted into displayCurrency as
// "{converted} ({original})", reading only what is already cached (no
// fetch). Rendering paths cannot await a refresh mid-render, so this trades
// a staleness window for a non-blocking read. An empty expense currency is a
// data problem, not a panic: the amount is formatted in the display currency
// alone and a warning logged.
func (cv *Converter) FormatWithCachedRates(amount decimal.Decimal, expenseCurrency, displayCurrency string) string {
	if expenseCurrency == "" {
		slog.Warn("expense has no currency code, formatting in display currency", "display", displayCurrency)
		return Format(amount, displayCurrency)
	}
	expenseCurrency = strings.ToUpper(expenseCurrency)
	displayCurrency = strings.ToUpper(displayCurrency)
	if expenseCurrency == displayCurrency {
		return Format(amount, displayCurrency)
	}

	converted, ok := convertWithSnapshot(cv.cache.Snapshot(), amount, expenseCurrency, displayCurrency)
	if !ok {
		converted = Convert(amount, expenseCurrency, displayCurrency)
	}
	return Format(converted, displayCurrency) + " (" + Format(amount, expenseCurrency) + ")"
}

// FormatWithIndicator is FormatWithCachedRates plus input sanitization and a
// plausibility check: negative amounts render as zero, absurdly large
// amounts are flagged instead of converted, and conversions the validator
// rejects carry an inline "(check rate)" marker.
func (cv *Converter) FormatWithIndicator(amount decimal.Decimal, expenseCurrency, displayCurrency string) string {
	if amount.Sign() < 0 {
		slog.Warn("negative amount in display path, rendering zero", "amount", amount, "currency", expenseCurrency)
		amount = decimal.Zero
	}
	if amount.GreaterThan(maxPlausibleAmount) {
		slog.Warn("amount above plausibility threshold, skipping conversion", "amount", amount, "currency", expenseCurrency)
		return Format(amount, expenseCurrency) + amountErrorMarker
	}
	if expenseCurrency == "" || strings.EqualFold(expenseCurrency, displayCurrency) {
		return cv.FormatWithCachedRates(amount, expenseCurrency, displayCurrency)
	}

	expenseCurrency = strings.ToUpper(expenseCurrency)
	displayCurrency = strings.ToUpper(displayCurrency)
	converted, ok := convertWithSnapshot(cv.cache.Snapshot(), amount, expenseCurrency, displayCurrency)
	if !ok {
		converted = Convert(amount, expenseCurrency, displayCurrency)
	}
	out := Format(converted, displayCurrency) + " (" + Format(amount, expenseCurrency) + ")"
	if amount.Sign() > 0 && !IsReasonableConversion(amount, converted, expenseCurrency, displayCurrency) {
		out += checkRateMarker
	}
	return out
}

// convertWithSnapshot applies the direct-then-pivot lookup order against an
// already-fetched rate map and rounds to cent precision.
func convertWithSnapshot(rates map[string]decimal.Decimal, amount decimal.Decimal, from, to string) (decimal.Decimal, bool) {
	rate, ok := lookupPair(rates, from, to)
	if !ok {
		return decimal.Zero, false
	}
	return amount.Mul(rate).Round(2), true
}

// lookupPair finds a multiplicative from->to rate: first the direct pair,
// then a two-hop path through the base currency.
func lookupPair(rates map[string]decimal.Decimal, from, to string) (decimal.Decimal, bool) {
	if rate, ok := rates[PairKey(from, to)]; ok && rate.Sign() > 0 {
		return rate, true
	}
	toBase, ok1 := rates[PairKey(from, BaseCode)]
	fromBase, ok2 := rates[PairKey(BaseCode, to)]
	if ok1 && ok2 && toBase.Sign() > 0 && fromBase.Sign() > 0 {
		return toBase.Mul(fromBase), true
	}
	return decimal.Zero, false
}

package currency

import (
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
)

// BaseCode is the anchor of the static rate table and the pivot for two-hop
// cached conversions: every static rate means "1 USD = rate units".
const BaseCode = "USD"

// staticRates is the fallback exchange rate table used when no fresh
// database rate is available. The base currency's own rate is exactly 1.
var staticRates = map[string]decimal.Decimal{
	"USD": decimal.NewFromInt(1),
	"EUR": decimal.RequireFromString("0.92"),
	"GBP": decimal.RequireFromString("0.79"),
	"JPY": decimal.RequireFromString("150"),
	"NPR": decimal.RequireFromString("140"),
	"INR": decimal.RequireFromString("83.5"),
	"AUD": decimal.RequireFromString("1.52"),
	"CAD": decimal.RequireFromString("1.36"),
	"CHF": decimal.RequireFromString("0.88"),
	"CNY": decimal.RequireFromString("7.24"),
	"KRW": decimal.RequireFromString("1350"),
	"SGD": decimal.RequireFromString("1.34"),
}

// StaticRate returns the static "1 USD = rate" entry for code.
func StaticRate(code string) (decimal.Decimal, bool) {
	r, ok := staticRates[strings.ToUpper(code)]
	return r, ok
}

// Convert converts amount between two currency codes using the static
// fallback table. See ConvertWithRates for the conversion rules.
func Convert(amount decimal.Decimal, from, to string) decimal.Decimal {
	return ConvertWithRates(amount, from, to, staticRates)
}

// ConvertWithRates converts amount from one currency to another using the
// given "1 base-unit = rate target-units" table. Identity pairs return the
// amount untouched, skipping rate lookup entirely so no rounding noise is
// introduced. Missing rate entries are not an error: the amount is returned
// unchanged with a logged warning, because a render must not block on a data
// gap. Results are rounded to cent precision; display formatting rounds
// again to the target currency's own digits.
func ConvertWithRates(amount decimal.Decimal, from, to string, rates map[string]decimal.Decimal) decimal.Decimal {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)
	if from == to {
		return amount
	}

	fromRate, fromOK := rates[from]
	toRate, toOK := rates[to]

	switch {
	case from == BaseCode:
		if !toOK || toRate.Sign() <= 0 {
			slog.Warn("missing exchange rate, returning amount unconverted", "from", from, "to", to)
			return amount
		}
		return amount.Mul(toRate).Round(2)
	case to == BaseCode:
		if !fromOK || fromRate.Sign() <= 0 {
			slog.Warn("missing exchange rate, returning amount unconverted", "from", from, "to", to)
			return amount
		}
		return amount.Div(fromRate).Round(2)
	default:
		if !fromOK || !toOK || fromRate.Sign() <= 0 || toRate.Sign() <= 0 {
			slog.Warn("missing exchange rate, returning amount unconverted", "from", from, "to", to)
			return amount
		}
		// Cross rate: source -> base, then base -> target.
		return amount.Div(fromRate).Mul(toRate).Round(2)
	}
}

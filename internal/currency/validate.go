package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Ratio bands for plausibility checking. A conversion whose converted/original
// ratio falls outside the band for its currency pair is flagged as a likely
// data error (wrong currency tag, corrupted rate) rather than genuine FX
// movement. Bands are keyed to currency classes, not derived from the static
// rate table; deriving them would change observable behavior and is a product
// decision, not a refactor.
var (
	// Currencies with very small unit value: one major unit of USD is
	// hundreds-plus of these, so wide ratios are legitimate.
	wideBandCodes = map[string]bool{"JPY": true, "KRW": true, "VND": true, "IDR": true}
	// Currencies where ratios around a hundred are legitimate.
	mediumBandCodes = map[string]bool{"INR": true, "NPR": true, "PKR": true, "LKR": true}
)

const (
	wideBandRatio   = 200.0
	mediumBandRatio = 150.0
	narrowBandRatio = 5.0

	// The generous side of each band is relaxed 2x and the strict side
	// halved, so borderline genuine conversions don't false-positive.
	bandMargin = 2.0

	sameCurrencyTolerance = 0.01
)

// IsReasonableConversion reports whether a conversion result is consistent
// with expected exchange rate magnitudes for the pair. It is a heuristic for
// catching gross errors, not a validation of real-world FX rates.
func IsReasonableConversion(original, converted decimal.Decimal, from, to string) bool {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	if from == to {
		return converted.Sub(original).Abs().LessThanOrEqual(decimal.NewFromFloat(sameCurrencyTolerance))
	}
	if converted.Sign() <= 0 || original.Sign() <= 0 {
		return false
	}

	ratio, _ := converted.Div(original).Float64()

	band := narrowBandRatio
	switch {
	case wideBandCodes[from] || wideBandCodes[to]:
		band = wideBandRatio
	case mediumBandCodes[from] || mediumBandCodes[to]:
		band = mediumBandRatio
	}

	upper := band * bandMargin
	lower := (1.0 / band) / bandMargin
	return ratio >= lower && ratio <= upper
}

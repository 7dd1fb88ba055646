package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestConvert_Identity(t *testing.T) {
	for _, c := range List() {
		amount := decimal.RequireFromString("123.456789")
		got := Convert(amount, c.Code, c.Code)
		assert.True(t, got.Equal(amount), "identity conversion for %s must return the amount untouched", c.Code)
	}
}

func TestConvert_FromBase(t *testing.T) {
	// 100 USD at static NPR rate 140.
	got := Convert(decimal.NewFromInt(100), "USD", "NPR")
	assert.True(t, got.Equal(decimal.NewFromInt(14000)), "got %s", got)
}

func TestConvert_ToBase(t *testing.T) {
	// 13200 NPR back to USD: 13200/140 rounded to cents.
	got := Convert(decimal.NewFromInt(13200), "NPR", "USD")
	assert.True(t, got.Equal(decimal.RequireFromString("94.29")), "got %s", got)
}

func TestConvert_BaseMultiplicativity(t *testing.T) {
	amount := decimal.NewFromInt(250)
	for _, c := range List() {
		if c.Code == BaseCode {
			continue
		}
		rate, ok := StaticRate(c.Code)
		assert.True(t, ok, "every registered currency needs a static rate")

		fromBase := Convert(amount, BaseCode, c.Code)
		assert.True(t, fromBase.Equal(amount.Mul(rate).Round(2)), "%s: got %s", c.Code, fromBase)

		toBase := Convert(amount, c.Code, BaseCode)
		assert.True(t, toBase.Equal(amount.Div(rate).Round(2)), "%s: got %s", c.Code, toBase)
	}
}

func TestConvert_CrossRate(t *testing.T) {
	// EUR -> NPR routes through USD: 92 EUR / 0.92 * 140 = 14000 NPR.
	got := Convert(decimal.NewFromInt(92), "EUR", "NPR")
	assert.True(t, got.Equal(decimal.NewFromInt(14000)), "got %s", got)
}

func TestConvert_RoundTripTolerance(t *testing.T) {
	amounts := []decimal.Decimal{
		decimal.RequireFromString("0.01"),
		decimal.NewFromInt(1),
		decimal.RequireFromString("99.99"),
		decimal.NewFromInt(12345),
	}
	tolerance := decimal.RequireFromString("0.02")
	for _, a := range amounts {
		for _, c1 := range List() {
			for _, c2 := range List() {
				there := Convert(a, c1.Code, c2.Code)
				back := Convert(there, c2.Code, c1.Code)
				drift := back.Sub(a).Abs()
				assert.True(t, drift.LessThanOrEqual(tolerance),
					"%s -> %s -> %s drifted %s on %s", c1.Code, c2.Code, c1.Code, drift, a)
			}
		}
	}
}

func TestConvertWithRates_MissingRatePassthrough(t *testing.T) {
	rates := map[string]decimal.Decimal{"USD": decimal.NewFromInt(1)}
	amount := decimal.RequireFromString("42.42")

	// Target missing from the table: amount comes back unchanged.
	assert.True(t, ConvertWithRates(amount, "USD", "XXX", rates).Equal(amount))
	// Source missing.
	assert.True(t, ConvertWithRates(amount, "XXX", "USD", rates).Equal(amount))
	// Both sides missing on a cross pair.
	assert.True(t, ConvertWithRates(amount, "XXX", "YYY", rates).Equal(amount))
}

func TestConvertWithRates_CustomRates(t *testing.T) {
	rates := map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.RequireFromString("0.5"),
	}
	got := ConvertWithRates(decimal.NewFromInt(10), "USD", "EUR", rates)
	assert.True(t, got.Equal(decimal.NewFromInt(5)), "got %s", got)
}

func TestStaticRates_BaseIsOne(t *testing.T) {
	rate, ok := StaticRate(BaseCode)
	assert.True(t, ok)
	assert.True(t, rate.Equal(decimal.NewFromInt(1)))
	for _, c := range List() {
		r, ok := StaticRate(c.Code)
		assert.True(t, ok)
		assert.True(t, r.Sign() > 0, "rate for %s must be positive", c.Code)
	}
}

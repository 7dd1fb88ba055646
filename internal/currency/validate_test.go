package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsReasonableConversion_SameCurrency(t *testing.T) {
	a := decimal.NewFromInt(100)
	assert.True(t, IsReasonableConversion(a, decimal.RequireFromString("100.005"), "USD", "USD"))
	assert.False(t, IsReasonableConversion(a, decimal.RequireFromString("100.02"), "USD", "USD"))
}

func TestIsReasonableConversion_DegenerateValues(t *testing.T) {
	a := decimal.NewFromInt(100)
	assert.False(t, IsReasonableConversion(a, decimal.Zero, "USD", "EUR"))
	assert.False(t, IsReasonableConversion(a, decimal.NewFromInt(-5), "USD", "EUR"))
	assert.False(t, IsReasonableConversion(decimal.Zero, decimal.NewFromInt(5), "USD", "EUR"))
}

func TestIsReasonableConversion_NarrowBand(t *testing.T) {
	a := decimal.NewFromInt(100)
	// Within ±5x (relaxed 2x upward): ratio 8 passes, ratio 500 does not.
	assert.True(t, IsReasonableConversion(a, decimal.NewFromInt(800), "USD", "EUR"))
	assert.False(t, IsReasonableConversion(a, decimal.NewFromInt(50000), "USD", "EUR"))
	// Strict side halved: ratio 0.11 passes, ratio 0.01 does not.
	assert.True(t, IsReasonableConversion(a, decimal.NewFromInt(11), "USD", "EUR"))
	assert.False(t, IsReasonableConversion(a, decimal.NewFromInt(1), "USD", "EUR"))
}

func TestIsReasonableConversion_WideBandForSmallUnitCurrencies(t *testing.T) {
	a := decimal.NewFromInt(100)
	// Ratio 350 is within the wide JPY band after margin; the same ratio
	// would fail the narrow band by a mile.
	assert.True(t, IsReasonableConversion(a, decimal.NewFromInt(35000), "USD", "JPY"))
	assert.False(t, IsReasonableConversion(a, decimal.NewFromInt(35000), "USD", "EUR"))
	// Even the wide band has a ceiling.
	assert.False(t, IsReasonableConversion(a, decimal.NewFromInt(100000), "USD", "JPY"))
	// Direction is symmetric: JPY on either side selects the wide band.
	assert.True(t, IsReasonableConversion(decimal.NewFromInt(35000), a, "JPY", "USD"))
}

func TestIsReasonableConversion_MediumBand(t *testing.T) {
	a := decimal.NewFromInt(100)
	// NPR static rate is ~140: ratio 140 sits inside the medium band.
	assert.True(t, IsReasonableConversion(a, decimal.NewFromInt(14000), "USD", "NPR"))
	assert.True(t, IsReasonableConversion(a, decimal.NewFromInt(8350), "USD", "INR"))
	assert.False(t, IsReasonableConversion(a, decimal.NewFromInt(50000), "USD", "NPR"))
}

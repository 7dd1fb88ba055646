// Package currency implements the multi-currency display and conversion
// engine: a static registry of display metadata, a static fallback exchange
// rate table anchored at USD, a time-bound cache of externally supplied
// rates, and plausibility checks on conversion results.
//
// The package follows a "never crash a render" policy: unknown currency
// codes, missing rates and malformed cached entries degrade to the best
// available fallback and log a warning instead of returning an error.
package currency

import (
	"sort"
	"strings"
)

// Currency holds the static display metadata for one currency code.
type Currency struct {
	Code                        string `json:"code"`
	Name                        string `json:"name"`
	Symbol                      string `json:"symbol"`
	DecimalDigits               int    `json:"decimalDigits"`
	SymbolOnLeft                bool   `json:"symbolOnLeft"`
	SpaceBetweenAmountAndSymbol bool   `json:"spaceBetweenAmountAndSymbol"`
	DecimalSeparator            string `json:"decimalSeparator"`
	ThousandsSeparator          string `json:"thousandsSeparator"`
}

// DefaultCode is the currency used when an unknown code is requested.
const DefaultCode = "USD"

// registry is loaded once and never mutated. Every code referenced anywhere
// else in the system should exist here; ByCode degrades to DefaultCode when
// one does not.
var registry = map[string]Currency{
	"USD": {Code: "USD", Name: "US Dollar", Symbol: "$", DecimalDigits: 2, SymbolOnLeft: true, DecimalSeparator: ".", ThousandsSeparator: ","},
	"EUR": {Code: "EUR", Name: "Euro", Symbol: "€", DecimalDigits: 2, SymbolOnLeft: false, SpaceBetweenAmountAndSymbol: true, DecimalSeparator: ",", ThousandsSeparator: "."},
	"GBP": {Code: "GBP", Name: "British Pound", Symbol: "£", DecimalDigits: 2, SymbolOnLeft: true, DecimalSeparator: ".", ThousandsSeparator: ","},
	"JPY": {Code: "JPY", Name: "Japanese Yen", Symbol: "¥", DecimalDigits: 0, SymbolOnLeft: true, DecimalSeparator: ".", ThousandsSeparator: ","},
	"NPR": {Code: "NPR", Name: "Nepalese Rupee", Symbol: "रू", DecimalDigits: 2, SymbolOnLeft: true, SpaceBetweenAmountAndSymbol: true, DecimalSeparator: ".", ThousandsSeparator: ","},
	"INR": {Code: "INR", Name: "Indian Rupee", Symbol: "₹", DecimalDigits: 2, SymbolOnLeft: true, DecimalSeparator: ".", ThousandsSeparator: ","},
	"AUD": {Code: "AUD", Name: "Australian Dollar", Symbol: "A$", DecimalDigits: 2, SymbolOnLeft: true, DecimalSeparator: ".", ThousandsSeparator: ","},
	"CAD": {Code: "CAD", Name: "Canadian Dollar", Symbol: "C$", DecimalDigits: 2, SymbolOnLeft: true, DecimalSeparator: ".", ThousandsSeparator: ","},
	"CHF": {Code: "CHF", Name: "Swiss Franc", Symbol: "CHF", DecimalDigits: 2, SymbolOnLeft: true, SpaceBetweenAmountAndSymbol: true, DecimalSeparator: ".", ThousandsSeparator: "'"},
	"CNY": {Code: "CNY", Name: "Chinese Yuan", Symbol: "¥", DecimalDigits: 2, SymbolOnLeft: true, DecimalSeparator: ".", ThousandsSeparator: ","},
	"KRW": {Code: "KRW", Name: "South Korean Won", Symbol: "₩", DecimalDigits: 0, SymbolOnLeft: true, DecimalSeparator: ".", ThousandsSeparator: ","},
	"SGD": {Code: "SGD", Name: "Singapore Dollar", Symbol: "S$", DecimalDigits: 2, SymbolOnLeft: true, DecimalSeparator: ".", ThousandsSeparator: ","},
}

// ByCode returns the registry entry for code, falling back to the default
// currency when the code is unknown. Malformed or unsupported codes must
// never break rendering, so no error is returned.
func ByCode(code string) Currency {
	if c, ok := registry[strings.ToUpper(code)]; ok {
		return c
	}
	return registry[DefaultCode]
}

// IsSupported reports whether code has a registry entry.
func IsSupported(code string) bool {
	_, ok := registry[strings.ToUpper(code)]
	return ok
}

// List returns all registry entries sorted by code.
func List() []Currency {
	out := make([]Currency, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

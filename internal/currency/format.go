package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Format renders amount as a display string for the given currency code:
// fixed decimal digits, thousands grouping and the configured symbol
// placement. Zero-decimal currencies (JPY, KRW) omit the fractional part and
// separator entirely.
func Format(amount decimal.Decimal, code string) string {
	cur := ByCode(code)

	negative := amount.Sign() < 0
	fixed := amount.Abs().StringFixed(int32(cur.DecimalDigits))

	intPart := fixed
	fracPart := ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, fracPart = fixed[:i], fixed[i+1:]
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	digits := groupThousands(intPart, cur.ThousandsSeparator)
	if cur.DecimalDigits > 0 {
		digits += cur.DecimalSeparator + fracPart
	}

	space := ""
	if cur.SpaceBetweenAmountAndSymbol {
		space = " "
	}
	if cur.SymbolOnLeft {
		b.WriteString(cur.Symbol)
		b.WriteString(space)
		b.WriteString(digits)
	} else {
		b.WriteString(digits)
		b.WriteString(space)
		b.WriteString(cur.Symbol)
	}
	return b.String()
}

// groupThousands inserts sep every three digits, right to left.
func groupThousands(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

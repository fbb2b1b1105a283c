// Package format renders amounts and user-facing strings.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	maxCoinDecimals   = 8
	coinSignificant   = 4
	wholeCoinDecimals = 4
)

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
	billion  = decimal.NewFromInt(1_000_000_000)
	trillion = decimal.NewFromInt(1_000_000_000_000)
)

// NumberFormatter formats fiat and coin amounts for a locale.
// It holds no mutable state and is safe for concurrent use.
type NumberFormatter struct {
	group   string
	decimal string
}

// NewNumberFormatter creates a formatter for the given locale.
func NewNumberFormatter(tag language.Tag) *NumberFormatter {
	group, dec := separators(message.NewPrinter(tag))
	return &NumberFormatter{group: group, decimal: dec}
}

// separators reads the locale's grouping and decimal marks off a sample
// rendering. Locales with non-Latin digits keep the English marks.
func separators(p *message.Printer) (group, dec string) {
	sample := p.Sprint(number.Decimal(1234.5, number.MinFractionDigits(1), number.MaxFractionDigits(1)))
	i := strings.Index(sample, "234")
	if !strings.HasPrefix(sample, "1") || i < 1 || !strings.HasSuffix(sample, "5") || len(sample) < i+4 {
		return ",", "."
	}
	return sample[1:i], sample[i+3 : len(sample)-1]
}

// FormatFiat formats value prefixed with the currency symbol.
func (f *NumberFormatter) FormatFiat(value decimal.Decimal, symbol string, minDigits, maxDigits int) string {
	return symbol + f.formatNumber(value, minDigits, maxDigits)
}

// FormatCoin formats value followed by the coin code.
func (f *NumberFormatter) FormatCoin(value decimal.Decimal, code string, minDigits, maxDigits int) string {
	return f.formatNumber(value, minDigits, maxDigits) + " " + code
}

// FormatFiatShort formats large fiat values with a K/M/B/T suffix.
func (f *NumberFormatter) FormatFiatShort(value decimal.Decimal, symbol string, maxDigits int) string {
	abs := value.Abs()
	var (
		divisor decimal.Decimal
		suffix  string
	)

	switch {
	case abs.GreaterThanOrEqual(trillion):
		divisor, suffix = trillion, "T"
	case abs.GreaterThanOrEqual(billion):
		divisor, suffix = billion, "B"
	case abs.GreaterThanOrEqual(million):
		divisor, suffix = million, "M"
	case abs.GreaterThanOrEqual(thousand):
		divisor, suffix = thousand, "K"
	default:
		return f.FormatFiat(value, symbol, 0, maxDigits)
	}

	return symbol + f.formatNumber(value.Div(divisor), 0, maxDigits) + suffix
}

// FormatPercent formats a percentage with an explicit sign.
func (f *NumberFormatter) FormatPercent(value decimal.Decimal, maxDigits int) string {
	sign := "+"
	if value.IsNegative() {
		sign = "-"
	}
	return sign + f.formatNumber(value.Abs(), 0, maxDigits) + "%"
}

// SignificantDecimalCoin returns how many fraction digits keep a coin amount
// readable: whole amounts show four, fractions keep four significant digits
// after their leading zeros, capped at eight.
func (f *NumberFormatter) SignificantDecimalCoin(value decimal.Decimal) int {
	abs := value.Abs()
	if abs.IsZero() || abs.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return wholeCoinDecimals
	}

	fraction := abs.String()
	if i := strings.IndexByte(fraction, '.'); i >= 0 {
		fraction = fraction[i+1:]
	}
	zeros := len(fraction) - len(strings.TrimLeft(fraction, "0"))

	digits := zeros + coinSignificant
	if digits > maxCoinDecimals {
		digits = maxCoinDecimals
	}
	return digits
}

// formatNumber renders value from its decimal digits so amounts beyond
// float64 precision keep every digit.
func (f *NumberFormatter) formatNumber(value decimal.Decimal, minDigits, maxDigits int) string {
	if maxDigits < minDigits {
		maxDigits = minDigits
	}
	rounded := value.Round(int32(maxDigits))

	whole, fraction, _ := strings.Cut(rounded.Abs().StringFixed(int32(maxDigits)), ".")
	fraction = strings.TrimRight(fraction, "0")
	if len(fraction) < minDigits {
		fraction += strings.Repeat("0", minDigits-len(fraction))
	}

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(f.group)
		}
		b.WriteRune(digit)
	}
	if fraction != "" {
		b.WriteString(f.decimal)
		b.WriteString(fraction)
	}
	return b.String()
}

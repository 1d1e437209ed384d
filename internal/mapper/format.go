// =============================================================================
// ORAE Bridge - Field Formatting
// =============================================================================
//
// Legacy fields are fixed width. Amounts are written as an unsigned count of
// cents, left padded with zeros, with the sign carried in a separate field:
//
//   "19.99"  -> ("000001999", "")
//   "-5.00"  -> ("000000500", "-")
//   ""       -> ("", "")
//
// Rounding is half away from zero.
//
// =============================================================================

package mapper

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// parseDecimal parses a decimal string, tolerating surrounding whitespace.
func parseDecimal(value string) (decimal.Decimal, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// EncodeAmount writes d as a zero-padded cent magnitude plus sign.
//
// PARAMETERS:
//   - d: The amount in currency units.
//   - width: The minimum width of the magnitude. Longer values are not cut.
//
// RETURNS:
//   - The magnitude and "-" for negative amounts, "" otherwise.
func EncodeAmount(d decimal.Decimal, width int) (string, string) {
	cents := d.Abs().Mul(hundred).Round(0)
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return padLeft(cents.String(), width, '0'), sign
}

// decodeAmount reverses EncodeAmount. A blank magnitude decodes to zero.
func decodeAmount(magnitude, sign string) (decimal.Decimal, error) {
	magnitude = strings.TrimSpace(magnitude)
	if magnitude == "" {
		return decimal.Zero, nil
	}
	for _, r := range magnitude {
		if r < '0' || r > '9' {
			return decimal.Zero, errors.New("amount magnitude must be digits only: " + magnitude)
		}
	}
	cents, err := decimal.NewFromString(magnitude)
	if err != nil {
		return decimal.Zero, err
	}
	d := cents.Div(hundred)
	if sign == "-" {
		d = d.Neg()
	}
	return d, nil
}

// formatCurrency encodes a decimal string. Blank input gives blank output;
// unparseable input is logged and also gives blank output.
func (m *Mapper) formatCurrency(value string, width int) (string, string) {
	if value == "" {
		return "", ""
	}
	d, ok := parseDecimal(value)
	if !ok {
		m.logger.Warn("unable to parse amount %q, leaving field blank", value)
		return "", ""
	}
	return EncodeAmount(d, width)
}

// isZeroOrEmpty treats blank and unparseable values as zero.
func (m *Mapper) isZeroOrEmpty(value string) bool {
	if value == "" {
		return true
	}
	d, ok := parseDecimal(value)
	if !ok {
		m.logger.Warn("unable to parse amount %q, treating as zero", value)
		return true
	}
	return d.IsZero()
}

// =============================================================================
// PADDING
// =============================================================================

// padOrTruncate fits value to length, padding right with spaces.
// Blank stays blank.
func padOrTruncate(value string, length int) string {
	if value == "" {
		return ""
	}
	r := []rune(value)
	if len(r) > length {
		return string(r[:length])
	}
	return padRight(value, length, ' ')
}

// padNumeric fits value to length, padding left with zeros.
// Blank stays blank.
func padNumeric(value string, length int) string {
	if value == "" {
		return ""
	}
	r := []rune(value)
	if len(r) > length {
		return string(r[:length])
	}
	return padLeft(value, length, '0')
}

// padLeft pads s on the left to length. It never truncates.
func padLeft(s string, length int, padChar rune) string {
	n := length - len([]rune(s))
	if n <= 0 {
		return s
	}
	return strings.Repeat(string(padChar), n) + s
}

// padRight pads s on the right to length. It never truncates.
func padRight(s string, length int, padChar rune) string {
	n := length - len([]rune(s))
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(string(padChar), n)
}

// lastRunes returns the rightmost n runes of s.
func lastRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

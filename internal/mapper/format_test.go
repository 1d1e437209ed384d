package mapper

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLogger keeps warnings for assertions.
type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Warn(msg string, args ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(msg, args...))
}

func TestFormatCurrency_RoundTrip(t *testing.T) {
	tests := []struct {
		value     string
		magnitude string
		sign      string
		want      string
	}{
		{"19.99", "000001999", "", "19.99"},
		{"-5.00", "000000500", "-", "-5"},
		{"0.00", "000000000", "", "0"},
		{"0.005", "000000001", "", "0.01"},
		{"-0.005", "000000001", "-", "-0.01"},
		{"", "", "", "0"},
	}

	m := New()
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			magnitude, sign := m.formatCurrency(tt.value, 9)
			assert.Equal(t, tt.magnitude, magnitude)
			assert.Equal(t, tt.sign, sign)

			decoded, err := decodeAmount(magnitude, sign)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(decoded), "decoded %s", decoded)
		})
	}
}

func TestFormatCurrency_Unparseable(t *testing.T) {
	logger := &recordingLogger{}
	m := New(WithLogger(logger))

	magnitude, sign := m.formatCurrency("12,34", 9)
	assert.Empty(t, magnitude)
	assert.Empty(t, sign)
	require.Len(t, logger.warnings, 1)
	assert.Contains(t, logger.warnings[0], `"12,34"`)
}

func TestEncodeAmount_WidthIsMinimum(t *testing.T) {
	magnitude, sign := EncodeAmount(decimal.RequireFromString("12345678.90"), 9)
	assert.Equal(t, "1234567890", magnitude)
	assert.Empty(t, sign)
}

func TestDecodeAmount_RejectsNonDigits(t *testing.T) {
	_, err := decodeAmount("12.34", "")
	assert.Error(t, err)
}

func TestIsZeroOrEmpty(t *testing.T) {
	logger := &recordingLogger{}
	m := New(WithLogger(logger))

	assert.True(t, m.isZeroOrEmpty(""))
	assert.True(t, m.isZeroOrEmpty("0.00"))
	assert.False(t, m.isZeroOrEmpty("-0.01"))
	assert.Empty(t, logger.warnings)

	assert.True(t, m.isZeroOrEmpty("n/a"))
	assert.Len(t, logger.warnings, 1)
}

func TestPadding(t *testing.T) {
	assert.Equal(t, "", padOrTruncate("", 4))
	assert.Equal(t, "EMP ", padOrTruncate("EMP", 4))
	assert.Equal(t, "ABCD", padOrTruncate("ABCDEF", 4))

	assert.Equal(t, "", padNumeric("", 5))
	assert.Equal(t, "00012", padNumeric("12", 5))
	assert.Equal(t, "12345", padNumeric("1234567", 5))

	assert.Equal(t, "0062000000123", padLeft(lastRunes("0062000000123", 13), 13, '0'))
	assert.Equal(t, "2000000000123", lastRunes("12000000000123", 13))
}

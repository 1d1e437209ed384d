package validation

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViolations(t *testing.T) {
	var v Violations
	assert.Equal(t, []string{}, v.List())

	assert.True(t, v.RequireString("eventId", "abc"))
	assert.False(t, v.RequireString("eventType", ""))
	assert.True(t, v.RequireString("channel", " "))
	assert.False(t, v.RequireObject("businessContext", false))
	v.Addf("%s must be one of %v", "channel", []string{"STORE"})

	list := v.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{
		"Missing required field: eventType",
		"Missing required object: businessContext",
		"channel must be one of [STORE]",
	}, list)

	list[0] = "changed"
	assert.Equal(t, "Missing required field: eventType", v.List()[0])
}

func TestPatternsAndHelpers(t *testing.T) {
	assert.True(t, CurrencyPattern.MatchString("CAD"))
	assert.False(t, CurrencyPattern.MatchString("cad"))
	assert.True(t, DecimalPattern.MatchString("-19.9900"))
	assert.False(t, DecimalPattern.MatchString("19.99999"))

	assert.True(t, IsBlank(" \t"))
	assert.False(t, IsBlank(" x "))
	assert.True(t, OneOf("SALE", []string{"SALE", "RETURN"}))
	assert.False(t, OneOf("sale", []string{"SALE"}))
}

func TestFormatErrors(t *testing.T) {
	assert.Equal(t, "No validation errors.", FormatErrors(nil))
	assert.Equal(t, "Validation completed with 2 error(s):\n\n1. a\n2. b\n", FormatErrors([]string{"a", "b"}))
}

func TestWriteErrorLog(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteErrorLog([]string{"Missing required field: eventId"}, dir, "sale.json")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Source: sale.json")
	assert.Contains(t, string(data), "1. Missing required field: eventId")
}

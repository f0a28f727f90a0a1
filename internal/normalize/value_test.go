package normalize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_LocaleFormats(t *testing.T) {
	cases := map[string]float64{
		"1.234,56": 1234.56,
		"1234.56":  1234.56,
		"1.000,5":  1000.5,
		"1.000":    1000,
		"1,5":      1.5,
		"1.2345":   1.2345,
		"-1.234,5": -1234.5,
		" 12 345,5 ": 12345.5,
		"42":       42,
	}
	for input, want := range cases {
		got := Number(input)
		require.NotNil(t, got, "input %q", input)
		assert.InDelta(t, want, *got, 1e-9, "input %q", input)
	}
}

func TestNumber_Invalid(t *testing.T) {
	for _, input := range []string{"abc", "", "1.2.3,4", "12,34,56"} {
		assert.Nil(t, Number(input), "input %q", input)
	}
	assert.Nil(t, Number(nil))
	assert.Nil(t, Number(true))
	assert.Nil(t, Number(math.NaN()))
	assert.Nil(t, Number(math.Inf(1)))
}

func TestNumber_AlreadyNumeric(t *testing.T) {
	got := Number(12.5)
	require.NotNil(t, got)
	assert.Equal(t, 12.5, *got)
}

func TestStr(t *testing.T) {
	got := Str("  hello ")
	require.NotNil(t, got)
	assert.Equal(t, "hello", *got)

	assert.Nil(t, Str(""))
	assert.Nil(t, Str("   "))
	assert.Nil(t, Str(nil))
	assert.Nil(t, Str(12.0))
}

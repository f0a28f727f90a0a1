package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flotta/internal/domain"
)

func TestCurrency_Known(t *testing.T) {
	cases := map[string]domain.Currency{
		"€":        domain.CurrencyEUR,
		"EUR":      domain.CurrencyEUR,
		"Euro":     domain.CurrencyEUR,
		"23,50 €":  domain.CurrencyEUR,
		"CHF":      domain.CurrencyCHF,
		"Fr. 20":   domain.CurrencyCHF,
		"Franchi":  domain.CurrencyCHF,
		"Franken":  domain.CurrencyCHF,
	}
	for input, want := range cases {
		got := Currency(input)
		require.NotNil(t, got, "input %q", input)
		assert.Equal(t, want, *got, "input %q", input)
	}
}

func TestCurrency_UnknownStaysUnknown(t *testing.T) {
	for _, input := range []string{"$", "USD", "lire", ""} {
		assert.Nil(t, Currency(input), "input %q", input)
	}
	assert.Nil(t, Currency(nil))
}

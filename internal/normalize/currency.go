package normalize

import (
	"strings"

	"flotta/internal/domain"
)

// Currency pattern-matches the currency symbol or code. Ambiguous or absent
// input yields nil (unknown), which is a review trigger downstream, not an
// error.
func Currency(v any) *domain.Currency {
	s := Str(v)
	if s == nil {
		return nil
	}
	val := strings.ToLower(*s)

	switch {
	case strings.Contains(val, "€"),
		strings.Contains(val, "eur"):
		return currencyPtr(domain.CurrencyEUR)
	case strings.Contains(val, "chf"),
		strings.Contains(val, "fr."),
		strings.Contains(val, "franchi"),
		strings.Contains(val, "franken"):
		return currencyPtr(domain.CurrencyCHF)
	}
	return nil
}

func currencyPtr(c domain.Currency) *domain.Currency {
	return &c
}

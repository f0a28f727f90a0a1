// Package normalize converts the model's loosely-structured answer into
// typed, canonical values. Nothing in this package returns an error: absent
// or garbled input degrades to nil plus a review flag, because the end user
// must always get a record to correct rather than a hard failure.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Str trims a raw string value; empty or non-string input coalesces to nil.
func Str(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// thousandsDot matches a number whose single dot is a thousands separator:
// followed by exactly three digits and no further separator.
var thousandsDot = regexp.MustCompile(`^(-?\d+)\.(\d{3})(,\d+)?$`)

// Number parses a locale-ambiguous numeric value, disambiguating `.` and `,`
// as decimal vs thousands separators. A naive comma-then-dot replacement
// corrupts values like "1.234,56", so the single thousands dot is stripped
// first and only then is the comma treated as a decimal point.
func Number(v any) *float64 {
	switch n := v.(type) {
	case float64:
		return finite(n)
	case int:
		f := float64(n)
		return &f
	case string:
		return parseLocaleNumber(n)
	}
	return nil
}

func parseLocaleNumber(s string) *float64 {
	s = strings.Join(strings.Fields(s), "")
	if m := thousandsDot.FindStringSubmatch(s); m != nil {
		s = m[1] + m[2] + m[3]
	}
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return finite(f)
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// intIndex reads a positive integer row index; anything else is unusable.
func intIndex(v any) *int {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || f < 1 {
		return nil
	}
	i := int(f)
	return &i
}

func boolVal(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

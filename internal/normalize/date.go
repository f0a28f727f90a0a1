package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
)

const canonicalDateLayout = "02/01/2006"

var (
	dayFirstDate = regexp.MustCompile(`^(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{2}|\d{4})$`)
	isoDate      = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
)

// Date normalizes a raw date value to canonical dd/mm/yyyy. Accepted inputs:
// dd/mm/yyyy, dd-mm-yyyy, dd.mm.yyyy (2- or 4-digit year, 2-digit assumed
// 20xx) and ISO yyyy-mm-dd. Every candidate is validated by round-tripping
// through calendar construction, rejecting impossible dates like 31/02. A
// generic parse is tried only when no pattern matched; total failure returns
// nil, never a guess.
func Date(v any) *string {
	s := Str(v)
	if s == nil {
		return nil
	}

	if m := dayFirstDate.FindStringSubmatch(*s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}
		return calendarDate(year, month, day)
	}

	if m := isoDate.FindStringSubmatch(*s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return calendarDate(year, month, day)
	}

	if t, err := dateparse.ParseAny(*s); err == nil {
		formatted := t.Format(canonicalDateLayout)
		return &formatted
	}
	return nil
}

// calendarDate builds the canonical string only when the constructed date's
// fields match the input; time.Date silently rolls 31/02 into March, which
// is exactly the guess this pipeline must not make.
func calendarDate(year, month, day int) *string {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return nil
	}
	formatted := fmt.Sprintf("%02d/%02d/%04d", day, month, year)
	return &formatted
}

// YearMonth derives the yyyy-mm bucket from a canonical dd/mm/yyyy date.
func YearMonth(date *string) *string {
	if date == nil {
		return nil
	}
	t, err := time.Parse(canonicalDateLayout, *date)
	if err != nil {
		return nil
	}
	ym := t.Format("2006-01")
	return &ym
}

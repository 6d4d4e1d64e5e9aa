package query

import (
	"strings"
	"time"

	"shiftboard.com/shiftboard/internal/constants"
)

// EndOfDay returns the last millisecond of t's calendar day in UTC.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), time.UTC)
}

// Available builds the exact-mode predicate used by the available-shift listing.
func Available(filters Filters, now time.Time) Predicate {
	p := base(filters, now)
	if filters.Location != "" {
		p.Location = &Match{Value: filters.Location, Mode: MatchExact}
	}
	if filters.JobType != "" {
		p.JobType = &Match{Value: filters.JobType, Mode: MatchExact}
	}
	return p
}

// OptionSearch builds the predicate for a distinct-value search on axis.
// The searched axis matches by substring and ignores its own selected value;
// the other axis keeps its selection in exact mode. The returned string is the
// currently selected value for axis, which the scan excludes so the caller can
// merge it back exactly once.
func OptionSearch(axis constants.FilterAxis, search string, filters Filters, now time.Time) (Predicate, string) {
	p := base(filters, now)
	search = strings.TrimSpace(search)

	var selected string
	switch axis {
	case constants.AxisLocation:
		selected = filters.Location
		if search != "" {
			p.Location = &Match{Value: search, Mode: MatchContains}
		}
		if filters.JobType != "" {
			p.JobType = &Match{Value: filters.JobType, Mode: MatchExact}
		}
		p.ExcludeLocation = selected
	case constants.AxisJobType:
		selected = filters.JobType
		if search != "" {
			p.JobType = &Match{Value: search, Mode: MatchContains}
		}
		if filters.Location != "" {
			p.Location = &Match{Value: filters.Location, Mode: MatchExact}
		}
		p.ExcludeJobType = selected
	}
	return p, selected
}

func base(filters Filters, now time.Time) Predicate {
	from := now.UTC()
	if filters.DateFrom != nil && filters.DateFrom.After(from) {
		from = filters.DateFrom.UTC()
	}

	p := Predicate{
		StartFrom:  from,
		PayRateMin: filters.PayRateMin,
	}
	if filters.DateTo != nil {
		until := EndOfDay(*filters.DateTo)
		p.StartUntil = &until
	}
	return p
}

// EscapeLike escapes LIKE metacharacters using backslash as the escape rune.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

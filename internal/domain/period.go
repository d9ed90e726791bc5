package domain

import "time"

// PeriodSelector is a symbolic time-window request.
type PeriodSelector string

const (
	PeriodAllTime   PeriodSelector = "all-time"
	PeriodThisYear  PeriodSelector = "this-year"
	PeriodThisMonth PeriodSelector = "this-month"
	PeriodCustom    PeriodSelector = "custom"
)

// ParsePeriodSelector validates a raw selector value at the boundary.
func ParsePeriodSelector(s string) (PeriodSelector, error) {
	sel := PeriodSelector(s)
	if !sel.Valid() {
		return "", ErrInvalidPeriod
	}

	return sel, nil
}

// Valid reports whether s is a member of the closed selector set.
func (s PeriodSelector) Valid() bool {
	switch s {
	case PeriodAllTime, PeriodThisYear, PeriodThisMonth, PeriodCustom:
		return true
	}
	return false
}

// DateRange is a concrete [Start, End] window. A nil bound means unbounded
// on that side; both nil means no filtering at all.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Unbounded reports whether the range filters nothing.
func (r DateRange) Unbounded() bool {
	return r.Start == nil && r.End == nil
}

// Contains reports whether t falls inside the range. Bounds are inclusive;
// nil bounds always pass.
func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}

	if r.End != nil && t.After(*r.End) {
		return false
	}

	return true
}

// ResolvePeriod maps a selector plus optional custom bounds to a concrete
// range, evaluated against now. Custom requests with incomplete or inverted
// bounds fall back to the unfiltered range rather than erroring.
func ResolvePeriod(sel PeriodSelector, now time.Time, customStart, customEnd *time.Time) DateRange {
	switch sel {
	case PeriodThisYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		end := time.Date(now.Year(), time.December, 31, 23, 59, 59, 0, now.Location())

		return DateRange{Start: &start, End: &end}

	case PeriodThisMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		// Day 0 of the next month is the last day of this one.
		end := time.Date(now.Year(), now.Month()+1, 0, 23, 59, 59, 0, now.Location())

		return DateRange{Start: &start, End: &end}

	case PeriodCustom:
		if customStart == nil || customEnd == nil || customEnd.Before(*customStart) {
			return DateRange{}
		}

		return DateRange{Start: customStart, End: customEnd}

	default:
		return DateRange{}
	}
}

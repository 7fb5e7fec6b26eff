// Package recurrence computes the next due date for recurring chores.
// Patterns are simple interval names rather than full RRULEs; the completion
// workflow advances the due date once per completion instead of expanding a
// calendar.
package recurrence

import (
	"strings"
	"time"
)

type Pattern string

const (
	Daily   Pattern = "DAILY"
	Weekly  Pattern = "WEEKLY"
	Monthly Pattern = "MONTHLY"
	Yearly  Pattern = "YEARLY"
)

// ParsePattern normalizes a stored pattern string, case-insensitively.
// ok is false for anything outside the four recognized values.
func ParsePattern(s string) (Pattern, bool) {
	switch p := Pattern(strings.ToUpper(strings.TrimSpace(s))); p {
	case Daily, Weekly, Monthly, Yearly:
		return p, true
	default:
		return "", false
	}
}

// Advance computes the next due date for a chore with the given due date and
// pattern. The base is the chore's due date, or today when it has none.
// Unrecognized patterns (ok=false) fall back to one day after the original
// due date — the today substitute is not applied there, matching the
// longstanding lenient behavior; callers should log a configuration warning.
func Advance(dueDate *time.Time, pattern string, today time.Time) (next time.Time, ok bool) {
	p, ok := ParsePattern(pattern)
	if !ok {
		if dueDate != nil {
			return dateOnly(*dueDate).AddDate(0, 0, 1), false
		}
		return dateOnly(today).AddDate(0, 0, 1), false
	}

	base := dateOnly(today)
	if dueDate != nil {
		base = dateOnly(*dueDate)
	}

	switch p {
	case Weekly:
		return base.AddDate(0, 0, 7), true
	case Monthly:
		return addMonths(base, 1), true
	case Yearly:
		return addMonths(base, 12), true
	default: // Daily
		return base.AddDate(0, 0, 1), true
	}
}

// addMonths advances by whole calendar months, clamping the day-of-month to
// the target month's last day (Jan 31 -> Feb 28/29). time.Time.AddDate would
// normalize the overflow into March instead.
func addMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	total := int(month) - 1 + n
	year += total / 12
	month = time.Month(total%12 + 1)

	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

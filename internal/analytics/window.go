// Package analytics turns a feed of transactions and category budgets into the
// numeric series behind every chart and export: window resolution, budget
// proration and grouping by category, day and month.
package analytics

import (
	"time"
)

const (
	// DefaultWindowDays is the length used when neither bound is given.
	DefaultWindowDays = 30
	// DaysPerMonth is the fixed month length budgets are prorated against.
	DaysPerMonth = 30
)

// EpochFloor is the implicit start of a window with only an upper bound and no
// transactions to anchor it.
var EpochFloor = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// Window is an inclusive range of calendar dates. A nil bound is open.
// Only the year, month and day of each bound are significant.
type Window struct {
	From *time.Time
	To   *time.Time
}

// NewWindow builds a validated window.
func NewWindow(from, to *time.Time) (Window, error) {
	w := Window{From: from, To: to}
	if err := w.Validate(); err != nil {
		return Window{}, err
	}

	return w, nil
}

// Between is a shorthand for a closed window.
func Between(from, to time.Time) Window {
	return Window{From: &from, To: &to}
}

func (w Window) Validate() error {
	if w.From != nil && w.To != nil && dateOf(*w.From).After(dateOf(*w.To)) {
		return invalid("date range", "'from_date' must be before 'to_date'")
	}

	return nil
}

// Bounds returns the first instant covered by the window and the first instant
// after it, both in loc. A zero time stands for an open side.
func (w Window) Bounds(loc *time.Location) (start, end time.Time) {
	if w.From != nil {
		y, m, d := w.From.Date()
		start = time.Date(y, m, d, 0, 0, 0, 0, loc)
	}

	if w.To != nil {
		y, m, d := w.To.Date()
		end = time.Date(y, m, d+1, 0, 0, 0, 0, loc)
	}

	return start, end
}

// Contains reports whether t falls on a covered calendar day in loc.
func (w Window) Contains(t time.Time, loc *time.Location) bool {
	start, end := w.Bounds(loc)
	if !start.IsZero() && t.Before(start) {
		return false
	}

	if !end.IsZero() && !t.Before(end) {
		return false
	}

	return true
}

// ResolveLength returns the number of days the window spans, counting both ends.
//
// An open From is anchored at first (the earliest transaction in the window) or
// EpochFloor. An open To is anchored at last (the latest transaction) or now.
// A window with no bounds is DefaultWindowDays long. Calendar dates are read
// in each value's own location, so callers pass first, last and now already
// converted to the reporting zone.
func ResolveLength(w Window, first, last *time.Time, now time.Time) (int, error) {
	if err := w.Validate(); err != nil {
		return 0, err
	}

	var start, end time.Time

	switch {
	case w.From != nil && w.To != nil:
		start, end = *w.From, *w.To
	case w.From != nil:
		start, end = *w.From, now
		if last != nil {
			end = *last
		}
	case w.To != nil:
		start, end = EpochFloor, *w.To
		if first != nil {
			start = *first
		}
	default:
		return DefaultWindowDays, nil
	}

	days := daysBetween(start, end) + 1
	if days <= 0 {
		return 0, invalid("window length", "resolved to %d days", days)
	}

	return days, nil
}

// DateRangeText is the human-readable label every chart and document uses for w.
func DateRangeText(w Window) string {
	switch {
	case w.From != nil && w.To != nil:
		from, to := formatDate(*w.From), formatDate(*w.To)
		if from == to {
			return "Date: " + from
		}

		return "Date Range: " + from + " to " + to
	case w.From != nil:
		return "Date Range: From " + formatDate(*w.From)
	case w.To != nil:
		return "Date Range: To " + formatDate(*w.To)
	}

	return "Date Range: All"
}

func formatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// dateOf drops the clock reading and zone, keeping the calendar date.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween works on Unix seconds: a Duration overflows past about 292
// years.
func daysBetween(a, b time.Time) int {
	return int((dateOf(b).Unix() - dateOf(a).Unix()) / 86400)
}

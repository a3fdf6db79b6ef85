package analytics

import "time"

// Timeframe is a named window relative to the current date.
type Timeframe int

const (
	TimeframeThisWeek Timeframe = iota
	TimeframeLastWeek
	TimeframeThisMonth
	TimeframeLastMonth
	TimeframeAll
)

// Timeframes lists the presets in menu order.
var Timeframes = []Timeframe{
	TimeframeThisWeek,
	TimeframeLastWeek,
	TimeframeThisMonth,
	TimeframeLastMonth,
	TimeframeAll,
}

func (t Timeframe) String() string {
	switch t {
	case TimeframeThisWeek:
		return "This Week"
	case TimeframeLastWeek:
		return "Last Week"
	case TimeframeThisMonth:
		return "This Month"
	case TimeframeLastMonth:
		return "Last Month"
	case TimeframeAll:
		return "All Time"
	}

	return "Unknown"
}

// Key is the short identifier used in commands and callback payloads.
func (t Timeframe) Key() string {
	switch t {
	case TimeframeThisWeek:
		return "week"
	case TimeframeLastWeek:
		return "lastweek"
	case TimeframeThisMonth:
		return "month"
	case TimeframeLastMonth:
		return "lastmonth"
	case TimeframeAll:
		return "all"
	}

	return ""
}

// ParseTimeframe is the inverse of Key.
func ParseTimeframe(key string) (Timeframe, bool) {
	for _, t := range Timeframes {
		if t.Key() == key {
			return t, true
		}
	}

	return 0, false
}

// Window resolves the preset against now. Weeks start on Monday.
func (t Timeframe) Window(now time.Time) Window {
	today := dateOf(now)

	offset := int(today.Weekday())
	if offset == 0 {
		offset = 7
	}

	switch t {
	case TimeframeThisWeek:
		return Between(today.AddDate(0, 0, 1-offset), today)
	case TimeframeLastWeek:
		end := today.AddDate(0, 0, -offset)
		return Between(end.AddDate(0, 0, -6), end)
	case TimeframeThisMonth:
		return Between(time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), today)
	case TimeframeLastMonth:
		return MonthOf(time.Date(today.Year(), today.Month()-1, 1, 0, 0, 0, 0, time.UTC))
	}

	return Window{}
}

// MonthOf is the window covering the calendar month that contains t.
func MonthOf(t time.Time) Window {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Between(start, start.AddDate(0, 1, -1))
}

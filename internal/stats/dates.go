package stats

import "time"

// DateLayout is the calendar date format used by reading sessions.
const DateLayout = "2006-01-02"

// ParseDate parses a session date as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// window describes the calendar ranges "this month" and "this week"
// relative to a reference instant.
type window struct {
	loc       *time.Location
	year      int
	month     time.Month
	weekStart time.Time
	today     time.Time
}

func newWindow(now time.Time) window {
	today := midnight(now)
	return window{
		loc:       now.Location(),
		year:      now.Year(),
		month:     now.Month(),
		weekStart: today.AddDate(0, 0, -int(today.Weekday())),
		today:     today,
	}
}

func (w window) inMonth(d time.Time) bool {
	return d.Year() == w.year && d.Month() == w.month
}

// inWeek is bounded by today; a session dated after today is never
// "this week".
func (w window) inWeek(d time.Time) bool {
	return !d.Before(w.weekStart) && !d.After(w.today)
}

// WeekStart returns midnight of the most recent Sunday at or before now.
func WeekStart(now time.Time) time.Time {
	return newWindow(now).weekStart
}

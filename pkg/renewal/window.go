package renewal

import (
	"fmt"
	"time"
)

type WindowName string

const (
	WindowThisMonth WindowName = "thisMonth"
	WindowNext15    WindowName = "next15"
	WindowNext30    WindowName = "next30"
	WindowNextMonth WindowName = "nextMonth"
	WindowLast15    WindowName = "last15"
	WindowLast30    WindowName = "last30"
	WindowCustom    WindowName = "custom"
)

// Window is a closed date range [Start, End].
type Window struct {
	Start time.Time
	End   time.Time
}

// endOfPeriod is subtracted from the next period's first midnight. Postgres
// stores microseconds, so a nanosecond offset would round up into the next day.
const endOfPeriod = time.Microsecond

// ComputeWindow resolves a named window relative to the start of now's day,
// in now's location. Unknown names behave like next15.
func ComputeWindow(name WindowName, now time.Time, customStart, customEnd *time.Time) (Window, error) {
	today := startOfDay(now)

	switch name {
	case WindowCustom:
		if customStart == nil || customEnd == nil {
			return Window{}, ErrInvalidWindow
		}
		return Window{Start: *customStart, End: *customEnd}, nil
	case WindowThisMonth:
		first := firstOfMonth(today, 0)
		return Window{Start: first, End: firstOfMonth(today, 1).Add(-endOfPeriod)}, nil
	case WindowNextMonth:
		first := firstOfMonth(today, 1)
		return Window{Start: first, End: firstOfMonth(today, 2).Add(-endOfPeriod)}, nil
	case WindowNext30:
		return Window{Start: today, End: today.AddDate(0, 0, 30)}, nil
	case WindowLast15:
		return Window{Start: today.AddDate(0, 0, -15), End: today}, nil
	case WindowLast30:
		return Window{Start: today.AddDate(0, 0, -30), End: today}, nil
	default:
		// next15, and anything unrecognised
		return Window{Start: today, End: today.AddDate(0, 0, 15)}, nil
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func firstOfMonth(t time.Time, offset int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(offset), 1, 0, 0, 0, 0, t.Location())
}

// ParseDate reads a caller-supplied date. A bare date is midnight in loc.
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", raw, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}

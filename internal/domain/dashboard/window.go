package dashboard

import (
	"time"

	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
	"github.com/BruksfildServices01/carwash-scheduler/internal/timezone"
)

type Window string

const (
	ThisHour         Window = "this_hour"
	Today            Window = "today"
	Yesterday        Window = "yesterday"
	Tomorrow         Window = "tomorrow"
	DayAfterTomorrow Window = "day_after_tomorrow"
	ThisWeek         Window = "this_week"
	LastWeek         Window = "last_week"
	NextWeek         Window = "next_week"
	LastMonth        Window = "last_month"
	NextMonth        Window = "next_month"
	AllTime          Window = "all_time"
)

const DefaultWindow = Today

var Windows = []Window{
	ThisHour, Today, Yesterday, Tomorrow, DayAfterTomorrow,
	ThisWeek, LastWeek, NextWeek, LastMonth, NextMonth, AllTime,
}

// Range is the half-open interval [Start, End). Unbounded ranges match
// every row.
type Range struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Unbounded bool      `json:"unbounded"`
}

// ParseWindow resolves a selector value. An empty value means nothing was
// picked and leaves current as the active window.
func ParseWindow(raw string, current Window) (Window, error) {
	if raw == "" {
		return current, nil
	}
	for _, w := range Windows {
		if string(w) == raw {
			return w, nil
		}
	}
	return current, httperr.ErrBusiness("invalid_window")
}

// RangeFor computes the window around now, in now's location. Weeks start
// on Monday.
func RangeFor(w Window, now time.Time) (Range, error) {
	day := timezone.StartOfDay(now)

	switch w {
	case ThisHour:
		start := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
		return Range{Start: start, End: start.Add(time.Hour)}, nil
	case Today:
		return days(day, 0), nil
	case Yesterday:
		return days(day, -1), nil
	case Tomorrow:
		return days(day, 1), nil
	case DayAfterTomorrow:
		return days(day, 2), nil
	case ThisWeek:
		return weeks(day, 0), nil
	case LastWeek:
		return weeks(day, -1), nil
	case NextWeek:
		return weeks(day, 1), nil
	case LastMonth:
		return months(day, -1), nil
	case NextMonth:
		return months(day, 1), nil
	case AllTime:
		return Range{Unbounded: true}, nil
	}
	return Range{}, httperr.ErrBusiness("invalid_window")
}

func days(day time.Time, offset int) Range {
	start := day.AddDate(0, 0, offset)
	return Range{Start: start, End: start.AddDate(0, 0, 1)}
}

func weeks(day time.Time, offset int) Range {
	sinceMonday := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -sinceMonday+7*offset)
	return Range{Start: monday, End: monday.AddDate(0, 0, 7)}
}

func months(day time.Time, offset int) Range {
	first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	start := first.AddDate(0, offset, 0)
	return Range{Start: start, End: start.AddDate(0, 1, 0)}
}

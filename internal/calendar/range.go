// Package calendar holds the pure scheduling math behind the views:
// visible date ranges, slot geometry, and appointment placement.
package calendar

import "time"

// ViewMode selects the active grid resolution.
type ViewMode int

const (
	ViewMonth ViewMode = iota
	ViewWeek
	ViewDay
)

func (v ViewMode) String() string {
	switch v {
	case ViewWeek:
		return "week"
	case ViewDay:
		return "day"
	default:
		return "month"
	}
}

// Direction is a navigation step relative to the reference date.
type Direction int

const (
	Prev Direction = iota
	Next
)

// DateRange is a closed interval of calendar dates. Both bounds are
// included; the fetch request carries them verbatim.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// DayOf truncates t to midnight in its own location.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two instants fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// Range computes the visible date span for a reference date and mode.
// Month spans the Sunday on/before the 1st through the Saturday
// on/after the last day; week is the Sunday-start week containing ref;
// day is the single date.
func Range(ref time.Time, mode ViewMode) DateRange {
	ref = DayOf(ref)
	switch mode {
	case ViewWeek:
		start := ref.AddDate(0, 0, -int(ref.Weekday()))
		return DateRange{Start: start, End: start.AddDate(0, 0, 6)}
	case ViewDay:
		return DateRange{Start: ref, End: ref}
	default:
		first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		last := first.AddDate(0, 1, -1)
		start := first.AddDate(0, 0, -int(first.Weekday()))
		end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))
		return DateRange{Start: start, End: end}
	}
}

// Navigate shifts the reference date one step in the given direction:
// a calendar month, seven days, or one day depending on mode. Month
// steps clamp the day-of-month to the target month's last day, so
// Jan 31 next lands on Feb 29/28 rather than normalizing into March.
func Navigate(ref time.Time, mode ViewMode, dir Direction) time.Time {
	step := 1
	if dir == Prev {
		step = -1
	}
	ref = DayOf(ref)
	switch mode {
	case ViewWeek:
		return ref.AddDate(0, 0, 7*step)
	case ViewDay:
		return ref.AddDate(0, 0, step)
	default:
		first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		target := first.AddDate(0, step, 0)
		day := ref.Day()
		if last := target.AddDate(0, 1, -1).Day(); day > last {
			day = last
		}
		return target.AddDate(0, 0, day-1)
	}
}

// Today returns the current date in loc, time of day stripped.
func Today(loc *time.Location) time.Time {
	return DayOf(time.Now().In(loc))
}

package calendar

import "time"

// Week/day grids cover a fixed 14-hour working window at 15-minute
// resolution. Appointments starting outside [GridStartHour, GridEndHour)
// do not appear in those grids.
const (
	GridStartHour = 7
	GridEndHour   = 21
	QuarterMinute = 15
)

// GridHours enumerates the hour rows of the week/day grids.
func GridHours() []int {
	hours := make([]int, 0, GridEndHour-GridStartHour)
	for h := GridStartHour; h < GridEndHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// Quarters enumerates the sub-hour buckets of an hour row.
func Quarters() []int {
	return []int{0, 15, 30, 45}
}

// InGridWindow reports whether an instant's local time falls inside the
// week/day grid window.
func InGridWindow(t time.Time) bool {
	return t.Hour() >= GridStartHour && t.Hour() < GridEndHour
}

// QuarterOf buckets a minute-of-hour into its quarter start.
func QuarterOf(minute int) int {
	return (minute / QuarterMinute) * QuarterMinute
}

// SlotTimes derives the default start/end pair for a new appointment
// from a slot click. Month clicks book 09:00-10:00 on the clicked day;
// week clicks book the full clicked hour; day clicks book 30 minutes
// from the clicked quarter. The finer day grid gets the finer default
// on purpose.
func SlotTimes(mode ViewMode, day time.Time, hour, quarter int) (start, end time.Time) {
	day = DayOf(day)
	switch mode {
	case ViewWeek:
		start = day.Add(time.Duration(hour) * time.Hour)
		return start, start.Add(time.Hour)
	case ViewDay:
		start = day.Add(time.Duration(hour)*time.Hour + time.Duration(quarter)*time.Minute)
		return start, start.Add(30 * time.Minute)
	default:
		start = day.Add(9 * time.Hour)
		return start, start.Add(time.Hour)
	}
}

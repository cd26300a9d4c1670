package calendar

import (
	"sort"
	"time"

	"apptcal/internal/appt"
)

// DayKey identifies a calendar date for map keys.
type DayKey string

// KeyFor derives the DayKey of an instant's calendar date.
func KeyFor(t time.Time) DayKey {
	return DayKey(t.Format("2006-01-02"))
}

// SlotKey identifies one hour/quarter bucket of one day.
type SlotKey struct {
	Day     DayKey
	Hour    int
	Quarter int
}

// Placement is the derived structure the renderers consume: every
// loaded appointment assigned to the day cell or time bucket its start
// falls in. Appointments spanning several days are placed only at their
// start; there is no continuation rendering.
type Placement struct {
	ByDay  map[DayKey][]appt.Appointment
	BySlot map[SlotKey][]appt.Appointment
}

// Place buckets appointments for rendering. Invalid records (zero or
// inverted time range) are skipped. Within a bucket, ordering is by
// ascending start time with input order breaking ties.
func Place(appointments []appt.Appointment) Placement {
	p := Placement{
		ByDay:  make(map[DayKey][]appt.Appointment),
		BySlot: make(map[SlotKey][]appt.Appointment),
	}
	for _, a := range appointments {
		if !a.Valid() {
			continue
		}
		day := KeyFor(a.Start)
		p.ByDay[day] = append(p.ByDay[day], a)
		if InGridWindow(a.Start) {
			key := SlotKey{Day: day, Hour: a.Start.Hour(), Quarter: QuarterOf(a.Start.Minute())}
			p.BySlot[key] = append(p.BySlot[key], a)
		}
	}
	for _, list := range p.ByDay {
		sortByStart(list)
	}
	for _, list := range p.BySlot {
		sortByStart(list)
	}
	return p
}

func sortByStart(list []appt.Appointment) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Start.Before(list[j].Start)
	})
}

// Day returns the appointments placed on a calendar date.
func (p Placement) Day(day time.Time) []appt.Appointment {
	return p.ByDay[KeyFor(day)]
}

// Slot returns the appointments placed in one hour/quarter bucket.
func (p Placement) Slot(day time.Time, hour, quarter int) []appt.Appointment {
	return p.BySlot[SlotKey{Day: KeyFor(day), Hour: hour, Quarter: quarter}]
}

// HighlightedDates collects the calendar dates carrying at least one
// appointment, for the mini calendar's activity dots.
func HighlightedDates(appointments []appt.Appointment) map[DayKey]bool {
	marks := make(map[DayKey]bool, len(appointments))
	for _, a := range appointments {
		if !a.Valid() {
			continue
		}
		marks[KeyFor(a.Start)] = true
	}
	return marks
}

package calendar

import (
	"reflect"
	"testing"
	"time"

	"apptcal/internal/appt"
)

func mkAppt(id string, start time.Time, d time.Duration) appt.Appointment {
	return appt.Appointment{ID: id, Title: "appt " + id, Start: start, End: start.Add(d)}
}

func TestPlaceBucketsByStartSlot(t *testing.T) {
	day := date(2024, time.March, 20)
	a := mkAppt("a", day.Add(9*time.Hour), time.Hour)
	b := mkAppt("b", day.Add(9*time.Hour+10*time.Minute), 30*time.Minute)

	p := Place([]appt.Appointment{b, a})

	slot := p.Slot(day, 9, 0)
	if len(slot) != 2 {
		t.Fatalf("slot (9,0) holds %d appointments, want 2", len(slot))
	}
	if slot[0].ID != "a" || slot[1].ID != "b" {
		t.Errorf("slot order = %s,%s, want a,b (ascending start)", slot[0].ID, slot[1].ID)
	}
	if got := p.Day(day); len(got) != 2 || got[0].ID != "a" {
		t.Errorf("day bucket = %v", got)
	}
}

func TestPlaceIsPure(t *testing.T) {
	day := date(2024, time.March, 20)
	input := []appt.Appointment{
		mkAppt("a", day.Add(8*time.Hour), time.Hour),
		mkAppt("b", day.Add(8*time.Hour), time.Hour),
		mkAppt("c", day.Add(15*time.Hour+45*time.Minute), time.Hour),
	}
	first := Place(input)
	second := Place(input)
	if !reflect.DeepEqual(first, second) {
		t.Error("Place is not deterministic for identical input")
	}
}

func TestPlaceWindowBoundaries(t *testing.T) {
	day := date(2024, time.March, 20)
	early := mkAppt("early", day.Add(6*time.Hour+59*time.Minute), time.Hour)
	first := mkAppt("first", day.Add(7*time.Hour), time.Hour)
	last := mkAppt("last", day.Add(20*time.Hour+59*time.Minute), time.Hour)
	late := mkAppt("late", day.Add(21*time.Hour), time.Hour)

	p := Place([]appt.Appointment{early, first, last, late})

	if got := p.Slot(day, 7, 0); len(got) != 1 || got[0].ID != "first" {
		t.Errorf("07:00 slot = %v, want [first]", got)
	}
	if got := p.Slot(day, 20, 45); len(got) != 1 || got[0].ID != "last" {
		t.Errorf("20:45 slot = %v, want [last]", got)
	}
	if len(p.BySlot) != 2 {
		t.Errorf("slot map holds %d keys, want 2 (out-of-window starts excluded)", len(p.BySlot))
	}
	// Out-of-window appointments still count for the day bucket.
	if got := p.Day(day); len(got) != 4 {
		t.Errorf("day bucket = %d, want 4", len(got))
	}
}

func TestPlaceMultiDaySpanOnlyAtStart(t *testing.T) {
	day := date(2024, time.March, 20)
	span := mkAppt("span", day.Add(10*time.Hour), 48*time.Hour)
	p := Place([]appt.Appointment{span})
	if got := p.Day(day); len(got) != 1 {
		t.Fatalf("start day holds %d, want 1", len(got))
	}
	if got := p.Day(day.AddDate(0, 0, 1)); len(got) != 0 {
		t.Errorf("following day holds %d, want 0 (no continuation cells)", len(got))
	}
}

func TestPlaceSkipsInvalidRecords(t *testing.T) {
	day := date(2024, time.March, 20)
	bad := appt.Appointment{ID: "bad", Title: "inverted", Start: day.Add(10 * time.Hour), End: day.Add(9 * time.Hour)}
	zero := appt.Appointment{ID: "zero", Title: "no time"}
	good := mkAppt("good", day.Add(10*time.Hour), time.Hour)

	p := Place([]appt.Appointment{bad, zero, good})
	if got := p.Day(day); len(got) != 1 || got[0].ID != "good" {
		t.Errorf("day bucket = %v, want only the valid record", got)
	}
}

func TestHighlightedDates(t *testing.T) {
	day1 := date(2024, time.March, 20)
	day2 := date(2024, time.March, 22)
	marks := HighlightedDates([]appt.Appointment{
		mkAppt("a", day1.Add(9*time.Hour), time.Hour),
		mkAppt("b", day1.Add(15*time.Hour), time.Hour),
		mkAppt("c", day2.Add(8*time.Hour), time.Hour),
	})
	if len(marks) != 2 {
		t.Fatalf("len(marks) = %d, want 2", len(marks))
	}
	if !marks[KeyFor(day1)] || !marks[KeyFor(day2)] {
		t.Errorf("marks missing expected dates: %v", marks)
	}
}

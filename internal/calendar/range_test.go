package calendar

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthRangeSpansSundayToSaturday(t *testing.T) {
	refs := []time.Time{
		date(2024, time.March, 15),
		date(2024, time.February, 29),
		date(2023, time.December, 31),
		date(2024, time.September, 1), // month starting on Sunday
		date(2024, time.June, 5),
	}
	for _, ref := range refs {
		rng := Range(ref, ViewMonth)
		if rng.Start.Weekday() != time.Sunday {
			t.Errorf("ref %v: range start %v is %v, want Sunday", ref, rng.Start, rng.Start.Weekday())
		}
		if rng.End.Weekday() != time.Saturday {
			t.Errorf("ref %v: range end %v is %v, want Saturday", ref, rng.End, rng.End.Weekday())
		}
		first := date(ref.Year(), ref.Month(), 1)
		if first.Before(rng.Start) || first.After(rng.End) {
			t.Errorf("ref %v: month start %v outside range %v..%v", ref, first, rng.Start, rng.End)
		}
	}
}

func TestMonthRangeMarch2024(t *testing.T) {
	rng := Range(date(2024, time.March, 15), ViewMonth)
	if !rng.Start.Equal(date(2024, time.February, 25)) {
		t.Errorf("start = %v, want 2024-02-25", rng.Start)
	}
	if !rng.End.Equal(date(2024, time.March, 30)) {
		t.Errorf("end = %v, want 2024-03-30", rng.End)
	}
}

func TestWeekRangeIsSundayStartSevenDays(t *testing.T) {
	rng := Range(date(2024, time.March, 15), ViewWeek)
	if !rng.Start.Equal(date(2024, time.March, 10)) {
		t.Errorf("start = %v, want 2024-03-10", rng.Start)
	}
	if !rng.End.Equal(date(2024, time.March, 16)) {
		t.Errorf("end = %v, want 2024-03-16", rng.End)
	}
	for d := 0; d < 14; d++ {
		ref := date(2024, time.July, 1).AddDate(0, 0, d)
		r := Range(ref, ViewWeek)
		if r.Start.Weekday() != time.Sunday {
			t.Errorf("ref %v: week start %v not Sunday", ref, r.Start)
		}
		if got := r.End.Sub(r.Start); got != 6*24*time.Hour {
			t.Errorf("ref %v: week span %v, want 6 days", ref, got)
		}
	}
}

func TestDayRangeIsSingleDate(t *testing.T) {
	ref := time.Date(2024, time.March, 15, 17, 45, 0, 0, time.UTC)
	rng := Range(ref, ViewDay)
	want := date(2024, time.March, 15)
	if !rng.Start.Equal(want) || !rng.End.Equal(want) {
		t.Errorf("day range = %v..%v, want both %v", rng.Start, rng.End, want)
	}
}

func TestNavigateIsInverse(t *testing.T) {
	refs := []time.Time{
		date(2024, time.March, 15),
		date(2024, time.January, 31),
		date(2024, time.March, 31),
		date(2024, time.May, 31),
		date(2024, time.December, 1),
	}
	for _, ref := range refs {
		for _, mode := range []ViewMode{ViewMonth, ViewWeek, ViewDay} {
			back := Navigate(Navigate(ref, mode, Next), mode, Prev)
			// A day-31 ref clamps crossing a shorter month, so the round
			// trip restores the month (and its visible range) while the
			// day settles on the adjacent month's last day.
			if mode == ViewMonth && ref.Day() > 28 {
				if back.Year() != ref.Year() || back.Month() != ref.Month() {
					t.Errorf("month ref %v: next-then-prev = %v, left the month", ref, back)
				}
				if got, want := Range(back, ViewMonth), Range(ref, ViewMonth); !got.Start.Equal(want.Start) || !got.End.Equal(want.End) {
					t.Errorf("month ref %v: round-trip range %v..%v, want %v..%v", ref, got.Start, got.End, want.Start, want.End)
				}
				continue
			}
			if !back.Equal(ref) {
				t.Errorf("mode %v ref %v: next-then-prev = %v", mode, ref, back)
			}
		}
	}
}

func TestNavigateMonthClampsDayOfMonth(t *testing.T) {
	cases := []struct {
		ref  time.Time
		dir  Direction
		want time.Time
	}{
		{date(2024, time.January, 31), Next, date(2024, time.February, 29)},
		{date(2023, time.January, 31), Next, date(2023, time.February, 28)},
		{date(2024, time.March, 31), Prev, date(2024, time.February, 29)},
		{date(2024, time.May, 31), Next, date(2024, time.June, 30)},
		{date(2024, time.October, 31), Prev, date(2024, time.September, 30)},
	}
	for _, tc := range cases {
		if got := Navigate(tc.ref, ViewMonth, tc.dir); !got.Equal(tc.want) {
			t.Errorf("Navigate(%v, month, %v) = %v, want %v", tc.ref, tc.dir, got, tc.want)
		}
	}
}

func TestNavigateStepSizes(t *testing.T) {
	ref := date(2024, time.March, 15)
	if got := Navigate(ref, ViewWeek, Next); !got.Equal(date(2024, time.March, 22)) {
		t.Errorf("week next = %v", got)
	}
	if got := Navigate(ref, ViewDay, Prev); !got.Equal(date(2024, time.March, 14)) {
		t.Errorf("day prev = %v", got)
	}
	if got := Navigate(ref, ViewMonth, Next); !got.Equal(date(2024, time.April, 15)) {
		t.Errorf("month next = %v", got)
	}
}

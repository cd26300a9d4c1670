package appt

import (
	"strings"
	"testing"
	"time"
)

func TestValid(t *testing.T) {
	start := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		a    Appointment
		want bool
	}{
		{"ordered range", Appointment{Start: start, End: start.Add(time.Hour)}, true},
		{"inverted range", Appointment{Start: start, End: start.Add(-time.Hour)}, false},
		{"zero start", Appointment{End: start}, false},
		{"equal bounds", Appointment{Start: start, End: start}, false},
	}
	for _, c := range cases {
		if got := c.a.Valid(); got != c.want {
			t.Errorf("%s: Valid() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestDisplayColorDefault(t *testing.T) {
	if got := (Appointment{}).DisplayColor(); got != DefaultColor {
		t.Errorf("DisplayColor() = %q, want default", got)
	}
	if got := (Appointment{Color: "201"}).DisplayColor(); got != "201" {
		t.Errorf("DisplayColor() = %q, want 201", got)
	}
}

func TestRecurring(t *testing.T) {
	if (Appointment{}).Recurring() {
		t.Error("empty rule reported as recurring")
	}
	if !(Appointment{Recurrence: "FREQ=WEEKLY"}).Recurring() {
		t.Error("weekly rule not reported as recurring")
	}
}

func TestRecurrenceSummary(t *testing.T) {
	a := Appointment{
		Start:      time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC),
		End:        time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC),
		Recurrence: "FREQ=WEEKLY",
	}
	summary := a.RecurrenceSummary(2)
	if !strings.Contains(summary, "every week") {
		t.Errorf("summary = %q, want weekly label", summary)
	}
	if !strings.Contains(summary, "Mar 27") {
		t.Errorf("summary = %q, want next occurrence Mar 27", summary)
	}

	if got := (Appointment{}).RecurrenceSummary(2); got != "" {
		t.Errorf("non-recurring summary = %q, want empty", got)
	}
	bad := a
	bad.Recurrence = "FREQ=NONSENSE"
	if got := bad.RecurrenceSummary(2); got != "" {
		t.Errorf("unparseable rule summary = %q, want empty", got)
	}
}

package appt

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// DefaultColor is used when the backend supplies no display color.
const DefaultColor = "39"

// Appointment is a scheduled interaction as served by the CRM backend.
// The calendar never mutates one; edits go through the service and the
// view re-fetches.
type Appointment struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Status      string    `json:"status"`
	AssigneeID  string    `json:"assignee_id,omitempty"`
	ContactName string    `json:"contact_name,omitempty"`
	Location    string    `json:"location,omitempty"`
	Color       string    `json:"color,omitempty"`
	Recurrence  string    `json:"recurrence,omitempty"`
}

// Valid reports whether the appointment carries a usable time range.
// Records failing this are dropped from placement instead of crashing
// the render.
func (a Appointment) Valid() bool {
	return !a.Start.IsZero() && a.Start.Before(a.End)
}

// Recurring reports whether a recurrence rule is attached. The grids
// only need this bit to decide on the glyph.
func (a Appointment) Recurring() bool {
	return strings.TrimSpace(a.Recurrence) != ""
}

// DisplayColor returns the configured color or the default.
func (a Appointment) DisplayColor() string {
	if strings.TrimSpace(a.Color) == "" {
		return DefaultColor
	}
	return a.Color
}

// RecurrenceSummary renders a short human description of the recurrence
// rule plus up to n upcoming occurrences after the appointment start.
// Returns "" when the appointment does not recur or the rule is
// unparseable.
func (a Appointment) RecurrenceSummary(n int) string {
	if !a.Recurring() {
		return ""
	}
	opt, err := rrule.StrToROption(strings.TrimSpace(a.Recurrence))
	if err != nil {
		return ""
	}
	opt.Dtstart = a.Start
	rule, err := rrule.NewRRule(*opt)
	if err != nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(ruleLabel(opt.Freq, opt.Interval))
	if n > 0 {
		iter := rule.Iterator()
		count := 0
		for t, ok := iter(); ok && count < n; t, ok = iter() {
			if !t.After(a.Start) {
				continue
			}
			if count == 0 {
				b.WriteString(" — next: ")
			} else {
				b.WriteString(", ")
			}
			b.WriteString(t.Format("Jan 02"))
			count++
		}
	}
	return b.String()
}

func ruleLabel(freq rrule.Frequency, interval int) string {
	unit := ""
	switch freq {
	case rrule.DAILY:
		unit = "day"
	case rrule.WEEKLY:
		unit = "week"
	case rrule.MONTHLY:
		unit = "month"
	case rrule.YEARLY:
		unit = "year"
	default:
		return "Repeats"
	}
	if interval <= 1 {
		return "Repeats every " + unit
	}
	return fmt.Sprintf("Repeats every %d %ss", interval, unit)
}

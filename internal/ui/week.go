package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"apptcal/internal/appt"
	"apptcal/internal/calendar"
)

type weekView struct{}

func (weekView) render(m *model) string {
	cw := columnWidth(m.width)
	rng := calendar.Range(m.refDate, calendar.ViewWeek)
	today := calendar.Today(m.loc)

	var rows []string
	header := []string{m.theme.HourLabel.Copy().Width(6).Render("")}
	for i := 0; i < 7; i++ {
		day := rng.Start.AddDate(0, 0, i)
		style := m.theme.DayHeader
		if calendar.SameDay(day, today) {
			style = m.theme.TodayCell
		}
		header = append(header, style.Copy().Width(cw).Render(day.Format("Mon 02")))
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, header...))

	for _, hour := range calendar.GridHours() {
		cells := []string{m.theme.HourLabel.Copy().Width(6).Render(fmt.Sprintf("%02d:00", hour))}
		for i := 0; i < 7; i++ {
			day := rng.Start.AddDate(0, 0, i)
			cells = append(cells, weekCell(m, day, hour, cw))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

// weekCell collapses the four quarter buckets of one day/hour into a
// single grid cell: the first appointment's summary plus an overflow
// count.
func weekCell(m *model, day time.Time, hour, cw int) string {
	var list []appt.Appointment
	for _, q := range calendar.Quarters() {
		list = append(list, m.placement.Slot(day, hour, q)...)
	}
	cursor := calendar.SameDay(day, m.cursor.day) && hour == m.cursor.hour

	var label string
	switch {
	case len(list) == 0:
		label = "·"
	case len(list) == 1:
		label = list[0].Start.Format("15:04") + " " + list[0].Title
	default:
		label = fmt.Sprintf("%s %s +%d", list[0].Start.Format("15:04"), list[0].Title, len(list)-1)
	}

	style := m.theme.Faint
	if len(list) > 0 {
		style = m.theme.Event(list[0].Color)
	}
	if cursor {
		style = style.Copy().Reverse(true)
	}
	return style.Copy().Width(cw).Render(truncate(label, cw))
}

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"apptcal/internal/appt"
	"apptcal/internal/calendar"
	"apptcal/internal/theme"
)

// gridRenderer is one of the three interchangeable view strategies.
// All consume the same (referenceDate, placement) pair held by the
// model and differ only in grid geometry.
type gridRenderer interface {
	render(m *model) string
}

var weekdayHeaders = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

const (
	sidebarWidth = 24
	monthPills   = 2
)

type monthView struct{}

func (monthView) render(m *model) string {
	cw := columnWidth(m.width)
	rng := calendar.Range(m.refDate, calendar.ViewMonth)
	today := calendar.Today(m.loc)

	var rows []string
	header := make([]string, 0, 7)
	for _, wd := range weekdayHeaders {
		header = append(header, m.theme.DayHeader.Copy().Width(cw).Render(wd))
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, header...))

	for week := rng.Start; !week.After(rng.End); week = week.AddDate(0, 0, 7) {
		cells := make([]string, 0, 7)
		for i := 0; i < 7; i++ {
			day := week.AddDate(0, 0, i)
			cells = append(cells, monthCell(m, day, today, cw))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func monthCell(m *model, day, today time.Time, cw int) string {
	inMonth := day.Month() == m.refDate.Month()
	cursor := calendar.SameDay(day, m.cursor.day)

	numStyle := m.theme.Primary
	if !inMonth {
		numStyle = m.theme.OffMonth
	}
	if calendar.SameDay(day, today) {
		numStyle = m.theme.TodayCell
	}
	head := fmt.Sprintf("%2d", day.Day())
	if cursor {
		head = "▸" + head
		numStyle = numStyle.Copy().Reverse(true)
	} else {
		head = " " + head
	}

	lines := []string{numStyle.Copy().Width(cw).Render(head)}
	list := m.placement.Day(day)
	for i := 0; i < monthPills && i < len(list); i++ {
		lines = append(lines, pill(m.theme, list[i], cw))
	}
	if extra := len(list) - monthPills; extra > 0 {
		lines = append(lines, m.theme.Faint.Copy().Width(cw).Render(fmt.Sprintf("+%d more", extra)))
	}
	for len(lines) < monthPills+2 {
		lines = append(lines, lipgloss.NewStyle().Width(cw).Render(""))
	}
	return strings.Join(lines, "\n")
}

// pill is the compact month-view representation: start time, title,
// recurrence glyph.
func pill(th theme.Theme, a appt.Appointment, cw int) string {
	label := a.Start.Format("15:04") + " " + a.Title
	if a.Recurring() {
		label += "↻"
	}
	return th.Event(a.Color).Width(cw).Render(truncate(label, cw))
}

func columnWidth(width int) int {
	if width <= 0 {
		return 16
	}
	cw := (width - sidebarWidth - 4) / 7
	if cw < 10 {
		cw = 10
	}
	if cw > 22 {
		cw = 22
	}
	return cw
}

func truncate(s string, max int) string {
	if max <= 1 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

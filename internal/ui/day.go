package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"apptcal/internal/calendar"
)

type dayView struct{}

func (dayView) render(m *model) string {
	cw := columnWidth(m.width) + 4
	day := calendar.DayOf(m.refDate)
	now := m.now()
	isToday := calendar.SameDay(day, now)

	var rows []string
	header := []string{m.theme.HourLabel.Copy().Width(6).Render("")}
	for _, q := range calendar.Quarters() {
		header = append(header, m.theme.DayHeader.Copy().Width(cw).Render(fmt.Sprintf(":%02d", q)))
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, header...))

	for _, hour := range calendar.GridHours() {
		cells := []string{m.theme.HourLabel.Copy().Width(6).Render(fmt.Sprintf("%02d:00", hour))}
		for _, q := range calendar.Quarters() {
			cells = append(cells, dayCell(m, day, hour, q, cw))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		if isToday && now.Hour() == hour {
			rows = append(rows, nowMarker(m, now, cw))
		}
	}
	return strings.Join(rows, "\n")
}

func dayCell(m *model, day time.Time, hour, quarter, cw int) string {
	list := m.placement.Slot(day, hour, quarter)
	cursor := calendar.SameDay(day, m.cursor.day) &&
		hour == m.cursor.hour && quarter == m.cursor.quarter

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

// nowMarker draws the current-time indicator under the active hour
// row, offset across the row by minute-of-hour / 60. Sampled once per
// render; there is no ticking timer behind it.
func nowMarker(m *model, now time.Time, rowWidth int) string {
	width := 6 + 4*rowWidth
	frac := float64(now.Minute()) / 60.0
	offset := 6 + int(frac*float64(width-6))
	if offset >= width {
		offset = width - 1
	}
	label := fmt.Sprintf("▲ %s", now.Format("15:04"))
	return strings.Repeat(" ", offset) + m.theme.NowMarker.Render(label)
}

package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"apptcal/internal/calendar"
)

// minicalModel is the compact month navigator in the sidebar. It only
// mutates view state; the page controller observes the selection and
// owns the fetch.
type minicalModel struct {
	month    time.Time // first of the displayed month
	selected time.Time
	focused  bool
}

func newMinical(ref time.Time) minicalModel {
	mc := minicalModel{selected: calendar.DayOf(ref)}
	mc.focusMonth(ref)
	return mc
}

func (mc *minicalModel) focusMonth(ref time.Time) {
	mc.month = time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
}

// handleKey processes keys while the mini calendar holds focus.
// Returns the chosen date when selection completed.
func (mc *minicalModel) handleKey(key tea.KeyMsg) (day time.Time, done, canceled bool) {
	switch key.String() {
	case "esc", "c", "q":
		return time.Time{}, false, true
	case "left", "h":
		mc.move(-1)
	case "right", "l":
		mc.move(1)
	case "up", "k":
		mc.move(-7)
	case "down", "j":
		mc.move(7)
	case "pgup", "<", "p":
		mc.month = mc.month.AddDate(0, -1, 0)
		mc.selected = mc.clampToMonth(mc.selected)
	case "pgdown", ">", "n":
		mc.month = mc.month.AddDate(0, 1, 0)
		mc.selected = mc.clampToMonth(mc.selected)
	case "enter":
		return mc.selected, true, false
	}
	return time.Time{}, false, false
}

func (mc *minicalModel) move(days int) {
	mc.selected = mc.selected.AddDate(0, 0, days)
	if mc.selected.Month() != mc.month.Month() || mc.selected.Year() != mc.month.Year() {
		mc.focusMonth(mc.selected)
	}
}

func (mc *minicalModel) clampToMonth(sel time.Time) time.Time {
	day := sel.Day()
	last := mc.month.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(mc.month.Year(), mc.month.Month(), day, 0, 0, 0, 0, mc.month.Location())
}

func (mc minicalModel) view(m *model) string {
	today := calendar.Today(m.loc)
	title := mc.month.Format("January 2006")
	if mc.focused {
		title = "▸ " + title
	}
	lines := []string{m.theme.Subtitle.Render(title)}
	lines = append(lines, m.theme.Faint.Render("Su Mo Tu We Th Fr Sa"))

	gridStart := mc.month.AddDate(0, 0, -int(mc.month.Weekday()))
	monthEnd := mc.month.AddDate(0, 1, -1)
	gridEnd := monthEnd.AddDate(0, 0, int(time.Saturday-monthEnd.Weekday()))

	for week := gridStart; !week.After(gridEnd); week = week.AddDate(0, 0, 7) {
		cells := make([]string, 0, 7)
		for i := 0; i < 7; i++ {
			day := week.AddDate(0, 0, i)
			cells = append(cells, mc.cell(m, day, today))
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	if mc.focused {
		lines = append(lines, m.theme.Faint.Render("enter opens day view"))
	}
	return strings.Join(lines, "\n")
}

// cell renders one two-column day: the number, dot-marked when the
// date carries at least one appointment.
func (mc minicalModel) cell(m *model, day, today time.Time) string {
	if day.Month() != mc.month.Month() {
		return m.theme.OffMonth.Render("  ")
	}
	label := fmt.Sprintf("%2d", day.Day())
	style := m.theme.Secondary
	if m.highlights[calendar.KeyFor(day)] {
		style = m.theme.Dot
	}
	if calendar.SameDay(day, today) {
		style = m.theme.TodayCell
	}
	if mc.focused && calendar.SameDay(day, mc.selected) {
		style = m.theme.Highlight.Copy().Reverse(true)
	}
	return style.Render(label)
}

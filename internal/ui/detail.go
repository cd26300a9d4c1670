package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"apptcal/internal/appt"
)

// detailModel is the panel behind an event click. The full record is
// fetched on open; the summary row already on screen stays put if the
// fetch fails.
type detailModel struct {
	summary     appt.Appointment
	appointment *appt.Appointment
	loading     bool
	err         string
}

func (d *detailModel) apply(msg detailMsg) {
	d.loading = false
	if msg.err != nil {
		d.err = msg.err.Error()
		return
	}
	d.err = ""
	d.appointment = msg.appointment
}

func (m *model) openDetail(a appt.Appointment) tea.Cmd {
	m.detail = detailModel{summary: a, loading: true}
	m.pushState(stateDetail)
	svc := m.svc
	id := a.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		full, err := svc.Detail(ctx, id)
		return detailMsg{appointment: full, err: err}
	}
}

func (m *model) updateDetail(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "esc", "q", "/", "enter":
		m.popState()
	}
	return nil
}

func (m *model) viewDetail() string {
	d := m.detail
	a := d.summary
	if d.appointment != nil {
		a = *d.appointment
		a.Start = a.Start.In(m.loc)
		a.End = a.End.In(m.loc)
	}

	lines := []string{m.theme.Title.Render(a.Title)}
	if d.loading {
		lines = append(lines, m.theme.Warning.Render("loading…"))
	}
	when := a.Start.Format("Mon Jan 02 2006 15:04") + " – " + a.End.Format("15:04")
	lines = append(lines, m.theme.Subtitle.Render(when))

	meta := []string{}
	if a.Status != "" {
		meta = append(meta, "Status: "+a.Status)
	}
	if a.ContactName != "" {
		meta = append(meta, "Contact: "+a.ContactName)
	}
	if a.Location != "" {
		meta = append(meta, "Location: "+a.Location)
	}
	if a.AssigneeID != "" {
		meta = append(meta, "Assignee: "+a.AssigneeID)
	}
	if len(meta) > 0 {
		lines = append(lines, m.theme.Secondary.Render(strings.Join(meta, "  •  ")))
	}
	if summary := a.RecurrenceSummary(3); summary != "" {
		lines = append(lines, m.theme.Dot.Render("↻ ")+m.theme.Primary.Render(summary))
	}
	if d.err != "" {
		lines = append(lines, "", m.theme.Danger.Render(d.err))
	}
	lines = append(lines, "", m.theme.Faint.Render("esc closes"))
	return strings.Join(lines, "\n") + "\n"
}

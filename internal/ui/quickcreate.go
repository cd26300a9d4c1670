package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"apptcal/internal/appt"
)

type quickStage int

const (
	quickStageTitle quickStage = iota
	quickStageStart
	quickStageEnd
	quickStageContact
	quickStageLocation
)

const quickTimeLayout = "2006-01-02 15:04"

// quickCreate is the modal flow behind a slot click. The slot mapper
// pre-fills the time range; the user can accept or edit each field.
type quickCreate struct {
	stage         quickStage
	titleInput    textinput.Model
	startInput    textinput.Model
	endInput      textinput.Model
	contactInput  textinput.Model
	locationInput textinput.Model
	err           string
}

func newQuickCreate(start, end time.Time) quickCreate {
	title := textinput.New()
	title.Prompt = ""
	title.Placeholder = "Appointment title"
	title.CharLimit = 96

	startIn := textinput.New()
	startIn.Prompt = ""
	startIn.CharLimit = 32
	startIn.SetValue(start.Format(quickTimeLayout))

	endIn := textinput.New()
	endIn.Prompt = ""
	endIn.CharLimit = 32
	endIn.SetValue(end.Format(quickTimeLayout))

	contact := textinput.New()
	contact.Prompt = ""
	contact.Placeholder = "Contact (optional)"
	contact.CharLimit = 96

	location := textinput.New()
	location.Prompt = ""
	location.Placeholder = "Location (optional)"
	location.CharLimit = 96

	return quickCreate{
		stage:         quickStageTitle,
		titleInput:    title,
		startInput:    startIn,
		endInput:      endIn,
		contactInput:  contact,
		locationInput: location,
	}
}

func (q *quickCreate) current() *textinput.Model {
	switch q.stage {
	case quickStageStart:
		return &q.startInput
	case quickStageEnd:
		return &q.endInput
	case quickStageContact:
		return &q.contactInput
	case quickStageLocation:
		return &q.locationInput
	default:
		return &q.titleInput
	}
}

func (q *quickCreate) focusCurrent() tea.Cmd {
	for _, in := range []*textinput.Model{&q.titleInput, &q.startInput, &q.endInput, &q.contactInput, &q.locationInput} {
		in.Blur()
	}
	return q.current().Focus()
}

func (m *model) updateQuickCreate(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	in := m.quick.current()
	updated, cmd := in.Update(msg)
	*in = updated
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return tea.Batch(cmds...)
	}
	switch key.Type {
	case tea.KeyEsc:
		m.popState()
		return tea.Batch(cmds...)
	case tea.KeyEnter:
		value := strings.TrimSpace(in.Value())
		if value == "/" {
			if m.quick.stage == quickStageTitle {
				m.popState()
				return tea.Batch(cmds...)
			}
			m.quick.stage--
			m.quick.err = ""
			in.SetValue(strings.TrimSuffix(in.Value(), "/"))
			cmds = append(cmds, m.quick.focusCurrent())
			return tea.Batch(cmds...)
		}
		switch m.quick.stage {
		case quickStageTitle:
			if value == "" {
				m.quick.err = "Title is required"
				return tea.Batch(cmds...)
			}
		case quickStageStart, quickStageEnd:
			if _, err := time.ParseInLocation(quickTimeLayout, value, m.loc); err != nil {
				m.quick.err = "Use format YYYY-MM-DD HH:MM"
				return tea.Batch(cmds...)
			}
		}
		m.quick.err = ""
		if m.quick.stage == quickStageLocation {
			return tea.Batch(append(cmds, m.submitQuickCreate())...)
		}
		m.quick.stage++
		cmds = append(cmds, m.quick.focusCurrent())
	}
	return tea.Batch(cmds...)
}

func (m *model) submitQuickCreate() tea.Cmd {
	start, err := time.ParseInLocation(quickTimeLayout, strings.TrimSpace(m.quick.startInput.Value()), m.loc)
	if err != nil {
		m.quick.err = "Invalid start time"
		return nil
	}
	end, err := time.ParseInLocation(quickTimeLayout, strings.TrimSpace(m.quick.endInput.Value()), m.loc)
	if err != nil {
		m.quick.err = "Invalid end time"
		return nil
	}
	if !start.Before(end) {
		m.quick.err = "Start must precede end"
		return nil
	}
	draft := appt.Appointment{
		Title:       strings.TrimSpace(m.quick.titleInput.Value()),
		Start:       start,
		End:         end,
		AssigneeID:  m.assignee,
		ContactName: strings.TrimSpace(m.quick.contactInput.Value()),
		Location:    strings.TrimSpace(m.quick.locationInput.Value()),
	}
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		created, err := svc.Create(ctx, draft)
		return createdMsg{appointment: created, err: err}
	}
}

func (m *model) viewQuickCreate() string {
	q := &m.quick
	labels := []string{"Title", "Start", "End", "Contact", "Location"}
	lines := []string{
		m.theme.Title.Render("New Appointment"),
		m.theme.Faint.Render("Enter accepts, '/' steps back, esc cancels."),
		"",
	}
	inputs := []*textinput.Model{&q.titleInput, &q.startInput, &q.endInput, &q.contactInput, &q.locationInput}
	for i, in := range inputs {
		label := m.theme.Secondary.Render(labels[i] + ":")
		if quickStage(i) == q.stage {
			lines = append(lines, m.theme.Accent.Render("▸ ")+label+" "+in.View())
		} else {
			lines = append(lines, "  "+label+" "+m.theme.Primary.Render(in.Value()))
		}
	}
	if q.err != "" {
		lines = append(lines, "", m.theme.Danger.Render(q.err))
	}
	return strings.Join(lines, "\n") + "\n"
}

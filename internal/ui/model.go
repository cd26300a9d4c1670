package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"apptcal/internal/appt"
	"apptcal/internal/calendar"
	"apptcal/internal/config"
	"apptcal/internal/theme"
)

// Program wraps the Bubble Tea program lifecycle.
type Program struct {
	program *tea.Program
}

// NewProgram constructs a new interactive calendar session.
func NewProgram(svc appt.Service, cfg *config.Store, log *zap.Logger) *Program {
	m := newModel(svc, cfg, log)
	return &Program{program: tea.NewProgram(m, tea.WithAltScreen())}
}

// Start launches the Bubble Tea program.
func (p *Program) Start() error {
	if p == nil || p.program == nil {
		return fmt.Errorf("nil program")
	}
	return p.program.Start()
}

type viewState int

const (
	stateCalendar viewState = iota
	stateQuickCreate
	stateDetail
	stateGoto
	stateFilter
	stateTimezone
)

// fetchPhase tracks the appointment load lifecycle. A failed fetch
// renders the grid empty rather than blocking the page.
type fetchPhase int

const (
	fetchIdle fetchPhase = iota
	fetchLoading
	fetchLoaded
	fetchFailed
)

type cursorPos struct {
	day     time.Time
	hour    int
	quarter int
}

type model struct {
	state      viewState
	prevStates []viewState
	svc        appt.Service
	cfg        *config.Store
	log        *zap.Logger
	theme      theme.Theme
	now        func() time.Time
	loc        *time.Location
	width      int
	height     int

	infoMessage string
	errMessage  string

	// View state: every mutation that changes the derived range
	// triggers a fresh fetch.
	refDate  time.Time
	mode     calendar.ViewMode
	assignee string

	// Fetch lifecycle. fetchSeq is a monotonic guard: responses
	// carrying a stale sequence are dropped so the grid always
	// reflects the most recent range request.
	phase        fetchPhase
	fetchSeq     int
	appointments []appt.Appointment
	placement    calendar.Placement
	highlights   map[calendar.DayKey]bool

	cursor   cursorPos
	eventIdx int

	minical     minicalModel
	quick       quickCreate
	detail      detailModel
	gotoInput   textinput.Model
	filterInput textinput.Model
	tzInput     textinput.Model
}

// appointmentsMsg delivers one fetch result, tagged with the sequence
// it was issued under.
type appointmentsMsg struct {
	seq          int
	appointments []appt.Appointment
	err          error
}

type detailMsg struct {
	appointment *appt.Appointment
	err         error
}

type createdMsg struct {
	appointment appt.Appointment
	err         error
}

func newModel(svc appt.Service, cfg *config.Store, log *zap.Logger) *model {
	loc := cfg.Location()
	m := &model{
		state:    stateCalendar,
		svc:      svc,
		cfg:      cfg,
		log:      log,
		theme:    theme.Default(),
		now:      func() time.Time { return time.Now().In(loc) },
		loc:      loc,
		refDate:  calendar.Today(loc),
		mode:     calendar.ViewMonth,
		assignee: cfg.Config.Assignee,
		phase:    fetchIdle,
	}
	m.placement = calendar.Place(nil)
	m.highlights = map[calendar.DayKey]bool{}
	m.cursor = cursorPos{day: m.refDate, hour: calendar.GridStartHour}
	m.minical = newMinical(m.refDate)
	m.gotoInput = newPromptInput("YYYY-MM-DD", 10)
	m.filterInput = newPromptInput("Assignee id (blank clears)", 64)
	m.tzInput = newPromptInput("e.g. America/New_York", 64)
	return m
}

func newPromptInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	return ti
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.refetch())
}

// refetch issues a new List for the current view state, bumping the
// sequence so any in-flight fetch becomes stale.
func (m *model) refetch() tea.Cmd {
	m.fetchSeq++
	seq := m.fetchSeq
	m.phase = fetchLoading
	rng := calendar.Range(m.refDate, m.mode)
	svc := m.svc
	assignee := m.assignee
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		appointments, err := svc.List(ctx, rng.Start, rng.End, assignee)
		return appointmentsMsg{seq: seq, appointments: appointments, err: err}
	}
}

func (m *model) applyFetch(msg appointmentsMsg) {
	if msg.seq != m.fetchSeq {
		// Superseded by a newer range request; last write wins.
		return
	}
	if msg.err != nil {
		m.phase = fetchFailed
		m.appointments = nil
		if m.log != nil {
			m.log.Warn("appointment fetch failed", zap.Error(msg.err))
		}
	} else {
		m.phase = fetchLoaded
		m.appointments = make([]appt.Appointment, 0, len(msg.appointments))
		for _, a := range msg.appointments {
			a.Start = a.Start.In(m.loc)
			a.End = a.End.In(m.loc)
			m.appointments = append(m.appointments, a)
		}
	}
	m.placement = calendar.Place(m.appointments)
	m.highlights = calendar.HighlightedDates(m.appointments)
	m.eventIdx = 0
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case appointmentsMsg:
		m.applyFetch(msg)
		return m, nil
	case createdMsg:
		return m, m.applyCreated(msg)
	case detailMsg:
		m.detail.apply(msg)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateCalendar:
		cmd = m.updateCalendar(msg)
	case stateQuickCreate:
		cmd = m.updateQuickCreate(msg)
	case stateDetail:
		cmd = m.updateDetail(msg)
	case stateGoto:
		cmd = m.updateGoto(msg)
	case stateFilter:
		cmd = m.updateFilter(msg)
	case stateTimezone:
		cmd = m.updateTimezone(msg)
	default:
		m.state = stateCalendar
		cmd = m.updateCalendar(msg)
	}
	return m, cmd
}

func (m *model) View() string {
	switch m.state {
	case stateQuickCreate:
		return m.viewQuickCreate()
	case stateDetail:
		return m.viewDetail()
	case stateGoto:
		return m.viewGoto()
	case stateFilter:
		return m.viewFilter()
	case stateTimezone:
		return m.viewTimezone()
	default:
		return m.viewCalendar()
	}
}

// Navigation helpers
func (m *model) pushState(next viewState) {
	m.prevStates = append(m.prevStates, m.state)
	m.state = next
}

func (m *model) popState() {
	if len(m.prevStates) == 0 {
		m.state = stateCalendar
		return
	}
	idx := len(m.prevStates) - 1
	m.state = m.prevStates[idx]
	m.prevStates = m.prevStates[:idx]
}

func (m *model) resetMessages() {
	m.errMessage = ""
	m.infoMessage = ""
}

// setReference moves the reference date and re-fetches when the
// derived range actually changed.
func (m *model) setReference(day time.Time) tea.Cmd {
	day = calendar.DayOf(day)
	oldRange := calendar.Range(m.refDate, m.mode)
	m.refDate = day
	m.minical.focusMonth(day)
	newRange := calendar.Range(m.refDate, m.mode)
	if oldRange != newRange {
		return m.refetch()
	}
	return nil
}

func (m *model) setMode(mode calendar.ViewMode) tea.Cmd {
	if m.mode == mode {
		return nil
	}
	oldRange := calendar.Range(m.refDate, m.mode)
	m.mode = mode
	m.eventIdx = 0
	if !calendar.SameDay(m.cursor.day, m.refDate) {
		m.cursor.day = m.refDate
	}
	if calendar.Range(m.refDate, m.mode) != oldRange {
		return m.refetch()
	}
	return nil
}

// CALENDAR (grid + mini calendar sidebar)
func (m *model) updateCalendar(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.minical.focused {
		return m.updateMinicalFocus(key)
	}

	switch key.String() {
	case "q":
		return tea.Quit
	case "m":
		m.resetMessages()
		return m.setMode(calendar.ViewMonth)
	case "w":
		m.resetMessages()
		return m.setMode(calendar.ViewWeek)
	case "d":
		m.resetMessages()
		return m.setMode(calendar.ViewDay)
	case "n", "pgdown":
		m.resetMessages()
		next := calendar.Navigate(m.refDate, m.mode, calendar.Next)
		m.cursor.day = next
		return m.setReference(next)
	case "p", "pgup":
		m.resetMessages()
		prev := calendar.Navigate(m.refDate, m.mode, calendar.Prev)
		m.cursor.day = prev
		return m.setReference(prev)
	case "t":
		m.resetMessages()
		today := calendar.Today(m.loc)
		m.cursor.day = today
		return m.setReference(today)
	case "r":
		m.resetMessages()
		return m.refetch()
	case "left", "h":
		return m.moveCursorDays(-1)
	case "right", "l":
		return m.moveCursorDays(1)
	case "up", "k":
		return m.moveCursorVertical(-1)
	case "down", "j":
		return m.moveCursorVertical(1)
	case "tab":
		m.cycleEvent()
		return nil
	case "enter":
		return m.onSlotClick()
	case "o":
		return m.onEventClick()
	case "g":
		m.resetMessages()
		m.gotoInput.SetValue("")
		m.pushState(stateGoto)
		return m.gotoInput.Focus()
	case "a":
		m.resetMessages()
		m.filterInput.SetValue(m.assignee)
		m.pushState(stateFilter)
		return m.filterInput.Focus()
	case "z":
		m.resetMessages()
		m.tzInput.SetValue(m.cfg.Config.Timezone)
		m.pushState(stateTimezone)
		return m.tzInput.Focus()
	case "c":
		m.minical.focused = true
		m.minical.selected = m.cursor.day
		m.minical.focusMonth(m.cursor.day)
		return nil
	}
	return nil
}

func (m *model) updateMinicalFocus(key tea.KeyMsg) tea.Cmd {
	day, done, canceled := m.minical.handleKey(key)
	if canceled {
		m.minical.focused = false
		return nil
	}
	if done {
		// Selection always drops into the most granular view.
		m.minical.focused = false
		m.cursor.day = day
		m.mode = calendar.ViewDay
		return m.setReference(day)
	}
	return nil
}

func (m *model) moveCursorDays(delta int) tea.Cmd {
	m.eventIdx = 0
	m.cursor.day = m.cursor.day.AddDate(0, 0, delta)
	rng := calendar.Range(m.refDate, m.mode)
	if m.cursor.day.Before(rng.Start) || m.cursor.day.After(rng.End) {
		return m.setReference(m.cursor.day)
	}
	if m.mode == calendar.ViewDay {
		return m.setReference(m.cursor.day)
	}
	return nil
}

func (m *model) moveCursorVertical(delta int) tea.Cmd {
	m.eventIdx = 0
	switch m.mode {
	case calendar.ViewMonth:
		return m.moveCursorDays(7 * delta)
	case calendar.ViewWeek:
		m.cursor.hour = clampHour(m.cursor.hour + delta)
	case calendar.ViewDay:
		q := m.cursor.hour*60 + m.cursor.quarter + delta*calendar.QuarterMinute
		low := calendar.GridStartHour * 60
		high := (calendar.GridEndHour-1)*60 + 45
		if q < low {
			q = low
		}
		if q > high {
			q = high
		}
		m.cursor.hour, m.cursor.quarter = q/60, q%60
	}
	return nil
}

func clampHour(h int) int {
	if h < calendar.GridStartHour {
		return calendar.GridStartHour
	}
	if h >= calendar.GridEndHour {
		return calendar.GridEndHour - 1
	}
	return h
}

// cursorAppointments lists what sits under the cursor cell.
func (m *model) cursorAppointments() []appt.Appointment {
	switch m.mode {
	case calendar.ViewWeek:
		var all []appt.Appointment
		for _, q := range calendar.Quarters() {
			all = append(all, m.placement.Slot(m.cursor.day, m.cursor.hour, q)...)
		}
		return all
	case calendar.ViewDay:
		return m.placement.Slot(m.cursor.day, m.cursor.hour, m.cursor.quarter)
	default:
		return m.placement.Day(m.cursor.day)
	}
}

func (m *model) cycleEvent() {
	list := m.cursorAppointments()
	if len(list) == 0 {
		m.eventIdx = 0
		return
	}
	m.eventIdx = (m.eventIdx + 1) % len(list)
}

// onSlotClick derives the default booking window for the cursor slot
// and opens the quick-create flow seeded with it.
func (m *model) onSlotClick() tea.Cmd {
	start, end := calendar.SlotTimes(m.mode, m.cursor.day, m.cursor.hour, m.cursor.quarter)
	m.quick = newQuickCreate(start, end)
	m.pushState(stateQuickCreate)
	return m.quick.focusCurrent()
}

// onEventClick opens the detail panel for the appointment under the
// cursor, fetching the full record.
func (m *model) onEventClick() tea.Cmd {
	list := m.cursorAppointments()
	if len(list) == 0 {
		m.errMessage = "No appointment under cursor"
		return nil
	}
	idx := m.eventIdx
	if idx >= len(list) {
		idx = 0
	}
	return m.openDetail(list[idx])
}

func (m *model) applyCreated(msg createdMsg) tea.Cmd {
	if msg.err != nil {
		m.quick.err = msg.err.Error()
		return nil
	}
	m.popState()
	m.infoMessage = fmt.Sprintf("Appointment '%s' created", msg.appointment.Title)
	return m.refetch()
}

// GOTO DATE
func (m *model) updateGoto(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return cmd
	}
	switch key.Type {
	case tea.KeyEsc:
		m.popState()
		return cmd
	case tea.KeyEnter:
		value := strings.TrimSpace(m.gotoInput.Value())
		if value == "" {
			m.popState()
			return cmd
		}
		day, err := time.ParseInLocation("2006-01-02", value, m.loc)
		if err != nil {
			m.errMessage = "Use format YYYY-MM-DD"
			return cmd
		}
		m.errMessage = ""
		m.popState()
		m.cursor.day = calendar.DayOf(day)
		return tea.Batch(cmd, m.setReference(day))
	}
	return cmd
}

func (m *model) viewGoto() string {
	lines := []string{
		m.theme.Title.Render("Go to date"),
		m.theme.Faint.Render("Enter a date, esc cancels."),
		"",
		m.theme.Accent.Render("> ") + m.gotoInput.View(),
	}
	if m.errMessage != "" {
		lines = append(lines, "", m.theme.Danger.Render(m.errMessage))
	}
	return strings.Join(lines, "\n") + "\n"
}

// ASSIGNEE FILTER
func (m *model) updateFilter(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return cmd
	}
	switch key.Type {
	case tea.KeyEsc:
		m.popState()
		return cmd
	case tea.KeyEnter:
		value := strings.TrimSpace(m.filterInput.Value())
		m.popState()
		if value == m.assignee {
			return cmd
		}
		m.assignee = value
		m.cfg.Config.Assignee = value
		if err := m.cfg.Save(); err != nil && m.log != nil {
			m.log.Warn("save config", zap.Error(err))
		}
		return tea.Batch(cmd, m.refetch())
	}
	return cmd
}

func (m *model) viewFilter() string {
	lines := []string{
		m.theme.Title.Render("Assignee filter"),
		m.theme.Faint.Render("Only this assignee's appointments are fetched. Blank clears. Esc cancels."),
		"",
		m.theme.Accent.Render("> ") + m.filterInput.View(),
	}
	return strings.Join(lines, "\n") + "\n"
}

// TIMEZONE
func (m *model) updateTimezone(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.tzInput, cmd = m.tzInput.Update(msg)
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return cmd
	}
	switch key.Type {
	case tea.KeyEsc:
		m.popState()
		return cmd
	case tea.KeyEnter:
		value := strings.TrimSpace(m.tzInput.Value())
		loc, err := time.LoadLocation(value)
		if err != nil {
			m.errMessage = "Invalid timezone"
			return cmd
		}
		m.errMessage = ""
		m.cfg.Config.Timezone = value
		if err := m.cfg.Save(); err != nil && m.log != nil {
			m.log.Warn("save config", zap.Error(err))
		}
		m.loc = loc
		m.now = func() time.Time { return time.Now().In(loc) }
		m.refDate = calendar.DayOf(m.refDate.In(loc))
		m.cursor.day = m.refDate
		m.popState()
		m.infoMessage = "Timezone updated"
		return tea.Batch(cmd, m.refetch())
	}
	return cmd
}

func (m *model) viewTimezone() string {
	lines := []string{
		m.theme.Title.Render("Timezone"),
		m.theme.Faint.Render("All grids are drawn in this zone. Esc cancels."),
		"",
		m.theme.Accent.Render("> ") + m.tzInput.View(),
	}
	if m.errMessage != "" {
		lines = append(lines, "", m.theme.Danger.Render(m.errMessage))
	}
	return strings.Join(lines, "\n") + "\n"
}

// CALENDAR VIEW
func (m *model) renderer() gridRenderer {
	switch m.mode {
	case calendar.ViewWeek:
		return weekView{}
	case calendar.ViewDay:
		return dayView{}
	default:
		return monthView{}
	}
}

func (m *model) viewCalendar() string {
	header := m.viewHeader()
	grid := m.renderer().render(m)
	sidebar := m.minical.view(m)
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", grid)
	footer := m.viewFooter()
	return strings.Join([]string{header, "", body, "", footer}, "\n") + "\n"
}

func (m *model) viewHeader() string {
	rng := calendar.Range(m.refDate, m.mode)
	var label string
	switch m.mode {
	case calendar.ViewWeek:
		label = fmt.Sprintf("%s – %s", rng.Start.Format("Jan 02"), rng.End.Format("Jan 02 2006"))
	case calendar.ViewDay:
		label = m.refDate.Format("Monday, Jan 02 2006")
	default:
		label = m.refDate.Format("January 2006")
	}
	parts := []string{
		m.theme.Title.Render("Appointments"),
		m.theme.Subtitle.Render(label),
		m.theme.Secondary.Render("[" + m.mode.String() + "]"),
	}
	if m.assignee != "" {
		parts = append(parts, m.theme.Accent.Render("assignee:"+m.assignee))
	}
	if m.phase == fetchLoading {
		parts = append(parts, m.theme.Warning.Render("loading…"))
	}
	return strings.Join(parts, "  ")
}

func (m *model) viewFooter() string {
	lines := []string{}
	if sel := m.cursorAppointments(); len(sel) > 0 && m.mode != calendar.ViewMonth {
		idx := m.eventIdx
		if idx >= len(sel) {
			idx = 0
		}
		lines = append(lines, m.theme.Border.Render(strings.Repeat("─", 60)))
		lines = append(lines, renderCard(m.theme, sel[idx], len(sel), idx))
	}
	help := []string{
		m.theme.HelpKey.Render("m/w/d") + " " + m.theme.HelpValue.Render("view"),
		m.theme.HelpKey.Render("p/n") + " " + m.theme.HelpValue.Render("prev/next"),
		m.theme.HelpKey.Render("t") + " " + m.theme.HelpValue.Render("today"),
		m.theme.HelpKey.Render("arrows") + " " + m.theme.HelpValue.Render("move"),
		m.theme.HelpKey.Render("enter") + " " + m.theme.HelpValue.Render("new"),
		m.theme.HelpKey.Render("o") + " " + m.theme.HelpValue.Render("open"),
		m.theme.HelpKey.Render("tab") + " " + m.theme.HelpValue.Render("cycle"),
		m.theme.HelpKey.Render("c") + " " + m.theme.HelpValue.Render("mini cal"),
		m.theme.HelpKey.Render("g") + " " + m.theme.HelpValue.Render("goto"),
		m.theme.HelpKey.Render("a") + " " + m.theme.HelpValue.Render("assignee"),
		m.theme.HelpKey.Render("r") + " " + m.theme.HelpValue.Render("refresh"),
		m.theme.HelpKey.Render("q") + " " + m.theme.HelpValue.Render("quit"),
	}
	lines = append(lines, strings.Join(help, "  "))
	if m.infoMessage != "" {
		lines = append(lines, m.theme.Success.Render(m.infoMessage))
	}
	if m.errMessage != "" {
		lines = append(lines, m.theme.Danger.Render(m.errMessage))
	}
	return strings.Join(lines, "\n")
}

// renderCard shows the expanded form of one appointment: title, time
// range, contact, location.
func renderCard(th theme.Theme, a appt.Appointment, total, idx int) string {
	var b strings.Builder
	b.WriteString(theme.ForColor(a.DisplayColor()).Bold(true).Render(a.Title))
	if a.Recurring() {
		b.WriteString(" " + th.Dot.Render("↻"))
	}
	b.WriteString("  " + th.Secondary.Render(a.Start.Format("15:04")+"–"+a.End.Format("15:04")))
	if a.ContactName != "" {
		b.WriteString("  " + th.Primary.Render(a.ContactName))
	}
	if a.Location != "" {
		b.WriteString("  " + th.Faint.Render("@"+a.Location))
	}
	if a.Status != "" {
		b.WriteString("  " + statusStyle(th, a.Status).Render(a.Status))
	}
	if total > 1 {
		b.WriteString("  " + th.Faint.Render(fmt.Sprintf("(%d/%d)", idx+1, total)))
	}
	return b.String()
}

func statusStyle(th theme.Theme, status string) lipgloss.Style {
	switch strings.ToLower(status) {
	case "free", "open":
		return th.StatusFree
	case "busy", "confirmed":
		return th.StatusBusy
	default:
		return th.Secondary
	}
}

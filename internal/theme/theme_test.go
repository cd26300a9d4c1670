package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestEventUsesConfiguredColor(t *testing.T) {
	th := Default()
	if got := th.Event("201").GetForeground(); got != lipgloss.Color("201") {
		t.Errorf("Event(201) foreground = %v, want 201", got)
	}
}

func TestEventFallsBackToPill(t *testing.T) {
	th := Default()
	if got, want := th.Event("").GetForeground(), th.Pill.GetForeground(); got != want {
		t.Errorf("Event(\"\") foreground = %v, want pill foreground %v", got, want)
	}
}

package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// refreshTickMsg is sent to trigger a background reload of the active view.
type refreshTickMsg struct{}

// scheduleRefreshTick returns a command that schedules the next refresh
// tick. A non-positive interval disables polling.
func scheduleRefreshTick(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		return nil
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

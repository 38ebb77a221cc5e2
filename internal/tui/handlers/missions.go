package handlers

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/quitnow/internal/tui/components/missions"
	"github.com/julianstephens/quitnow/internal/tui/state"
)

// HandleMissionMessages handles messages from the missions component
func HandleMissionMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case missions.ToggleMissionMsg:
		s, err := m.Controller.ToggleMission(msg.ID, m.Now())
		if err != nil {
			m.FormError = "Failed to update mission: " + err.Error()
			return true, nil
		}
		m.FormError = ""
		m.Apply(s)
		return true, nil
	}
	return false, nil
}

// HandleTick recomputes statistics and rolls missions over when the day changes
func HandleTick(m *state.Model) {
	now := m.Now()
	s, err := m.Controller.Tick(now)
	if err != nil {
		m.FormError = "Failed to refresh: " + err.Error()
		return
	}
	m.Apply(s)
	m.BreathingModel.Advance(now)
}

package handlers

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/tui/state"
)

var tabOrder = []constants.SessionState{
	constants.StateDashboard,
	constants.StateMissions,
	constants.StateJournal,
	constants.StateBreathing,
	constants.StateSettings,
}

// HandleGlobalKeys handles global key presses
func HandleGlobalKeys(m *state.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return true, tea.Quit
	}

	if m.State == constants.StateEmergency {
		if key.Matches(msg, m.Keys.Back) {
			m.State = m.PreviousState
			return true, nil
		}
		return false, nil
	}

	if !m.IsMainView() {
		return false, nil
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.Keys.Tab):
		m.State = cycle(m.State, 1)
		return true, nil
	case key.Matches(msg, m.Keys.ShiftTab):
		m.State = cycle(m.State, -1)
		return true, nil
	case key.Matches(msg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		return true, nil
	case key.Matches(msg, m.Keys.Emergency):
		return true, OpenEmergency(m)
	}
	return false, nil
}

// OpenEmergency shows the craving tips and sends the crisis notification
func OpenEmergency(m *state.Model) tea.Cmd {
	m.PreviousState = m.State
	m.State = constants.StateEmergency
	controller := m.Controller
	return func() tea.Msg {
		controller.Emergency()
		return nil
	}
}

func cycle(current constants.SessionState, step int) constants.SessionState {
	for i, s := range tabOrder {
		if s == current {
			return tabOrder[(i+step+len(tabOrder))%len(tabOrder)]
		}
	}
	return constants.StateDashboard
}

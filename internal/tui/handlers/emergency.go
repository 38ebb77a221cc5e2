package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/tui/components/breathing"
	"github.com/julianstephens/quitnow/internal/tui/components/emergency"
	"github.com/julianstephens/quitnow/internal/tui/state"
)

// HandleEmergencyMessages handles messages from the emergency and breathing components
func HandleEmergencyMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case emergency.StartBreathingMsg:
		m.State = constants.StateBreathing
		if !m.BreathingModel.Running() {
			m.BreathingModel.Start(m.Now())
		}
		return true, nil
	case breathing.FinishedMsg:
		if msg.Cycles > 0 {
			m.StatusMessage = fmt.Sprintf("Completed %d breath(s).", msg.Cycles)
		} else {
			m.StatusMessage = ""
		}
		return true, nil
	}
	return false, nil
}

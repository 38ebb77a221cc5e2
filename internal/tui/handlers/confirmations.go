package handlers

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/tui/state"
)

// HandleConfirmResetState handles the reset confirmation state
func HandleConfirmResetState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.State = constants.StateSettings
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		if !m.ConfirmationForm.Confirmed {
			m.State = constants.StateSettings
			return tea.Batch(cmds...)
		}
		s, err := m.Controller.Reset()
		if err != nil {
			m.FormError = "Failed to reset: " + err.Error()
			m.State = constants.StateSettings
			return tea.Batch(cmds...)
		}
		m.Apply(s)
		m.FormError = ""
		cmds = append(cmds, StartOnboarding(m))
	case huh.StateAborted:
		m.State = constants.StateSettings
	}
	return tea.Batch(cmds...)
}

package handlers

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/models"
	"github.com/julianstephens/quitnow/internal/tui/components/settings"
	"github.com/julianstephens/quitnow/internal/tui/state"
)

// HandleEditSettingsState handles the edit settings state
func HandleEditSettingsState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.FormError = "" // Clear error on cancel
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
		newSettings := models.Settings{
			NotificationsEnabled: m.SettingsForm.NotificationsEnabled,
			Timezone:             strings.TrimSpace(m.SettingsForm.Timezone),
			MissionCatalog:       m.SettingsForm.MissionCatalog,
			CurrencySymbol:       strings.TrimSpace(m.SettingsForm.CurrencySymbol),
		}

		s, err := m.Controller.UpdateSettings(newSettings, m.Now())
		if err != nil {
			// Store error and stay in form state to allow retry
			m.FormError = "Failed to update settings: " + err.Error()
			m.Form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}
		m.Apply(s)
		m.FormError = "" // Clear any previous errors
		m.State = constants.StateSettings
	case huh.StateAborted:
		m.FormError = "" // Clear error on abort
		m.State = constants.StateSettings
	}
	return tea.Batch(cmds...)
}

// HandleSettingsMessages handles messages from the settings component
func HandleSettingsMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg.(type) {
	case settings.EditSettingsMsg:
		current := m.App.Settings
		m.SettingsForm = &state.SettingsFormModel{
			NotificationsEnabled: current.NotificationsEnabled,
			Timezone:             current.Timezone,
			MissionCatalog:       current.MissionCatalog,
			CurrencySymbol:       current.CurrencySymbol,
		}
		m.FormError = ""
		m.Form = NewSettingsForm(m.SettingsForm)
		m.State = constants.StateEditSettings
		return true, m.Form.Init()

	case settings.ResetProgressMsg:
		m.ConfirmationForm = &state.ConfirmationFormModel{
			Message: "Erase your quit moment and today's missions?",
		}
		m.Form = NewConfirmationForm(m.ConfirmationForm)
		m.State = constants.StateConfirmReset
		return true, m.Form.Init()
	}
	return false, nil
}

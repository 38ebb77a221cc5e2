package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/tui/components/dashboard"
	"github.com/julianstephens/quitnow/internal/tui/handlers"
	"github.com/julianstephens/quitnow/internal/tui/state"
)

// chrome is the height taken by the tabs, banner and help lines
const chrome = 6

var messageHandlers = []func(*state.Model, tea.Msg) (bool, tea.Cmd){
	handlers.HandleMissionMessages,
	handlers.HandleJournalMessages,
	handlers.HandleSettingsMessages,
	handlers.HandleEmergencyMessages,
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		h := msg.Height - chrome
		m.DashboardModel.SetSize(msg.Width, h)
		m.MissionsModel.SetSize(msg.Width-4, h-2)
		m.JournalModel.SetSize(msg.Width-4, h-2)
		m.BreathingModel.SetSize(msg.Width, h)
		m.EmergencyModel.SetSize(msg.Width, h)
		m.OnboardingModel.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case dashboard.TickMsg:
		handlers.HandleTick(&m.Model)
		return m, dashboard.Tick()
	}

	// Form states own every other message
	switch m.State {
	case constants.StateOnboarding:
		return m, handlers.HandleOnboardingState(&m.Model, msg)
	case constants.StateAddJournal:
		return m, handlers.HandleAddJournalState(&m.Model, msg)
	case constants.StateEditSettings:
		return m, handlers.HandleEditSettingsState(&m.Model, msg)
	case constants.StateConfirmReset:
		return m, handlers.HandleConfirmResetState(&m.Model, msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		m.StatusMessage = ""
		if handled, cmd := handlers.HandleGlobalKeys(&m.Model, msg); handled {
			return m, cmd
		}
	}

	for _, handle := range messageHandlers {
		if handled, cmd := handle(&m.Model, msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	switch m.State {
	case constants.StateMissions:
		m.MissionsModel, cmd = m.MissionsModel.Update(msg)
	case constants.StateJournal:
		m.JournalModel, cmd = m.JournalModel.Update(msg)
	case constants.StateBreathing:
		m.BreathingModel, cmd = m.BreathingModel.Update(msg, m.Now())
	case constants.StateSettings:
		m.SettingsModel, cmd = m.SettingsModel.Update(msg)
	case constants.StateEmergency:
		m.EmergencyModel, cmd = m.EmergencyModel.Update(msg)
	}
	return m, cmd
}

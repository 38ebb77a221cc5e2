package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/quitnow/internal/constants"
)

var tabTitles = []struct {
	title string
	state constants.SessionState
}{
	{"Dashboard", constants.StateDashboard},
	{"Missions", constants.StateMissions},
	{"Journal", constants.StateJournal},
	{"Breathe", constants.StateBreathing},
	{"Settings", constants.StateSettings},
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	if m.State == constants.StateOnboarding {
		form := ""
		if m.Form != nil {
			form = m.Form.View()
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			m.OnboardingModel.View(m.Flow, form),
			m.viewMessages(),
		)
	}

	var content string
	switch m.State {
	case constants.StateDashboard:
		content = m.DashboardModel.View()
	case constants.StateMissions:
		content = docStyle.Render(m.MissionsModel.View())
	case constants.StateJournal:
		content = docStyle.Render(m.JournalModel.View())
	case constants.StateBreathing:
		content = m.BreathingModel.View()
	case constants.StateSettings:
		content = docStyle.Render(m.SettingsModel.View())
	case constants.StateEmergency:
		content = m.EmergencyModel.View()
	case constants.StateAddJournal, constants.StateEditSettings:
		content = docStyle.Render(m.Form.View())
	case constants.StateConfirmReset:
		content = m.viewConfirmReset()
	}

	var banner string
	if m.ValidationWarning != "" && m.State == constants.StateDashboard {
		banner = warningStyle.Render(m.ValidationWarning)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		banner,
		content,
		m.viewMessages(),
		m.Help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for _, t := range tabTitles {
		if m.State == t.state {
			tabs = append(tabs, activeTabStyle.Render(t.title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(t.title))
		}
	}
	if m.State == constants.StateEmergency {
		tabs = append(tabs, dangerStyle.Render(" SOS "))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewMessages() string {
	switch {
	case m.FormError != "":
		return dangerStyle.Render(m.FormError)
	case m.StatusMessage != "":
		return statusStyle.Render(m.StatusMessage)
	}
	return ""
}

func (m Model) viewConfirmReset() string {
	return lipgloss.Place(m.Width, m.Height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("This erases your progress. Settings and journal are kept."),
			"",
			m.Form.View(),
		),
	)
}

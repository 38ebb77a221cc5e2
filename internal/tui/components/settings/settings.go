package settings

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/quitnow/internal/models"
)

type EditSettingsMsg struct{}

type ResetProgressMsg struct{}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(25)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			MarginTop(1).
			MarginBottom(1)

	dangerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type KeyMap struct {
	Edit  key.Binding
	Reset key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset progress"),
		),
	}
}

type Model struct {
	settings models.Settings
	keys     KeyMap
}

func (m Model) Keys() KeyMap { return m.keys }

func New() Model {
	return Model{keys: DefaultKeyMap()}
}

func (m *Model) SetSettings(settings models.Settings) {
	m.settings = settings
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Edit):
			return m, func() tea.Msg { return EditSettingsMsg{} }
		case key.Matches(msg, m.keys.Reset):
			return m, func() tea.Msg { return ResetProgressMsg{} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Left, labelStyle.Render(label), valueStyle.Render(value))
	}

	general := lipgloss.JoinVertical(lipgloss.Left,
		row("Notifications", fmt.Sprintf("%v", m.settings.NotificationsEnabled)),
		row("Timezone", m.settings.Timezone),
		row("Mission catalog", m.settings.MissionCatalog),
		row("Currency symbol", m.settings.CurrencySymbol),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Settings"),
		sectionStyle.Render(general),
		"Press 'e' to edit.",
		dangerStyle.Render("Press 'R' to erase your progress and start over."),
	)
}

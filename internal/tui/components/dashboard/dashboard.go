package dashboard

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/quitnow/internal/app"
	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/missions"
	"github.com/julianstephens/quitnow/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 2).
			Align(lipgloss.Center)

	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Align(lipgloss.Center)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(22).
			Align(lipgloss.Center)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true).MarginTop(1)
)

// TickMsg drives the statistics refresh
type TickMsg time.Time

// Tick schedules the next statistics refresh.
func Tick() tea.Cmd {
	return tea.Tick(constants.StatsTickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

type Model struct {
	state  app.State
	width  int
	height int
}

func New() Model {
	return Model{}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) SetState(s app.State) {
	m.state = s
}

func (m Model) View() string {
	s := m.state.Stats
	if !s.Started {
		return titleStyle.Render("Your smoke-free clock has not started yet.")
	}

	seconds := int(s.Elapsed/time.Second) % 60
	clock := clockStyle.Render(fmt.Sprintf("%d days  %02d h  %02d min  %02d s", s.Days, s.Hours, s.Minutes, seconds))

	done, total := missions.Progress(m.state.Missions)
	currency := m.state.Settings.CurrencySymbol
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Cigarettes avoided", fmt.Sprintf("%d", s.CigarettesAvoided)),
		card("Money saved", utils.FormatMoney(currency, s.MoneySaved)),
		card("Life reclaimed", fmt.Sprintf("%d h", s.LifeReclaimedHours())),
		card("Today's missions", fmt.Sprintf("%d/%d", done, total)),
	)

	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Smoke-free for"),
		clock,
		cards,
		hintStyle.Render("Craving? Press ! for help right now."),
	)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func card(label, value string) string {
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		labelStyle.Render(label),
		valueStyle.Render(value),
	))
}

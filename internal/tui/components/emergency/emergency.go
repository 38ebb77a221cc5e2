package emergency

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StartBreathingMsg asks the host to switch to the breathing exercise
type StartBreathingMsg struct{}

// Tip is a short technique for riding out a craving
type Tip struct {
	Title       string
	Description string
	Steps       []string
	Hint        string
}

var Tips = []Tip{
	{
		Title:       "The glass of water technique",
		Description: "When a craving hits, slowly drink a large glass of cold water. It calms you down within about 30 seconds.",
		Steps: []string{
			"Fill a large glass (300 ml) with cold water",
			"Drink it slowly, in small sips",
			"Focus on the feeling of the water going down",
			"Take three deep breaths when you finish",
		},
		Hint: "Nicotine dehydrates the body. Water helps flush it out faster.",
	},
	{
		Title:       "4-7-8 breathing",
		Description: "A breathing pattern that settles the nervous system in under a minute.",
		Steps: []string{
			"Breathe in through your nose for a count of 4",
			"Hold your breath for a count of 7",
			"Breathe out through your mouth for a count of 8",
			"Repeat four times",
		},
		Hint: "Use it every time the urge shows up.",
	},
}

var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("214")).
			Bold(true).
			Padding(0, 1)

	tipTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Width(64)

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

type KeyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Breathing key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "l", "n"),
			key.WithHelp("→", "next tip"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "p"),
			key.WithHelp("←", "previous tip"),
		),
		Breathing: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "breathe with me"),
		),
	}
}

type Model struct {
	selected int
	keys     KeyMap
	width    int
	height   int
}

func New() Model {
	return Model{keys: DefaultKeyMap()}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) Selected() int { return m.selected }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Next):
			m.selected = (m.selected + 1) % len(Tips)
		case key.Matches(msg, m.keys.Prev):
			m.selected = (m.selected + len(Tips) - 1) % len(Tips)
		case key.Matches(msg, m.keys.Breathing):
			return m, func() tea.Msg { return StartBreathingMsg{} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	tip := Tips[m.selected]

	var steps strings.Builder
	for i, s := range tip.Steps {
		fmt.Fprintf(&steps, "%d. %s\n", i+1, s)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		tipTitleStyle.Render(fmt.Sprintf("%s  (%d/%d)", tip.Title, m.selected+1, len(Tips))),
		tip.Description,
		"",
		strings.TrimRight(steps.String(), "\n"),
		"",
		mutedStyle.Render(tip.Hint),
	)

	content := lipgloss.JoinVertical(lipgloss.Center,
		bannerStyle.Render("Breathe. The urge passes in about five minutes. You are stronger than it."),
		boxStyle.Render(body),
		mutedStyle.Render("←/→ switch tip · b breathing exercise · esc back"),
	)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

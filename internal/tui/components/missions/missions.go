package missions

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/quitnow/internal/models"
)

// ToggleMissionMsg asks the host to flip a mission
type ToggleMissionMsg struct {
	ID int
}

type Item struct {
	Mission models.Mission
}

func (i Item) Title() string {
	if i.Mission.Completed {
		return "✓ " + i.Mission.Title
	}
	return "○ " + i.Mission.Title
}

func (i Item) Description() string {
	if i.Mission.Completed {
		return "done today"
	}
	return "not done yet"
}

func (i Item) FilterValue() string { return i.Mission.Title }

type KeyMap struct {
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter", "x"),
			key.WithHelp("space", "toggle"),
		),
	}
}

var headerStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("205")).
	Bold(true).
	MarginBottom(1)

type Model struct {
	list list.Model
	keys KeyMap
	log  models.MissionLog
}

func (m Model) Keys() KeyMap { return m.keys }

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Missions"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle}
	}

	return Model{list: l, keys: keys}
}

func (m *Model) SetMissions(log models.MissionLog) {
	m.log = log
	items := make([]list.Item, len(log.Missions))
	for i, mission := range log.Missions {
		items[i] = Item{Mission: mission}
	}
	m.list.SetItems(items)
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height-2)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Toggle) {
		if i, ok := m.list.SelectedItem().(Item); ok {
			return m, func() tea.Msg { return ToggleMissionMsg{ID: i.Mission.ID} }
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.log.Missions) == 0 {
		return "\n  No missions for today."
	}
	done, total := m.log.Completed()
	header := headerStyle.Render(fmt.Sprintf("Missions for %s  (%d/%d done)", m.log.LastResetDate, done, total))
	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View())
}

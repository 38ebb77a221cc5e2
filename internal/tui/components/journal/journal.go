package journal

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/models"
)

// AddEntryMsg asks the host to open the new-entry form
type AddEntryMsg struct{}

var moodIcons = map[constants.Mood]string{
	constants.MoodGreat: "😄",
	constants.MoodGood:  "🙂",
	constants.MoodOkay:  "😐",
	constants.MoodBad:   "🙁",
	constants.MoodAwful: "😣",
}

// MoodIcon returns the emoji shown for a mood.
func MoodIcon(m constants.Mood) string {
	if icon, ok := moodIcons[m]; ok {
		return icon
	}
	return "•"
}

type Item struct {
	Entry models.JournalEntry
}

func (i Item) Title() string {
	return fmt.Sprintf("%s %s", MoodIcon(i.Entry.Mood), i.Entry.Mood)
}

func (i Item) Description() string {
	when := i.Entry.CreatedAt.Format("2006-01-02 15:04")
	if i.Entry.Note == "" {
		return when
	}
	return when + "  " + i.Entry.Note
}

func (i Item) FilterValue() string { return i.Entry.Note }

type KeyMap struct {
	Add key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add entry"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func (m Model) Keys() KeyMap { return m.keys }

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Journal"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add}
	}

	return Model{list: l, keys: keys}
}

func (m *Model) SetEntries(entries []models.JournalEntry) {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e}
	}
	m.list.SetItems(items)
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if key.Matches(msg, m.keys.Add) {
			return m, func() tea.Msg { return AddEntryMsg{} }
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No journal entries yet.\n  Press 'a' to log how you feel."
	}
	return m.list.View()
}

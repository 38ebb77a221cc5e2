package breathing

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/quitnow/internal/breathing"
)

// FinishedMsg reports a stopped exercise
type FinishedMsg struct {
	Cycles int
}

const maxBubble = 12

var (
	phaseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 0)

	bubbleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type KeyMap struct {
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter", "s"),
			key.WithHelp("space", "start/stop"),
		),
	}
}

type Model struct {
	pattern breathing.Pattern
	session *breathing.Session
	status  breathing.Status
	keys    KeyMap
	width   int
	height  int
}

func (m Model) Keys() KeyMap { return m.keys }

func New() Model {
	return Model{
		pattern: breathing.DefaultPattern(),
		keys:    DefaultKeyMap(),
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) Running() bool { return m.session != nil }

func (m Model) Status() breathing.Status { return m.status }

// Start begins an exercise at now.
func (m *Model) Start(now time.Time) {
	m.session = breathing.NewSession(m.pattern, now)
	m.status = m.session.Status(now)
}

// Stop ends the exercise and returns the completed breaths.
func (m *Model) Stop() int {
	cycles := m.status.Cycles
	m.session = nil
	m.status = breathing.Status{}
	return cycles
}

// Advance moves a running exercise to now.
func (m *Model) Advance(now time.Time) {
	if m.session != nil {
		m.status = m.session.Status(now)
	}
}

// Update needs the current time to start a session, so key handling takes it explicitly.
func (m Model) Update(msg tea.Msg, now time.Time) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Toggle) {
		if m.Running() {
			cycles := m.Stop()
			return m, func() tea.Msg { return FinishedMsg{Cycles: cycles} }
		}
		m.Start(now)
	}
	return m, nil
}

func (m Model) View() string {
	var content string
	if !m.Running() {
		content = lipgloss.JoinVertical(lipgloss.Center,
			phaseStyle.Render("Paced breathing"),
			fmt.Sprintf("Breathe in %s, hold %s, breathe out %s.",
				m.pattern.Inhale, m.pattern.Hold, m.pattern.Exhale),
			mutedStyle.Render("Press space to start."),
		)
	} else {
		content = lipgloss.JoinVertical(lipgloss.Center,
			phaseStyle.Render(m.status.Phase.String()),
			bubbleStyle.Render(strings.Repeat("●", m.bubbleSize())),
			fmt.Sprintf("%d s", int((m.status.Remaining+time.Second-1)/time.Second)),
			mutedStyle.Render(fmt.Sprintf("%d breath(s) completed. Press space to stop.", m.status.Cycles)),
		)
	}

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

// bubbleSize grows while inhaling, stays full while holding and shrinks while exhaling
func (m Model) bubbleSize() int {
	frac := func(remaining, total time.Duration) float64 {
		if total <= 0 {
			return 1
		}
		return 1 - float64(remaining)/float64(total)
	}
	var size float64
	switch m.status.Phase {
	case breathing.Inhale:
		size = frac(m.status.Remaining, m.pattern.Inhale)
	case breathing.Hold:
		size = 1
	case breathing.Exhale:
		size = 1 - frac(m.status.Remaining, m.pattern.Exhale)
	}
	n := int(size*maxBubble + 0.5)
	if n < 1 {
		n = 1
	}
	return n
}

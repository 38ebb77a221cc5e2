package emergency

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestTipNavigation(t *testing.T) {
	m := New()
	right := tea.KeyMsg{Type: tea.KeyRight}
	left := tea.KeyMsg{Type: tea.KeyLeft}

	m, _ = m.Update(right)
	if m.Selected() != 1 {
		t.Fatalf("selected = %d, want 1", m.Selected())
	}
	if !strings.Contains(m.View(), "4-7-8") {
		t.Error("second tip should be the 4-7-8 technique")
	}

	m, _ = m.Update(right)
	if m.Selected() != 0 {
		t.Errorf("navigation should wrap, selected = %d", m.Selected())
	}
	m, _ = m.Update(left)
	if m.Selected() != len(Tips)-1 {
		t.Errorf("left should wrap to the last tip, selected = %d", m.Selected())
	}
}

func TestStartBreathing(t *testing.T) {
	_, cmd := New().Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(StartBreathingMsg); !ok {
		t.Error("expected StartBreathingMsg")
	}
}

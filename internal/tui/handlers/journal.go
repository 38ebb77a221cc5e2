package handlers

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/tui/components/journal"
	"github.com/julianstephens/quitnow/internal/tui/state"
)

// HandleAddJournalState handles the add journal entry state
func HandleAddJournalState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.FormError = ""
		m.State = constants.StateJournal
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		if _, err := m.Controller.Journal().Add(m.JournalForm.Mood, m.JournalForm.Note, m.Now()); err != nil {
			// Stay in form state on error to allow retry
			m.FormError = "Failed to save entry: " + err.Error()
			m.Form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}
		m.RefreshJournal()
		m.FormError = ""
		m.State = constants.StateJournal
	case huh.StateAborted:
		m.FormError = ""
		m.State = constants.StateJournal
	}
	return tea.Batch(cmds...)
}

// HandleJournalMessages handles messages from the journal component
func HandleJournalMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg.(type) {
	case journal.AddEntryMsg:
		m.JournalForm = &state.JournalFormModel{Mood: constants.MoodOkay}
		m.Form = NewJournalForm(m.JournalForm)
		m.State = constants.StateAddJournal
		return true, m.Form.Init()
	}
	return false, nil
}

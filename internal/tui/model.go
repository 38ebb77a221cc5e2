// Package tui is the interactive dashboard.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/quitnow/internal/app"
	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/tui/components/dashboard"
	"github.com/julianstephens/quitnow/internal/tui/handlers"
	"github.com/julianstephens/quitnow/internal/tui/state"
)

type Model struct {
	state.Model
}

// NewModel loads the current state; a missing profile opens the survey.
func NewModel(controller *app.Controller, clock app.Clock) Model {
	m := Model{Model: state.New(controller, clock)}
	if m.State == constants.StateOnboarding {
		handlers.StartOnboarding(&m.Model)
	}
	return m
}

func (m Model) actionKeys() []key.Binding {
	switch m.State {
	case constants.StateMissions:
		return []key.Binding{m.MissionsModel.Keys().Toggle}
	case constants.StateJournal:
		return []key.Binding{m.JournalModel.Keys().Add}
	case constants.StateBreathing:
		return []key.Binding{m.BreathingModel.Keys().Toggle}
	case constants.StateSettings:
		return []key.Binding{m.SettingsModel.Keys().Edit, m.SettingsModel.Keys().Reset}
	}
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	if m.State == constants.StateEmergency {
		return []key.Binding{m.Keys.Back}
	}
	keys := []key.Binding{m.Keys.Tab, m.Keys.Emergency, m.Keys.Quit, m.Keys.Help}
	return append(keys, m.actionKeys()...)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.Keys.Tab, m.Keys.ShiftTab, m.Keys.Emergency, m.Keys.Quit, m.Keys.Help}
	navigation := []key.Binding{m.Keys.Up, m.Keys.Down, m.Keys.Left, m.Keys.Right, m.Keys.Back}
	return [][]key.Binding{global, navigation, m.actionKeys()}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{dashboard.Tick()}
	if m.State == constants.StateOnboarding && m.Form != nil {
		cmds = append(cmds, m.Form.Init())
	}
	return tea.Batch(cmds...)
}

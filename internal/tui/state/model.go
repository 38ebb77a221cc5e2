package state

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/quitnow/internal/app"
	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/onboarding"
	"github.com/julianstephens/quitnow/internal/tui/components/breathing"
	"github.com/julianstephens/quitnow/internal/tui/components/dashboard"
	"github.com/julianstephens/quitnow/internal/tui/components/emergency"
	"github.com/julianstephens/quitnow/internal/tui/components/journal"
	"github.com/julianstephens/quitnow/internal/tui/components/missions"
	onboardingview "github.com/julianstephens/quitnow/internal/tui/components/onboarding"
	"github.com/julianstephens/quitnow/internal/tui/components/settings"
	"github.com/julianstephens/quitnow/internal/validation"
)

// JournalFormModel represents the form model for a new journal entry
type JournalFormModel struct {
	Mood constants.Mood
	Note string
}

// SettingsFormModel represents the form model for settings
type SettingsFormModel struct {
	NotificationsEnabled bool
	Timezone             string
	MissionCatalog       string
	CurrencySymbol       string
}

// OnboardingFormModel holds the raw answers typed into the survey
type OnboardingFormModel struct {
	Cigarettes string
	Years      string
	Price      string
	Committed  bool
}

// ConfirmationFormModel represents a yes/no prompt
type ConfirmationFormModel struct {
	Message   string
	Confirmed bool
}

// Model represents the shared state for the TUI
type Model struct {
	Controller          *app.Controller
	Clock               app.Clock
	App                 app.State
	State               constants.SessionState
	PreviousState       constants.SessionState
	Keys                KeyMap
	Help                help.Model
	DashboardModel      dashboard.Model
	MissionsModel       missions.Model
	JournalModel        journal.Model
	BreathingModel      breathing.Model
	EmergencyModel      emergency.Model
	SettingsModel       settings.Model
	OnboardingModel     onboardingview.Model
	Flow                *onboarding.Flow
	Form                *huh.Form
	JournalForm         *JournalFormModel
	SettingsForm        *SettingsFormModel
	OnboardingForm      *OnboardingFormModel
	ConfirmationForm    *ConfirmationFormModel
	Quitting            bool
	Width               int
	Height              int
	ValidationWarning   string                // Validation warning message to display
	ValidationConflicts []validation.Conflict // Detailed conflict information
	FormError           string                // Error message to display for form operations
	StatusMessage       string
}

// New creates a new state Model and loads the starting state from the controller
func New(controller *app.Controller, clock app.Clock) Model {
	m := Model{
		Controller:      controller,
		Clock:           clock,
		State:           constants.StateDashboard,
		Keys:            DefaultKeyMap(),
		Help:            help.New(),
		DashboardModel:  dashboard.New(),
		MissionsModel:   missions.New(0, 0),
		JournalModel:    journal.New(0, 0),
		BreathingModel:  breathing.New(),
		EmergencyModel:  emergency.New(),
		SettingsModel:   settings.New(),
		OnboardingModel: onboardingview.New(),
	}

	s, err := controller.Start(m.Now())
	if err != nil {
		m.FormError = "Failed to load progress: " + err.Error()
	}
	m.Apply(s)
	if s.Phase == app.PhaseOnboarding {
		m.State = constants.StateOnboarding
	}
	m.RefreshJournal()
	return m
}

func (m *Model) Now() time.Time {
	if m.Clock == nil {
		return time.Now()
	}
	return m.Clock.Now()
}

// Apply stores a controller snapshot and pushes it into the views
func (m *Model) Apply(s app.State) {
	m.App = s
	m.DashboardModel.SetState(s)
	m.MissionsModel.SetMissions(s.Missions)
	m.SettingsModel.SetSettings(s.Settings)
	m.OnboardingModel.SetCurrency(s.Settings.CurrencySymbol)
	m.UpdateValidationStatus()
}

// RefreshJournal reloads the journal list
func (m *Model) RefreshJournal() {
	entries, err := m.Controller.Journal().List()
	if err != nil {
		m.FormError = "Failed to load journal: " + err.Error()
		return
	}
	m.JournalModel.SetEntries(entries)
}

// IsMainView reports whether the active state is one of the tabbed views
func (m *Model) IsMainView() bool {
	switch m.State {
	case constants.StateDashboard, constants.StateMissions, constants.StateJournal,
		constants.StateBreathing, constants.StateSettings:
		return true
	}
	return false
}

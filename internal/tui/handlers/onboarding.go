package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/onboarding"
	"github.com/julianstephens/quitnow/internal/tui/state"
)

const motivationText = "Twenty minutes after your last cigarette your heart rate drops. " +
	"After a day, carbon monoxide in your blood is back to normal. " +
	"Within weeks, breathing and circulation improve. Every hour you hold out counts."

// StartOnboarding opens the first survey step
func StartOnboarding(m *state.Model) tea.Cmd {
	m.Flow = m.Controller.NewOnboarding()
	p := m.Flow.Profile()
	m.OnboardingForm = &state.OnboardingFormModel{
		Cigarettes: fmt.Sprint(p.CigarettesPerDay),
		Years:      fmt.Sprint(p.YearsSmoking),
		Price:      fmt.Sprintf("%.2f", p.PackPrice),
		Committed:  true,
	}
	m.State = constants.StateOnboarding
	m.Form = NewOnboardingStepForm(m.Flow, m.OnboardingForm)
	return m.Form.Init()
}

// NewOnboardingStepForm creates the form for the flow's current step
func NewOnboardingStepForm(flow *onboarding.Flow, fm *state.OnboardingFormModel) *huh.Form {
	var fields []huh.Field
	switch flow.Step() {
	case onboarding.StepWelcome:
		fields = append(fields, huh.NewNote().
			Title("Welcome to quitnow").
			Description("A few questions about your habit, then your smoke-free clock starts.").
			Next(true).
			NextLabel("Start"))
	case onboarding.StepHabit:
		fields = append(fields,
			huh.NewInput().
				Title("How many cigarettes a day?").
				Value(&fm.Cigarettes).
				Validate(flow.SetCigarettesPerDay),
			huh.NewInput().
				Title("For how many years?").
				Value(&fm.Years).
				Validate(flow.SetYearsSmoking),
		)
	case onboarding.StepPrice:
		fields = append(fields, huh.NewInput().
			Title("Price of one pack").
			Value(&fm.Price).
			Validate(flow.SetPackPrice))
	case onboarding.StepDiagnostics:
		fields = append(fields, huh.NewNote().
			Title("What smoking has cost you so far").
			Next(true).
			NextLabel("Continue"))
	case onboarding.StepMotivation:
		fields = append(fields, huh.NewNote().
			Title("Your body starts healing right away").
			Description(motivationText).
			Next(true).
			NextLabel("Continue"))
	default:
		if flow.IsLast() {
			fields = append(fields, huh.NewConfirm().
				Title("Ready to quit now?").
				Description("Your quit moment is recorded as one hour ago.").
				Affirmative("I'm ready").
				Negative("Not yet").
				Value(&fm.Committed))
		} else {
			fields = append(fields, huh.NewNote().
				Title(flow.Step().String()).
				Next(true).
				NextLabel("Continue"))
		}
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeDracula())
}

// HandleOnboardingState handles the survey. Esc goes back one step.
func HandleOnboardingState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		if m.Flow.Step() > onboarding.StepWelcome {
			m.Flow.Back()
			m.Form = NewOnboardingStepForm(m.Flow, m.OnboardingForm)
			return m.Form.Init()
		}
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		if !m.Flow.IsLast() {
			m.Flow.Next()
			m.Form = NewOnboardingStepForm(m.Flow, m.OnboardingForm)
			return tea.Batch(append(cmds, m.Form.Init())...)
		}
		if !m.OnboardingForm.Committed {
			m.StatusMessage = "Take your time. Come back when you're ready."
			m.OnboardingForm.Committed = true
			m.Form = NewOnboardingStepForm(m.Flow, m.OnboardingForm)
			return tea.Batch(append(cmds, m.Form.Init())...)
		}

		s, err := m.Controller.CompleteOnboarding(m.Flow, m.Now())
		if err != nil {
			m.FormError = err.Error()
			m.Form = NewOnboardingStepForm(m.Flow, m.OnboardingForm)
			return tea.Batch(append(cmds, m.Form.Init())...)
		}
		m.Apply(s)
		m.Flow = nil
		m.FormError = ""
		m.StatusMessage = "Your smoke-free clock is running."
		m.State = constants.StateDashboard
	case huh.StateAborted:
		m.Quitting = true
		return tea.Quit
	}
	return tea.Batch(cmds...)
}

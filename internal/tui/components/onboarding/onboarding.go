package onboarding

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/quitnow/internal/models"
	"github.com/julianstephens/quitnow/internal/onboarding"
	"github.com/julianstephens/quitnow/internal/utils"
)

const barWidth = 30

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginBottom(1)

	barFull  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	barEmpty = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	statStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 2).
			MarginTop(1)

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Model renders the survey chrome around the current step's form
type Model struct {
	currency string
	width    int
	height   int
}

func New() Model {
	return Model{}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) SetCurrency(symbol string) {
	m.currency = symbol
}

// ProgressBar renders percent as a fixed-width bar.
func ProgressBar(percent int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * barWidth / 100
	return barFull.Render(strings.Repeat("█", filled)) + barEmpty.Render(strings.Repeat("░", barWidth-filled))
}

func (m Model) View(flow *onboarding.Flow, form string) string {
	if flow == nil {
		return form
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("Getting started · step %d of %d", int(flow.Step()), flow.Steps())),
		ProgressBar(flow.ProgressPercent())+mutedStyle.Render(fmt.Sprintf(" %d%%", flow.ProgressPercent())),
	)

	parts := []string{header, form}
	switch flow.Step() {
	case onboarding.StepPrice:
		parts = append(parts, m.spending(flow.SpendingEstimate()))
	case onboarding.StepDiagnostics:
		if d := flow.Diagnostics(); d != nil {
			parts = append(parts, m.diagnostics(*d))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (m Model) spending(e models.SpendingEstimate) string {
	return mutedStyle.Render(fmt.Sprintf("You currently spend about %s a month and %s a year.",
		utils.FormatMoney(m.currency, e.Monthly), utils.FormatMoney(m.currency, e.Yearly)))
}

func (m Model) diagnostics(d models.Diagnostics) string {
	return statStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("Cigarettes smoked:  %d", d.TotalCigarettesLifetime),
		fmt.Sprintf("Life lost:          %d days", d.TimeLostDays),
		fmt.Sprintf("Money spent:        %s", utils.FormatMoney(m.currency, d.MoneySpentLifetime)),
	))
}

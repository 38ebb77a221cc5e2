package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/missions"
	"github.com/julianstephens/quitnow/internal/tui/components/journal"
	"github.com/julianstephens/quitnow/internal/tui/state"
	"github.com/julianstephens/quitnow/internal/utils"
)

// NewJournalForm creates a new form for adding a journal entry
func NewJournalForm(fm *state.JournalFormModel) *huh.Form {
	options := make([]huh.Option[constants.Mood], len(constants.Moods))
	for i, mood := range constants.Moods {
		options[i] = huh.NewOption(fmt.Sprintf("%s %s", journal.MoodIcon(mood), mood), mood)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[constants.Mood]().
				Title("How are you feeling?").
				Options(options...).
				Value(&fm.Mood),
			huh.NewText().
				Title("Note").
				Description("Optional. What triggered it, what helped.").
				Value(&fm.Note),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewSettingsForm creates a new form for editing settings
func NewSettingsForm(fm *state.SettingsFormModel) *huh.Form {
	catalogs := make([]huh.Option[string], 0)
	for _, name := range missions.Names() {
		catalogs = append(catalogs, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Desktop notifications").
				Value(&fm.NotificationsEnabled),
			huh.NewInput().
				Title("Timezone").
				Description("IANA name, or Local").
				Value(&fm.Timezone).
				Validate(func(s string) error {
					if !utils.ValidateTimezone(strings.TrimSpace(s)) {
						return fmt.Errorf("unknown timezone")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Mission catalog").
				Options(catalogs...).
				Value(&fm.MissionCatalog),
			huh.NewInput().
				Title("Currency symbol").
				Value(&fm.CurrencySymbol).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" || len([]rune(s)) > 4 {
						return fmt.Errorf("use 1 to 4 characters")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewConfirmationForm creates a yes/no form
func NewConfirmationForm(fm *state.ConfirmationFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fm.Message).
				Affirmative("Yes").
				Negative("No").
				Value(&fm.Confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}

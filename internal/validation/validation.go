package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/quitnow/internal/models"
	"github.com/julianstephens/quitnow/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidSetting   ConflictType = "invalid_setting"
	ConflictNegativeValue    ConflictType = "negative_value"
	ConflictFutureQuitMoment ConflictType = "future_quit_moment"
	ConflictCatalogMismatch  ConflictType = "catalog_mismatch"
	ConflictStaleMissions    ConflictType = "stale_missions"
)

// Conflict represents a detected problem in stored data
type Conflict struct {
	Type        ConflictType
	Description string
	Field       string // setting or profile field involved, if any
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Merge appends the conflicts of other
func (vr *ValidationResult) Merge(other ValidationResult) {
	vr.Conflicts = append(vr.Conflicts, other.Conflicts...)
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d conflict(s):\n", len(vr.Conflicts))
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks settings, profiles and mission logs
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the tzname rule registered.
func New() *Validator {
	v := validator.New()
	// Report fields by their persisted names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// "Local" is accepted, which the built-in timezone tag rejects
	_ = v.RegisterValidation("tzname", func(fl validator.FieldLevel) bool {
		return utils.ValidateTimezone(fl.Field().String())
	})
	return &Validator{validate: v}
}

// ValidateSettings reports every settings field that fails its rules.
func (v *Validator) ValidateSettings(settings models.Settings) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	err := v.validate.Struct(settings)
	if err == nil {
		return result
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidSetting,
			Description: fmt.Sprintf("Settings could not be validated: %v", err),
		})
		return result
	}

	for _, fe := range fieldErrs {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidSetting,
			Field:       fe.Field(),
			Description: describeFieldError(fe),
		})
	}
	return result
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Setting %s must not be empty", fe.Field())
	case "tzname":
		return fmt.Sprintf("Setting %s has unknown timezone %q", fe.Field(), fe.Value())
	case "oneof":
		return fmt.Sprintf("Setting %s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("Setting %s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("Setting %s failed %s validation", fe.Field(), fe.Tag())
	}
}

// ValidateProfile flags values that make the derived statistics meaningless.
// Onboarding accepts these values; this check only reports them.
func (v *Validator) ValidateProfile(profile models.Profile, now time.Time) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if profile.CigarettesPerDay < 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictNegativeValue,
			Field:       "cigarettesPerDay",
			Description: fmt.Sprintf("Cigarettes per day is negative (%d)", profile.CigarettesPerDay),
		})
	}
	if profile.YearsSmoking < 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictNegativeValue,
			Field:       "yearsSmoking",
			Description: fmt.Sprintf("Years smoking is negative (%g)", profile.YearsSmoking),
		})
	}
	if profile.PackPrice < 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictNegativeValue,
			Field:       "packPrice",
			Description: fmt.Sprintf("Pack price is negative (%.2f)", profile.PackPrice),
		})
	}
	if profile.HasQuit() && profile.QuitMoment.After(now) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictFutureQuitMoment,
			Field:       "quitMoment",
			Description: fmt.Sprintf("Quit moment %s is in the future", profile.QuitMoment.Format(time.RFC3339)),
		})
	}
	return result
}

// ValidateMissionLog compares a stored log against the active catalog and today's date.
func (v *Validator) ValidateMissionLog(log models.MissionLog, catalog []models.Mission, today models.CalendarDate) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if len(log.Missions) != len(catalog) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictCatalogMismatch,
			Description: fmt.Sprintf("Stored checklist has %d missions, catalog has %d", len(log.Missions), len(catalog)),
		})
	} else {
		for i := range catalog {
			if log.Missions[i].ID != catalog[i].ID {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictCatalogMismatch,
					Description: fmt.Sprintf("Stored mission %d does not match catalog mission %d", log.Missions[i].ID, catalog[i].ID),
				})
				break
			}
		}
	}

	if !log.LastResetDate.IsZero() && log.LastResetDate != today {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictStaleMissions,
			Description: fmt.Sprintf("Checklist was last reset on %s and will reset on next access", log.LastResetDate),
		})
	}
	return result
}

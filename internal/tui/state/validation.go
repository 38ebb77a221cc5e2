package state

import (
	"fmt"

	"github.com/julianstephens/quitnow/internal/validation"
)

// UpdateValidationStatus checks the profile and settings and updates the warning message
func (m *Model) UpdateValidationStatus() {
	validator := validation.New()

	result := validator.ValidateSettings(m.App.Settings)
	if m.App.Profile != nil {
		result.Merge(validator.ValidateProfile(*m.App.Profile, m.Now()))
	}

	m.ValidationConflicts = result.Conflicts
	if len(result.Conflicts) > 0 {
		m.ValidationWarning = fmt.Sprintf("⚠ %d validation warning(s)", len(result.Conflicts))
	} else {
		m.ValidationWarning = ""
	}
}

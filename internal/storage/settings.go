package storage

import (
	"errors"
	"fmt"

	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/logger"
	"github.com/julianstephens/quitnow/internal/models"
)

// GetSettings returns the persisted settings, falling back to defaults when
// none are stored or the record is unreadable.
func GetSettings(p Provider) (models.Settings, error) {
	var settings models.Settings
	err := GetJSON(p, constants.KeySettings, &settings)
	switch {
	case err == nil:
		models.ApplyDefaultSettings(&settings)
		return settings, nil
	case errors.Is(err, ErrNotFound):
		return models.DefaultSettings(), nil
	case IsAbsent(err):
		logger.Warn("Settings record unreadable, using defaults", "error", err)
		return models.DefaultSettings(), nil
	default:
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
}

// SaveSettings persists the settings record.
func SaveSettings(p Provider, settings models.Settings) error {
	return SetJSON(p, constants.KeySettings, settings)
}

// EnsureDefaultSettings writes default settings if none are stored yet.
func EnsureDefaultSettings(p Provider) error {
	if _, err := p.Get(constants.KeySettings); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	if err := SaveSettings(p, models.DefaultSettings()); err != nil {
		return fmt.Errorf("failed to save default settings: %w", err)
	}
	return nil
}

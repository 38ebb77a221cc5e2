package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/quitnow/internal/constants"
)

// DefaultSettings returns the settings written on first initialization.
func DefaultSettings() Settings {
	return Settings{
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		Timezone:             constants.DefaultTimezone,
		MissionCatalog:       constants.DefaultMissionCatalog,
		CurrencySymbol:       constants.DefaultCurrencySymbol,
	}
}

// SetSettingValue updates a single setting from its key and string value.
func SetSettingValue(settings *Settings, key, value string) error {
	switch key {
	case constants.SettingNotificationsEnabled:
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", key, err)
		}
		settings.NotificationsEnabled = enabled
	case constants.SettingTimezone:
		settings.Timezone = value
	case constants.SettingMissionCatalog:
		settings.MissionCatalog = value
	case constants.SettingCurrencySymbol:
		settings.CurrencySymbol = value
	default:
		return fmt.Errorf("unknown setting: %s", key)
	}
	return nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingNotificationsEnabled: fmt.Sprintf("%v", settings.NotificationsEnabled),
		constants.SettingTimezone:             settings.Timezone,
		constants.SettingMissionCatalog:       settings.MissionCatalog,
		constants.SettingCurrencySymbol:       settings.CurrencySymbol,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.MissionCatalog == "" {
		settings.MissionCatalog = constants.DefaultMissionCatalog
	}
	if settings.CurrencySymbol == "" {
		settings.CurrencySymbol = constants.DefaultCurrencySymbol
	}
}

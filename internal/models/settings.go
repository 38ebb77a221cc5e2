package models

// Settings represents application-wide settings
type Settings struct {
	NotificationsEnabled bool   `json:"notifications_enabled"`                                     // whether reminders are sent to the tray
	Timezone             string `json:"timezone" validate:"required,tzname"`                       // IANA timezone name, or "Local" for the system timezone
	MissionCatalog       string `json:"mission_catalog" validate:"required,oneof=default classic"` // which daily checklist to use
	CurrencySymbol       string `json:"currency_symbol" validate:"required,max=4"`                 // prefix for money amounts
}

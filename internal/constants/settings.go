package constants

const (
	// General Settings
	SettingNotificationsEnabled = "notifications_enabled"
	SettingTimezone             = "timezone"
	SettingMissionCatalog       = "mission_catalog"
	SettingCurrencySymbol       = "currency_symbol"

	// Default Settings Values
	DefaultNotificationsEnabled = false
	DefaultTimezone             = "Local" // Use system local timezone by default
	DefaultMissionCatalog       = CatalogDefault
	DefaultCurrencySymbol       = "R$"
)

// NotificationHour pairs a local hour with the message category used at that hour
type NotificationHour struct {
	Hour     int
	Category NotificationCategory
}

// DailyNotificationHours are the reminder slots scheduled each day
var DailyNotificationHours = []NotificationHour{
	{Hour: 8, Category: NotifyMorning},
	{Hour: 12, Category: NotifyAfternoon},
	{Hour: 18, Category: NotifyEvening},
	{Hour: 21, Category: NotifyEvening},
}

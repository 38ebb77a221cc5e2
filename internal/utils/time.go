package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/quitnow/internal/models"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// TodayIn returns the calendar date of now as seen from timezone.
// Mission rollover uses this so "today" follows the configured timezone.
func TodayIn(now time.Time, timezone string) (models.CalendarDate, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return models.CalendarDate{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return models.DateOf(now.In(loc)), nil
}

// AtHour returns the given hour on now's calendar day, in now's location.
func AtHour(now time.Time, hour int) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, now.Location())
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// FormatMoney renders an amount with two decimals after the currency symbol.
func FormatMoney(symbol string, amount float64) string {
	return fmt.Sprintf("%s %.2f", symbol, amount)
}

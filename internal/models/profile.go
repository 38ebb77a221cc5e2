package models

import "time"

// Profile holds the smoking-habit parameters collected during onboarding and
// the moment from which all abstinence statistics are measured.
type Profile struct {
	CigarettesPerDay int        `json:"cigarettesPerDay"`
	YearsSmoking     float64    `json:"yearsSmoking"`
	PackPrice        float64    `json:"packPrice"`
	QuitMoment       *time.Time `json:"quitMoment,omitempty"` // absent until onboarding completes
}

// DefaultProfile returns the values the onboarding wizard starts from.
func DefaultProfile() Profile {
	return Profile{
		CigarettesPerDay: 15,
		YearsSmoking:     5,
		PackPrice:        10.0,
	}
}

// HasQuit reports whether a quit moment has been recorded.
func (p Profile) HasQuit() bool {
	return p.QuitMoment != nil && !p.QuitMoment.IsZero()
}

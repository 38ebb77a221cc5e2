package models

import "time"

// DerivedStats are recomputed from the profile on every tick and never persisted
type DerivedStats struct {
	Started           bool          // false when the profile has no quit moment
	Elapsed           time.Duration // now - quit moment
	Days              int
	Hours             int
	Minutes           int
	CigarettesAvoided int
	MoneySaved        float64
	LifeReclaimed     time.Duration
}

// LifeReclaimedHours returns the reclaimed life in whole hours.
func (s DerivedStats) LifeReclaimedHours() int {
	return int(s.LifeReclaimed / time.Hour)
}

// Diagnostics are the one-time projections shown during onboarding
type Diagnostics struct {
	TotalCigarettesLifetime int
	TimeLostDays            int
	MoneySpentLifetime      float64
}

// SpendingEstimate is the current spend rate shown on the price step
type SpendingEstimate struct {
	Monthly float64
	Yearly  float64
}

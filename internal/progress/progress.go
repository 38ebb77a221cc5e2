// Package progress derives every displayed statistic from the profile.
// All functions are pure.
package progress

import (
	"math"
	"time"

	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/models"
)

// ComputeStats derives the abstinence statistics at now. A profile without a
// quit moment yields a zero result with Started false. A quit moment after now
// is treated as zero elapsed time.
func ComputeStats(p models.Profile, now time.Time) models.DerivedStats {
	if !p.HasQuit() {
		return models.DerivedStats{}
	}

	elapsed := now.Sub(*p.QuitMoment)
	if elapsed < 0 {
		elapsed = 0
	}

	elapsedMinutes := int64(elapsed / time.Minute)
	avoided := CigarettesAvoided(p.CigarettesPerDay, elapsedMinutes)

	totalMinutes := int(elapsedMinutes)
	return models.DerivedStats{
		Started:           true,
		Elapsed:           elapsed,
		Days:              totalMinutes / constants.MinutesPerDay,
		Hours:             (totalMinutes % constants.MinutesPerDay) / 60,
		Minutes:           totalMinutes % 60,
		CigarettesAvoided: avoided,
		MoneySaved:        float64(avoided) * PricePerCigarette(p.PackPrice),
		LifeReclaimed:     time.Duration(avoided*constants.MinutesOfLifePerCig) * time.Minute,
	}
}

// CigarettesAvoided is floor(perDay / 1440 × minutes).
func CigarettesAvoided(perDay int, elapsedMinutes int64) int {
	if elapsedMinutes <= 0 || perDay <= 0 {
		return 0
	}
	return int(math.Floor(float64(perDay) / constants.MinutesPerDay * float64(elapsedMinutes)))
}

// PricePerCigarette splits the pack price across a standard pack.
func PricePerCigarette(packPrice float64) float64 {
	return packPrice / constants.CigarettesPerPack
}

// ComputeOnboardingDiagnostics projects the lifetime cost of the habit.
func ComputeOnboardingDiagnostics(cigsPerDay int, yearsSmoking, packPrice float64) models.Diagnostics {
	total := float64(cigsPerDay) * constants.DaysPerYear * yearsSmoking
	lostMinutes := total * constants.MinutesOfLifePerCig
	return models.Diagnostics{
		TotalCigarettesLifetime: int(math.Round(total)),
		TimeLostDays:            int(math.Round(lostMinutes / 60 / 24)),
		MoneySpentLifetime:      float64(cigsPerDay) / constants.CigarettesPerPack * packPrice * constants.DaysPerYear * yearsSmoking,
	}
}

// EstimateSpending is the current monthly and yearly spend at the given rate.
func EstimateSpending(cigsPerDay int, packPrice float64) models.SpendingEstimate {
	monthly := float64(cigsPerDay) / constants.CigarettesPerPack * packPrice * constants.DaysPerMonthEstimate
	return models.SpendingEstimate{
		Monthly: monthly,
		Yearly:  monthly * 12,
	}
}

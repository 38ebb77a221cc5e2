// Package onboarding implements the first-run survey.
package onboarding

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/models"
	"github.com/julianstephens/quitnow/internal/progress"
)

// Step identifies a survey page. Steps are numbered from 1.
type Step int

const (
	StepWelcome Step = iota + 1
	StepHabit
	StepPrice
	StepDiagnostics
	StepMotivation
	StepCommitment
)

func (s Step) String() string {
	switch s {
	case StepWelcome:
		return "welcome"
	case StepHabit:
		return "habit"
	case StepPrice:
		return "price"
	case StepDiagnostics:
		return "diagnostics"
	case StepMotivation:
		return "motivation"
	case StepCommitment:
		return "commitment"
	default:
		return fmt.Sprintf("step %d", int(s))
	}
}

// Saver persists the finished profile
type Saver interface {
	Save(models.Profile) error
}

// Config controls the shape of the survey
type Config struct {
	Steps           int
	DiagnosticsStep Step
}

func DefaultConfig() Config {
	return Config{
		Steps:           constants.DefaultOnboardingSteps,
		DiagnosticsStep: StepDiagnostics,
	}
}

// Flow holds the answers collected so far and the current step.
type Flow struct {
	cfg         Config
	step        Step
	profile     models.Profile
	diagnostics *models.Diagnostics
	saver       Saver
	onComplete  func(models.Profile)
}

// New starts a flow at step 1 with the default answers. onComplete may be nil.
func New(cfg Config, saver Saver, onComplete func(models.Profile)) *Flow {
	if cfg.Steps < 1 {
		cfg.Steps = constants.DefaultOnboardingSteps
	}
	return &Flow{
		cfg:        cfg,
		step:       StepWelcome,
		profile:    models.DefaultProfile(),
		saver:      saver,
		onComplete: onComplete,
	}
}

func (f *Flow) Step() Step              { return f.step }
func (f *Flow) Steps() int              { return f.cfg.Steps }
func (f *Flow) Profile() models.Profile { return f.profile }
func (f *Flow) IsLast() bool            { return int(f.step) == f.cfg.Steps }

// Diagnostics returns the projections computed on reaching the diagnostics
// step, or nil if that step has not been reached.
func (f *Flow) Diagnostics() *models.Diagnostics {
	return f.diagnostics
}

// SpendingEstimate is shown alongside the price question
func (f *Flow) SpendingEstimate() models.SpendingEstimate {
	return progress.EstimateSpending(f.profile.CigarettesPerDay, f.profile.PackPrice)
}

// SetCigarettesPerDay parses an integer count. On error the previous value is kept.
func (f *Flow) SetCigarettesPerDay(raw string) error {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("cigarettes per day must be a whole number: %q", raw)
	}
	f.profile.CigarettesPerDay = n
	return nil
}

// SetYearsSmoking parses a number of years; fractions are allowed.
func (f *Flow) SetYearsSmoking(raw string) error {
	v, err := parseNumber(raw)
	if err != nil {
		return fmt.Errorf("years smoking must be a number: %q", raw)
	}
	f.profile.YearsSmoking = v
	return nil
}

// SetPackPrice parses a price and rounds it to two decimals.
func (f *Flow) SetPackPrice(raw string) error {
	v, err := parseNumber(raw)
	if err != nil {
		return fmt.Errorf("pack price must be a number: %q", raw)
	}
	f.profile.PackPrice = math.Round(v*100) / 100
	return nil
}

// parseNumber accepts a decimal comma as well as a decimal point.
func parseNumber(raw string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a number")
	}
	return v, nil
}

// Next advances one step, stopping at the last.
func (f *Flow) Next() Step {
	if int(f.step) < f.cfg.Steps {
		f.step++
	}
	if f.step == f.cfg.DiagnosticsStep {
		d := progress.ComputeOnboardingDiagnostics(f.profile.CigarettesPerDay, f.profile.YearsSmoking, f.profile.PackPrice)
		f.diagnostics = &d
	}
	return f.step
}

// Back returns one step, stopping at the first.
func (f *Flow) Back() Step {
	if f.step > StepWelcome {
		f.step--
	}
	return f.step
}

// ProgressPercent is round(step / steps × 100).
func (f *Flow) ProgressPercent() int {
	return int(math.Round(float64(f.step) / float64(f.cfg.Steps) * 100))
}

// Finish records the quit moment one hour before now, saves the profile and
// invokes the completion callback.
func (f *Flow) Finish(now time.Time) (models.Profile, error) {
	quit := now.Add(-constants.QuitMomentGraceOffset)
	p := f.profile
	p.QuitMoment = &quit

	if err := f.saver.Save(p); err != nil {
		return models.Profile{}, err
	}
	f.profile = p
	if f.onComplete != nil {
		f.onComplete(p)
	}
	return p, nil
}

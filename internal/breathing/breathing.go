// Package breathing drives the paced-breathing exercise.
package breathing

import (
	"time"

	"github.com/julianstephens/quitnow/internal/constants"
)

type Phase int

const (
	Inhale Phase = iota
	Hold
	Exhale
)

func (p Phase) String() string {
	switch p {
	case Inhale:
		return "Breathe in"
	case Hold:
		return "Hold"
	case Exhale:
		return "Breathe out"
	default:
		return "unknown"
	}
}

// Pattern is the length of each phase
type Pattern struct {
	Inhale time.Duration
	Hold   time.Duration
	Exhale time.Duration
}

// DefaultPattern is 4 s in, 2 s hold, 4 s out.
func DefaultPattern() Pattern {
	return Pattern{
		Inhale: constants.BreathInhale,
		Hold:   constants.BreathHold,
		Exhale: constants.BreathExhale,
	}
}

// Cycle is the length of one full breath.
func (p Pattern) Cycle() time.Duration {
	return p.Inhale + p.Hold + p.Exhale
}

// Status describes where an exercise is at a point in time
type Status struct {
	Phase     Phase
	Remaining time.Duration // until the phase ends
	Cycles    int           // completed breaths
}

// Advance maps time since the exercise started to a phase.
func (p Pattern) Advance(elapsed time.Duration) Status {
	cycle := p.Cycle()
	if cycle <= 0 {
		return Status{Phase: Inhale}
	}
	if elapsed < 0 {
		elapsed = 0
	}

	st := Status{Cycles: int(elapsed / cycle)}
	in := elapsed % cycle
	switch {
	case in < p.Inhale:
		st.Phase, st.Remaining = Inhale, p.Inhale-in
	case in < p.Inhale+p.Hold:
		st.Phase, st.Remaining = Hold, p.Inhale+p.Hold-in
	default:
		st.Phase, st.Remaining = Exhale, cycle-in
	}
	return st
}

// Session tracks a running exercise from its start time.
type Session struct {
	pattern Pattern
	started time.Time
}

func NewSession(pattern Pattern, start time.Time) *Session {
	return &Session{pattern: pattern, started: start}
}

func (s *Session) Status(now time.Time) Status {
	return s.pattern.Advance(now.Sub(s.started))
}

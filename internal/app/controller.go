// Package app owns the application state shared by the CLI and the TUI.
package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/quitnow/internal/journal"
	"github.com/julianstephens/quitnow/internal/logger"
	"github.com/julianstephens/quitnow/internal/missions"
	"github.com/julianstephens/quitnow/internal/models"
	"github.com/julianstephens/quitnow/internal/notifier"
	"github.com/julianstephens/quitnow/internal/onboarding"
	"github.com/julianstephens/quitnow/internal/profile"
	"github.com/julianstephens/quitnow/internal/progress"
	"github.com/julianstephens/quitnow/internal/storage"
	"github.com/julianstephens/quitnow/internal/utils"
	"github.com/julianstephens/quitnow/internal/validation"
)

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Phase is the top-level screen the user is on
type Phase int

const (
	PhaseOnboarding Phase = iota
	PhaseMain
)

func (p Phase) String() string {
	if p == PhaseMain {
		return "main"
	}
	return "onboarding"
}

// State is everything the views render. Stats are derived and never persisted.
type State struct {
	Profile  *models.Profile
	Missions models.MissionLog
	Stats    models.DerivedStats
	Settings models.Settings
	Phase    Phase
}

// Controller is the single owner of State. Every operation returns a copy of
// the updated state.
type Controller struct {
	provider  storage.Provider
	profiles  *profile.Store
	engine    *missions.Engine
	journal   *journal.Journal
	notify    *notifier.Scheduler
	state     State
	log       *log.Logger
	scheduled models.CalendarDate // day whose reminders are already queued
}

// Option configures a Controller
type Option func(*Controller)

// WithNotifier lets the controller send welcome, daily and crisis notifications.
func WithNotifier(s *notifier.Scheduler) Option {
	return func(c *Controller) { c.notify = s }
}

// New builds a controller over a loaded provider using the persisted settings.
func New(provider storage.Provider, opts ...Option) (*Controller, error) {
	settings, err := storage.GetSettings(provider)
	if err != nil {
		return nil, err
	}
	catalog, err := missions.Lookup(settings.MissionCatalog)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		provider: provider,
		profiles: profile.NewStore(provider),
		engine:   missions.NewEngine(provider, catalog),
		journal:  journal.New(provider),
		state:    State{Settings: settings, Phase: PhaseOnboarding},
		log:      logger.Component("app"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// State returns the current state.
func (c *Controller) State() State {
	return c.snapshot()
}

// Journal exposes the mood journal backed by the same provider.
func (c *Controller) Journal() *journal.Journal {
	return c.journal
}

// Start loads the profile and, when onboarding is done, today's missions.
func (c *Controller) Start(now time.Time) (State, error) {
	p, err := c.profiles.Load()
	if err != nil {
		return c.snapshot(), err
	}
	c.state.Profile = p

	if p == nil || !p.HasQuit() {
		c.state.Phase = PhaseOnboarding
		c.state.Missions = models.MissionLog{}
		c.state.Stats = models.DerivedStats{}
		return c.snapshot(), nil
	}

	c.state.Phase = PhaseMain
	if err := c.reloadMissions(now); err != nil {
		return c.snapshot(), err
	}
	c.state.Stats = progress.ComputeStats(*p, now)
	c.scheduleToday(now)
	return c.snapshot(), nil
}

// Tick recomputes derived statistics and rolls missions over at midnight.
func (c *Controller) Tick(now time.Time) (State, error) {
	if c.state.Phase != PhaseMain || c.state.Profile == nil {
		return c.snapshot(), nil
	}
	c.state.Stats = progress.ComputeStats(*c.state.Profile, now)

	today, err := c.today(now)
	if err != nil {
		return c.snapshot(), err
	}
	if today != c.state.Missions.LastResetDate {
		return c.Refresh(now)
	}
	return c.snapshot(), nil
}

// Refresh re-reads today's checklist, resetting it if the day changed.
func (c *Controller) Refresh(now time.Time) (State, error) {
	if c.state.Phase != PhaseMain {
		return c.snapshot(), nil
	}
	if err := c.reloadMissions(now); err != nil {
		return c.snapshot(), err
	}
	if c.state.Profile != nil {
		c.state.Stats = progress.ComputeStats(*c.state.Profile, now)
	}
	c.scheduleToday(now)
	return c.snapshot(), nil
}

// ToggleMission flips a mission on today's checklist. Unknown ids are ignored.
func (c *Controller) ToggleMission(id int, now time.Time) (State, error) {
	if c.state.Phase != PhaseMain {
		return c.snapshot(), nil
	}
	if _, err := c.Refresh(now); err != nil {
		return c.snapshot(), err
	}
	updated, err := c.engine.Toggle(c.state.Missions, id)
	if err != nil {
		return c.snapshot(), err
	}
	c.state.Missions = updated
	return c.snapshot(), nil
}

// NewOnboarding starts a survey that saves through this controller's profile store.
func (c *Controller) NewOnboarding() *onboarding.Flow {
	return onboarding.New(onboarding.DefaultConfig(), c.profiles, nil)
}

// CompleteOnboarding finishes the survey and switches to the main phase.
func (c *Controller) CompleteOnboarding(flow *onboarding.Flow, now time.Time) (State, error) {
	p, err := flow.Finish(now)
	if err != nil {
		return c.snapshot(), fmt.Errorf("failed to complete onboarding: %w", err)
	}
	c.state.Profile = &p
	c.state.Phase = PhaseMain
	if err := c.reloadMissions(now); err != nil {
		return c.snapshot(), err
	}
	c.state.Stats = progress.ComputeStats(p, now)
	c.scheduleToday(now)
	c.log.Info("Onboarding completed", "quit_moment", p.QuitMoment.Format(time.RFC3339))
	return c.snapshot(), nil
}

// Reset erases the profile and the checklist and returns to onboarding.
// Settings and the journal are kept.
func (c *Controller) Reset() (State, error) {
	if err := c.profiles.Reset(); err != nil {
		return c.snapshot(), err
	}
	if err := c.engine.Clear(); err != nil {
		return c.snapshot(), err
	}
	c.state.Profile = nil
	c.state.Missions = models.MissionLog{}
	c.state.Stats = models.DerivedStats{}
	c.state.Phase = PhaseOnboarding
	c.log.Info("Progress reset")
	return c.snapshot(), nil
}

// UpdateSettings validates and persists settings. A catalog change takes
// effect immediately. Turning notifications on sends the welcome message and
// queues today's reminders; turning them off silences everything still queued.
func (c *Controller) UpdateSettings(settings models.Settings, now time.Time) (State, error) {
	if result := validation.New().ValidateSettings(settings); result.HasConflicts() {
		return c.snapshot(), fmt.Errorf("invalid settings:\n%s", result.FormatReport())
	}
	catalog, err := missions.Lookup(settings.MissionCatalog)
	if err != nil {
		return c.snapshot(), err
	}
	if err := storage.SaveSettings(c.provider, settings); err != nil {
		return c.snapshot(), fmt.Errorf("failed to save settings: %w", err)
	}
	toggled := c.state.Settings.NotificationsEnabled != settings.NotificationsEnabled
	c.state.Settings = settings
	if toggled && c.notify != nil {
		c.notify.SetEnabled(settings.NotificationsEnabled)
		if settings.NotificationsEnabled {
			c.notify.Welcome()
		}
	}
	if catalog.Name != c.engine.Catalog().Name {
		c.engine = missions.NewEngine(c.provider, catalog)
	}
	return c.Refresh(now)
}

// Emergency sends the craving-support notification if notifications are on.
func (c *Controller) Emergency() {
	if c.notify != nil {
		c.notify.Crisis()
	}
}

// scheduleToday queues the day's reminders at most once per calendar day.
func (c *Controller) scheduleToday(now time.Time) {
	if c.notify == nil || c.notify.Inert() || c.state.Phase != PhaseMain {
		return
	}
	today, err := c.today(now)
	if err != nil || today == c.scheduled {
		return
	}
	c.scheduled = today
	c.notify.ScheduleDaily(now)
}

func (c *Controller) reloadMissions(now time.Time) error {
	today, err := c.today(now)
	if err != nil {
		return err
	}
	lg, err := c.engine.LoadOrReset(today)
	if err != nil {
		return fmt.Errorf("failed to load missions: %w", err)
	}
	c.state.Missions = lg
	return nil
}

func (c *Controller) today(now time.Time) (models.CalendarDate, error) {
	return utils.TodayIn(now, c.state.Settings.Timezone)
}

func (c *Controller) snapshot() State {
	s := c.state
	s.Missions = c.state.Missions.Clone()
	if c.state.Profile != nil {
		p := *c.state.Profile
		s.Profile = &p
	}
	return s
}

package app

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/models"
	"github.com/julianstephens/quitnow/internal/notifier"
	"github.com/julianstephens/quitnow/internal/storage"
)

type fakeSender struct {
	mu     sync.Mutex
	titles []string
}

func (f *fakeSender) Notify(title, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.titles = append(f.titles, title)
	return nil
}

func (f *fakeSender) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.titles...)
}

func setupController(t *testing.T, opts ...Option) (*Controller, storage.Provider) {
	t.Helper()
	provider := storage.NewJSONStore(filepath.Join(t.TempDir(), "quitnow.json"))
	if err := provider.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	settings := models.DefaultSettings()
	settings.Timezone = "UTC"
	if err := storage.SaveSettings(provider, settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	c, err := New(provider, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c, provider
}

// late evening so no daily reminders remain to be scheduled
var evening = time.Date(2024, time.March, 1, 21, 30, 0, 0, time.UTC)

// just before the 21:00 reminder, which then fires within a tenth of a second
var beforeNine = time.Date(2024, time.March, 1, 20, 59, 59, 900_000_000, time.UTC)

func waitForReminders(t *testing.T, s *notifier.Scheduler) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Wait(ctx); err != nil {
		t.Fatalf("reminders did not fire: %v", err)
	}
}

func onboard(t *testing.T, c *Controller, now time.Time) State {
	t.Helper()
	flow := c.NewOnboarding()
	if err := flow.SetCigarettesPerDay("15"); err != nil {
		t.Fatal(err)
	}
	if err := flow.SetPackPrice("10"); err != nil {
		t.Fatal(err)
	}
	state, err := c.CompleteOnboarding(flow, now)
	if err != nil {
		t.Fatalf("CompleteOnboarding failed: %v", err)
	}
	return state
}

func TestStartWithoutProfile(t *testing.T) {
	c, _ := setupController(t)

	state, err := c.Start(evening)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if state.Phase != PhaseOnboarding {
		t.Errorf("Phase = %v, want onboarding", state.Phase)
	}
	if state.Profile != nil || state.Stats.Started {
		t.Errorf("expected empty state, got %+v", state)
	}
}

func TestCompleteOnboarding(t *testing.T) {
	sender := &fakeSender{}
	c, _ := setupController(t, WithNotifier(notifier.NewScheduler(sender, true)))

	state := onboard(t, c, evening)

	if state.Phase != PhaseMain {
		t.Fatalf("Phase = %v, want main", state.Phase)
	}
	if !state.Profile.QuitMoment.Equal(evening.Add(-time.Hour)) {
		t.Errorf("QuitMoment = %v, want one hour before now", state.Profile.QuitMoment)
	}
	if state.Stats.Hours != 1 {
		t.Errorf("Stats.Hours = %d, want 1", state.Stats.Hours)
	}
	if len(state.Missions.Missions) == 0 || state.Missions.LastResetDate != models.DateOf(evening) {
		t.Errorf("missions not loaded for today: %+v", state.Missions)
	}
	if got := sender.sent(); len(got) != 0 {
		t.Errorf("onboarding should not notify, got %v", got)
	}
}

func TestStartRestoresSession(t *testing.T) {
	c, provider := setupController(t)
	onboard(t, c, evening)
	if _, err := c.ToggleMission(1, evening); err != nil {
		t.Fatalf("ToggleMission failed: %v", err)
	}

	restarted, err := New(provider)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	state, err := restarted.Start(evening.Add(26 * time.Hour).Add(-2 * time.Hour))
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if state.Phase != PhaseMain {
		t.Fatalf("Phase = %v, want main", state.Phase)
	}
	// next day: checklist was reset
	for _, m := range state.Missions.Missions {
		if m.Completed {
			t.Errorf("mission %d still completed after rollover", m.ID)
		}
	}
	if state.Stats.Days != 1 {
		t.Errorf("Stats.Days = %d, want 1", state.Stats.Days)
	}
}

func TestToggleMission(t *testing.T) {
	c, _ := setupController(t)
	onboard(t, c, evening)

	state, err := c.ToggleMission(2, evening)
	if err != nil {
		t.Fatalf("ToggleMission failed: %v", err)
	}
	if done, _ := state.Missions.Completed(); done != 1 {
		t.Errorf("done = %d, want 1", done)
	}

	state, err = c.ToggleMission(999, evening)
	if err != nil {
		t.Fatalf("ToggleMission with unknown id failed: %v", err)
	}
	if done, _ := state.Missions.Completed(); done != 1 {
		t.Errorf("unknown id changed the checklist")
	}
}

func TestToggleMissionDuringOnboardingIsIgnored(t *testing.T) {
	c, provider := setupController(t)
	if _, err := c.Start(evening); err != nil {
		t.Fatal(err)
	}
	if _, err := c.ToggleMission(1, evening); err != nil {
		t.Fatalf("ToggleMission failed: %v", err)
	}
	if _, err := provider.Get(constants.KeyMissions); err == nil {
		t.Error("missions should not be persisted before onboarding")
	}
}

func TestTickRollsOverAtMidnight(t *testing.T) {
	c, _ := setupController(t)
	onboard(t, c, evening)
	if _, err := c.ToggleMission(1, evening); err != nil {
		t.Fatal(err)
	}

	state, err := c.Tick(evening.Add(time.Hour))
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if done, _ := state.Missions.Completed(); done != 0 {
		t.Errorf("checklist not reset after midnight, done = %d", done)
	}
	if state.Missions.LastResetDate != models.DateOf(evening.AddDate(0, 0, 1)) {
		t.Errorf("LastResetDate = %v", state.Missions.LastResetDate)
	}
}

func TestTickUpdatesStats(t *testing.T) {
	c, _ := setupController(t)
	onboard(t, c, evening)

	first, _ := c.Tick(evening)
	later, err := c.Tick(evening.Add(30 * time.Minute))
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if later.Stats.CigarettesAvoided < first.Stats.CigarettesAvoided {
		t.Error("cigarettes avoided decreased over time")
	}
	if later.Stats.Minutes != 30 {
		t.Errorf("Stats.Minutes = %d, want 30", later.Stats.Minutes)
	}
}

func TestReset(t *testing.T) {
	c, provider := setupController(t)
	onboard(t, c, evening)

	state, err := c.Reset()
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if state.Phase != PhaseOnboarding || state.Profile != nil {
		t.Errorf("unexpected state after reset: %+v", state)
	}
	for _, key := range []string{constants.KeyProfile, constants.KeyMissions, constants.KeyMissionsDate} {
		if _, err := provider.Get(key); err == nil {
			t.Errorf("record %s survived reset", key)
		}
	}
	if _, err := provider.Get(constants.KeySettings); err != nil {
		t.Errorf("settings should survive reset: %v", err)
	}
}

func TestUpdateSettings(t *testing.T) {
	c, _ := setupController(t)
	onboard(t, c, evening)

	settings := c.State().Settings
	settings.MissionCatalog = constants.CatalogClassic
	state, err := c.UpdateSettings(settings, evening)
	if err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}
	if len(state.Missions.Missions) != 6 {
		t.Errorf("expected classic catalog of 6 missions, got %d", len(state.Missions.Missions))
	}

	settings.Timezone = "Mars/Olympus"
	if _, err := c.UpdateSettings(settings, evening); err == nil {
		t.Error("expected invalid timezone to be rejected")
	}
	if c.State().Settings.Timezone != "UTC" {
		t.Error("rejected settings were applied")
	}
}

func TestUpdateSettingsTogglesNotifications(t *testing.T) {
	sender := &fakeSender{}
	sched := notifier.NewScheduler(sender, false)
	c, _ := setupController(t, WithNotifier(sched))
	onboard(t, c, beforeNine)

	c.Emergency()
	if got := sender.sent(); len(got) != 0 {
		t.Fatalf("disabled notifications delivered %v", got)
	}

	settings := c.State().Settings
	settings.NotificationsEnabled = true
	if _, err := c.UpdateSettings(settings, beforeNine); err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}
	waitForReminders(t, sched)

	want := []string{
		notifier.WelcomeMessage().Title,
		notifier.MessagesFor(constants.NotifyEvening)[0].Title,
	}
	got := sender.sent()
	if len(got) != len(want) {
		t.Fatalf("sent %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("notification %d = %q, want %q", i, got[i], want[i])
		}
	}

	settings.NotificationsEnabled = false
	if _, err := c.UpdateSettings(settings, beforeNine); err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}
	c.Emergency()
	if n := len(sender.sent()); n != len(want) {
		t.Errorf("crisis sent after disabling notifications: %v", sender.sent())
	}
}

func TestDailyRemindersQueuedOncePerDay(t *testing.T) {
	sender := &fakeSender{}
	sched := notifier.NewScheduler(sender, true)
	c, _ := setupController(t, WithNotifier(sched))

	onboard(t, c, beforeNine)
	if _, err := c.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	onboard(t, c, beforeNine.Add(10*time.Millisecond))
	if _, err := c.Refresh(beforeNine.Add(20 * time.Millisecond)); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	waitForReminders(t, sched)

	if got := sender.sent(); len(got) != 1 {
		t.Errorf("expected the 21:00 reminder once, got %v", got)
	}
}

func TestStateIsACopy(t *testing.T) {
	c, _ := setupController(t)
	onboard(t, c, evening)

	state := c.State()
	state.Missions.Missions[0].Completed = true
	state.Profile.CigarettesPerDay = 99

	fresh := c.State()
	if fresh.Missions.Missions[0].Completed || fresh.Profile.CigarettesPerDay == 99 {
		t.Error("mutating a returned state leaked into the controller")
	}
}

package daily

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/quitnow/internal/cli"
	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/models"
	"github.com/julianstephens/quitnow/internal/profile"
	"github.com/julianstephens/quitnow/internal/storage"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func setup(t *testing.T, onboarded bool) (*cli.Context, *clock, *bytes.Buffer) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "quitnow.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	clk := &clock{now: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.Local)}
	if onboarded {
		p := models.DefaultProfile()
		quit := clk.now.Add(-2 * time.Hour)
		p.QuitMoment = &quit
		if err := profile.NewStore(store).Save(p); err != nil {
			t.Fatal(err)
		}
	}
	var out bytes.Buffer
	return &cli.Context{Store: store, Clock: clk, Out: &out}, clk, &out
}

func TestMissionsListBeforeOnboarding(t *testing.T) {
	ctx, _, out := setup(t, false)
	if err := (&MissionsListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "quitnow onboard") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestMissionsList(t *testing.T) {
	ctx, _, out := setup(t, true)
	if err := (&MissionsListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"2024-03-01", "0/4 done", "[ ] 1. Log your mood in the journal"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestMissionsToggle(t *testing.T) {
	ctx, clk, out := setup(t, true)

	if err := (&MissionsToggleCmd{ID: 2}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "[x] 2.") || !strings.Contains(out.String(), "1/4 done") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	// the next day starts fresh
	clk.now = clk.now.Add(24 * time.Hour)
	out.Reset()
	if err := (&MissionsListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "0/4 done") || !strings.Contains(out.String(), "2024-03-02") {
		t.Errorf("expected a fresh checklist:\n%s", out.String())
	}
}

func TestMissionsToggleUnknown(t *testing.T) {
	ctx, _, _ := setup(t, true)
	if err := (&MissionsToggleCmd{ID: 99}).Run(ctx); err == nil {
		t.Error("expected error for unknown mission")
	}
}

func TestJournal(t *testing.T) {
	ctx, clk, out := setup(t, false)

	if err := (&JournalListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No journal entries yet.") {
		t.Errorf("unexpected output: %q", out.String())
	}

	if err := (&JournalAddCmd{Mood: "Good", Note: []string{"first", "day"}}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	clk.now = clk.now.Add(time.Hour)
	if err := (&JournalAddCmd{Mood: string(constants.MoodBad)}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := (&JournalListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 entries, got:\n%s", out.String())
	}
	if !strings.Contains(lines[0], "bad") || !strings.Contains(lines[1], "first day") {
		t.Errorf("entries not newest first:\n%s", out.String())
	}

	out.Reset()
	if err := (&JournalListCmd{Limit: 1}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if strings.Count(strings.TrimSpace(out.String()), "\n") != 0 {
		t.Errorf("limit not applied:\n%s", out.String())
	}
}

func TestJournalAddInvalidMood(t *testing.T) {
	ctx, _, _ := setup(t, false)
	if err := (&JournalAddCmd{Mood: "ecstatic"}).Run(ctx); err == nil {
		t.Error("expected error for invalid mood")
	}
}

package system

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/quitnow/internal/cli"
	"github.com/julianstephens/quitnow/internal/notifier"
	"github.com/julianstephens/quitnow/internal/storage"
)

func enableNotifications(t *testing.T, ctx *cli.Context) {
	t.Helper()
	settings, err := ctx.Settings()
	if err != nil {
		t.Fatal(err)
	}
	settings.NotificationsEnabled = true
	if err := storage.SaveSettings(ctx.Store, settings); err != nil {
		t.Fatal(err)
	}
}

func TestNotifyScheduleDryRun(t *testing.T) {
	ctx, out := initializedContext(t)
	ctx.Clock = fixedClock(time.Date(2024, time.March, 1, 7, 30, 0, 0, time.Local))
	if err := (&NotifyScheduleCmd{DryRun: true}).Run(ctx); err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if got := strings.Count(out.String(), "[DryRun]"); got != 4 {
		t.Errorf("expected 4 planned reminders at 07:30, got %d:\n%s", got, out.String())
	}
	if !strings.Contains(out.String(), "08:00  morning") {
		t.Errorf("missing morning reminder:\n%s", out.String())
	}
}

func TestNotifyScheduleDryRunLate(t *testing.T) {
	ctx, out := initializedContext(t)

	if err := (&NotifyScheduleCmd{DryRun: true}).Run(ctx); err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if !strings.Contains(out.String(), "No reminders left today.") {
		t.Errorf("unexpected output at 21:30:\n%s", out.String())
	}
}

func TestNotifyDisabled(t *testing.T) {
	ctx, out := initializedContext(t)
	sender := &recordingSender{}
	ctx.Sender = sender

	if err := (&NotifyCrisisCmd{}).Run(ctx); err != nil {
		t.Fatalf("crisis failed: %v", err)
	}
	if len(sender.titles) != 0 {
		t.Errorf("disabled notifications were sent: %v", sender.titles)
	}
	if !strings.Contains(out.String(), "disabled") {
		t.Errorf("expected disabled message, got %q", out.String())
	}
}

func TestNotifyCrisisAndTest(t *testing.T) {
	ctx, _ := initializedContext(t)
	enableNotifications(t, ctx)
	sender := &recordingSender{}
	ctx.Sender = sender

	if err := (&NotifyCrisisCmd{}).Run(ctx); err != nil {
		t.Fatalf("crisis failed: %v", err)
	}
	if err := (&NotifyTestCmd{}).Run(ctx); err != nil {
		t.Fatalf("test notification failed: %v", err)
	}
	want := []string{notifier.CrisisMessage().Title, notifier.WelcomeMessage().Title}
	if len(sender.titles) != 2 || sender.titles[0] != want[0] || sender.titles[1] != want[1] {
		t.Errorf("sent %v, want %v", sender.titles, want)
	}
}

func TestNotifyTrayUnavailable(t *testing.T) {
	ctx, _ := initializedContext(t)
	enableNotifications(t, ctx)
	ctx.Sender = &recordingSender{err: notifier.ErrTrayUnavailable}

	if err := (&NotifyTestCmd{}).Run(ctx); err == nil {
		t.Error("expected tray unavailable error")
	}
}

func TestNotifyCrisisDryRun(t *testing.T) {
	ctx, out := initializedContext(t)
	if err := (&NotifyCrisisCmd{DryRun: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), notifier.CrisisMessage().Title) {
		t.Errorf("dry run did not print the message: %q", out.String())
	}
}

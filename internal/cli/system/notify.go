package system

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/quitnow/internal/cli"
	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/notifier"
)

type NotifyCmd struct {
	Schedule NotifyScheduleCmd `cmd:"" help:"Send today's remaining reminders, waiting until the last one."`
	Crisis   NotifyCrisisCmd   `cmd:"" help:"Send the craving-support notification now."`
	Test     NotifyTestCmd     `cmd:"" help:"Send a welcome notification to check the tray."`
}

type NotifyScheduleCmd struct {
	DryRun bool `help:"Print the reminders instead of sending them."`
}

func (c *NotifyScheduleCmd) Run(ctx *cli.Context) error {
	now := ctx.Now()

	if c.DryRun {
		plan := notifier.Plan(now)
		if len(plan) == 0 {
			ctx.Println("No reminders left today.")
			return nil
		}
		for _, p := range plan {
			ctx.Printf("[DryRun] %s  %-9s  in %s\n", p.At.Format(constants.TimeFormat), p.Category, p.Delay.Round(time.Second))
		}
		return nil
	}

	sched, err := ctx.Scheduler()
	if err != nil {
		return err
	}
	if sched.Inert() {
		ctx.Println("Notifications are disabled in settings.")
		return nil
	}

	plan := sched.ScheduleDaily(now)
	ctx.Printf("Scheduled %d reminder(s). Press Ctrl+C to stop.\n", len(plan))

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := sched.Wait(sigCtx); err != nil {
		ctx.Println("Stopped; pending reminders were dropped.")
	}
	return nil
}

type NotifyCrisisCmd struct {
	DryRun bool `help:"Print the notification instead of sending it."`
}

func (c *NotifyCrisisCmd) Run(ctx *cli.Context) error {
	return sendOne(ctx, c.DryRun, notifier.CrisisMessage(), (*notifier.Scheduler).Crisis)
}

type NotifyTestCmd struct {
	DryRun bool `help:"Print the notification instead of sending it."`
}

func (c *NotifyTestCmd) Run(ctx *cli.Context) error {
	return sendOne(ctx, c.DryRun, notifier.WelcomeMessage(), (*notifier.Scheduler).Welcome)
}

func sendOne(ctx *cli.Context, dryRun bool, msg notifier.Message, send func(*notifier.Scheduler)) error {
	if dryRun {
		ctx.Printf("[DryRun] %s: %s\n", msg.Title, msg.Body)
		return nil
	}
	sched, err := ctx.Scheduler()
	if err != nil {
		return err
	}
	if sched.Inert() {
		ctx.Println("Notifications are disabled in settings.")
		return nil
	}
	send(sched)
	if sched.Inert() {
		return notifier.ErrTrayUnavailable
	}
	ctx.Println("✓ Notification sent")
	return nil
}

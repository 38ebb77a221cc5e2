package notifier

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/logger"
	"github.com/julianstephens/quitnow/internal/utils"
)

// afterFunc is swapped in tests to fire timers synchronously
var afterFunc = func(d time.Duration, f func()) { time.AfterFunc(d, f) }

// Sender delivers a single notification
type Sender interface {
	Notify(title, body string) error
}

// Planned is one reminder due later today
type Planned struct {
	At       time.Time
	Delay    time.Duration
	Category constants.NotificationCategory
}

// Plan lists the daily reminders whose hour is still ahead of now's hour,
// in now's location.
func Plan(now time.Time) []Planned {
	var out []Planned
	for _, slot := range constants.DailyNotificationHours {
		if slot.Hour <= now.Hour() {
			continue
		}
		at := utils.AtHour(now, slot.Hour)
		out = append(out, Planned{At: at, Delay: at.Sub(now), Category: slot.Category})
	}
	return out
}

// Scheduler sends reminders through a Sender. Scheduled reminders cannot be
// cancelled, but a reminder that fires while notifications are disabled is
// dropped. When the sender reports the tray is unavailable the scheduler goes
// inert for good: it logs once and drops everything afterwards.
type Scheduler struct {
	sender      Sender
	log         *log.Logger
	disabled    atomic.Bool
	unavailable atomic.Bool
	warned      sync.Once
	pending sync.WaitGroup
	rotate  sync.Map // category -> *atomic.Uint32
}

// NewScheduler returns a scheduler; a disabled one is inert from the start.
func NewScheduler(sender Sender, enabled bool) *Scheduler {
	s := &Scheduler{
		sender: sender,
		log:    logger.Component("notifier"),
	}
	if sender == nil {
		s.unavailable.Store(true)
	}
	s.disabled.Store(!enabled)
	return s
}

// SetEnabled follows the notifications setting. It never revives a scheduler
// whose tray was found unavailable.
func (s *Scheduler) SetEnabled(enabled bool) {
	s.disabled.Store(!enabled)
}

// Inert reports whether notifications are being dropped.
func (s *Scheduler) Inert() bool {
	return s.disabled.Load() || s.unavailable.Load()
}

// ShowNow delivers a notification immediately.
func (s *Scheduler) ShowNow(title, body string) {
	if s.Inert() {
		return
	}
	if err := s.sender.Notify(title, body); err != nil {
		if errors.Is(err, ErrTrayUnavailable) {
			s.goInert(err)
			return
		}
		s.log.Error("Failed to send notification", "title", title, "error", err)
	}
}

// ScheduleOnce delivers the next message of category after delay.
func (s *Scheduler) ScheduleOnce(delay time.Duration, category constants.NotificationCategory) {
	if s.Inert() {
		return
	}
	msgs := MessagesFor(category)
	if len(msgs) == 0 {
		s.log.Warn("No messages for category", "category", category)
		return
	}
	msg := msgs[s.next(category)%uint32(len(msgs))]

	s.pending.Add(1)
	afterFunc(delay, func() {
		defer s.pending.Done()
		s.ShowNow(msg.Title, msg.Body)
	})
	s.log.Debug("Notification scheduled", "category", category, "in", delay.Round(time.Minute))
}

// ScheduleDaily schedules every reminder still ahead today and returns them.
func (s *Scheduler) ScheduleDaily(now time.Time) []Planned {
	plan := Plan(now)
	for _, p := range plan {
		s.ScheduleOnce(p.Delay, p.Category)
	}
	return plan
}

// Crisis sends the craving-support message right away.
func (s *Scheduler) Crisis() {
	s.ShowNow(crisisMessage.Title, crisisMessage.Body)
}

// Welcome confirms that notifications work.
func (s *Scheduler) Welcome() {
	s.ShowNow(welcomeMessage.Title, welcomeMessage.Body)
}

// Wait blocks until every scheduled reminder has fired or ctx is done.
func (s *Scheduler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) goInert(err error) {
	s.unavailable.Store(true)
	s.warned.Do(func() {
		s.log.Warn("Notifications unavailable, disabling for this session", "error", err)
	})
}

func (s *Scheduler) next(category constants.NotificationCategory) uint32 {
	v, _ := s.rotate.LoadOrStore(category, new(atomic.Uint32))
	return v.(*atomic.Uint32).Add(1) - 1
}

package reminder

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// DueCounter reports how many cards are due for review.
type DueCounter interface {
	CountDue(now time.Time) (int, error)
}

// Notifier delivers a due-cards reminder.
type Notifier interface {
	NotifyDue(count int) error
}

// Reminder periodically checks for due cards and notifies, staying silent
// outside the configured hours.
type Reminder struct {
	scheduler *gocron.Scheduler
	cards     DueCounter
	notifier  Notifier

	interval   time.Duration
	quietStart int // first hour reminders are allowed
	quietEnd   int // last hour reminders are allowed (inclusive)
	now        func() time.Time
}

// New creates a reminder checking every interval, active between startHour
// and endHour.
func New(cards DueCounter, notifier Notifier, interval time.Duration, startHour, endHour int) *Reminder {
	return &Reminder{
		scheduler:  gocron.NewScheduler(time.Local),
		cards:      cards,
		notifier:   notifier,
		interval:   interval,
		quietStart: startHour,
		quietEnd:   endHour,
		now:        time.Now,
	}
}

// WithClock overrides the clock. Used in tests.
func (r *Reminder) WithClock(now func() time.Time) *Reminder {
	r.now = now
	return r
}

// Start begins running the periodic check in the background.
func (r *Reminder) Start() {
	r.scheduler.Every(r.interval).Do(r.Check)
	r.scheduler.StartAsync()
}

// Stop terminates the scheduled checks.
func (r *Reminder) Stop() {
	r.scheduler.Stop()
}

// Check runs one due-card check. Exported so a caller can force a check
// outside the schedule.
func (r *Reminder) Check() {
	now := r.now()

	hour := now.Hour()
	if hour < r.quietStart || hour > r.quietEnd {
		return
	}

	count, err := r.cards.CountDue(now)
	if err != nil {
		log.Printf("reminder: failed to count due cards: %v", err)
		return
	}
	if count == 0 {
		return
	}

	if err := r.notifier.NotifyDue(count); err != nil {
		log.Printf("reminder: failed to notify: %v", err)
	}
}

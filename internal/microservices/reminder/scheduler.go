// Package reminder fires the daily reading reminder at a fixed local time.
package reminder

import (
	"context"
	"log/slog"
	"time"
)

// Schedule is the daily reminder time of day.
type Schedule struct {
	Enabled  bool
	Hour     int
	Minute   int
	Location *time.Location
}

// NextRun returns the first reminder instant strictly after now. When
// today's slot has passed the reminder moves to tomorrow.
func (s Schedule) NextRun(now time.Time) time.Time {
	loc := s.Location
	if loc == nil {
		loc = now.Location()
	}
	n := now.In(loc)
	next := time.Date(n.Year(), n.Month(), n.Day(), s.Hour, s.Minute, 0, 0, loc)
	if !next.After(n) {
		next = time.Date(n.Year(), n.Month(), n.Day()+1, s.Hour, s.Minute, 0, 0, loc)
	}
	return next
}

// Notifier sends the reminder and reports whether anything was sent.
type Notifier interface {
	SendDailyReminder(ctx context.Context) (bool, error)
}

type Scheduler struct {
	schedule Schedule
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
	after    func(time.Duration) <-chan time.Time
}

func NewScheduler(schedule Schedule, notifier Notifier, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		schedule: schedule,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		after:    time.After,
	}
}

// Run blocks until ctx is done, firing once per day.
func (s *Scheduler) Run(ctx context.Context) error {
	if !s.schedule.Enabled {
		s.logger.Info("reminder_scheduler_disabled")
		<-ctx.Done()
		return ctx.Err()
	}

	for {
		now := s.now()
		next := s.schedule.NextRun(now)
		s.logger.Debug("reminder_scheduled", slog.Time("at", next))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.after(next.Sub(now)):
			s.fire(ctx)
		}
	}
}

func (s *Scheduler) fire(ctx context.Context) {
	sent, err := s.notifier.SendDailyReminder(ctx)
	switch {
	case err != nil:
		s.logger.Error("reminder_failed", slog.Any("error", err))
	case !sent:
		s.logger.Debug("reminder_skipped", slog.String("reason", "notifications disabled"))
	default:
		s.logger.Info("reminder_sent")
	}
}

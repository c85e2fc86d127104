package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ErrNeverFires is returned for a schedule with no future activation, such as "0 0 30 2 *".
var ErrNeverFires = errors.New("schedule never fires")

// Parse accepts a standard five-field cron spec or a descriptor such as "@every 10m".
func Parse(spec string) (cron.Schedule, error) {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid poll schedule %q: %w", spec, err)
	}
	if sched.Next(time.Now()).IsZero() {
		return nil, fmt.Errorf("invalid poll schedule %q: %w", spec, ErrNeverFires)
	}
	return sched, nil
}

// PollScheduler runs a job, then waits for the next activation of its
// schedule. The next activation is computed after the job returns, so
// runs never overlap.
type PollScheduler struct {
	schedule cron.Schedule
	job      func(ctx context.Context)
	logger   *logrus.Entry
	now      func() time.Time
}

func NewPollScheduler(schedule cron.Schedule, job func(ctx context.Context), logger *logrus.Entry) *PollScheduler {
	return &PollScheduler{
		schedule: schedule,
		job:      job,
		logger:   logger,
		now:      time.Now,
	}
}

// Run blocks until ctx is cancelled. The first run starts immediately.
func (s *PollScheduler) Run(ctx context.Context) {
	s.logger.Info("Starting poll scheduler...")
	for {
		started := s.now()
		s.job(ctx)
		s.logger.WithField("took", s.now().Sub(started)).Debug("Poll job finished")

		next := s.schedule.Next(s.now())
		if next.IsZero() {
			s.logger.WithError(ErrNeverFires).Error("Poll scheduler stopped: no next activation")
			return
		}
		s.logger.WithField("next_run", next.Format(time.RFC3339)).Debug("Waiting for next poll")
		if err := sleepUntil(ctx, next.Sub(s.now())); err != nil {
			s.logger.Info("Poll scheduler stopped.")
			return
		}
	}
}

func sleepUntil(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

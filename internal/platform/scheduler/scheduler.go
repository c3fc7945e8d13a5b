// Package scheduler runs jobs on cron schedules with second precision.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one scheduled unit of work.
type Job func(ctx context.Context) error

// Scheduler wraps a cron runner whose jobs share a parent context.
type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context
}

// New creates a Scheduler. Specs have six fields, seconds first.
// Jobs that are still running when their next tick fires are skipped.
func New(ctx context.Context, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	return &Scheduler{cron: c, ctx: ctx}
}

// Add registers job under name on spec.
func (s *Scheduler) Add(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		start := time.Now()
		slog.Info("job started", "job", name)
		if err := job(s.ctx); err != nil {
			slog.Error("job failed", "job", name, "error", err, "elapsed", time.Since(start))
			return
		}
		slog.Info("job finished", "job", name, "elapsed", time.Since(start))
	})
	if err != nil {
		return fmt.Errorf("register %s: %w", name, err)
	}
	return nil
}

// Next returns the next activation time of all registered jobs, or the zero
// time when none is registered.
func (s *Scheduler) Next() time.Time {
	var next time.Time
	for _, e := range s.cron.Entries() {
		if next.IsZero() || e.Next.Before(next) {
			next = e.Next
		}
	}
	return next
}

// Run starts the scheduler and blocks until ctx is done, then waits for
// running jobs to finish.
func (s *Scheduler) Run(ctx context.Context) {
	s.cron.Start()
	slog.Info("scheduler started", "next", s.Next())
	<-ctx.Done()
	<-s.cron.Stop().Done()
	slog.Info("scheduler stopped")
}

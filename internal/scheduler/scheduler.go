// Package scheduler runs both scrape pipelines on a cron cadence. It is an
// optional convenience: deployments that trigger the HTTP endpoints from an
// external cron don't start it.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler wraps a cron runner that fires both pipelines together. The two
// runs share no state and execute concurrently.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// New builds a scheduler from a standard 5-field cron spec. runGrid and
// runNews are fired concurrently on each tick, each with a fresh background
// context: a scheduled run already in flight finishes on its own even while
// the service is shutting down.
func New(spec string, runGrid, runNews func(ctx context.Context), logger *slog.Logger) (*Scheduler, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		logger.Info("scheduled scrape triggered", "schedule", spec)
		go runGrid(context.Background())
		go runNews(context.Background())
	})
	if err != nil {
		return nil, fmt.Errorf("invalid SCRAPE_SCHEDULE %q: %w", spec, err)
	}
	return &Scheduler{cron: c, logger: logger}, nil
}

// Start begins firing jobs on schedule.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop halts scheduling and waits for in-flight jobs to be handed off.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs evaluation cycles on a fixed interval.
type Scheduler struct {
	cron   *cron.Cron
	engine *Engine
	log    *slog.Logger
}

// NewScheduler creates a new Scheduler that runs an engine cycle every
// interval.
func NewScheduler(
	eng *Engine,
	interval time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("invalid run interval %s", interval)
	}

	c := cron.New()

	s := &Scheduler{
		cron:   c,
		engine: eng,
		log:    log,
	}

	if _, err := c.AddFunc(
		"@every "+interval.String(),
		s.RunNow,
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running scheduled cycles.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for a running cycle to
// finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// RunNow runs one cycle synchronously. A cycle already in progress (for
// example one triggered through the API) is skipped.
func (s *Scheduler) RunNow() {
	ctx := context.Background()
	s.log.Info("scheduled cycle starting")
	if _, err := s.engine.RunCycle(ctx); err != nil {
		if errors.Is(err, ErrCycleInProgress) {
			s.log.Warn("skipping scheduled cycle, another is still running")
			return
		}
		s.log.Error("scheduled cycle failed", "error", err)
	}
}

// Package jobs runs periodic maintenance on a cron schedule.
package jobs

import (
	"context" // Request-scoped cancellation
	"fmt"     // Error formatting
	"time"    // Timestamps

	"github.com/robfig/cron/v3"      // Cron scheduler
	log "github.com/sirupsen/logrus" // Structured logging
)

// EventCloser finishes active events whose date has passed
type EventCloser interface {
	FinishPastEvents(ctx context.Context, now time.Time) (int64, error)
}

// Scheduler owns the background jobs
type Scheduler struct {
	cron     *cron.Cron
	closer   EventCloser
	schedule string
	now      func() time.Time
}

// NewScheduler creates a UTC scheduler that closes past events on the given cron spec
func NewScheduler(closer EventCloser, schedule string) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)), // Event dates are stored in UTC
		closer:   closer,
		schedule: schedule,
		now:      time.Now,
	}
}

// Start registers the jobs and starts the cron loop
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.schedule, func() { s.closeFinishedEvents(ctx) }); err != nil {
		return fmt.Errorf("schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	log.WithField("schedule", s.schedule).Info("Scheduler started")
	return nil
}

// Stop waits for running jobs to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info("Scheduler stopped")
}

func (s *Scheduler) closeFinishedEvents(ctx context.Context) {
	n, err := s.closer.FinishPastEvents(ctx, s.now())
	if err != nil {
		log.WithError(err).Error("[CRON] Closing finished events failed")
		return
	}
	if n > 0 {
		log.WithField("events", n).Info("[CRON] Events marked finished")
	}
}

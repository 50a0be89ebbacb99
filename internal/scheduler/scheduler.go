// Package scheduler runs the daily pipeline on a cron expression for the
// daemon mode. Deployments driven by an external scheduler use the one-shot
// run command instead and never start this service.
package scheduler

import (
	"context"
	"fmt"
	"time"

	rcron "github.com/robfig/cron/v3"
)

// Service wraps a cron runner around a single job.
type Service struct {
	spec  string
	onRun func(ctx context.Context) error
	cron  *rcron.Cron
}

// New creates a Service that invokes onRun per the standard 5-field cron
// expression spec.
func New(spec string, onRun func(ctx context.Context) error) *Service {
	return &Service{spec: spec, onRun: onRun}
}

// Start validates the expression, registers the job, and starts the cron
// loop. Job errors are reported through errFn; a failed run never stops the
// schedule.
func (s *Service) Start(ctx context.Context, errFn func(error)) error {
	s.cron = rcron.New()
	_, err := s.cron.AddFunc(s.spec, func() {
		if err := s.onRun(ctx); err != nil && errFn != nil {
			errFn(err)
		}
	})
	if err != nil {
		return fmt.Errorf("scheduler: register %q: %w", s.spec, err)
	}
	s.cron.Start()
	return nil
}

// Next returns the next scheduled fire time, zero before Start.
func (s *Service) Next() time.Time {
	if s.cron == nil {
		return time.Time{}
	}
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Stop stops the cron loop and waits for a running job to finish.
func (s *Service) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

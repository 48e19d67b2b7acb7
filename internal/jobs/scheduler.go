// Package jobs runs the periodic background tasks.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/milestonemotors/motors/internal/metrics"
	"github.com/milestonemotors/motors/internal/store"
)

// Scheduler manages periodic maintenance tasks.
type Scheduler struct {
	cron  *cron.Cron
	store store.Store
	log   *slog.Logger
}

// NewScheduler creates a Scheduler that refreshes the marketplace
// gauges on the given interval.
func NewScheduler(s store.Store, metricsInterval time.Duration, log *slog.Logger) (*Scheduler, error) {
	c := cron.New()

	sched := &Scheduler{
		cron:  c,
		store: s,
		log:   log,
	}

	if _, err := c.AddFunc(
		"@every "+metricsInterval.String(),
		sched.runMetricsRefresh,
	); err != nil {
		return nil, err
	}

	return sched, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) runMetricsRefresh() {
	if err := s.RefreshMetrics(context.Background()); err != nil {
		s.log.Error("metrics refresh failed", "error", err)
	}
}

// RefreshMetrics updates the listing and user count gauges from the store.
func (s *Scheduler) RefreshMetrics(ctx context.Context) error {
	listings, err := s.store.CountListings(ctx)
	if err != nil {
		return err
	}
	users, err := s.store.CountUsers(ctx)
	if err != nil {
		return err
	}

	metrics.ListingsTotal.Set(float64(listings))
	metrics.UsersTotal.Set(float64(users))

	s.log.Debug("metrics refreshed", "listings", listings, "users", users)
	return nil
}

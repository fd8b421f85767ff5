package scheduler

import (
	"fmt"

	"github.com/amaumene/tvmaze-scraper/internal/cache"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler runs cache maintenance on a cron schedule
type Scheduler struct {
	cron     *cron.Cron
	store    *cache.Store
	schedule string
	logger   *logrus.Logger
}

// NewScheduler creates a new scheduler.
// schedule accepts standard cron expressions and descriptors such as "@every 6h".
func NewScheduler(store *cache.Store, schedule string, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		store:    store,
		schedule: schedule,
		logger:   logger,
	}
}

// Start prunes once, then keeps pruning on the schedule
func (s *Scheduler) Start() error {
	s.logger.WithField("schedule", s.schedule).Info("Starting scheduler")

	_, err := s.cron.AddFunc(s.schedule, func() {
		s.runPrune()
	})
	if err != nil {
		return fmt.Errorf("failed to add prune job: %w", err)
	}

	s.runPrune()
	s.cron.Start()
	s.logger.Info("Scheduler started")
	return nil
}

// Stop stops the scheduler and waits for a running prune to finish
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
}

// runPrune executes the prune job
func (s *Scheduler) runPrune() {
	s.logger.Debug("Running scheduled cache prune")

	removed, err := s.store.Prune()
	if err != nil {
		s.logger.WithError(err).Error("Cache prune failed")
		return
	}
	s.logger.WithField("removed", removed).Debug("Cache prune job completed")
}

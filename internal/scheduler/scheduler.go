// Package scheduler runs the periodic AGMARKNET sync.
package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"

	"KisanSense/internal/usecase"
	"KisanSense/pkg/logger"
)

// Scheduler triggers full price syncs on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	sync   *usecase.PriceSync
	log    *logger.Logger
	spec   string
	onBoot bool
}

// New creates a sync scheduler. Spec is standard 5-field cron.
func New(sync *usecase.PriceSync, log *logger.Logger, spec string, onBoot bool) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		sync:   sync,
		log:    log,
		spec:   spec,
		onBoot: onBoot,
	}
}

// Start registers the cron entry and begins scheduling. When onBoot is
// set, one sync runs immediately in the background.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runOnce); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("sync scheduler started", logger.String("schedule", s.spec))

	if s.onBoot {
		go s.runOnce()
	}
	return nil
}

// Stop stops scheduling and waits for a running sync to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), usecase.SyncTimeout)
	defer cancel()

	if err := s.sync.Run(ctx); err != nil {
		s.log.Error("scheduled sync failed", logger.Error(err))
	}
}

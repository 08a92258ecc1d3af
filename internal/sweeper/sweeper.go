// Package sweeper runs the periodic maintenance jobs: expiring overdue
// listings that the scheduled task queue missed, and lapsing subscriptions
// with their quota downgrades.
package sweeper

import (
	"time"

	db "github.com/Shaloh69/autohub-be/internal/db/sqlc"
	"github.com/Shaloh69/autohub-be/internal/worker"
	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

type Sweeper struct {
	store           db.Store
	taskDistributor worker.TaskDistributor
	scheduler       gocron.Scheduler
}

func NewSweeper(store db.Store, taskDistributor worker.TaskDistributor) (*Sweeper, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &Sweeper{
		store:           store,
		taskDistributor: taskDistributor,
		scheduler:       scheduler,
	}, nil
}

// Start registers the maintenance jobs and starts the scheduler.
func (s *Sweeper) Start() error {
	// Backstop for the per-listing expiry tasks. The expires_at predicate in
	// the sweep catches listings whose scheduled task was lost.
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(
			func() {
				log.Info().
					Str("job", "expire_overdue_listings").
					Time("start_time", time.Now()).
					Msg("Starting listing expiry sweep")

				s.expireOverdueListings()
			},
		),
	)
	if err != nil {
		return err
	}

	_, err = s.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(
			func() {
				log.Info().
					Str("job", "expire_lapsed_subscriptions").
					Time("start_time", time.Now()).
					Msg("Starting subscription lapse sweep")

				s.expireLapsedSubscriptions()
			},
		),
	)
	if err != nil {
		return err
	}

	s.scheduler.Start()
	return nil
}

// Stop shuts down the scheduler.
func (s *Sweeper) Stop() error {
	return s.scheduler.Shutdown()
}

// Package scheduler runs the periodic jobs: the daily exchange-rate snapshot
// and cache cleanup.
package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/haesung5/stock-asset-manager/internal/modules/currency"
	"github.com/haesung5/stock-asset-manager/internal/utils"
)

// RateResolver resolves the current USD/KRW rate.
type RateResolver interface {
	Resolve() currency.Resolution
}

// SnapshotStore appends resolved rates to the reference table.
type SnapshotStore interface {
	RecordSnapshot(currencyCode, countryName string, rate float64) error
}

// CacheCleaner removes expired client-data cache rows.
type CacheCleaner interface {
	Cleanup() (int64, error)
}

// Scheduler manages the cron jobs.
type Scheduler struct {
	cron     *cron.Cron
	resolver RateResolver
	store    SnapshotStore
	cleaner  CacheCleaner
	log      zerolog.Logger
}

// New creates a new scheduler
func New(resolver RateResolver, store SnapshotStore, cleaner CacheCleaner, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		resolver: resolver,
		store:    store,
		cleaner:  cleaner,
		log:      log.With().Str("component", "scheduler").Logger(),
	}
}

// Register adds the jobs. snapshotCron is a standard 5-field cron expression.
func (s *Scheduler) Register(snapshotCron string) error {
	if _, err := s.cron.AddFunc(snapshotCron, s.RunSnapshot); err != nil {
		return fmt.Errorf("failed to register rate snapshot job: %w", err)
	}
	// Hourly cache cleanup keeps the cache database from growing unbounded.
	if _, err := s.cron.AddFunc("0 * * * *", s.runCleanup); err != nil {
		return fmt.Errorf("failed to register cache cleanup job: %w", err)
	}
	return nil
}

// Start starts the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("Scheduler started")
}

// Stop stops the cron loop, waiting for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("Scheduler stopped")
}

// RunSnapshot resolves the USD/KRW rate and appends it to the reference
// table. Fallback defaults are not recorded: the reference table holds
// observed rates only.
func (s *Scheduler) RunSnapshot() {
	defer utils.OperationTimer("rate_snapshot", s.log)()

	resolution := s.resolver.Resolve()

	if resolution.Status != currency.StatusSuccess {
		s.log.Warn().
			Str("source", resolution.Source).
			Msg("Skipping rate snapshot, no live source available")
		return
	}

	if err := s.store.RecordSnapshot("USD", "미국", resolution.Rate); err != nil {
		s.log.Error().Err(err).Msg("Failed to record rate snapshot")
		return
	}

	s.log.Info().
		Float64("rate", resolution.Rate).
		Str("source", resolution.Source).
		Msg("Rate snapshot recorded")
}

func (s *Scheduler) runCleanup() {
	removed, err := s.cleaner.Cleanup()
	if err != nil {
		s.log.Error().Err(err).Msg("Cache cleanup failed")
		return
	}
	if removed > 0 {
		s.log.Info().Int64("removed", removed).Msg("Expired cache rows removed")
	}
}

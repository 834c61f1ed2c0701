// Package scheduler runs the periodic jobs of the API process.
package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"apexfinance/internal/logger"
	"apexfinance/internal/services"
)

// Scheduler wraps cron-based jobs.
type Scheduler struct {
	cron *cron.Cron
	log  *zap.SugaredLogger
	now  func() time.Time
}

// New creates a Scheduler evaluating standard five-field cron specs in loc.
// Panicking jobs are recovered and a job still running is not started again.
func New(loc *time.Location) *Scheduler {
	log := logger.Named("scheduler")
	cronLog := cronLogger{log: log}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		log: log,
		now: time.Now,
	}
}

// ScheduleSnapshots registers the job recording a score snapshot for every
// workspace on the given cron spec.
func (s *Scheduler) ScheduleSnapshots(spec string, snapshots services.ScoreSnapshotServicer) (cron.EntryID, error) {
	id, err := s.cron.AddFunc(spec, s.snapshotJob(snapshots))
	if err != nil {
		return 0, fmt.Errorf("invalid snapshot schedule %q: %w", spec, err)
	}
	s.log.Infow("snapshot job scheduled", "spec", spec)
	return id, nil
}

// snapshotJob records snapshots stamped with the current minute, so that a
// retried run in the same minute updates rather than duplicates.
func (s *Scheduler) snapshotJob(snapshots services.ScoreSnapshotServicer) func() {
	return func() {
		recordedAt := s.now().UTC().Truncate(time.Minute)
		count, err := snapshots.RecordAllSnapshots(recordedAt)
		if err != nil {
			s.log.Errorw("snapshot job failed", "recorded_at", recordedAt, "error", err)
			return
		}
		s.log.Infow("snapshot job finished", "recorded_at", recordedAt, "snapshots_recorded", count)
	}
}

// Entries returns the number of registered jobs.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// Start runs the scheduler in its own goroutine. It does not block.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// cronLogger adapts the zap logger to cron.Logger.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"financetracker/ledger"
)

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

// snapshotScheduler records the daily balance snapshot on a cron schedule.
type snapshotScheduler struct {
	cron    *cron.Cron
	service *ledger.Service
	timeout time.Duration
	log     zerolog.Logger
}

func newSnapshotScheduler(schedule string, svc *ledger.Service, timeout time.Duration, log zerolog.Logger) (*snapshotScheduler, error) {
	log = log.With().Str("component", "scheduler").Logger()
	cl := cronLogger{log: log}

	s := &snapshotScheduler{
		cron:    cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		service: svc,
		timeout: timeout,
		log:     log,
	}
	if _, err := s.cron.AddFunc(schedule, s.recordSnapshot); err != nil {
		return nil, fmt.Errorf("schedule snapshot %q: %w", schedule, err)
	}
	return s, nil
}

func (s *snapshotScheduler) recordSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.service.RecordSnapshot(ctx); err != nil {
		s.log.Error().Err(err).Msg("Scheduled snapshot failed")
	}
}

// Start runs the scheduler in its own goroutine.
func (s *snapshotScheduler) Start() {
	s.cron.Start()
	for _, entry := range s.cron.Entries() {
		s.log.Info().Time("next_run", entry.Next).Msg("Snapshot scheduler started")
	}
}

// Stop halts the scheduler and waits for a running snapshot up to ctx.
func (s *snapshotScheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn().Msg("Snapshot still running at shutdown")
	}
}

/*
scheduler.go - Daily event check scheduler

PURPOSE:
  Runs the notification pipeline once a day at a configured time-of-day,
  looking ahead the configured number of days so greetings arrive before
  the event.

DESIGN:
  - cron-backed (robfig/cron), one entry with a "M H * * *" spec
  - an atomic guard skips a tick if the previous run is still going
  - RunNow triggers an immediate out-of-band run (startup check, admin)

USAGE:
  sched := NewScheduler(orch, cfg.CronSpec(), cfg.LookaheadDays, log)
  sched.Start()
  // ... later
  sched.Stop()

SEE ALSO:
  - notify/orchestrator.go: The pipeline each run executes
  - config/config.go: CronSpec derivation from daily_check_time
*/
package api

import (
	"context"
	"sync/atomic"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/warp/office-cheer/notify"
)

// Scheduler triggers the daily notification run.
type Scheduler struct {
	orch      *notify.Orchestrator
	spec      string
	lookahead int
	log       zerolog.Logger

	cron    *cron.Cron
	running atomic.Bool
}

// NewScheduler creates a scheduler; Start must be called to activate it.
func NewScheduler(orch *notify.Orchestrator, spec string, lookaheadDays int, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		orch:      orch,
		spec:      spec,
		lookahead: lookaheadDays,
		log:       log,
		cron:      cron.New(),
	}
}

// Start registers the daily job and begins the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runOnce); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Int("lookahead_days", s.lookahead).Msg("scheduler started")
	return nil
}

// Stop halts the cron loop and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("scheduler stopped")
}

// RunNow executes a check immediately, outside the schedule.
func (s *Scheduler) RunNow() {
	s.runOnce()
}

func (s *Scheduler) runOnce() {
	if !s.running.CompareAndSwap(false, true) {
		s.log.Warn().Msg("previous run still in progress, skipping")
		return
	}
	defer s.running.Store(false)

	outcomes := s.orch.ProcessUpcoming(context.Background(), s.lookahead)

	var sent, failed int
	for _, out := range outcomes {
		if out.Status == notify.StatusSent {
			sent++
		} else {
			failed++
		}
	}
	s.log.Info().Int("sent", sent).Int("failed", failed).Msg("daily check completed")
}

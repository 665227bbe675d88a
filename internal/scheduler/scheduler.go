// Package scheduler drives the live feeds: a cron job extends every feed by
// one bar and publishes the new candle.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rustyeddy/marketsim/config"
	"github.com/rustyeddy/marketsim/internal/metrics"
)

// Scheduler manages the live tick job.
type Scheduler struct {
	cron     *cron.Cron
	registry *Registry
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

// New registers the tick job on spec (see config.CronParser for the grammar).
func New(reg *Registry, spec string, m *metrics.Metrics, log zerolog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(cron.WithParser(config.CronParser)),
		registry: reg,
		metrics:  m,
		log:      log,
	}
	if _, err := s.cron.AddFunc(spec, func() { s.TickAll() }); err != nil {
		return nil, fmt.Errorf("register tick job: %w", err)
	}
	return s, nil
}

// TickAll extends every feed once and returns how many were ticked.
func (s *Scheduler) TickAll() int {
	n := 0
	for _, f := range s.registry.Feeds() {
		c, err := f.Tick()
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", f.Symbol()).Msg("tick failed")
			continue
		}
		n++
		if s.metrics != nil {
			s.metrics.Ticks.WithLabelValues(f.Symbol(), string(f.Interval())).Inc()
		}
		if dropped := s.registry.Publish(f.Symbol(), f.Interval(), c); dropped > 0 {
			s.log.Debug().Str("symbol", f.Symbol()).Int("dropped", dropped).Msg("slow subscribers")
		}
	}
	return n
}

// Start runs the job in the background until Stop.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Int("feeds", len(s.registry.Feeds())).Msg("scheduler started")
}

// Stop halts the job and waits for a running tick to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info().Msg("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// OverdueMarker flips unpaid invoices past their due date to overdue.
type OverdueMarker interface {
	SweepOverdue(ctx context.Context) (int64, error)
}

// OverdueSweeper runs the overdue invoice sweep on a cron schedule.
type OverdueSweeper struct {
	cron     *cron.Cron
	invoices OverdueMarker
	log      zerolog.Logger
}

// NewOverdueSweeper registers the sweep under schedule (standard five-field
// cron or a descriptor such as "@hourly"). Overlapping runs are skipped.
func NewOverdueSweeper(schedule string, invoices OverdueMarker, log zerolog.Logger) (*OverdueSweeper, error) {
	l := log.With().Str("component", "overdue_sweeper").Logger()
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(&l))))

	s := &OverdueSweeper{cron: c, invoices: invoices, log: l}
	if _, err := c.AddFunc(schedule, s.run); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *OverdueSweeper) Start() {
	s.log.Info().Msg("OverdueSweeper started")
	s.cron.Start()
}

// Stop halts the scheduler and returns a context that is done once a running
// sweep has finished.
func (s *OverdueSweeper) Stop() context.Context {
	return s.cron.Stop()
}

func (s *OverdueSweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	s.RunOnce(ctx)
}

// RunOnce performs a single sweep.
func (s *OverdueSweeper) RunOnce(ctx context.Context) int64 {
	n, err := s.invoices.SweepOverdue(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Overdue sweep failed")
		return 0
	}
	if n > 0 {
		s.log.Info().Int64("invoices", n).Msg("Marked invoices overdue")
	}
	return n
}

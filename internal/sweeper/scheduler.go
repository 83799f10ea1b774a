package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// SchedulerConfig holds scheduler configuration
type SchedulerConfig struct {
	Logger     *slog.Logger
	Sweeper    *Sweeper
	Schedule   string
	RunOnStart bool
	Timeout    time.Duration
}

// Scheduler runs the sweeper on a cron schedule. Overlapping runs are
// skipped.
type Scheduler struct {
	logger     *slog.Logger
	sweeper    *Sweeper
	cron       *cron.Cron
	schedule   string
	runOnStart bool
	timeout    time.Duration
	wg         sync.WaitGroup
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cfg *SchedulerConfig) *Scheduler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cronLogger := cronLogger{logger: logger}
	return &Scheduler{
		logger:  logger,
		sweeper: cfg.Sweeper,
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		schedule:   cfg.Schedule,
		runOnStart: cfg.RunOnStart,
		timeout:    cfg.Timeout,
	}
}

// Start registers the sweep and blocks until ctx is canceled
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.schedule, func() { s.run(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule sweep %q: %w", s.schedule, err)
	}

	s.logger.Info("Starting sweeper",
		slog.String("schedule", s.schedule),
		slog.Bool("run_on_start", s.runOnStart),
		slog.Duration("timeout", s.timeout),
	)

	s.cron.Start()

	if s.runOnStart {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.run(ctx)
		}()
	}

	<-ctx.Done()
	s.logger.Info("Sweeper context canceled, stopping...")

	return nil
}

// Stop waits for running sweeps to finish
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping sweeper...")
	<-s.cron.Stop().Done()
	s.wg.Wait()
	s.logger.Info("Sweeper stopped")
}

// RunOnce performs a single sweep outside the schedule
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.sweeper.Sweep(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	start := time.Now()

	n, err := s.RunOnce(ctx)
	if err != nil {
		s.logger.Error("Sweep failed",
			slog.Any("error", err),
			slog.Duration("duration", time.Since(start)),
		)
		return
	}

	s.logger.Info("Sweep complete",
		slog.Int("expired", n),
		slog.Duration("duration", time.Since(start)),
	)
}

// cronLogger adapts slog to the cron.Logger interface
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, slog.Any("error", err))...)
}

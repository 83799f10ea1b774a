// Package sweeper expires jobs whose deadline has passed.
package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cuongbtq/jobboard-be/internal/api/filter"
	"github.com/cuongbtq/jobboard-be/internal/events"
)

// Store flips matching jobs to expired and returns their ids
type Store interface {
	ExpireJobs(ctx context.Context, pred filter.Predicate) ([]string, error)
}

// Publisher announces expired jobs
type Publisher interface {
	PublishJobsExpired(ctx context.Context, event events.JobsExpired) error
}

// CacheInvalidator drops cached data derived from the visible job set
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Config holds Sweeper dependencies. Publisher and Cache are optional.
type Config struct {
	Logger    *slog.Logger
	Store     Store
	Publisher Publisher
	Cache     CacheInvalidator
	Now       func() time.Time
}

// Sweeper runs the job lifecycle sweep
type Sweeper struct {
	logger    *slog.Logger
	store     Store
	publisher Publisher
	cache     CacheInvalidator
	now       func() time.Time
}

// NewSweeper creates a new Sweeper instance
func NewSweeper(cfg *Config) *Sweeper {
	s := &Sweeper{
		logger:    cfg.Logger,
		store:     cfg.Store,
		publisher: cfg.Publisher,
		cache:     cfg.Cache,
		now:       cfg.Now,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// ExpiryPredicate selects unexpired jobs whose expiry date is before now
func ExpiryPredicate(now time.Time) filter.Predicate {
	return filter.Predicate{
		filter.Eq(filter.FieldHasExpiryDate, true),
		filter.Lt(filter.FieldExpiryDate, now),
		filter.Eq(filter.FieldExpired, false),
	}
}

// Sweep marks every job past its expiry date as expired in one conditional
// update and returns how many it changed. Running it again without new
// expiries changes nothing.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	now := s.now()

	ids, err := s.store.ExpireJobs(ctx, ExpiryPredicate(now))
	if err != nil {
		return 0, fmt.Errorf("failed to expire jobs: %w", err)
	}

	if len(ids) == 0 {
		s.logger.Debug("No jobs to expire")
		return 0, nil
	}

	s.logger.Info("Jobs expired", slog.Int("count", len(ids)))

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("Failed to invalidate city cache", slog.String("error", err.Error()))
		}
	}

	if s.publisher != nil {
		event := events.JobsExpired{JobIDs: ids, At: now}
		if err := s.publisher.PublishJobsExpired(ctx, event); err != nil {
			s.logger.Warn("Failed to publish jobs expired event", slog.String("error", err.Error()))
		}
	}

	return len(ids), nil
}

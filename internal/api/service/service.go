package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cuongbtq/jobboard-be/internal/api/auth"
	"github.com/cuongbtq/jobboard-be/internal/api/domain"
	"github.com/cuongbtq/jobboard-be/internal/api/filter"
	"github.com/cuongbtq/jobboard-be/internal/api/model"
	"github.com/cuongbtq/jobboard-be/internal/api/validate"
	"github.com/cuongbtq/jobboard-be/internal/events"
	"github.com/google/uuid"
)

var errNoExpirer = errors.New("job expirer is not configured")

// JobStore is the relational store behind the job operations
type JobStore interface {
	ListJobs(ctx context.Context, pred filter.Predicate, order []filter.OrderBy, window filter.Window) ([]model.JobWithCompany, error)
	CountJobs(ctx context.Context, pred filter.Predicate) (int, error)
	GetJob(ctx context.Context, pred filter.Predicate) (*model.JobWithCompany, error)
	ListCities(ctx context.Context, pred filter.Predicate) ([]string, error)
	FindCompanyByOwner(ctx context.Context, companyID, userID string) (*model.Company, error)
	FindJobByOwner(ctx context.Context, jobID, userID string) (*model.Job, error)
	CreateJob(ctx context.Context, job *model.Job) error
	UpdateJob(ctx context.Context, job *model.Job) error
}

// Publisher announces submitted jobs to the approval process
type Publisher interface {
	PublishJobSubmitted(ctx context.Context, event events.JobSubmitted) error
}

// CityCache caches the city filter list
type CityCache interface {
	GetCities(ctx context.Context) ([]string, bool, error)
	SetCities(ctx context.Context, cities []string) error
	Invalidate(ctx context.Context) error
}

// Expirer runs one lifecycle sweep and reports how many jobs it expired
type Expirer interface {
	Sweep(ctx context.Context) (int, error)
}

// Config holds JobService dependencies. Publisher and Cities are optional.
type Config struct {
	Logger    *slog.Logger
	Store     JobStore
	Auth      auth.Provider
	Validator *validate.Validator
	Publisher Publisher
	Cities    CityCache
	Expirer   Expirer
	Now       func() time.Time
	NewID     func() string
}

// JobService implements every job board operation. It holds no mutable
// state; each call works only with its own inputs and the store.
type JobService struct {
	logger    *slog.Logger
	store     JobStore
	auth      auth.Provider
	validator *validate.Validator
	publisher Publisher
	cities    CityCache
	expirer   Expirer
	now       func() time.Time
	newID     func() string
}

// NewJobService creates a new JobService instance
func NewJobService(cfg *Config) *JobService {
	s := &JobService{
		logger:    cfg.Logger,
		store:     cfg.Store,
		auth:      cfg.Auth,
		validator: cfg.Validator,
		publisher: cfg.Publisher,
		cities:    cfg.Cities,
		expirer:   cfg.Expirer,
		now:       cfg.Now,
		newID:     cfg.NewID,
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.auth == nil {
		s.auth = auth.ContextProvider{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.validator == nil {
		s.validator = validate.NewWithClock(s.now)
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}

	return s
}

// storeFailure logs an unexpected store error and hides it behind DATABASE_ERROR
func (s *JobService) storeFailure(op string, err error) error {
	s.logger.Error("Store operation failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
	return domain.NewDatabase(fmt.Errorf("%s: %w", op, err))
}

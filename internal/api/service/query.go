package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cuongbtq/jobboard-be/internal/api/domain"
	"github.com/cuongbtq/jobboard-be/internal/api/dto"
	"github.com/cuongbtq/jobboard-be/internal/api/filter"
	"github.com/cuongbtq/jobboard-be/internal/api/model"
	"github.com/cuongbtq/jobboard-be/internal/api/response"
	"github.com/cuongbtq/jobboard-be/internal/api/validate"
	"golang.org/x/sync/errgroup"
)

// GetAllJobs returns one page of publicly visible jobs matching the filter
// payload together with the total number of matches.
//
// The page and the count are read concurrently with the same predicate; if
// either read fails the whole call fails.
func (s *JobService) GetAllJobs(ctx context.Context, raw map[string]any) (*response.Success, error) {
	var req dto.JobQueryRequest
	if err := validate.Decode(filter.Normalize(raw), &req); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(&req); err != nil {
		return nil, err
	}

	compiled := filter.Compile(req.ToQuery())
	pred := compiled.Predicate.And(filter.Visible()...)

	var (
		jobs  []model.JobWithCompany
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		jobs, err = s.store.ListJobs(gctx, pred, compiled.OrderBy, compiled.Window)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.store.CountJobs(gctx, pred)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.storeFailure("get all jobs", err)
	}

	return response.NewSuccess("All jobs fetched successfully", http.StatusOK, dto.JobListResponse{
		Jobs:      dto.NewJobDTOs(jobs),
		TotalJobs: total,
	}), nil
}

// GetJobByID returns a non-expired job, or a null job when none matches
func (s *JobService) GetJobByID(ctx context.Context, req dto.JobByIDRequest) (*response.Success, error) {
	if err := s.validator.Struct(&req); err != nil {
		return nil, err
	}

	pred := filter.Predicate{
		filter.Eq(filter.FieldID, req.ID),
		filter.Eq(filter.FieldExpired, false),
	}

	var out dto.JobResponse
	job, err := s.store.GetJob(ctx, pred)
	switch {
	case errors.Is(err, domain.ErrJobNotFound):
	case err != nil:
		return nil, s.storeFailure("get job by id", err)
	default:
		j := dto.NewJobDTO(job)
		out.Job = &j
	}

	return response.NewSuccess(fmt.Sprintf("%s Job fetched successfully", req.ID), http.StatusOK, out), nil
}

// GetCityFilters returns the distinct cities of publicly visible jobs
func (s *JobService) GetCityFilters(ctx context.Context) (*response.Success, error) {
	if s.cities != nil {
		cities, ok, err := s.cities.GetCities(ctx)
		if err != nil {
			s.logger.Warn("City cache read failed", slog.String("error", err.Error()))
		}
		if ok {
			return citiesResponse(cities), nil
		}
	}

	cities, err := s.store.ListCities(ctx, filter.Predicate(filter.Visible()))
	if err != nil {
		return nil, s.storeFailure("get city filters", err)
	}

	if s.cities != nil {
		if err := s.cities.SetCities(ctx, cities); err != nil {
			s.logger.Warn("City cache write failed", slog.String("error", err.Error()))
		}
	}

	return citiesResponse(cities), nil
}

func citiesResponse(cities []string) *response.Success {
	if cities == nil {
		cities = []string{}
	}
	return response.NewSuccess("Cities fetched successfully", http.StatusOK, dto.CitiesResponse{Cities: cities})
}

// GetRecentJobs returns the newest publicly visible jobs
func (s *JobService) GetRecentJobs(ctx context.Context) (*response.Success, error) {
	jobs, err := s.store.ListJobs(ctx, filter.Predicate(filter.Visible()), filter.Newest(), filter.Window{Limit: domain.RecentJobsLimit})
	if err != nil {
		return nil, s.storeFailure("get recent jobs", err)
	}

	return response.NewSuccess("Recently added jobs fetch successfully", http.StatusOK, dto.RecentJobsResponse{
		RecentJobs: dto.NewJobDTOs(jobs),
	}), nil
}

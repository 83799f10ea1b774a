package service

import (
	"context"
	"net/http"

	"github.com/cuongbtq/jobboard-be/internal/api/domain"
	"github.com/cuongbtq/jobboard-be/internal/api/dto"
	"github.com/cuongbtq/jobboard-be/internal/api/filter"
	"github.com/cuongbtq/jobboard-be/internal/api/response"
)

const (
	msgRecommended = "Recommended jobs fetched successfully"
	msgFallback    = "No jobs found in this category, here are some recent jobs"
)

// GetRecommendedJobs returns up to three jobs related to the reference job.
//
// Verified, non-expired jobs of the same category come first. When there are
// none, the newest non-expired jobs of any category are returned instead.
// The fallback does not require verification, matching the listing this
// service replaced; see DESIGN.md.
func (s *JobService) GetRecommendedJobs(ctx context.Context, req dto.RecommendedJobsRequest) (*response.Success, error) {
	if err := s.validator.Struct(&req); err != nil {
		return nil, err
	}

	window := filter.Window{Limit: domain.RecommendationLimit}

	sameCategory := filter.Predicate{
		filter.Eq(filter.FieldCategory, req.Category),
		filter.Neq(filter.FieldID, req.ID),
	}.And(filter.Visible()...)

	jobs, err := s.store.ListJobs(ctx, sameCategory, filter.Newest(), window)
	if err != nil {
		return nil, s.storeFailure("get recommended jobs", err)
	}
	if len(jobs) > 0 {
		return response.NewSuccess(msgRecommended, http.StatusOK, dto.RecommendedJobsResponse{
			Jobs: dto.NewJobDTOs(jobs),
		}), nil
	}

	recent := filter.Predicate{
		filter.Neq(filter.FieldID, req.ID),
		filter.Eq(filter.FieldExpired, false),
	}

	jobs, err = s.store.ListJobs(ctx, recent, filter.Newest(), window)
	if err != nil {
		return nil, s.storeFailure("get fallback jobs", err)
	}

	return response.NewSuccess(msgFallback, http.StatusOK, dto.RecommendedJobsResponse{
		Jobs: dto.NewJobDTOs(jobs),
	}), nil
}

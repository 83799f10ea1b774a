package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cuongbtq/jobboard-be/internal/api/domain"
	"github.com/cuongbtq/jobboard-be/internal/api/dto"
	"github.com/cuongbtq/jobboard-be/internal/api/model"
	"github.com/cuongbtq/jobboard-be/internal/api/response"
	"github.com/cuongbtq/jobboard-be/internal/events"
)

const (
	msgNotAuthorized   = "Not Authorized"
	msgCompanyNotFound = "Company not found or not authorized"
	msgJobNotFound     = "Job not found or not authorized"
)

// CreateJob stores a new unverified job for a company owned by the caller
func (s *JobService) CreateJob(ctx context.Context, req dto.JobPostRequest) (*response.Success, error) {
	identity, ok := s.auth.Identify(ctx)
	if !ok {
		return nil, domain.NewUnauthorized(msgNotAuthorized)
	}

	if err := s.validator.Struct(&req); err != nil {
		return nil, err
	}

	if _, err := s.store.FindCompanyByOwner(ctx, req.CompanyID, identity.UserID); err != nil {
		return nil, s.ownershipFailure("find company", msgCompanyNotFound, err)
	}

	now := s.now()
	job := &model.Job{
		ID:        s.newID(),
		UserID:    identity.UserID,
		PostedAt:  now,
		UpdatedAt: now,
	}
	applyPost(job, req)

	if err := s.store.CreateJob(ctx, job); err != nil {
		return nil, s.storeFailure("create job", err)
	}

	s.logger.Info("Job created",
		slog.String("job_id", job.ID),
		slog.String("company_id", job.CompanyID),
	)
	s.announce(ctx, job, events.ActionCreated)
	s.invalidateCities(ctx)

	return response.NewSuccess("Job created successfully, waiting for admin approval", http.StatusCreated, dto.CreateJobResponse{
		IsVerifiedJob: job.IsVerifiedJob,
	}), nil
}

// UpdateJob fully replaces a job created by the caller and sends it back to
// review. The target company must also belong to the caller.
func (s *JobService) UpdateJob(ctx context.Context, jobID string, req dto.JobPostRequest) (*response.Success, error) {
	identity, ok := s.auth.Identify(ctx)
	if !ok {
		return nil, domain.NewUnauthorized(msgNotAuthorized)
	}

	if err := s.validator.Struct(&dto.JobByIDRequest{ID: jobID}); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(&req); err != nil {
		return nil, err
	}

	existing, err := s.store.FindJobByOwner(ctx, jobID, identity.UserID)
	if err != nil {
		return nil, s.ownershipFailure("find job", msgJobNotFound, err)
	}

	if _, err := s.store.FindCompanyByOwner(ctx, req.CompanyID, identity.UserID); err != nil {
		return nil, s.ownershipFailure("find company", msgCompanyNotFound, err)
	}

	job := *existing
	applyPost(&job, req)
	job.UpdatedAt = s.now()

	if err := s.store.UpdateJob(ctx, &job); err != nil {
		return nil, s.ownershipFailure("update job", msgJobNotFound, err)
	}

	s.logger.Info("Job updated", slog.String("job_id", job.ID))
	s.announce(ctx, &job, events.ActionUpdated)
	s.invalidateCities(ctx)

	return response.NewSuccess("Job updated successfully", http.StatusOK, dto.UpdateJobResponse{
		IsVerifiedJob: job.IsVerifiedJob,
		JobID:         job.ID,
	}), nil
}

// applyPost copies the editable fields of req onto job. Ranges and the expiry
// date are only stored under their flag, and the job always returns to the
// unverified state.
func applyPost(job *model.Job, req dto.JobPostRequest) {
	job.CompanyID = req.CompanyID
	job.Title = req.Title
	job.Description = req.Description
	job.Type = req.Type
	job.Category = req.Category
	job.WorkMode = req.WorkMode
	job.City = req.City
	job.Address = req.Address
	job.Application = req.Application
	job.Skills = append([]string{}, req.Skills...)

	job.HasSalaryRange = req.HasSalaryRange
	job.MinSalary, job.MaxSalary = nil, nil
	if req.HasSalaryRange {
		job.MinSalary, job.MaxSalary = req.MinSalary, req.MaxSalary
	}

	job.HasExperienceRange = req.HasExperiencerange
	job.MinExperience, job.MaxExperience = nil, nil
	if req.HasExperiencerange {
		job.MinExperience, job.MaxExperience = req.MinExperience, req.MaxExperience
	}

	job.HasExpiryDate = req.HasExpiryDate
	job.ExpiryDate = nil
	if req.HasExpiryDate {
		job.ExpiryDate = req.ExpiryDate
	}

	job.IsVerifiedJob = false
}

// ownershipFailure turns a miss into the generic NOT_FOUND so callers cannot
// tell a missing record from one owned by someone else
func (s *JobService) ownershipFailure(op, msg string, err error) error {
	if errors.Is(err, domain.ErrJobNotFound) || errors.Is(err, domain.ErrCompanyNotFound) {
		return domain.NewNotFound(msg, err)
	}
	return s.storeFailure(op, err)
}

func (s *JobService) announce(ctx context.Context, job *model.Job, action string) {
	if s.publisher == nil {
		return
	}

	event := events.JobSubmitted{
		JobID:     job.ID,
		UserID:    job.UserID,
		CompanyID: job.CompanyID,
		Action:    action,
		At:        job.UpdatedAt,
	}
	if err := s.publisher.PublishJobSubmitted(ctx, event); err != nil {
		s.logger.Warn("Failed to publish job submitted event",
			slog.String("job_id", job.ID),
			slog.String("error", err.Error()),
		)
	}
}

// invalidateCities drops the cached city list after a write changed which
// jobs are publicly visible
func (s *JobService) invalidateCities(ctx context.Context) {
	if s.cities == nil {
		return
	}
	if err := s.cities.Invalidate(ctx); err != nil {
		s.logger.Warn("City cache invalidation failed", slog.String("error", err.Error()))
	}
}

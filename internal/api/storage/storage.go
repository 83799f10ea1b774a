package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cuongbtq/jobboard-be/internal/api/domain"
	"github.com/cuongbtq/jobboard-be/internal/api/filter"
	"github.com/cuongbtq/jobboard-be/internal/api/model"
	"github.com/cuongbtq/jobboard-be/shared/postgresql"
	"github.com/jmoiron/sqlx"
)

const jobColumns = `
	j.id, j.user_id, j.company_id, j.title, j.description,
	j.type, j.category, j.work_mode, j.city, j.address,
	j.application, j.skills,
	j.has_salary_range, j.min_salary, j.max_salary,
	j.has_experience_range, j.min_experience, j.max_experience,
	j.has_expiry_date, j.expiry_date,
	j.is_verified_job, j.expired, j.posted_at, j.updated_at`

const companyColumns = `
	c.id AS "company.id", c.name AS "company.name",
	c.bio AS "company.bio", c.logo AS "company.logo"`

type Storage struct {
	db *sqlx.DB
}

func NewStorage(pg *postgresql.Client) *Storage {
	return &Storage{
		db: pg.GetDB(),
	}
}

// ListJobs returns jobs matching pred joined with their company
func (s *Storage) ListJobs(ctx context.Context, pred filter.Predicate, order []filter.OrderBy, window filter.Window) ([]model.JobWithCompany, error) {
	b := &queryBuilder{}

	where, err := b.where(pred)
	if err != nil {
		return nil, fmt.Errorf("failed to build job filter: %w", err)
	}

	sort, err := orderBy(order)
	if err != nil {
		return nil, fmt.Errorf("failed to build job order: %w", err)
	}

	query := `SELECT ` + jobColumns + `,` + companyColumns + `
		FROM jobs j
		JOIN companies c ON c.id = j.company_id` +
		where + sort + b.window(window)

	jobs := []model.JobWithCompany{}
	if err := s.db.SelectContext(ctx, &jobs, query, b.args...); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, nil
}

// CountJobs returns the number of jobs matching pred
func (s *Storage) CountJobs(ctx context.Context, pred filter.Predicate) (int, error) {
	b := &queryBuilder{}

	where, err := b.where(pred)
	if err != nil {
		return 0, fmt.Errorf("failed to build job filter: %w", err)
	}

	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM jobs j`+where, b.args...); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	return count, nil
}

// GetJob returns the first job matching pred
func (s *Storage) GetJob(ctx context.Context, pred filter.Predicate) (*model.JobWithCompany, error) {
	jobs, err := s.ListJobs(ctx, pred, nil, filter.Window{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, domain.ErrJobNotFound
	}
	return &jobs[0], nil
}

// ListCities returns the distinct cities of jobs matching pred
func (s *Storage) ListCities(ctx context.Context, pred filter.Predicate) ([]string, error) {
	b := &queryBuilder{}

	where, err := b.where(pred)
	if err != nil {
		return nil, fmt.Errorf("failed to build city filter: %w", err)
	}

	cities := []string{}
	query := `SELECT DISTINCT j.city FROM jobs j` + where + ` ORDER BY j.city`
	if err := s.db.SelectContext(ctx, &cities, query, b.args...); err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}

	return cities, nil
}

// FindCompanyByOwner returns the company only when userID owns it
func (s *Storage) FindCompanyByOwner(ctx context.Context, companyID, userID string) (*model.Company, error) {
	var company model.Company
	query := `
		SELECT id, user_id, name, bio, logo
		FROM companies
		WHERE id = $1 AND user_id = $2
	`

	err := s.db.GetContext(ctx, &company, query, companyID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return &company, nil
}

// FindJobByOwner returns the job only when userID created it
func (s *Storage) FindJobByOwner(ctx context.Context, jobID, userID string) (*model.Job, error) {
	var job model.Job
	query := `SELECT ` + jobColumns + ` FROM jobs j WHERE j.id = $1 AND j.user_id = $2`

	err := s.db.GetContext(ctx, &job, query, jobID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &job, nil
}

func (s *Storage) CreateJob(ctx context.Context, job *model.Job) error {
	query := `
		INSERT INTO jobs (
			id, user_id, company_id, title, description,
			type, category, work_mode, city, address,
			application, skills,
			has_salary_range, min_salary, max_salary,
			has_experience_range, min_experience, max_experience,
			has_expiry_date, expiry_date,
			is_verified_job, expired, posted_at, updated_at
		) VALUES (
			:id, :user_id, :company_id, :title, :description,
			:type, :category, :work_mode, :city, :address,
			:application, :skills,
			:has_salary_range, :min_salary, :max_salary,
			:has_experience_range, :min_experience, :max_experience,
			:has_expiry_date, :expiry_date,
			:is_verified_job, :expired, :posted_at, :updated_at
		)
	`

	if _, err := s.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// UpdateJob replaces every editable field of the job owned by job.UserID.
// posted_at and expired are never touched.
func (s *Storage) UpdateJob(ctx context.Context, job *model.Job) error {
	query := `
		UPDATE jobs SET
			company_id = :company_id,
			title = :title,
			description = :description,
			type = :type,
			category = :category,
			work_mode = :work_mode,
			city = :city,
			address = :address,
			application = :application,
			skills = :skills,
			has_salary_range = :has_salary_range,
			min_salary = :min_salary,
			max_salary = :max_salary,
			has_experience_range = :has_experience_range,
			min_experience = :min_experience,
			max_experience = :max_experience,
			has_expiry_date = :has_expiry_date,
			expiry_date = :expiry_date,
			is_verified_job = :is_verified_job,
			updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id
	`

	res, err := s.db.NamedExecContext(ctx, query, job)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if affected == 0 {
		return domain.ErrJobNotFound
	}

	return nil
}

// ExpireJobs marks every job matching pred as expired in one statement and
// returns the ids it changed
func (s *Storage) ExpireJobs(ctx context.Context, pred filter.Predicate) ([]string, error) {
	b := &queryBuilder{}

	where, err := b.where(pred)
	if err != nil {
		return nil, fmt.Errorf("failed to build expiry filter: %w", err)
	}

	ids := []string{}
	query := `UPDATE jobs AS j SET expired = TRUE, updated_at = NOW()` + where + ` RETURNING j.id`
	if err := s.db.SelectContext(ctx, &ids, query, b.args...); err != nil {
		return nil, fmt.Errorf("failed to expire jobs: %w", err)
	}

	return ids, nil
}

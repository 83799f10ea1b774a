package model

import (
	"time"

	"github.com/lib/pq"
)

type Job struct {
	ID                 string         `db:"id"`
	UserID             string         `db:"user_id"`
	CompanyID          string         `db:"company_id"`
	Title              string         `db:"title"`
	Description        string         `db:"description"`
	Type               string         `db:"type"`
	Category           string         `db:"category"`
	WorkMode           string         `db:"work_mode"`
	City               string         `db:"city"`
	Address            string         `db:"address"`
	Application        string         `db:"application"`
	Skills             pq.StringArray `db:"skills"`
	HasSalaryRange     bool           `db:"has_salary_range"`
	MinSalary          *int           `db:"min_salary"`
	MaxSalary          *int           `db:"max_salary"`
	HasExperienceRange bool           `db:"has_experience_range"`
	MinExperience      *int           `db:"min_experience"`
	MaxExperience      *int           `db:"max_experience"`
	HasExpiryDate      bool           `db:"has_expiry_date"`
	ExpiryDate         *time.Time     `db:"expiry_date"`
	IsVerifiedJob      bool           `db:"is_verified_job"`
	Expired            bool           `db:"expired"`
	PostedAt           time.Time      `db:"posted_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

type Company struct {
	ID     string  `db:"id"`
	UserID string  `db:"user_id"`
	Name   string  `db:"name"`
	Bio    *string `db:"bio"`
	Logo   *string `db:"logo"`
}

// CompanySummary holds the company fields exposed to job consumers
type CompanySummary struct {
	ID   string  `db:"id"`
	Name string  `db:"name"`
	Bio  *string `db:"bio"`
	Logo *string `db:"logo"`
}

// JobWithCompany is a job row joined with its company
type JobWithCompany struct {
	Job
	Company CompanySummary `db:"company"`
}

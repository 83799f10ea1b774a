package dto

import (
	"time"

	"github.com/cuongbtq/jobboard-be/internal/api/filter"
	"github.com/cuongbtq/jobboard-be/internal/api/model"
)

// JobPostRequest is the payload of job creation and update
type JobPostRequest struct {
	CompanyID          string     `json:"companyId" validate:"required,uuid"`
	Title              string     `json:"title" validate:"required,max=255"`
	Description        string     `json:"description" validate:"required"`
	Type               string     `json:"type" validate:"required,oneof=full-time part-time internship contract"`
	Category           string     `json:"category" validate:"required,max=100"`
	WorkMode           string     `json:"workMode" validate:"required,oneof=remote hybrid office"`
	City               string     `json:"city" validate:"required,max=100"`
	Address            string     `json:"address" validate:"required"`
	Application        string     `json:"application" validate:"required"`
	Skills             []string   `json:"skills" validate:"dive,required"`
	HasSalaryRange     bool       `json:"hasSalaryRange"`
	MinSalary          *int       `json:"minSalary" validate:"required_if=HasSalaryRange true,omitempty,gte=0"`
	MaxSalary          *int       `json:"maxSalary" validate:"required_if=HasSalaryRange true,omitempty,gte=0"`
	HasExperiencerange bool       `json:"hasExperiencerange"`
	MinExperience      *int       `json:"minExperience" validate:"required_if=HasExperiencerange true,omitempty,gte=0"`
	MaxExperience      *int       `json:"maxExperience" validate:"required_if=HasExperiencerange true,omitempty,gte=0"`
	HasExpiryDate      bool       `json:"hasExpiryDate"`
	ExpiryDate         *time.Time `json:"expiryDate" validate:"required_if=HasExpiryDate true"`
}

// JobQueryRequest is the normalized filter payload of the job listing
type JobQueryRequest struct {
	WorkMode    []string `json:"workmode" validate:"dive,oneof=remote hybrid office"`
	EmpType     []string `json:"EmpType" validate:"dive,oneof=full-time part-time internship contract"`
	SalaryRange []string `json:"salaryrange" validate:"dive,salarybucket"`
	City        []string `json:"city" validate:"dive,required"`
	Experience  string   `json:"experience" validate:"omitempty,experiencebucket"`
	SortBy      string   `json:"sortby"`
	Page        *int     `json:"page" validate:"omitnil,min=1,max=1000000"`
	PageSize    *int     `json:"pageSize" validate:"omitnil,min=1,max=50"`
}

// ToQuery converts the validated request to a filter query
func (r *JobQueryRequest) ToQuery() filter.Query {
	q := filter.Query{
		WorkModes:       r.WorkMode,
		EmploymentTypes: r.EmpType,
		SalaryRanges:    r.SalaryRange,
		Cities:          r.City,
		Experience:      r.Experience,
		SortBy:          r.SortBy,
	}
	if r.Page != nil {
		q.Page = *r.Page
	}
	if r.PageSize != nil {
		q.PageSize = *r.PageSize
	}
	return q
}

type JobByIDRequest struct {
	ID string `json:"id" validate:"required,uuid"`
}

type RecommendedJobsRequest struct {
	ID       string `json:"id" validate:"required,uuid"`
	Category string `json:"category" validate:"required"`
}

type CompanyDTO struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Bio  *string `json:"bio"`
	Logo *string `json:"logo"`
}

type JobDTO struct {
	ID                 string      `json:"id"`
	Title              string      `json:"title"`
	Description        string      `json:"description"`
	CompanyID          string      `json:"companyId"`
	Type               string      `json:"type"`
	Category           string      `json:"category"`
	WorkMode           string      `json:"workMode"`
	City               string      `json:"city"`
	Address            string      `json:"address"`
	Application        string      `json:"application"`
	Skills             []string    `json:"skills"`
	HasSalaryRange     bool        `json:"hasSalaryRange"`
	MinSalary          *int        `json:"minSalary"`
	MaxSalary          *int        `json:"maxSalary"`
	HasExperiencerange bool        `json:"hasExperiencerange"`
	MinExperience      *int        `json:"minExperience"`
	MaxExperience      *int        `json:"maxExperience"`
	HasExpiryDate      bool        `json:"hasExpiryDate"`
	ExpiryDate         *time.Time  `json:"expiryDate"`
	PostedAt           time.Time   `json:"postedAt"`
	Company            *CompanyDTO `json:"company,omitempty"`
}

type JobListResponse struct {
	Jobs      []JobDTO `json:"jobs"`
	TotalJobs int      `json:"totalJobs"`
}

type RecommendedJobsResponse struct {
	Jobs []JobDTO `json:"jobs"`
}

type JobResponse struct {
	Job *JobDTO `json:"job"`
}

type CitiesResponse struct {
	Cities []string `json:"cities"`
}

type RecentJobsResponse struct {
	RecentJobs []JobDTO `json:"recentJobs"`
}

type CreateJobResponse struct {
	IsVerifiedJob bool `json:"isVerifiedJob"`
}

type UpdateJobResponse struct {
	IsVerifiedJob bool   `json:"isVerifiedJob"`
	JobID         string `json:"jobId"`
}

// NewJobDTO converts a joined job row into its JSON shape
func NewJobDTO(j *model.JobWithCompany) JobDTO {
	skills := []string(j.Skills)
	if skills == nil {
		skills = []string{}
	}
	out := JobDTO{
		ID:                 j.ID,
		Title:              j.Title,
		Description:        j.Description,
		CompanyID:          j.CompanyID,
		Type:               j.Type,
		Category:           j.Category,
		WorkMode:           j.WorkMode,
		City:               j.City,
		Address:            j.Address,
		Application:        j.Application,
		Skills:             skills,
		HasSalaryRange:     j.HasSalaryRange,
		MinSalary:          j.MinSalary,
		MaxSalary:          j.MaxSalary,
		HasExperiencerange: j.HasExperienceRange,
		MinExperience:      j.MinExperience,
		MaxExperience:      j.MaxExperience,
		HasExpiryDate:      j.HasExpiryDate,
		ExpiryDate:         j.ExpiryDate,
		PostedAt:           j.PostedAt,
	}
	if j.Company.ID != "" {
		out.Company = &CompanyDTO{
			ID:   j.Company.ID,
			Name: j.Company.Name,
			Bio:  j.Company.Bio,
			Logo: j.Company.Logo,
		}
	}
	return out
}

// NewJobDTOs converts a slice of joined rows, never returning nil
func NewJobDTOs(rows []model.JobWithCompany) []JobDTO {
	out := make([]JobDTO, len(rows))
	for i := range rows {
		out[i] = NewJobDTO(&rows[i])
	}
	return out
}

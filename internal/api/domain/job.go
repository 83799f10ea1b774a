package domain

import (
	"errors"
)

// Work modes a job can be offered in
const (
	WorkModeRemote = "remote"
	WorkModeHybrid = "hybrid"
	WorkModeOffice = "office"
)

// Employment types
const (
	EmploymentFullTime   = "full-time"
	EmploymentPartTime   = "part-time"
	EmploymentInternship = "internship"
	EmploymentContract   = "contract"
)

const (
	// RecommendationLimit caps the number of related jobs returned for a job
	RecommendationLimit = 3
	// RecentJobsLimit caps the recent jobs listing
	RecentJobsLimit = 6
)

var (
	ErrJobNotFound     = errors.New("job not found")
	ErrCompanyNotFound = errors.New("company not found")
)

package handler

import (
	"io"
	"net/url"
	"slices"
	"strconv"

	"github.com/cuongbtq/jobboard-be/internal/api/domain"
	"github.com/cuongbtq/jobboard-be/internal/api/dto"
	"github.com/cuongbtq/jobboard-be/internal/api/filter"
	"github.com/cuongbtq/jobboard-be/internal/api/validate"
	"github.com/gin-gonic/gin"
)

// CreateJob handles POST /api/v1/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.JobPostRequest
	if err := decodeBody(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	res, err := h.service.CreateJob(c.Request.Context(), req)
	h.respond(c, res, err)
}

// UpdateJob handles PUT /api/v1/jobs/:job_id
func (h *JobHandler) UpdateJob(c *gin.Context) {
	var req dto.JobPostRequest
	if err := decodeBody(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	res, err := h.service.UpdateJob(c.Request.Context(), c.Param("job_id"), req)
	h.respond(c, res, err)
}

// ListJobs handles GET /api/v1/jobs
// Filters arrive as query parameters; repeated keys carry several values.
func (h *JobHandler) ListJobs(c *gin.Context) {
	res, err := h.service.GetAllJobs(c.Request.Context(), queryToRaw(c.Request.URL.Query()))
	h.respond(c, res, err)
}

// SearchJobs handles POST /api/v1/jobs/search
// Same as ListJobs with the filter payload sent as a JSON object.
func (h *JobHandler) SearchJobs(c *gin.Context) {
	raw := map[string]any{}
	if err := decodeBody(c, &raw); err != nil {
		h.fail(c, err)
		return
	}

	res, err := h.service.GetAllJobs(c.Request.Context(), raw)
	h.respond(c, res, err)
}

// GetJob handles GET /api/v1/jobs/:job_id
func (h *JobHandler) GetJob(c *gin.Context) {
	res, err := h.service.GetJobByID(c.Request.Context(), dto.JobByIDRequest{
		ID: c.Param("job_id"),
	})
	h.respond(c, res, err)
}

// GetRecommendedJobs handles GET /api/v1/jobs/:job_id/recommended
func (h *JobHandler) GetRecommendedJobs(c *gin.Context) {
	res, err := h.service.GetRecommendedJobs(c.Request.Context(), dto.RecommendedJobsRequest{
		ID:       c.Param("job_id"),
		Category: c.Query("category"),
	})
	h.respond(c, res, err)
}

// GetCityFilters handles GET /api/v1/jobs/cities
func (h *JobHandler) GetCityFilters(c *gin.Context) {
	res, err := h.service.GetCityFilters(c.Request.Context())
	h.respond(c, res, err)
}

// GetRecentJobs handles GET /api/v1/jobs/recent
func (h *JobHandler) GetRecentJobs(c *gin.Context) {
	res, err := h.service.GetRecentJobs(c.Request.Context())
	h.respond(c, res, err)
}

// ExpireJobs handles POST /api/v1/maintenance/expire-jobs
func (h *JobHandler) ExpireJobs(c *gin.Context) {
	res, err := h.service.UpdateExpiredJobs(c.Request.Context())
	h.respond(c, res, err)
}

// decodeBody reads a JSON body into dst. An empty body leaves dst untouched.
func decodeBody(c *gin.Context, dst any) error {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return domain.NewValidation("Invalid request payload", nil)
	}
	if len(body) == 0 {
		return nil
	}
	return validate.DecodeJSON(body, dst)
}

// queryToRaw turns query parameters into a loose filter payload. A key given
// once stays a scalar and the normalizer widens it; page numbers are parsed
// so they decode as integers.
func queryToRaw(values url.Values) map[string]any {
	raw := make(map[string]any, len(values))
	for key, vs := range values {
		if len(vs) == 0 {
			continue
		}

		switch {
		case key == "page" || key == "pageSize":
			if n, err := strconv.Atoi(vs[0]); err == nil {
				raw[key] = n
			} else {
				raw[key] = vs[0]
			}
		case len(vs) > 1 && slices.Contains(filter.ListKeys, key):
			raw[key] = vs
		default:
			raw[key] = vs[0]
		}
	}
	return raw
}

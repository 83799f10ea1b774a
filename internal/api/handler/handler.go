package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/cuongbtq/jobboard-be/internal/api/domain"
	"github.com/cuongbtq/jobboard-be/internal/api/dto"
	"github.com/cuongbtq/jobboard-be/internal/api/response"
	"github.com/gin-gonic/gin"
)

// JobService is the set of job board operations exposed over HTTP
type JobService interface {
	CreateJob(ctx context.Context, req dto.JobPostRequest) (*response.Success, error)
	GetAllJobs(ctx context.Context, raw map[string]any) (*response.Success, error)
	GetRecommendedJobs(ctx context.Context, req dto.RecommendedJobsRequest) (*response.Success, error)
	GetJobByID(ctx context.Context, req dto.JobByIDRequest) (*response.Success, error)
	GetCityFilters(ctx context.Context) (*response.Success, error)
	GetRecentJobs(ctx context.Context) (*response.Success, error)
	UpdateJob(ctx context.Context, jobID string, req dto.JobPostRequest) (*response.Success, error)
	UpdateExpiredJobs(ctx context.Context) (*response.Success, error)
}

// HealthChecker reports whether a backing dependency is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger           *slog.Logger
	Service          JobService
	DBClient         HealthChecker
	ServiceName      string
	UserIDHeader     string
	MaintenanceToken string
}

// JobHandler handles job-related HTTP requests
type JobHandler struct {
	logger  *slog.Logger
	service JobService
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{
		logger:  deps.Logger,
		service: deps.Service,
	}
}

// respond writes the success envelope, or the failure envelope for err
func (h *JobHandler) respond(c *gin.Context, res *response.Success, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(res.StatusCode, res)
}

func (h *JobHandler) fail(c *gin.Context, err error) {
	status, body := response.FromError(err)

	attrs := []any{
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("kind", string(body.Error)),
		slog.String("error", err.Error()),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", attrs...)
	} else {
		h.logger.Warn("Request rejected", attrs...)
	}

	_ = c.Error(err)
	c.JSON(status, body)
}

// HealthHandler handles GET /health
type HealthHandler struct {
	logger  *slog.Logger
	db      HealthChecker
	service string
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(deps *Dependencies) *HealthHandler {
	return &HealthHandler{
		logger:  deps.Logger,
		db:      deps.DBClient,
		service: deps.ServiceName,
	}
}

func (h *HealthHandler) Health(c *gin.Context) {
	if h.db != nil {
		if err := h.db.HealthCheck(c.Request.Context()); err != nil {
			h.logger.Error("Health check failed", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"service": h.service,
				"error":   string(domain.KindDatabase),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.service,
	})
}

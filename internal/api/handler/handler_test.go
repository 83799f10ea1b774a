package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/cuongbtq/jobboard-be/internal/api/domain"
	"github.com/cuongbtq/jobboard-be/internal/api/dto"
	"github.com/cuongbtq/jobboard-be/internal/api/response"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	res *response.Success
	err error

	raw       map[string]any
	post      dto.JobPostRequest
	jobID     string
	byID      dto.JobByIDRequest
	recommend dto.RecommendedJobsRequest
	called    string
}

func (s *stubService) CreateJob(_ context.Context, req dto.JobPostRequest) (*response.Success, error) {
	s.called, s.post = "CreateJob", req
	return s.res, s.err
}

func (s *stubService) GetAllJobs(_ context.Context, raw map[string]any) (*response.Success, error) {
	s.called, s.raw = "GetAllJobs", raw
	return s.res, s.err
}

func (s *stubService) GetRecommendedJobs(_ context.Context, req dto.RecommendedJobsRequest) (*response.Success, error) {
	s.called, s.recommend = "GetRecommendedJobs", req
	return s.res, s.err
}

func (s *stubService) GetJobByID(_ context.Context, req dto.JobByIDRequest) (*response.Success, error) {
	s.called, s.byID = "GetJobByID", req
	return s.res, s.err
}

func (s *stubService) GetCityFilters(context.Context) (*response.Success, error) {
	s.called = "GetCityFilters"
	return s.res, s.err
}

func (s *stubService) GetRecentJobs(context.Context) (*response.Success, error) {
	s.called = "GetRecentJobs"
	return s.res, s.err
}

func (s *stubService) UpdateJob(_ context.Context, jobID string, req dto.JobPostRequest) (*response.Success, error) {
	s.called, s.jobID, s.post = "UpdateJob", jobID, req
	return s.res, s.err
}

func (s *stubService) UpdateExpiredJobs(context.Context) (*response.Success, error) {
	s.called = "UpdateExpiredJobs"
	return s.res, s.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEngine(svc JobService) *gin.Engine {
	h := NewJobHandler(&Dependencies{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Service: svc,
	})

	r := gin.New()
	r.POST("/jobs", h.CreateJob)
	r.GET("/jobs", h.ListJobs)
	r.POST("/jobs/search", h.SearchJobs)
	r.GET("/jobs/:job_id", h.GetJob)
	r.GET("/jobs/:job_id/recommended", h.GetRecommendedJobs)
	r.PUT("/jobs/:job_id", h.UpdateJob)
	return r
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJobHandler_Success(t *testing.T) {
	svc := &stubService{
		res: response.NewSuccess("Job created successfully, waiting for admin approval", http.StatusCreated,
			dto.CreateJobResponse{IsVerifiedJob: false}),
	}
	r := newTestEngine(svc)

	w := serve(r, http.MethodPost, "/jobs", `{"title":"Backend Engineer","skills":["go"]}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{
		"message": "Job created successfully, waiting for admin approval",
		"statusCode": 201,
		"additional": {"isVerifiedJob": false}
	}`, w.Body.String())
	assert.Equal(t, "CreateJob", svc.called)
	assert.Equal(t, "Backend Engineer", svc.post.Title)
	assert.Equal(t, []string{"go"}, svc.post.Skills)
}

func TestJobHandler_Failure(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "unauthorized",
			err:        domain.NewUnauthorized("Not Authorized"),
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"message":"Not Authorized","error":"UNAUTHORIZED"}`,
		},
		{
			name:       "not found",
			err:        domain.NewNotFound("Job not found or not authorized", domain.ErrJobNotFound),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"message":"Job not found or not authorized","error":"NOT_FOUND"}`,
		},
		{
			name: "validation keeps the field list",
			err: domain.NewValidation("Invalid request payload", []domain.FieldError{
				{Field: "title", Message: "is required"},
			}),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"Invalid request payload","error":"VALIDATION_ERROR","fields":[{"field":"title","message":"is required"}]}`,
		},
		{
			name:       "unknown errors hide their cause",
			err:        errors.New("pq: relation \"jobs\" does not exist"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"Internal server error","error":"DATABASE_ERROR"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestEngine(&stubService{err: tt.err})

			w := serve(r, http.MethodPut, "/jobs/abc", `{}`)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestJobHandler_MalformedBody(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{name: "not json", body: `{"title":`},
		{name: "wrong field type", body: `{"minSalary":"lots"}`, wantField: "minSalary"},
		{name: "bad date", body: `{"expiryDate":"tomorrow"}`, wantField: "expiryDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{}
			r := newTestEngine(svc)

			w := serve(r, http.MethodPost, "/jobs", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, svc.called)

			var body response.Failure
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, domain.KindValidation, body.Error)
			if tt.wantField != "" {
				require.Len(t, body.Fields, 1)
				assert.Equal(t, tt.wantField, body.Fields[0].Field)
			}
		})
	}
}

func TestJobHandler_ListJobs_Query(t *testing.T) {
	svc := &stubService{res: response.NewSuccess("All jobs fetched successfully", http.StatusOK, nil)}
	r := newTestEngine(svc)

	w := serve(r, http.MethodGet, "/jobs?workmode=remote&city=Pune&city=Delhi&page=2&pageSize=x&sortby=oldest", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{
		"workmode": "remote",
		"city":     []string{"Pune", "Delhi"},
		"page":     2,
		"pageSize": "x",
		"sortby":   "oldest",
	}, svc.raw)
}

func TestJobHandler_SearchJobs(t *testing.T) {
	t.Run("json payload", func(t *testing.T) {
		svc := &stubService{res: response.NewSuccess("All jobs fetched successfully", http.StatusOK, nil)}
		r := newTestEngine(svc)

		w := serve(r, http.MethodPost, "/jobs/search", `{"workmode":["remote","hybrid"],"page":1}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []any{"remote", "hybrid"}, svc.raw["workmode"])
		assert.Equal(t, float64(1), svc.raw["page"])
	})

	t.Run("empty body lists everything", func(t *testing.T) {
		svc := &stubService{res: response.NewSuccess("All jobs fetched successfully", http.StatusOK, nil)}
		r := newTestEngine(svc)

		w := serve(r, http.MethodPost, "/jobs/search", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, svc.raw)
	})

	t.Run("non object payload", func(t *testing.T) {
		svc := &stubService{}
		r := newTestEngine(svc)

		w := serve(r, http.MethodPost, "/jobs/search", `["remote"]`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, svc.called)
	})
}

func TestJobHandler_PathParams(t *testing.T) {
	svc := &stubService{res: response.NewSuccess("ok", http.StatusOK, nil)}
	r := newTestEngine(svc)

	serve(r, http.MethodGet, "/jobs/42/recommended?category="+url.QueryEscape("data science"), "")
	assert.Equal(t, dto.RecommendedJobsRequest{ID: "42", Category: "data science"}, svc.recommend)

	serve(r, http.MethodGet, "/jobs/43", "")
	assert.Equal(t, dto.JobByIDRequest{ID: "43"}, svc.byID)

	serve(r, http.MethodPut, "/jobs/44", `{"title":"x"}`)
	assert.Equal(t, "44", svc.jobID)
	assert.Equal(t, "x", svc.post.Title)
}

type stubHealth struct {
	err error
}

func (s stubHealth) HealthCheck(context.Context) error { return s.err }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		db         HealthChecker
		wantStatus int
		wantState  string
	}{
		{name: "database up", db: stubHealth{}, wantStatus: http.StatusOK, wantState: "healthy"},
		{name: "database down", db: stubHealth{err: errors.New("timeout")}, wantStatus: http.StatusServiceUnavailable, wantState: "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(&Dependencies{
				Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
				DBClient:    tt.db,
				ServiceName: "job-api-service",
			})
			r := gin.New()
			r.GET("/health", h.Health)

			w := serve(r, http.MethodGet, "/health", "")

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantState, body["status"])
			assert.Equal(t, "job-api-service", body["service"])
		})
	}
}

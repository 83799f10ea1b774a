package router

import (
	"github.com/cuongbtq/jobboard-be/internal/api/auth"
	"github.com/cuongbtq/jobboard-be/internal/api/handler"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware(deps.UserIDHeader))
	r.Use(auth.HeaderMiddleware(deps.UserIDHeader))

	r.GET("/health", handler.NewHealthHandler(deps).Health)

	jobHandler := handler.NewJobHandler(deps)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		jobs := v1.Group("/jobs")
		{
			jobs.POST("", jobHandler.CreateJob)
			jobs.GET("", jobHandler.ListJobs)
			jobs.POST("/search", jobHandler.SearchJobs)
			jobs.GET("/cities", jobHandler.GetCityFilters)
			jobs.GET("/recent", jobHandler.GetRecentJobs)
			jobs.GET("/:job_id", jobHandler.GetJob)
			jobs.GET("/:job_id/recommended", jobHandler.GetRecommendedJobs)
			jobs.PUT("/:job_id", jobHandler.UpdateJob)
		}

		maintenance := v1.Group("/maintenance", MaintenanceTokenMiddleware(deps.MaintenanceToken))
		{
			maintenance.POST("/expire-jobs", jobHandler.ExpireJobs)
		}
	}

	return r
}

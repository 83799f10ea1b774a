package router

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/cuongbtq/jobboard-be/internal/api/auth"
	"github.com/cuongbtq/jobboard-be/internal/api/domain"
	"github.com/cuongbtq/jobboard-be/internal/api/response"
	"github.com/gin-gonic/gin"
)

// MaintenanceTokenHeader carries the shared secret of maintenance routes
const MaintenanceTokenHeader = "X-Maintenance-Token"

// LoggerMiddleware logs HTTP requests with slog
func LoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		// Process request
		c.Next()

		// Calculate latency
		latency := time.Since(start)

		userID := "anonymous"
		if id, ok := auth.FromContext(c.Request.Context()); ok {
			userID = id.UserID
		}

		logger.Info("HTTP Request",
			slog.Int("status", c.Writer.Status()),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("query", query),
			slog.String("ip", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
			slog.Duration("latency", latency),
			slog.Int("body_size", c.Writer.Size()),
			slog.String("user_id", userID),
		)

		if len(c.Errors) > 0 {
			logger.Debug("Request errors", slog.String("errors", c.Errors.String()))
		}
	}
}

// CORSMiddleware handles Cross-Origin Resource Sharing
func CORSMiddleware(userIDHeader string) gin.HandlerFunc {
	if userIDHeader == "" {
		userIDHeader = auth.DefaultUserIDHeader
	}
	allowHeaders := "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, " +
		userIDHeader + ", " + MaintenanceTokenHeader

	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", allowHeaders)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// MaintenanceTokenMiddleware admits requests carrying the configured token.
// An empty token disables the guarded routes.
func MaintenanceTokenMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(MaintenanceTokenHeader)
		if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			status, body := response.FromError(domain.NewUnauthorized("Not Authorized"))
			c.AbortWithStatusJSON(status, body)
			return
		}
		c.Next()
	}
}

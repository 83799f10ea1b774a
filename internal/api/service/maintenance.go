package service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/cuongbtq/jobboard-be/internal/api/domain"
	"github.com/cuongbtq/jobboard-be/internal/api/response"
)

// UpdateExpiredJobs runs one lifecycle sweep on demand
func (s *JobService) UpdateExpiredJobs(ctx context.Context) (*response.Success, error) {
	if s.expirer == nil {
		return nil, domain.NewDatabase(errNoExpirer)
	}

	n, err := s.expirer.Sweep(ctx)
	if err != nil {
		return nil, s.storeFailure("update expired jobs", err)
	}

	s.logger.Info("Expired jobs updated", slog.Int("expired", n))

	return response.NewSuccess("Expired jobs updated successfully", http.StatusOK, nil), nil
}

package service

import (
	"context"

	"github.com/educonnect/educonnect-backend/internal/model"
)

// DashboardService serves the admin dashboard counters.
type DashboardService struct {
	stats DashboardStore
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(stats DashboardStore) *DashboardService {
	return &DashboardService{stats: stats}
}

// Stats returns the current counters.
func (s *DashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	return s.stats.Stats(ctx)
}

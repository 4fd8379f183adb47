package dashboard

import (
	"context"
	"time"
)

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns balance, monthly figures, runway and the trailing trend for the period
	GetDashboard(ctx context.Context, req DashboardRequest, now time.Time) (DashboardResponse, error)
}

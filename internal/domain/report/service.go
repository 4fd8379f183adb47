package report

import (
	"context"
	"time"
)

// ReportService defines the interface for report generation
type ReportService interface {
	// GenerateFinancialReport builds the month and year-to-date sections as seen at now
	GenerateFinancialReport(ctx context.Context, req FinancialReportRequest, now time.Time) (FinancialReport, error)
}

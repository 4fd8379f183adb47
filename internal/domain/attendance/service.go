package attendance

import (
	"context"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// Upsert records the shift category for an employee on a date
	Upsert(ctx context.Context, req UpsertAttendanceRequest) (AttendanceResponse, error)

	// CountAbsences counts days in the period marked exactly with category
	CountAbsences(ctx context.Context, employeeID string, p period.Period, category ShiftCategory) (int, error)

	// GetAbsenceSummary breaks the employee's period down by category
	GetAbsenceSummary(ctx context.Context, employeeID string, p period.Period) (AbsenceSummaryResponse, error)
}

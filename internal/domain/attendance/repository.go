package attendance

import (
	"context"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Upsert inserts the record or replaces the category of the existing
	// (employee_id, work_date) row. Rows are never duplicated.
	Upsert(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)

	// CountByCategory counts the employee's rows in the period whose category matches exactly
	CountByCategory(ctx context.Context, employeeID string, p period.Period, category ShiftCategory) (int, error)

	// ListByEmployeePeriod returns the employee's rows in the period ordered by work date
	ListByEmployeePeriod(ctx context.Context, employeeID string, p period.Period) ([]AttendanceRecord, error)
}

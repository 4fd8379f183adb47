package payroll

import (
	"context"
	"time"
)

// PayrollRepository defines data access methods for payroll records.
type PayrollRepository interface {
	// Create fails with ErrDuplicatePeriod when the (employee, period) key is taken
	Create(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetByID(ctx context.Context, id string) (PayrollRecord, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (PayrollRecord, error)
	List(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, int64, error)
	UpdateStatus(ctx context.Context, id string, status PayrollStatus, paidAt *time.Time) (PayrollRecord, error)
	Delete(ctx context.Context, id string) error
}

package employee

import "context"

// EmployeeRepository is the read side of the HR subsystem used by payroll.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetActive(ctx context.Context) ([]Employee, error)
}

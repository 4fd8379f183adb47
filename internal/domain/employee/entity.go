package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID         string
	FullName   string
	BaseSalary *decimal.Decimal
	Status     EmploymentStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusInactive   EmploymentStatus = "inactive"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

func (s EmploymentStatus) IsValid() bool {
	switch s {
	case EmploymentStatusActive, EmploymentStatusInactive, EmploymentStatusTerminated:
		return true
	}
	return false
}

// HasBaseSalary reports whether a positive base salary is configured.
func (e Employee) HasBaseSalary() bool {
	return e.BaseSalary != nil && e.BaseSalary.IsPositive()
}

package payroll

import "errors"

var (
	ErrPayrollRecordNotFound   = errors.New("payroll record not found")
	ErrDuplicatePeriod         = errors.New("payroll record already exists for this period")
	ErrInvalidStatusTransition = errors.New("invalid payroll status transition")
	ErrEmployeeHasNoBaseSalary = errors.New("employee has no base salary configured")
)

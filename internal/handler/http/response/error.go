package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/expense"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/payment"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, period.ErrInvalidPeriod):
		UnprocessableEntity(w, "INVALID_PERIOD", err.Error())

	// Not found
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payment.ErrParticipantNotFound):
		NotFound(w, "Participant not found")
	case errors.Is(err, payment.ErrProgramNotFound):
		NotFound(w, "Program not found")
	case errors.Is(err, payment.ErrPlanActualNotFound):
		NotFound(w, "Plan/actual record not found")
	case errors.Is(err, expense.ErrExpenseNotFound):
		NotFound(w, "Expense not found")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Payroll rules
	case errors.Is(err, payroll.ErrDuplicatePeriod):
		Conflict(w, "Payroll already exists for this employee and period")
	case errors.Is(err, payroll.ErrInvalidStatusTransition):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrEmployeeHasNoBaseSalary):
		UnprocessableEntity(w, "NO_BASE_SALARY", "Employee has no base salary configured")
	case errors.Is(err, attendance.ErrInvalidShiftCategory):
		UnprocessableEntity(w, "INVALID_SHIFT_CATEGORY", err.Error())
	case errors.Is(err, expense.ErrInvalidRange):
		UnprocessableEntity(w, "INVALID_RANGE", err.Error())

	case errors.Is(err, database.ErrStoreUnavailable):
		slog.Error("Record store unavailable", "error", err)
		ServiceUnavailable(w, "Record store unavailable")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

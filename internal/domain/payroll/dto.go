package payroll

import (
	"time"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/money"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ComputePayrollRequest struct {
	EmployeeID  string           `json:"employee_id"`
	PeriodMonth int              `json:"period_month"`
	PeriodYear  int              `json:"period_year"`
	Bonus       *decimal.Decimal `json:"bonus,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

func (r *ComputePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	periodErrs := validator.PeriodErrors(r.PeriodMonth, r.PeriodYear)
	for _, e := range periodErrs {
		errs = append(errs, validator.ValidationError{Field: "period_" + e.Field, Message: e.Message})
	}
	if r.Bonus != nil && !validator.IsNonNegative(*r.Bonus) {
		errs = append(errs, validator.ValidationError{Field: "bonus", Message: "must be non-negative"})
	}

	if len(periodErrs) > 0 {
		return period.WithFieldErrors(errs)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BonusOrZero defaults a missing bonus to zero.
func (r *ComputePayrollRequest) BonusOrZero() decimal.Decimal {
	return money.OrZero(r.Bonus)
}

type GeneratePayrollRequest struct {
	PeriodMonth int      `json:"period_month"`
	PeriodYear  int      `json:"period_year"`
	EmployeeIDs []string `json:"employee_ids,omitempty"` // Empty = all active employees
	Notes       *string  `json:"notes,omitempty"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	periodErrs := validator.PeriodErrors(r.PeriodMonth, r.PeriodYear)
	for _, e := range periodErrs {
		errs = append(errs, validator.ValidationError{Field: "period_" + e.Field, Message: e.Message})
	}
	for _, id := range r.EmployeeIDs {
		if validator.IsEmpty(id) {
			errs = append(errs, validator.ValidationError{Field: "employee_ids", Message: "must not contain empty ids"})
			break
		}
	}

	if len(periodErrs) > 0 {
		return period.WithFieldErrors(errs)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePayrollStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
	// PaidAt defaults to the request time when moving to paid
	PaidAt *string `json:"paid_at,omitempty"`

	ParsedPaidAt *time.Time `json:"-"`
}

func (r *UpdatePayrollStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if !PayrollStatus(r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'pending', 'paid' or 'cancelled'"})
	}
	if r.PaidAt != nil {
		if date, ok := validator.IsValidDate(*r.PaidAt); ok {
			r.ParsedPaidAt = &date
		} else {
			errs = append(errs, validator.ValidationError{Field: "paid_at", Message: "must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollLineResponse struct {
	EmployeeID  string          `json:"employee_id"`
	PeriodMonth int             `json:"period_month"`
	PeriodYear  int             `json:"period_year"`
	BaseSalary  decimal.Decimal `json:"base_salary"`
	Bonus       decimal.Decimal `json:"bonus"`
	WorkingDays int             `json:"working_days"`
	AbsentDays  int             `json:"absent_days"`
	DailyRate   decimal.Decimal `json:"daily_rate"`
	Gross       decimal.Decimal `json:"gross"`
	Deduction   decimal.Decimal `json:"deduction"`
	Total       decimal.Decimal `json:"total"`
}

func NewPayrollLineResponse(l PayrollLine) PayrollLineResponse {
	return PayrollLineResponse{
		EmployeeID:  l.EmployeeID,
		PeriodMonth: l.Period.Month,
		PeriodYear:  l.Period.Year,
		BaseSalary:  l.BaseSalary,
		Bonus:       l.Bonus,
		WorkingDays: l.WorkingDays,
		AbsentDays:  l.AbsentDays,
		DailyRate:   l.DailyRate,
		Gross:       l.Gross,
		Deduction:   l.Deduction,
		Total:       l.Total,
	}
}

type PayrollRecordResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    *string         `json:"employee_name,omitempty"`
	PeriodMonth     int             `json:"period_month"`
	PeriodYear      int             `json:"period_year"`
	BaseSalary      decimal.Decimal `json:"base_salary"`
	BonusAmount     decimal.Decimal `json:"bonus_amount"`
	DeductionAmount decimal.Decimal `json:"deduction_amount"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	WorkingDays     int             `json:"working_days"`
	AbsentDays      int             `json:"absent_days"`
	Status          string          `json:"status"`
	PaidAt          *string         `json:"paid_at,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	CreatedAt       string          `json:"created_at"`
}

func NewPayrollRecordResponse(r PayrollRecord) PayrollRecordResponse {
	resp := PayrollRecordResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		PeriodMonth:     r.PeriodMonth,
		PeriodYear:      r.PeriodYear,
		BaseSalary:      r.BaseSalary,
		BonusAmount:     r.BonusAmount,
		DeductionAmount: r.DeductionAmount,
		TotalAmount:     r.TotalAmount,
		WorkingDays:     r.WorkingDays,
		AbsentDays:      r.AbsentDays,
		Status:          string(r.Status),
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}
	if r.PaidAt != nil {
		paidAt := r.PaidAt.Format("2006-01-02")
		resp.PaidAt = &paidAt
	}
	return resp
}

type PayrollFilter struct {
	PeriodMonth *int    `json:"period_month,omitempty"`
	PeriodYear  *int    `json:"period_year,omitempty"`
	Status      *string `json:"status,omitempty"`
	EmployeeID  *string `json:"employee_id,omitempty"`
	Page        int     `json:"page"`
	Limit       int     `json:"limit"`
}

// Normalize applies paging defaults.
func (f *PayrollFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

func (f *PayrollFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.PeriodMonth != nil && !validator.IsValidMonth(*f.PeriodMonth) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if f.PeriodYear != nil && !validator.IsValidYear(*f.PeriodYear) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 1970 and 9999"})
	}
	if f.Status != nil && !PayrollStatus(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'pending', 'paid' or 'cancelled'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListPayrollRecordResponse struct {
	Data       []PayrollRecordResponse `json:"data"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
}

type SkippedEmployee struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

type GeneratePayrollResponse struct {
	PeriodMonth int                     `json:"period_month"`
	PeriodYear  int                     `json:"period_year"`
	Created     []PayrollRecordResponse `json:"created"`
	Skipped     []SkippedEmployee       `json:"skipped"`
}

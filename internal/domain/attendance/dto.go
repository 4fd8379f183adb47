package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/validator"
)

type UpsertAttendanceRequest struct {
	EmployeeID    string `json:"employee_id"`
	WorkDate      string `json:"work_date"`
	ShiftCategory string `json:"shift_category"`

	// Parsed by Validate
	ParsedDate time.Time `json:"-"`
}

func (r *UpsertAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.WorkDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "work_date",
			Message: "work_date is required",
		})
	} else if date, ok := validator.IsValidDate(r.WorkDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "work_date",
			Message: "work_date must be in YYYY-MM-DD format",
		})
	} else {
		r.ParsedDate = date
	}

	if !ShiftCategory(r.ShiftCategory).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_category",
			Message: "shift_category must be one of: work, day_off, sick_leave, vacation, unpaid_leave",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	WorkDate      string `json:"work_date"`
	ShiftCategory string `json:"shift_category"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func NewAttendanceResponse(r AttendanceRecord) AttendanceResponse {
	return AttendanceResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		WorkDate:      r.WorkDate.Format("2006-01-02"),
		ShiftCategory: string(r.ShiftCategory),
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     r.UpdatedAt.Format(time.RFC3339),
	}
}

type AbsenceSummaryResponse struct {
	EmployeeID      string         `json:"employee_id"`
	Month           int            `json:"month"`
	Year            int            `json:"year"`
	WorkingDays     int            `json:"working_days"`
	UnpaidLeaveDays int            `json:"unpaid_leave_days"`
	ByCategory      map[string]int `json:"by_category"`
}

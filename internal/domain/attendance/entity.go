package attendance

import (
	"time"
)

// ShiftCategory classifies what an employee did on a work date.
type ShiftCategory string

const (
	ShiftCategoryWork        ShiftCategory = "work"
	ShiftCategoryDayOff      ShiftCategory = "day_off"
	ShiftCategorySickLeave   ShiftCategory = "sick_leave"
	ShiftCategoryVacation    ShiftCategory = "vacation"
	ShiftCategoryUnpaidLeave ShiftCategory = "unpaid_leave"
)

// ShiftCategories lists every category in display order.
var ShiftCategories = []ShiftCategory{
	ShiftCategoryWork,
	ShiftCategoryDayOff,
	ShiftCategorySickLeave,
	ShiftCategoryVacation,
	ShiftCategoryUnpaidLeave,
}

func (c ShiftCategory) IsValid() bool {
	switch c {
	case ShiftCategoryWork, ShiftCategoryDayOff, ShiftCategorySickLeave,
		ShiftCategoryVacation, ShiftCategoryUnpaidLeave:
		return true
	}
	return false
}

// AttendanceRecord is unique per (EmployeeID, WorkDate).
type AttendanceRecord struct {
	ID            string
	EmployeeID    string
	WorkDate      time.Time
	ShiftCategory ShiftCategory
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

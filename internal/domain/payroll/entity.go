package payroll

import (
	"time"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
	"github.com/shopspring/decimal"
)

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusPending   PayrollStatus = "pending"
	PayrollStatusPaid      PayrollStatus = "paid"
	PayrollStatusCancelled PayrollStatus = "cancelled"
)

func (s PayrollStatus) IsValid() bool {
	switch s {
	case PayrollStatusPending, PayrollStatusPaid, PayrollStatusCancelled:
		return true
	}
	return false
}

var transitions = map[PayrollStatus][]PayrollStatus{
	PayrollStatusPending:   {PayrollStatusPaid, PayrollStatusCancelled},
	PayrollStatusPaid:      {PayrollStatusCancelled},
	PayrollStatusCancelled: {PayrollStatusPending},
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s PayrollStatus) CanTransitionTo(next PayrollStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PayrollRecord - Persisted payroll result, unique per (EmployeeID, PeriodMonth, PeriodYear)
type PayrollRecord struct {
	ID              string
	EmployeeID      string
	PeriodMonth     int
	PeriodYear      int
	BaseSalary      decimal.Decimal // snapshot at computation time
	BonusAmount     decimal.Decimal
	DeductionAmount decimal.Decimal
	TotalAmount     decimal.Decimal
	WorkingDays     int
	AbsentDays      int
	Status          PayrollStatus
	PaidAt          *time.Time
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeName *string
}

func (r PayrollRecord) Period() period.Period {
	return period.Period{Month: r.PeriodMonth, Year: r.PeriodYear}
}

// PayrollLine - Computed, unpersisted payroll for one employee and period
type PayrollLine struct {
	EmployeeID  string
	Period      period.Period
	BaseSalary  decimal.Decimal
	Bonus       decimal.Decimal
	WorkingDays int
	AbsentDays  int
	DailyRate   decimal.Decimal
	Gross       decimal.Decimal
	Deduction   decimal.Decimal
	Total       decimal.Decimal
}

// ToRecord snapshots the line into a pending record.
func (l PayrollLine) ToRecord(id string, notes *string) PayrollRecord {
	return PayrollRecord{
		ID:              id,
		EmployeeID:      l.EmployeeID,
		PeriodMonth:     l.Period.Month,
		PeriodYear:      l.Period.Year,
		BaseSalary:      l.BaseSalary,
		BonusAmount:     l.Bonus,
		DeductionAmount: l.Deduction,
		TotalAmount:     l.Total,
		WorkingDays:     l.WorkingDays,
		AbsentDays:      l.AbsentDays,
		Status:          PayrollStatusPending,
		Notes:           notes,
	}
}

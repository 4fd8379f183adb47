package payroll

import (
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/money"
	"github.com/shopspring/decimal"
)

// LineInput is everything ComputeLine needs; the service resolves it from the stores.
type LineInput struct {
	EmployeeID  string
	Period      period.Period
	BaseSalary  decimal.Decimal
	Bonus       decimal.Decimal
	WorkingDays int
	AbsentDays  int // unpaid leave only
}

// ComputeLine prorates the base salary over the month's working days.
// deduction = round(base * absent / working); total = base + bonus - deduction.
// A negative total is returned as is.
func ComputeLine(in LineInput, policy money.Policy) payroll.PayrollLine {
	workingDays := max(in.WorkingDays, 0)
	absentDays := max(in.AbsentDays, 0)

	line := payroll.PayrollLine{
		EmployeeID:  in.EmployeeID,
		Period:      in.Period,
		BaseSalary:  in.BaseSalary,
		Bonus:       in.Bonus,
		WorkingDays: workingDays,
		AbsentDays:  absentDays,
		DailyRate:   decimal.Zero,
		Deduction:   decimal.Zero,
	}

	if workingDays > 0 {
		w := decimal.NewFromInt(int64(workingDays))
		line.DailyRate = in.BaseSalary.Div(w).Round(money.RatioPlaces)
		if absentDays > 0 {
			// Rounded once, from base*absent/W rather than from DailyRate.
			line.Deduction = policy.Round(in.BaseSalary.Mul(decimal.NewFromInt(int64(absentDays))).Div(w))
		}
	}

	line.Gross = in.BaseSalary.Add(in.Bonus)
	line.Total = line.Gross.Sub(line.Deduction)
	return line
}

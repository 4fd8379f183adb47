package payment

import (
	"time"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
	"github.com/shopspring/decimal"
)

// SubjectKind tells what a plan/actual row is tracked against.
type SubjectKind string

const (
	// SubjectParticipant rows are income: SubjectID is a participant, Category a program.
	SubjectParticipant SubjectKind = "participant"
	// SubjectExpenseCategory rows are expense forecasts: SubjectID is the expense category.
	SubjectExpenseCategory SubjectKind = "expense_category"
)

func (k SubjectKind) IsValid() bool {
	return k == SubjectParticipant || k == SubjectExpenseCategory
}

// PlanActualRecord is upserted by (SubjectKind, SubjectID, PeriodMonth, PeriodYear).
// Delinquency is derived on read and never stored here.
type PlanActualRecord struct {
	ID           string
	SubjectKind  SubjectKind
	SubjectID    string
	Category     string
	PeriodMonth  int
	PeriodYear   int
	PlanAmount   *decimal.Decimal
	ActualAmount decimal.Decimal
	RealizedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r PlanActualRecord) Period() period.Period {
	return period.Period{Month: r.PeriodMonth, Year: r.PeriodYear}
}

type Program struct {
	ID           string
	Name         string
	DefaultPrice decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Participant struct {
	ID             string
	FullName       string
	ProgramID      string
	OverrideTariff *decimal.Decimal
	StartPeriod    *period.Period
	EndPeriod      *period.Period
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EnrolledIn reports whether the participant is billable for p.
func (p Participant) EnrolledIn(month period.Period) bool {
	if !p.Active {
		return false
	}
	if p.StartPeriod != nil && month.Before(*p.StartPeriod) {
		return false
	}
	if p.EndPeriod != nil && month.After(*p.EndPeriod) {
		return false
	}
	return true
}

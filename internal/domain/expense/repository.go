package expense

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseFilter narrows List. Date bounds are inclusive; nil fields match everything.
type ExpenseFilter struct {
	From            *time.Time
	To              *time.Time
	Category        *ExpenseCategory
	PayrollRecordID *string
	Description     *string
	Amount          *decimal.Decimal
}

// Correction replaces the booked values of an expense.
type Correction struct {
	Category    ExpenseCategory
	Description string
	Amount      decimal.Decimal
	ExpenseDate time.Time
	Note        string
	CorrectedAt time.Time
}

type ExpenseRepository interface {
	Create(ctx context.Context, record ExpenseRecord) (ExpenseRecord, error)
	GetByID(ctx context.Context, id string) (ExpenseRecord, error)
	// List returns matches ordered by expense date, then id
	List(ctx context.Context, filter ExpenseFilter) ([]ExpenseRecord, error)
	Correct(ctx context.Context, id string, c Correction) (ExpenseRecord, error)
	Delete(ctx context.Context, id string) error
}

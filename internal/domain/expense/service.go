package expense

import (
	"context"
	"time"
)

type ExpenseService interface {
	// Create books an expense; unknown categories land in "other"
	Create(ctx context.Context, req CreateExpenseRequest) (ExpenseResponse, error)
	Get(ctx context.Context, id string) (ExpenseResponse, error)
	List(ctx context.Context, req ListExpenseRequest) (ListExpenseResponse, error)
	// Correct is the only way to change a booked expense
	Correct(ctx context.Context, req CorrectExpenseRequest, now time.Time) (ExpenseResponse, error)
}

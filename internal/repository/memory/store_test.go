package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/expense"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/payment"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepository_UpsertNeverDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(NewStore())
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	first, err := repo.Upsert(ctx, attendance.AttendanceRecord{ID: "a1", EmployeeID: "e1", WorkDate: day, ShiftCategory: attendance.ShiftCategoryUnpaidLeave})
	require.NoError(t, err)
	second, err := repo.Upsert(ctx, attendance.AttendanceRecord{ID: "a2", EmployeeID: "e1", WorkDate: day, ShiftCategory: attendance.ShiftCategorySickLeave})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, attendance.ShiftCategorySickLeave, second.ShiftCategory)

	p := period.Period{Month: 3, Year: 2024}
	records, err := repo.ListByEmployeePeriod(ctx, "e1", p)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	unpaid, err := repo.CountByCategory(ctx, "e1", p, attendance.ShiftCategoryUnpaidLeave)
	require.NoError(t, err)
	assert.Equal(t, 0, unpaid)
}

func TestPayrollRepository_UniquePerEmployeePeriod(t *testing.T) {
	ctx := context.Background()
	repo := NewPayrollRepository(NewStore())

	rec := payroll.PayrollRecord{ID: "p1", EmployeeID: "e1", PeriodMonth: 3, PeriodYear: 2024, Status: payroll.PayrollStatusPending}
	_, err := repo.Create(ctx, rec)
	require.NoError(t, err)

	rec.ID = "p2"
	_, err = repo.Create(ctx, rec)
	assert.ErrorIs(t, err, payroll.ErrDuplicatePeriod)

	require.NoError(t, repo.Delete(ctx, "p1"))
	_, err = repo.Create(ctx, rec)
	assert.NoError(t, err)
}

func TestPayrollRepository_ConcurrentCreateHasOneWinner(t *testing.T) {
	ctx := context.Background()
	repo := NewPayrollRepository(NewStore())

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		duplicate int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Create(ctx, payroll.PayrollRecord{
				ID: string(rune('a' + i)), EmployeeID: "e1", PeriodMonth: 1, PeriodYear: 2024,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, payroll.ErrDuplicatePeriod):
				duplicate++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, 19, duplicate)
}

func TestPayrollRepository_DeleteClearsExpenseLink(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	payrollRepo := NewPayrollRepository(store)
	expenseRepo := NewExpenseRepository(store)

	_, err := payrollRepo.Create(ctx, payroll.PayrollRecord{ID: "p1", EmployeeID: "e1", PeriodMonth: 1, PeriodYear: 2024})
	require.NoError(t, err)
	link := "p1"
	_, err = expenseRepo.Create(ctx, expense.ExpenseRecord{ID: "x1", Category: expense.CategorySalary, Amount: decimal.NewFromInt(10), PayrollRecordID: &link})
	require.NoError(t, err)

	require.NoError(t, payrollRepo.Delete(ctx, "p1"))

	rec, err := expenseRepo.GetByID(ctx, "x1")
	require.NoError(t, err)
	assert.Nil(t, rec.PayrollRecordID)
}

func TestPlanActualRepository_UpsertKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	repo := NewPlanActualRepository(NewStore())
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := repo.Upsert(ctx, payment.PlanActualRecord{
		ID: "r1", SubjectKind: payment.SubjectParticipant, SubjectID: "s1", PeriodMonth: 2, PeriodYear: 2024, CreatedAt: created,
	})
	require.NoError(t, err)

	saved, err := repo.Upsert(ctx, payment.PlanActualRecord{
		ID: "r2", SubjectKind: payment.SubjectParticipant, SubjectID: "s1", PeriodMonth: 2, PeriodYear: 2024, ActualAmount: decimal.NewFromInt(300),
	})
	require.NoError(t, err)
	assert.Equal(t, "r1", saved.ID)
	assert.Equal(t, created, saved.CreatedAt)

	kind := payment.SubjectParticipant
	rows, err := repo.List(ctx, payment.PlanActualFilter{From: period.Period{Month: 1, Year: 2024}, To: period.Period{Month: 3, Year: 2024}, SubjectKind: &kind})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].ActualAmount.Equal(decimal.NewFromInt(300)))

	_, err = repo.GetByKey(ctx, payment.SubjectParticipant, "s1", period.Period{Month: 3, Year: 2024})
	assert.ErrorIs(t, err, payment.ErrPlanActualNotFound)
}

func TestExpenseRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewExpenseRepository(NewStore())
	jan := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	for _, e := range []expense.ExpenseRecord{
		{ID: "1", Category: expense.CategoryRent, Amount: decimal.NewFromInt(100), ExpenseDate: jan},
		{ID: "2", Category: expense.CategorySalary, Amount: decimal.NewFromInt(200), ExpenseDate: feb, Description: "Payroll e1 02/2024"},
	} {
		_, err := repo.Create(ctx, e)
		require.NoError(t, err)
	}

	from, to := jan, jan
	inJan, err := repo.List(ctx, expense.ExpenseFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, inJan, 1)
	assert.Equal(t, "1", inJan[0].ID)

	desc := "Payroll e1 02/2024"
	named, err := repo.List(ctx, expense.ExpenseFilter{Description: &desc})
	require.NoError(t, err)
	require.Len(t, named, 1)

	amt := decimal.NewFromInt(200)
	byAmount, err := repo.List(ctx, expense.ExpenseFilter{Amount: &amt})
	require.NoError(t, err)
	assert.Len(t, byAmount, 1)

	assert.ErrorIs(t, repo.Delete(ctx, "missing"), expense.ErrExpenseNotFound)
}

func TestApplySeed(t *testing.T) {
	store := NewStore()
	active := false
	start := "2024-02"
	seed := Seed{
		Participants: []SeedParticipant{{ID: "s1", ProgramID: "prog", StartPeriod: &start, Active: &active}},
		Employees:    []SeedEmployee{{ID: "e1", FullName: "Dewi"}},
	}

	require.NoError(t, store.ApplySeed(seed))

	p, err := NewParticipantRepository(store).GetParticipantByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.False(t, p.Active)
	require.NotNil(t, p.StartPeriod)
	assert.Equal(t, period.Period{Month: 2, Year: 2024}, *p.StartPeriod)

	e, err := NewEmployeeRepository(store).GetByID(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, "active", string(e.Status))

	bad := Seed{Employees: []SeedEmployee{{ID: "e2", Status: "retired"}}}
	assert.Error(t, store.ApplySeed(bad))
}

package payroll

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/expense"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/money"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-finance-go/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/hris-finance-go/internal/service/attendance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 7, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store       *memory.Store
	service     payroll.PayrollService
	attendance  attendance.AttendanceService
	expenseRepo expense.ExpenseRepository
	payrollRepo payroll.PayrollRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	store := memory.NewStore()
	salary := decimal.NewFromInt(3000)
	store.PutEmployee(employee.Employee{ID: "emp-1", FullName: "Rina", BaseSalary: &salary, Status: employee.EmploymentStatusActive})
	store.PutEmployee(employee.Employee{ID: "emp-2", FullName: "Tono", BaseSalary: &salary, Status: employee.EmploymentStatusActive})
	store.PutEmployee(employee.Employee{ID: "emp-nosalary", FullName: "Sari", Status: employee.EmploymentStatusActive})
	store.PutEmployee(employee.Employee{ID: "emp-gone", FullName: "Adi", BaseSalary: &salary, Status: employee.EmploymentStatusTerminated})

	employeeRepo := memory.NewEmployeeRepository(store)
	expenseRepo := memory.NewExpenseRepository(store)
	payrollRepo := memory.NewPayrollRepository(store)
	attendanceSvc := attendanceService.NewAttendanceService(memory.NewAttendanceRepository(store), employeeRepo)

	svc := NewPayrollService(
		memory.NewTransactor(),
		payrollRepo,
		employeeRepo,
		expenseRepo,
		attendanceSvc,
		money.DefaultPolicy,
		WithClock(func() time.Time { return fixedNow }),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	return fixture{store: store, service: svc, attendance: attendanceSvc, expenseRepo: expenseRepo, payrollRepo: payrollRepo}
}

func (f fixture) mark(t *testing.T, employeeID, date string, category attendance.ShiftCategory) {
	t.Helper()
	_, err := f.attendance.Upsert(context.Background(), attendance.UpsertAttendanceRequest{
		EmployeeID:    employeeID,
		WorkDate:      date,
		ShiftCategory: string(category),
	})
	require.NoError(t, err)
}

func juneRequest(employeeID string, bonus int64) payroll.ComputePayrollRequest {
	b := decimal.NewFromInt(bonus)
	return payroll.ComputePayrollRequest{EmployeeID: employeeID, PeriodMonth: 6, PeriodYear: 2024, Bonus: &b}
}

func TestCreate_DeductsUnpaidLeaveOnly(t *testing.T) {
	f := newFixture(t)
	// June 2024 has 20 working days
	f.mark(t, "emp-1", "2024-06-03", attendance.ShiftCategoryUnpaidLeave)
	f.mark(t, "emp-1", "2024-06-04", attendance.ShiftCategoryUnpaidLeave)
	f.mark(t, "emp-1", "2024-06-05", attendance.ShiftCategorySickLeave)
	f.mark(t, "emp-1", "2024-06-06", attendance.ShiftCategoryVacation)
	f.mark(t, "emp-1", "2024-07-01", attendance.ShiftCategoryUnpaidLeave)

	resp, err := f.service.Create(context.Background(), juneRequest("emp-1", 100))
	require.NoError(t, err)

	assert.Equal(t, 20, resp.WorkingDays)
	assert.Equal(t, 2, resp.AbsentDays)
	assert.Equal(t, "300", resp.DeductionAmount.String())
	assert.Equal(t, "2800", resp.TotalAmount.String())
	assert.Equal(t, "3000", resp.BaseSalary.String())
	assert.Equal(t, string(payroll.PayrollStatusPending), resp.Status)
	require.NotNil(t, resp.EmployeeName)
	assert.Equal(t, "Rina", *resp.EmployeeName)
}

func TestCreate_SnapshotsBaseSalary(t *testing.T) {
	f := newFixture(t)
	resp, err := f.service.Create(context.Background(), juneRequest("emp-1", 0))
	require.NoError(t, err)

	raised := decimal.NewFromInt(5000)
	f.store.PutEmployee(employee.Employee{ID: "emp-1", FullName: "Rina", BaseSalary: &raised, Status: employee.EmploymentStatusActive})

	got, err := f.service.Get(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "3000", got.BaseSalary.String())
}

func TestCreate_DuplicatePeriod(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, juneRequest("emp-1", 0))
	require.NoError(t, err)

	_, err = f.service.Create(ctx, juneRequest("emp-1", 50))
	assert.ErrorIs(t, err, payroll.ErrDuplicatePeriod)

	list, err := f.service.List(ctx, payroll.PayrollFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.TotalCount)
}

func TestCreate_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, juneRequest("missing", 0))
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = f.service.Create(ctx, juneRequest("emp-nosalary", 0))
	assert.ErrorIs(t, err, payroll.ErrEmployeeHasNoBaseSalary)

	req := juneRequest("emp-1", 0)
	req.PeriodMonth = 13
	_, err = f.service.Create(ctx, req)
	assert.ErrorIs(t, err, period.ErrInvalidPeriod)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "period_month")
}

func TestInvalidPeriodKind(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := juneRequest("emp-1", 0)
	req.PeriodMonth = 13
	_, err := f.service.Preview(ctx, req)
	assert.ErrorIs(t, err, period.ErrInvalidPeriod)

	_, err = f.service.Generate(ctx, payroll.GeneratePayrollRequest{PeriodMonth: 6, PeriodYear: 1900})
	assert.ErrorIs(t, err, period.ErrInvalidPeriod)

	// Errors unrelated to the period keep their plain validation kind
	_, err = f.service.Create(ctx, juneRequest("", 0))
	assert.NotErrorIs(t, err, period.ErrInvalidPeriod)
}

func TestPreview_DoesNotPersist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	line, err := f.service.Preview(ctx, juneRequest("emp-1", 0))
	require.NoError(t, err)
	assert.Equal(t, "150", line.DailyRate.String())

	_, err = f.service.Create(ctx, juneRequest("emp-1", 0))
	assert.NoError(t, err)
}

func TestGenerate_SkipsDuplicatesAndMissingSalary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, juneRequest("emp-2", 0))
	require.NoError(t, err)

	resp, err := f.service.Generate(ctx, payroll.GeneratePayrollRequest{PeriodMonth: 6, PeriodYear: 2024})
	require.NoError(t, err)

	require.Len(t, resp.Created, 1)
	assert.Equal(t, "emp-1", resp.Created[0].EmployeeID)

	skipped := map[string]string{}
	for _, s := range resp.Skipped {
		skipped[s.EmployeeID] = s.Reason
	}
	assert.Equal(t, payroll.ErrDuplicatePeriod.Error(), skipped["emp-2"])
	assert.Equal(t, payroll.ErrEmployeeHasNoBaseSalary.Error(), skipped["emp-nosalary"])
	assert.NotContains(t, skipped, "emp-gone")
}

func TestGenerate_Subset(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.Generate(context.Background(), payroll.GeneratePayrollRequest{
		PeriodMonth: 6, PeriodYear: 2024, EmployeeIDs: []string{"emp-1", "emp-gone", "nobody"},
	})
	require.NoError(t, err)

	require.Len(t, resp.Created, 1)
	assert.Len(t, resp.Skipped, 2)
}

func TestUpdateStatus_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.service.Create(ctx, juneRequest("emp-1", 0))
	require.NoError(t, err)

	paidOn := "2024-06-28"
	paid, err := f.service.UpdateStatus(ctx, payroll.UpdatePayrollStatusRequest{ID: rec.ID, Status: "paid", PaidAt: &paidOn})
	require.NoError(t, err)
	assert.Equal(t, "paid", paid.Status)
	require.NotNil(t, paid.PaidAt)
	assert.Equal(t, paidOn, *paid.PaidAt)

	linked, err := f.expenseRepo.List(ctx, expense.ExpenseFilter{PayrollRecordID: &rec.ID})
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, expense.CategorySalary, linked[0].Category)
	assert.Equal(t, "Payroll emp-1 06/2024", linked[0].Description)
	assert.True(t, linked[0].Amount.Equal(decimal.NewFromInt(3000)))

	_, err = f.service.UpdateStatus(ctx, payroll.UpdatePayrollStatusRequest{ID: rec.ID, Status: "paid"})
	assert.ErrorIs(t, err, payroll.ErrInvalidStatusTransition)

	_, err = f.service.UpdateStatus(ctx, payroll.UpdatePayrollStatusRequest{ID: rec.ID, Status: "cancelled"})
	require.NoError(t, err)
	_, err = f.service.UpdateStatus(ctx, payroll.UpdatePayrollStatusRequest{ID: rec.ID, Status: "pending"})
	require.NoError(t, err)
	_, err = f.service.UpdateStatus(ctx, payroll.UpdatePayrollStatusRequest{ID: rec.ID, Status: "paid"})
	require.NoError(t, err)

	linked, err = f.expenseRepo.List(ctx, expense.ExpenseFilter{PayrollRecordID: &rec.ID})
	require.NoError(t, err)
	assert.Len(t, linked, 1)
}

func TestUpdateStatus_CancelRetractsSalaryExpense(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.service.Create(ctx, juneRequest("emp-1", 0))
	require.NoError(t, err)

	paidOn := "2024-06-28"
	_, err = f.service.UpdateStatus(ctx, payroll.UpdatePayrollStatusRequest{ID: rec.ID, Status: "paid", PaidAt: &paidOn})
	require.NoError(t, err)

	_, err = f.service.UpdateStatus(ctx, payroll.UpdatePayrollStatusRequest{ID: rec.ID, Status: "cancelled"})
	require.NoError(t, err)

	linked, err := f.expenseRepo.List(ctx, expense.ExpenseFilter{PayrollRecordID: &rec.ID})
	require.NoError(t, err)
	assert.Empty(t, linked)

	_, err = f.service.UpdateStatus(ctx, payroll.UpdatePayrollStatusRequest{ID: rec.ID, Status: "pending"})
	require.NoError(t, err)
	_, err = f.service.UpdateStatus(ctx, payroll.UpdatePayrollStatusRequest{ID: rec.ID, Status: "paid"})
	require.NoError(t, err)

	// Re-paying books a new expense on the new paid date
	linked, err = f.expenseRepo.List(ctx, expense.ExpenseFilter{PayrollRecordID: &rec.ID})
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, "2024-07-10", linked[0].ExpenseDate.Format("2006-01-02"))
}

func TestUpdateStatus_DefaultsPaidAtToNow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.service.Create(ctx, juneRequest("emp-1", 0))
	require.NoError(t, err)

	paid, err := f.service.UpdateStatus(ctx, payroll.UpdatePayrollStatusRequest{ID: rec.ID, Status: "paid"})
	require.NoError(t, err)
	require.NotNil(t, paid.PaidAt)
	assert.Equal(t, "2024-07-10", *paid.PaidAt)

	_, err = f.service.UpdateStatus(ctx, payroll.UpdatePayrollStatusRequest{ID: "missing", Status: "paid"})
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}

func TestDelete_RetractsLinkedExpense(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.service.Create(ctx, juneRequest("emp-1", 0))
	require.NoError(t, err)
	_, err = f.service.UpdateStatus(ctx, payroll.UpdatePayrollStatusRequest{ID: rec.ID, Status: "paid"})
	require.NoError(t, err)

	// An unrelated salary expense that must survive
	_, err = f.expenseRepo.Create(ctx, expense.ExpenseRecord{
		ID: "other", Category: expense.CategorySalary, Amount: decimal.NewFromInt(3000),
		ExpenseDate: time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, rec.ID))

	_, err = f.service.Get(ctx, rec.ID)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)

	remaining, err := f.expenseRepo.List(ctx, expense.ExpenseFilter{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "other", remaining[0].ID)
}

// legacyPaidRecord stores a paid record whose salary expense was booked without a link.
func legacyPaidRecord(t *testing.T, f fixture, id string, paidAt time.Time) payroll.PayrollRecord {
	t.Helper()
	rec, err := f.payrollRepo.Create(context.Background(), payroll.PayrollRecord{
		ID: id, EmployeeID: "emp-1", PeriodMonth: 6, PeriodYear: 2024,
		BaseSalary: decimal.NewFromInt(3000), TotalAmount: decimal.NewFromInt(2800), Status: payroll.PayrollStatusPending,
	})
	require.NoError(t, err)
	rec, err = f.payrollRepo.UpdateStatus(context.Background(), rec.ID, payroll.PayrollStatusPaid, &paidAt)
	require.NoError(t, err)
	return rec
}

func TestDelete_FallsBackToDescription(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	paidAt := time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC)
	rec := legacyPaidRecord(t, f, "legacy-1", paidAt)

	// Booked after the period end but before the payment date bound
	_, err := f.expenseRepo.Create(ctx, expense.ExpenseRecord{
		ID: "legacy-expense", Category: expense.CategorySalary, Description: ExpenseDescription(rec),
		Amount: decimal.NewFromInt(2800), ExpenseDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, rec.ID))

	_, err = f.expenseRepo.GetByID(ctx, "legacy-expense")
	assert.ErrorIs(t, err, expense.ErrExpenseNotFound)
}

func TestDelete_FallsBackToPaymentDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	paidAt := time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC)
	rec := legacyPaidRecord(t, f, "legacy-2", paidAt)

	for _, e := range []expense.ExpenseRecord{
		{ID: "same-day-other-amount", Category: expense.CategorySalary, Description: "bonus", Amount: decimal.NewFromInt(100), ExpenseDate: paidAt},
		{ID: "same-day-match", Category: expense.CategorySalary, Description: "manual entry", Amount: decimal.NewFromInt(2800), ExpenseDate: paidAt},
	} {
		_, err := f.expenseRepo.Create(ctx, e)
		require.NoError(t, err)
	}

	require.NoError(t, f.service.Delete(ctx, rec.ID))

	remaining, err := f.expenseRepo.List(ctx, expense.ExpenseFilter{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "same-day-other-amount", remaining[0].ID)
}

func TestDelete_NoMatchStillDeletes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rec := legacyPaidRecord(t, f, "legacy-3", time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC))

	require.NoError(t, f.service.Delete(ctx, rec.ID))

	_, err := f.service.Get(ctx, rec.ID)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)

	assert.ErrorIs(t, f.service.Delete(ctx, rec.ID), payroll.ErrPayrollRecordNotFound)
}

package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/expense"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/money"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/workday"
	"github.com/google/uuid"
)

type PayrollServiceImpl struct {
	tx                database.Transactor
	payrollRepo       payroll.PayrollRepository
	employeeRepo      employee.EmployeeRepository
	expenseRepo       expense.ExpenseRepository
	attendanceService attendance.AttendanceService
	policy            money.Policy
	logger            *slog.Logger
	now               func() time.Time
}

type Option func(*PayrollServiceImpl)

// WithClock replaces time.Now for timestamps and default paid dates.
func WithClock(now func() time.Time) Option {
	return func(s *PayrollServiceImpl) { s.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *PayrollServiceImpl) { s.logger = logger }
}

func NewPayrollService(
	tx database.Transactor,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	expenseRepo expense.ExpenseRepository,
	attendanceService attendance.AttendanceService,
	policy money.Policy,
	opts ...Option,
) payroll.PayrollService {
	s := &PayrollServiceImpl{
		tx:                tx,
		payrollRepo:       payrollRepo,
		employeeRepo:      employeeRepo,
		expenseRepo:       expenseRepo,
		attendanceService: attendanceService,
		policy:            policy,
		logger:            slog.Default(),
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ========== COMPUTATION ==========

func (s *PayrollServiceImpl) compute(ctx context.Context, emp employee.Employee, p period.Period, req payroll.ComputePayrollRequest) (payroll.PayrollLine, error) {
	if !emp.HasBaseSalary() {
		return payroll.PayrollLine{}, payroll.ErrEmployeeHasNoBaseSalary
	}

	workingDays, err := workday.CountPeriod(p)
	if err != nil {
		return payroll.PayrollLine{}, err
	}

	absentDays, err := s.attendanceService.CountAbsences(ctx, emp.ID, p, attendance.ShiftCategoryUnpaidLeave)
	if err != nil {
		return payroll.PayrollLine{}, err
	}

	return ComputeLine(LineInput{
		EmployeeID:  emp.ID,
		Period:      p,
		BaseSalary:  *emp.BaseSalary,
		Bonus:       req.BonusOrZero(),
		WorkingDays: workingDays,
		AbsentDays:  absentDays,
	}, s.policy), nil
}

func (s *PayrollServiceImpl) Preview(ctx context.Context, req payroll.ComputePayrollRequest) (payroll.PayrollLineResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollLineResponse{}, err
	}
	p, err := period.New(req.PeriodMonth, req.PeriodYear)
	if err != nil {
		return payroll.PayrollLineResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.PayrollLineResponse{}, err
	}

	line, err := s.compute(ctx, emp, p, req)
	if err != nil {
		return payroll.PayrollLineResponse{}, err
	}
	return payroll.NewPayrollLineResponse(line), nil
}

// ========== PAYROLL RECORDS ==========

func (s *PayrollServiceImpl) Create(ctx context.Context, req payroll.ComputePayrollRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	p, err := period.New(req.PeriodMonth, req.PeriodYear)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.createForEmployee(ctx, emp, p, req)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return payroll.NewPayrollRecordResponse(record), nil
}

// createForEmployee checks the (employee, period) key before computing. The
// store rejects a concurrent duplicate with the same ErrDuplicatePeriod.
func (s *PayrollServiceImpl) createForEmployee(ctx context.Context, emp employee.Employee, p period.Period, req payroll.ComputePayrollRequest) (payroll.PayrollRecord, error) {
	_, err := s.payrollRepo.GetByEmployeePeriod(ctx, emp.ID, p.Month, p.Year)
	if err == nil {
		return payroll.PayrollRecord{}, payroll.ErrDuplicatePeriod
	}
	if !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to check existing payroll record: %w", err)
	}

	line, err := s.compute(ctx, emp, p, req)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to generate payroll id: %w", err)
	}

	record := line.ToRecord(id.String(), req.Notes)
	now := s.now()
	record.CreatedAt = now
	record.UpdatedAt = now

	created, err := s.payrollRepo.Create(ctx, record)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	created.EmployeeName = &emp.FullName
	return created, nil
}

func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.GeneratePayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}
	p, err := period.New(req.PeriodMonth, req.PeriodYear)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	resp := payroll.GeneratePayrollResponse{
		PeriodMonth: p.Month,
		PeriodYear:  p.Year,
		Created:     []payroll.PayrollRecordResponse{},
		Skipped:     []payroll.SkippedEmployee{},
	}

	// Get employees
	var employees []employee.Employee
	if len(req.EmployeeIDs) > 0 {
		for _, id := range req.EmployeeIDs {
			emp, err := s.employeeRepo.GetByID(ctx, id)
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				resp.Skipped = append(resp.Skipped, payroll.SkippedEmployee{EmployeeID: id, Reason: err.Error()})
				continue
			}
			if err != nil {
				return payroll.GeneratePayrollResponse{}, fmt.Errorf("failed to get employee %s: %w", id, err)
			}
			if emp.Status != employee.EmploymentStatusActive {
				resp.Skipped = append(resp.Skipped, payroll.SkippedEmployee{EmployeeID: id, Reason: "employee is not active"})
				continue
			}
			employees = append(employees, emp)
		}
	} else {
		employees, err = s.employeeRepo.GetActive(ctx)
		if err != nil {
			return payroll.GeneratePayrollResponse{}, fmt.Errorf("failed to get employees: %w", err)
		}
	}

	single := payroll.ComputePayrollRequest{PeriodMonth: p.Month, PeriodYear: p.Year, Notes: req.Notes}
	for _, emp := range employees {
		record, err := s.createForEmployee(ctx, emp, p, single)
		switch {
		case errors.Is(err, payroll.ErrDuplicatePeriod), errors.Is(err, payroll.ErrEmployeeHasNoBaseSalary):
			resp.Skipped = append(resp.Skipped, payroll.SkippedEmployee{EmployeeID: emp.ID, Reason: err.Error()})
		case err != nil:
			return payroll.GeneratePayrollResponse{}, fmt.Errorf("failed to generate payroll for %s: %w", emp.ID, err)
		default:
			resp.Created = append(resp.Created, payroll.NewPayrollRecordResponse(record))
		}
	}

	s.logger.InfoContext(ctx, "Payroll generated",
		"period", p.String(), "created", len(resp.Created), "skipped", len(resp.Skipped))
	return resp, nil
}

func (s *PayrollServiceImpl) Get(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return payroll.NewPayrollRecordResponse(record), nil
}

func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}
	filter.Normalize()

	records, total, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, fmt.Errorf("failed to list payroll records: %w", err)
	}

	data := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		data = append(data, payroll.NewPayrollRecordResponse(r))
	}

	return payroll.ListPayrollRecordResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// ========== LIFECYCLE ==========

func (s *PayrollServiceImpl) UpdateStatus(ctx context.Context, req payroll.UpdatePayrollStatusRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	next := payroll.PayrollStatus(req.Status)

	var updated payroll.PayrollRecord
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.payrollRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if !current.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s to %s", payroll.ErrInvalidStatusTransition, current.Status, next)
		}

		paidAt := current.PaidAt
		switch next {
		case payroll.PayrollStatusPaid:
			at := s.now().UTC()
			if req.ParsedPaidAt != nil {
				at = *req.ParsedPaidAt
			}
			paidAt = &at
		case payroll.PayrollStatusPending:
			paidAt = nil
		}

		updated, err = s.payrollRepo.UpdateStatus(ctx, current.ID, next, paidAt)
		if err != nil {
			return err
		}

		switch {
		case next == payroll.PayrollStatusPaid:
			return s.bookSalaryExpense(ctx, updated)
		case current.Status == payroll.PayrollStatusPaid && next == payroll.PayrollStatusCancelled:
			return s.retractLinkedExpense(ctx, updated)
		}
		return nil
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return payroll.NewPayrollRecordResponse(updated), nil
}

// ExpenseDescription is the name a salary expense is booked under.
func ExpenseDescription(r payroll.PayrollRecord) string {
	return fmt.Sprintf("Payroll %s %02d/%04d", r.EmployeeID, r.PeriodMonth, r.PeriodYear)
}

// bookSalaryExpense creates the linked salary expense once per payroll record.
func (s *PayrollServiceImpl) bookSalaryExpense(ctx context.Context, r payroll.PayrollRecord) error {
	linked, err := s.expenseRepo.List(ctx, expense.ExpenseFilter{PayrollRecordID: &r.ID})
	if err != nil {
		return fmt.Errorf("failed to look up salary expense: %w", err)
	}
	if len(linked) > 0 {
		return nil
	}

	if !r.TotalAmount.IsPositive() {
		s.logger.WarnContext(ctx, "Payroll total is not positive, no salary expense booked",
			"payroll_id", r.ID, "total", r.TotalAmount.String())
		return nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate expense id: %w", err)
	}

	now := s.now()
	payrollID := r.ID
	_, err = s.expenseRepo.Create(ctx, expense.ExpenseRecord{
		ID:              id.String(),
		Category:        expense.CategorySalary,
		Description:     ExpenseDescription(r),
		Amount:          r.TotalAmount,
		ExpenseDate:     dateOf(*r.PaidAt),
		PayrollRecordID: &payrollID,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return fmt.Errorf("failed to book salary expense: %w", err)
	}
	return nil
}

// retractLinkedExpense removes the expense booked for a paid record being
// cancelled, so a later payment books a fresh one on its own date.
func (s *PayrollServiceImpl) retractLinkedExpense(ctx context.Context, r payroll.PayrollRecord) error {
	linked, err := s.expenseRepo.List(ctx, expense.ExpenseFilter{PayrollRecordID: &r.ID})
	if err != nil {
		return fmt.Errorf("failed to look up salary expense: %w", err)
	}
	for _, e := range linked {
		if err := s.expenseRepo.Delete(ctx, e.ID); err != nil && !errors.Is(err, expense.ErrExpenseNotFound) {
			return fmt.Errorf("failed to retract salary expense: %w", err)
		}
		s.logger.InfoContext(ctx, "Salary expense retracted", "payroll_id", r.ID, "expense_id", e.ID)
	}
	return nil
}

func (s *PayrollServiceImpl) Delete(ctx context.Context, id string) error {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Look the expense up while the link still exists.
	match, found := s.findSalaryExpense(ctx, record)

	if err := s.payrollRepo.Delete(ctx, record.ID); err != nil {
		return err
	}

	if !found {
		if record.PaidAt != nil {
			s.logger.WarnContext(ctx, "No salary expense matched deleted payroll", "payroll_id", record.ID)
		}
		return nil
	}

	if err := s.expenseRepo.Delete(ctx, match.ID); err != nil && !errors.Is(err, expense.ErrExpenseNotFound) {
		s.logger.ErrorContext(ctx, "Failed to retract salary expense",
			"payroll_id", record.ID, "expense_id", match.ID, "error", err)
		return nil
	}

	s.logger.InfoContext(ctx, "Salary expense retracted", "payroll_id", record.ID, "expense_id", match.ID)
	return nil
}

// findSalaryExpense tries the explicit link, then the booked description within
// the payroll's date range, then the exact payment date and amount. Lookup
// failures are logged and treated as no match.
func (s *PayrollServiceImpl) findSalaryExpense(ctx context.Context, r payroll.PayrollRecord) (expense.ExpenseRecord, bool) {
	salary := expense.CategorySalary

	linked, err := s.expenseRepo.List(ctx, expense.ExpenseFilter{PayrollRecordID: &r.ID})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to look up linked expense", "payroll_id", r.ID, "error", err)
		return expense.ExpenseRecord{}, false
	}
	if len(linked) > 0 {
		return linked[0], true
	}

	p := r.Period()
	from, to := p.Start(), p.End()
	if r.PaidAt != nil && dateOf(*r.PaidAt).After(to) {
		to = dateOf(*r.PaidAt)
	}
	description := ExpenseDescription(r)
	named, err := s.expenseRepo.List(ctx, expense.ExpenseFilter{
		From:        &from,
		To:          &to,
		Category:    &salary,
		Description: &description,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to look up expense by description", "payroll_id", r.ID, "error", err)
		return expense.ExpenseRecord{}, false
	}
	if len(named) > 0 {
		return named[0], true
	}

	if r.PaidAt == nil {
		return expense.ExpenseRecord{}, false
	}
	paidOn := dateOf(*r.PaidAt)
	dated, err := s.expenseRepo.List(ctx, expense.ExpenseFilter{
		From:     &paidOn,
		To:       &paidOn,
		Category: &salary,
		Amount:   &r.TotalAmount,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to look up expense by payment date", "payroll_id", r.ID, "error", err)
		return expense.ExpenseRecord{}, false
	}
	for _, e := range dated {
		if e.PayrollRecordID == nil {
			return e, true
		}
	}
	return expense.ExpenseRecord{}, false
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

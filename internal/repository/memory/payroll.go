package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/payroll"
)

type payrollRepository struct {
	store *Store
}

func NewPayrollRepository(store *Store) payroll.PayrollRepository {
	return &payrollRepository{store: store}
}

func (r *payrollRepository) withEmployeeName(rec payroll.PayrollRecord) payroll.PayrollRecord {
	if e, ok := r.store.employees[rec.EmployeeID]; ok {
		name := e.FullName
		rec.EmployeeName = &name
	}
	return rec
}

// Create checks and claims the (employee, period) key under one lock.
func (r *payrollRepository) Create(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := payrollKey{employeeID: record.EmployeeID, month: record.PeriodMonth, year: record.PeriodYear}
	if _, taken := r.store.payrollKeys[key]; taken {
		return payroll.PayrollRecord{}, payroll.ErrDuplicatePeriod
	}

	r.store.payroll[record.ID] = record
	r.store.payrollKeys[key] = record.ID
	return r.withEmployeeName(record), nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.payroll[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return r.withEmployeeName(rec), nil
}

func (r *payrollRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.PayrollRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.payrollKeys[payrollKey{employeeID: employeeID, month: month, year: year}]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return r.withEmployeeName(r.store.payroll[id]), nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []payroll.PayrollRecord
	for _, rec := range r.store.payroll {
		if filter.PeriodMonth != nil && rec.PeriodMonth != *filter.PeriodMonth {
			continue
		}
		if filter.PeriodYear != nil && rec.PeriodYear != *filter.PeriodYear {
			continue
		}
		if filter.Status != nil && string(rec.Status) != *filter.Status {
			continue
		}
		if filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		matched = append(matched, r.withEmployeeName(rec))
	}

	// Newest period first, then employee
	sort.Slice(matched, func(i, j int) bool {
		pi, pj := matched[i].Period(), matched[j].Period()
		if !pi.Equal(pj) {
			return pi.After(pj)
		}
		return matched[i].EmployeeID < matched[j].EmployeeID
	})

	total := int64(len(matched))
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit
	if offset >= len(matched) {
		return []payroll.PayrollRecord{}, total, nil
	}
	end := min(offset+filter.Limit, len(matched))
	return matched[offset:end], total, nil
}

func (r *payrollRepository) UpdateStatus(ctx context.Context, id string, status payroll.PayrollStatus, paidAt *time.Time) (payroll.PayrollRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.payroll[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	rec.Status = status
	rec.PaidAt = paidAt
	rec.UpdatedAt = time.Now()
	r.store.payroll[id] = rec
	return r.withEmployeeName(rec), nil
}

// Delete also clears the payroll link on expenses, like ON DELETE SET NULL.
func (r *payrollRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.payroll[id]
	if !ok {
		return payroll.ErrPayrollRecordNotFound
	}
	delete(r.store.payroll, id)
	delete(r.store.payrollKeys, payrollKey{employeeID: rec.EmployeeID, month: rec.PeriodMonth, year: rec.PeriodYear})

	for expenseID, e := range r.store.expenses {
		if e.PayrollRecordID != nil && *e.PayrollRecordID == id {
			e.PayrollRecordID = nil
			r.store.expenses[expenseID] = e
		}
	}
	return nil
}

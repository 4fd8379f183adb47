package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/expense"
)

type expenseRepository struct {
	store *Store
}

func NewExpenseRepository(store *Store) expense.ExpenseRepository {
	return &expenseRepository{store: store}
}

func (r *expenseRepository) Create(ctx context.Context, record expense.ExpenseRecord) (expense.ExpenseRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.expenses[record.ID] = record
	return record, nil
}

func (r *expenseRepository) GetByID(ctx context.Context, id string) (expense.ExpenseRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.expenses[id]
	if !ok {
		return expense.ExpenseRecord{}, expense.ErrExpenseNotFound
	}
	return rec, nil
}

func matches(rec expense.ExpenseRecord, f expense.ExpenseFilter) bool {
	if f.From != nil && rec.ExpenseDate.Before(*f.From) {
		return false
	}
	if f.To != nil && rec.ExpenseDate.After(*f.To) {
		return false
	}
	if f.Category != nil && rec.Category != *f.Category {
		return false
	}
	if f.PayrollRecordID != nil && (rec.PayrollRecordID == nil || *rec.PayrollRecordID != *f.PayrollRecordID) {
		return false
	}
	if f.Description != nil && rec.Description != *f.Description {
		return false
	}
	if f.Amount != nil && !rec.Amount.Equal(*f.Amount) {
		return false
	}
	return true
}

func (r *expenseRepository) List(ctx context.Context, filter expense.ExpenseFilter) ([]expense.ExpenseRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []expense.ExpenseRecord
	for _, rec := range r.store.expenses {
		if matches(rec, filter) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ExpenseDate.Equal(out[j].ExpenseDate) {
			return out[i].ExpenseDate.Before(out[j].ExpenseDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *expenseRepository) Correct(ctx context.Context, id string, c expense.Correction) (expense.ExpenseRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.expenses[id]
	if !ok {
		return expense.ExpenseRecord{}, expense.ErrExpenseNotFound
	}
	rec.Category = c.Category
	rec.Description = c.Description
	rec.Amount = c.Amount
	rec.ExpenseDate = c.ExpenseDate
	note := c.Note
	correctedAt := c.CorrectedAt
	rec.CorrectionNote = &note
	rec.CorrectedAt = &correctedAt
	rec.UpdatedAt = c.CorrectedAt
	r.store.expenses[id] = rec
	return rec, nil
}

func (r *expenseRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.expenses[id]; !ok {
		return expense.ErrExpenseNotFound
	}
	delete(r.store.expenses, id)
	return nil
}

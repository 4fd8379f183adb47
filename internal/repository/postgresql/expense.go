package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/expense"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type expenseRepository struct {
	db *database.DB
}

func NewExpenseRepository(db *database.DB) expense.ExpenseRepository {
	return &expenseRepository{db: db}
}

const expenseColumns = `id, category, description, amount, expense_date, payroll_record_id,
	corrected_at, correction_note, created_at, updated_at`

func scanExpense(row pgx.Row) (expense.ExpenseRecord, error) {
	var rec expense.ExpenseRecord
	err := row.Scan(
		&rec.ID, &rec.Category, &rec.Description, &rec.Amount, &rec.ExpenseDate, &rec.PayrollRecordID,
		&rec.CorrectedAt, &rec.CorrectionNote, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

func (r *expenseRepository) Create(ctx context.Context, record expense.ExpenseRecord) (expense.ExpenseRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO expenses (id, category, description, amount, expense_date, payroll_record_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + expenseColumns

	rec, err := scanExpense(q.QueryRow(ctx, query,
		record.ID, record.Category, record.Description, record.Amount, record.ExpenseDate,
		record.PayrollRecordID, record.CreatedAt, record.UpdatedAt,
	))
	if err != nil {
		return expense.ExpenseRecord{}, database.Wrap("create expense", err)
	}
	return rec, nil
}

func (r *expenseRepository) GetByID(ctx context.Context, id string) (expense.ExpenseRecord, error) {
	q := GetQuerier(ctx, r.db)

	rec, err := scanExpense(q.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense.ExpenseRecord{}, expense.ErrExpenseNotFound
		}
		return expense.ExpenseRecord{}, database.Wrap("get expense", err)
	}
	return rec, nil
}

func (r *expenseRepository) List(ctx context.Context, filter expense.ExpenseFilter) ([]expense.ExpenseRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.From != nil {
		query += fmt.Sprintf(" AND expense_date >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND expense_date <= $%d", argIdx)
		args = append(args, *filter.To)
		argIdx++
	}
	if filter.Category != nil {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, *filter.Category)
		argIdx++
	}
	if filter.PayrollRecordID != nil {
		query += fmt.Sprintf(" AND payroll_record_id = $%d", argIdx)
		args = append(args, *filter.PayrollRecordID)
		argIdx++
	}
	if filter.Description != nil {
		query += fmt.Sprintf(" AND description = $%d", argIdx)
		args = append(args, *filter.Description)
		argIdx++
	}
	if filter.Amount != nil {
		query += fmt.Sprintf(" AND amount = $%d", argIdx)
		args = append(args, *filter.Amount)
	}
	query += ` ORDER BY expense_date, id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, database.Wrap("list expenses", err)
	}
	defer rows.Close()

	var records []expense.ExpenseRecord
	for rows.Next() {
		rec, err := scanExpense(rows)
		if err != nil {
			return nil, database.Wrap("scan expense", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Wrap("iterate expenses", err)
	}
	return records, nil
}

func (r *expenseRepository) Correct(ctx context.Context, id string, c expense.Correction) (expense.ExpenseRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE expenses
		SET category = $2, description = $3, amount = $4, expense_date = $5,
			correction_note = $6, corrected_at = $7, updated_at = $7
		WHERE id = $1
		RETURNING ` + expenseColumns

	rec, err := scanExpense(q.QueryRow(ctx, query,
		id, c.Category, c.Description, c.Amount, c.ExpenseDate, c.Note, c.CorrectedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense.ExpenseRecord{}, expense.ErrExpenseNotFound
		}
		return expense.ExpenseRecord{}, database.Wrap("correct expense", err)
	}
	return rec, nil
}

func (r *expenseRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return database.Wrap("delete expense", err)
	}
	if tag.RowsAffected() == 0 {
		return expense.ErrExpenseNotFound
	}
	return nil
}

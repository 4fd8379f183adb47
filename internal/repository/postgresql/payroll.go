package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const payrollConstraint = "uk_payroll_employee_period"

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollSelect = `
	SELECT pr.id, pr.employee_id, pr.period_month, pr.period_year, pr.base_salary,
		   pr.bonus_amount, pr.deduction_amount, pr.total_amount, pr.working_days, pr.absent_days,
		   pr.status, pr.paid_at, pr.notes, pr.created_at, pr.updated_at,
		   e.full_name as employee_name
	FROM payroll_records pr
	LEFT JOIN employees e ON pr.employee_id = e.id
`

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.PeriodMonth, &rec.PeriodYear, &rec.BaseSalary,
		&rec.BonusAmount, &rec.DeductionAmount, &rec.TotalAmount, &rec.WorkingDays, &rec.AbsentDays,
		&rec.Status, &rec.PaidAt, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName,
	)
	return rec, err
}

// Create relies on uk_payroll_employee_period to reject a concurrent duplicate.
func (r *payrollRepository) Create(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			id, employee_id, period_month, period_year, base_salary,
			bonus_amount, deduction_amount, total_amount, working_days, absent_days,
			status, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := q.Exec(ctx, query,
		record.ID, record.EmployeeID, record.PeriodMonth, record.PeriodYear, record.BaseSalary,
		record.BonusAmount, record.DeductionAmount, record.TotalAmount, record.WorkingDays, record.AbsentDays,
		record.Status, record.Notes, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err, payrollConstraint) {
			return payroll.PayrollRecord{}, payroll.ErrDuplicatePeriod
		}
		return payroll.PayrollRecord{}, database.Wrap("create payroll record", err)
	}

	return r.GetByID(ctx, record.ID)
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	rec, err := scanPayrollRecord(q.QueryRow(ctx, payrollSelect+` WHERE pr.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, database.Wrap("get payroll record", err)
	}
	return rec, nil
}

func (r *payrollRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := payrollSelect + ` WHERE pr.employee_id = $1 AND pr.period_month = $2 AND pr.period_year = $3`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, database.Wrap("get payroll record by period", err)
	}
	return rec, nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.PeriodMonth != nil {
		where += fmt.Sprintf(" AND pr.period_month = $%d", argIdx)
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}
	if filter.PeriodYear != nil {
		where += fmt.Sprintf(" AND pr.period_year = $%d", argIdx)
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND pr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND pr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	// Count query
	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM payroll_records pr` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, database.Wrap("count payroll records", err)
	}

	// Pagination
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := payrollSelect + where + fmt.Sprintf(`
		ORDER BY pr.period_year DESC, pr.period_month DESC, pr.employee_id
		LIMIT $%d OFFSET $%d
	`, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, database.Wrap("list payroll records", err)
	}
	defer rows.Close()

	records := []payroll.PayrollRecord{}
	for rows.Next() {
		rec, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, 0, database.Wrap("scan payroll record", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, database.Wrap("iterate payroll records", err)
	}

	return records, totalCount, nil
}

func (r *payrollRepository) UpdateStatus(ctx context.Context, id string, status payroll.PayrollStatus, paidAt *time.Time) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = $2, paid_at = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, status, paidAt)
	if err != nil {
		return payroll.PayrollRecord{}, database.Wrap("update payroll status", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete leaves linked expenses with a NULL payroll_record_id.
func (r *payrollRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_records WHERE id = $1`, id)
	if err != nil {
		return database.Wrap("delete payroll record", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordNotFound
	}
	return nil
}

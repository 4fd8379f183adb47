package postgresql

import (
	"context"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Upsert keeps one record per employee and day; a repeated day takes the new category.
func (a *attendanceRepository) Upsert(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (id, employee_id, work_date, shift_category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT ON CONSTRAINT uk_attendance_employee_day DO UPDATE SET
			shift_category = EXCLUDED.shift_category,
			updated_at = EXCLUDED.updated_at
		RETURNING id, employee_id, work_date, shift_category, created_at, updated_at
	`

	var rec attendance.AttendanceRecord
	err := q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.WorkDate, record.ShiftCategory, record.CreatedAt, record.UpdatedAt,
	).Scan(&rec.ID, &rec.EmployeeID, &rec.WorkDate, &rec.ShiftCategory, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return attendance.AttendanceRecord{}, database.Wrap("upsert attendance", err)
	}
	return rec, nil
}

func (a *attendanceRepository) CountByCategory(ctx context.Context, employeeID string, p period.Period, category attendance.ShiftCategory) (int, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT COUNT(*)
		FROM attendances
		WHERE employee_id = $1 AND shift_category = $2 AND work_date BETWEEN $3 AND $4
	`

	var count int
	if err := q.QueryRow(ctx, query, employeeID, category, p.Start(), p.End()).Scan(&count); err != nil {
		return 0, database.Wrap("count attendance", err)
	}
	return count, nil
}

func (a *attendanceRepository) ListByEmployeePeriod(ctx context.Context, employeeID string, p period.Period) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, work_date, shift_category, created_at, updated_at
		FROM attendances
		WHERE employee_id = $1 AND work_date BETWEEN $2 AND $3
		ORDER BY work_date
	`

	rows, err := q.Query(ctx, query, employeeID, p.Start(), p.End())
	if err != nil {
		return nil, database.Wrap("list attendance", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		var rec attendance.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.WorkDate, &rec.ShiftCategory, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, database.Wrap("scan attendance", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Wrap("iterate attendance", err)
	}
	return records, nil
}

package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/payment"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type planActualRepository struct {
	db *database.DB
}

func NewPlanActualRepository(db *database.DB) payment.PlanActualRepository {
	return &planActualRepository{db: db}
}

const planActualColumns = `id, subject_kind, subject_id, category, period_month, period_year,
	plan_amount, actual_amount, realized_at, created_at, updated_at`

func scanPlanActual(row pgx.Row) (payment.PlanActualRecord, error) {
	var rec payment.PlanActualRecord
	err := row.Scan(
		&rec.ID, &rec.SubjectKind, &rec.SubjectID, &rec.Category, &rec.PeriodMonth, &rec.PeriodYear,
		&rec.PlanAmount, &rec.ActualAmount, &rec.RealizedAt, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// monthIndex matches period ordering: year*12 + month.
func monthIndex(p period.Period) int {
	return p.Year*12 + p.Month
}

func (r *planActualRepository) GetByKey(ctx context.Context, kind payment.SubjectKind, subjectID string, p period.Period) (payment.PlanActualRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + planActualColumns + ` FROM plan_actuals
		WHERE subject_kind = $1 AND subject_id = $2 AND period_month = $3 AND period_year = $4`

	rec, err := scanPlanActual(q.QueryRow(ctx, query, kind, subjectID, p.Month, p.Year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payment.PlanActualRecord{}, payment.ErrPlanActualNotFound
		}
		return payment.PlanActualRecord{}, database.Wrap("get plan/actual", err)
	}
	return rec, nil
}

// Upsert keeps the original id and creation time of an existing row.
func (r *planActualRepository) Upsert(ctx context.Context, record payment.PlanActualRecord) (payment.PlanActualRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO plan_actuals (
			id, subject_kind, subject_id, category, period_month, period_year,
			plan_amount, actual_amount, realized_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT ON CONSTRAINT uk_plan_actual_subject_period DO UPDATE SET
			category = EXCLUDED.category,
			plan_amount = EXCLUDED.plan_amount,
			actual_amount = EXCLUDED.actual_amount,
			realized_at = EXCLUDED.realized_at,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + planActualColumns

	rec, err := scanPlanActual(q.QueryRow(ctx, query,
		record.ID, record.SubjectKind, record.SubjectID, record.Category, record.PeriodMonth, record.PeriodYear,
		record.PlanAmount, record.ActualAmount, record.RealizedAt, record.CreatedAt, record.UpdatedAt,
	))
	if err != nil {
		return payment.PlanActualRecord{}, database.Wrap("upsert plan/actual", err)
	}
	return rec, nil
}

func (r *planActualRepository) List(ctx context.Context, filter payment.PlanActualFilter) ([]payment.PlanActualRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + planActualColumns + ` FROM plan_actuals
		WHERE period_year * 12 + period_month BETWEEN $1 AND $2`
	args := []interface{}{monthIndex(filter.From), monthIndex(filter.To)}
	argIdx := 3

	if filter.SubjectKind != nil {
		query += fmt.Sprintf(" AND subject_kind = $%d", argIdx)
		args = append(args, *filter.SubjectKind)
		argIdx++
	}
	if filter.SubjectID != nil {
		query += fmt.Sprintf(" AND subject_id = $%d", argIdx)
		args = append(args, *filter.SubjectID)
	}
	query += ` ORDER BY period_year, period_month, subject_id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, database.Wrap("list plan/actual", err)
	}
	defer rows.Close()

	var records []payment.PlanActualRecord
	for rows.Next() {
		rec, err := scanPlanActual(rows)
		if err != nil {
			return nil, database.Wrap("scan plan/actual", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Wrap("iterate plan/actual", err)
	}
	return records, nil
}

type participantRepository struct {
	db *database.DB
}

func NewParticipantRepository(db *database.DB) payment.ParticipantRepository {
	return &participantRepository{db: db}
}

const participantColumns = `id, full_name, program_id, override_tariff,
	start_month, start_year, end_month, end_year, active, created_at, updated_at`

func scanParticipant(row pgx.Row) (payment.Participant, error) {
	var (
		p                   payment.Participant
		programID           *string
		startMonth, startYr *int
		endMonth, endYr     *int
	)
	err := row.Scan(
		&p.ID, &p.FullName, &programID, &p.OverrideTariff,
		&startMonth, &startYr, &endMonth, &endYr, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return payment.Participant{}, err
	}
	if programID != nil {
		p.ProgramID = *programID
	}
	if startMonth != nil && startYr != nil {
		p.StartPeriod = &period.Period{Month: *startMonth, Year: *startYr}
	}
	if endMonth != nil && endYr != nil {
		p.EndPeriod = &period.Period{Month: *endMonth, Year: *endYr}
	}
	return p, nil
}

func (r *participantRepository) GetParticipantByID(ctx context.Context, id string) (payment.Participant, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanParticipant(q.QueryRow(ctx, `SELECT `+participantColumns+` FROM participants WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payment.Participant{}, payment.ErrParticipantNotFound
		}
		return payment.Participant{}, database.Wrap("get participant", err)
	}
	return p, nil
}

func (r *participantRepository) ListParticipants(ctx context.Context) ([]payment.Participant, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+participantColumns+` FROM participants ORDER BY id`)
	if err != nil {
		return nil, database.Wrap("list participants", err)
	}
	defer rows.Close()

	var participants []payment.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, database.Wrap("scan participant", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Wrap("iterate participants", err)
	}
	return participants, nil
}

func (r *participantRepository) ListPrograms(ctx context.Context) ([]payment.Program, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, default_price, created_at, updated_at FROM programs ORDER BY id`)
	if err != nil {
		return nil, database.Wrap("list programs", err)
	}
	defer rows.Close()

	var programs []payment.Program
	for rows.Next() {
		var p payment.Program
		if err := rows.Scan(&p.ID, &p.Name, &p.DefaultPrice, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, database.Wrap("scan program", err)
		}
		programs = append(programs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Wrap("iterate programs", err)
	}
	return programs, nil
}

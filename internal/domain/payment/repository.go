package payment

import (
	"context"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
)

// PlanActualFilter selects rows whose period lies within [From, To].
type PlanActualFilter struct {
	From        period.Period
	To          period.Period
	SubjectKind *SubjectKind
	SubjectID   *string
}

// PlanActualRepository defines data access methods for plan/actual rows.
type PlanActualRepository interface {
	GetByKey(ctx context.Context, kind SubjectKind, subjectID string, p period.Period) (PlanActualRecord, error)

	// Upsert inserts or replaces the row identified by (kind, subject, period)
	Upsert(ctx context.Context, record PlanActualRecord) (PlanActualRecord, error)

	List(ctx context.Context, filter PlanActualFilter) ([]PlanActualRecord, error)
}

// ParticipantRepository reads the participant and program master data used for pricing.
type ParticipantRepository interface {
	GetParticipantByID(ctx context.Context, id string) (Participant, error)
	ListParticipants(ctx context.Context) ([]Participant, error)
	ListPrograms(ctx context.Context) ([]Program, error)
}

package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/payment"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
)

type planActualRepository struct {
	store *Store
}

func NewPlanActualRepository(store *Store) payment.PlanActualRepository {
	return &planActualRepository{store: store}
}

func (r *planActualRepository) GetByKey(ctx context.Context, kind payment.SubjectKind, subjectID string, p period.Period) (payment.PlanActualRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.plans[planKey{kind: kind, subjectID: subjectID, month: p.Month, year: p.Year}]
	if !ok {
		return payment.PlanActualRecord{}, payment.ErrPlanActualNotFound
	}
	return rec, nil
}

// Upsert keeps the original id and creation time of an existing row.
func (r *planActualRepository) Upsert(ctx context.Context, record payment.PlanActualRecord) (payment.PlanActualRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := planKey{kind: record.SubjectKind, subjectID: record.SubjectID, month: record.PeriodMonth, year: record.PeriodYear}
	if existing, ok := r.store.plans[key]; ok {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
	}
	r.store.plans[key] = record
	return record, nil
}

func (r *planActualRepository) List(ctx context.Context, filter payment.PlanActualFilter) ([]payment.PlanActualRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	w := period.Window{From: filter.From, To: filter.To}
	var out []payment.PlanActualRecord
	for _, rec := range r.store.plans {
		if !w.Contains(rec.Period()) {
			continue
		}
		if filter.SubjectKind != nil && rec.SubjectKind != *filter.SubjectKind {
			continue
		}
		if filter.SubjectID != nil && rec.SubjectID != *filter.SubjectID {
			continue
		}
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool {
		pi, pj := out[i].Period(), out[j].Period()
		if !pi.Equal(pj) {
			return pi.Before(pj)
		}
		return out[i].SubjectID < out[j].SubjectID
	})
	return out, nil
}

type participantRepository struct {
	store *Store
}

func NewParticipantRepository(store *Store) payment.ParticipantRepository {
	return &participantRepository{store: store}
}

func (r *participantRepository) GetParticipantByID(ctx context.Context, id string) (payment.Participant, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.participants[id]
	if !ok {
		return payment.Participant{}, payment.ErrParticipantNotFound
	}
	return p, nil
}

func (r *participantRepository) ListParticipants(ctx context.Context) ([]payment.Participant, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]payment.Participant, 0, len(r.store.participants))
	for _, p := range r.store.participants {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *participantRepository) ListPrograms(ctx context.Context) ([]payment.Program, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]payment.Program, 0, len(r.store.programs))
	for _, p := range r.store.programs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

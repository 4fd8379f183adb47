package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/expense"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/payment"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/money"
	"github.com/cmlabs-hris/hris-finance-go/internal/service/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentServiceImpl struct {
	planRepo        payment.PlanActualRepository
	participantRepo payment.ParticipantRepository
	source          *finance.Source
	policy          money.Policy
	now             func() time.Time
}

type Option func(*PaymentServiceImpl)

// WithClock replaces time.Now for timestamps and default realization dates.
func WithClock(now func() time.Time) Option {
	return func(s *PaymentServiceImpl) { s.now = now }
}

func NewPaymentService(
	planRepo payment.PlanActualRepository,
	participantRepo payment.ParticipantRepository,
	source *finance.Source,
	policy money.Policy,
	opts ...Option,
) payment.PaymentService {
	s := &PaymentServiceImpl{
		planRepo:        planRepo,
		participantRepo: participantRepo,
		source:          source,
		policy:          policy,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PaymentServiceImpl) Upsert(ctx context.Context, req payment.UpsertPaymentRequest) (payment.PlanActualResponse, error) {
	if err := req.Validate(); err != nil {
		return payment.PlanActualResponse{}, err
	}
	p, err := period.New(req.PeriodMonth, req.PeriodYear)
	if err != nil {
		return payment.PlanActualResponse{}, err
	}
	kind := payment.SubjectKind(req.SubjectKind)

	subjectID := req.SubjectID
	category := ""
	if req.Category != nil {
		category = *req.Category
	}
	switch kind {
	case payment.SubjectParticipant:
		participant, err := s.participantRepo.GetParticipantByID(ctx, req.SubjectID)
		if err != nil {
			return payment.PlanActualResponse{}, err
		}
		if category == "" {
			category = participant.ProgramID
		}
	case payment.SubjectExpenseCategory:
		subjectID = string(expense.NormalizeCategory(req.SubjectID))
		category = subjectID
	}

	record, err := s.planRepo.GetByKey(ctx, kind, subjectID, p)
	if errors.Is(err, payment.ErrPlanActualNotFound) {
		id, idErr := uuid.NewV7()
		if idErr != nil {
			return payment.PlanActualResponse{}, fmt.Errorf("failed to generate payment id: %w", idErr)
		}
		record = payment.PlanActualRecord{
			ID:           id.String(),
			SubjectKind:  kind,
			SubjectID:    subjectID,
			PeriodMonth:  p.Month,
			PeriodYear:   p.Year,
			ActualAmount: decimal.Zero,
			CreatedAt:    s.now(),
		}
	} else if err != nil {
		return payment.PlanActualResponse{}, fmt.Errorf("failed to get payment: %w", err)
	}

	// Merge: omitted fields keep their stored values
	record.Category = category
	if req.PlanAmount != nil {
		record.PlanAmount = req.PlanAmount
	}
	if req.ActualAmount != nil {
		record.ActualAmount = *req.ActualAmount
	}
	if req.ParsedRealizedAt != nil {
		record.RealizedAt = req.ParsedRealizedAt
	} else if req.ActualAmount != nil && req.ActualAmount.IsPositive() && record.RealizedAt == nil {
		at := s.now().UTC()
		record.RealizedAt = &at
	}
	record.UpdatedAt = s.now()

	saved, err := s.planRepo.Upsert(ctx, record)
	if err != nil {
		return payment.PlanActualResponse{}, fmt.Errorf("failed to upsert payment: %w", err)
	}
	return payment.NewPlanActualResponse(saved), nil
}

func (s *PaymentServiceImpl) ListAnnotated(ctx context.Context, p period.Period, now time.Time) (payment.ListPaymentsResponse, error) {
	if err := p.Validate(); err != nil {
		return payment.ListPaymentsResponse{}, err
	}

	resolver, err := s.source.Resolver(ctx)
	if err != nil {
		return payment.ListPaymentsResponse{}, err
	}
	entries, err := s.source.Income(ctx, period.Single(p), resolver)
	if err != nil {
		return payment.ListPaymentsResponse{}, err
	}

	resp := payment.ListPaymentsResponse{
		PeriodMonth: p.Month,
		PeriodYear:  p.Year,
		Rows:        make([]payment.AnnotatedPaymentResponse, 0, len(entries)),
	}
	outstanding := decimal.Zero
	for _, e := range entries {
		status := e.Status(now)
		resp.Counts.Add(status)
		outstanding = outstanding.Add(e.Outstanding())

		row := payment.AnnotatedPaymentResponse{
			RecordID:     e.RecordID,
			SubjectID:    e.SubjectID,
			SubjectName:  e.SubjectName,
			ProgramID:    e.Category,
			PeriodMonth:  e.Period.Month,
			PeriodYear:   e.Period.Year,
			PlanAmount:   s.policy.Round(e.Plan),
			PlanSource:   string(e.PlanSource),
			ActualAmount: s.policy.Round(e.Actual),
			Outstanding:  s.policy.Round(e.Outstanding()),
			Status:       string(status),
		}
		if e.RealizedAt != nil {
			realizedAt := e.RealizedAt.Format("2006-01-02")
			row.RealizedAt = &realizedAt
		}
		resp.Rows = append(resp.Rows, row)
	}
	resp.Outstanding = s.policy.Round(outstanding)

	return resp, nil
}

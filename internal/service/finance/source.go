package finance

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/expense"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/payment"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
)

// Source loads entries from the record store. Any store failure fails the load.
type Source struct {
	planRepo        payment.PlanActualRepository
	participantRepo payment.ParticipantRepository
	expenseRepo     expense.ExpenseRepository
}

func NewSource(
	planRepo payment.PlanActualRepository,
	participantRepo payment.ParticipantRepository,
	expenseRepo expense.ExpenseRepository,
) *Source {
	return &Source{
		planRepo:        planRepo,
		participantRepo: participantRepo,
		expenseRepo:     expenseRepo,
	}
}

// Resolver snapshots participants and programs for pricing.
func (s *Source) Resolver(ctx context.Context) (payment.PlanResolver, error) {
	participants, err := s.participantRepo.ListParticipants(ctx)
	if err != nil {
		return payment.PlanResolver{}, fmt.Errorf("failed to list participants: %w", err)
	}
	programs, err := s.participantRepo.ListPrograms(ctx)
	if err != nil {
		return payment.PlanResolver{}, fmt.Errorf("failed to list programs: %w", err)
	}
	return payment.NewPlanResolver(participants, programs), nil
}

// Income returns the stored income rows of w plus the scheduled months without a row.
func (s *Source) Income(ctx context.Context, w period.Window, resolver payment.PlanResolver) ([]Entry, error) {
	kind := payment.SubjectParticipant
	records, err := s.planRepo.List(ctx, payment.PlanActualFilter{From: w.From, To: w.To, SubjectKind: &kind})
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return ExpandSchedule(IncomeEntries(records, resolver), resolver, w), nil
}

// StoredIncome returns only the stored income rows of w.
func (s *Source) StoredIncome(ctx context.Context, w period.Window, resolver payment.PlanResolver) ([]Entry, error) {
	kind := payment.SubjectParticipant
	records, err := s.planRepo.List(ctx, payment.PlanActualFilter{From: w.From, To: w.To, SubjectKind: &kind})
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return IncomeEntries(records, resolver), nil
}

// Expenses returns expense forecasts and booked expenses of w.
func (s *Source) Expenses(ctx context.Context, w period.Window) ([]Entry, error) {
	kind := payment.SubjectExpenseCategory
	forecasts, err := s.planRepo.List(ctx, payment.PlanActualFilter{From: w.From, To: w.To, SubjectKind: &kind})
	if err != nil {
		return nil, fmt.Errorf("failed to list expense forecasts: %w", err)
	}

	from, to := w.StartDate(), w.EndDate()
	booked, err := s.expenseRepo.List(ctx, expense.ExpenseFilter{From: &from, To: &to})
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	return append(ExpensePlanEntries(forecasts), ExpenseEntries(booked)...), nil
}

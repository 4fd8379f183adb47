package expense

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/expense"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ExpenseServiceImpl struct {
	expenseRepo expense.ExpenseRepository
	policy      money.Policy
	now         func() time.Time
}

type Option func(*ExpenseServiceImpl)

func WithClock(now func() time.Time) Option {
	return func(s *ExpenseServiceImpl) { s.now = now }
}

func NewExpenseService(expenseRepo expense.ExpenseRepository, policy money.Policy, opts ...Option) expense.ExpenseService {
	s := &ExpenseServiceImpl{
		expenseRepo: expenseRepo,
		policy:      policy,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ExpenseServiceImpl) Create(ctx context.Context, req expense.CreateExpenseRequest) (expense.ExpenseResponse, error) {
	if err := req.Validate(); err != nil {
		return expense.ExpenseResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return expense.ExpenseResponse{}, fmt.Errorf("failed to generate expense id: %w", err)
	}

	now := s.now()
	created, err := s.expenseRepo.Create(ctx, expense.ExpenseRecord{
		ID:          id.String(),
		Category:    expense.NormalizeCategory(req.Category),
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		ExpenseDate: req.ParsedDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return expense.ExpenseResponse{}, fmt.Errorf("failed to create expense: %w", err)
	}
	return expense.NewExpenseResponse(created), nil
}

func (s *ExpenseServiceImpl) Get(ctx context.Context, id string) (expense.ExpenseResponse, error) {
	record, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}
	return expense.NewExpenseResponse(record), nil
}

func (s *ExpenseServiceImpl) List(ctx context.Context, req expense.ListExpenseRequest) (expense.ListExpenseResponse, error) {
	filter, err := req.ToFilter()
	if err != nil {
		return expense.ListExpenseResponse{}, err
	}

	records, err := s.expenseRepo.List(ctx, filter)
	if err != nil {
		return expense.ListExpenseResponse{}, fmt.Errorf("failed to list expenses: %w", err)
	}

	resp := expense.ListExpenseResponse{
		Data:  make([]expense.ExpenseResponse, 0, len(records)),
		Count: len(records),
	}
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
		resp.Data = append(resp.Data, expense.NewExpenseResponse(r))
	}
	resp.Total = s.policy.Round(total)
	return resp, nil
}

func (s *ExpenseServiceImpl) Correct(ctx context.Context, req expense.CorrectExpenseRequest, now time.Time) (expense.ExpenseResponse, error) {
	if err := req.Validate(); err != nil {
		return expense.ExpenseResponse{}, err
	}

	current, err := s.expenseRepo.GetByID(ctx, req.ID)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}

	c := expense.Correction{
		Category:    current.Category,
		Description: current.Description,
		Amount:      current.Amount,
		ExpenseDate: current.ExpenseDate,
		Note:        strings.TrimSpace(req.Note),
		CorrectedAt: now,
	}
	if req.Category != nil {
		c.Category = expense.NormalizeCategory(*req.Category)
	}
	if req.Description != nil {
		c.Description = strings.TrimSpace(*req.Description)
	}
	if req.Amount != nil {
		c.Amount = *req.Amount
	}
	if req.ParsedDate != nil {
		c.ExpenseDate = *req.ParsedDate
	}

	corrected, err := s.expenseRepo.Correct(ctx, current.ID, c)
	if err != nil {
		return expense.ExpenseResponse{}, fmt.Errorf("failed to correct expense: %w", err)
	}
	return expense.NewExpenseResponse(corrected), nil
}

package payment

import (
	"time"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// UpsertPaymentRequest registers a plan, an actual, or both for one subject and month.
// Omitted amounts keep the values already stored.
type UpsertPaymentRequest struct {
	SubjectKind  string           `json:"subject_kind"` // defaults to participant
	SubjectID    string           `json:"subject_id"`
	Category     *string          `json:"category,omitempty"`
	PeriodMonth  int              `json:"period_month"`
	PeriodYear   int              `json:"period_year"`
	PlanAmount   *decimal.Decimal `json:"plan_amount,omitempty"`
	ActualAmount *decimal.Decimal `json:"actual_amount,omitempty"`
	RealizedAt   *string          `json:"realized_at,omitempty"`

	ParsedRealizedAt *time.Time `json:"-"`
}

func (r *UpsertPaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.SubjectKind == "" {
		r.SubjectKind = string(SubjectParticipant)
	}
	if !SubjectKind(r.SubjectKind).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "subject_kind", Message: "must be 'participant' or 'expense_category'"})
	}
	if validator.IsEmpty(r.SubjectID) {
		errs = append(errs, validator.ValidationError{Field: "subject_id", Message: "is required"})
	}
	periodErrs := validator.PeriodErrors(r.PeriodMonth, r.PeriodYear)
	for _, e := range periodErrs {
		errs = append(errs, validator.ValidationError{Field: "period_" + e.Field, Message: e.Message})
	}
	if r.PlanAmount != nil && !validator.IsNonNegative(*r.PlanAmount) {
		errs = append(errs, validator.ValidationError{Field: "plan_amount", Message: "must be non-negative"})
	}
	if r.ActualAmount != nil && !validator.IsNonNegative(*r.ActualAmount) {
		errs = append(errs, validator.ValidationError{Field: "actual_amount", Message: "must be non-negative"})
	}
	if r.PlanAmount == nil && r.ActualAmount == nil {
		errs = append(errs, validator.ValidationError{Field: "plan_amount", Message: "plan_amount or actual_amount is required"})
	}
	if r.RealizedAt != nil {
		if date, ok := validator.IsValidDate(*r.RealizedAt); ok {
			r.ParsedRealizedAt = &date
		} else {
			errs = append(errs, validator.ValidationError{Field: "realized_at", Message: "must be in YYYY-MM-DD format"})
		}
	}

	if len(periodErrs) > 0 {
		return period.WithFieldErrors(errs)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PlanActualResponse struct {
	ID           string           `json:"id"`
	SubjectKind  string           `json:"subject_kind"`
	SubjectID    string           `json:"subject_id"`
	Category     string           `json:"category"`
	PeriodMonth  int              `json:"period_month"`
	PeriodYear   int              `json:"period_year"`
	PlanAmount   *decimal.Decimal `json:"plan_amount"`
	ActualAmount decimal.Decimal  `json:"actual_amount"`
	RealizedAt   *string          `json:"realized_at,omitempty"`
}

func NewPlanActualResponse(r PlanActualRecord) PlanActualResponse {
	resp := PlanActualResponse{
		ID:           r.ID,
		SubjectKind:  string(r.SubjectKind),
		SubjectID:    r.SubjectID,
		Category:     r.Category,
		PeriodMonth:  r.PeriodMonth,
		PeriodYear:   r.PeriodYear,
		PlanAmount:   r.PlanAmount,
		ActualAmount: r.ActualAmount,
	}
	if r.RealizedAt != nil {
		realizedAt := r.RealizedAt.Format("2006-01-02")
		resp.RealizedAt = &realizedAt
	}
	return resp
}

// AnnotatedPaymentResponse is one income row with its derived delinquency.
type AnnotatedPaymentResponse struct {
	RecordID     *string         `json:"record_id"` // nil for a scheduled month with no stored row
	SubjectID    string          `json:"subject_id"`
	SubjectName  string          `json:"subject_name"`
	ProgramID    string          `json:"program_id"`
	PeriodMonth  int             `json:"period_month"`
	PeriodYear   int             `json:"period_year"`
	PlanAmount   decimal.Decimal `json:"plan_amount"`
	PlanSource   string          `json:"plan_source"`
	ActualAmount decimal.Decimal `json:"actual_amount"`
	Outstanding  decimal.Decimal `json:"outstanding"`
	Status       string          `json:"status"`
	RealizedAt   *string         `json:"realized_at,omitempty"`
}

type ListPaymentsResponse struct {
	PeriodMonth int                        `json:"period_month"`
	PeriodYear  int                        `json:"period_year"`
	Rows        []AnnotatedPaymentResponse `json:"rows"`
	Counts      StatusCounts               `json:"counts"`
	Outstanding decimal.Decimal            `json:"outstanding"`
}

package expense

import (
	"time"

	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateExpenseRequest struct {
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate string          `json:"expense_date"`

	ParsedDate time.Time `json:"-"`
}

func (r *CreateExpenseRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than 0"})
	}
	if date, ok := validator.IsValidDate(r.ExpenseDate); ok {
		r.ParsedDate = date
	} else {
		errs = append(errs, validator.ValidationError{Field: "expense_date", Message: "must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CorrectExpenseRequest struct {
	ID          string           `json:"-"`
	Category    *string          `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	ExpenseDate *string          `json:"expense_date,omitempty"`
	Note        string           `json:"note"`

	ParsedDate *time.Time `json:"-"`
}

func (r *CorrectExpenseRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if validator.IsEmpty(r.Note) {
		errs = append(errs, validator.ValidationError{Field: "note", Message: "a correction note is required"})
	}
	if r.Amount != nil && !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than 0"})
	}
	if r.ExpenseDate != nil {
		if date, ok := validator.IsValidDate(*r.ExpenseDate); ok {
			r.ParsedDate = &date
		} else {
			errs = append(errs, validator.ValidationError{Field: "expense_date", Message: "must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListExpenseRequest struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Category string `json:"category"`
}

// ToFilter validates the query and converts it to a repository filter.
func (r ListExpenseRequest) ToFilter() (ExpenseFilter, error) {
	var (
		errs   validator.ValidationErrors
		filter ExpenseFilter
	)

	if r.From != "" {
		if date, ok := validator.IsValidDate(r.From); ok {
			filter.From = &date
		} else {
			errs = append(errs, validator.ValidationError{Field: "from", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if r.To != "" {
		if date, ok := validator.IsValidDate(r.To); ok {
			filter.To = &date
		} else {
			errs = append(errs, validator.ValidationError{Field: "to", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "must not be before from"})
	}
	if r.Category != "" {
		c := ExpenseCategory(r.Category)
		if !c.IsValid() {
			errs = append(errs, validator.ValidationError{Field: "category", Message: "unknown expense category"})
		}
		filter.Category = &c
	}

	if len(errs) > 0 {
		return ExpenseFilter{}, errs
	}
	return filter, nil
}

type ExpenseResponse struct {
	ID              string          `json:"id"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	ExpenseDate     string          `json:"expense_date"`
	PayrollRecordID *string         `json:"payroll_record_id,omitempty"`
	CorrectedAt     *string         `json:"corrected_at,omitempty"`
	CorrectionNote  *string         `json:"correction_note,omitempty"`
}

func NewExpenseResponse(r ExpenseRecord) ExpenseResponse {
	resp := ExpenseResponse{
		ID:              r.ID,
		Category:        string(r.Category),
		Description:     r.Description,
		Amount:          r.Amount,
		ExpenseDate:     r.ExpenseDate.Format("2006-01-02"),
		PayrollRecordID: r.PayrollRecordID,
		CorrectionNote:  r.CorrectionNote,
	}
	if r.CorrectedAt != nil {
		correctedAt := r.CorrectedAt.Format(time.RFC3339)
		resp.CorrectedAt = &correctedAt
	}
	return resp
}

type ListExpenseResponse struct {
	Data  []ExpenseResponse `json:"data"`
	Total decimal.Decimal   `json:"total"`
	Count int               `json:"count"`
}

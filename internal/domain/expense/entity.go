package expense

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseCategory string

const (
	CategorySalary    ExpenseCategory = "salary"
	CategoryRent      ExpenseCategory = "rent"
	CategoryUtilities ExpenseCategory = "utilities"
	CategoryMarketing ExpenseCategory = "marketing"
	CategorySupplies  ExpenseCategory = "supplies"
	CategoryEquipment ExpenseCategory = "equipment"
	CategoryTaxes     ExpenseCategory = "taxes"
	CategoryOther     ExpenseCategory = "other"
)

var Categories = []ExpenseCategory{
	CategorySalary,
	CategoryRent,
	CategoryUtilities,
	CategoryMarketing,
	CategorySupplies,
	CategoryEquipment,
	CategoryTaxes,
	CategoryOther,
}

func (c ExpenseCategory) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// NormalizeCategory maps unknown or empty input to CategoryOther.
func NormalizeCategory(s string) ExpenseCategory {
	c := ExpenseCategory(strings.ToLower(strings.TrimSpace(s)))
	if c.IsValid() {
		return c
	}
	return CategoryOther
}

// ExpenseRecord is immutable once booked except through Correct.
type ExpenseRecord struct {
	ID              string
	Category        ExpenseCategory
	Description     string
	Amount          decimal.Decimal
	ExpenseDate     time.Time
	PayrollRecordID *string
	CorrectedAt     *time.Time
	CorrectionNote  *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

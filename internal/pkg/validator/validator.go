package validator

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// UUIDv7 regex: version 7 (the 15th character must be '7'), all lowercase hex digits.
var uuidv7Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// UUIDv7 validation
func IsValidUUID(uuid string) bool {
	return uuidv7Regex.MatchString(strings.ToLower(uuid))
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// IsValidMonth checks the 1..12 calendar month range.
func IsValidMonth(month int) bool {
	return month >= 1 && month <= 12
}

// IsValidYear accepts years the ledger can hold.
func IsValidYear(year int) bool {
	return year >= 1970 && year <= 9999
}

// PeriodErrors returns the field errors for a month/year pair, if any.
func PeriodErrors(month, year int) ValidationErrors {
	var errs ValidationErrors
	if !IsValidMonth(month) {
		errs = append(errs, ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if !IsValidYear(year) {
		errs = append(errs, ValidationError{Field: "year", Message: "must be between 1970 and 9999"})
	}
	return errs
}

// IsNonNegative reports whether d is zero or positive.
func IsNonNegative(d decimal.Decimal) bool {
	return !d.IsNegative()
}

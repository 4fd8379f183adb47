package http

import (
	"strconv"
	"time"

	"github.com/cmlabs-hris/hris-finance-go/internal/domain/period"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/validator"
)

// Clock supplies "now" to the services. Handlers never read the wall clock directly.
type Clock func() time.Time

// intQuery parses an optional integer query value. ok is false when the value is
// present but not an integer.
func intQuery(raw string) (value *int, ok bool) {
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &n, true
}

// periodQuery reads the required month and year query parameters.
func periodQuery(monthStr, yearStr string) (period.Period, error) {
	var errs validator.ValidationErrors

	month, err := strconv.Atoi(monthStr)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month is required and must be an integer"})
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is required and must be an integer"})
	}
	if len(errs) > 0 {
		return period.Period{}, period.WithFieldErrors(errs)
	}

	if errs := validator.PeriodErrors(month, year); len(errs) > 0 {
		return period.Period{}, period.WithFieldErrors(errs)
	}
	return period.Period{Month: month, Year: year}, nil
}

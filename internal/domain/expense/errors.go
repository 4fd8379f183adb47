package expense

import "errors"

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrInvalidRange    = errors.New("expense date range is invalid")
)

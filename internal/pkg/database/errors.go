package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrStoreUnavailable marks failures of the record store itself. Callers
// do not retry; the whole operation fails.
var ErrStoreUnavailable = errors.New("record store unavailable")

const uniqueViolation = "23505"

// StoreError carries the failed operation and the driver error.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStoreUnavailable, e.Op, e.Err)
}

// Unwrap exposes both ErrStoreUnavailable and the cause to errors.Is / errors.As.
func (e *StoreError) Unwrap() []error {
	return []error{ErrStoreUnavailable, e.Err}
}

// Wrap returns nil for a nil err, otherwise a *StoreError.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// IsUniqueViolation reports whether err is a unique violation of the named constraint.
// An empty constraint matches any unique violation.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

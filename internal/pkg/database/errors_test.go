package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap("noop", nil))

	cause := errors.New("connection refused")
	err := fmt.Errorf("list payroll: %w", Wrap("query", cause))

	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, cause)

	var storeErr *StoreError
	assert.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "query", storeErr.Op)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uk_payroll_employee_period"}
	wrapped := fmt.Errorf("insert: %w", pgErr)

	assert.True(t, IsUniqueViolation(wrapped, "uk_payroll_employee_period"))
	assert.True(t, IsUniqueViolation(wrapped, ""))
	assert.False(t, IsUniqueViolation(wrapped, "uk_other"))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
	assert.False(t, IsUniqueViolation(errors.New("plain"), ""))
}

package memory

import (
	"context"

	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/database"
)

type transactor struct{}

// NewTransactor returns a Transactor that runs fn directly; the memory store has no rollback.
func NewTransactor() database.Transactor {
	return transactor{}
}

func (transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

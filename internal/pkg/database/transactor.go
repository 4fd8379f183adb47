package database

import "context"

// Transactor runs fn so that every store call made with the ctx it receives
// commits or rolls back together.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

package postgresql_test

import (
	"context"
	"fmt"
	"os"

	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-finance-go/internal/repository/postgresql"
)

// TestDatabaseSetup untuk menginisialisasi test database
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase membuat koneksi ke test database dan menjalankan migrasi.
// Returns nil without error when TEST_DATABASE_URL is not set.
func NewTestDatabase(ctx context.Context) (*TestDatabaseSetup, error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, nil
	}

	if err := postgresql.Migrate(dsn); err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolConfig{MaxConns: 5, MinConns: 1})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	return &TestDatabaseSetup{DB: db}, nil
}

// TruncateAllTables menghapus semua data dari tabel
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"expenses",
		"plan_actuals",
		"participants",
		"programs",
		"payroll_records",
		"attendances",
		"employees",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// Close menutup koneksi database
func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}

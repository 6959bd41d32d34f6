// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mmynk/messbook/internal/models"
	"github.com/mmynk/messbook/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Pragmas go in the DSN so every pooled connection enforces foreign keys.
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Snapshot reads the roster and one period's records inside a single transaction.
func (s *SQLiteStore) Snapshot(ctx context.Context, period models.Period) (*storage.Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	members, err := listMembers(ctx, tx)
	if err != nil {
		return nil, err
	}
	expenses, err := queryExpenses(ctx, tx, selectExpenses+" WHERE e.month = ? AND e.year = ? ORDER BY e.id",
		period.Month, period.Year)
	if err != nil {
		return nil, err
	}
	meals, err := queryMeals(ctx, tx, selectMeals+" WHERE ml.month = ? AND ml.year = ? ORDER BY ml.id",
		period.Month, period.Year)
	if err != nil {
		return nil, err
	}

	return &storage.Snapshot{
		Period:   period,
		Members:  members,
		Expenses: expenses,
		Meals:    meals,
	}, nil
}

// translateError maps SQLite constraint failures onto storage sentinels.
func translateError(err error, what string) error {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		code, msg := sqliteErr.Code(), sqliteErr.Error()
		switch {
		case code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY || strings.Contains(msg, "FOREIGN KEY"):
			return fmt.Errorf("%w: %s references an unknown member", storage.ErrNotFound, what)
		case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY ||
			strings.Contains(msg, "UNIQUE"):
			return fmt.Errorf("%w: %s: %v", storage.ErrConflict, what, err)
		}
	}
	return fmt.Errorf("failed to write %s: %w", what, err)
}

// expectOneRow turns a zero-row update or delete into storage.ErrNotFound.
func expectOneRow(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %d", storage.ErrNotFound, what, id)
	}
	return nil
}

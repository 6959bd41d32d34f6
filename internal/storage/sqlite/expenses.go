package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/messbook/internal/models"
	"github.com/mmynk/messbook/internal/storage"
)

const selectExpenses = `
	SELECT e.id, e.member_id, m.name, e.amount, e.description, e.month, e.year, e.created_at
	FROM expenses e
	JOIN members m ON m.id = e.member_id`

// CreateExpense persists a new expense and assigns its ID.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (member_id, amount, description, month, year, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		expense.MemberID, expense.Amount, expense.Description,
		expense.Period.Month, expense.Period.Year, expense.CreatedAt,
	)
	if err != nil {
		return translateError(err, "expense")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read expense id: %w", err)
	}
	expense.ID = id
	return nil
}

// GetExpense retrieves an expense by ID.
func (s *SQLiteStore) GetExpense(ctx context.Context, id int64) (*models.Expense, error) {
	expenses, err := queryExpenses(ctx, s.db, selectExpenses+" WHERE e.id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, fmt.Errorf("%w: expense %d", storage.ErrNotFound, id)
	}
	return &expenses[0], nil
}

// UpdateExpense changes the amount and description of an expense.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE expenses SET amount = ?, description = ? WHERE id = ?",
		expense.Amount, expense.Description, expense.ID,
	)
	if err != nil {
		return translateError(err, "expense")
	}
	return expectOneRow(res, "expense", expense.ID)
}

// DeleteExpense removes an expense by ID.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return expectOneRow(res, "expense", id)
}

// ListExpenses returns all expenses of a period, newest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, period models.Period) ([]models.Expense, error) {
	return queryExpenses(ctx, s.db,
		selectExpenses+" WHERE e.month = ? AND e.year = ? ORDER BY e.created_at DESC, e.id DESC",
		period.Month, period.Year,
	)
}

// ListMemberExpenses returns one member's expenses of a period, newest first.
func (s *SQLiteStore) ListMemberExpenses(ctx context.Context, memberID int64, period models.Period) ([]models.Expense, error) {
	return queryExpenses(ctx, s.db,
		selectExpenses+" WHERE e.member_id = ? AND e.month = ? AND e.year = ? ORDER BY e.created_at DESC, e.id DESC",
		memberID, period.Month, period.Year,
	)
}

func queryExpenses(ctx context.Context, q queryer, query string, args ...any) ([]models.Expense, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.MemberID, &e.MemberName, &e.Amount, &e.Description,
			&e.Period.Month, &e.Period.Year, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

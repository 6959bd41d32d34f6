package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/messbook/internal/models"
	"github.com/mmynk/messbook/internal/storage"
)

const selectMeals = `
	SELECT ml.id, ml.member_id, m.name, ml.date, ml.count, ml.month, ml.year, ml.created_at
	FROM meals ml
	JOIN members m ON m.id = ml.member_id`

// UpsertMeal records a meal count, replacing the count of an existing row for the
// same member and date. The row keeps its original ID and creation time.
func (s *SQLiteStore) UpsertMeal(ctx context.Context, meal *models.Meal) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO meals (member_id, date, count, month, year, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (member_id, date) DO UPDATE SET count = excluded.count
		 RETURNING id, created_at`,
		meal.MemberID, meal.Date, meal.Count, meal.Period.Month, meal.Period.Year, meal.CreatedAt,
	).Scan(&meal.ID, &meal.CreatedAt)
	if err != nil {
		return translateError(err, "meal")
	}
	return nil
}

// GetMeal retrieves a meal by ID.
func (s *SQLiteStore) GetMeal(ctx context.Context, id int64) (*models.Meal, error) {
	meals, err := queryMeals(ctx, s.db, selectMeals+" WHERE ml.id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		return nil, fmt.Errorf("%w: meal %d", storage.ErrNotFound, id)
	}
	return &meals[0], nil
}

// UpdateMeal changes the date and count of a meal.
func (s *SQLiteStore) UpdateMeal(ctx context.Context, meal *models.Meal) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE meals SET date = ?, count = ? WHERE id = ?",
		meal.Date, meal.Count, meal.ID,
	)
	if err != nil {
		return translateError(err, "meal")
	}
	return expectOneRow(res, "meal", meal.ID)
}

// DeleteMeal removes a meal by ID.
func (s *SQLiteStore) DeleteMeal(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM meals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}
	return expectOneRow(res, "meal", id)
}

// ListMeals returns all meals of a period, latest date first.
func (s *SQLiteStore) ListMeals(ctx context.Context, period models.Period) ([]models.Meal, error) {
	return queryMeals(ctx, s.db,
		selectMeals+" WHERE ml.month = ? AND ml.year = ? ORDER BY ml.date DESC, ml.created_at DESC, ml.id DESC",
		period.Month, period.Year,
	)
}

// ListMemberMeals returns one member's meals of a period by date.
func (s *SQLiteStore) ListMemberMeals(ctx context.Context, memberID int64, period models.Period) ([]models.Meal, error) {
	return queryMeals(ctx, s.db,
		selectMeals+" WHERE ml.member_id = ? AND ml.month = ? AND ml.year = ? ORDER BY ml.date ASC",
		memberID, period.Month, period.Year,
	)
}

func queryMeals(ctx context.Context, q queryer, query string, args ...any) ([]models.Meal, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query meals: %w", err)
	}
	defer rows.Close()

	meals := []models.Meal{}
	for rows.Next() {
		var m models.Meal
		if err := rows.Scan(&m.ID, &m.MemberID, &m.MemberName, &m.Date, &m.Count,
			&m.Period.Month, &m.Period.Year, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meals: %w", err)
	}

	return meals, nil
}

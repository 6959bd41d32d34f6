package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/messbook/internal/models"
)

// ListPeriods returns every month that has an expense or a meal, newest first.
func (s *SQLiteStore) ListPeriods(ctx context.Context) ([]models.Period, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT month, year FROM expenses
		UNION
		SELECT month, year FROM meals
		ORDER BY year DESC, month DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	defer rows.Close()

	periods := []models.Period{}
	for rows.Next() {
		var p models.Period
		if err := rows.Scan(&p.Month, &p.Year); err != nil {
			return nil, fmt.Errorf("failed to scan period: %w", err)
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate periods: %w", err)
	}

	return periods, nil
}

package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used for meals.
const DateLayout = "2006-01-02"

// Meal is the number of meals a member ate on one date.
// A member has at most one Meal per date; logging the same date again replaces the count.
type Meal struct {
	ID         int64
	MemberID   int64
	MemberName string // filled by listing queries

	// Date is a calendar date in DateLayout.
	Date string

	// Count is the number of meals eaten on Date.
	Count int

	// Period is derived from Date.
	Period Period

	CreatedAt int64
}

// NewMeal builds a meal for the given date, deriving its period.
func NewMeal(memberID int64, date string, count int) (*Meal, error) {
	period, err := PeriodOfDate(date)
	if err != nil {
		return nil, err
	}
	return &Meal{
		MemberID:  memberID,
		Date:      date,
		Count:     count,
		Period:    period,
		CreatedAt: time.Now().Unix(),
	}, nil
}

// PeriodOfDate parses a DateLayout date and returns its period.
func PeriodOfDate(date string) (Period, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return Period{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidRecord, date)
	}
	return PeriodOf(t), nil
}

// MaxMealsPerDay is the largest meal count accepted for one member on one date.
const MaxMealsPerDay = 10

// ValidateCount rejects meal counts outside 1..MaxMealsPerDay.
func ValidateCount(count int) error {
	if count < 1 {
		return fmt.Errorf("%w: meal count must be at least 1", ErrInvalidRecord)
	}
	if count > MaxMealsPerDay {
		return fmt.Errorf("%w: meal count must not exceed %d", ErrInvalidRecord, MaxMealsPerDay)
	}
	return nil
}

// Validate runs the ingestion checks for a new or edited meal.
func (m *Meal) Validate() error {
	if m.MemberID <= 0 {
		return fmt.Errorf("%w: meal needs a member", ErrInvalidRecord)
	}
	if err := ValidateCount(m.Count); err != nil {
		return err
	}
	period, err := PeriodOfDate(m.Date)
	if err != nil {
		return err
	}
	if period != m.Period {
		return fmt.Errorf("%w: date %s is outside period %s", ErrInvalidRecord, m.Date, m.Period)
	}
	return nil
}

package models

import (
	"fmt"
	"time"
)

// Period is an accounting month.
type Period struct {
	Month int
	Year  int
}

// NewPeriod returns a validated period.
func NewPeriod(month, year int) (Period, error) {
	p := Period{Month: month, Year: year}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Month: int(t.Month()), Year: t.Year()}
}

// ParsePeriod parses the YYYY-MM form produced by String.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("%w: period %q must be YYYY-MM", ErrInvalidRecord, s)
	}
	return PeriodOf(t), nil
}

// Validate checks the month and year ranges.
func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("%w: month %d must be between 1 and 12", ErrInvalidRecord, p.Month)
	}
	if p.Year < 1 || p.Year > 9999 {
		return fmt.Errorf("%w: year %d out of range", ErrInvalidRecord, p.Year)
	}
	return nil
}

// String formats the period as YYYY-MM.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

package models

import (
	"fmt"
	"math"
	"time"
)

// Expense is money a member spent for the household during a period.
type Expense struct {
	// ID is assigned by the store.
	ID int64

	// MemberID is the member who paid.
	MemberID int64

	// MemberName is filled in by listing queries for display. Not persisted.
	MemberName string

	// Amount is currency-agnostic.
	Amount float64

	// Description is optional free text.
	Description string

	// Period is fixed at creation.
	Period Period

	// CreatedAt is the Unix timestamp of creation.
	CreatedAt int64
}

// NewExpense builds an expense stamped with the current time.
func NewExpense(memberID int64, amount float64, description string, period Period) *Expense {
	return &Expense{
		MemberID:    memberID,
		Amount:      amount,
		Description: description,
		Period:      period,
		CreatedAt:   time.Now().Unix(),
	}
}

// MaxAmount is the largest single expense accepted. It keeps period totals far from
// float overflow.
const MaxAmount = 1e12

// ValidateAmount rejects amounts that are not finite and positive, or exceed MaxAmount.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: amount must be a finite number", ErrInvalidRecord)
	}
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be greater than zero", ErrInvalidRecord)
	}
	if amount > MaxAmount {
		return fmt.Errorf("%w: amount must not exceed %.0f", ErrInvalidRecord, MaxAmount)
	}
	return nil
}

// Validate runs the ingestion checks for a new or edited expense.
func (e *Expense) Validate() error {
	if e.MemberID <= 0 {
		return fmt.Errorf("%w: expense needs a member", ErrInvalidRecord)
	}
	if err := ValidateAmount(e.Amount); err != nil {
		return err
	}
	return e.Period.Validate()
}

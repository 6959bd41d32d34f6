// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/messbook/internal/models"
)

var (
	// ErrNotFound is returned when a record or its referenced member does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write would break a uniqueness constraint,
	// e.g. two meals for one member on the same date or two members with one name.
	ErrConflict = errors.New("conflict")
)

// Snapshot is a consistent view of one period, read in a single transaction.
type Snapshot struct {
	Period   models.Period
	Members  []models.Member
	Expenses []models.Expense
	Meals    []models.Meal
}

// MemberStore persists household members and administrators.
type MemberStore interface {
	// CreateMember persists a new member. member.ID is populated by the store.
	// Returns ErrConflict if the name is taken.
	CreateMember(ctx context.Context, member *models.Member) error

	// GetMember retrieves a member by ID.
	GetMember(ctx context.Context, id int64) (*models.Member, error)

	// GetMemberByName retrieves a member by their unique name.
	GetMemberByName(ctx context.Context, name string) (*models.Member, error)

	// ListMembers returns the full roster ordered by ID.
	ListMembers(ctx context.Context) ([]models.Member, error)

	// CreateAdmin persists a new administrator. Returns ErrConflict if the name is taken.
	CreateAdmin(ctx context.Context, admin *models.Admin) error

	// GetAdminByName retrieves an administrator by name.
	GetAdminByName(ctx context.Context, name string) (*models.Admin, error)
}

// LedgerStore persists expenses and meals.
type LedgerStore interface {
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, id int64) (*models.Expense, error)

	// UpdateExpense changes the amount and description of an existing expense.
	// The owner and period never change.
	UpdateExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, id int64) error

	// ListExpenses returns every expense of a period with member names, newest first.
	ListExpenses(ctx context.Context, period models.Period) ([]models.Expense, error)

	// ListMemberExpenses returns one member's expenses of a period, newest first.
	ListMemberExpenses(ctx context.Context, memberID int64, period models.Period) ([]models.Expense, error)

	// UpsertMeal records a member's meal count for a date, replacing any count
	// already logged for that member and date. meal.ID is populated by the store.
	UpsertMeal(ctx context.Context, meal *models.Meal) error
	GetMeal(ctx context.Context, id int64) (*models.Meal, error)

	// UpdateMeal changes the date and count of an existing meal.
	// Returns ErrConflict if the member already has a meal on the new date.
	UpdateMeal(ctx context.Context, meal *models.Meal) error
	DeleteMeal(ctx context.Context, id int64) error

	// ListMeals returns every meal of a period with member names, latest date first.
	ListMeals(ctx context.Context, period models.Period) ([]models.Meal, error)

	// ListMemberMeals returns one member's meals of a period by date ascending.
	ListMemberMeals(ctx context.Context, memberID int64, period models.Period) ([]models.Meal, error)

	// ListPeriods returns the periods that have any expense or meal, newest first.
	ListPeriods(ctx context.Context) ([]models.Period, error)
}

// Store defines the interface for all storage operations.
// This abstraction allows swapping storage backends without changing the service layer.
type Store interface {
	MemberStore
	LedgerStore

	// Snapshot reads the roster and the period's expenses and meals in one transaction.
	Snapshot(ctx context.Context, period models.Period) (*Snapshot, error)

	// Close releases any resources held by the store.
	Close() error
}

package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/messbook/internal/auth"
	"github.com/mmynk/messbook/internal/events"
	"github.com/mmynk/messbook/internal/metrics"
	"github.com/mmynk/messbook/internal/middleware"
	"github.com/mmynk/messbook/internal/models"
	"github.com/mmynk/messbook/internal/storage"
	"github.com/mmynk/messbook/pkg/api"
)

// LedgerService lets a logged-in member record expenses and meals and review their own entries.
// Every call acts on behalf of the member named by the session token.
type LedgerService struct {
	store     storage.LedgerStore
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

var _ api.LedgerServiceHandler = (*LedgerService)(nil)

// NewLedgerService creates a LedgerService. publisher and m may be nil.
func NewLedgerService(store storage.LedgerStore, publisher events.Publisher, m *metrics.Metrics, logger *slog.Logger) *LedgerService {
	return &LedgerService{
		store:     store,
		publisher: publisherOrNop(publisher),
		metrics:   m,
		logger:    logger,
	}
}

// caller returns the member the session token belongs to.
func caller(ctx context.Context) (*auth.Principal, error) {
	if middleware.GetMemberID(ctx) == 0 {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return middleware.GetPrincipal(ctx), nil
}

// AddExpense records an expense paid by the caller in the requested period.
func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	member, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	memberID := member.ID

	period, err := periodFromAPI(req.Msg.Period)
	if err != nil {
		return nil, invalidArgument(err)
	}

	expense := models.NewExpense(memberID, req.Msg.Amount, strings.TrimSpace(req.Msg.Description), period)
	if err := expense.Validate(); err != nil {
		return nil, invalidArgument(err)
	}
	expense.MemberName = member.Name

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, toConnectError(ctx, s.logger, "AddExpense", err)
	}
	s.metrics.RecordWritten("expense", "create")
	announce(ctx, s.logger, s.publisher, events.New(events.ExpenseAdded, expense.ID, memberID, period))

	s.logger.InfoContext(ctx, "Expense added", "expense_id", expense.ID, "member_id", memberID, "period", period)
	return connect.NewResponse(&api.AddExpenseResponse{Expense: expenseToAPI(expense)}), nil
}

// LogMeal sets the caller's meal count for a date. Logging the same date again
// replaces the earlier count.
func (s *LedgerService) LogMeal(ctx context.Context, req *connect.Request[api.LogMealRequest]) (*connect.Response[api.LogMealResponse], error) {
	member, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	memberID := member.ID

	meal, err := models.NewMeal(memberID, strings.TrimSpace(req.Msg.Date), req.Msg.Count)
	if err != nil {
		return nil, invalidArgument(err)
	}
	if err := meal.Validate(); err != nil {
		return nil, invalidArgument(err)
	}
	meal.MemberName = member.Name

	if err := s.store.UpsertMeal(ctx, meal); err != nil {
		return nil, toConnectError(ctx, s.logger, "LogMeal", err)
	}
	s.metrics.RecordWritten("meal", "upsert")
	announce(ctx, s.logger, s.publisher, events.New(events.MealLogged, meal.ID, memberID, meal.Period))

	s.logger.InfoContext(ctx, "Meal logged", "meal_id", meal.ID, "member_id", memberID, "date", meal.Date, "count", meal.Count)
	return connect.NewResponse(&api.LogMealResponse{Meal: mealToAPI(meal)}), nil
}

// GetMemberData returns the caller's expenses (newest first) and meals (by date) for a period.
func (s *LedgerService) GetMemberData(ctx context.Context, req *connect.Request[api.GetMemberDataRequest]) (*connect.Response[api.GetMemberDataResponse], error) {
	member, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	memberID := member.ID

	period, err := periodFromAPI(req.Msg.Period)
	if err != nil {
		return nil, invalidArgument(err)
	}

	expenses, err := s.store.ListMemberExpenses(ctx, memberID, period)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "GetMemberData", err)
	}
	meals, err := s.store.ListMemberMeals(ctx, memberID, period)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "GetMemberData", err)
	}

	return connect.NewResponse(&api.GetMemberDataResponse{
		Expenses: expensesToAPI(expenses),
		Meals:    mealsToAPI(meals),
	}), nil
}

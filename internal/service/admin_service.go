package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/messbook/internal/auth"
	"github.com/mmynk/messbook/internal/calculator"
	"github.com/mmynk/messbook/internal/events"
	"github.com/mmynk/messbook/internal/metrics"
	"github.com/mmynk/messbook/internal/models"
	"github.com/mmynk/messbook/internal/storage"
	"github.com/mmynk/messbook/pkg/api"
)

// AdminService implements the administrator RPCs: the monthly summary, record
// corrections and roster management.
type AdminService struct {
	store         storage.Store
	authenticator auth.Authenticator
	publisher     events.Publisher
	metrics       *metrics.Metrics
	logger        *slog.Logger
}

var _ api.AdminServiceHandler = (*AdminService)(nil)

// NewAdminService creates an AdminService. publisher and m may be nil.
func NewAdminService(store storage.Store, authenticator auth.Authenticator, publisher events.Publisher, m *metrics.Metrics, logger *slog.Logger) *AdminService {
	return &AdminService{
		store:         store,
		authenticator: authenticator,
		publisher:     publisherOrNop(publisher),
		metrics:       m,
		logger:        logger,
	}
}

// Summarize computes the settlement of a period from one consistent read of the store.
func Summarize(ctx context.Context, store storage.Store, period models.Period) (*models.SettlementReport, error) {
	snap, err := store.Snapshot(ctx, period)
	if err != nil {
		return nil, err
	}
	report := calculator.ComputeSettlement(snap.Members, snap.Expenses, snap.Meals)
	report.Period = period
	return report, nil
}

// GetSummary returns the settlement report of a period with suggested transfers.
func (s *AdminService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	period, err := periodFromAPI(req.Msg.Period)
	if err != nil {
		return nil, invalidArgument(err)
	}

	report, err := Summarize(ctx, s.store, period)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "GetSummary", err)
	}
	s.metrics.SettlementComputed()

	s.logger.DebugContext(ctx, "Settlement computed",
		"period", period.String(),
		"members", len(report.Entries),
		"total_expenses", report.TotalExpenses,
		"total_meals", report.TotalMeals,
		"per_meal_price", report.PerMealPrice,
	)
	return connect.NewResponse(summaryToAPI(report, calculator.SuggestTransfers(report))), nil
}

// ListExpenses returns every expense of a period, newest first.
func (s *AdminService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	period, err := periodFromAPI(req.Msg.Period)
	if err != nil {
		return nil, invalidArgument(err)
	}
	expenses, err := s.store.ListExpenses(ctx, period)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "ListExpenses", err)
	}
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: expensesToAPI(expenses)}), nil
}

// ListMeals returns every meal of a period, latest date first.
func (s *AdminService) ListMeals(ctx context.Context, req *connect.Request[api.ListMealsRequest]) (*connect.Response[api.ListMealsResponse], error) {
	period, err := periodFromAPI(req.Msg.Period)
	if err != nil {
		return nil, invalidArgument(err)
	}
	meals, err := s.store.ListMeals(ctx, period)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "ListMeals", err)
	}
	return connect.NewResponse(&api.ListMealsResponse{Meals: mealsToAPI(meals)}), nil
}

// UpdateExpense corrects the amount and description of an expense.
func (s *AdminService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "UpdateExpense", err)
	}

	expense.Amount = req.Msg.Amount
	expense.Description = strings.TrimSpace(req.Msg.Description)
	if err := expense.Validate(); err != nil {
		return nil, invalidArgument(err)
	}

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		return nil, toConnectError(ctx, s.logger, "UpdateExpense", err)
	}
	s.metrics.RecordWritten("expense", "update")
	announce(ctx, s.logger, s.publisher, events.New(events.ExpenseUpdated, expense.ID, expense.MemberID, expense.Period))

	s.logger.InfoContext(ctx, "Expense updated", "expense_id", expense.ID, "amount", expense.Amount)
	return connect.NewResponse(&api.UpdateExpenseResponse{Expense: expenseToAPI(expense)}), nil
}

// DeleteExpense removes an expense.
func (s *AdminService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "DeleteExpense", err)
	}
	if err := s.store.DeleteExpense(ctx, expense.ID); err != nil {
		return nil, toConnectError(ctx, s.logger, "DeleteExpense", err)
	}
	s.metrics.RecordWritten("expense", "delete")
	announce(ctx, s.logger, s.publisher, events.New(events.ExpenseDeleted, expense.ID, expense.MemberID, expense.Period))

	s.logger.InfoContext(ctx, "Expense deleted", "expense_id", expense.ID)
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// UpdateMeal corrects the date and count of a meal. The new date must fall in the
// meal's period, and the member must not already have a meal on it.
func (s *AdminService) UpdateMeal(ctx context.Context, req *connect.Request[api.UpdateMealRequest]) (*connect.Response[api.UpdateMealResponse], error) {
	meal, err := s.store.GetMeal(ctx, req.Msg.MealID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "UpdateMeal", err)
	}

	meal.Date = strings.TrimSpace(req.Msg.Date)
	meal.Count = req.Msg.Count
	if err := meal.Validate(); err != nil {
		return nil, invalidArgument(err)
	}

	if err := s.store.UpdateMeal(ctx, meal); err != nil {
		return nil, toConnectError(ctx, s.logger, "UpdateMeal", err)
	}
	s.metrics.RecordWritten("meal", "update")
	announce(ctx, s.logger, s.publisher, events.New(events.MealUpdated, meal.ID, meal.MemberID, meal.Period))

	s.logger.InfoContext(ctx, "Meal updated", "meal_id", meal.ID, "date", meal.Date, "count", meal.Count)
	return connect.NewResponse(&api.UpdateMealResponse{Meal: mealToAPI(meal)}), nil
}

// DeleteMeal removes a meal.
func (s *AdminService) DeleteMeal(ctx context.Context, req *connect.Request[api.DeleteMealRequest]) (*connect.Response[api.DeleteMealResponse], error) {
	meal, err := s.store.GetMeal(ctx, req.Msg.MealID)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "DeleteMeal", err)
	}
	if err := s.store.DeleteMeal(ctx, meal.ID); err != nil {
		return nil, toConnectError(ctx, s.logger, "DeleteMeal", err)
	}
	s.metrics.RecordWritten("meal", "delete")
	announce(ctx, s.logger, s.publisher, events.New(events.MealDeleted, meal.ID, meal.MemberID, meal.Period))

	s.logger.InfoContext(ctx, "Meal deleted", "meal_id", meal.ID)
	return connect.NewResponse(&api.DeleteMealResponse{}), nil
}

// ListPeriods returns the periods that have any data, newest first.
func (s *AdminService) ListPeriods(ctx context.Context, req *connect.Request[api.ListPeriodsRequest]) (*connect.Response[api.ListPeriodsResponse], error) {
	periods, err := s.store.ListPeriods(ctx)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "ListPeriods", err)
	}
	out := make([]api.Period, 0, len(periods))
	for _, p := range periods {
		out = append(out, periodToAPI(p))
	}
	return connect.NewResponse(&api.ListPeriodsResponse{Periods: out}), nil
}

// ListMembers returns the roster ordered by ID.
func (s *AdminService) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	members, err := s.store.ListMembers(ctx)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "ListMembers", err)
	}
	out := make([]*api.Member, 0, len(members))
	for i := range members {
		out = append(out, memberToAPI(&members[i]))
	}
	return connect.NewResponse(&api.ListMembersResponse{Members: out}), nil
}

// CreateMember adds a member to the roster.
func (s *AdminService) CreateMember(ctx context.Context, req *connect.Request[api.CreateMemberRequest]) (*connect.Response[api.CreateMemberResponse], error) {
	member, err := s.authenticator.RegisterMember(ctx, req.Msg.Name, req.Msg.Passcode)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, "CreateMember", err)
	}
	s.metrics.RecordWritten("member", "create")
	announce(ctx, s.logger, s.publisher, events.New(events.MemberCreated, member.ID, member.ID, models.PeriodOf(time.Unix(member.CreatedAt, 0))))

	s.logger.InfoContext(ctx, "Member created", "member_id", member.ID, "name", member.Name)
	return connect.NewResponse(&api.CreateMemberResponse{Member: memberToAPI(member)}), nil
}

// Package api defines the messbook RPC messages, procedure names, handler constructors
// and clients for the Connect protocol.
package api

// Period identifies an accounting month.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Member is a roster entry as shown to clients.
type Member struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at,omitempty"`
}

// Expense is an expense record.
type Expense struct {
	ID          int64   `json:"id"`
	MemberID    int64   `json:"member_id"`
	MemberName  string  `json:"member_name,omitempty"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Period      Period  `json:"period"`
	CreatedAt   int64   `json:"created_at"`
}

// Meal is a meal record.
type Meal struct {
	ID         int64  `json:"id"`
	MemberID   int64  `json:"member_id"`
	MemberName string `json:"member_name,omitempty"`
	Date       string `json:"date"`
	Count      int    `json:"count"`
	Period     Period `json:"period"`
	CreatedAt  int64  `json:"created_at"`
}

// SettlementEntry is one member's line of a settlement.
type SettlementEntry struct {
	MemberID      int64   `json:"member_id"`
	MemberName    string  `json:"member_name"`
	TotalExpenses float64 `json:"total_expenses"`
	TotalMeals    int     `json:"total_meals"`
	MealCost      float64 `json:"meal_cost"`
	Balance       float64 `json:"balance"`
}

// Transfer is a suggested payment that clears part of the settlement.
type Transfer struct {
	FromMemberID int64   `json:"from_member_id"`
	ToMemberID   int64   `json:"to_member_id"`
	Amount       float64 `json:"amount"`
}

// Auth

type LoginRequest struct {
	Name     string `json:"name"`
	Passcode string `json:"passcode"`
}

type LoginResponse struct {
	Token  string  `json:"token"`
	Member *Member `json:"member,omitempty"`
}

type AdminLoginRequest struct {
	Name     string `json:"name"`
	Passcode string `json:"passcode"`
}

type AdminLoginResponse struct {
	Token string `json:"token"`
}

// Ledger

type AddExpenseRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Period      Period  `json:"period"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type LogMealRequest struct {
	// Date is YYYY-MM-DD. The period is derived from it.
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type LogMealResponse struct {
	Meal *Meal `json:"meal"`
}

type GetMemberDataRequest struct {
	Period Period `json:"period"`
}

type GetMemberDataResponse struct {
	Expenses []*Expense `json:"expenses"`
	Meals    []*Meal    `json:"meals"`
}

// Admin

type GetSummaryRequest struct {
	Period Period `json:"period"`
}

type GetSummaryResponse struct {
	Period        Period             `json:"period"`
	Members       []*SettlementEntry `json:"members"`
	TotalExpenses float64            `json:"total_expenses"`
	TotalMeals    int                `json:"total_meals"`
	CostPerMeal   float64            `json:"cost_per_meal"`
	Transfers     []*Transfer        `json:"transfers"`
}

type ListExpensesRequest struct {
	Period Period `json:"period"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type ListMealsRequest struct {
	Period Period `json:"period"`
}

type ListMealsResponse struct {
	Meals []*Meal `json:"meals"`
}

type UpdateExpenseRequest struct {
	ExpenseID   int64   `json:"expense_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type UpdateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ExpenseID int64 `json:"expense_id"`
}

type DeleteExpenseResponse struct{}

type UpdateMealRequest struct {
	MealID int64  `json:"meal_id"`
	Date   string `json:"date"`
	Count  int    `json:"count"`
}

type UpdateMealResponse struct {
	Meal *Meal `json:"meal"`
}

type DeleteMealRequest struct {
	MealID int64 `json:"meal_id"`
}

type DeleteMealResponse struct{}

type ListPeriodsRequest struct{}

type ListPeriodsResponse struct {
	Periods []Period `json:"periods"`
}

type ListMembersRequest struct{}

type ListMembersResponse struct {
	Members []*Member `json:"members"`
}

type CreateMemberRequest struct {
	Name     string `json:"name"`
	Passcode string `json:"passcode"`
}

type CreateMemberResponse struct {
	Member *Member `json:"member"`
}

package models

// SettlementEntry is one member's line in the monthly settlement.
type SettlementEntry struct {
	MemberID   int64
	MemberName string

	// TotalExpenses is what the member paid during the period.
	TotalExpenses float64

	// TotalMeals is how many meals the member ate during the period.
	TotalMeals int

	// MealCost is TotalMeals × per-meal price.
	MealCost float64

	// Balance is TotalExpenses − MealCost.
	// Positive = the household owes the member, negative = the member owes the household.
	Balance float64
}

// SettlementReport is the settlement for one period. It is derived, never persisted.
type SettlementReport struct {
	Period Period

	// Entries are ordered by member ID ascending.
	Entries []SettlementEntry

	TotalExpenses float64
	TotalMeals    int

	// PerMealPrice is TotalExpenses / TotalMeals, or 0 when no meals were logged.
	PerMealPrice float64
}

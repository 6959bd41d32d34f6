package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/messbook/internal/models"
)

const tolerance = 1e-9

func roster(ids ...int64) []models.Member {
	members := make([]models.Member, len(ids))
	for i, id := range ids {
		members[i] = models.Member{ID: id, Name: "M" + string(rune('0'+id))}
	}
	return members
}

func expense(memberID int64, amount float64) models.Expense {
	return models.Expense{MemberID: memberID, Amount: amount}
}

func meal(memberID int64, count int) models.Meal {
	return models.Meal{MemberID: memberID, Count: count}
}

func TestComputeSettlement(t *testing.T) {
	tests := []struct {
		name         string
		members      []models.Member
		expenses     []models.Expense
		meals        []models.Meal
		wantPrice    float64
		wantExpenses float64
		wantMeals    int
		wantEntries  []models.SettlementEntry
	}{
		{
			name:         "one payer, shared meals",
			members:      roster(1, 2),
			expenses:     []models.Expense{expense(1, 100)},
			meals:        []models.Meal{meal(1, 2), meal(2, 2)},
			wantPrice:    25,
			wantExpenses: 100,
			wantMeals:    4,
			wantEntries: []models.SettlementEntry{
				{MemberID: 1, MemberName: "M1", TotalExpenses: 100, TotalMeals: 2, MealCost: 50, Balance: 50},
				{MemberID: 2, MemberName: "M2", TotalExpenses: 0, TotalMeals: 2, MealCost: 50, Balance: -50},
			},
		},
		{
			name:    "no activity",
			members: roster(1, 2),
			wantEntries: []models.SettlementEntry{
				{MemberID: 1, MemberName: "M1"},
				{MemberID: 2, MemberName: "M2"},
			},
		},
		{
			name:         "expenses without meals keep the full balance",
			members:      roster(1),
			expenses:     []models.Expense{expense(1, 50)},
			wantExpenses: 50,
			wantEntries: []models.SettlementEntry{
				{MemberID: 1, MemberName: "M1", TotalExpenses: 50, Balance: 50},
			},
		},
		{
			name:         "entries sorted by member id",
			members:      roster(3, 1, 2),
			expenses:     []models.Expense{expense(3, 30)},
			meals:        []models.Meal{meal(1, 1), meal(2, 1), meal(3, 1)},
			wantPrice:    10,
			wantExpenses: 30,
			wantMeals:    3,
			wantEntries: []models.SettlementEntry{
				{MemberID: 1, MemberName: "M1", TotalMeals: 1, MealCost: 10, Balance: -10},
				{MemberID: 2, MemberName: "M2", TotalMeals: 1, MealCost: 10, Balance: -10},
				{MemberID: 3, MemberName: "M3", TotalExpenses: 30, TotalMeals: 1, MealCost: 10, Balance: 20},
			},
		},
		{
			name:         "negative amounts flow through unvalidated",
			members:      roster(1, 2),
			expenses:     []models.Expense{expense(1, 40), expense(2, -20)},
			meals:        []models.Meal{meal(1, 1), meal(2, 1)},
			wantPrice:    10,
			wantExpenses: 20,
			wantMeals:    2,
			wantEntries: []models.SettlementEntry{
				{MemberID: 1, MemberName: "M1", TotalExpenses: 40, TotalMeals: 1, MealCost: 10, Balance: 30},
				{MemberID: 2, MemberName: "M2", TotalExpenses: -20, TotalMeals: 1, MealCost: 10, Balance: -30},
			},
		},
		{
			name:         "records of members off the roster are ignored",
			members:      roster(1, 2),
			expenses:     []models.Expense{expense(1, 100), expense(9, 500)},
			meals:        []models.Meal{meal(1, 2), meal(2, 2), meal(9, 6)},
			wantPrice:    25,
			wantExpenses: 100,
			wantMeals:    4,
			wantEntries: []models.SettlementEntry{
				{MemberID: 1, MemberName: "M1", TotalExpenses: 100, TotalMeals: 2, MealCost: 50, Balance: 50},
				{MemberID: 2, MemberName: "M2", TotalExpenses: 0, TotalMeals: 2, MealCost: 50, Balance: -50},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := ComputeSettlement(tt.members, tt.expenses, tt.meals)
			require.NotNil(t, report)

			assert.InDelta(t, tt.wantPrice, report.PerMealPrice, tolerance)
			assert.InDelta(t, tt.wantExpenses, report.TotalExpenses, tolerance)
			assert.Equal(t, tt.wantMeals, report.TotalMeals)
			require.Len(t, report.Entries, len(tt.wantEntries))

			for i, want := range tt.wantEntries {
				got := report.Entries[i]
				assert.Equal(t, want.MemberID, got.MemberID)
				assert.Equal(t, want.MemberName, got.MemberName)
				assert.InDelta(t, want.TotalExpenses, got.TotalExpenses, tolerance)
				assert.Equal(t, want.TotalMeals, got.TotalMeals)
				assert.InDelta(t, want.MealCost, got.MealCost, tolerance)
				assert.InDelta(t, want.Balance, got.Balance, tolerance)
			}
		})
	}
}

func TestComputeSettlement_EmptyRoster(t *testing.T) {
	report := ComputeSettlement(nil, []models.Expense{expense(1, 10)}, []models.Meal{meal(1, 1)})

	assert.Empty(t, report.Entries)
	assert.Zero(t, report.TotalExpenses)
	assert.Zero(t, report.TotalMeals)
	assert.Zero(t, report.PerMealPrice)
}

func TestComputeSettlement_Properties(t *testing.T) {
	members := roster(1, 2, 3, 4)
	expenses := []models.Expense{
		expense(1, 123.45), expense(2, 67.89), expense(1, 0.1), expense(4, 999.99), expense(3, 13.37),
	}
	meals := []models.Meal{
		meal(1, 2), meal(2, 3), meal(3, 1), meal(4, 2), meal(1, 1), meal(3, 3), meal(2, 1),
	}

	report := ComputeSettlement(members, expenses, meals)

	var sumExpenses, sumBalance float64
	var sumMeals int
	for _, e := range report.Entries {
		sumExpenses += e.TotalExpenses
		sumMeals += e.TotalMeals
		sumBalance += e.Balance
	}

	assert.InDelta(t, report.TotalExpenses, sumExpenses, tolerance, "member expenses should add up to the total")
	assert.Equal(t, report.TotalMeals, sumMeals, "member meals should add up to the total")
	assert.InDelta(t, 0, sumBalance, tolerance, "settlement should be zero-sum when meals were logged")

	again := ComputeSettlement(members, expenses, meals)
	assert.Equal(t, report, again, "identical input should give identical output")
}

func TestComputeSettlement_OffRosterRecordsKeepSumsEqualToTotals(t *testing.T) {
	members := roster(1, 2)
	expenses := []models.Expense{expense(1, 40), expense(3, 75), expense(2, 20)}
	meals := []models.Meal{meal(3, 4), meal(1, 1), meal(2, 2)}

	report := ComputeSettlement(members, expenses, meals)

	var sumExpenses, sumBalance float64
	var sumMeals int
	for _, e := range report.Entries {
		sumExpenses += e.TotalExpenses
		sumMeals += e.TotalMeals
		sumBalance += e.Balance
	}

	assert.InDelta(t, 60, report.TotalExpenses, tolerance)
	assert.Equal(t, 3, report.TotalMeals)
	assert.InDelta(t, report.TotalExpenses, sumExpenses, tolerance)
	assert.Equal(t, report.TotalMeals, sumMeals)
	assert.InDelta(t, 0, sumBalance, tolerance)
}

func TestComputeSettlement_ZeroMealsBalanceEqualsExpenses(t *testing.T) {
	members := roster(1, 2)
	expenses := []models.Expense{expense(1, 10), expense(2, 32.5)}

	report := ComputeSettlement(members, expenses, nil)

	assert.Zero(t, report.PerMealPrice)
	var sumBalance float64
	for _, e := range report.Entries {
		assert.Equal(t, e.TotalExpenses, e.Balance)
		sumBalance += e.Balance
	}
	assert.InDelta(t, report.TotalExpenses, sumBalance, tolerance)
}

func TestComputeSettlement_DoesNotReorderInput(t *testing.T) {
	members := roster(2, 1)

	ComputeSettlement(members, nil, nil)

	assert.Equal(t, int64(2), members[0].ID)
	assert.Equal(t, int64(1), members[1].ID)
}

func TestComputeSettlement_NonFinitePriceNotProduced(t *testing.T) {
	report := ComputeSettlement(roster(1), []models.Expense{expense(1, 10)}, []models.Meal{})

	assert.False(t, math.IsNaN(report.PerMealPrice))
	assert.False(t, math.IsInf(report.PerMealPrice, 0))
}

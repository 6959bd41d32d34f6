package service

import (
	"github.com/mmynk/messbook/internal/calculator"
	"github.com/mmynk/messbook/internal/models"
	"github.com/mmynk/messbook/pkg/api"
)

// periodFromAPI validates a requested period.
func periodFromAPI(p api.Period) (models.Period, error) {
	return models.NewPeriod(p.Month, p.Year)
}

func periodToAPI(p models.Period) api.Period {
	return api.Period{Month: p.Month, Year: p.Year}
}

func memberToAPI(m *models.Member) *api.Member {
	return &api.Member{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt}
}

func expenseToAPI(e *models.Expense) *api.Expense {
	return &api.Expense{
		ID:          e.ID,
		MemberID:    e.MemberID,
		MemberName:  e.MemberName,
		Amount:      e.Amount,
		Description: e.Description,
		Period:      periodToAPI(e.Period),
		CreatedAt:   e.CreatedAt,
	}
}

func expensesToAPI(expenses []models.Expense) []*api.Expense {
	out := make([]*api.Expense, 0, len(expenses))
	for i := range expenses {
		out = append(out, expenseToAPI(&expenses[i]))
	}
	return out
}

func mealToAPI(m *models.Meal) *api.Meal {
	return &api.Meal{
		ID:         m.ID,
		MemberID:   m.MemberID,
		MemberName: m.MemberName,
		Date:       m.Date,
		Count:      m.Count,
		Period:     periodToAPI(m.Period),
		CreatedAt:  m.CreatedAt,
	}
}

func mealsToAPI(meals []models.Meal) []*api.Meal {
	out := make([]*api.Meal, 0, len(meals))
	for i := range meals {
		out = append(out, mealToAPI(&meals[i]))
	}
	return out
}

func summaryToAPI(report *models.SettlementReport, transfers []calculator.Transfer) *api.GetSummaryResponse {
	resp := &api.GetSummaryResponse{
		Period:        periodToAPI(report.Period),
		Members:       make([]*api.SettlementEntry, 0, len(report.Entries)),
		TotalExpenses: report.TotalExpenses,
		TotalMeals:    report.TotalMeals,
		CostPerMeal:   report.PerMealPrice,
		Transfers:     make([]*api.Transfer, 0, len(transfers)),
	}
	for _, e := range report.Entries {
		resp.Members = append(resp.Members, &api.SettlementEntry{
			MemberID:      e.MemberID,
			MemberName:    e.MemberName,
			TotalExpenses: e.TotalExpenses,
			TotalMeals:    e.TotalMeals,
			MealCost:      e.MealCost,
			Balance:       e.Balance,
		})
	}
	for _, t := range transfers {
		resp.Transfers = append(resp.Transfers, &api.Transfer{
			FromMemberID: t.FromMemberID,
			ToMemberID:   t.ToMemberID,
			Amount:       t.Amount,
		})
	}
	return resp
}

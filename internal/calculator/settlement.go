// Package calculator holds the pure settlement arithmetic.
package calculator

import (
	"sort"

	"github.com/mmynk/messbook/internal/models"
)

// ComputeSettlement apportions a period's shared expenses across the roster by meals eaten.
//
// Algorithm:
//   - per_meal_price = total_expenses / total_meals (0 when no meals were logged)
//   - meal_cost      = member_meals × per_meal_price
//   - balance        = member_expenses − meal_cost
//
// Every roster member gets an entry, ordered by ID ascending, even with no activity.
// Records of members outside the roster are ignored, so the entries always sum to the totals.
// Inputs are not validated: negative amounts or non-positive counts produce skewed but
// arithmetically consistent output. Input slices are never modified.
func ComputeSettlement(members []models.Member, expenses []models.Expense, meals []models.Meal) *models.SettlementReport {
	report := &models.SettlementReport{Entries: []models.SettlementEntry{}}
	if len(members) == 0 {
		return report
	}

	onRoster := make(map[int64]bool, len(members))
	for _, member := range members {
		onRoster[member.ID] = true
	}

	expensesByMember := make(map[int64]float64, len(members))
	for _, e := range expenses {
		if !onRoster[e.MemberID] {
			continue
		}
		report.TotalExpenses += e.Amount
		expensesByMember[e.MemberID] += e.Amount
	}

	mealsByMember := make(map[int64]int, len(members))
	for _, m := range meals {
		if !onRoster[m.MemberID] {
			continue
		}
		report.TotalMeals += m.Count
		mealsByMember[m.MemberID] += m.Count
	}

	if report.TotalMeals > 0 {
		report.PerMealPrice = report.TotalExpenses / float64(report.TotalMeals)
	}

	roster := make([]models.Member, len(members))
	copy(roster, members)
	sort.Slice(roster, func(i, j int) bool { return roster[i].ID < roster[j].ID })

	report.Entries = make([]models.SettlementEntry, 0, len(roster))
	for _, member := range roster {
		paid := expensesByMember[member.ID]
		eaten := mealsByMember[member.ID]
		cost := float64(eaten) * report.PerMealPrice
		report.Entries = append(report.Entries, models.SettlementEntry{
			MemberID:      member.ID,
			MemberName:    member.Name,
			TotalExpenses: paid,
			TotalMeals:    eaten,
			MealCost:      cost,
			Balance:       paid - cost,
		})
	}

	return report
}

package calculator

import (
	"sort"

	"github.com/mmynk/messbook/internal/models"
)

// settleEpsilon ignores floating point noise below one hundredth of a currency unit.
const settleEpsilon = 0.01

// Transfer is a payment one member should make to another to clear the period.
type Transfer struct {
	FromMemberID int64
	ToMemberID   int64
	Amount       float64
}

type position struct {
	memberID int64
	amount   float64
}

// SuggestTransfers turns settlement balances into payments from debtors to creditors.
//
// Debtors (negative balance) and creditors (positive balance) are each sorted by the
// size of their position, largest first, ties broken by member ID, and matched greedily.
// The result is deterministic for a given report. Balances smaller than one hundredth
// are treated as settled.
func SuggestTransfers(report *models.SettlementReport) []Transfer {
	var debtors, creditors []position
	for _, entry := range report.Entries {
		switch {
		case entry.Balance < -settleEpsilon:
			debtors = append(debtors, position{memberID: entry.MemberID, amount: -entry.Balance})
		case entry.Balance > settleEpsilon:
			creditors = append(creditors, position{memberID: entry.MemberID, amount: entry.Balance})
		}
	}
	byAmount := func(ps []position) func(i, j int) bool {
		return func(i, j int) bool {
			if ps[i].amount != ps[j].amount {
				return ps[i].amount > ps[j].amount
			}
			return ps[i].memberID < ps[j].memberID
		}
	}
	sort.Slice(debtors, byAmount(debtors))
	sort.Slice(creditors, byAmount(creditors))

	transfers := []Transfer{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := debtors[i].amount
		if creditors[j].amount < amount {
			amount = creditors[j].amount
		}

		if amount > settleEpsilon {
			transfers = append(transfers, Transfer{
				FromMemberID: debtors[i].memberID,
				ToMemberID:   creditors[j].memberID,
				Amount:       amount,
			})
		}

		debtors[i].amount -= amount
		creditors[j].amount -= amount

		if debtors[i].amount < settleEpsilon {
			i++
		}
		if creditors[j].amount < settleEpsilon {
			j++
		}
	}

	return transfers
}

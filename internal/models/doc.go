// Package models defines the core domain models for messbook.
//
// # Persisted Models
//
//   - Member: a household member who logs expenses and meals
//   - Admin: an administrator account, not part of the settlement roster
//   - Expense: money a member spent on behalf of the household in a period
//   - Meal: the number of meals a member ate on one date
//
// # Derived Models
//
//   - SettlementEntry / SettlementReport: the monthly settlement, recomputed on
//     every request and never stored
//
// Records reference members by ID. Expenses and meals belong to exactly one Period
// for their whole lifetime.
package models

package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dashboard is the aggregated overview shown on the home page.
// Monetary fields are already rounded for display.
type Dashboard struct {
	TotalBalance     decimal.Decimal
	MonthlyDelta     decimal.Decimal
	InvestmentValue  decimal.Decimal
	InvestmentReturn decimal.Decimal
	MonthlyExpense   decimal.Decimal
	Goals            int
	GoalsCompleted   int
}

// DashboardSummary computes the dashboard metrics from a snapshot of the
// ledger. The current month is the calendar month of now, in now's location.
func DashboardSummary(accounts []Account, transactions []Transaction, investments []Investment, goals []Goal, now time.Time) Dashboard {
	var d Dashboard

	for _, a := range accounts {
		d.TotalBalance = d.TotalBalance.Add(a.Balance)
	}

	expense := decimal.Zero
	for _, t := range transactions {
		if !InMonth(t.Date, now) {
			continue
		}
		d.MonthlyDelta = d.MonthlyDelta.Add(t.Amount)
		if t.Kind == Expense {
			expense = expense.Add(t.Amount)
		}
	}
	d.MonthlyExpense = expense.Abs()

	for _, inv := range investments {
		d.InvestmentValue = d.InvestmentValue.Add(inv.CurrentValue)
		d.InvestmentReturn = d.InvestmentReturn.Add(inv.Return)
	}

	d.Goals = len(goals)
	for _, g := range goals {
		if g.Completed {
			d.GoalsCompleted++
		}
	}

	d.TotalBalance = Round(d.TotalBalance)
	d.MonthlyDelta = Round(d.MonthlyDelta)
	d.MonthlyExpense = Round(d.MonthlyExpense)
	d.InvestmentValue = Round(d.InvestmentValue)
	d.InvestmentReturn = Round(d.InvestmentReturn)
	return d
}

// InMonth reports whether t falls in the same calendar month as ref,
// comparing both in ref's location.
func InMonth(t, ref time.Time) bool {
	t = t.In(ref.Location())
	return t.Year() == ref.Year() && t.Month() == ref.Month()
}

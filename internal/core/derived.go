package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrendMonths is the window of the income/expense chart.
const TrendMonths = 6

// MonthLabels are the chart labels, index 0 is January.
var MonthLabels = [12]string{"Gen", "Feb", "Mar", "Apr", "Mag", "Giu", "Lug", "Ago", "Set", "Ott", "Nov", "Dic"}

// Trend is a per-month income/expense series in chronological order.
// The three slices always have the same length.
type Trend struct {
	Labels  []string
	Income  []decimal.Decimal
	Expense []decimal.Decimal
}

// TrendSeries returns the last months calendar months ending with now's
// month. Months without activity are reported as zero.
func TrendSeries(transactions []Transaction, now time.Time, months int) Trend {
	tr := Trend{Labels: []string{}, Income: []decimal.Decimal{}, Expense: []decimal.Decimal{}}
	if months <= 0 {
		return tr
	}

	last := monthIndex(now.Year(), now.Month())
	first := last - months + 1

	income := make([]decimal.Decimal, months)
	expense := make([]decimal.Decimal, months)
	for _, t := range transactions {
		d := t.Date.In(now.Location())
		idx := monthIndex(d.Year(), d.Month())
		if idx < first || idx > last {
			continue
		}
		slot := idx - first
		switch t.Kind {
		case Income:
			income[slot] = income[slot].Add(t.Amount)
		case Expense:
			expense[slot] = expense[slot].Add(t.Amount.Abs())
		}
	}

	for i := 0; i < months; i++ {
		m := (first + i) % 12
		tr.Labels = append(tr.Labels, MonthLabels[m])
		tr.Income = append(tr.Income, Round(income[i]))
		tr.Expense = append(tr.Expense, Round(expense[i]))
	}
	return tr
}

// monthIndex numbers calendar months consecutively; index % 12 is the
// zero-based month.
func monthIndex(year int, month time.Month) int {
	return year*12 + int(month) - 1
}

// InvestmentReturnPercent is the stored return relative to the initial
// amount, rounded for display. A zero initial amount yields zero.
func InvestmentReturnPercent(inv Investment) decimal.Decimal {
	if inv.InitialAmount.IsZero() {
		return decimal.Zero
	}
	return Round(Percent(inv.Return, inv.InitialAmount))
}

// GoalProgress is the completion percentage of g, capped at 100.
func GoalProgress(g Goal) decimal.Decimal {
	if g.TargetAmount.IsZero() {
		return decimal.Zero
	}
	p := Percent(g.CurrentAmount, g.TargetAmount)
	if p.GreaterThan(hundred) {
		p = hundred
	}
	return Round(p)
}

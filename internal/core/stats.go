package core

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryStat aggregates the current month expenses of one category.
// Total is the absolute value of the summed amounts.
type CategoryStat struct {
	Category string
	Total    decimal.Decimal
	Count    int
}

// CategoryStats groups the expenses of now's month by category, ordered by
// ascending total. Categories with the same total are ordered by name so
// the output is stable.
func CategoryStats(transactions []Transaction, now time.Time) []CategoryStat {
	byCategory := make(map[string]*CategoryStat)
	for _, t := range transactions {
		if t.Kind != Expense || !InMonth(t.Date, now) {
			continue
		}
		s, ok := byCategory[t.Category]
		if !ok {
			s = &CategoryStat{Category: t.Category}
			byCategory[t.Category] = s
		}
		s.Total = s.Total.Add(t.Amount)
		s.Count++
	}

	out := make([]CategoryStat, 0, len(byCategory))
	for _, s := range byCategory {
		s.Total = Round(s.Total.Abs())
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c < 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

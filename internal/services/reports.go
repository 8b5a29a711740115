package services

import (
	"context"
	"fmt"
	"time"

	"financehub/internal/core"
)

// Dashboard loads the ledger snapshot the dashboard needs and derives the
// summary for the current month.
func (s *LedgerService) Dashboard(ctx context.Context) (core.Dashboard, error) {
	now := s.now()

	accounts, err := s.storage.Accounts(ctx)
	if err != nil {
		return core.Dashboard{}, fmt.Errorf("dashboard: %w", err)
	}
	transactions, err := s.storage.TransactionsSince(ctx, monthStart(now, 0))
	if err != nil {
		return core.Dashboard{}, fmt.Errorf("dashboard: %w", err)
	}
	investments, err := s.storage.Investments(ctx)
	if err != nil {
		return core.Dashboard{}, fmt.Errorf("dashboard: %w", err)
	}
	goals, err := s.storage.Goals(ctx)
	if err != nil {
		return core.Dashboard{}, fmt.Errorf("dashboard: %w", err)
	}

	return core.DashboardSummary(accounts, transactions, investments, goals, now), nil
}

// CategoryStats returns the current month expenses grouped by category.
func (s *LedgerService) CategoryStats(ctx context.Context) ([]core.CategoryStat, error) {
	now := s.now()
	transactions, err := s.storage.TransactionsSince(ctx, monthStart(now, 0))
	if err != nil {
		return nil, fmt.Errorf("category stats: %w", err)
	}
	return core.CategoryStats(transactions, now), nil
}

// Trend returns the income/expense series of the last core.TrendMonths months.
func (s *LedgerService) Trend(ctx context.Context) (core.Trend, error) {
	now := s.now()
	transactions, err := s.storage.TransactionsSince(ctx, monthStart(now, core.TrendMonths-1))
	if err != nil {
		return core.Trend{}, fmt.Errorf("trend: %w", err)
	}
	return core.TrendSeries(transactions, now, core.TrendMonths), nil
}

// monthStart returns midnight of the first day of the month monthsBack
// months before now's month, in now's location.
func monthStart(now time.Time, monthsBack int) time.Time {
	return time.Date(now.Year(), now.Month()-time.Month(monthsBack), 1, 0, 0, 0, 0, now.Location())
}

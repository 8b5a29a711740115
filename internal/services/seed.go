package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"financehub/internal/core"

	"github.com/shopspring/decimal"
)

// Seed fills an empty ledger with demo data. Everything goes through the
// regular operations, so balances stay consistent with the transactions.
// It reports false when the ledger already holds accounts.
func (s *LedgerService) Seed(ctx context.Context) (bool, error) {
	n, err := s.storage.CountAccounts(ctx)
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}
	if n > 0 {
		slog.InfoContext(ctx, "Ledger not empty, skipping seed", "accounts", n)
		return false, nil
	}

	d := decimal.RequireFromString
	at := func(month time.Month, day, hour, min int) time.Time {
		return time.Date(2025, month, day, hour, min, 0, 0, time.Local)
	}

	// Opening balances include the money later moved into the investments.
	checking, err := s.CreateAccount(ctx, core.NewAccount{Name: "Conto Corrente Principale", Type: "Conto Corrente", OpeningBalance: d("20420.50")})
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}
	savings, err := s.CreateAccount(ctx, core.NewAccount{Name: "Conto Risparmio", Type: "Conto Risparmio", OpeningBalance: d("20000.00")})
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}

	transactions := []core.NewTransaction{
		{AccountID: checking.ID, Kind: core.Expense, Category: "Shopping", Amount: d("89.90"), Description: "Abbigliamento", Date: at(time.January, 15, 14, 30)},
		{AccountID: checking.ID, Kind: core.Expense, Category: "Transport", Amount: d("35.50"), Description: "Rifornimento carburante", Date: at(time.January, 12, 9, 15)},
		{AccountID: checking.ID, Kind: core.Income, Category: "Stipendio", Amount: d("2500.00"), Description: "Stipendio mensile", Date: at(time.January, 1, 8, 0)},
		{AccountID: savings.ID, Kind: core.Income, Category: "Risparmio", Amount: d("500.00"), Description: "Trasferimento mensile", Date: at(time.January, 1, 10, 0)},
	}
	for _, t := range transactions {
		if _, err := s.CreateTransaction(ctx, t); err != nil {
			return false, fmt.Errorf("seed: %w", err)
		}
	}

	investments := []core.NewInvestment{
		{AccountID: checking.ID, Name: "Portafoglio Azionario", Type: "Azioni", InitialAmount: d("15000.00"), CurrentValue: d("19960.00")},
		{AccountID: savings.ID, Name: "Fondo Pensione", Type: "Fondo", InitialAmount: d("8000.00"), CurrentValue: d("8450.00")},
	}
	for _, inv := range investments {
		if _, err := s.CreateInvestment(ctx, inv); err != nil {
			return false, fmt.Errorf("seed: %w", err)
		}
	}

	goals := []core.NewGoal{
		{Title: "Vacanza estiva", Description: "Viaggio in Grecia", TargetAmount: d("3000.00"), CurrentAmount: d("1200.00")},
		{Title: "Fondo emergenza", Description: "Riserva per imprevisti", TargetAmount: d("5000.00"), CurrentAmount: d("5000.00")},
		{Title: "Nuovo laptop", Description: "MacBook Pro", TargetAmount: d("2500.00"), CurrentAmount: d("800.00")},
	}
	for _, g := range goals {
		if _, err := s.CreateGoal(ctx, g); err != nil {
			return false, fmt.Errorf("seed: %w", err)
		}
	}

	slog.InfoContext(ctx, "Seeded ledger with demo data",
		"accounts", 2,
		"transactions", len(transactions),
		"investments", len(investments),
		"goals", len(goals))
	return true, nil
}

package storage

import (
	"fmt"
	"time"

	"financehub/internal/core"

	"github.com/shopspring/decimal"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", s, err)
	}
	return t, nil
}

func parseDecimal(column, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse %s %q: %w", column, s, err)
	}
	return d, nil
}

func accountFromRow(row Account) (core.Account, error) {
	balance, err := parseDecimal("balance", row.Balance)
	if err != nil {
		return core.Account{}, err
	}
	createdAt, err := parseTime(row.CreatedAt)
	if err != nil {
		return core.Account{}, err
	}
	return core.Account{
		ID:        row.ID,
		Name:      row.Name,
		Type:      row.Type,
		Balance:   balance,
		CreatedAt: createdAt,
	}, nil
}

func transactionFromRow(row Transaction) (core.Transaction, error) {
	amount, err := parseDecimal("amount", row.Amount)
	if err != nil {
		return core.Transaction{}, err
	}
	date, err := parseTime(row.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		ID:          row.ID,
		AccountID:   row.AccountID,
		Kind:        core.Kind(row.Kind),
		Category:    row.Category,
		Amount:      amount,
		Description: row.Description,
		Date:        date,
	}, nil
}

func transactionsFromRows(rows []Transaction) ([]core.Transaction, error) {
	out := make([]core.Transaction, 0, len(rows))
	for _, row := range rows {
		t, err := transactionFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func investmentFromRow(row Investment) (core.Investment, error) {
	initial, err := parseDecimal("initial_amount", row.InitialAmount)
	if err != nil {
		return core.Investment{}, err
	}
	current, err := parseDecimal("current_value", row.CurrentValue)
	if err != nil {
		return core.Investment{}, err
	}
	ret, err := parseDecimal("return_amount", row.ReturnAmount)
	if err != nil {
		return core.Investment{}, err
	}
	start, err := parseTime(row.StartDate)
	if err != nil {
		return core.Investment{}, err
	}
	return core.Investment{
		ID:            row.ID,
		AccountID:     row.AccountID,
		Name:          row.Name,
		Type:          row.Type,
		InitialAmount: initial,
		CurrentValue:  current,
		Return:        ret,
		StartDate:     start,
	}, nil
}

func goalFromRow(row Goal) (core.Goal, error) {
	target, err := parseDecimal("target_amount", row.TargetAmount)
	if err != nil {
		return core.Goal{}, err
	}
	current, err := parseDecimal("current_amount", row.CurrentAmount)
	if err != nil {
		return core.Goal{}, err
	}
	createdAt, err := parseTime(row.CreatedAt)
	if err != nil {
		return core.Goal{}, err
	}
	return core.Goal{
		ID:            row.ID,
		Title:         row.Title,
		Description:   row.Description,
		TargetAmount:  target,
		CurrentAmount: current,
		Completed:     row.Completed,
		CreatedAt:     createdAt,
	}, nil
}

package storage

import (
	"context"
)

const createAccount = `-- name: CreateAccount :one
INSERT INTO accounts (name, type, balance, created_at)
VALUES (?, ?, ?, ?)
RETURNING id, name, type, balance, created_at
`

type CreateAccountParams struct {
	Name      string
	Type      string
	Balance   string
	CreatedAt string
}

func (q *Queries) CreateAccount(ctx context.Context, arg CreateAccountParams) (Account, error) {
	row := q.db.QueryRowContext(ctx, createAccount, arg.Name, arg.Type, arg.Balance, arg.CreatedAt)
	var i Account
	err := row.Scan(&i.ID, &i.Name, &i.Type, &i.Balance, &i.CreatedAt)
	return i, err
}

const getAccount = `-- name: GetAccount :one
SELECT id, name, type, balance, created_at FROM accounts WHERE id = ?
`

func (q *Queries) GetAccount(ctx context.Context, id int64) (Account, error) {
	row := q.db.QueryRowContext(ctx, getAccount, id)
	var i Account
	err := row.Scan(&i.ID, &i.Name, &i.Type, &i.Balance, &i.CreatedAt)
	return i, err
}

const listAccounts = `-- name: ListAccounts :many
SELECT id, name, type, balance, created_at FROM accounts
ORDER BY created_at DESC, id DESC
`

func (q *Queries) ListAccounts(ctx context.Context) ([]Account, error) {
	rows, err := q.db.QueryContext(ctx, listAccounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Account
	for rows.Next() {
		var i Account
		if err := rows.Scan(&i.ID, &i.Name, &i.Type, &i.Balance, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countAccounts = `-- name: CountAccounts :one
SELECT COUNT(*) FROM accounts
`

func (q *Queries) CountAccounts(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countAccounts)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const updateAccountBalance = `-- name: UpdateAccountBalance :execrows
UPDATE accounts SET balance = ? WHERE id = ?
`

type UpdateAccountBalanceParams struct {
	Balance string
	ID      int64
}

func (q *Queries) UpdateAccountBalance(ctx context.Context, arg UpdateAccountBalanceParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateAccountBalance, arg.Balance, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteAccount = `-- name: DeleteAccount :execrows
DELETE FROM accounts WHERE id = ?
`

func (q *Queries) DeleteAccount(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteAccount, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const createTransaction = `-- name: CreateTransaction :one
INSERT INTO transactions (account_id, kind, category, amount, description, date)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, account_id, kind, category, amount, description, date
`

type CreateTransactionParams struct {
	AccountID   int64
	Kind        string
	Category    string
	Amount      string
	Description string
	Date        string
}

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) (Transaction, error) {
	row := q.db.QueryRowContext(ctx, createTransaction,
		arg.AccountID, arg.Kind, arg.Category, arg.Amount, arg.Description, arg.Date)
	var i Transaction
	err := row.Scan(&i.ID, &i.AccountID, &i.Kind, &i.Category, &i.Amount, &i.Description, &i.Date)
	return i, err
}

const getTransaction = `-- name: GetTransaction :one
SELECT id, account_id, kind, category, amount, description, date FROM transactions WHERE id = ?
`

func (q *Queries) GetTransaction(ctx context.Context, id int64) (Transaction, error) {
	row := q.db.QueryRowContext(ctx, getTransaction, id)
	var i Transaction
	err := row.Scan(&i.ID, &i.AccountID, &i.Kind, &i.Category, &i.Amount, &i.Description, &i.Date)
	return i, err
}

const listTransactions = `-- name: ListTransactions :many
SELECT id, account_id, kind, category, amount, description, date FROM transactions
ORDER BY date DESC, id DESC
LIMIT ?
`

func (q *Queries) ListTransactions(ctx context.Context, limit int64) ([]Transaction, error) {
	return q.queryTransactions(ctx, listTransactions, limit)
}

const listTransactionsByAccount = `-- name: ListTransactionsByAccount :many
SELECT id, account_id, kind, category, amount, description, date FROM transactions
WHERE account_id = ?
ORDER BY date DESC, id DESC
`

func (q *Queries) ListTransactionsByAccount(ctx context.Context, accountID int64) ([]Transaction, error) {
	return q.queryTransactions(ctx, listTransactionsByAccount, accountID)
}

const listTransactionsSince = `-- name: ListTransactionsSince :many
SELECT id, account_id, kind, category, amount, description, date FROM transactions
WHERE date >= ?
ORDER BY date ASC, id ASC
`

func (q *Queries) ListTransactionsSince(ctx context.Context, since string) ([]Transaction, error) {
	return q.queryTransactions(ctx, listTransactionsSince, since)
}

func (q *Queries) queryTransactions(ctx context.Context, query string, args ...interface{}) ([]Transaction, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Transaction
	for rows.Next() {
		var i Transaction
		if err := rows.Scan(&i.ID, &i.AccountID, &i.Kind, &i.Category, &i.Amount, &i.Description, &i.Date); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countTransactionsByAccount = `-- name: CountTransactionsByAccount :one
SELECT COUNT(*) FROM transactions WHERE account_id = ?
`

func (q *Queries) CountTransactionsByAccount(ctx context.Context, accountID int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, countTransactionsByAccount, accountID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deleteTransaction = `-- name: DeleteTransaction :execrows
DELETE FROM transactions WHERE id = ?
`

func (q *Queries) DeleteTransaction(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteTransaction, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const createInvestment = `-- name: CreateInvestment :one
INSERT INTO investments (account_id, name, type, initial_amount, current_value, return_amount, start_date)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, account_id, name, type, initial_amount, current_value, return_amount, start_date
`

type CreateInvestmentParams struct {
	AccountID     int64
	Name          string
	Type          string
	InitialAmount string
	CurrentValue  string
	ReturnAmount  string
	StartDate     string
}

func (q *Queries) CreateInvestment(ctx context.Context, arg CreateInvestmentParams) (Investment, error) {
	row := q.db.QueryRowContext(ctx, createInvestment,
		arg.AccountID, arg.Name, arg.Type, arg.InitialAmount, arg.CurrentValue, arg.ReturnAmount, arg.StartDate)
	var i Investment
	err := row.Scan(&i.ID, &i.AccountID, &i.Name, &i.Type, &i.InitialAmount, &i.CurrentValue, &i.ReturnAmount, &i.StartDate)
	return i, err
}

const getInvestment = `-- name: GetInvestment :one
SELECT id, account_id, name, type, initial_amount, current_value, return_amount, start_date
FROM investments WHERE id = ?
`

func (q *Queries) GetInvestment(ctx context.Context, id int64) (Investment, error) {
	row := q.db.QueryRowContext(ctx, getInvestment, id)
	var i Investment
	err := row.Scan(&i.ID, &i.AccountID, &i.Name, &i.Type, &i.InitialAmount, &i.CurrentValue, &i.ReturnAmount, &i.StartDate)
	return i, err
}

const listInvestments = `-- name: ListInvestments :many
SELECT id, account_id, name, type, initial_amount, current_value, return_amount, start_date
FROM investments
ORDER BY start_date DESC, id DESC
`

func (q *Queries) ListInvestments(ctx context.Context) ([]Investment, error) {
	rows, err := q.db.QueryContext(ctx, listInvestments)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Investment
	for rows.Next() {
		var i Investment
		if err := rows.Scan(&i.ID, &i.AccountID, &i.Name, &i.Type, &i.InitialAmount, &i.CurrentValue, &i.ReturnAmount, &i.StartDate); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countInvestmentsByAccount = `-- name: CountInvestmentsByAccount :one
SELECT COUNT(*) FROM investments WHERE account_id = ?
`

func (q *Queries) CountInvestmentsByAccount(ctx context.Context, accountID int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, countInvestmentsByAccount, accountID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deleteInvestment = `-- name: DeleteInvestment :execrows
DELETE FROM investments WHERE id = ?
`

func (q *Queries) DeleteInvestment(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteInvestment, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const createGoal = `-- name: CreateGoal :one
INSERT INTO goals (title, description, target_amount, current_amount, completed, created_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, title, description, target_amount, current_amount, completed, created_at
`

type CreateGoalParams struct {
	Title         string
	Description   string
	TargetAmount  string
	CurrentAmount string
	Completed     bool
	CreatedAt     string
}

func (q *Queries) CreateGoal(ctx context.Context, arg CreateGoalParams) (Goal, error) {
	row := q.db.QueryRowContext(ctx, createGoal,
		arg.Title, arg.Description, arg.TargetAmount, arg.CurrentAmount, arg.Completed, arg.CreatedAt)
	var i Goal
	err := row.Scan(&i.ID, &i.Title, &i.Description, &i.TargetAmount, &i.CurrentAmount, &i.Completed, &i.CreatedAt)
	return i, err
}

const getGoal = `-- name: GetGoal :one
SELECT id, title, description, target_amount, current_amount, completed, created_at FROM goals WHERE id = ?
`

func (q *Queries) GetGoal(ctx context.Context, id int64) (Goal, error) {
	row := q.db.QueryRowContext(ctx, getGoal, id)
	var i Goal
	err := row.Scan(&i.ID, &i.Title, &i.Description, &i.TargetAmount, &i.CurrentAmount, &i.Completed, &i.CreatedAt)
	return i, err
}

const listGoals = `-- name: ListGoals :many
SELECT id, title, description, target_amount, current_amount, completed, created_at FROM goals
ORDER BY completed ASC, created_at DESC, id DESC
`

func (q *Queries) ListGoals(ctx context.Context) ([]Goal, error) {
	rows, err := q.db.QueryContext(ctx, listGoals)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Goal
	for rows.Next() {
		var i Goal
		if err := rows.Scan(&i.ID, &i.Title, &i.Description, &i.TargetAmount, &i.CurrentAmount, &i.Completed, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateGoalAmount = `-- name: UpdateGoalAmount :execrows
UPDATE goals SET current_amount = ?, completed = ? WHERE id = ?
`

type UpdateGoalAmountParams struct {
	CurrentAmount string
	Completed     bool
	ID            int64
}

func (q *Queries) UpdateGoalAmount(ctx context.Context, arg UpdateGoalAmountParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateGoalAmount, arg.CurrentAmount, arg.Completed, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteGoal = `-- name: DeleteGoal :execrows
DELETE FROM goals WHERE id = ?
`

func (q *Queries) DeleteGoal(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteGoal, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

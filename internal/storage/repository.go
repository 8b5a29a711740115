package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"financehub/internal/core"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// timeLayout is fixed width so that string order equals time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteRepository owns the connection pool of the ledger database.
// Its embedded Ledger runs statements outside any transaction; use WithTx
// for compound mutations.
type SQLiteRepository struct {
	db *sql.DB
	*Ledger
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := DSN(dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := RunMigrations(dsn); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:     db,
		Ledger: &Ledger{q: New(db)},
	}, nil
}

// DSN builds the modernc connection string: foreign keys on, writers wait
// on the lock instead of failing, and BEGIN takes the write lock upfront.
func DSN(dbPath string) string {
	return "file:" + dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks that the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// WithTx runs fn inside one database transaction. The transaction commits
// if fn returns nil and rolls back otherwise.
func (r *SQLiteRepository) WithTx(ctx context.Context, fn func(*Ledger) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(&Ledger{q: New(tx)}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Ledger exposes the ledger tables in domain types. It is bound either to
// the pool or to a single transaction.
type Ledger struct {
	q *Queries
}

func (l *Ledger) InsertAccount(ctx context.Context, name, typ string, createdAt time.Time) (core.Account, error) {
	row, err := l.q.CreateAccount(ctx, CreateAccountParams{
		Name:      name,
		Type:      typ,
		Balance:   decimal.Zero.String(),
		CreatedAt: formatTime(createdAt),
	})
	if err != nil {
		return core.Account{}, fmt.Errorf("create account: %w", err)
	}
	return accountFromRow(row)
}

func (l *Ledger) Account(ctx context.Context, id int64) (core.Account, error) {
	row, err := l.q.GetAccount(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Account{}, core.ErrAccountNotFound
	}
	if err != nil {
		return core.Account{}, fmt.Errorf("get account %d: %w", id, err)
	}
	return accountFromRow(row)
}

func (l *Ledger) Accounts(ctx context.Context) ([]core.Account, error) {
	rows, err := l.q.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	out := make([]core.Account, 0, len(rows))
	for _, row := range rows {
		a, err := accountFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (l *Ledger) CountAccounts(ctx context.Context) (int64, error) {
	n, err := l.q.CountAccounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return n, nil
}

// SetBalance overwrites the stored balance of an account.
func (l *Ledger) SetBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	n, err := l.q.UpdateAccountBalance(ctx, UpdateAccountBalanceParams{Balance: balance.String(), ID: id})
	if err != nil {
		return fmt.Errorf("update balance of account %d: %w", id, err)
	}
	if n == 0 {
		return core.ErrAccountNotFound
	}
	return nil
}

func (l *Ledger) DeleteAccount(ctx context.Context, id int64) error {
	n, err := l.q.DeleteAccount(ctx, id)
	if err != nil {
		return fmt.Errorf("delete account %d: %w", id, err)
	}
	if n == 0 {
		return core.ErrAccountNotFound
	}
	return nil
}

func (l *Ledger) InsertTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	row, err := l.q.CreateTransaction(ctx, CreateTransactionParams{
		AccountID:   t.AccountID,
		Kind:        string(t.Kind),
		Category:    t.Category,
		Amount:      t.Amount.String(),
		Description: t.Description,
		Date:        formatTime(t.Date),
	})
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return transactionFromRow(row)
}

func (l *Ledger) Transaction(ctx context.Context, id int64) (core.Transaction, error) {
	row, err := l.q.GetTransaction(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrTransactionNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return transactionFromRow(row)
}

// Transactions returns the latest limit transactions, newest first.
func (l *Ledger) Transactions(ctx context.Context, limit int) ([]core.Transaction, error) {
	rows, err := l.q.ListTransactions(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactionsFromRows(rows)
}

func (l *Ledger) TransactionsByAccount(ctx context.Context, accountID int64) ([]core.Transaction, error) {
	rows, err := l.q.ListTransactionsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list transactions of account %d: %w", accountID, err)
	}
	return transactionsFromRows(rows)
}

// TransactionsSince returns the transactions dated at or after since, oldest first.
func (l *Ledger) TransactionsSince(ctx context.Context, since time.Time) ([]core.Transaction, error) {
	rows, err := l.q.ListTransactionsSince(ctx, formatTime(since))
	if err != nil {
		return nil, fmt.Errorf("list transactions since %s: %w", since.Format(time.RFC3339), err)
	}
	return transactionsFromRows(rows)
}

func (l *Ledger) CountTransactionsByAccount(ctx context.Context, accountID int64) (int64, error) {
	n, err := l.q.CountTransactionsByAccount(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("count transactions of account %d: %w", accountID, err)
	}
	return n, nil
}

func (l *Ledger) DeleteTransaction(ctx context.Context, id int64) error {
	n, err := l.q.DeleteTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	if n == 0 {
		return core.ErrTransactionNotFound
	}
	return nil
}

func (l *Ledger) InsertInvestment(ctx context.Context, inv core.Investment) (core.Investment, error) {
	row, err := l.q.CreateInvestment(ctx, CreateInvestmentParams{
		AccountID:     inv.AccountID,
		Name:          inv.Name,
		Type:          inv.Type,
		InitialAmount: inv.InitialAmount.String(),
		CurrentValue:  inv.CurrentValue.String(),
		ReturnAmount:  inv.Return.String(),
		StartDate:     formatTime(inv.StartDate),
	})
	if err != nil {
		return core.Investment{}, fmt.Errorf("create investment: %w", err)
	}
	return investmentFromRow(row)
}

func (l *Ledger) Investment(ctx context.Context, id int64) (core.Investment, error) {
	row, err := l.q.GetInvestment(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Investment{}, core.ErrInvestmentNotFound
	}
	if err != nil {
		return core.Investment{}, fmt.Errorf("get investment %d: %w", id, err)
	}
	return investmentFromRow(row)
}

func (l *Ledger) Investments(ctx context.Context) ([]core.Investment, error) {
	rows, err := l.q.ListInvestments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	out := make([]core.Investment, 0, len(rows))
	for _, row := range rows {
		inv, err := investmentFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, nil
}

func (l *Ledger) CountInvestmentsByAccount(ctx context.Context, accountID int64) (int64, error) {
	n, err := l.q.CountInvestmentsByAccount(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("count investments of account %d: %w", accountID, err)
	}
	return n, nil
}

func (l *Ledger) DeleteInvestment(ctx context.Context, id int64) error {
	n, err := l.q.DeleteInvestment(ctx, id)
	if err != nil {
		return fmt.Errorf("delete investment %d: %w", id, err)
	}
	if n == 0 {
		return core.ErrInvestmentNotFound
	}
	return nil
}

func (l *Ledger) InsertGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	row, err := l.q.CreateGoal(ctx, CreateGoalParams{
		Title:         g.Title,
		Description:   g.Description,
		TargetAmount:  g.TargetAmount.String(),
		CurrentAmount: g.CurrentAmount.String(),
		Completed:     g.Completed,
		CreatedAt:     formatTime(g.CreatedAt),
	})
	if err != nil {
		return core.Goal{}, fmt.Errorf("create goal: %w", err)
	}
	return goalFromRow(row)
}

func (l *Ledger) Goal(ctx context.Context, id int64) (core.Goal, error) {
	row, err := l.q.GetGoal(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Goal{}, core.ErrGoalNotFound
	}
	if err != nil {
		return core.Goal{}, fmt.Errorf("get goal %d: %w", id, err)
	}
	return goalFromRow(row)
}

// Goals lists open goals first, newest first within each group.
func (l *Ledger) Goals(ctx context.Context) ([]core.Goal, error) {
	rows, err := l.q.ListGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	out := make([]core.Goal, 0, len(rows))
	for _, row := range rows {
		g, err := goalFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func (l *Ledger) SetGoalAmount(ctx context.Context, id int64, amount decimal.Decimal, completed bool) error {
	n, err := l.q.UpdateGoalAmount(ctx, UpdateGoalAmountParams{
		CurrentAmount: amount.String(),
		Completed:     completed,
		ID:            id,
	})
	if err != nil {
		return fmt.Errorf("update goal %d: %w", id, err)
	}
	if n == 0 {
		return core.ErrGoalNotFound
	}
	return nil
}

func (l *Ledger) DeleteGoal(ctx context.Context, id int64) error {
	n, err := l.q.DeleteGoal(ctx, id)
	if err != nil {
		return fmt.Errorf("delete goal %d: %w", id, err)
	}
	if n == 0 {
		return core.ErrGoalNotFound
	}
	return nil
}

package storage

import (
	"context"
	"database/sql"
)

// Row types mirror the tables one to one. Amounts and timestamps are kept
// as the stored strings; conversion to domain types happens in the
// repository.

type Account struct {
	ID        int64
	Name      string
	Type      string
	Balance   string
	CreatedAt string
}

type Transaction struct {
	ID          int64
	AccountID   int64
	Kind        string
	Category    string
	Amount      string
	Description string
	Date        string
}

type Investment struct {
	ID            int64
	AccountID     int64
	Name          string
	Type          string
	InitialAmount string
	CurrentValue  string
	ReturnAmount  string
	StartDate     string
}

type Goal struct {
	ID            int64
	Title         string
	Description   string
	TargetAmount  string
	CurrentAmount string
	Completed     bool
	CreatedAt     string
}

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

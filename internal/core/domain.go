package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  Kind = "entrata"
	Expense Kind = "uscita"
)

// Categories booked by the ledger itself rather than by the user.
const (
	CategoryInvestment     = "Investimento"
	CategoryOpeningBalance = "Saldo iniziale"
)

type (
	// Kind is the direction tag of a transaction.
	Kind string

	Account struct {
		ID        int64
		Name      string
		Type      string // e.g. "Conto Corrente", "Conto Risparmio"
		Balance   decimal.Decimal
		CreatedAt time.Time
	}

	// Transaction amounts are signed: expenses negative, income non-negative.
	Transaction struct {
		ID          int64
		AccountID   int64
		Kind        Kind
		Category    string
		Amount      decimal.Decimal
		Description string
		Date        time.Time
	}

	Investment struct {
		ID            int64
		AccountID     int64
		Name          string
		Type          string
		InitialAmount decimal.Decimal
		CurrentValue  decimal.Decimal
		Return        decimal.Decimal // CurrentValue - InitialAmount, fixed at creation
		StartDate     time.Time
	}

	Goal struct {
		ID            int64
		Title         string
		Description   string
		TargetAmount  decimal.Decimal
		CurrentAmount decimal.Decimal
		Completed     bool
		CreatedAt     time.Time
	}
)

type (
	NewAccount struct {
		Name           string
		Type           string
		OpeningBalance decimal.Decimal
	}

	NewTransaction struct {
		AccountID   int64
		Kind        Kind
		Category    string
		Amount      decimal.Decimal
		Description string
		Date        time.Time // zero means "now"
	}

	NewInvestment struct {
		AccountID     int64
		Name          string
		Type          string
		InitialAmount decimal.Decimal
		CurrentValue  decimal.Decimal
	}

	NewGoal struct {
		Title         string
		Description   string
		TargetAmount  decimal.Decimal
		CurrentAmount decimal.Decimal
	}
)

var (
	ErrInvalidKind         = errors.New("tipo must be 'entrata' or 'uscita'")
	ErrEmptyName           = errors.New("empty name")
	ErrEmptyType           = errors.New("empty type")
	ErrEmptyCategory       = errors.New("empty category")
	ErrEmptyTitle          = errors.New("empty title")
	ErrInvalidAccountID    = errors.New("invalid account id")
	ErrNegativeAmount      = errors.New("amount cannot be negative")
	ErrZeroAmount          = errors.New("amount cannot be zero")
	ErrDescriptionTooLong  = errors.New("description too long (max 200 characters)")
	ErrInvalidTargetAmount = errors.New("target amount must be greater than zero")
	ErrInvalidAmount       = errors.New("invalid amount")
)

const maxDescriptionLen = 200

// IsValid reports whether k is one of the two known directions.
func (k Kind) IsValid() bool {
	return k == Income || k == Expense
}

// SignedAmount applies the ledger sign convention to amount: expenses are
// stored negative and income non-negative, whatever sign the caller used.
func (k Kind) SignedAmount(amount decimal.Decimal) decimal.Decimal {
	if k == Expense {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

// KindOf returns the direction matching the sign of amount.
func KindOf(amount decimal.Decimal) Kind {
	if amount.IsNegative() {
		return Expense
	}
	return Income
}

func (a NewAccount) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(a.Type) == "" {
		return ErrEmptyType
	}
	return nil
}

func (t NewTransaction) Validate() error {
	if t.AccountID <= 0 {
		return ErrInvalidAccountID
	}
	if !t.Kind.IsValid() {
		return ErrInvalidKind
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.Amount.IsZero() {
		return ErrZeroAmount
	}
	if len(t.Description) > maxDescriptionLen {
		return ErrDescriptionTooLong
	}
	return nil
}

func (i NewInvestment) Validate() error {
	if i.AccountID <= 0 {
		return ErrInvalidAccountID
	}
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(i.Type) == "" {
		return ErrEmptyType
	}
	if i.InitialAmount.IsNegative() || i.CurrentValue.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

func (g NewGoal) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return ErrEmptyTitle
	}
	if !g.TargetAmount.IsPositive() {
		return ErrInvalidTargetAmount
	}
	if g.CurrentAmount.IsNegative() {
		return ErrNegativeAmount
	}
	if len(g.Description) > maxDescriptionLen {
		return ErrDescriptionTooLong
	}
	return nil
}

// ValidateGoalAmount checks a new current amount for an existing goal.
func ValidateGoalAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// IsValidationError reports whether err comes from input validation rather
// than from the ledger state or the store.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrInvalidKind, ErrEmptyName, ErrEmptyType, ErrEmptyCategory, ErrEmptyTitle,
		ErrInvalidAccountID, ErrNegativeAmount, ErrZeroAmount, ErrDescriptionTooLong,
		ErrInvalidTargetAmount, ErrInvalidAmount,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// GoalReached is the completion rule for goals.
func GoalReached(current, target decimal.Decimal) bool {
	return current.GreaterThanOrEqual(target)
}

// InvestmentReturn is the fixed return stored at purchase time.
func InvestmentReturn(initial, current decimal.Decimal) decimal.Decimal {
	return current.Sub(initial)
}

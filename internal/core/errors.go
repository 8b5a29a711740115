package core

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound     = errors.New("conto non trovato")
	ErrTransactionNotFound = errors.New("transazione non trovata")
	ErrInvestmentNotFound  = errors.New("investimento non trovato")
	ErrGoalNotFound        = errors.New("obiettivo non trovato")

	ErrAccountHasTransactions = errors.New("impossibile eliminare: il conto ha transazioni associate")
	ErrAccountHasInvestments  = errors.New("impossibile eliminare: il conto ha investimenti associati")

	ErrInsufficientFunds = errors.New("fondi insufficienti")
)

// InsufficientFundsError is returned when an investment purchase exceeds the
// funding account balance. It matches ErrInsufficientFunds with errors.Is.
type InsufficientFundsError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("Fondi insufficienti. Saldo disponibile: €%s", e.Available.StringFixed(2))
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// IsNotFound reports whether err means the referenced entity does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrInvestmentNotFound) ||
		errors.Is(err, ErrGoalNotFound)
}

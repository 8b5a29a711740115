package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"financehub/internal/amqp"
	"financehub/internal/core"
	"financehub/internal/log"
	"financehub/internal/storage"

	"github.com/shopspring/decimal"
)

const (
	DefaultTransactionLimit = 50
	MaxTransactionLimit     = 1000
)

// EventPublisher publishes ledger events after a mutation commits.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, event *amqp.LedgerEvent) error
}

// LedgerService owns every write to the ledger. Each operation that moves
// money applies the matching balance delta in the same store transaction as
// the row it inserts or deletes, so an account balance always equals the sum
// of its transactions.
type LedgerService struct {
	storage   *storage.SQLiteRepository
	publisher EventPublisher
	now       func() time.Time
}

// NewLedgerService wires the service. publisher may be nil, in which case no
// events are published.
func NewLedgerService(storage *storage.SQLiteRepository, publisher EventPublisher) *LedgerService {
	return &LedgerService{
		storage:   storage,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *LedgerService) CreateAccount(ctx context.Context, in core.NewAccount) (core.Account, error) {
	if err := in.Validate(); err != nil {
		return core.Account{}, err
	}
	now := s.now()

	var account core.Account
	err := s.storage.WithTx(ctx, func(l *storage.Ledger) error {
		a, err := l.InsertAccount(ctx, in.Name, in.Type, now)
		if err != nil {
			return err
		}
		if !in.OpeningBalance.IsZero() {
			_, err := l.InsertTransaction(ctx, core.Transaction{
				AccountID:   a.ID,
				Kind:        core.KindOf(in.OpeningBalance),
				Category:    core.CategoryOpeningBalance,
				Amount:      in.OpeningBalance,
				Description: core.CategoryOpeningBalance,
				Date:        now,
			})
			if err != nil {
				return err
			}
			if err := l.SetBalance(ctx, a.ID, in.OpeningBalance); err != nil {
				return err
			}
			a.Balance = in.OpeningBalance
		}
		account = a
		return nil
	})
	if err != nil {
		return core.Account{}, fmt.Errorf("create account: %w", err)
	}

	ledgerLog(ctx).LogMutation(ctx, log.OpCreate, log.EntityAccount, account.ID,
		log.NewFields().WithAmount(account.Balance))
	s.publish(ctx, amqp.EventAccountCreated, account.ID, account.ID, account.Balance)
	return account, nil
}

func (s *LedgerService) Account(ctx context.Context, id int64) (core.Account, error) {
	return s.storage.Account(ctx, id)
}

func (s *LedgerService) Accounts(ctx context.Context) ([]core.Account, error) {
	return s.storage.Accounts(ctx)
}

// DeleteAccount removes an account that owns no transactions and no
// investments.
func (s *LedgerService) DeleteAccount(ctx context.Context, id int64) error {
	err := s.storage.WithTx(ctx, func(l *storage.Ledger) error {
		n, err := l.CountTransactionsByAccount(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return core.ErrAccountHasTransactions
		}
		n, err = l.CountInvestmentsByAccount(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return core.ErrAccountHasInvestments
		}
		return l.DeleteAccount(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete account %d: %w", id, err)
	}

	ledgerLog(ctx).LogMutation(ctx, log.OpDelete, log.EntityAccount, id, nil)
	s.publish(ctx, amqp.EventAccountDeleted, id, id, decimal.Zero)
	return nil
}

// CreateTransaction records a transaction and adds its signed amount to the
// account balance. Overdrafts are allowed.
func (s *LedgerService) CreateTransaction(ctx context.Context, in core.NewTransaction) (core.Transaction, error) {
	if err := in.Validate(); err != nil {
		return core.Transaction{}, err
	}
	date := in.Date
	if date.IsZero() {
		date = s.now()
	}

	var created core.Transaction
	err := s.storage.WithTx(ctx, func(l *storage.Ledger) error {
		account, err := l.Account(ctx, in.AccountID)
		if err != nil {
			return err
		}
		created, err = l.InsertTransaction(ctx, core.Transaction{
			AccountID:   in.AccountID,
			Kind:        in.Kind,
			Category:    in.Category,
			Amount:      in.Kind.SignedAmount(in.Amount),
			Description: in.Description,
			Date:        date,
		})
		if err != nil {
			return err
		}
		return l.SetBalance(ctx, account.ID, account.Balance.Add(created.Amount))
	})
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	fields := log.NewFields().WithAccount(created.AccountID).WithAmount(created.Amount)
	fields[log.FieldKind] = string(created.Kind)
	fields[log.FieldCategory] = created.Category
	ledgerLog(ctx).LogMutation(ctx, log.OpCreate, log.EntityTransaction, created.ID, fields)
	s.publish(ctx, amqp.EventTransactionCreated, created.ID, created.AccountID, created.Amount)
	return created, nil
}

// Transactions returns the latest transactions across all accounts. Limits
// outside 1..MaxTransactionLimit fall back to the default or the cap.
func (s *LedgerService) Transactions(ctx context.Context, limit int) ([]core.Transaction, error) {
	return s.storage.Transactions(ctx, NormalizeLimit(limit))
}

func (s *LedgerService) TransactionsByAccount(ctx context.Context, accountID int64) ([]core.Transaction, error) {
	return s.storage.TransactionsByAccount(ctx, accountID)
}

// DeleteTransaction removes a transaction and reverts its effect on the
// account balance.
func (s *LedgerService) DeleteTransaction(ctx context.Context, id int64) error {
	var deleted core.Transaction
	err := s.storage.WithTx(ctx, func(l *storage.Ledger) error {
		t, err := l.Transaction(ctx, id)
		if err != nil {
			return err
		}
		account, err := l.Account(ctx, t.AccountID)
		if err != nil {
			return err
		}
		if err := l.DeleteTransaction(ctx, id); err != nil {
			return err
		}
		deleted = t
		return l.SetBalance(ctx, account.ID, account.Balance.Sub(t.Amount))
	})
	if err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}

	ledgerLog(ctx).LogMutation(ctx, log.OpDelete, log.EntityTransaction, id,
		log.NewFields().WithAccount(deleted.AccountID).WithAmount(deleted.Amount.Neg()))
	s.publish(ctx, amqp.EventTransactionDeleted, id, deleted.AccountID, deleted.Amount)
	return nil
}

// CreateInvestment funds a new position from an account. The purchase is
// booked as an expense transaction and the balance decremented, all or
// nothing.
func (s *LedgerService) CreateInvestment(ctx context.Context, in core.NewInvestment) (core.Investment, error) {
	if err := in.Validate(); err != nil {
		return core.Investment{}, err
	}
	now := s.now()

	var created core.Investment
	err := s.storage.WithTx(ctx, func(l *storage.Ledger) error {
		account, err := l.Account(ctx, in.AccountID)
		if err != nil {
			return err
		}
		if account.Balance.LessThan(in.InitialAmount) {
			return &core.InsufficientFundsError{Available: account.Balance, Requested: in.InitialAmount}
		}

		created, err = l.InsertInvestment(ctx, core.Investment{
			AccountID:     in.AccountID,
			Name:          in.Name,
			Type:          in.Type,
			InitialAmount: in.InitialAmount,
			CurrentValue:  in.CurrentValue,
			Return:        core.InvestmentReturn(in.InitialAmount, in.CurrentValue),
			StartDate:     now,
		})
		if err != nil {
			return err
		}

		withdrawal := core.Expense.SignedAmount(in.InitialAmount)
		_, err = l.InsertTransaction(ctx, core.Transaction{
			AccountID:   in.AccountID,
			Kind:        core.Expense,
			Category:    core.CategoryInvestment,
			Amount:      withdrawal,
			Description: "Investimento in " + in.Name,
			Date:        now,
		})
		if err != nil {
			return err
		}
		return l.SetBalance(ctx, account.ID, account.Balance.Add(withdrawal))
	})
	if err != nil {
		var insufficient *core.InsufficientFundsError
		if errors.As(err, &insufficient) {
			ledgerLog(ctx).Logger().WarnContext(ctx, "Investment rejected",
				log.FieldAccountID, in.AccountID,
				"available", insufficient.Available.String(),
				"requested", insufficient.Requested.String())
		}
		return core.Investment{}, fmt.Errorf("create investment: %w", err)
	}

	ledgerLog(ctx).LogMutation(ctx, log.OpCreate, log.EntityInvestment, created.ID,
		log.NewFields().WithAccount(created.AccountID).WithAmount(created.InitialAmount))
	s.publish(ctx, amqp.EventInvestmentCreated, created.ID, created.AccountID, created.InitialAmount.Neg())
	return created, nil
}

func (s *LedgerService) Investments(ctx context.Context) ([]core.Investment, error) {
	return s.storage.Investments(ctx)
}

// DeleteInvestment removes the position only. The purchase transaction
// stays on the account, so no money flows back.
func (s *LedgerService) DeleteInvestment(ctx context.Context, id int64) error {
	var deleted core.Investment
	err := s.storage.WithTx(ctx, func(l *storage.Ledger) error {
		inv, err := l.Investment(ctx, id)
		if err != nil {
			return err
		}
		if err := l.DeleteInvestment(ctx, id); err != nil {
			return err
		}
		deleted = inv
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete investment %d: %w", id, err)
	}

	ledgerLog(ctx).LogMutation(ctx, log.OpDelete, log.EntityInvestment, id,
		log.NewFields().WithAccount(deleted.AccountID).WithAmount(deleted.CurrentValue))
	s.publish(ctx, amqp.EventInvestmentDeleted, id, deleted.AccountID, deleted.CurrentValue)
	return nil
}

func (s *LedgerService) CreateGoal(ctx context.Context, in core.NewGoal) (core.Goal, error) {
	if err := in.Validate(); err != nil {
		return core.Goal{}, err
	}
	g, err := s.storage.InsertGoal(ctx, core.Goal{
		Title:         in.Title,
		Description:   in.Description,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		Completed:     core.GoalReached(in.CurrentAmount, in.TargetAmount),
		CreatedAt:     s.now(),
	})
	if err != nil {
		return core.Goal{}, fmt.Errorf("create goal: %w", err)
	}

	ledgerLog(ctx).LogMutation(ctx, log.OpCreate, log.EntityGoal, g.ID,
		log.NewFields().WithAmount(g.TargetAmount))
	s.publish(ctx, amqp.EventGoalCreated, g.ID, 0, g.CurrentAmount)
	return g, nil
}

func (s *LedgerService) Goals(ctx context.Context) ([]core.Goal, error) {
	return s.storage.Goals(ctx)
}

// UpdateGoalAmount sets the saved amount of a goal and recomputes whether
// the goal is reached.
func (s *LedgerService) UpdateGoalAmount(ctx context.Context, id int64, amount decimal.Decimal) (core.Goal, error) {
	if err := core.ValidateGoalAmount(amount); err != nil {
		return core.Goal{}, err
	}

	var before, after core.Goal
	err := s.storage.WithTx(ctx, func(l *storage.Ledger) error {
		g, err := l.Goal(ctx, id)
		if err != nil {
			return err
		}
		before = g
		g.CurrentAmount = amount
		g.Completed = core.GoalReached(amount, g.TargetAmount)
		if err := l.SetGoalAmount(ctx, id, g.CurrentAmount, g.Completed); err != nil {
			return err
		}
		after = g
		return nil
	})
	if err != nil {
		return core.Goal{}, fmt.Errorf("update goal %d: %w", id, err)
	}

	fields := log.NewFields().WithAmount(amount)
	fields["completed"] = after.Completed
	ledgerLog(ctx).LogMutation(ctx, log.OpUpdate, log.EntityGoal, id, fields)
	s.publish(ctx, amqp.EventGoalUpdated, id, 0, amount)
	if after.Completed && !before.Completed {
		s.publish(ctx, amqp.EventGoalCompleted, id, 0, amount)
	}
	return after, nil
}

func (s *LedgerService) DeleteGoal(ctx context.Context, id int64) error {
	if err := s.storage.DeleteGoal(ctx, id); err != nil {
		return fmt.Errorf("delete goal %d: %w", id, err)
	}
	ledgerLog(ctx).LogMutation(ctx, log.OpDelete, log.EntityGoal, id, nil)
	s.publish(ctx, amqp.EventGoalDeleted, id, 0, decimal.Zero)
	return nil
}

// Ping reports whether the store is reachable.
func (s *LedgerService) Ping(ctx context.Context) error {
	return s.storage.Ping(ctx)
}

// publish sends the event for a committed mutation.
func (s *LedgerService) publish(ctx context.Context, eventType string, entityID, accountID int64, amount decimal.Decimal) {
	if s.publisher == nil {
		slog.DebugContext(ctx, "Event publisher not configured, skipping ledger event", log.FieldEventType, eventType)
		return
	}
	event := amqp.NewLedgerEvent(eventType, entityID, accountID, amount)
	if err := s.publisher.PublishLedgerEvent(ctx, event); err != nil {
		// Don't fail the request - the mutation is already committed
		log.FromContext(ctx).WithComponent(log.ComponentEvents).ErrorContext(ctx, "Failed to publish ledger event",
			log.FieldEventType, eventType,
			log.FieldEntityID, entityID,
			log.FieldError, err)
	}
}

// ledgerLog returns the request-scoped logger tagged with the ledger component.
func ledgerLog(ctx context.Context) *log.StructuredLogger {
	return log.NewStructuredLogger(log.FromContext(ctx).WithComponent(log.ComponentLedger))
}

// NormalizeLimit maps a requested listing size to the accepted range.
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultTransactionLimit
	case limit > MaxTransactionLimit:
		return MaxTransactionLimit
	default:
		return limit
	}
}

// Close closes the store and the event publisher if it holds resources.
func (s *LedgerService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if closer, ok := s.publisher.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %w", errors.Join(errs...))
	}
	return nil
}

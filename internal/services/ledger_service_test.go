package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"financehub/internal/amqp"
	"financehub/internal/core"
	"financehub/internal/storage"

	"github.com/shopspring/decimal"
)

type fakePublisher struct {
	mu     sync.Mutex
	events []*amqp.LedgerEvent
	err    error
}

func (f *fakePublisher) PublishLedgerEvent(ctx context.Context, event *amqp.LedgerEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return f.err
}

func (f *fakePublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

var fixedNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, publisher EventPublisher) *LedgerService {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	svc := NewLedgerService(repo, publisher)
	svc.now = func() time.Time { return fixedNow }
	t.Cleanup(func() { svc.Close() })
	return svc
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// assertConsistent checks that every account balance equals the sum of its
// transactions.
func assertConsistent(t *testing.T, svc *LedgerService) {
	t.Helper()
	ctx := context.Background()
	accounts, err := svc.Accounts(ctx)
	if err != nil {
		t.Fatalf("list accounts: %v", err)
	}
	for _, a := range accounts {
		txs, err := svc.TransactionsByAccount(ctx, a.ID)
		if err != nil {
			t.Fatalf("list transactions: %v", err)
		}
		sum := decimal.Zero
		for _, tx := range txs {
			sum = sum.Add(tx.Amount)
		}
		if !sum.Equal(a.Balance) {
			t.Fatalf("account %d: balance %s != sum of transactions %s", a.ID, a.Balance, sum)
		}
	}
}

func mustAccount(t *testing.T, svc *LedgerService, opening string) core.Account {
	t.Helper()
	a, err := svc.CreateAccount(context.Background(), core.NewAccount{Name: "Conto", Type: "Conto Corrente", OpeningBalance: d(opening)})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	return a
}

func TestExpenseReducesBalanceAndMonthlyExpense(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)
	a := mustAccount(t, svc, "100.00")

	_, err := svc.CreateTransaction(ctx, core.NewTransaction{
		AccountID: a.ID, Kind: core.Expense, Category: "Spesa", Amount: d("-30.00"),
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	got, err := svc.Account(ctx, a.ID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if !got.Balance.Equal(d("70")) {
		t.Fatalf("balance: want 70, got %s", got.Balance)
	}

	dash, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if !dash.MonthlyExpense.Equal(d("30")) {
		t.Fatalf("monthly expense: want 30, got %s", dash.MonthlyExpense)
	}
	assertConsistent(t, svc)
}

func TestExpenseSignIsNormalized(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)
	a := mustAccount(t, svc, "0")

	tx, err := svc.CreateTransaction(ctx, core.NewTransaction{
		AccountID: a.ID, Kind: core.Expense, Category: "Spesa", Amount: d("30"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !tx.Amount.Equal(d("-30")) {
		t.Fatalf("expense should be stored negative, got %s", tx.Amount)
	}
	if !tx.Date.Equal(fixedNow) {
		t.Fatalf("missing date should default to now, got %v", tx.Date)
	}
	// overdraft is allowed
	got, _ := svc.Account(ctx, a.ID)
	if !got.Balance.Equal(d("-30")) {
		t.Fatalf("balance: want -30, got %s", got.Balance)
	}
}

func TestCreateTransactionUnknownAccount(t *testing.T) {
	svc := newTestService(t, nil)
	_, err := svc.CreateTransaction(context.Background(), core.NewTransaction{
		AccountID: 42, Kind: core.Income, Category: "x", Amount: d("1"),
	})
	if !errors.Is(err, core.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestDeleteTransactionRevertsBalance(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)
	a := mustAccount(t, svc, "100")

	tx, err := svc.CreateTransaction(ctx, core.NewTransaction{
		AccountID: a.ID, Kind: core.Expense, Category: "Spesa", Amount: d("30"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.DeleteTransaction(ctx, tx.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, _ := svc.Account(ctx, a.ID)
	if !got.Balance.Equal(d("100")) {
		t.Fatalf("balance: want 100, got %s", got.Balance)
	}
	assertConsistent(t, svc)

	if err := svc.DeleteTransaction(ctx, tx.ID); !errors.Is(err, core.ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestCreateInvestment(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)
	a := mustAccount(t, svc, "1000")

	inv, err := svc.CreateInvestment(ctx, core.NewInvestment{
		AccountID: a.ID, Name: "ETF World", Type: "ETF", InitialAmount: d("200.00"), CurrentValue: d("250.00"),
	})
	if err != nil {
		t.Fatalf("create investment: %v", err)
	}
	if !inv.Return.Equal(d("50")) {
		t.Fatalf("return: want 50, got %s", inv.Return)
	}
	if got := core.InvestmentReturnPercent(inv); !got.Equal(d("25")) {
		t.Fatalf("return percent: want 25, got %s", got)
	}

	got, _ := svc.Account(ctx, a.ID)
	if !got.Balance.Equal(d("800")) {
		t.Fatalf("balance: want 800, got %s", got.Balance)
	}

	txs, _ := svc.TransactionsByAccount(ctx, a.ID)
	var purchase *core.Transaction
	for i := range txs {
		if txs[i].Category == core.CategoryInvestment {
			purchase = &txs[i]
		}
	}
	if purchase == nil {
		t.Fatalf("expected a purchase transaction, got %+v", txs)
	}
	if purchase.Kind != core.Expense || !purchase.Amount.Equal(d("-200")) || purchase.Description != "Investimento in ETF World" {
		t.Fatalf("unexpected purchase transaction: %+v", *purchase)
	}
	assertConsistent(t, svc)
}

func TestCreateInvestmentInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := newTestService(t, pub)
	a := mustAccount(t, svc, "100")
	before, _ := svc.TransactionsByAccount(ctx, a.ID)
	eventsBefore := len(pub.types())

	_, err := svc.CreateInvestment(ctx, core.NewInvestment{
		AccountID: a.ID, Name: "ETF", Type: "ETF", InitialAmount: d("150"), CurrentValue: d("150"),
	})
	if !errors.Is(err, core.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	var insufficient *core.InsufficientFundsError
	if !errors.As(err, &insufficient) || !insufficient.Available.Equal(d("100")) {
		t.Fatalf("expected available balance 100 in error, got %v", err)
	}

	got, _ := svc.Account(ctx, a.ID)
	if !got.Balance.Equal(d("100")) {
		t.Fatalf("balance must be unchanged, got %s", got.Balance)
	}
	after, _ := svc.TransactionsByAccount(ctx, a.ID)
	if len(after) != len(before) {
		t.Fatalf("no transaction should be recorded, had %d now %d", len(before), len(after))
	}
	investments, _ := svc.Investments(ctx)
	if len(investments) != 0 {
		t.Fatalf("no investment should be recorded, got %d", len(investments))
	}
	if len(pub.types()) != eventsBefore {
		t.Fatalf("no event should be published for a rejected investment")
	}
}

func TestDeleteInvestmentKeepsPurchase(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := newTestService(t, pub)
	a := mustAccount(t, svc, "500")
	inv, err := svc.CreateInvestment(ctx, core.NewInvestment{
		AccountID: a.ID, Name: "BTP", Type: "Obbligazioni", InitialAmount: d("200"), CurrentValue: d("215.50"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.DeleteInvestment(ctx, inv.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, _ := svc.Account(ctx, a.ID)
	if !got.Balance.Equal(d("300")) {
		t.Fatalf("deleting an investment must not refund, balance %s", got.Balance)
	}
	if invs, _ := svc.Investments(ctx); len(invs) != 0 {
		t.Fatalf("investments after delete=%d, want 0", len(invs))
	}

	pub.mu.Lock()
	last := pub.events[len(pub.events)-1]
	pub.mu.Unlock()
	if last.Type != amqp.EventInvestmentDeleted || last.EntityID != inv.ID {
		t.Fatalf("last event=%+v, want %s for %d", last, amqp.EventInvestmentDeleted, inv.ID)
	}
	if last.AccountID != a.ID || !last.Amount.Equal(d("215.50")) {
		t.Fatalf("delete event account=%d amount=%s, want %d 215.50", last.AccountID, last.Amount, a.ID)
	}

	eventsBefore := len(pub.types())
	if err := svc.DeleteInvestment(ctx, inv.ID); !errors.Is(err, core.ErrInvestmentNotFound) {
		t.Fatalf("expected ErrInvestmentNotFound, got %v", err)
	}
	if len(pub.types()) != eventsBefore {
		t.Fatalf("a failed delete must not publish")
	}
}

func TestDeleteAccountGuards(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)

	t.Run("with transactions", func(t *testing.T) {
		a := mustAccount(t, svc, "10")
		if err := svc.DeleteAccount(ctx, a.ID); !errors.Is(err, core.ErrAccountHasTransactions) {
			t.Fatalf("expected ErrAccountHasTransactions, got %v", err)
		}
	})

	t.Run("empty account", func(t *testing.T) {
		a := mustAccount(t, svc, "0")
		if err := svc.DeleteAccount(ctx, a.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		accounts, _ := svc.Accounts(ctx)
		for _, other := range accounts {
			if other.ID == a.ID {
				t.Fatalf("deleted account still listed")
			}
		}
		if _, err := svc.Account(ctx, a.ID); !errors.Is(err, core.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
	})

	t.Run("with investments only", func(t *testing.T) {
		a := mustAccount(t, svc, "500")
		if _, err := svc.CreateInvestment(ctx, core.NewInvestment{
			AccountID: a.ID, Name: "ETF", Type: "ETF", InitialAmount: d("200"), CurrentValue: d("200"),
		}); err != nil {
			t.Fatalf("create investment: %v", err)
		}
		txs, _ := svc.TransactionsByAccount(ctx, a.ID)
		for _, tx := range txs {
			if err := svc.DeleteTransaction(ctx, tx.ID); err != nil {
				t.Fatalf("delete transaction: %v", err)
			}
		}
		if err := svc.DeleteAccount(ctx, a.ID); !errors.Is(err, core.ErrAccountHasInvestments) {
			t.Fatalf("expected ErrAccountHasInvestments, got %v", err)
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		if err := svc.DeleteAccount(ctx, 999); !errors.Is(err, core.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
	})
}

func TestGoalCompletionFollowsAmount(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := newTestService(t, pub)

	g, err := svc.CreateGoal(ctx, core.NewGoal{Title: "Fondo emergenza", TargetAmount: d("5000.00")})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	if g.Completed {
		t.Fatalf("new goal with zero saved should not be completed")
	}

	g, err = svc.UpdateGoalAmount(ctx, g.ID, d("5000.00"))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !g.Completed || !core.GoalProgress(g).Equal(d("100")) {
		t.Fatalf("want completed at 100%%, got completed=%v progress=%s", g.Completed, core.GoalProgress(g))
	}

	g, err = svc.UpdateGoalAmount(ctx, g.ID, d("4000.00"))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if g.Completed || !core.GoalProgress(g).Equal(d("80")) {
		t.Fatalf("want open at 80%%, got completed=%v progress=%s", g.Completed, core.GoalProgress(g))
	}

	stored, _ := svc.Goals(ctx)
	if len(stored) != 1 || stored[0].Completed || !stored[0].CurrentAmount.Equal(d("4000")) {
		t.Fatalf("unexpected stored goal: %+v", stored)
	}

	want := []string{amqp.EventGoalCreated, amqp.EventGoalUpdated, amqp.EventGoalCompleted, amqp.EventGoalUpdated}
	got := pub.types()
	if len(got) != len(want) {
		t.Fatalf("events: want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events: want %v, got %v", want, got)
		}
	}

	if _, err := svc.UpdateGoalAmount(ctx, 999, d("1")); !errors.Is(err, core.ErrGoalNotFound) {
		t.Fatalf("expected ErrGoalNotFound, got %v", err)
	}
}

func TestGoalCreatedAlreadyReached(t *testing.T) {
	svc := newTestService(t, nil)
	g, err := svc.CreateGoal(context.Background(), core.NewGoal{Title: "x", TargetAmount: d("10"), CurrentAmount: d("10")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !g.Completed {
		t.Fatalf("goal created at its target should be completed")
	}
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := newTestService(t, pub)
	a := mustAccount(t, svc, "0")

	if _, err := svc.CreateTransaction(ctx, core.NewTransaction{
		AccountID: a.ID, Kind: core.Income, Category: "Stipendio", Amount: d("10"),
	}); err != nil {
		t.Fatalf("publish failure must not fail the mutation: %v", err)
	}
	got := pub.types()
	if len(got) == 0 || got[len(got)-1] != amqp.EventTransactionCreated {
		t.Fatalf("expected a transaction.created publish attempt, got %v", got)
	}
}

func TestValidationErrorsAreReturnedUnwrapped(t *testing.T) {
	svc := newTestService(t, nil)
	_, err := svc.CreateTransaction(context.Background(), core.NewTransaction{AccountID: 1, Kind: "bonifico", Category: "x", Amount: d("1")})
	if !core.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReports(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)
	a := mustAccount(t, svc, "1000")

	for _, in := range []core.NewTransaction{
		{AccountID: a.ID, Kind: core.Expense, Category: "Casa", Amount: d("500"), Date: fixedNow.AddDate(0, 0, -1)},
		{AccountID: a.ID, Kind: core.Expense, Category: "Spesa", Amount: d("30"), Date: fixedNow},
		{AccountID: a.ID, Kind: core.Income, Category: "Stipendio", Amount: d("2000"), Date: fixedNow.AddDate(0, -2, 0)},
	} {
		if _, err := svc.CreateTransaction(ctx, in); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	stats, err := svc.CategoryStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 2 || stats[0].Category != "Spesa" || stats[1].Category != "Casa" {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	trend, err := svc.Trend(ctx)
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	if len(trend.Labels) != core.TrendMonths || trend.Labels[5] != "Mar" || trend.Labels[3] != "Gen" {
		t.Fatalf("unexpected labels: %v", trend.Labels)
	}
	if !trend.Income[3].Equal(d("2000")) || !trend.Expense[5].Equal(d("530")) {
		t.Fatalf("unexpected trend: %+v", trend)
	}
	// opening balance is March income
	if !trend.Income[5].Equal(d("1000")) {
		t.Fatalf("opening balance should count as income this month, got %s", trend.Income[5])
	}

	dash, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if !dash.TotalBalance.Equal(d("2470")) || !dash.MonthlyDelta.Equal(d("470")) {
		t.Fatalf("unexpected dashboard: %+v", dash)
	}
	assertConsistent(t, svc)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)

	seeded, err := svc.Seed(ctx)
	if err != nil || !seeded {
		t.Fatalf("first seed: seeded=%v err=%v", seeded, err)
	}
	seeded, err = svc.Seed(ctx)
	if err != nil || seeded {
		t.Fatalf("second seed should be skipped: seeded=%v err=%v", seeded, err)
	}

	accounts, _ := svc.Accounts(ctx)
	investments, _ := svc.Investments(ctx)
	goals, _ := svc.Goals(ctx)
	if len(accounts) != 2 || len(investments) != 2 || len(goals) != 3 {
		t.Fatalf("unexpected seed sizes: %d accounts, %d investments, %d goals", len(accounts), len(investments), len(goals))
	}
	assertConsistent(t, svc)
}

func TestNormalizeLimit(t *testing.T) {
	cases := []struct{ in, out int }{
		{0, DefaultTransactionLimit},
		{-5, DefaultTransactionLimit},
		{10, 10},
		{MaxTransactionLimit + 1, MaxTransactionLimit},
	}
	for _, tc := range cases {
		if got := NormalizeLimit(tc.in); got != tc.out {
			t.Errorf("NormalizeLimit(%d) = %d, want %d", tc.in, got, tc.out)
		}
	}
}

func TestLedgerService_CloseNilComponents(t *testing.T) {
	svc := &LedgerService{}
	if err := svc.Close(); err != nil {
		t.Fatalf("Close should not return error with nil components: %v", err)
	}
}

func TestReportsReflectEveryWrite(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)

	acc, err := svc.CreateAccount(ctx, core.NewAccount{Name: "Conto", Type: "corrente", OpeningBalance: d("100")})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	first, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if _, err := svc.CreateTransaction(ctx, core.NewTransaction{
		AccountID: acc.ID, Kind: core.Expense, Category: "Spesa", Amount: d("30"),
	}); err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	second, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if !first.TotalBalance.Equal(d("100")) || !second.TotalBalance.Equal(d("70")) {
		t.Fatalf("balances %s then %s, want 100 then 70", first.TotalBalance, second.TotalBalance)
	}
	if !second.MonthlyExpense.Equal(d("30")) {
		t.Fatalf("monthly expense=%s, want 30", second.MonthlyExpense)
	}
}

package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financetracker/ledger"
	"financetracker/ledger/memory"
)

var testNow = time.Date(2024, time.June, 15, 14, 30, 0, 0, time.UTC)

type recordingPublisher struct {
	mu           sync.Mutex
	transactions []ledger.Transaction
	snapshots    []ledger.Snapshot
	err          error
}

func (p *recordingPublisher) TransactionRecorded(_ context.Context, t ledger.Transaction, _ ledger.Account) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transactions = append(p.transactions, t)
	return p.err
}

func (p *recordingPublisher) SnapshotRecorded(_ context.Context, s ledger.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshots = append(p.snapshots, s)
	return p.err
}

func newTestService(t *testing.T, now time.Time) (*ledger.Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	return ledger.NewService(store, ledger.WithClock(ledger.FixedClock(now))), store
}

func createAccount(t *testing.T, store ledger.Store, name string, balance ledger.Money) ledger.Account {
	t.Helper()
	a, err := store.CreateAccount(context.Background(), ledger.Account{Name: name, Balance: balance})
	require.NoError(t, err)
	return a
}

func TestRecordTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("should apply credit then debit to the balance", func(t *testing.T) {
		svc, store := newTestService(t, testNow)
		cash := createAccount(t, store, "CASH", 0)

		_, err := svc.RecordTransaction(ctx, ledger.Transaction{
			Account: "CASH", Amount: 10000, Direction: ledger.Credit, Date: ledger.DateOf(testNow),
		})
		require.NoError(t, err)

		got, err := store.GetAccount(ctx, cash.ID)
		require.NoError(t, err)
		assert.Equal(t, ledger.Money(10000), got.Balance)

		_, err = svc.RecordTransaction(ctx, ledger.Transaction{
			Account: "CASH", Amount: 3000, Direction: ledger.Debit, Date: ledger.DateOf(testNow),
		})
		require.NoError(t, err)

		got, err = store.GetAccount(ctx, cash.ID)
		require.NoError(t, err)
		assert.Equal(t, ledger.Money(7000), got.Balance)
	})

	t.Run("should reject unknown account without persisting", func(t *testing.T) {
		svc, store := newTestService(t, testNow)
		createAccount(t, store, "CASH", 5000)

		_, err := svc.RecordTransaction(ctx, ledger.Transaction{
			Account: "GHOST", Amount: 100, Direction: ledger.Debit, Date: ledger.DateOf(testNow),
		})
		assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
		assert.True(t, ledger.IsNotFound(err))

		txs, err := store.ListTransactions(ctx)
		require.NoError(t, err)
		assert.Empty(t, txs)

		total, err := svc.TotalNetWorth(ctx)
		require.NoError(t, err)
		assert.Equal(t, ledger.Money(5000), total)
	})

	t.Run("should resolve account by id and fill the name", func(t *testing.T) {
		svc, store := newTestService(t, testNow)
		ing := createAccount(t, store, "ING", 0)

		tx, err := svc.RecordTransaction(ctx, ledger.Transaction{
			AccountID: ing.ID, Amount: 250, Direction: ledger.Credit, Date: ledger.DateOf(testNow),
		})
		require.NoError(t, err)
		assert.Equal(t, "ING", tx.Account)
		assert.Equal(t, ing.ID, tx.AccountID)
		assert.NotEmpty(t, tx.ID)
	})

	t.Run("should resolve known category and keep unknown as label", func(t *testing.T) {
		svc, store := newTestService(t, testNow)
		createAccount(t, store, "CASH", 0)
		groceries, err := store.CreateCategory(ctx, ledger.Category{Name: "Groceries"})
		require.NoError(t, err)

		known, err := svc.RecordTransaction(ctx, ledger.Transaction{
			Account: "CASH", Category: "Groceries", Amount: 100, Date: ledger.DateOf(testNow),
		})
		require.NoError(t, err)
		assert.Equal(t, groceries.ID, known.CategoryID)

		unknown, err := svc.RecordTransaction(ctx, ledger.Transaction{
			Account: "CASH", Category: "Misc", Amount: 100, Date: ledger.DateOf(testNow),
		})
		require.NoError(t, err)
		assert.Equal(t, "Misc", unknown.Category)
		assert.Empty(t, unknown.CategoryID)
	})

	t.Run("should validate input", func(t *testing.T) {
		svc, store := newTestService(t, testNow)
		createAccount(t, store, "CASH", 0)
		today := ledger.DateOf(testNow)

		cases := map[string]ledger.Transaction{
			"account":  {Amount: 1, Date: today},
			"amount":   {Account: "CASH", Amount: -1, Date: today},
			"positive": {Account: "CASH", Amount: 1, Direction: 7, Date: today},
			"date":     {Account: "CASH", Amount: 1},
		}
		for field, tx := range cases {
			_, err := svc.RecordTransaction(ctx, tx)
			var ve *ledger.ValidationError
			require.True(t, errors.As(err, &ve), "field %s", field)
			assert.Equal(t, field, ve.Field)
		}
	})

	t.Run("should publish after commit and ignore publish failures", func(t *testing.T) {
		store := memory.New()
		pub := &recordingPublisher{err: errors.New("broker down")}
		svc := ledger.NewService(store, ledger.WithClock(ledger.FixedClock(testNow)), ledger.WithPublisher(pub))
		createAccount(t, store, "CASH", 0)

		_, err := svc.RecordTransaction(ctx, ledger.Transaction{
			Account: "CASH", Amount: 100, Direction: ledger.Credit, Date: ledger.DateOf(testNow),
		})
		require.NoError(t, err)
		assert.Len(t, pub.transactions, 1)
	})
}

func TestAggregates(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, testNow)
	createAccount(t, store, "CASH", 0)

	record := func(day ledger.Date, amount ledger.Money, dir ledger.Direction) {
		_, err := svc.RecordTransaction(ctx, ledger.Transaction{Account: "CASH", Amount: amount, Direction: dir, Date: day})
		require.NoError(t, err)
	}

	t.Run("should return zero with no transactions", func(t *testing.T) {
		spend, err := svc.TotalSpend(ctx, ledger.PeriodMonth)
		require.NoError(t, err)
		assert.Equal(t, ledger.Money(0), spend)

		daily, err := svc.CurrentMonthDaily(ctx)
		require.NoError(t, err)
		assert.Empty(t, daily)
	})

	record(ledger.NewDate(2024, time.June, 1), 1000, ledger.Debit)   // month boundary, included
	record(ledger.NewDate(2024, time.June, 30), 500, ledger.Debit)   // month boundary, included
	record(ledger.NewDate(2024, time.May, 31), 200, ledger.Debit)    // year only
	record(ledger.NewDate(2024, time.January, 1), 50, ledger.Debit)  // year boundary
	record(ledger.NewDate(2023, time.December, 31), 9, ledger.Debit) // outside
	record(ledger.NewDate(2024, time.June, 10), 4000, ledger.Credit)
	record(ledger.NewDate(2024, time.July, 1), 7000, ledger.Credit) // outside month

	t.Run("should sum month spend inclusive of boundaries", func(t *testing.T) {
		spend, err := svc.TotalSpend(ctx, ledger.PeriodMonth)
		require.NoError(t, err)
		assert.Equal(t, ledger.Money(1500), spend)
	})

	t.Run("should sum year spend", func(t *testing.T) {
		spend, err := svc.TotalSpend(ctx, ledger.PeriodYear)
		require.NoError(t, err)
		assert.Equal(t, ledger.Money(1750), spend)
	})

	t.Run("should sum month income", func(t *testing.T) {
		income, err := svc.TotalIncomeMonth(ctx)
		require.NoError(t, err)
		assert.Equal(t, ledger.Money(4000), income)
	})

	t.Run("should list both directions in the current month", func(t *testing.T) {
		daily, err := svc.CurrentMonthDaily(ctx)
		require.NoError(t, err)
		assert.Len(t, daily, 3)
	})

	t.Run("should reject unknown period", func(t *testing.T) {
		_, err := svc.TotalSpend(ctx, ledger.Period("week"))
		assert.True(t, ledger.IsValidation(err))
	})

	t.Run("summary should match individual aggregates", func(t *testing.T) {
		sum, err := svc.Summary(ctx)
		require.NoError(t, err)

		net, err := svc.TotalNetWorth(ctx)
		require.NoError(t, err)
		assert.Equal(t, net, sum.NetWorth)
		assert.Equal(t, ledger.Money(1500), sum.SpendMonth)
		assert.Equal(t, ledger.Money(1750), sum.SpendYear)
		assert.Equal(t, ledger.Money(4000), sum.IncomeMonth)
		assert.Equal(t, "2024-06-15", sum.AsOf.String())
	})
}

func TestRecordSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("should keep one snapshot per day with the latest total", func(t *testing.T) {
		svc, store := newTestService(t, testNow)
		cash := createAccount(t, store, "CASH", 10000)

		first, err := svc.RecordSnapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, ledger.Money(10000), first.TotalBalance)

		cash.Balance = 12500
		cash.Version = 0
		_, err = store.UpdateAccount(ctx, cash)
		require.NoError(t, err)

		second, err := svc.RecordSnapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, ledger.Money(12500), second.TotalBalance)
		assert.Equal(t, "2024-06-15", second.Date.String())

		list, err := svc.ListSnapshots(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, ledger.Money(12500), list[0].TotalBalance)
	})

	t.Run("should list snapshots oldest first", func(t *testing.T) {
		store := memory.New()
		createAccount(t, store, "CASH", 100)
		for _, day := range []int{20, 3, 11} {
			svc := ledger.NewService(store, ledger.WithClock(ledger.FixedClock(time.Date(2024, time.June, day, 23, 55, 0, 0, time.UTC))))
			_, err := svc.RecordSnapshot(ctx)
			require.NoError(t, err)
		}

		list, err := ledger.NewService(store).ListSnapshots(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "2024-06-03", list[0].Date.String())
		assert.Equal(t, "2024-06-11", list[1].Date.String())
		assert.Equal(t, "2024-06-20", list[2].Date.String())
	})

	t.Run("should publish snapshot event", func(t *testing.T) {
		store := memory.New()
		pub := &recordingPublisher{}
		svc := ledger.NewService(store, ledger.WithClock(ledger.FixedClock(testNow)), ledger.WithPublisher(pub))

		snap, err := svc.RecordSnapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, ledger.Money(0), snap.TotalBalance)
		require.Len(t, pub.snapshots, 1)
		assert.Equal(t, snap.Date, pub.snapshots[0].Date)
	})
}

func TestUpdateTransactionLeavesBalance(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, testNow)
	cash := createAccount(t, store, "CASH", 0)
	_, err := store.CreateCategory(ctx, ledger.Category{Name: "Dining"})
	require.NoError(t, err)

	tx, err := svc.RecordTransaction(ctx, ledger.Transaction{
		Account: "CASH", Amount: 1000, Direction: ledger.Credit, Date: ledger.DateOf(testNow),
	})
	require.NoError(t, err)

	tx.Amount = 5000
	tx.Category = "Dining"
	updated, err := svc.UpdateTransaction(ctx, tx)
	require.NoError(t, err)
	assert.Equal(t, ledger.Money(5000), updated.Amount)
	assert.NotEmpty(t, updated.CategoryID)

	got, err := store.GetAccount(ctx, cash.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.Money(1000), got.Balance)

	_, err = svc.UpdateTransaction(ctx, ledger.Transaction{Account: "CASH", Date: ledger.DateOf(testNow)})
	assert.True(t, ledger.IsValidation(err))
}

func TestUpdateTransactionResolvesAccount(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, testNow)
	cash := createAccount(t, store, "CASH", 0)
	ing := createAccount(t, store, "ING", 500)

	tx, err := svc.RecordTransaction(ctx, ledger.Transaction{
		Account: "CASH", Amount: 1000, Direction: ledger.Credit, Date: ledger.DateOf(testNow),
	})
	require.NoError(t, err)

	t.Run("should move the transaction to the account named in the update", func(t *testing.T) {
		moved := tx
		moved.AccountID = ""
		moved.Account = "ING"
		updated, err := svc.UpdateTransaction(ctx, moved)
		require.NoError(t, err)
		assert.Equal(t, ing.ID, updated.AccountID)
		assert.Equal(t, "ING", updated.Account)

		stored, err := store.GetTransaction(ctx, tx.ID)
		require.NoError(t, err)
		assert.Equal(t, ing.ID, stored.AccountID)

		got, err := store.GetAccount(ctx, cash.ID)
		require.NoError(t, err)
		assert.Equal(t, ledger.Money(1000), got.Balance)
		got, err = store.GetAccount(ctx, ing.ID)
		require.NoError(t, err)
		assert.Equal(t, ledger.Money(500), got.Balance)
	})

	t.Run("should refresh a stale account label from the id", func(t *testing.T) {
		relabelled := tx
		relabelled.AccountID = cash.ID
		relabelled.Account = "Old Wallet"
		relabelled.Version = 0
		updated, err := svc.UpdateTransaction(ctx, relabelled)
		require.NoError(t, err)
		assert.Equal(t, cash.ID, updated.AccountID)
		assert.Equal(t, "CASH", updated.Account)
	})

	t.Run("should reject an unknown account without touching the stored transaction", func(t *testing.T) {
		before, err := store.GetTransaction(ctx, tx.ID)
		require.NoError(t, err)

		for _, bad := range []ledger.Transaction{
			{AccountID: "does-not-exist"},
			{Account: "Nowhere"},
		} {
			update := tx
			update.AccountID = bad.AccountID
			update.Account = bad.Account
			update.Amount = 1
			_, err := svc.UpdateTransaction(ctx, update)
			assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
		}

		after, err := store.GetTransaction(ctx, tx.ID)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

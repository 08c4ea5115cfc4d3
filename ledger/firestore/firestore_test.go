package firestore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financetracker/ledger"
)

// openTestStore connects to the Firestore emulator and clears the ledger
// collections. Tests are skipped when FIRESTORE_EMULATOR_HOST is unset.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	store, err := Open(ctx, "financetracker-test")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	for _, c := range []string{accountsCollection, categoriesCollection, transactionsCollection, snapshotsCollection} {
		refs, err := store.client.Collection(c).DocumentRefs(ctx).GetAll()
		require.NoError(t, err)
		for _, ref := range refs {
			_, err := ref.Delete(ctx)
			require.NoError(t, err)
		}
	}
	return store
}

func TestRecordTransactionIncrementsBalance(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	cash, err := store.CreateAccount(ctx, ledger.Account{Name: "CASH"})
	require.NoError(t, err)

	day := ledger.NewDate(2024, time.June, 3)
	_, err = store.RecordTransaction(ctx, ledger.Transaction{Account: "CASH", Amount: 10000, Direction: ledger.Credit, Date: day})
	require.NoError(t, err)
	_, err = store.RecordTransaction(ctx, ledger.Transaction{AccountID: cash.ID, Amount: 3000, Direction: ledger.Debit, Date: day})
	require.NoError(t, err)

	got, err := store.GetAccount(ctx, cash.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.Money(7000), got.Balance)

	_, err = store.RecordTransaction(ctx, ledger.Transaction{Account: "GHOST", Amount: 1, Date: day})
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)

	debit := ledger.Debit
	spend, err := store.SumTransactions(ctx, ledger.TransactionFilter{Range: ledger.MonthOf(day), Direction: &debit})
	require.NoError(t, err)
	assert.Equal(t, ledger.Money(3000), spend)
}

func TestMissingDocuments(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.GetAccount(ctx, "missing")
	assert.True(t, ledger.IsNotFound(err))

	_, err = store.UpdateAccount(ctx, ledger.Account{ID: "missing", Name: "x"})
	assert.True(t, ledger.IsNotFound(err))

	assert.True(t, ledger.IsNotFound(store.DeleteTransaction(ctx, "missing")))

	ok, err := store.AccountExists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpsertSnapshotIsIdempotentPerDay(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	day := ledger.NewDate(2024, time.June, 15)
	_, err := store.UpsertSnapshot(ctx, day, 100)
	require.NoError(t, err)
	_, err = store.UpsertSnapshot(ctx, day.AddDays(-1), 50)
	require.NoError(t, err)
	_, err = store.UpsertSnapshot(ctx, day, 300)
	require.NoError(t, err)

	snaps, err := store.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, "2024-06-14", snaps[0].ID)
	assert.Equal(t, ledger.Money(300), snaps[1].TotalBalance)
}

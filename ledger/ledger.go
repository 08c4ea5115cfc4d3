// Package ledger holds the personal finance ledger: accounts with running
// balances, categories, transactions and daily net-worth snapshots.
//
// Persistence is delegated to a Store. Service layers the business rules on
// top: the balance effect of recording a transaction, the period aggregates
// and the once-per-day snapshot.
package ledger

import (
	"context"
	"time"
)

// Direction tells whether a transaction brings money into the account
// (Credit) or takes it out (Debit). The numeric values are part of the API.
type Direction int

const (
	Debit  Direction = 0
	Credit Direction = 1
)

// Valid reports whether d is one of the two known directions.
func (d Direction) Valid() bool {
	return d == Debit || d == Credit
}

func (d Direction) String() string {
	switch d {
	case Credit:
		return "credit"
	case Debit:
		return "debit"
	default:
		return "unknown"
	}
}

type (
	// Account is a money container whose balance moves only through
	// recorded transactions (or an explicit full replace).
	Account struct {
		ID      string
		Name    string
		Balance Money
		Version int64
	}

	Category struct {
		ID   string
		Name string
	}

	// Transaction is a single movement of money on one account.
	// Account and Category are the name labels; AccountID and CategoryID are
	// the references resolved when the transaction was recorded.
	Transaction struct {
		ID         string
		Date       Date
		Place      string
		Note       string
		Category   string
		CategoryID string
		Account    string
		AccountID  string
		Amount     Money
		Direction  Direction
		Version    int64
	}

	// Snapshot is the net worth recorded for one calendar day.
	Snapshot struct {
		ID           string
		Date         Date
		TotalBalance Money
	}

	// TransactionFilter selects transactions for SumTransactions.
	// A nil Direction matches both directions.
	TransactionFilter struct {
		Range     DateRange
		Direction *Direction
	}

	// Summary groups the dashboard aggregates.
	Summary struct {
		NetWorth    Money
		SpendMonth  Money
		SpendYear   Money
		IncomeMonth Money
		AsOf        Date
	}
)

// SignedAmount is the effect the transaction has on its account balance.
func (t Transaction) SignedAmount() Money {
	if t.Direction == Credit {
		return t.Amount
	}
	return -t.Amount
}

// Store is the persistence capability behind the ledger. Implementations
// translate their native errors to ErrNotFound, ErrAccountNotFound,
// ErrConflict and ErrInvalidID.
type Store interface {
	ListAccounts(ctx context.Context) ([]Account, error)
	GetAccount(ctx context.Context, id string) (Account, error)
	// FindAccountByName matches the name exactly. When several accounts
	// share it the one with the smallest id wins.
	FindAccountByName(ctx context.Context, name string) (Account, error)
	AccountExists(ctx context.Context, id string) (bool, error)
	CreateAccount(ctx context.Context, a Account) (Account, error)
	// UpdateAccount replaces the stored account. A non-zero Version must
	// match the stored one where the backing supports versioning.
	UpdateAccount(ctx context.Context, a Account) (Account, error)
	DeleteAccount(ctx context.Context, id string) error
	SumAccountBalances(ctx context.Context) (Money, error)

	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, c Category) (Category, error)
	DeleteCategory(ctx context.Context, id string) error
	FindCategoryByName(ctx context.Context, name string) (Category, error)

	ListTransactions(ctx context.Context) ([]Transaction, error)
	GetTransaction(ctx context.Context, id string) (Transaction, error)
	TransactionExists(ctx context.Context, id string) (bool, error)
	// RecordTransaction persists t and applies t.SignedAmount() to the
	// referenced account in one atomic unit. The account is looked up by
	// AccountID when set, by Account name otherwise.
	RecordTransaction(ctx context.Context, t Transaction) (Transaction, error)
	UpdateTransaction(ctx context.Context, t Transaction) (Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	SumTransactions(ctx context.Context, f TransactionFilter) (Money, error)
	ListTransactionsBetween(ctx context.Context, r DateRange) ([]Transaction, error)

	// UpsertSnapshot writes the total for day, replacing any snapshot
	// already stored for that day.
	UpsertSnapshot(ctx context.Context, day Date, total Money) (Snapshot, error)
	// ListSnapshots returns every snapshot ordered by date, oldest first.
	ListSnapshots(ctx context.Context) ([]Snapshot, error)

	Close() error
}

// EventPublisher receives notifications after ledger writes are committed.
type EventPublisher interface {
	TransactionRecorded(ctx context.Context, t Transaction, a Account) error
	SnapshotRecorded(ctx context.Context, s Snapshot) error
}

// Clock supplies the current time for period-bounded aggregates.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in the given location (UTC when nil).
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now().UTC()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant. Useful in tests and backfills.
type FixedClock time.Time

func (c FixedClock) Now() time.Time {
	return time.Time(c)
}

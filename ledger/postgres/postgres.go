// Package postgres is the relational ledger.Store, backed by pgx and the
// sqlc-generated queries in db/generated.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"financetracker/db/generated"
	"financetracker/ledger"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type Store struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

var _ ledger.Store = (*Store)(nil)

// Open connects to the database at url and verifies the connection.
func Open(ctx context.Context, url string) (*Store, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return New(pool), nil
}

// New wraps an existing pool. The store takes ownership of it.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, queries: generated.New(pool)}
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// translate maps driver errors onto ledger errors.
func translate(err error, kind, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ledger.NotFound(kind, id)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, ledger.ErrConflict)
		case foreignKeyViolation:
			// The only foreign keys point at accounts and categories.
			if strings.Contains(pgErr.ConstraintName, "account") {
				return fmt.Errorf("%s: %w", pgErr.ConstraintName, ledger.ErrAccountNotFound)
			}
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, ledger.ErrNotFound)
		}
	}
	return fmt.Errorf("%s %s: %w", kind, id, err)
}

// Accounts

func (s *Store) ListAccounts(ctx context.Context) ([]ledger.Account, error) {
	rows, err := s.queries.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	accounts := make([]ledger.Account, 0, len(rows))
	for _, row := range rows {
		a, err := toAccount(row)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

func (s *Store) GetAccount(ctx context.Context, id string) (ledger.Account, error) {
	pgID, err := parseID(id)
	if err != nil {
		return ledger.Account{}, err
	}
	row, err := s.queries.GetAccount(ctx, pgID)
	if err != nil {
		return ledger.Account{}, translate(err, "account", id)
	}
	return toAccount(row)
}

func (s *Store) FindAccountByName(ctx context.Context, name string) (ledger.Account, error) {
	row, err := s.queries.GetAccountByName(ctx, name)
	if err != nil {
		return ledger.Account{}, translate(err, "account", name)
	}
	return toAccount(row)
}

func (s *Store) AccountExists(ctx context.Context, id string) (bool, error) {
	pgID, err := parseID(id)
	if err != nil {
		return false, nil
	}
	return s.queries.AccountExists(ctx, pgID)
}

func (s *Store) CreateAccount(ctx context.Context, a ledger.Account) (ledger.Account, error) {
	row, err := s.queries.CreateAccount(ctx, generated.CreateAccountParams{
		Name:    a.Name,
		Balance: toNumeric(a.Balance),
	})
	if err != nil {
		return ledger.Account{}, translate(err, "account", a.Name)
	}
	return toAccount(row)
}

func (s *Store) UpdateAccount(ctx context.Context, a ledger.Account) (ledger.Account, error) {
	pgID, err := parseID(a.ID)
	if err != nil {
		return ledger.Account{}, err
	}
	row, err := s.queries.UpdateAccount(ctx, generated.UpdateAccountParams{
		Name:            a.Name,
		Balance:         toNumeric(a.Balance),
		ID:              pgID,
		ExpectedVersion: a.Version,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return ledger.Account{}, s.missingOrStale(ctx, s.queries.AccountExists, pgID, "account", a.ID)
	}
	if err != nil {
		return ledger.Account{}, translate(err, "account", a.ID)
	}
	return toAccount(row)
}

// missingOrStale tells apart the two reasons a versioned UPDATE matched no row.
func (s *Store) missingOrStale(ctx context.Context, exists func(context.Context, pgtype.UUID) (bool, error), id pgtype.UUID, kind, raw string) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check %s %s: %w", kind, raw, err)
	}
	if ok {
		return ledger.ErrConflict
	}
	return ledger.NotFound(kind, raw)
}

func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	pgID, err := parseID(id)
	if err != nil {
		return err
	}
	n, err := s.queries.DeleteAccount(ctx, pgID)
	if err != nil {
		return translate(err, "account", id)
	}
	if n == 0 {
		return ledger.NotFound("account", id)
	}
	return nil
}

func (s *Store) SumAccountBalances(ctx context.Context) (ledger.Money, error) {
	total, err := s.queries.SumAccountBalances(ctx)
	if err != nil {
		return 0, fmt.Errorf("sum account balances: %w", err)
	}
	return toMoney(total)
}

// Categories

func (s *Store) ListCategories(ctx context.Context) ([]ledger.Category, error) {
	rows, err := s.queries.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	categories := make([]ledger.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, toCategory(row))
	}
	return categories, nil
}

func (s *Store) CreateCategory(ctx context.Context, c ledger.Category) (ledger.Category, error) {
	row, err := s.queries.CreateCategory(ctx, c.Name)
	if err != nil {
		return ledger.Category{}, translate(err, "category", c.Name)
	}
	return toCategory(row), nil
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	pgID, err := parseID(id)
	if err != nil {
		return err
	}
	n, err := s.queries.DeleteCategory(ctx, pgID)
	if err != nil {
		return translate(err, "category", id)
	}
	if n == 0 {
		return ledger.NotFound("category", id)
	}
	return nil
}

func (s *Store) FindCategoryByName(ctx context.Context, name string) (ledger.Category, error) {
	row, err := s.queries.FindCategoryByName(ctx, name)
	if err != nil {
		return ledger.Category{}, translate(err, "category", name)
	}
	return toCategory(row), nil
}

// Transactions

func (s *Store) ListTransactions(ctx context.Context) ([]ledger.Transaction, error) {
	rows, err := s.queries.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return toTransactions(rows)
}

func toTransactions(rows []generated.Transaction) ([]ledger.Transaction, error) {
	out := make([]ledger.Transaction, 0, len(rows))
	for _, row := range rows {
		t, err := toTransaction(row)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *Store) GetTransaction(ctx context.Context, id string) (ledger.Transaction, error) {
	pgID, err := parseID(id)
	if err != nil {
		return ledger.Transaction{}, err
	}
	row, err := s.queries.GetTransaction(ctx, pgID)
	if err != nil {
		return ledger.Transaction{}, translate(err, "transaction", id)
	}
	return toTransaction(row)
}

func (s *Store) TransactionExists(ctx context.Context, id string) (bool, error) {
	pgID, err := parseID(id)
	if err != nil {
		return false, nil
	}
	return s.queries.TransactionExists(ctx, pgID)
}

// RecordTransaction inserts t and moves the account balance inside one
// database transaction. The account row is locked first so concurrent
// recordings against the same account serialize.
func (s *Store) RecordTransaction(ctx context.Context, t ledger.Transaction) (ledger.Transaction, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	q := s.queries.WithTx(tx)

	var account generated.Account
	if t.AccountID != "" {
		pgID, perr := parseID(t.AccountID)
		if perr != nil {
			return ledger.Transaction{}, ledger.ErrAccountNotFound
		}
		account, err = q.GetAccountForUpdate(ctx, pgID)
	} else {
		account, err = q.GetAccountByNameForUpdate(ctx, t.Account)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ledger.Transaction{}, ledger.ErrAccountNotFound
	}
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("lock account: %w", err)
	}

	row, err := q.CreateTransaction(ctx, generated.CreateTransactionParams{
		TxnDate:    toDate(t.Date),
		Place:      t.Place,
		Note:       t.Note,
		Category:   t.Category,
		CategoryID: optionalID(t.CategoryID),
		Account:    account.Name,
		AccountID:  account.ID,
		Amount:     toNumeric(t.Amount),
		Positive:   int16(t.Direction),
	})
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	if _, err := q.AdjustAccountBalance(ctx, generated.AdjustAccountBalanceParams{
		Delta: toNumeric(t.SignedAmount()),
		ID:    account.ID,
	}); err != nil {
		return ledger.Transaction{}, fmt.Errorf("adjust balance of %s: %w", account.Name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return ledger.Transaction{}, fmt.Errorf("commit transaction: %w", err)
	}
	return toTransaction(row)
}

func (s *Store) UpdateTransaction(ctx context.Context, t ledger.Transaction) (ledger.Transaction, error) {
	pgID, err := parseID(t.ID)
	if err != nil {
		return ledger.Transaction{}, err
	}
	row, err := s.queries.UpdateTransaction(ctx, generated.UpdateTransactionParams{
		TxnDate:         toDate(t.Date),
		Place:           t.Place,
		Note:            t.Note,
		Category:        t.Category,
		CategoryID:      optionalID(t.CategoryID),
		Account:         t.Account,
		AccountID:       optionalID(t.AccountID),
		Amount:          toNumeric(t.Amount),
		Positive:        int16(t.Direction),
		ID:              pgID,
		ExpectedVersion: t.Version,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return ledger.Transaction{}, s.missingOrStale(ctx, s.queries.TransactionExists, pgID, "transaction", t.ID)
	}
	if err != nil {
		return ledger.Transaction{}, translate(err, "transaction", t.ID)
	}
	return toTransaction(row)
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	pgID, err := parseID(id)
	if err != nil {
		return err
	}
	n, err := s.queries.DeleteTransaction(ctx, pgID)
	if err != nil {
		return translate(err, "transaction", id)
	}
	if n == 0 {
		return ledger.NotFound("transaction", id)
	}
	return nil
}

func (s *Store) SumTransactions(ctx context.Context, f ledger.TransactionFilter) (ledger.Money, error) {
	params := generated.SumTransactionsParams{
		FromDate: toDate(f.Range.From),
		ToDate:   toDate(f.Range.To),
	}
	if f.Direction != nil {
		params.Positive = pgtype.Int2{Int16: int16(*f.Direction), Valid: true}
	}
	total, err := s.queries.SumTransactions(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("sum transactions: %w", err)
	}
	return toMoney(total)
}

func (s *Store) ListTransactionsBetween(ctx context.Context, r ledger.DateRange) ([]ledger.Transaction, error) {
	rows, err := s.queries.ListTransactionsBetween(ctx, generated.ListTransactionsBetweenParams{
		FromDate: toDate(r.From),
		ToDate:   toDate(r.To),
	})
	if err != nil {
		return nil, fmt.Errorf("list transactions %s..%s: %w", r.From, r.To, err)
	}
	return toTransactions(rows)
}

// Snapshots

func (s *Store) UpsertSnapshot(ctx context.Context, day ledger.Date, total ledger.Money) (ledger.Snapshot, error) {
	row, err := s.queries.UpsertSnapshot(ctx, generated.UpsertSnapshotParams{
		SnapshotDate: toDate(day),
		TotalBalance: toNumeric(total),
	})
	if err != nil {
		return ledger.Snapshot{}, fmt.Errorf("upsert snapshot %s: %w", day, err)
	}
	return toSnapshot(row)
}

func (s *Store) ListSnapshots(ctx context.Context) ([]ledger.Snapshot, error) {
	rows, err := s.queries.ListSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	snapshots := make([]ledger.Snapshot, 0, len(rows))
	for _, row := range rows {
		snap, err := toSnapshot(row)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}

// Package firestore is the document ledger.Store on Cloud Firestore.
//
// Documents carry no version token: full replaces are last-write-wins.
// Balance updates go through a Firestore transaction with an atomic
// increment, and snapshots use the ISO date as document id so the daily
// upsert is idempotent.
package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"financetracker/ledger"
)

type Store struct {
	client *firestore.Client
}

var _ ledger.Store = (*Store)(nil)

// Open creates a client for projectID. When FIRESTORE_EMULATOR_HOST is set
// the client talks to the emulator.
func Open(ctx context.Context, projectID string) (*Store, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return New(client), nil
}

func New(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Close() error {
	return s.client.Close()
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func translate(err error, kind, id string) error {
	if isNotFound(err) {
		return ledger.NotFound(kind, id)
	}
	return fmt.Errorf("%s %s: %w", kind, id, err)
}

// each runs fn for every document the iterator yields.
func each(it *firestore.DocumentIterator, fn func(*firestore.DocumentSnapshot) error) error {
	defer it.Stop()
	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
}

// Accounts

func (s *Store) ListAccounts(ctx context.Context) ([]ledger.Account, error) {
	var accounts []ledger.Account
	it := s.client.Collection(accountsCollection).OrderBy("accountName", firestore.Asc).Documents(ctx)
	err := each(it, func(doc *firestore.DocumentSnapshot) error {
		var d accountDoc
		if err := doc.DataTo(&d); err != nil {
			return fmt.Errorf("decode account %s: %w", doc.Ref.ID, err)
		}
		accounts = append(accounts, d.toAccount(doc.Ref.ID))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

func (s *Store) GetAccount(ctx context.Context, id string) (ledger.Account, error) {
	doc, err := s.client.Collection(accountsCollection).Doc(id).Get(ctx)
	if err != nil {
		return ledger.Account{}, translate(err, "account", id)
	}
	var d accountDoc
	if err := doc.DataTo(&d); err != nil {
		return ledger.Account{}, fmt.Errorf("decode account %s: %w", id, err)
	}
	return d.toAccount(id), nil
}

// FindAccountByName relies on Firestore returning query results in document
// id order when no ordering is given.
func (s *Store) FindAccountByName(ctx context.Context, name string) (ledger.Account, error) {
	q := s.client.Collection(accountsCollection).Where("accountName", "==", name).Limit(1)
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return ledger.Account{}, fmt.Errorf("find account %q: %w", name, err)
	}
	if len(snaps) == 0 {
		return ledger.Account{}, ledger.NotFound("account", name)
	}
	var d accountDoc
	if err := snaps[0].DataTo(&d); err != nil {
		return ledger.Account{}, fmt.Errorf("decode account %s: %w", snaps[0].Ref.ID, err)
	}
	return d.toAccount(snaps[0].Ref.ID), nil
}

func (s *Store) AccountExists(ctx context.Context, id string) (bool, error) {
	return s.exists(ctx, accountsCollection, id)
}

func (s *Store) exists(ctx context.Context, collection, id string) (bool, error) {
	_, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if isNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return true, nil
}

func (s *Store) CreateAccount(ctx context.Context, a ledger.Account) (ledger.Account, error) {
	ref := s.client.Collection(accountsCollection).NewDoc()
	if _, err := ref.Create(ctx, accountDoc{Name: a.Name, BalanceCents: a.Balance.Cents()}); err != nil {
		return ledger.Account{}, fmt.Errorf("create account: %w", err)
	}
	a.ID = ref.ID
	a.Version = 0
	return a, nil
}

// UpdateAccount replaces name and balance. The version token is ignored.
func (s *Store) UpdateAccount(ctx context.Context, a ledger.Account) (ledger.Account, error) {
	_, err := s.client.Collection(accountsCollection).Doc(a.ID).Update(ctx, []firestore.Update{
		{Path: "accountName", Value: a.Name},
		{Path: "accountAmountCents", Value: a.Balance.Cents()},
	})
	if err != nil {
		return ledger.Account{}, translate(err, "account", a.ID)
	}
	a.Version = 0
	return a, nil
}

func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	return s.delete(ctx, accountsCollection, "account", id)
}

func (s *Store) delete(ctx context.Context, collection, kind, id string) error {
	_, err := s.client.Collection(collection).Doc(id).Delete(ctx, firestore.Exists)
	if err != nil {
		return translate(err, kind, id)
	}
	return nil
}

func (s *Store) SumAccountBalances(ctx context.Context) (ledger.Money, error) {
	var total int64
	err := each(s.client.Collection(accountsCollection).Documents(ctx), func(doc *firestore.DocumentSnapshot) error {
		var d accountDoc
		if err := doc.DataTo(&d); err != nil {
			return fmt.Errorf("decode account %s: %w", doc.Ref.ID, err)
		}
		total += d.BalanceCents
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("sum account balances: %w", err)
	}
	return ledger.Money(total), nil
}

// Categories

func (s *Store) ListCategories(ctx context.Context) ([]ledger.Category, error) {
	var categories []ledger.Category
	it := s.client.Collection(categoriesCollection).OrderBy("categoryName", firestore.Asc).Documents(ctx)
	err := each(it, func(doc *firestore.DocumentSnapshot) error {
		var d categoryDoc
		if err := doc.DataTo(&d); err != nil {
			return fmt.Errorf("decode category %s: %w", doc.Ref.ID, err)
		}
		categories = append(categories, d.toCategory(doc.Ref.ID))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *Store) CreateCategory(ctx context.Context, c ledger.Category) (ledger.Category, error) {
	ref := s.client.Collection(categoriesCollection).NewDoc()
	if _, err := ref.Create(ctx, categoryDoc{Name: c.Name}); err != nil {
		return ledger.Category{}, fmt.Errorf("create category: %w", err)
	}
	c.ID = ref.ID
	return c, nil
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	return s.delete(ctx, categoriesCollection, "category", id)
}

// FindCategoryByName matches case-insensitively, which Firestore queries
// cannot express, so it scans the (small) category collection.
func (s *Store) FindCategoryByName(ctx context.Context, name string) (ledger.Category, error) {
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return ledger.Category{}, err
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return ledger.Category{}, ledger.NotFound("category", name)
}

// Transactions

func (s *Store) ListTransactions(ctx context.Context) ([]ledger.Transaction, error) {
	q := s.client.Collection(transactionsCollection).OrderBy("date", firestore.Desc)
	txs, err := s.queryTransactions(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

func (s *Store) queryTransactions(ctx context.Context, q firestore.Query) ([]ledger.Transaction, error) {
	var txs []ledger.Transaction
	err := each(q.Documents(ctx), func(doc *firestore.DocumentSnapshot) error {
		var d transactionDoc
		if err := doc.DataTo(&d); err != nil {
			return fmt.Errorf("decode transaction %s: %w", doc.Ref.ID, err)
		}
		txs = append(txs, d.toTransaction(doc.Ref.ID))
		return nil
	})
	return txs, err
}

func (s *Store) GetTransaction(ctx context.Context, id string) (ledger.Transaction, error) {
	doc, err := s.client.Collection(transactionsCollection).Doc(id).Get(ctx)
	if err != nil {
		return ledger.Transaction{}, translate(err, "transaction", id)
	}
	var d transactionDoc
	if err := doc.DataTo(&d); err != nil {
		return ledger.Transaction{}, fmt.Errorf("decode transaction %s: %w", id, err)
	}
	return d.toTransaction(id), nil
}

func (s *Store) TransactionExists(ctx context.Context, id string) (bool, error) {
	return s.exists(ctx, transactionsCollection, id)
}

// RecordTransaction resolves the account, creates the transaction and
// increments the balance inside one Firestore transaction.
func (s *Store) RecordTransaction(ctx context.Context, t ledger.Transaction) (ledger.Transaction, error) {
	accounts := s.client.Collection(accountsCollection)
	txRef := s.client.Collection(transactionsCollection).NewDoc()

	var recorded ledger.Transaction
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var accountDocSnap *firestore.DocumentSnapshot
		if t.AccountID != "" {
			snap, err := tx.Get(accounts.Doc(t.AccountID))
			if isNotFound(err) {
				return ledger.ErrAccountNotFound
			}
			if err != nil {
				return err
			}
			accountDocSnap = snap
		} else {
			snaps, err := tx.Documents(accounts.Where("accountName", "==", t.Account).Limit(1)).GetAll()
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				return ledger.ErrAccountNotFound
			}
			accountDocSnap = snaps[0]
		}

		var account accountDoc
		if err := accountDocSnap.DataTo(&account); err != nil {
			return fmt.Errorf("decode account %s: %w", accountDocSnap.Ref.ID, err)
		}

		rec := t
		rec.AccountID = accountDocSnap.Ref.ID
		rec.Account = account.Name
		if err := tx.Create(txRef, newTransactionDoc(rec)); err != nil {
			return err
		}
		if err := tx.Update(accountDocSnap.Ref, []firestore.Update{
			{Path: "accountAmountCents", Value: firestore.Increment(t.SignedAmount().Cents())},
		}); err != nil {
			return err
		}

		rec.ID = txRef.ID
		recorded = rec
		return nil
	})
	if errors.Is(err, ledger.ErrAccountNotFound) {
		return ledger.Transaction{}, ledger.ErrAccountNotFound
	}
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("record transaction: %w", err)
	}
	return recorded, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, t ledger.Transaction) (ledger.Transaction, error) {
	d := newTransactionDoc(t)
	_, err := s.client.Collection(transactionsCollection).Doc(t.ID).Update(ctx, []firestore.Update{
		{Path: "date", Value: d.Date},
		{Path: "place", Value: d.Place},
		{Path: "note", Value: d.Note},
		{Path: "category", Value: d.Category},
		{Path: "categoryId", Value: d.CategoryID},
		{Path: "account", Value: d.Account},
		{Path: "accountId", Value: d.AccountID},
		{Path: "amountCents", Value: d.AmountCents},
		{Path: "positive", Value: d.Positive},
	})
	if err != nil {
		return ledger.Transaction{}, translate(err, "transaction", t.ID)
	}
	t.Version = 0
	return t, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	return s.delete(ctx, transactionsCollection, "transaction", id)
}

func (s *Store) between(r ledger.DateRange) firestore.Query {
	return s.client.Collection(transactionsCollection).
		Where("date", ">=", r.From.Time).
		Where("date", "<=", r.To.Time)
}

// SumTransactions filters direction client side so the query needs only the
// single-field index on date.
func (s *Store) SumTransactions(ctx context.Context, f ledger.TransactionFilter) (ledger.Money, error) {
	txs, err := s.queryTransactions(ctx, s.between(f.Range))
	if err != nil {
		return 0, fmt.Errorf("sum transactions: %w", err)
	}
	var total ledger.Money
	for _, t := range txs {
		if f.Direction != nil && t.Direction != *f.Direction {
			continue
		}
		total += t.Amount
	}
	return total, nil
}

func (s *Store) ListTransactionsBetween(ctx context.Context, r ledger.DateRange) ([]ledger.Transaction, error) {
	txs, err := s.queryTransactions(ctx, s.between(r).OrderBy("date", firestore.Desc))
	if err != nil {
		return nil, fmt.Errorf("list transactions %s..%s: %w", r.From, r.To, err)
	}
	return txs, nil
}

// Snapshots

func (s *Store) UpsertSnapshot(ctx context.Context, day ledger.Date, total ledger.Money) (ledger.Snapshot, error) {
	id := day.String()
	_, err := s.client.Collection(snapshotsCollection).Doc(id).Set(ctx, snapshotDoc{
		SnapshotDate:      day.Time,
		TotalBalanceCents: total.Cents(),
	})
	if err != nil {
		return ledger.Snapshot{}, fmt.Errorf("upsert snapshot %s: %w", id, err)
	}
	return ledger.Snapshot{ID: id, Date: day, TotalBalance: total}, nil
}

func (s *Store) ListSnapshots(ctx context.Context) ([]ledger.Snapshot, error) {
	var snapshots []ledger.Snapshot
	it := s.client.Collection(snapshotsCollection).OrderBy("snapshotDate", firestore.Asc).Documents(ctx)
	err := each(it, func(doc *firestore.DocumentSnapshot) error {
		var d snapshotDoc
		if err := doc.DataTo(&d); err != nil {
			return fmt.Errorf("decode snapshot %s: %w", doc.Ref.ID, err)
		}
		snapshots = append(snapshots, d.toSnapshot(doc.Ref.ID))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return snapshots, nil
}

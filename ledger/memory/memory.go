// Package memory is an in-process ledger.Store. State lives in maps guarded
// by a single mutex and is lost on restart.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"financetracker/ledger"
)

type Store struct {
	mu           sync.Mutex
	accounts     map[string]ledger.Account
	categories   map[string]ledger.Category
	transactions map[string]ledger.Transaction
	snapshots    map[string]ledger.Snapshot // keyed by YYYY-MM-DD
}

var _ ledger.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		accounts:     make(map[string]ledger.Account),
		categories:   make(map[string]ledger.Category),
		transactions: make(map[string]ledger.Transaction),
		snapshots:    make(map[string]ledger.Snapshot),
	}
}

func (s *Store) Close() error { return nil }

// Accounts

func (s *Store) ListAccounts(_ context.Context) ([]ledger.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ledger.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetAccount(_ context.Context, id string) (ledger.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return ledger.Account{}, ledger.NotFound("account", id)
	}
	return a, nil
}

func (s *Store) AccountExists(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.accounts[id]
	return ok, nil
}

func (s *Store) CreateAccount(_ context.Context, a ledger.Account) (ledger.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = uuid.NewString()
	a.Version = 1
	s.accounts[a.ID] = a
	return a, nil
}

func (s *Store) UpdateAccount(_ context.Context, a ledger.Account) (ledger.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.accounts[a.ID]
	if !ok {
		return ledger.Account{}, ledger.NotFound("account", a.ID)
	}
	if a.Version != 0 && a.Version != current.Version {
		return ledger.Account{}, ledger.ErrConflict
	}
	a.Version = current.Version + 1
	s.accounts[a.ID] = a
	return a, nil
}

func (s *Store) DeleteAccount(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[id]; !ok {
		return ledger.NotFound("account", id)
	}
	delete(s.accounts, id)
	return nil
}

func (s *Store) SumAccountBalances(_ context.Context) (ledger.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total ledger.Money
	for _, a := range s.accounts {
		total += a.Balance
	}
	return total, nil
}

func (s *Store) FindAccountByName(_ context.Context, name string) (ledger.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.resolveAccount(ledger.Transaction{Account: name})
	if !ok {
		return ledger.Account{}, ledger.NotFound("account", name)
	}
	return a, nil
}

// Categories

func (s *Store) ListCategories(_ context.Context) ([]ledger.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ledger.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CreateCategory(_ context.Context, c ledger.Category) (ledger.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = uuid.NewString()
	s.categories[c.ID] = c
	return c, nil
}

func (s *Store) DeleteCategory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return ledger.NotFound("category", id)
	}
	delete(s.categories, id)
	return nil
}

func (s *Store) FindCategoryByName(_ context.Context, name string) (ledger.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return ledger.Category{}, ledger.NotFound("category", name)
}

// Transactions

func (s *Store) ListTransactions(_ context.Context) ([]ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedTransactions(func(ledger.Transaction) bool { return true }), nil
}

func (s *Store) GetTransaction(_ context.Context, id string) (ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[id]
	if !ok {
		return ledger.Transaction{}, ledger.NotFound("transaction", id)
	}
	return t, nil
}

func (s *Store) TransactionExists(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.transactions[id]
	return ok, nil
}

func (s *Store) RecordTransaction(_ context.Context, t ledger.Transaction) (ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.resolveAccount(t)
	if !ok {
		return ledger.Transaction{}, ledger.ErrAccountNotFound
	}

	account.Balance += t.SignedAmount()
	account.Version++
	s.accounts[account.ID] = account

	t.ID = uuid.NewString()
	t.AccountID = account.ID
	t.Account = account.Name
	t.Version = 1
	s.transactions[t.ID] = t
	return t, nil
}

// resolveAccount finds the account by id first, then by name. Callers hold s.mu.
func (s *Store) resolveAccount(t ledger.Transaction) (ledger.Account, bool) {
	if t.AccountID != "" {
		a, ok := s.accounts[t.AccountID]
		return a, ok
	}
	// Names are not unique; pick the first by id for a stable choice.
	var found ledger.Account
	ok := false
	for _, a := range s.accounts {
		if a.Name == t.Account && (!ok || a.ID < found.ID) {
			found, ok = a, true
		}
	}
	return found, ok
}

func (s *Store) UpdateTransaction(_ context.Context, t ledger.Transaction) (ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.transactions[t.ID]
	if !ok {
		return ledger.Transaction{}, ledger.NotFound("transaction", t.ID)
	}
	if t.Version != 0 && t.Version != current.Version {
		return ledger.Transaction{}, ledger.ErrConflict
	}
	t.Version = current.Version + 1
	s.transactions[t.ID] = t
	return t, nil
}

func (s *Store) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.transactions[id]; !ok {
		return ledger.NotFound("transaction", id)
	}
	delete(s.transactions, id)
	return nil
}

func (s *Store) SumTransactions(_ context.Context, f ledger.TransactionFilter) (ledger.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total ledger.Money
	for _, t := range s.transactions {
		if !f.Range.Contains(t.Date) {
			continue
		}
		if f.Direction != nil && t.Direction != *f.Direction {
			continue
		}
		total += t.Amount
	}
	return total, nil
}

func (s *Store) ListTransactionsBetween(_ context.Context, r ledger.DateRange) ([]ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedTransactions(func(t ledger.Transaction) bool { return r.Contains(t.Date) }), nil
}

// sortedTransactions returns matching transactions newest first. Callers hold s.mu.
func (s *Store) sortedTransactions(keep func(ledger.Transaction) bool) []ledger.Transaction {
	out := make([]ledger.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Snapshots

func (s *Store) UpsertSnapshot(_ context.Context, day ledger.Date, total ledger.Money) (ledger.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := day.String()
	snap, ok := s.snapshots[key]
	if !ok {
		snap = ledger.Snapshot{ID: uuid.NewString(), Date: day}
	}
	snap.TotalBalance = total
	s.snapshots[key] = snap
	return snap, nil
}

func (s *Store) ListSnapshots(_ context.Context) ([]ledger.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ledger.Snapshot, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

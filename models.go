package main

import "financetracker/ledger"

// Account represents a money container with a running balance
type Account struct {
	ID            string       `json:"id"`
	AccountName   string       `json:"accountName"`
	AccountAmount ledger.Money `json:"accountAmount" swaggertype:"number"`
	// Version is the optimistic concurrency token; omit or send 0 to overwrite unconditionally
	Version int64 `json:"version,omitempty"`
}

// Category represents a transaction category
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Transaction represents a single movement of money on an account
type Transaction struct {
	ID         string       `json:"id"`
	Date       ledger.Date  `json:"date" swaggertype:"string" example:"2024-06-01"`
	Place      string       `json:"place"`
	Note       string       `json:"note"`
	Category   string       `json:"category"`
	CategoryID string       `json:"categoryId,omitempty"`
	Account    string       `json:"account"`
	AccountID  string       `json:"accountId,omitempty"`
	Amount     ledger.Money `json:"amount" swaggertype:"number"`
	// Positive is 1 for a credit (money in) and 0 for a debit (money out)
	Positive int   `json:"positive"`
	Version  int64 `json:"version,omitempty"`
}

// DailyBalanceSnapshot represents the net worth recorded for one day
type DailyBalanceSnapshot struct {
	ID           string       `json:"id"`
	SnapshotDate ledger.Date  `json:"snapshotDate" swaggertype:"string" example:"2024-06-01"`
	TotalBalance ledger.Money `json:"totalBalance" swaggertype:"number"`
}

// Summary groups the dashboard figures
type Summary struct {
	TotalNetworth    ledger.Money `json:"totalNetworth" swaggertype:"number"`
	TotalSpendMonth  ledger.Money `json:"totalSpendMonth" swaggertype:"number"`
	TotalSpendYear   ledger.Money `json:"totalSpendYear" swaggertype:"number"`
	TotalIncomeMonth ledger.Money `json:"totalIncomeMonth" swaggertype:"number"`
	AsOf             ledger.Date  `json:"asOf" swaggertype:"string" example:"2024-06-15"`
}

func newAccount(a ledger.Account) Account {
	return Account{ID: a.ID, AccountName: a.Name, AccountAmount: a.Balance, Version: a.Version}
}

func (a Account) toLedger() ledger.Account {
	return ledger.Account{ID: a.ID, Name: a.AccountName, Balance: a.AccountAmount, Version: a.Version}
}

func newCategory(c ledger.Category) Category {
	return Category{ID: c.ID, Name: c.Name}
}

func newTransaction(t ledger.Transaction) Transaction {
	return Transaction{
		ID:         t.ID,
		Date:       t.Date,
		Place:      t.Place,
		Note:       t.Note,
		Category:   t.Category,
		CategoryID: t.CategoryID,
		Account:    t.Account,
		AccountID:  t.AccountID,
		Amount:     t.Amount,
		Positive:   int(t.Direction),
		Version:    t.Version,
	}
}

func (t Transaction) toLedger() ledger.Transaction {
	return ledger.Transaction{
		ID:         t.ID,
		Date:       t.Date,
		Place:      t.Place,
		Note:       t.Note,
		Category:   t.Category,
		CategoryID: t.CategoryID,
		Account:    t.Account,
		AccountID:  t.AccountID,
		Amount:     t.Amount,
		Direction:  ledger.Direction(t.Positive),
		Version:    t.Version,
	}
}

func newTransactions(in []ledger.Transaction) []Transaction {
	out := make([]Transaction, 0, len(in))
	for _, t := range in {
		out = append(out, newTransaction(t))
	}
	return out
}

func newSnapshot(s ledger.Snapshot) DailyBalanceSnapshot {
	return DailyBalanceSnapshot{ID: s.ID, SnapshotDate: s.Date, TotalBalance: s.TotalBalance}
}

func newSummary(s ledger.Summary) Summary {
	return Summary{
		TotalNetworth:    s.NetWorth,
		TotalSpendMonth:  s.SpendMonth,
		TotalSpendYear:   s.SpendYear,
		TotalIncomeMonth: s.IncomeMonth,
		AsOf:             s.AsOf,
	}
}

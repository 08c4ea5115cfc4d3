package firestore

import (
	"time"

	"financetracker/ledger"
)

// Collection names follow the camelCase used by the web client.
const (
	accountsCollection     = "accounts"
	categoriesCollection   = "categories"
	transactionsCollection = "transactions"
	snapshotsCollection    = "dailyBalanceSnapshots"
)

// Amounts are stored as integer cents so that firestore.Increment stays exact.
type accountDoc struct {
	Name         string `firestore:"accountName"`
	BalanceCents int64  `firestore:"accountAmountCents"`
}

type categoryDoc struct {
	Name string `firestore:"categoryName"`
}

type transactionDoc struct {
	Date        time.Time `firestore:"date"`
	Place       string    `firestore:"place"`
	Note        string    `firestore:"note"`
	Category    string    `firestore:"category"`
	CategoryID  string    `firestore:"categoryId"`
	Account     string    `firestore:"account"`
	AccountID   string    `firestore:"accountId"`
	AmountCents int64     `firestore:"amountCents"`
	Positive    int64     `firestore:"positive"`
}

type snapshotDoc struct {
	SnapshotDate      time.Time `firestore:"snapshotDate"`
	TotalBalanceCents int64     `firestore:"totalBalanceCents"`
}

func (d accountDoc) toAccount(id string) ledger.Account {
	return ledger.Account{ID: id, Name: d.Name, Balance: ledger.Money(d.BalanceCents)}
}

func (d categoryDoc) toCategory(id string) ledger.Category {
	return ledger.Category{ID: id, Name: d.Name}
}

func newTransactionDoc(t ledger.Transaction) transactionDoc {
	return transactionDoc{
		Date:        t.Date.Time,
		Place:       t.Place,
		Note:        t.Note,
		Category:    t.Category,
		CategoryID:  t.CategoryID,
		Account:     t.Account,
		AccountID:   t.AccountID,
		AmountCents: t.Amount.Cents(),
		Positive:    int64(t.Direction),
	}
}

func (d transactionDoc) toTransaction(id string) ledger.Transaction {
	return ledger.Transaction{
		ID:         id,
		Date:       ledger.DateOf(d.Date.UTC()),
		Place:      d.Place,
		Note:       d.Note,
		Category:   d.Category,
		CategoryID: d.CategoryID,
		Account:    d.Account,
		AccountID:  d.AccountID,
		Amount:     ledger.Money(d.AmountCents),
		Direction:  ledger.Direction(d.Positive),
	}
}

func (d snapshotDoc) toSnapshot(id string) ledger.Snapshot {
	return ledger.Snapshot{
		ID:           id,
		Date:         ledger.DateOf(d.SnapshotDate.UTC()),
		TotalBalance: ledger.Money(d.TotalBalanceCents),
	}
}

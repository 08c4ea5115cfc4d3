package firestore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"financetracker/ledger"
)

func TestTransactionDocRoundTrip(t *testing.T) {
	tx := ledger.Transaction{
		Date:       ledger.NewDate(2024, time.June, 1),
		Place:      "Market",
		Note:       "weekly",
		Category:   "Groceries",
		CategoryID: "cat-1",
		Account:    "CASH",
		AccountID:  "acc-1",
		Amount:     1999,
		Direction:  ledger.Debit,
	}

	d := newTransactionDoc(tx)
	assert.Equal(t, int64(1999), d.AmountCents)
	assert.Equal(t, int64(0), d.Positive)

	got := d.toTransaction("tx-1")
	tx.ID = "tx-1"
	assert.Equal(t, tx, got)
}

func TestSnapshotDocUsesUTCDay(t *testing.T) {
	// Firestore hands timestamps back in local time.
	local := time.Date(2024, time.June, 1, 1, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	snap := snapshotDoc{SnapshotDate: local, TotalBalanceCents: 500}.toSnapshot("2024-05-31")
	assert.Equal(t, "2024-05-31", snap.Date.String())
	assert.Equal(t, ledger.Money(500), snap.TotalBalance)
}

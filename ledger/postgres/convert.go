package postgres

import (
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"financetracker/db/generated"
	"financetracker/ledger"
)

// parseID turns an API id into a pgtype.UUID.
func parseID(id string) (pgtype.UUID, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return pgtype.UUID{}, ledger.ErrInvalidID
	}
	return pgtype.UUID{Bytes: u, Valid: true}, nil
}

// optionalID is parseID for nullable references: empty or malformed ids become NULL.
func optionalID(id string) pgtype.UUID {
	u, err := uuid.Parse(id)
	if err != nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: u, Valid: true}
}

func idString(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	return uuid.UUID(id.Bytes).String()
}

func toNumeric(m ledger.Money) pgtype.Numeric {
	return pgtype.Numeric{Int: big.NewInt(m.Cents()), Exp: -2, Valid: true}
}

// toMoney rescales a NUMERIC to cents. Digits past the second decimal are truncated;
// the schema stores NUMERIC(14, 2) so there are none in practice.
func toMoney(n pgtype.Numeric) (ledger.Money, error) {
	if n.NaN || n.InfinityModifier != pgtype.Finite {
		return 0, fmt.Errorf("numeric value is not finite")
	}
	if !n.Valid || n.Int == nil {
		return 0, nil
	}

	m, err := ledger.MoneyFromDecimal(decimal.NewFromBigInt(n.Int, n.Exp).Truncate(2))
	if err != nil {
		return 0, fmt.Errorf("numeric value overflows cents: %w", err)
	}
	return m, nil
}

func toDate(d ledger.Date) pgtype.Date {
	return pgtype.Date{Time: d.Time, Valid: true}
}

func toAccount(a generated.Account) (ledger.Account, error) {
	balance, err := toMoney(a.Balance)
	if err != nil {
		return ledger.Account{}, fmt.Errorf("account %s balance: %w", idString(a.ID), err)
	}
	return ledger.Account{
		ID:      idString(a.ID),
		Name:    a.Name,
		Balance: balance,
		Version: a.Version,
	}, nil
}

func toCategory(c generated.Category) ledger.Category {
	return ledger.Category{ID: idString(c.ID), Name: c.Name}
}

func toTransaction(t generated.Transaction) (ledger.Transaction, error) {
	amount, err := toMoney(t.Amount)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("transaction %s amount: %w", idString(t.ID), err)
	}
	return ledger.Transaction{
		ID:         idString(t.ID),
		Date:       ledger.DateOf(t.TxnDate.Time),
		Place:      t.Place,
		Note:       t.Note,
		Category:   t.Category,
		CategoryID: idString(t.CategoryID),
		Account:    t.Account,
		AccountID:  idString(t.AccountID),
		Amount:     amount,
		Direction:  ledger.Direction(t.Positive),
		Version:    t.Version,
	}, nil
}

func toSnapshot(s generated.DailyBalanceSnapshot) (ledger.Snapshot, error) {
	total, err := toMoney(s.TotalBalance)
	if err != nil {
		return ledger.Snapshot{}, fmt.Errorf("snapshot %s total: %w", idString(s.ID), err)
	}
	return ledger.Snapshot{
		ID:           idString(s.ID),
		Date:         ledger.DateOf(s.SnapshotDate.Time),
		TotalBalance: total,
	}, nil
}

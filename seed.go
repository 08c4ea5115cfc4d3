package main

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"financetracker/ledger"
)

var (
	demoAccounts = []ledger.Account{
		{Name: "CASH", Balance: 100000},
		{Name: "ING", Balance: 500000},
		{Name: "CREDIT CARD", Balance: 200000},
	}
	demoCategories = []string{"Groceries", "Utilities", "Entertainment", "Transportation", "Health", "Education", "Dining", "Shopping"}
	demoPlaces     = []string{"Albert Heijn", "Jumbo", "NS", "Shell", "Bol.com", "Kruidvat", "Cafe de Jaren", "Pathe"}
)

const demoTransactionCount = 30

// seedDemoData fills an empty ledger with sample accounts (opening balances
// included), categories and a month of transactions. Transactions go through the service so balances
// match the history. A ledger that already has accounts is left alone.
func seedDemoData(ctx context.Context, svc *ledger.Service, log zerolog.Logger) error {
	store := svc.Store()

	existing, err := store.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}
	if len(existing) > 0 {
		log.Info().Int("accounts", len(existing)).Msg("Ledger already has data, skipping demo seed")
		return nil
	}

	for _, account := range demoAccounts {
		if _, err := store.CreateAccount(ctx, account); err != nil {
			return fmt.Errorf("create account %s: %w", account.Name, err)
		}
	}
	for _, name := range demoCategories {
		if _, err := store.CreateCategory(ctx, ledger.Category{Name: name}); err != nil {
			return fmt.Errorf("create category %s: %w", name, err)
		}
	}

	rng := rand.New(rand.NewPCG(42, 1024))
	today := svc.Today()
	for i := 0; i < demoTransactionCount; i++ {
		t := ledger.Transaction{
			Date:      today.AddDays(-rng.IntN(30)),
			Place:     demoPlaces[rng.IntN(len(demoPlaces))],
			Category:  demoCategories[rng.IntN(len(demoCategories))],
			Account:   demoAccounts[rng.IntN(len(demoAccounts))].Name,
			Amount:    ledger.Money(500 + rng.Int64N(15000)),
			Direction: ledger.Debit,
		}
		// Roughly one in five is income.
		if rng.IntN(5) == 0 {
			t.Direction = ledger.Credit
			t.Amount *= 10
			t.Note = "Salary"
		}
		if _, err := svc.RecordTransaction(ctx, t); err != nil {
			return fmt.Errorf("record demo transaction %d: %w", i, err)
		}
	}

	log.Info().
		Int("accounts", len(demoAccounts)).
		Int("categories", len(demoCategories)).
		Int("transactions", demoTransactionCount).
		Msg("Demo data seeded")
	return nil
}

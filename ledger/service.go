package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Period selects the window for TotalSpend.
type Period string

const (
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Service applies the ledger rules on top of a Store.
type Service struct {
	store     Store
	clock     Clock
	publisher EventPublisher
	log       zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the wall clock used for "today".
func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithPublisher sets the publisher notified after committed writes.
func WithPublisher(p EventPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithLogger sets the service logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService wires a Service around store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		clock: SystemClock{},
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("component", "ledger").Logger()
	return s
}

// Store exposes the underlying store for plain CRUD.
func (s *Service) Store() Store {
	return s.store
}

// Today is the current calendar day according to the service clock.
func (s *Service) Today() Date {
	return DateOf(s.clock.Now())
}

// RecordTransaction validates t, resolves its references and stores it while
// moving the account balance by the signed amount.
func (s *Service) RecordTransaction(ctx context.Context, t Transaction) (Transaction, error) {
	t.Account = strings.TrimSpace(t.Account)
	t.AccountID = strings.TrimSpace(t.AccountID)
	t.Category = strings.TrimSpace(t.Category)

	if err := ValidateTransaction(t); err != nil {
		return Transaction{}, err
	}
	if err := s.resolveCategory(ctx, &t); err != nil {
		return Transaction{}, err
	}

	recorded, err := s.store.RecordTransaction(ctx, t)
	if err != nil {
		return Transaction{}, err
	}

	s.log.Info().
		Str("transaction_id", recorded.ID).
		Str("account", recorded.Account).
		Str("direction", recorded.Direction.String()).
		Stringer("amount", recorded.Amount).
		Msg("Transaction recorded")

	if s.publisher != nil {
		account, err := s.store.GetAccount(ctx, recorded.AccountID)
		if err != nil {
			s.log.Warn().Err(err).Str("account_id", recorded.AccountID).Msg("Could not load account for event")
		} else if err := s.publisher.TransactionRecorded(ctx, recorded, account); err != nil {
			s.log.Warn().Err(err).Str("transaction_id", recorded.ID).Msg("Failed to publish transaction event")
		}
	}

	return recorded, nil
}

// UpdateTransaction replaces a stored transaction. The account is resolved
// like it is for recording and its name replaces t.Account. The account
// balance is left as it is: only recording moves money.
func (s *Service) UpdateTransaction(ctx context.Context, t Transaction) (Transaction, error) {
	t.Account = strings.TrimSpace(t.Account)
	t.AccountID = strings.TrimSpace(t.AccountID)
	t.Category = strings.TrimSpace(t.Category)

	if t.ID == "" {
		return Transaction{}, Invalid("id", "id is required")
	}
	if err := ValidateTransaction(t); err != nil {
		return Transaction{}, err
	}
	if err := s.resolveAccount(ctx, &t); err != nil {
		return Transaction{}, err
	}
	if err := s.resolveCategory(ctx, &t); err != nil {
		return Transaction{}, err
	}
	return s.store.UpdateTransaction(ctx, t)
}

// resolveAccount points t at an existing account, by id first and by name
// otherwise.
func (s *Service) resolveAccount(ctx context.Context, t *Transaction) error {
	var (
		account Account
		err     error
	)
	if t.AccountID != "" {
		account, err = s.store.GetAccount(ctx, t.AccountID)
	} else {
		account, err = s.store.FindAccountByName(ctx, t.Account)
	}
	switch {
	case IsNotFound(err), errors.Is(err, ErrInvalidID):
		return ErrAccountNotFound
	case err != nil:
		return fmt.Errorf("resolve account: %w", err)
	}
	t.AccountID = account.ID
	t.Account = account.Name
	return nil
}

// resolveCategory points t.CategoryID at the category named t.Category.
// Unknown names stay as a free-text label with no id.
func (s *Service) resolveCategory(ctx context.Context, t *Transaction) error {
	t.CategoryID = ""
	if t.Category == "" {
		return nil
	}
	cat, err := s.store.FindCategoryByName(ctx, t.Category)
	switch {
	case err == nil:
		t.CategoryID = cat.ID
	case !IsNotFound(err):
		return fmt.Errorf("resolve category %q: %w", t.Category, err)
	}
	return nil
}

// ValidateTransaction checks the fields every stored transaction needs.
func ValidateTransaction(t Transaction) error {
	if t.AccountID == "" && strings.TrimSpace(t.Account) == "" {
		return Invalid("account", "account is required")
	}
	if t.Amount < 0 {
		return Invalid("amount", "amount must not be negative")
	}
	if !t.Direction.Valid() {
		return Invalid("positive", "direction must be 0 (debit) or 1 (credit)")
	}
	if t.Date.IsZero() {
		return Invalid("date", "date is required")
	}
	return nil
}

// TotalNetWorth is the sum of every account balance.
func (s *Service) TotalNetWorth(ctx context.Context) (Money, error) {
	return s.store.SumAccountBalances(ctx)
}

// TotalSpend sums debits dated inside the current month or year.
func (s *Service) TotalSpend(ctx context.Context, p Period) (Money, error) {
	var r DateRange
	switch p {
	case PeriodMonth:
		r = MonthOf(s.Today())
	case PeriodYear:
		r = YearOf(s.Today())
	default:
		return 0, Invalid("period", fmt.Sprintf("unsupported period %q", p))
	}
	debit := Debit
	return s.store.SumTransactions(ctx, TransactionFilter{Range: r, Direction: &debit})
}

// TotalIncomeMonth sums credits dated inside the current month.
func (s *Service) TotalIncomeMonth(ctx context.Context) (Money, error) {
	credit := Credit
	return s.store.SumTransactions(ctx, TransactionFilter{Range: MonthOf(s.Today()), Direction: &credit})
}

// CurrentMonthDaily lists every transaction of the current month.
func (s *Service) CurrentMonthDaily(ctx context.Context) ([]Transaction, error) {
	return s.store.ListTransactionsBetween(ctx, MonthOf(s.Today()))
}

// Summary computes the dashboard aggregates concurrently.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	sum := Summary{AsOf: s.Today()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		sum.NetWorth, err = s.TotalNetWorth(gctx)
		return err
	})
	g.Go(func() (err error) {
		sum.SpendMonth, err = s.TotalSpend(gctx, PeriodMonth)
		return err
	})
	g.Go(func() (err error) {
		sum.SpendYear, err = s.TotalSpend(gctx, PeriodYear)
		return err
	})
	g.Go(func() (err error) {
		sum.IncomeMonth, err = s.TotalIncomeMonth(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return sum, nil
}

// RecordSnapshot stores today's net worth, overwriting an earlier snapshot
// of the same day.
func (s *Service) RecordSnapshot(ctx context.Context) (Snapshot, error) {
	total, err := s.TotalNetWorth(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("compute net worth: %w", err)
	}

	snap, err := s.store.UpsertSnapshot(ctx, s.Today(), total)
	if err != nil {
		return Snapshot{}, err
	}

	s.log.Info().
		Stringer("snapshot_date", snap.Date).
		Stringer("total_balance", snap.TotalBalance).
		Msg("Daily balance snapshot recorded")

	if s.publisher != nil {
		if err := s.publisher.SnapshotRecorded(ctx, snap); err != nil {
			s.log.Warn().Err(err).Stringer("snapshot_date", snap.Date).Msg("Failed to publish snapshot event")
		}
	}
	return snap, nil
}

// ListSnapshots returns the snapshot history, oldest first.
func (s *Service) ListSnapshots(ctx context.Context) ([]Snapshot, error) {
	return s.store.ListSnapshots(ctx)
}

package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oasisfintech/oasis-backend/internal/domain"
	"github.com/oasisfintech/oasis-backend/internal/logger"
)

// PostEntryInput represents the input for posting a double-entry movement
type PostEntryInput struct {
	DebitAccountID  string
	CreditAccountID string
	Amount          decimal.Decimal
	Memo            string
}

// CreateAccountInput represents the input for opening an account
type CreateAccountInput struct {
	MemberID       string
	Type           string
	Label          string
	Currency       string
	OpeningBalance decimal.Decimal
}

// Service posts double-entry movements against accounts. Two postings that
// share an account serialize on per-account locks acquired in account-ID
// order, so opposite-direction postings on the same pair cannot deadlock.
type Service struct {
	store domain.LedgerStore
	log   *logger.Logger

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	// Injected so tests can pin timestamps and identifiers.
	now   func() time.Time
	newID func(prefix string) string
}

// NewService creates a new ledger Service instance
func NewService(store domain.LedgerStore, log *logger.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With("service", "ledger"),
		locks: make(map[string]*sync.Mutex),
		now:   time.Now,
		newID: NewID,
	}
}

// NewID generates a collision-resistant prefixed identifier, e.g. "LED-<uuid>".
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

func (s *Service) accountLock(accountID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.locks[accountID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[accountID] = lock
	}
	return lock
}

// CreateAccount opens a new active account with the given opening balance.
func (s *Service) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if input.OpeningBalance.IsNegative() {
		return nil, fmt.Errorf("opening balance: %w", domain.ErrInvalidAmount)
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	account := &domain.Account{
		ID:        s.newID("ACC"),
		MemberID:  input.MemberID,
		Type:      input.Type,
		Label:     input.Label,
		Currency:  currency,
		Balance:   input.OpeningBalance,
		Status:    domain.AccountStatusActive,
		CreatedAt: s.now(),
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	s.log.Info("account created", "account_id", account.ID, "member_id", account.MemberID)
	return account, nil
}

// GetAccount retrieves an account by ID.
func (s *Service) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.store.GetAccount(ctx, id)
}

// PostEntry applies a double-entry posting: it debits one account, credits
// the other, and records the immutable entry. The three writes commit as one
// atomic unit through the store. Validation failures leave both balances
// untouched.
func (s *Service) PostEntry(ctx context.Context, input PostEntryInput) (*domain.LedgerEntry, error) {
	if input.DebitAccountID == input.CreditAccountID {
		return nil, domain.ErrSameAccount
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	// Lock both accounts in ID order to prevent deadlock between postings
	// referencing the same pair in opposite directions.
	debitLock := s.accountLock(input.DebitAccountID)
	creditLock := s.accountLock(input.CreditAccountID)
	if input.DebitAccountID < input.CreditAccountID {
		debitLock.Lock()
		creditLock.Lock()
	} else {
		creditLock.Lock()
		debitLock.Lock()
	}
	defer debitLock.Unlock()
	defer creditLock.Unlock()

	debit, err := s.store.GetAccount(ctx, input.DebitAccountID)
	if err != nil {
		return nil, fmt.Errorf("debit account %s: %w", input.DebitAccountID, err)
	}
	credit, err := s.store.GetAccount(ctx, input.CreditAccountID)
	if err != nil {
		return nil, fmt.Errorf("credit account %s: %w", input.CreditAccountID, err)
	}

	if !debit.Active() {
		return nil, fmt.Errorf("debit account %s: %w", debit.ID, domain.ErrAccountInactive)
	}
	if !credit.Active() {
		return nil, fmt.Errorf("credit account %s: %w", credit.ID, domain.ErrAccountInactive)
	}

	entry := &domain.LedgerEntry{
		ID:              s.newID("LED"),
		DebitAccountID:  input.DebitAccountID,
		CreditAccountID: input.CreditAccountID,
		Amount:          input.Amount,
		Memo:            input.Memo,
		Status:          domain.EntryStatusPosted,
		CreatedAt:       s.now(),
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	newDebitBalance := debit.Balance.Sub(input.Amount)
	newCreditBalance := credit.Balance.Add(input.Amount)

	if err := s.store.ApplyPosting(ctx, entry, newDebitBalance, newCreditBalance); err != nil {
		return nil, fmt.Errorf("apply posting: %w", err)
	}

	s.log.Info("entry posted",
		"entry_id", entry.ID,
		"debit_account_id", entry.DebitAccountID,
		"credit_account_id", entry.CreditAccountID,
		"amount", entry.Amount.String(),
	)
	return entry, nil
}

// Entries returns entries touching the account, or all entries when
// accountID is empty, in insertion order.
func (s *Service) Entries(ctx context.Context, accountID string) ([]*domain.LedgerEntry, error) {
	if accountID == "" {
		return s.store.AllEntries(ctx)
	}
	return s.store.EntriesByAccount(ctx, accountID)
}

// ReplayBalance recomputes an account balance from the entry log and an
// opening balance. On recovery this is the source of truth; a cached balance
// that disagrees with the replay is stale.
func (s *Service) ReplayBalance(ctx context.Context, accountID string, opening decimal.Decimal) (decimal.Decimal, error) {
	entries, err := s.store.EntriesByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	balance := opening
	for _, e := range entries {
		if e.CreditAccountID == accountID {
			balance = balance.Add(e.Amount)
		}
		if e.DebitAccountID == accountID {
			balance = balance.Sub(e.Amount)
		}
	}
	return balance, nil
}

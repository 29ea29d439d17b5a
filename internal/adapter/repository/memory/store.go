package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/oasisfintech/oasis-backend/internal/domain"
)

// Store is an in-memory implementation of domain.LedgerStore and
// domain.FraudAlertStore. It is safe for concurrent use: every posting
// commits under one mutex, so the entry append and both balance writes are
// observed together or not at all.
type Store struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	entries  []*domain.LedgerEntry
	alerts   []*domain.FraudAlert
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*domain.Account),
	}
}

// CreateAccount creates a new account.
func (s *Store) CreateAccount(ctx context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *account
	s.accounts[account.ID] = &copied
	return nil
}

// GetAccount retrieves an account by ID, returning a copy so callers cannot
// mutate store state.
func (s *Store) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

// ApplyPosting records the entry and sets both balances as one atomic unit.
func (s *Store) ApplyPosting(ctx context.Context, entry *domain.LedgerEntry, debitBalance, creditBalance decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	debit, ok := s.accounts[entry.DebitAccountID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	credit, ok := s.accounts[entry.CreditAccountID]
	if !ok {
		return domain.ErrAccountNotFound
	}

	copied := *entry
	s.entries = append(s.entries, &copied)
	debit.Balance = debitBalance
	credit.Balance = creditBalance
	return nil
}

// EntriesByAccount returns entries touching the account in insertion order.
func (s *Store) EntriesByAccount(ctx context.Context, accountID string) ([]*domain.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*domain.LedgerEntry
	for _, e := range s.entries {
		if e.Touches(accountID) {
			copied := *e
			result = append(result, &copied)
		}
	}
	return result, nil
}

// AllEntries returns every entry in insertion order.
func (s *Store) AllEntries(ctx context.Context) ([]*domain.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.LedgerEntry, 0, len(s.entries))
	for _, e := range s.entries {
		copied := *e
		result = append(result, &copied)
	}
	return result, nil
}

// AppendAlert records a triggered fraud alert.
func (s *Store) AppendAlert(ctx context.Context, alert *domain.FraudAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *alert
	s.alerts = append(s.alerts, &copied)
	return nil
}

// Alerts returns all recorded alerts in insertion order.
func (s *Store) Alerts(ctx context.Context) ([]*domain.FraudAlert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.FraudAlert, 0, len(s.alerts))
	for _, a := range s.alerts {
		copied := *a
		result = append(result, &copied)
	}
	return result, nil
}

// Compile-time interface checks
var (
	_ domain.LedgerStore     = (*Store)(nil)
	_ domain.FraudAlertStore = (*Store)(nil)
)

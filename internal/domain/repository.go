package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// LedgerStore defines the persistence interface the ledger engine posts
// through. ApplyPosting must commit the entry insert and both balance
// updates as one atomic unit at the storage boundary.
type LedgerStore interface {
	// CreateAccount creates a new account
	CreateAccount(ctx context.Context, account *Account) error

	// GetAccount retrieves an account by its ID.
	// Returns ErrAccountNotFound if the account does not exist.
	GetAccount(ctx context.Context, id string) (*Account, error)

	// ApplyPosting atomically records the entry and sets the two new balances.
	ApplyPosting(ctx context.Context, entry *LedgerEntry, debitBalance, creditBalance decimal.Decimal) error

	// EntriesByAccount retrieves entries debiting or crediting the account,
	// in insertion order.
	EntriesByAccount(ctx context.Context, accountID string) ([]*LedgerEntry, error)

	// AllEntries retrieves every entry in insertion order.
	AllEntries(ctx context.Context) ([]*LedgerEntry, error)
}

// FraudAlertStore defines the append-only persistence interface for fraud
// alerts.
type FraudAlertStore interface {
	// AppendAlert records a triggered alert. Alerts are never updated or deleted.
	AppendAlert(ctx context.Context, alert *FraudAlert) error

	// Alerts retrieves all recorded alerts in insertion order.
	Alerts(ctx context.Context) ([]*FraudAlert, error)
}

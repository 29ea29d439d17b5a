package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus represents the posting state of a ledger entry
type EntryStatus string

const (
	EntryStatusPosted EntryStatus = "posted"
)

// LedgerEntry represents one double-entry posting: a debit against one
// account and a credit to another, for a positive amount.
// Entries are immutable once created; the ledger is append-only.
type LedgerEntry struct {
	ID              string
	DebitAccountID  string
	CreditAccountID string
	Amount          decimal.Decimal // always positive
	Memo            string
	Status          EntryStatus
	CreatedAt       time.Time
}

// Validate ensures the entry adheres to domain rules
// Returns an error if validation fails
func (e *LedgerEntry) Validate() error {
	if e.ID == "" {
		return errors.New("entry ID cannot be empty")
	}
	if e.DebitAccountID == "" || e.CreditAccountID == "" {
		return errors.New("entry must reference a debit and a credit account")
	}
	if e.DebitAccountID == e.CreditAccountID {
		return ErrSameAccount
	}
	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// Touches reports whether the entry debits or credits the given account.
func (e *LedgerEntry) Touches(accountID string) bool {
	return e.DebitAccountID == accountID || e.CreditAccountID == accountID
}

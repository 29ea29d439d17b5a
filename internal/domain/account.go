package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus represents the lifecycle state of an account
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusInactive AccountStatus = "inactive"
)

// Account represents a financial account in the domain layer.
// The balance is an exact decimal at minor-unit precision and is mutated
// only through ledger postings.
type Account struct {
	ID        string
	MemberID  string
	Type      string // checking, savings, etc
	Label     string
	Currency  string
	Balance   decimal.Decimal
	Status    AccountStatus
	CreatedAt time.Time
}

// Validate ensures the account adheres to domain rules
// Returns an error if validation fails
func (a *Account) Validate() error {
	if a.ID == "" {
		return errors.New("account ID cannot be empty")
	}
	if a.MemberID == "" {
		return errors.New("account member ID cannot be empty")
	}
	if a.Currency == "" {
		return errors.New("account currency cannot be empty")
	}
	if a.Status != AccountStatusActive && a.Status != AccountStatusInactive {
		return errors.New("account status must be active or inactive")
	}
	return nil
}

// Active reports whether the account may participate in postings.
func (a *Account) Active() bool {
	return a.Status == AccountStatusActive
}

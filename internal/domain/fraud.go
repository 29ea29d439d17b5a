package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the snapshot a fraud rule is evaluated against. It carries
// the posting intent, not ledger state.
type Transaction struct {
	ID              string
	MemberID        string
	DebitAccountID  string
	CreditAccountID string
	Amount          decimal.Decimal
	Currency        string
	Memo            string
	CreatedAt       time.Time
}

// FraudAlert is an immutable record appended whenever a rule triggers.
// Alerts are never edited or removed.
type FraudAlert struct {
	ID            string
	Transaction   Transaction
	RuleTriggered string
	CreatedAt     time.Time
}

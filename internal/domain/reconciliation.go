package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementRecord is one line of an externally supplied bank statement.
type StatementRecord struct {
	Reference string
	Amount    decimal.Decimal
	Timestamp time.Time
}

// MatchedPair links an internal ledger entry to the external record it
// reconciles against.
type MatchedPair struct {
	Internal *LedgerEntry
	External StatementRecord
}

// ReconciliationResult partitions a statement batch into matched pairs and
// external records with no eligible internal entry.
type ReconciliationResult struct {
	Matched   []MatchedPair
	Unmatched []StatementRecord
}

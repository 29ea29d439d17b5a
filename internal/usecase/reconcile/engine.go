package reconcile

import (
	"time"

	"github.com/oasisfintech/oasis-backend/internal/domain"
)

// Engine matches internal ledger entries against externally supplied
// statement records. Matching is pure and deterministic: identical inputs
// always produce identical partitions.
type Engine struct{}

// NewEngine creates a new reconciliation Engine instance
func NewEngine() *Engine {
	return &Engine{}
}

// Reconcile pairs each external record, in input order, with the first
// internal entry that has an exactly equal amount and the same UTC calendar
// date and has not been consumed by an earlier match. Each internal entry
// matches at most one external record. External records with no eligible
// internal entry are reported unmatched.
func (e *Engine) Reconcile(internal []*domain.LedgerEntry, external []domain.StatementRecord) domain.ReconciliationResult {
	result := domain.ReconciliationResult{
		Matched:   make([]domain.MatchedPair, 0),
		Unmatched: make([]domain.StatementRecord, 0),
	}

	consumed := make([]bool, len(internal))

	for _, ext := range external {
		matchedIdx := -1
		for i, entry := range internal {
			if consumed[i] {
				continue
			}
			if !entry.Amount.Equal(ext.Amount) {
				continue
			}
			if !sameCalendarDay(entry.CreatedAt, ext.Timestamp) {
				continue
			}
			matchedIdx = i
			break
		}

		if matchedIdx >= 0 {
			consumed[matchedIdx] = true
			result.Matched = append(result.Matched, domain.MatchedPair{
				Internal: internal[matchedIdx],
				External: ext,
			})
		} else {
			result.Unmatched = append(result.Unmatched, ext)
		}
	}

	return result
}

// sameCalendarDay compares the UTC calendar dates of two timestamps,
// ignoring time of day.
func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

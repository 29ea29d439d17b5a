package reconcile

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasisfintech/oasis-backend/internal/domain"
)

func entry(id, amount string, ts time.Time) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:              id,
		DebitAccountID:  "ACC-1",
		CreditAccountID: "ACC-2",
		Amount:          decimal.RequireFromString(amount),
		Status:          domain.EntryStatusPosted,
		CreatedAt:       ts,
	}
}

func record(ref, amount string, ts time.Time) domain.StatementRecord {
	return domain.StatementRecord{
		Reference: ref,
		Amount:    decimal.RequireFromString(amount),
		Timestamp: ts,
	}
}

func TestReconcile_MatchesOnAmountAndDate(t *testing.T) {
	engine := NewEngine()
	day := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	internal := []*domain.LedgerEntry{
		entry("LED-1", "30.00", day),
		entry("LED-2", "12.50", day),
	}
	external := []domain.StatementRecord{
		// Time of day is ignored; only the calendar date counts.
		record("STM-1", "30.00", day.Add(8*time.Hour)),
		record("STM-2", "12.50", day.AddDate(0, 0, 1)), // wrong day
		record("STM-3", "99.99", day),                  // wrong amount
	}

	result := engine.Reconcile(internal, external)

	require.Len(t, result.Matched, 1)
	assert.Equal(t, "LED-1", result.Matched[0].Internal.ID)
	assert.Equal(t, "STM-1", result.Matched[0].External.Reference)

	require.Len(t, result.Unmatched, 2)
	assert.Equal(t, "STM-2", result.Unmatched[0].Reference)
	assert.Equal(t, "STM-3", result.Unmatched[1].Reference)
}

func TestReconcile_InternalEntryConsumedOnce(t *testing.T) {
	engine := NewEngine()
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	internal := []*domain.LedgerEntry{
		entry("LED-1", "30.00", day),
	}
	external := []domain.StatementRecord{
		record("STM-1", "30.00", day),
		record("STM-2", "30.00", day), // same amount and date, but LED-1 is spent
	}

	result := engine.Reconcile(internal, external)

	require.Len(t, result.Matched, 1)
	assert.Equal(t, "STM-1", result.Matched[0].External.Reference)
	require.Len(t, result.Unmatched, 1)
	assert.Equal(t, "STM-2", result.Unmatched[0].Reference)
}

func TestReconcile_FirstEligibleEntryWins(t *testing.T) {
	engine := NewEngine()
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	internal := []*domain.LedgerEntry{
		entry("LED-1", "30.00", day),
		entry("LED-2", "30.00", day),
	}
	external := []domain.StatementRecord{
		record("STM-1", "30.00", day),
		record("STM-2", "30.00", day),
	}

	result := engine.Reconcile(internal, external)

	require.Len(t, result.Matched, 2)
	assert.Equal(t, "LED-1", result.Matched[0].Internal.ID)
	assert.Equal(t, "LED-2", result.Matched[1].Internal.ID)
	assert.Empty(t, result.Unmatched)
}

func TestReconcile_ExactMinorUnitPrecision(t *testing.T) {
	engine := NewEngine()
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	internal := []*domain.LedgerEntry{
		entry("LED-1", "0.10", day),
	}
	external := []domain.StatementRecord{
		record("STM-1", "0.1", day),  // same value, different string form
		record("STM-2", "0.11", day), // off by one minor unit
	}

	result := engine.Reconcile(internal, external)

	require.Len(t, result.Matched, 1)
	assert.Equal(t, "STM-1", result.Matched[0].External.Reference)
	require.Len(t, result.Unmatched, 1)
	assert.Equal(t, "STM-2", result.Unmatched[0].Reference)
}

func TestReconcile_Idempotent(t *testing.T) {
	engine := NewEngine()
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	internal := []*domain.LedgerEntry{
		entry("LED-1", "30.00", day),
		entry("LED-2", "30.00", day),
		entry("LED-3", "7.77", day.AddDate(0, 0, 1)),
	}
	external := []domain.StatementRecord{
		record("STM-1", "30.00", day),
		record("STM-2", "7.77", day.AddDate(0, 0, 1)),
		record("STM-3", "1.00", day),
	}

	first := engine.Reconcile(internal, external)
	second := engine.Reconcile(internal, external)

	assert.Equal(t, first, second)
}

func TestReconcile_EmptyInputs(t *testing.T) {
	engine := NewEngine()

	result := engine.Reconcile(nil, nil)
	assert.Empty(t, result.Matched)
	assert.Empty(t, result.Unmatched)

	result = engine.Reconcile(nil, []domain.StatementRecord{
		record("STM-1", "5.00", time.Now()),
	})
	assert.Empty(t, result.Matched)
	assert.Len(t, result.Unmatched, 1)
}

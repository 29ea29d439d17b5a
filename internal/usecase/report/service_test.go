package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasisfintech/oasis-backend/internal/adapter/repository/memory"
	"github.com/oasisfintech/oasis-backend/internal/domain"
)

func seedEntry(t *testing.T, store *memory.Store, id, amount string, ts time.Time) {
	t.Helper()
	ctx := context.Background()
	for _, accID := range []string{"ACC-1", "ACC-2"} {
		_ = store.CreateAccount(ctx, &domain.Account{
			ID: accID, MemberID: "MEM-1", Currency: "USD",
			Balance: decimal.NewFromInt(1000), Status: domain.AccountStatusActive,
		})
	}
	err := store.ApplyPosting(ctx, &domain.LedgerEntry{
		ID:              id,
		DebitAccountID:  "ACC-1",
		CreditAccountID: "ACC-2",
		Amount:          decimal.RequireFromString(amount),
		Status:          domain.EntryStatusPosted,
		CreatedAt:       ts,
	}, decimal.NewFromInt(1000), decimal.NewFromInt(1000))
	require.NoError(t, err)
}

func TestMonthly(t *testing.T) {
	store := memory.NewStore()
	service := NewService(store)

	march := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	seedEntry(t, store, "LED-1", "10.10", march)
	seedEntry(t, store, "LED-2", "0.90", march.AddDate(0, 0, 20))
	seedEntry(t, store, "LED-3", "50.00", march.AddDate(0, 1, 0)) // April

	summary, err := service.Monthly(context.Background(), 3, 2026)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Count)
	assert.True(t, summary.TotalAmount.Equal(decimal.RequireFromString("11.00")), "got %s", summary.TotalAmount)
}

func TestMonthly_EmptyMonth(t *testing.T) {
	service := NewService(memory.NewStore())

	summary, err := service.Monthly(context.Background(), 1, 2026)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Count)
	assert.True(t, summary.TotalAmount.IsZero())
}

func TestMonthly_InvalidMonth(t *testing.T) {
	service := NewService(memory.NewStore())

	_, err := service.Monthly(context.Background(), 13, 2026)
	assert.Error(t, err)
}

package seeder

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oasisfintech/oasis-backend/internal/domain"
)

// Fixed identifiers for system accounts; stable across restarts so ledger
// entries keep pointing at the same rows.
const (
	SystemMemberID       = "MEM-system"
	AchSettlementAccount = "ACC-system-ach-settlement"
)

// SystemSeeder ensures the system accounts the engines depend on exist.
type SystemSeeder struct {
	store domain.LedgerStore
}

// NewSystemSeeder creates a new SystemSeeder instance
func NewSystemSeeder(store domain.LedgerStore) *SystemSeeder {
	return &SystemSeeder{
		store: store,
	}
}

// Seed ensures all required system accounts exist, creating any that are
// missing. Existing accounts are left untouched.
func (s *SystemSeeder) Seed(ctx context.Context) error {
	systemAccounts := []*domain.Account{
		{
			ID:       AchSettlementAccount,
			MemberID: SystemMemberID,
			Type:     "settlement",
			Label:    "ACH Settlement",
			Currency: "USD",
			Balance:  decimal.Zero,
			Status:   domain.AccountStatusActive,
		},
	}

	for _, account := range systemAccounts {
		_, err := s.store.GetAccount(ctx, account.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrAccountNotFound) {
			return err
		}

		account.CreatedAt = time.Now()
		if err := account.Validate(); err != nil {
			return err
		}
		if err := s.store.CreateAccount(ctx, account); err != nil {
			return err
		}
	}

	return nil
}

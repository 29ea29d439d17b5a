package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLedgerEntryValidate_Valid(t *testing.T) {
	entry := &LedgerEntry{
		ID:              "LED-1",
		DebitAccountID:  "ACC-1",
		CreditAccountID: "ACC-2",
		Amount:          decimal.NewFromInt(30),
		Memo:            "test posting",
		Status:          EntryStatusPosted,
		CreatedAt:       time.Now(),
	}

	assert.NoError(t, entry.Validate())
	assert.True(t, entry.Touches("ACC-1"))
	assert.True(t, entry.Touches("ACC-2"))
	assert.False(t, entry.Touches("ACC-3"))
}

func TestLedgerEntryValidate_SameAccount(t *testing.T) {
	entry := &LedgerEntry{
		ID:              "LED-1",
		DebitAccountID:  "ACC-1",
		CreditAccountID: "ACC-1",
		Amount:          decimal.NewFromInt(30),
	}

	err := entry.Validate()
	assert.ErrorIs(t, err, ErrSameAccount)
}

func TestLedgerEntryValidate_NonPositiveAmount(t *testing.T) {
	entry := &LedgerEntry{
		ID:              "LED-1",
		DebitAccountID:  "ACC-1",
		CreditAccountID: "ACC-2",
		Amount:          decimal.Zero,
	}

	assert.ErrorIs(t, entry.Validate(), ErrInvalidAmount)

	entry.Amount = decimal.NewFromInt(-5)
	assert.ErrorIs(t, entry.Validate(), ErrInvalidAmount)
}

func TestAccountValidate(t *testing.T) {
	account := &Account{
		ID:       "ACC-1",
		MemberID: "MEM-1",
		Type:     "checking",
		Label:    "Main checking",
		Currency: "USD",
		Balance:  decimal.NewFromInt(100),
		Status:   AccountStatusActive,
	}

	assert.NoError(t, account.Validate())
	assert.True(t, account.Active())

	account.Status = AccountStatusInactive
	assert.NoError(t, account.Validate())
	assert.False(t, account.Active())

	account.Status = "frozen"
	assert.Error(t, account.Validate())

	account.Status = AccountStatusActive
	account.Currency = ""
	assert.Error(t, account.Validate())
}

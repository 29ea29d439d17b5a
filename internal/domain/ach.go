package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// AchTransferStatus represents the lifecycle state of an ACH transfer
type AchTransferStatus string

const (
	AchStatusInitiated AchTransferStatus = "initiated"
	AchStatusFailed    AchTransferStatus = "failed"
)

// AchTransfer represents an outbound transfer to an external bank.
// The actual network submission is owned by a downstream consumer; the core
// posts the ledger movement and announces the transfer on the event bus.
type AchTransfer struct {
	ID              string
	FromAccountID   string
	ToBank          string
	ToAccountNumber string
	Amount          decimal.Decimal
	TransferType    string // credit or debit
	Status          AchTransferStatus
	LedgerEntryID   string
	CreatedAt       time.Time
}

// Validate ensures the transfer adheres to domain rules
func (t *AchTransfer) Validate() error {
	if t.FromAccountID == "" {
		return errors.New("transfer must reference a source account")
	}
	if t.ToBank == "" || t.ToAccountNumber == "" {
		return errors.New("transfer must reference a destination bank and account number")
	}
	if t.TransferType != "credit" && t.TransferType != "debit" {
		return errors.New("transfer type must be credit or debit")
	}
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

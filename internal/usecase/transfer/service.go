package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oasisfintech/oasis-backend/internal/domain"
	"github.com/oasisfintech/oasis-backend/internal/logger"
	"github.com/oasisfintech/oasis-backend/internal/usecase/fraud"
	"github.com/oasisfintech/oasis-backend/internal/usecase/ledger"
	"github.com/oasisfintech/oasis-backend/internal/usecase/workflow"
)

// Publisher announces events to downstream consumers (the external
// submission boundary).
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
}

// InitiateInput represents the input for initiating an ACH transfer
type InitiateInput struct {
	MemberID        string
	FromAccountID   string
	SettlementID    string // internal settlement account the movement posts against
	ToBank          string
	ToAccountNumber string
	Amount          decimal.Decimal
	TransferType    string
}

// SubmittedEvent is the JSON payload published when a transfer is handed to
// the external network boundary.
type SubmittedEvent struct {
	TransferID      string `json:"transfer_id"`
	FromAccountID   string `json:"from_account_id"`
	ToBank          string `json:"to_bank"`
	ToAccountNumber string `json:"to_account_number"`
	Amount          string `json:"amount"`
	TransferType    string `json:"transfer_type"`
	LedgerEntryID   string `json:"ledger_entry_id"`
	InitiatedAt     string `json:"initiated_at"`
}

// TopicTransferSubmitted is the topic SubmittedEvent is published on.
const TopicTransferSubmitted = "ach_transfer_submitted"

// Service initiates ACH transfers as a step-sequenced workflow:
// fraud-check, then the ledger posting, then the external submission event.
// A flagged transaction aborts before anything posts; a failure after the
// posting is not rolled back automatically, it is reported through the step
// log and error.
type Service struct {
	ledger    *ledger.Service
	fraud     *fraud.Engine
	publisher Publisher
	log       *logger.Logger

	now   func() time.Time
	newID func(prefix string) string
}

// NewService creates a new transfer Service instance
func NewService(ledgerService *ledger.Service, fraudEngine *fraud.Engine, publisher Publisher, log *logger.Logger) *Service {
	return &Service{
		ledger:    ledgerService,
		fraud:     fraudEngine,
		publisher: publisher,
		log:       log.With("service", "transfer"),
		now:       time.Now,
		newID: func(prefix string) string {
			return prefix + "-" + uuid.NewString()
		},
	}
}

// Initiate runs the transfer workflow and returns the transfer record along
// with the ordered step log. On failure the log shows how far the run got.
func (s *Service) Initiate(ctx context.Context, input InitiateInput) (*domain.AchTransfer, []workflow.StepResult, error) {
	transfer := &domain.AchTransfer{
		ID:              s.newID("ACH"),
		FromAccountID:   input.FromAccountID,
		ToBank:          input.ToBank,
		ToAccountNumber: input.ToAccountNumber,
		Amount:          input.Amount,
		TransferType:    input.TransferType,
		Status:          domain.AchStatusFailed,
		CreatedAt:       s.now(),
	}
	if err := transfer.Validate(); err != nil {
		return nil, nil, err
	}

	run := workflow.NewEngine()
	run.AddStep("fraud-check", s.fraudCheckStep(input, transfer))
	run.AddStep("post-entry", s.postEntryStep(input, transfer))
	run.AddStep("external-submit", s.externalSubmitStep(transfer))

	log, err := run.Run(ctx, workflow.Context{"transfer_id": transfer.ID})
	if err != nil {
		s.log.Warn("transfer aborted", "transfer_id", transfer.ID, "error", err)
		return transfer, log, err
	}

	transfer.Status = domain.AchStatusInitiated
	s.log.Info("transfer initiated",
		"transfer_id", transfer.ID,
		"ledger_entry_id", transfer.LedgerEntryID,
		"amount", transfer.Amount.String(),
	)
	return transfer, log, nil
}

func (s *Service) fraudCheckStep(input InitiateInput, transfer *domain.AchTransfer) workflow.StepFunc {
	return func(ctx context.Context, wc workflow.Context) (workflow.Context, error) {
		txn := domain.Transaction{
			ID:              transfer.ID,
			MemberID:        input.MemberID,
			DebitAccountID:  input.FromAccountID,
			CreditAccountID: input.SettlementID,
			Amount:          input.Amount,
			Memo:            fmt.Sprintf("ACH %s to %s", input.TransferType, input.ToBank),
			CreatedAt:       s.now(),
		}

		alert, err := s.fraud.Evaluate(ctx, txn)
		if err != nil {
			return nil, err
		}
		if alert != nil {
			return nil, fmt.Errorf("rule %s: %w", alert.RuleTriggered, domain.ErrFraudBlocked)
		}
		return workflow.Context{"fraud_checked": true}, nil
	}
}

func (s *Service) postEntryStep(input InitiateInput, transfer *domain.AchTransfer) workflow.StepFunc {
	return func(ctx context.Context, wc workflow.Context) (workflow.Context, error) {
		entry, err := s.ledger.PostEntry(ctx, ledger.PostEntryInput{
			DebitAccountID:  input.FromAccountID,
			CreditAccountID: input.SettlementID,
			Amount:          input.Amount,
			Memo:            fmt.Sprintf("ACH %s %s/%s", input.TransferType, input.ToBank, input.ToAccountNumber),
		})
		if err != nil {
			return nil, err
		}
		transfer.LedgerEntryID = entry.ID
		return workflow.Context{"ledger_entry_id": entry.ID}, nil
	}
}

func (s *Service) externalSubmitStep(transfer *domain.AchTransfer) workflow.StepFunc {
	return func(ctx context.Context, wc workflow.Context) (workflow.Context, error) {
		event := SubmittedEvent{
			TransferID:      transfer.ID,
			FromAccountID:   transfer.FromAccountID,
			ToBank:          transfer.ToBank,
			ToAccountNumber: transfer.ToAccountNumber,
			Amount:          transfer.Amount.String(),
			TransferType:    transfer.TransferType,
			LedgerEntryID:   transfer.LedgerEntryID,
			InitiatedAt:     transfer.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := s.publisher.Publish(ctx, TopicTransferSubmitted, event); err != nil {
			return nil, fmt.Errorf("publish %s: %w", TopicTransferSubmitted, err)
		}
		return workflow.Context{"submitted": true}, nil
	}
}

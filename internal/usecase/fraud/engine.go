package fraud

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oasisfintech/oasis-backend/internal/domain"
	"github.com/oasisfintech/oasis-backend/internal/logger"
)

// RuleFunc is the predicate a named rule evaluates against a transaction
// snapshot.
type RuleFunc func(txn domain.Transaction) bool

type rule struct {
	name  string
	check RuleFunc
}

// Engine screens transactions against an ordered list of named rules.
// Rules run in registration order and the first match wins: it appends one
// immutable alert and remaining rules are not evaluated. Later-registered
// rules are effectively lower priority.
type Engine struct {
	alerts domain.FraudAlertStore
	log    *logger.Logger

	mu    sync.RWMutex
	rules []rule

	now   func() time.Time
	newID func(prefix string) string
}

// NewEngine creates a new fraud Engine instance
func NewEngine(alerts domain.FraudAlertStore, log *logger.Logger) *Engine {
	return &Engine{
		alerts: alerts,
		log:    log.With("service", "fraud"),
		now:    time.Now,
		newID: func(prefix string) string {
			return prefix + "-" + uuid.NewString()
		},
	}
}

// AddRule registers a named rule at the end of the evaluation order.
func (e *Engine) AddRule(name string, check RuleFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = append(e.rules, rule{name: name, check: check})
}

// Evaluate tests the transaction against the registered rules. A non-nil
// alert means the transaction is flagged and must not be forwarded to the
// ledger; nil means clean.
func (e *Engine) Evaluate(ctx context.Context, txn domain.Transaction) (*domain.FraudAlert, error) {
	e.mu.RLock()
	rules := e.rules
	e.mu.RUnlock()

	for _, r := range rules {
		if !r.check(txn) {
			continue
		}

		alert := &domain.FraudAlert{
			ID:            e.newID("FRAUD"),
			Transaction:   txn,
			RuleTriggered: r.name,
			CreatedAt:     e.now(),
		}
		if err := e.alerts.AppendAlert(ctx, alert); err != nil {
			return nil, fmt.Errorf("append alert: %w", err)
		}

		e.log.Warn("transaction flagged",
			"rule", r.name,
			"transaction_id", txn.ID,
			"amount", txn.Amount.String(),
		)
		return alert, nil
	}
	return nil, nil
}

// Alerts returns all recorded alerts in insertion order.
func (e *Engine) Alerts(ctx context.Context) ([]*domain.FraudAlert, error) {
	return e.alerts.Alerts(ctx)
}

// AmountAboveLimit returns a rule predicate flagging transactions whose
// amount exceeds the given limit.
func AmountAboveLimit(limit decimal.Decimal) RuleFunc {
	return func(txn domain.Transaction) bool {
		return txn.Amount.GreaterThan(limit)
	}
}

// SelfTransfer returns a rule predicate flagging transactions whose debit
// and credit accounts coincide.
func SelfTransfer() RuleFunc {
	return func(txn domain.Transaction) bool {
		return txn.DebitAccountID != "" && txn.DebitAccountID == txn.CreditAccountID
	}
}

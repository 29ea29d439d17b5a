package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/oasisfintech/oasis-backend/internal/domain"
)

// ledgerStore implements domain.LedgerStore on postgres. ApplyPosting runs
// the entry insert and both balance updates inside one database transaction,
// so the three writes commit or roll back together.
type ledgerStore struct {
	db *DB
}

// NewLedgerStore creates a new postgres-backed ledger store
func NewLedgerStore(db *DB) domain.LedgerStore {
	return &ledgerStore{db: db}
}

// CreateAccount creates a new account
func (r *ledgerStore) CreateAccount(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, member_id, account_type, label, currency, balance, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.MemberID,
		account.Type,
		account.Label,
		account.Currency,
		account.Balance.String(),
		string(account.Status),
		account.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetAccount retrieves an account by its ID
func (r *ledgerStore) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	query := `
		SELECT id, member_id, account_type, label, currency, balance, status, created_at
		FROM accounts
		WHERE id = $1
	`

	var account domain.Account
	var balanceStr string

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID,
		&account.MemberID,
		&account.Type,
		&account.Label,
		&account.Currency,
		&balanceStr,
		&account.Status,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by ID: %w", err)
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance: %w", err)
	}
	account.Balance = balance

	return &account, nil
}

// ApplyPosting records the entry and sets both balances in one database
// transaction.
func (r *ledgerStore) ApplyPosting(ctx context.Context, entry *domain.LedgerEntry, debitBalance, creditBalance decimal.Decimal) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	insertEntryQuery := `
		INSERT INTO ledger_entries (id, debit_account_id, credit_account_id, amount, memo, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = dbTx.ExecContext(ctx, insertEntryQuery,
		entry.ID,
		entry.DebitAccountID,
		entry.CreditAccountID,
		entry.Amount.String(),
		entry.Memo,
		string(entry.Status),
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}

	updateBalanceQuery := `UPDATE accounts SET balance = $1 WHERE id = $2`

	if _, err = dbTx.ExecContext(ctx, updateBalanceQuery, debitBalance.String(), entry.DebitAccountID); err != nil {
		return fmt.Errorf("failed to update debit balance: %w", err)
	}
	if _, err = dbTx.ExecContext(ctx, updateBalanceQuery, creditBalance.String(), entry.CreditAccountID); err != nil {
		return fmt.Errorf("failed to update credit balance: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit posting: %w", err)
	}
	return nil
}

// EntriesByAccount retrieves entries touching the account in insertion order
func (r *ledgerStore) EntriesByAccount(ctx context.Context, accountID string) ([]*domain.LedgerEntry, error) {
	query := `
		SELECT id, debit_account_id, credit_account_id, amount, memo, status, created_at
		FROM ledger_entries
		WHERE debit_account_id = $1 OR credit_account_id = $1
		ORDER BY created_at, id
	`
	return r.queryEntries(ctx, query, accountID)
}

// AllEntries retrieves every entry in insertion order
func (r *ledgerStore) AllEntries(ctx context.Context) ([]*domain.LedgerEntry, error) {
	query := `
		SELECT id, debit_account_id, credit_account_id, amount, memo, status, created_at
		FROM ledger_entries
		ORDER BY created_at, id
	`
	return r.queryEntries(ctx, query)
}

func (r *ledgerStore) queryEntries(ctx context.Context, query string, args ...any) ([]*domain.LedgerEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.LedgerEntry
	for rows.Next() {
		var entry domain.LedgerEntry
		var amountStr string

		err := rows.Scan(
			&entry.ID,
			&entry.DebitAccountID,
			&entry.CreditAccountID,
			&amountStr,
			&entry.Memo,
			&entry.Status,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount: %w", err)
		}
		entry.Amount = amount
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ledger entries: %w", err)
	}
	return entries, nil
}

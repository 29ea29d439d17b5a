package domain

import "errors"

// Error kinds surfaced by the core engines. The calling layer (HTTP adapter)
// translates these into user-facing responses; the core never converts an
// error into a default value.
var (
	// ErrAccountNotFound indicates a referenced account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountInactive indicates a referenced account exists but is not active.
	ErrAccountInactive = errors.New("account is not active")

	// ErrInvalidAmount indicates a non-positive or malformed amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrSameAccount indicates debit and credit reference the same account.
	ErrSameAccount = errors.New("debit and credit accounts must differ")

	// ErrConflict indicates balance-update contention exceeded the retry budget.
	ErrConflict = errors.New("balance update conflict")

	// ErrFraudBlocked indicates the transaction matched a fraud rule and must not post.
	ErrFraudBlocked = errors.New("transaction blocked by fraud rule")

	// ErrPermissionDenied indicates the caller's role lacks the requested capability.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrSessionNotFound indicates the session ID does not resolve to a member.
	ErrSessionNotFound = errors.New("session not found")
)

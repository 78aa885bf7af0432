package models

import "errors"

// Domain errors surfaced by the command and query services. All are terminal
// to the current request; none are retried automatically. Handlers map them
// to HTTP statuses with errors.Is.
var (
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrDescriptionTooLong  = errors.New("description too long")
	ErrSameAccountTransfer = errors.New("same account transfer")
	ErrRecipientNotFound   = errors.New("recipient not found")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrCommitFailed means the atomic multi-write did not apply; the caller
	// may assume no partial mutation occurred.
	ErrCommitFailed = errors.New("commit failed")

	// ErrCommitTimeout means the commit round-trip exceeded its deadline.
	// The outcome is ambiguous: the commit may have applied. Callers should
	// reconcile via transaction history rather than retry blindly.
	ErrCommitTimeout = errors.New("commit timed out")
)

package domain

import "errors"

// Ledger error taxonomy. Validation and funds errors are returned before any
// mutation happens; ErrRemoteSyncPending is returned after a successful local
// write when the remote store could not be reached, so callers can warn that
// remote durability is uncertain instead of silently succeeding.
var (
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrValidation          = errors.New("validation failed")
	ErrRemoteSyncPending   = errors.New("saved locally, remote sync pending")
	ErrNotPending          = errors.New("transaction is not pending")
	ErrUserNotFound        = errors.New("user not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrUnauthenticated     = errors.New("not authenticated")
)

package domain

import (
	"context"

	"github.com/google/uuid"
)

// Store is the storage adapter contract the ledger core writes through. The
// backing implementation mirrors every write into a local cache and attempts
// the remote store when one is configured; reads prefer the remote store and
// fall back to the cache.
//
// A write may return ErrRemoteSyncPending: the record is durable in the local
// cache but the remote write failed. Callers treat that as success with a
// warning, not as failure.
type Store interface {
	// FetchUsers retrieves all user records
	FetchUsers(ctx context.Context) ([]*User, error)

	// FetchTransactions retrieves all transactions, newest first
	FetchTransactions(ctx context.Context) ([]*Transaction, error)

	// FetchGateways retrieves all payment gateways
	FetchGateways(ctx context.Context) ([]*PaymentGateway, error)

	// SyncUser upserts a user record by id
	SyncUser(ctx context.Context, user *User) error

	// AddTransaction inserts a new transaction record
	AddTransaction(ctx context.Context, tx *Transaction) error

	// UpdateTransactionStatus moves a PENDING transaction to a terminal status
	UpdateTransactionStatus(ctx context.Context, id uuid.UUID, status string) error

	// DeleteUser removes a user record by id
	DeleteUser(ctx context.Context, id uuid.UUID) error

	// SaveGateway upserts a payment gateway by name
	SaveGateway(ctx context.Context, gw *PaymentGateway) error
}

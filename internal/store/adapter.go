// Package store adapts between the ledger's record shapes and the two places
// they live: the remote Postgres store (authoritative when reachable) and the
// local JSON cache (write-through mirror and offline fallback).
package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"elitex/internal/domain"
	"elitex/internal/localstore"
	"elitex/internal/repository"
)

// Adapter implements domain.Store. Every write goes to the local cache first,
// then to the remote store when a pool is configured. A failed remote write is
// logged and reported as domain.ErrRemoteSyncPending so callers can warn that
// remote durability is uncertain; the operation itself still counts as saved.
// Reads prefer the remote store and overwrite the cache with its result
// (remote wins); on failure or when unconfigured they return the cache.
type Adapter struct {
	users    *repository.UserRepository
	txs      *repository.TransactionRepository
	gateways *repository.GatewayRepository
	cache    *localstore.Store
}

// New creates an Adapter. db may be nil, in which case the adapter runs in
// cache-only mode.
func New(db *pgxpool.Pool, cache *localstore.Store) *Adapter {
	a := &Adapter{cache: cache}
	if db != nil {
		a.users = repository.NewUserRepository(db)
		a.txs = repository.NewTransactionRepository(db)
		a.gateways = repository.NewGatewayRepository(db)
	}
	return a
}

// RemoteConfigured reports whether a remote store is wired in.
func (a *Adapter) RemoteConfigured() bool {
	return a.users != nil
}

// FetchUsers retrieves all users, preferring the remote store.
func (a *Adapter) FetchUsers(ctx context.Context) ([]*domain.User, error) {
	if a.users == nil {
		return a.cache.Users()
	}
	users, err := a.users.FetchAll(ctx)
	if err != nil {
		log.Printf("WARNING: remote user fetch failed, using local cache: %v", err)
		return a.cache.Users()
	}
	if err := a.cache.SetUsers(users); err != nil {
		log.Printf("WARNING: failed to mirror users into local cache: %v", err)
	}
	return users, nil
}

// FetchTransactions retrieves all transactions newest first, preferring the
// remote store.
func (a *Adapter) FetchTransactions(ctx context.Context) ([]*domain.Transaction, error) {
	if a.txs == nil {
		return a.cache.Transactions()
	}
	txs, err := a.txs.FetchAll(ctx)
	if err != nil {
		log.Printf("WARNING: remote transaction fetch failed, using local cache: %v", err)
		return a.cache.Transactions()
	}
	if err := a.cache.SetTransactions(txs); err != nil {
		log.Printf("WARNING: failed to mirror transactions into local cache: %v", err)
	}
	return txs, nil
}

// FetchGateways retrieves all payment gateways, preferring the remote store.
func (a *Adapter) FetchGateways(ctx context.Context) ([]*domain.PaymentGateway, error) {
	if a.gateways == nil {
		return a.cache.Gateways()
	}
	gateways, err := a.gateways.FetchAll(ctx)
	if err != nil {
		log.Printf("WARNING: remote gateway fetch failed, using local cache: %v", err)
		return a.cache.Gateways()
	}
	if err := a.cache.SetGateways(gateways); err != nil {
		log.Printf("WARNING: failed to mirror gateways into local cache: %v", err)
	}
	return gateways, nil
}

// SyncUser upserts a user, local cache first.
func (a *Adapter) SyncUser(ctx context.Context, user *domain.User) error {
	if err := a.cache.SaveUser(user); err != nil {
		return fmt.Errorf("failed to cache user: %w", err)
	}
	if a.users == nil {
		return nil
	}
	if err := a.users.Upsert(ctx, user); err != nil {
		log.Printf("ERROR: remote user sync failed for %s: %v", user.ID, err)
		return fmt.Errorf("%w: %v", domain.ErrRemoteSyncPending, err)
	}
	return nil
}

// AddTransaction inserts a transaction, local cache first.
func (a *Adapter) AddTransaction(ctx context.Context, tx *domain.Transaction) error {
	if err := a.cache.AddTransaction(tx); err != nil {
		return fmt.Errorf("failed to cache transaction: %w", err)
	}
	if a.txs == nil {
		return nil
	}
	if err := a.txs.Insert(ctx, tx); err != nil {
		log.Printf("ERROR: remote transaction insert failed for %s: %v", tx.ID, err)
		return fmt.Errorf("%w: %v", domain.ErrRemoteSyncPending, err)
	}
	return nil
}

// UpdateTransactionStatus moves a transaction to a terminal status, local
// cache first. When the remote guard reports the row was already decided the
// error is surfaced as-is rather than as a sync warning.
func (a *Adapter) UpdateTransactionStatus(ctx context.Context, id uuid.UUID, status string) error {
	if err := a.cache.SetTransactionStatus(id, status); err != nil {
		return fmt.Errorf("failed to cache transaction status: %w", err)
	}
	if a.txs == nil {
		return nil
	}
	if err := a.txs.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, domain.ErrNotPending) {
			return err
		}
		log.Printf("ERROR: remote status update failed for %s: %v", id, err)
		return fmt.Errorf("%w: %v", domain.ErrRemoteSyncPending, err)
	}
	return nil
}

// DeleteUser removes a user, local cache first.
func (a *Adapter) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := a.cache.DeleteUser(id); err != nil {
		return fmt.Errorf("failed to delete cached user: %w", err)
	}
	if a.users == nil {
		return nil
	}
	if err := a.users.Delete(ctx, id); err != nil {
		log.Printf("ERROR: remote user delete failed for %s: %v", id, err)
		return fmt.Errorf("%w: %v", domain.ErrRemoteSyncPending, err)
	}
	return nil
}

// SaveGateway upserts a gateway, local cache first.
func (a *Adapter) SaveGateway(ctx context.Context, gw *domain.PaymentGateway) error {
	if err := a.cache.SaveGateway(gw); err != nil {
		return fmt.Errorf("failed to cache gateway: %w", err)
	}
	if a.gateways == nil {
		return nil
	}
	if err := a.gateways.Upsert(ctx, gw); err != nil {
		log.Printf("ERROR: remote gateway save failed for %s: %v", gw.Name, err)
		return fmt.Errorf("%w: %v", domain.ErrRemoteSyncPending, err)
	}
	return nil
}

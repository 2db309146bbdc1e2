// Package localstore is a per-collection JSON record store used as the
// offline fallback and write-through mirror of the remote database. It keeps
// one file per collection, upserts by key, and has no eviction or TTL: it is
// a durability fallback, not a performance cache.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"elitex/internal/domain"
)

// Collection file names
const (
	usersFile        = "local_users.json"
	transactionsFile = "local_txs.json"
	gatewaysFile     = "local_gateways.json"
)

// userRecord is the persisted shape of a user. The domain struct hides the
// password hash from its JSON form, so the cache keeps its own record type
// that carries it. Without this, a cache round trip would strip every hash
// and no login could succeed against the fallback.
type userRecord struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Address      string           `json:"address,omitempty"`
	Phone        string           `json:"phone,omitempty"`
	PasswordHash string           `json:"password_hash,omitempty"`
	Role         string           `json:"role"`
	Balance      decimal.Decimal  `json:"balance"`
	Portfolio    domain.Portfolio `json:"portfolio"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func toUserRecord(u *domain.User) *userRecord {
	return &userRecord{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Address:      u.Address,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Balance:      u.Balance,
		Portfolio:    u.Portfolio,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r *userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		Address:      r.Address,
		Phone:        r.Phone,
		PasswordHash: r.PasswordHash,
		Role:         r.Role,
		Balance:      r.Balance,
		Portfolio:    r.Portfolio,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// Store persists entity collections as JSON files under a data directory.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New creates the data directory if needed and returns a Store.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func read[T any](s *Store, file string) ([]T, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, file))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", file, err)
	}
	return records, nil
}

func write[T any](s *Store, file string, records []T) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", file, err)
	}
	// Write-then-rename so a crash mid-write never truncates a collection.
	path := filepath.Join(s.dir, file)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", file, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", file, err)
	}
	return nil
}

// Users returns the cached user collection.
func (s *Store) Users() ([]*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := read[*userRecord](s, usersFile)
	if err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(records))
	for _, r := range records {
		users = append(users, r.toDomain())
	}
	return users, nil
}

// SetUsers replaces the cached user collection wholesale. Used when a remote
// read succeeds and the remote result wins.
func (s *Store) SetUsers(users []*domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]*userRecord, 0, len(users))
	for _, u := range users {
		records = append(records, toUserRecord(u))
	}
	return write(s, usersFile, records)
}

// SaveUser upserts a single user by id.
func (s *Store) SaveUser(user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := read[*userRecord](s, usersFile)
	if err != nil {
		return err
	}
	record := toUserRecord(user)
	replaced := false
	for i, r := range records {
		if r.ID == user.ID {
			records[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, record)
	}
	return write(s, usersFile, records)
}

// DeleteUser removes a user by id. Deleting an unknown id is a no-op.
func (s *Store) DeleteUser(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := read[*userRecord](s, usersFile)
	if err != nil {
		return err
	}
	kept := records[:0]
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	return write(s, usersFile, kept)
}

// Transactions returns the cached transaction collection, newest first.
func (s *Store) Transactions() ([]*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return read[*domain.Transaction](s, transactionsFile)
}

// SetTransactions replaces the cached transaction collection wholesale.
func (s *Store) SetTransactions(txs []*domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return write(s, transactionsFile, txs)
}

// AddTransaction prepends a new transaction so the cache stays newest-first.
func (s *Store) AddTransaction(tx *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	txs, err := read[*domain.Transaction](s, transactionsFile)
	if err != nil {
		return err
	}
	txs = append([]*domain.Transaction{tx}, txs...)
	return write(s, transactionsFile, txs)
}

// SetTransactionStatus updates the status of a cached transaction in place.
func (s *Store) SetTransactionStatus(id uuid.UUID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	txs, err := read[*domain.Transaction](s, transactionsFile)
	if err != nil {
		return err
	}
	for _, tx := range txs {
		if tx.ID == id {
			tx.Status = status
			break
		}
	}
	return write(s, transactionsFile, txs)
}

// Gateways returns the cached payment gateway collection.
func (s *Store) Gateways() ([]*domain.PaymentGateway, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return read[*domain.PaymentGateway](s, gatewaysFile)
}

// SetGateways replaces the cached gateway collection wholesale.
func (s *Store) SetGateways(gateways []*domain.PaymentGateway) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return write(s, gatewaysFile, gateways)
}

// SaveGateway upserts a single gateway by name.
func (s *Store) SaveGateway(gw *domain.PaymentGateway) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	gateways, err := read[*domain.PaymentGateway](s, gatewaysFile)
	if err != nil {
		return err
	}
	replaced := false
	for i, g := range gateways {
		if g.Name == gw.Name {
			gateways[i] = gw
			replaced = true
			break
		}
	}
	if !replaced {
		gateways = append(gateways, gw)
	}
	return write(s, gatewaysFile, gateways)
}

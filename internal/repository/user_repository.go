package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"elitex/internal/domain"
)

// UserRepository handles user rows in the remote store. It owns the
// camelCase-to-snake_case column mapping for users; no other component knows
// the remote naming.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// FetchAll retrieves all user records.
func (r *UserRepository) FetchAll(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT id, name, email, COALESCE(address, ''), COALESCE(phone, ''),
		       password_hash, role, balance, portfolio, created_at, updated_at
		FROM users
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user := &domain.User{}
		var portfolio []byte
		err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.Address,
			&user.Phone,
			&user.PasswordHash,
			&user.Role,
			&user.Balance,
			&portfolio,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		if err := json.Unmarshal(portfolio, &user.Portfolio); err != nil {
			return nil, fmt.Errorf("failed to decode portfolio for user %s: %w", user.ID, err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// Upsert inserts a user or replaces its mutable fields when the id exists.
func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) error {
	portfolio, err := json.Marshal(user.Portfolio)
	if err != nil {
		return fmt.Errorf("failed to encode portfolio: %w", err)
	}

	query := `
		INSERT INTO users (
			id, name, email, address, phone, password_hash, role,
			balance, portfolio, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW()
		)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			address = EXCLUDED.address,
			phone = EXCLUDED.phone,
			password_hash = EXCLUDED.password_hash,
			role = EXCLUDED.role,
			balance = EXCLUDED.balance,
			portfolio = EXCLUDED.portfolio,
			updated_at = NOW()
	`

	_, err = r.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Address,
		user.Phone,
		user.PasswordHash,
		user.Role,
		user.Balance,
		portfolio,
		user.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	return nil
}

// Delete removes a user row by id.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"elitex/internal/domain"
)

// TransactionRepository handles transaction rows in the remote store.
type TransactionRepository struct {
	db *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// FetchAll retrieves all transactions, newest first.
func (r *TransactionRepository) FetchAll(ctx context.Context) ([]*domain.Transaction, error) {
	query := `
		SELECT id, user_id, user_name, COALESCE(asset_type, ''),
		       amount, price_at_request, total_value, type, status,
		       created_at, COALESCE(external_tx_id, ''), COALESCE(payout_details, '')
		FROM transactions
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txs []*domain.Transaction
	for rows.Next() {
		tx := &domain.Transaction{}
		err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.UserName,
			&tx.AssetType,
			&tx.Amount,
			&tx.PriceAtRequest,
			&tx.TotalValue,
			&tx.Type,
			&tx.Status,
			&tx.Date,
			&tx.ExternalTxID,
			&tx.PayoutDetails,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return txs, nil
}

// Insert writes a new transaction record.
func (r *TransactionRepository) Insert(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (
			id, user_id, user_name, asset_type, amount, price_at_request,
			total_value, type, status, created_at, external_tx_id, payout_details
		) VALUES (
			$1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, NULLIF($11, ''), NULLIF($12, '')
		)
	`

	_, err := r.db.Exec(ctx, query,
		tx.ID,
		tx.UserID,
		tx.UserName,
		string(tx.AssetType),
		tx.Amount,
		tx.PriceAtRequest,
		tx.TotalValue,
		tx.Type,
		tx.Status,
		tx.Date,
		tx.ExternalTxID,
		tx.PayoutDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// UpdateStatus moves a transaction out of PENDING. The WHERE clause guards
// the transition server-side: a transaction already decided stays decided,
// so a racing second approval cannot re-apply.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `
		UPDATE transactions
		SET status = $1
		WHERE id = $2 AND status = $3
	`

	result, err := r.db.Exec(ctx, query, status, id, domain.StatusPending)
	if err != nil {
		return fmt.Errorf("failed to update transaction status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrNotPending
	}

	return nil
}

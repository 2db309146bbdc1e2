package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"elitex/internal/domain"
)

// GatewayRepository handles payment gateway rows in the remote store.
// Gateways are keyed by name, not id.
type GatewayRepository struct {
	db *pgxpool.Pool
}

// NewGatewayRepository creates a new GatewayRepository
func NewGatewayRepository(db *pgxpool.Pool) *GatewayRepository {
	return &GatewayRepository{db: db}
}

// FetchAll retrieves all payment gateways.
func (r *GatewayRepository) FetchAll(ctx context.Context) ([]*domain.PaymentGateway, error) {
	query := `
		SELECT name, active, api_key,
		       COALESCE(bank_name, ''), COALESCE(account_number, ''), COALESCE(link, ''),
		       COALESCE(currency, ''), min_deposit, max_deposit, fee_percent,
		       COALESCE(merchant_name, ''), COALESCE(logo_url, '')
		FROM payment_gateways
		ORDER BY name ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query gateways: %w", err)
	}
	defer rows.Close()

	var gateways []*domain.PaymentGateway
	for rows.Next() {
		gw := &domain.PaymentGateway{}
		err := rows.Scan(
			&gw.Name,
			&gw.Active,
			&gw.APIKey,
			&gw.BankName,
			&gw.AccountNumber,
			&gw.Link,
			&gw.Currency,
			&gw.MinDeposit,
			&gw.MaxDeposit,
			&gw.FeePercent,
			&gw.MerchantName,
			&gw.LogoURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gateway: %w", err)
		}
		gateways = append(gateways, gw)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating gateways: %w", err)
	}

	return gateways, nil
}

// Upsert inserts a gateway or replaces it when the name exists.
func (r *GatewayRepository) Upsert(ctx context.Context, gw *domain.PaymentGateway) error {
	query := `
		INSERT INTO payment_gateways (
			name, active, api_key, bank_name, account_number, link,
			currency, min_deposit, max_deposit, fee_percent, merchant_name, logo_url
		) VALUES (
			$1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''),
			NULLIF($7, ''), $8, $9, $10, NULLIF($11, ''), NULLIF($12, '')
		)
		ON CONFLICT (name) DO UPDATE SET
			active = EXCLUDED.active,
			api_key = EXCLUDED.api_key,
			bank_name = EXCLUDED.bank_name,
			account_number = EXCLUDED.account_number,
			link = EXCLUDED.link,
			currency = EXCLUDED.currency,
			min_deposit = EXCLUDED.min_deposit,
			max_deposit = EXCLUDED.max_deposit,
			fee_percent = EXCLUDED.fee_percent,
			merchant_name = EXCLUDED.merchant_name,
			logo_url = EXCLUDED.logo_url
	`

	_, err := r.db.Exec(ctx, query,
		gw.Name,
		gw.Active,
		gw.APIKey,
		gw.BankName,
		gw.AccountNumber,
		gw.Link,
		gw.Currency,
		gw.MinDeposit,
		gw.MaxDeposit,
		gw.FeePercent,
		gw.MerchantName,
		gw.LogoURL,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert gateway: %w", err)
	}

	return nil
}

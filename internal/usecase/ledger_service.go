package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"elitex/internal/domain"
)

// Trade directions
const (
	DirectionBuy  = "BUY"
	DirectionSell = "SELL"
)

// Manual balance adjustment directions
const (
	AdjustAdd      = "ADD"
	AdjustSubtract = "SUBTRACT"
)

// ManualAdjustmentRef tags audit transactions written for admin balance
// adjustments, so they are distinguishable from real deposits/withdrawals.
const ManualAdjustmentRef = "MANUAL-ADJUSTMENT"

// LedgerService holds the balance, portfolio and transaction rules. All
// operations take the acting user explicitly and write through the storage
// adapter before reporting completion.
//
// Operations may succeed while returning domain.ErrRemoteSyncPending: the
// in-memory result and local cache are updated but the remote write failed.
// Callers keep the returned entities and warn that remote durability is
// uncertain.
type LedgerService struct {
	store domain.Store
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(store domain.Store) *LedgerService {
	return &LedgerService{store: store}
}

// ComputeNetWorth returns balance plus the market value of every portfolio
// holding at current catalog prices. Pure; asset order does not matter and a
// catalog asset missing from the portfolio counts as zero holdings.
func (s *LedgerService) ComputeNetWorth(user *domain.User, assets []domain.Asset) decimal.Decimal {
	total := user.Balance
	for _, asset := range assets {
		total = total.Add(user.Portfolio.Holding(asset.Type).Mul(asset.Price))
	}
	return total
}

// ExecuteTrade prices a buy or sell against the given asset, mutates a copy
// of the user, and records an APPROVED transaction (trades are not subject to
// admin review). Validation and funds checks happen before any mutation.
func (s *LedgerService) ExecuteTrade(ctx context.Context, user *domain.User, asset domain.Asset, quantity decimal.Decimal, direction string) (*domain.User, *domain.Transaction, error) {
	if direction != DirectionBuy && direction != DirectionSell {
		return nil, nil, fmt.Errorf("%w: unknown trade direction %q", domain.ErrValidation, direction)
	}
	if !quantity.IsPositive() {
		return nil, nil, fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
	}

	value := quantity.Mul(asset.Price)
	updated := user.Clone()

	switch direction {
	case DirectionBuy:
		if value.GreaterThan(updated.Balance) {
			return nil, nil, domain.ErrInsufficientFunds
		}
		updated.Balance = updated.Balance.Sub(value)
		updated.Portfolio[asset.Type] = updated.Portfolio.Holding(asset.Type).Add(quantity)
	case DirectionSell:
		// Selling more than held clamps the holding to zero instead of
		// failing; the proceeds are still quantity * price.
		updated.Balance = updated.Balance.Add(value)
		updated.Portfolio[asset.Type] = decimal.Max(decimal.Zero, updated.Portfolio.Holding(asset.Type).Sub(quantity))
	}
	updated.UpdatedAt = time.Now()

	tx := &domain.Transaction{
		ID:             uuid.New(),
		UserID:         user.ID,
		UserName:       user.Name,
		AssetType:      asset.Type,
		Amount:         quantity,
		PriceAtRequest: asset.Price,
		TotalValue:     value,
		Type:           direction,
		Status:         domain.StatusApproved,
		Date:           time.Now(),
	}

	var syncWarn error
	if err := s.store.SyncUser(ctx, updated); err != nil {
		if !errors.Is(err, domain.ErrRemoteSyncPending) {
			return nil, nil, fmt.Errorf("failed to persist user after trade: %w", err)
		}
		syncWarn = err
	}
	if err := s.store.AddTransaction(ctx, tx); err != nil {
		if !errors.Is(err, domain.ErrRemoteSyncPending) {
			return nil, nil, fmt.Errorf("failed to record trade transaction: %w", err)
		}
		syncWarn = err
	}

	return updated, tx, syncWarn
}

// RequestDeposit records a PENDING deposit carrying the user's external
// payment reference. The balance is untouched until an admin approves.
func (s *LedgerService) RequestDeposit(ctx context.Context, user *domain.User, amount decimal.Decimal, externalRef string) (*domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: deposit amount must be positive", domain.ErrValidation)
	}
	if strings.TrimSpace(externalRef) == "" {
		return nil, fmt.Errorf("%w: deposit reference is required", domain.ErrValidation)
	}

	tx := &domain.Transaction{
		ID:             uuid.New(),
		UserID:         user.ID,
		UserName:       user.Name,
		Amount:         amount,
		PriceAtRequest: decimal.NewFromInt(1),
		TotalValue:     amount,
		Type:           domain.TxDeposit,
		Status:         domain.StatusPending,
		Date:           time.Now(),
		ExternalTxID:   externalRef,
	}

	if err := s.store.AddTransaction(ctx, tx); err != nil {
		if !errors.Is(err, domain.ErrRemoteSyncPending) {
			return nil, fmt.Errorf("failed to record deposit request: %w", err)
		}
		return tx, err
	}
	return tx, nil
}

// RequestWithdrawal records a PENDING withdrawal and immediately moves the
// amount out of the balance: the funds are held in escrow until the admin
// decides, not still spendable.
func (s *LedgerService) RequestWithdrawal(ctx context.Context, user *domain.User, amount decimal.Decimal, payoutDetails string) (*domain.User, *domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: withdrawal amount must be positive", domain.ErrValidation)
	}
	if strings.TrimSpace(payoutDetails) == "" {
		return nil, nil, fmt.Errorf("%w: payout details are required", domain.ErrValidation)
	}
	if amount.GreaterThan(user.Balance) {
		return nil, nil, domain.ErrInsufficientFunds
	}

	updated := user.Clone()
	updated.Balance = updated.Balance.Sub(amount)
	updated.UpdatedAt = time.Now()

	tx := &domain.Transaction{
		ID:             uuid.New(),
		UserID:         user.ID,
		UserName:       user.Name,
		Amount:         amount,
		PriceAtRequest: decimal.NewFromInt(1),
		TotalValue:     amount,
		Type:           domain.TxWithdraw,
		Status:         domain.StatusPending,
		Date:           time.Now(),
		PayoutDetails:  payoutDetails,
	}

	var syncWarn error
	if err := s.store.AddTransaction(ctx, tx); err != nil {
		if !errors.Is(err, domain.ErrRemoteSyncPending) {
			return nil, nil, fmt.Errorf("failed to record withdrawal request: %w", err)
		}
		syncWarn = err
	}
	if err := s.store.SyncUser(ctx, updated); err != nil {
		if !errors.Is(err, domain.ErrRemoteSyncPending) {
			return nil, nil, fmt.Errorf("failed to persist escrowed balance: %w", err)
		}
		syncWarn = err
	}

	return updated, tx, syncWarn
}

// ProcessAdminDecision moves a PENDING transaction to APPROVED or REJECTED and
// applies the balance effect exactly once:
//
//	DEPOSIT  + APPROVED → credit the amount
//	WITHDRAW + REJECTED → refund the escrowed hold
//	anything else       → status change only (the approved withdrawal already
//	                      debited the balance at request time)
//
// Transactions that already left PENDING are rejected with ErrNotPending, so
// deciding the same transaction twice cannot double-apply.
//
// The returned user is nil when the transaction has no balance effect or its
// owner no longer exists.
func (s *LedgerService) ProcessAdminDecision(ctx context.Context, txID uuid.UUID, decision string) (*domain.User, *domain.Transaction, error) {
	if decision != domain.StatusApproved && decision != domain.StatusRejected {
		return nil, nil, fmt.Errorf("%w: unknown decision %q", domain.ErrValidation, decision)
	}

	tx, err := s.findTransaction(ctx, txID)
	if err != nil {
		return nil, nil, err
	}
	if !tx.IsPending() {
		return nil, nil, domain.ErrNotPending
	}

	var syncWarn error
	if err := s.store.UpdateTransactionStatus(ctx, txID, decision); err != nil {
		if errors.Is(err, domain.ErrNotPending) {
			return nil, nil, err
		}
		if !errors.Is(err, domain.ErrRemoteSyncPending) {
			return nil, nil, fmt.Errorf("failed to update transaction status: %w", err)
		}
		syncWarn = err
	}
	tx.Status = decision

	credit := decimal.Zero
	switch {
	case tx.Type == domain.TxDeposit && decision == domain.StatusApproved:
		credit = tx.Amount
	case tx.Type == domain.TxWithdraw && decision == domain.StatusRejected:
		credit = tx.Amount
	}
	if credit.IsZero() {
		return nil, tx, syncWarn
	}

	owner, err := s.GetUser(ctx, tx.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Owner deleted since the request; status still transitions.
			return nil, tx, syncWarn
		}
		return nil, tx, err
	}

	updated := owner.Clone()
	updated.Balance = updated.Balance.Add(credit)
	updated.UpdatedAt = time.Now()

	if err := s.store.SyncUser(ctx, updated); err != nil {
		if !errors.Is(err, domain.ErrRemoteSyncPending) {
			return nil, tx, fmt.Errorf("failed to persist balance effect: %w", err)
		}
		syncWarn = err
	}

	return updated, tx, syncWarn
}

// AdjustBalance applies an admin's direct balance change. SUBTRACT clamps at
// zero. Every adjustment writes an APPROVED audit transaction tagged with
// ManualAdjustmentRef, so no balance mutation escapes the ledger.
func (s *LedgerService) AdjustBalance(ctx context.Context, user *domain.User, amount decimal.Decimal, direction string) (*domain.User, *domain.Transaction, error) {
	if direction != AdjustAdd && direction != AdjustSubtract {
		return nil, nil, fmt.Errorf("%w: unknown adjustment direction %q", domain.ErrValidation, direction)
	}
	if !amount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: adjustment amount must be positive", domain.ErrValidation)
	}

	updated := user.Clone()
	applied := amount
	txType := domain.TxDeposit
	if direction == AdjustAdd {
		updated.Balance = updated.Balance.Add(amount)
	} else {
		applied = decimal.Min(amount, updated.Balance)
		updated.Balance = updated.Balance.Sub(applied)
		txType = domain.TxWithdraw
	}
	updated.UpdatedAt = time.Now()

	tx := &domain.Transaction{
		ID:             uuid.New(),
		UserID:         user.ID,
		UserName:       user.Name,
		Amount:         applied,
		PriceAtRequest: decimal.NewFromInt(1),
		TotalValue:     applied,
		Type:           txType,
		Status:         domain.StatusApproved,
		Date:           time.Now(),
		ExternalTxID:   ManualAdjustmentRef,
	}

	var syncWarn error
	if err := s.store.SyncUser(ctx, updated); err != nil {
		if !errors.Is(err, domain.ErrRemoteSyncPending) {
			return nil, nil, fmt.Errorf("failed to persist adjusted balance: %w", err)
		}
		syncWarn = err
	}
	if err := s.store.AddTransaction(ctx, tx); err != nil {
		if !errors.Is(err, domain.ErrRemoteSyncPending) {
			return nil, nil, fmt.Errorf("failed to record adjustment: %w", err)
		}
		syncWarn = err
	}

	return updated, tx, syncWarn
}

// GetUser loads a user by id through the adapter.
func (s *LedgerService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	users, err := s.store.FetchUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// GetUserByEmail loads a user by email, compared case-insensitively.
func (s *LedgerService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	users, err := s.store.FetchUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range users {
		if strings.ToLower(u.Email) == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// UserTransactions returns the user's transactions, newest first.
func (s *LedgerService) UserTransactions(ctx context.Context, userID uuid.UUID) ([]*domain.Transaction, error) {
	txs, err := s.store.FetchTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	own := make([]*domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.UserID == userID {
			own = append(own, tx)
		}
	}
	return own, nil
}

func (s *LedgerService) findTransaction(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	txs, err := s.store.FetchTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	for _, tx := range txs {
		if tx.ID == id {
			return tx, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

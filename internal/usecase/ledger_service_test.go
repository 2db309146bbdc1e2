package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elitex/internal/domain"
	"elitex/internal/usecase"
)

// memStore is an in-memory domain.Store. With failRemote set it behaves like
// the real adapter when the remote store is down: the write lands, but the
// call reports ErrRemoteSyncPending.
type memStore struct {
	users      map[uuid.UUID]*domain.User
	txs        []*domain.Transaction
	gateways   map[string]*domain.PaymentGateway
	failRemote bool
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[uuid.UUID]*domain.User),
		gateways: make(map[string]*domain.PaymentGateway),
	}
}

func (m *memStore) writeErr() error {
	if m.failRemote {
		return fmt.Errorf("%w: connection refused", domain.ErrRemoteSyncPending)
	}
	return nil
}

func (m *memStore) FetchUsers(ctx context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u.Clone())
	}
	return out, nil
}

func (m *memStore) FetchTransactions(ctx context.Context) ([]*domain.Transaction, error) {
	out := make([]*domain.Transaction, len(m.txs))
	for i, tx := range m.txs {
		cp := *tx
		out[i] = &cp
	}
	return out, nil
}

func (m *memStore) FetchGateways(ctx context.Context) ([]*domain.PaymentGateway, error) {
	out := make([]*domain.PaymentGateway, 0, len(m.gateways))
	for _, g := range m.gateways {
		cp := *g
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memStore) SyncUser(ctx context.Context, user *domain.User) error {
	m.users[user.ID] = user.Clone()
	return m.writeErr()
}

func (m *memStore) AddTransaction(ctx context.Context, tx *domain.Transaction) error {
	cp := *tx
	m.txs = append([]*domain.Transaction{&cp}, m.txs...)
	return m.writeErr()
}

func (m *memStore) UpdateTransactionStatus(ctx context.Context, id uuid.UUID, status string) error {
	for _, tx := range m.txs {
		if tx.ID == id {
			if tx.Status != domain.StatusPending {
				return domain.ErrNotPending
			}
			tx.Status = status
			return m.writeErr()
		}
	}
	return domain.ErrTransactionNotFound
}

func (m *memStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	delete(m.users, id)
	return m.writeErr()
}

func (m *memStore) SaveGateway(ctx context.Context, gw *domain.PaymentGateway) error {
	cp := *gw
	m.gateways[gw.Name] = &cp
	return m.writeErr()
}

func newUser(balance string) *domain.User {
	return &domain.User{
		ID:        uuid.New(),
		Name:      "Ada Lovelace",
		Email:     "ada@example.com",
		Role:      domain.RoleUser,
		Balance:   decimal.RequireFromString(balance),
		Portfolio: domain.NewPortfolio(),
		CreatedAt: time.Now(),
	}
}

func bitcoin(t *testing.T) domain.Asset {
	t.Helper()
	for _, a := range domain.DefaultCatalog() {
		if a.Type == domain.AssetBitcoin {
			return a
		}
	}
	t.Fatal("bitcoin missing from catalog")
	return domain.Asset{}
}

func TestComputeNetWorth(t *testing.T) {
	t.Parallel()
	ledger := usecase.NewLedgerService(newMemStore())
	assets := domain.DefaultCatalog()

	user := newUser("1000")
	user.Portfolio[domain.AssetBitcoin] = decimal.RequireFromString("0.5")
	user.Portfolio[domain.AssetGold] = decimal.RequireFromString("2")

	// 1000 + 0.5*94250.50 + 2*2750.80
	want := decimal.RequireFromString("53626.85")

	got := ledger.ComputeNetWorth(user, assets)
	assert.True(t, got.Equal(want), "net worth = %s, want %s", got, want)

	t.Run("catalog order does not matter", func(t *testing.T) {
		reversed := make([]domain.Asset, len(assets))
		for i, a := range assets {
			reversed[len(assets)-1-i] = a
		}
		assert.True(t, ledger.ComputeNetWorth(user, reversed).Equal(want))
	})

	t.Run("missing portfolio entry counts as zero", func(t *testing.T) {
		bare := newUser("250")
		bare.Portfolio = domain.Portfolio{} // no keys at all
		got := ledger.ComputeNetWorth(bare, assets)
		assert.True(t, got.Equal(decimal.RequireFromString("250")), "got %s", got)
	})
}

func TestExecuteTradeBuy(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	ledger := usecase.NewLedgerService(store)
	user := newUser("1000")

	updated, tx, err := ledger.ExecuteTrade(context.Background(), user, bitcoin(t),
		decimal.RequireFromString("0.01"), usecase.DirectionBuy)
	require.NoError(t, err)

	assert.True(t, updated.Balance.Equal(decimal.RequireFromString("57.495")), "balance %s", updated.Balance)
	assert.True(t, updated.Portfolio[domain.AssetBitcoin].Equal(decimal.RequireFromString("0.01")))

	require.NotNil(t, tx)
	assert.Equal(t, domain.StatusApproved, tx.Status)
	assert.Equal(t, domain.TxBuy, tx.Type)
	assert.True(t, tx.TotalValue.Equal(decimal.RequireFromString("942.505")), "total %s", tx.TotalValue)
	assert.True(t, tx.PriceAtRequest.Equal(decimal.RequireFromString("94250.50")))

	// Both records persisted.
	require.Len(t, store.txs, 1)
	persisted := store.users[user.ID]
	require.NotNil(t, persisted)
	assert.True(t, persisted.Balance.Equal(updated.Balance))

	// Caller's snapshot untouched.
	assert.True(t, user.Balance.Equal(decimal.RequireFromString("1000")))
}

func TestExecuteTradeBuyInsufficientFunds(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	ledger := usecase.NewLedgerService(store)
	user := newUser("100")

	_, _, err := ledger.ExecuteTrade(context.Background(), user, bitcoin(t),
		decimal.RequireFromString("1"), usecase.DirectionBuy)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// Nothing persisted, nothing mutated.
	assert.Empty(t, store.txs)
	assert.Empty(t, store.users)
	assert.True(t, user.Balance.Equal(decimal.RequireFromString("100")))
}

func TestExecuteTradeSellClampsToZero(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	ledger := usecase.NewLedgerService(store)
	user := newUser("0")
	user.Portfolio[domain.AssetGold] = decimal.RequireFromString("1.5")

	var gold domain.Asset
	for _, a := range domain.DefaultCatalog() {
		if a.Type == domain.AssetGold {
			gold = a
		}
	}

	// Sell more than held: holding clamps to exactly zero, proceeds still
	// priced on the full quantity.
	updated, tx, err := ledger.ExecuteTrade(context.Background(), user, gold,
		decimal.RequireFromString("5"), usecase.DirectionSell)
	require.NoError(t, err)

	assert.True(t, updated.Portfolio[domain.AssetGold].Equal(decimal.Zero), "holding %s", updated.Portfolio[domain.AssetGold])
	wantProceeds := decimal.RequireFromString("13754.00") // 5 * 2750.80
	assert.True(t, updated.Balance.Equal(wantProceeds), "balance %s", updated.Balance)
	assert.True(t, tx.TotalValue.Equal(wantProceeds))
	assert.Equal(t, domain.TxSell, tx.Type)
}

func TestExecuteTradeValidation(t *testing.T) {
	t.Parallel()
	ledger := usecase.NewLedgerService(newMemStore())
	user := newUser("1000")
	btc := bitcoin(t)

	cases := []struct {
		name      string
		qty       decimal.Decimal
		direction string
	}{
		{"zero quantity", decimal.Zero, usecase.DirectionBuy},
		{"negative quantity", decimal.RequireFromString("-1"), usecase.DirectionSell},
		{"unknown direction", decimal.RequireFromString("1"), "SHORT"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ledger.ExecuteTrade(context.Background(), user, btc, tc.qty, tc.direction)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestRequestDeposit(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	ledger := usecase.NewLedgerService(store)
	user := newUser("300")

	tx, err := ledger.RequestDeposit(context.Background(), user, decimal.RequireFromString("200"), "BANKREF-42")
	require.NoError(t, err)

	assert.Equal(t, domain.TxDeposit, tx.Type)
	assert.Equal(t, domain.StatusPending, tx.Status)
	assert.Equal(t, "BANKREF-42", tx.ExternalTxID)
	assert.True(t, tx.PriceAtRequest.Equal(decimal.NewFromInt(1)))
	assert.True(t, tx.TotalValue.Equal(decimal.RequireFromString("200")))

	// Balance untouched until an admin approves.
	assert.Empty(t, store.users)
	require.Len(t, store.txs, 1)

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := ledger.RequestDeposit(context.Background(), user, decimal.Zero, "ref")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
	t.Run("rejects empty reference", func(t *testing.T) {
		_, err := ledger.RequestDeposit(context.Background(), user, decimal.NewFromInt(10), "   ")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestWithdrawalEscrowAndRejectRefund(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	ledger := usecase.NewLedgerService(store)
	user := newUser("1000")
	store.users[user.ID] = user.Clone()

	updated, tx, err := ledger.RequestWithdrawal(context.Background(), user,
		decimal.RequireFromString("500"), "IBAN DE00 1234")
	require.NoError(t, err)

	// Funds move to escrow immediately, before the admin decides.
	assert.True(t, updated.Balance.Equal(decimal.RequireFromString("500")), "balance %s", updated.Balance)
	assert.Equal(t, domain.StatusPending, tx.Status)
	assert.Equal(t, "IBAN DE00 1234", tx.PayoutDetails)

	// Admin rejects: the hold is refunded and the transaction terminates.
	refunded, decided, err := ledger.ProcessAdminDecision(context.Background(), tx.ID, domain.StatusRejected)
	require.NoError(t, err)
	require.NotNil(t, refunded)
	assert.True(t, refunded.Balance.Equal(decimal.RequireFromString("1000")), "balance %s", refunded.Balance)
	assert.Equal(t, domain.StatusRejected, decided.Status)
}

func TestWithdrawalApprovedIsNoFurtherDebit(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	ledger := usecase.NewLedgerService(store)
	user := newUser("1000")
	store.users[user.ID] = user.Clone()

	updated, tx, err := ledger.RequestWithdrawal(context.Background(), user,
		decimal.RequireFromString("400"), "wallet 0xabc")
	require.NoError(t, err)
	assert.True(t, updated.Balance.Equal(decimal.RequireFromString("600")))

	// Approval only flips the status; the balance was already debited at
	// request time.
	owner, decided, err := ledger.ProcessAdminDecision(context.Background(), tx.ID, domain.StatusApproved)
	require.NoError(t, err)
	assert.Nil(t, owner)
	assert.Equal(t, domain.StatusApproved, decided.Status)
	assert.True(t, store.users[user.ID].Balance.Equal(decimal.RequireFromString("600")))
}

func TestWithdrawalInsufficientFunds(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	ledger := usecase.NewLedgerService(store)
	user := newUser("100")

	_, _, err := ledger.RequestWithdrawal(context.Background(), user,
		decimal.RequireFromString("150"), "details")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Empty(t, store.txs)
}

func TestDepositApprovalCreditsOnce(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	ledger := usecase.NewLedgerService(store)
	user := newUser("300")
	store.users[user.ID] = user.Clone()

	tx, err := ledger.RequestDeposit(context.Background(), user, decimal.RequireFromString("200"), "ref-1")
	require.NoError(t, err)

	credited, decided, err := ledger.ProcessAdminDecision(context.Background(), tx.ID, domain.StatusApproved)
	require.NoError(t, err)
	require.NotNil(t, credited)
	assert.True(t, credited.Balance.Equal(decimal.RequireFromString("500")), "balance %s", credited.Balance)
	assert.Equal(t, domain.StatusApproved, decided.Status)

	// Deciding the same transaction again is refused and must not
	// double-credit.
	_, _, err = ledger.ProcessAdminDecision(context.Background(), tx.ID, domain.StatusApproved)
	assert.ErrorIs(t, err, domain.ErrNotPending)
	assert.True(t, store.users[user.ID].Balance.Equal(decimal.RequireFromString("500")))
}

func TestDepositRejectionLeavesBalance(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	ledger := usecase.NewLedgerService(store)
	user := newUser("300")
	store.users[user.ID] = user.Clone()

	tx, err := ledger.RequestDeposit(context.Background(), user, decimal.RequireFromString("200"), "ref-2")
	require.NoError(t, err)

	owner, decided, err := ledger.ProcessAdminDecision(context.Background(), tx.ID, domain.StatusRejected)
	require.NoError(t, err)
	assert.Nil(t, owner)
	assert.Equal(t, domain.StatusRejected, decided.Status)
	assert.True(t, store.users[user.ID].Balance.Equal(decimal.RequireFromString("300")))
}

func TestProcessAdminDecisionValidation(t *testing.T) {
	t.Parallel()
	ledger := usecase.NewLedgerService(newMemStore())

	_, _, err := ledger.ProcessAdminDecision(context.Background(), uuid.New(), "MAYBE")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, _, err = ledger.ProcessAdminDecision(context.Background(), uuid.New(), domain.StatusApproved)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestAdjustBalance(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	ledger := usecase.NewLedgerService(store)

	t.Run("add credits and records an audit transaction", func(t *testing.T) {
		user := newUser("100")
		updated, tx, err := ledger.AdjustBalance(context.Background(), user,
			decimal.RequireFromString("50"), usecase.AdjustAdd)
		require.NoError(t, err)
		assert.True(t, updated.Balance.Equal(decimal.RequireFromString("150")))
		assert.Equal(t, domain.TxDeposit, tx.Type)
		assert.Equal(t, domain.StatusApproved, tx.Status)
		assert.Equal(t, usecase.ManualAdjustmentRef, tx.ExternalTxID)
	})

	t.Run("subtract clamps at zero and audits the applied amount", func(t *testing.T) {
		user := newUser("30")
		updated, tx, err := ledger.AdjustBalance(context.Background(), user,
			decimal.RequireFromString("100"), usecase.AdjustSubtract)
		require.NoError(t, err)
		assert.True(t, updated.Balance.Equal(decimal.Zero), "balance %s", updated.Balance)
		assert.Equal(t, domain.TxWithdraw, tx.Type)
		assert.True(t, tx.Amount.Equal(decimal.RequireFromString("30")), "audited %s", tx.Amount)
	})

	t.Run("rejects unknown direction", func(t *testing.T) {
		user := newUser("10")
		_, _, err := ledger.AdjustBalance(context.Background(), user, decimal.NewFromInt(1), "HALVE")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestRemoteSyncPendingIsSurfacedNotFatal(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	store.failRemote = true
	ledger := usecase.NewLedgerService(store)
	user := newUser("1000")

	updated, tx, err := ledger.ExecuteTrade(context.Background(), user, bitcoin(t),
		decimal.RequireFromString("0.01"), usecase.DirectionBuy)

	// The operation succeeded locally; the caller gets the entities plus the
	// sync warning so the UI can flag uncertain remote durability.
	assert.ErrorIs(t, err, domain.ErrRemoteSyncPending)
	require.NotNil(t, updated)
	require.NotNil(t, tx)
	assert.True(t, updated.Balance.Equal(decimal.RequireFromString("57.495")))
	require.Len(t, store.txs, 1)
}

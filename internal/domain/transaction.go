package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is a ledger record. It is created once and only its Status
// field ever changes afterwards; records are never deleted.
type Transaction struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	UserName       string          `json:"user_name"`
	AssetType      AssetType       `json:"asset_type,omitempty"` // empty for DEPOSIT/WITHDRAW
	Amount         decimal.Decimal `json:"amount"`               // quantity for trades, fiat for deposits/withdrawals
	PriceAtRequest decimal.Decimal `json:"price_at_request"`     // 1 for fiat moves
	TotalValue     decimal.Decimal `json:"total_value"`
	Type           string          `json:"type"`
	Status         string          `json:"status"`
	Date           time.Time       `json:"date"`
	ExternalTxID   string          `json:"external_tx_id,omitempty"`
	PayoutDetails  string          `json:"payout_details,omitempty"`
}

// TransactionType constants
const (
	TxBuy      = "BUY"
	TxSell     = "SELL"
	TxDeposit  = "DEPOSIT"
	TxWithdraw = "WITHDRAW"
)

// TransactionStatus constants. PENDING transitions to APPROVED or REJECTED
// exactly once; trades are created directly in APPROVED and never move.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// IsPending reports whether the transaction still awaits an admin decision.
func (t *Transaction) IsPending() bool {
	return t.Status == StatusPending
}

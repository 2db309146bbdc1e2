package dto

import (
	"github.com/shopspring/decimal"
)

// TradeRequest represents a buy/sell order against the catalog
type TradeRequest struct {
	AssetType string          `json:"asset_type" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	Direction string          `json:"direction" validate:"required"` // "BUY" or "SELL"
}

// DepositRequest represents a fiat deposit request
type DepositRequest struct {
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Reference string          `json:"reference" validate:"required"` // external payment reference for admin verification
}

// WithdrawRequest represents a fiat withdrawal request
type WithdrawRequest struct {
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	PayoutDetails string          `json:"payout_details" validate:"required"`
}

// TradeResponse carries the post-trade user state and the ledger record
type TradeResponse struct {
	User        *UserOutput `json:"user"`
	Transaction interface{} `json:"transaction"`
}

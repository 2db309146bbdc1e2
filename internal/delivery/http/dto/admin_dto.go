package dto

import (
	"github.com/shopspring/decimal"
)

// DecisionRequest represents an admin approval or rejection
type DecisionRequest struct {
	Decision string `json:"decision" validate:"required"` // "APPROVED" or "REJECTED"
}

// AdjustBalanceRequest represents a direct admin balance change
type AdjustBalanceRequest struct {
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Direction string          `json:"direction" validate:"required"` // "ADD" or "SUBTRACT"
}

// UpdateUserRequest represents admin edits to a user's profile fields.
// Balance is deliberately absent; balance changes go through AdjustBalance so
// they are ledger-recorded.
type UpdateUserRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// GatewayInput represents an admin create/update of a payment gateway
type GatewayInput struct {
	Name          string          `json:"name" validate:"required"`
	Active        bool            `json:"active"`
	BankName      string          `json:"bank_name"`
	AccountNumber string          `json:"account_number"`
	Link          string          `json:"link"`
	Currency      string          `json:"currency"`
	MinDeposit    decimal.Decimal `json:"min_deposit"`
	MaxDeposit    decimal.Decimal `json:"max_deposit"`
	FeePercent    decimal.Decimal `json:"fee_percent"`
	MerchantName  string          `json:"merchant_name"`
	LogoURL       string          `json:"logo_url"`
}

// ToggleGatewayRequest flips a gateway's active flag
type ToggleGatewayRequest struct {
	Active bool `json:"active"`
}

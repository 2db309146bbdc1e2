package dto

import (
	"github.com/shopspring/decimal"

	"elitex/internal/domain"
)

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignupRequest represents the membership application payload
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

// AuthResponse carries the session token and the logged-in user
type AuthResponse struct {
	Token string      `json:"token"`
	User  *UserOutput `json:"user"`
}

// UserOutput represents user data in API responses
type UserOutput struct {
	ID        string                     `json:"id"`
	Name      string                     `json:"name"`
	Email     string                     `json:"email"`
	Address   string                     `json:"address,omitempty"`
	Phone     string                     `json:"phone,omitempty"`
	Role      string                     `json:"role"`
	Balance   decimal.Decimal            `json:"balance"`
	Portfolio map[string]decimal.Decimal `json:"portfolio"`
	NetWorth  decimal.Decimal            `json:"net_worth"`
}

// NewUserOutput converts a domain user plus its computed net worth into the
// API shape.
func NewUserOutput(user *domain.User, netWorth decimal.Decimal) *UserOutput {
	portfolio := make(map[string]decimal.Decimal, len(user.Portfolio))
	for t, q := range user.Portfolio {
		portfolio[string(t)] = q
	}
	return &UserOutput{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Address:   user.Address,
		Phone:     user.Phone,
		Role:      user.Role,
		Balance:   user.Balance,
		Portfolio: portfolio,
		NetWorth:  netWorth,
	}
}

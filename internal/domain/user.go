package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents an account holder
type User struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Address      string          `json:"address,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	PasswordHash string          `json:"-"` // Never expose password hash in JSON
	Role         string          `json:"role"`
	Balance      decimal.Decimal `json:"balance"`
	Portfolio    Portfolio       `json:"portfolio"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// UserRole constants
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Portfolio maps an asset type to the quantity held. A missing key means
// zero holdings.
type Portfolio map[AssetType]decimal.Decimal

// NewPortfolio returns a portfolio with a zero entry for every catalog asset.
func NewPortfolio() Portfolio {
	p := make(Portfolio)
	for _, a := range DefaultCatalog() {
		p[a.Type] = decimal.Zero
	}
	return p
}

// Holding returns the quantity held for the given asset type, zero when the
// type has no entry.
func (p Portfolio) Holding(t AssetType) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	return p[t]
}

// Clone returns an independent copy of the user, including the portfolio map.
// Ledger operations mutate copies so a failed validation never leaves a
// half-updated caller snapshot behind.
func (u *User) Clone() *User {
	c := *u
	c.Portfolio = make(Portfolio, len(u.Portfolio))
	for t, q := range u.Portfolio {
		c.Portfolio[t] = q
	}
	return &c
}

package domain

import (
	"github.com/shopspring/decimal"
)

// PaymentGateway describes a deposit/withdrawal rail. Gateways are keyed by
// name, managed by admins only, and filtered to Active before users see them.
type PaymentGateway struct {
	Name          string          `json:"name"`
	Active        bool            `json:"active"`
	APIKey        string          `json:"api_key"`
	BankName      string          `json:"bank_name,omitempty"`
	AccountNumber string          `json:"account_number,omitempty"`
	Link          string          `json:"link,omitempty"`
	Currency      string          `json:"currency,omitempty"`
	MinDeposit    decimal.Decimal `json:"min_deposit"`
	MaxDeposit    decimal.Decimal `json:"max_deposit"`
	FeePercent    decimal.Decimal `json:"fee_percent"`
	MerchantName  string          `json:"merchant_name,omitempty"`
	LogoURL       string          `json:"logo_url,omitempty"`
}

// ActiveGateways filters a gateway list down to the entries users may see.
func ActiveGateways(gateways []*PaymentGateway) []*PaymentGateway {
	out := make([]*PaymentGateway, 0, len(gateways))
	for _, g := range gateways {
		if g.Active {
			out = append(out, g)
		}
	}
	return out
}

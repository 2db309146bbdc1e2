package domain

import (
	"github.com/shopspring/decimal"
)

// AssetType identifies an entry in the fixed trading catalog
type AssetType string

// Catalog asset types
const (
	AssetBitcoin      AssetType = "BITCOIN"
	AssetAntimatter   AssetType = "ANTIMATTER"
	AssetAICompute    AssetType = "AI_COMPUTE"
	AssetNeuralLink   AssetType = "NEURAL_LINK"
	AssetFusionEnergy AssetType = "FUSION_ENERGY"
	AssetDiamond      AssetType = "DIAMOND"
	AssetGold         AssetType = "GOLD"
)

// Asset represents a catalog entry. Membership is static; only Price and
// Change24h mutate, driven by the fluctuation scheduler.
type Asset struct {
	Type      AssetType       `json:"type"`
	Name      string          `json:"name"`
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Change24h decimal.Decimal `json:"change_24h"`
	Color     string          `json:"color"`
}

// DefaultCatalog returns the full asset catalog with launch prices.
func DefaultCatalog() []Asset {
	return []Asset{
		{Type: AssetBitcoin, Name: "Bitcoin", Symbol: "BTC", Price: decimal.RequireFromString("94250.50"), Change24h: decimal.RequireFromString("2.1"), Color: "#F7931A"},
		{Type: AssetAntimatter, Name: "Anti-Matter Particles", Symbol: "AM", Price: decimal.RequireFromString("625000000"), Change24h: decimal.RequireFromString("0.05"), Color: "#D8B4FE"},
		{Type: AssetAICompute, Name: "AGI Compute Tokens", Symbol: "AIX", Price: decimal.RequireFromString("125400.00"), Change24h: decimal.RequireFromString("8.4"), Color: "#22D3EE"},
		{Type: AssetNeuralLink, Name: "Neural Link Arrays", Symbol: "NLA", Price: decimal.RequireFromString("45200.00"), Change24h: decimal.RequireFromString("-1.2"), Color: "#FB7185"},
		{Type: AssetFusionEnergy, Name: "Fusion Energy Credits", Symbol: "FEC", Price: decimal.RequireFromString("8500.00"), Change24h: decimal.RequireFromString("4.7"), Color: "#34D399"},
		{Type: AssetDiamond, Name: "Blue Diamond", Symbol: "DMD", Price: decimal.RequireFromString("15500.00"), Change24h: decimal.RequireFromString("-0.2"), Color: "#60A5FA"},
		{Type: AssetGold, Name: "24K Gold", Symbol: "XAU", Price: decimal.RequireFromString("2750.80"), Change24h: decimal.RequireFromString("0.4"), Color: "#FACC15"},
	}
}

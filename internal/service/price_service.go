package service

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/shopspring/decimal"

	"elitex/internal/domain"
)

// Per-tick volatility of the simulated market. High-beta assets move up to
// 1.5% per tick, the rest up to 0.5%.
const (
	volatilityHigh = 0.015
	volatilityLow  = 0.005
)

// PriceService holds the in-memory asset catalog and applies a bounded random
// walk to prices on every tick. Catalog membership never changes; only Price
// and Change24h move. Reads and the scheduler tick run on different
// goroutines, so access is guarded by a RWMutex.
type PriceService struct {
	mu     sync.RWMutex
	assets []domain.Asset
	rng    *rand.Rand
}

// NewPriceService creates a PriceService seeded with the default catalog.
func NewPriceService(seed int64) *PriceService {
	return &PriceService{
		assets: domain.DefaultCatalog(),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Snapshot returns a copy of the current catalog.
func (s *PriceService) Snapshot() []domain.Asset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Asset, len(s.assets))
	copy(out, s.assets)
	return out
}

// Get returns the current catalog entry for the given asset type.
func (s *PriceService) Get(t domain.AssetType) (domain.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.assets {
		if a.Type == t {
			return a, nil
		}
	}
	return domain.Asset{}, fmt.Errorf("%w: unknown asset type %q", domain.ErrValidation, t)
}

// Fluctuate applies one random-walk tick: each price moves by a uniform
// factor within its volatility band and is rounded to 2 decimal places;
// change24h drifts by up to ±0.2.
func (s *PriceService) Fluctuate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.assets {
		a := &s.assets[i]
		vol := volatilityLow
		switch a.Type {
		case domain.AssetBitcoin, domain.AssetAICompute, domain.AssetFusionEnergy:
			vol = volatilityHigh
		}
		factor := decimal.NewFromFloat(1 + (s.rng.Float64()*2-1)*vol)
		a.Price = a.Price.Mul(factor).Round(2)
		drift := decimal.NewFromFloat(s.rng.Float64()*0.4 - 0.2)
		a.Change24h = a.Change24h.Add(drift).Round(2)
	}
}

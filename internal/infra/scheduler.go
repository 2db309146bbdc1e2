package infra

import (
	"log"

	"github.com/robfig/cron/v3"

	"elitex/internal/service"
)

// Scheduler drives the simulated market: every 15 seconds it applies one
// price fluctuation tick to the catalog.
type Scheduler struct {
	cron         *cron.Cron
	priceService *service.PriceService
}

// NewScheduler creates a new scheduler
func NewScheduler(priceService *service.PriceService) *Scheduler {
	return &Scheduler{
		cron:         cron.New(cron.WithSeconds()),
		priceService: priceService,
	}
}

// Start registers the fluctuation tick and starts the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("*/15 * * * * *", func() {
		s.priceService.Fluctuate()
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("[OK] Price scheduler started (tick every 15s)")
	return nil
}

// Stop stops the scheduler gracefully
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[OK] Price scheduler stopped")
}

// RunNow applies one fluctuation tick immediately.
func (s *Scheduler) RunNow() {
	s.priceService.Fluctuate()
}

package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	appmarketplace "github.com/agrilink/backend/internal/application/marketplace"
	"github.com/agrilink/backend/internal/infrastructure/config"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// OfferExpiryScheduler runs the offer expiry sweep on a cron cadence.
// Overlapping sweeps are skipped: if a sweep is still running when the next
// tick fires, the tick is dropped.
type OfferExpiryScheduler struct {
	cron    *cron.Cron
	service *appmarketplace.OfferExpiryService
	cfg     config.OfferExpiryConfig
	logger  *zap.Logger

	mu      sync.Mutex
	running bool
}

// NewOfferExpiryScheduler creates a new OfferExpiryScheduler
func NewOfferExpiryScheduler(service *appmarketplace.OfferExpiryService, cfg config.OfferExpiryConfig, logger *zap.Logger) *OfferExpiryScheduler {
	return &OfferExpiryScheduler{
		cron:    cron.New(),
		service: service,
		cfg:     cfg,
		logger:  logger.Named("offer_expiry"),
	}
}

// Start registers the sweep job and starts the scheduler
func (s *OfferExpiryScheduler) Start() error {
	if !s.cfg.Enabled {
		s.logger.Info("Offer expiry scheduler disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runSweep); err != nil {
		return fmt.Errorf("failed to register offer expiry job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Offer expiry scheduler started",
		zap.String("schedule", s.cfg.CronSchedule),
		zap.Duration("pending_ttl", s.cfg.PendingTTL),
		zap.Int("batch_size", s.cfg.BatchSize),
	)
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish
func (s *OfferExpiryScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Offer expiry scheduler stopped")
}

// RunOnce triggers a single sweep outside the cron cadence
func (s *OfferExpiryScheduler) RunOnce(ctx context.Context) (*appmarketplace.ExpiryStats, error) {
	return s.service.ExpireStaleOffers(ctx)
}

func (s *OfferExpiryScheduler) runSweep() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Warn("Previous expiry sweep still running, skipping tick")
		return
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	timeout := s.cfg.SweepTimeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if _, err := s.service.ExpireStaleOffers(ctx); err != nil {
		s.logger.Error("Offer expiry sweep failed", zap.Error(err))
	}
}

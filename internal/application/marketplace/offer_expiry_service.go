package marketplace

import (
	"context"
	"time"

	"github.com/agrilink/backend/internal/domain/marketplace"
	"github.com/agrilink/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OfferExpiryService moves stale PENDING offers to EXPIRED. It is driven by
// the scheduler on a cron cadence and acts as a system actor: no buyer or
// operator is involved.
type OfferExpiryService struct {
	offerRepo      marketplace.OfferRepository
	eventPublisher shared.EventPublisher
	pendingTTL     time.Duration
	batchSize      int
	logger         *zap.Logger
}

// NewOfferExpiryService creates a new OfferExpiryService
func NewOfferExpiryService(offerRepo marketplace.OfferRepository, pendingTTL time.Duration, batchSize int, logger *zap.Logger) *OfferExpiryService {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &OfferExpiryService{
		offerRepo:  offerRepo,
		pendingTTL: pendingTTL,
		batchSize:  batchSize,
		logger:     logger,
	}
}

// SetEventPublisher sets the event publisher for notification fan-out
func (s *OfferExpiryService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// ExpiryStats contains statistics about one expiry sweep
type ExpiryStats struct {
	Found       int       `json:"found"`
	Expired     int       `json:"expired"`
	Skipped     int       `json:"skipped"`
	ProcessedAt time.Time `json:"processed_at"`
}

// ExpireStaleOffers finds PENDING offers older than the configured TTL and
// expires them one by one. An offer that was concurrently accepted, rejected
// or withdrawn loses its version race and is skipped, not failed.
func (s *OfferExpiryService) ExpireStaleOffers(ctx context.Context) (*ExpiryStats, error) {
	stats := &ExpiryStats{ProcessedAt: time.Now()}
	cutoff := time.Now().Add(-s.pendingTTL)

	stale, err := s.offerRepo.FindStalePending(ctx, cutoff, s.batchSize)
	if err != nil {
		s.logger.Error("Failed to find stale pending offers", zap.Error(err))
		return nil, err
	}

	stats.Found = len(stale)
	if stats.Found == 0 {
		s.logger.Debug("No stale pending offers found")
		return stats, nil
	}

	for i := range stale {
		offer := &stale[i]
		if err := s.expireOffer(ctx, offer); err != nil {
			s.logger.Warn("Skipping offer that could not be expired",
				zap.String("offer_id", offer.ID.String()),
				zap.String("job_id", offer.JobID.String()),
				zap.Error(err),
			)
			stats.Skipped++
			continue
		}
		stats.Expired++
	}

	s.logger.Info("Completed offer expiry sweep",
		zap.Int("found", stats.Found),
		zap.Int("expired", stats.Expired),
		zap.Int("skipped", stats.Skipped),
	)

	return stats, nil
}

// expireOffer expires a single offer and publishes its event
func (s *OfferExpiryService) expireOffer(ctx context.Context, offer *marketplace.Offer) error {
	if err := offer.Expire(); err != nil {
		return err
	}
	if err := s.offerRepo.SaveWithLock(ctx, offer); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		events := offer.GetDomainEvents()
		if len(events) > 0 {
			_ = s.eventPublisher.Publish(ctx, events...)
		}
	}
	offer.ClearDomainEvents()

	return nil
}

package scheduler

import (
	"testing"
	"time"

	appmarketplace "github.com/agrilink/backend/internal/application/marketplace"
	"github.com/agrilink/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestScheduler(cfg config.OfferExpiryConfig) *OfferExpiryScheduler {
	service := appmarketplace.NewOfferExpiryService(nil, 72*time.Hour, 100, zap.NewNop())
	return NewOfferExpiryScheduler(service, cfg, zap.NewNop())
}

func TestOfferExpiryScheduler_Start(t *testing.T) {
	t.Run("disabled scheduler is a no-op", func(t *testing.T) {
		s := newTestScheduler(config.OfferExpiryConfig{Enabled: false})
		assert.NoError(t, s.Start())
	})

	t.Run("rejects invalid cron schedule", func(t *testing.T) {
		s := newTestScheduler(config.OfferExpiryConfig{
			Enabled:      true,
			CronSchedule: "not a schedule",
		})
		assert.Error(t, s.Start())
	})

	t.Run("starts and stops with valid schedule", func(t *testing.T) {
		s := newTestScheduler(config.OfferExpiryConfig{
			Enabled:      true,
			CronSchedule: "*/5 * * * *",
			PendingTTL:   72 * time.Hour,
			BatchSize:    100,
			SweepTimeout: time.Minute,
		})
		assert.NoError(t, s.Start())
		s.Stop()
	})
}

package marketplace

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agrilink/backend/internal/domain/marketplace"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOfferExpiryService_ExpireStaleOffers(t *testing.T) {
	ctx := context.Background()

	t.Run("expires stale pending offers", func(t *testing.T) {
		offerRepo := new(MockOfferRepository)
		svc := NewOfferExpiryService(offerRepo, 72*time.Hour, 100, zap.NewNop())

		stale := []marketplace.Offer{
			*newPendingOffer(t, uuid.New(), uuid.New()),
			*newPendingOffer(t, uuid.New(), uuid.New()),
		}

		offerRepo.On("FindStalePending", ctx, mock.Anything, 100).Return(stale, nil)
		offerRepo.On("SaveWithLock", ctx, mock.Anything).Return(nil)

		stats, err := svc.ExpireStaleOffers(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Found)
		assert.Equal(t, 2, stats.Expired)
		assert.Equal(t, 0, stats.Skipped)
		assert.Equal(t, marketplace.OfferStatusExpired, stale[0].Status)
		assert.Equal(t, marketplace.OfferStatusExpired, stale[1].Status)
	})

	t.Run("skips offers that lose the version race", func(t *testing.T) {
		offerRepo := new(MockOfferRepository)
		svc := NewOfferExpiryService(offerRepo, 72*time.Hour, 100, zap.NewNop())

		winner := newPendingOffer(t, uuid.New(), uuid.New())
		racer := newPendingOffer(t, uuid.New(), uuid.New())
		stale := []marketplace.Offer{*winner, *racer}

		offerRepo.On("FindStalePending", ctx, mock.Anything, 100).Return(stale, nil)
		offerRepo.On("SaveWithLock", ctx, &stale[0]).Return(nil)
		offerRepo.On("SaveWithLock", ctx, &stale[1]).Return(errors.New("concurrent modification"))

		stats, err := svc.ExpireStaleOffers(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Found)
		assert.Equal(t, 1, stats.Expired)
		assert.Equal(t, 1, stats.Skipped)
	})

	t.Run("no stale offers is a quiet no-op", func(t *testing.T) {
		offerRepo := new(MockOfferRepository)
		svc := NewOfferExpiryService(offerRepo, 72*time.Hour, 100, zap.NewNop())

		offerRepo.On("FindStalePending", ctx, mock.Anything, 100).Return([]marketplace.Offer{}, nil)

		stats, err := svc.ExpireStaleOffers(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.Found)
		offerRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}

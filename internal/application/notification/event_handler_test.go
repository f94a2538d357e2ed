package notification

import (
	"context"
	"testing"
	"time"

	"github.com/agrilink/backend/internal/domain/marketplace"
	"github.com/agrilink/backend/internal/domain/notification"
	"github.com/agrilink/backend/internal/domain/shared"
	"github.com/agrilink/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEventFixtures(t *testing.T) (*marketplace.Job, *marketplace.Offer) {
	t.Helper()
	buyerOrg := uuid.New()
	operatorOrg := uuid.New()

	from := time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)
	job, err := marketplace.NewJob(buyerOrg, marketplace.ServiceTypeSpray, "VINEYARD",
		marketplace.TerrainHilly, from, from.AddDate(0, 0, 2), decimal.NewFromInt(12))
	require.NoError(t, err)
	job.ClearDomainEvents()

	amount := valueobject.NewMoneyEURFromFloat(480)
	offer, err := marketplace.NewOffer(job.ID, operatorOrg, amount, from, from.AddDate(0, 0, 1), "")
	require.NoError(t, err)
	offer.ClearDomainEvents()

	return job, offer
}

func newHandlerFixture() (*EventHandler, *MockNotificationRepository, *MockJobRepository) {
	repo := &MockNotificationRepository{}
	jobRepo := &MockJobRepository{}
	return NewEventHandler(repo, jobRepo, zap.NewNop()), repo, jobRepo
}

func TestEventHandlerEventTypes(t *testing.T) {
	h, _, _ := newHandlerFixture()
	types := h.EventTypes()
	assert.Contains(t, types, marketplace.EventTypeOfferSubmitted)
	assert.Contains(t, types, marketplace.EventTypeJobCancelled)
	assert.Len(t, types, 8)
}

func TestEventHandlerOfferSubmitted(t *testing.T) {
	ctx := context.Background()

	t.Run("notifies the job's buyer", func(t *testing.T) {
		h, repo, jobRepo := newHandlerFixture()
		job, offer := newEventFixtures(t)

		jobRepo.On("FindByID", ctx, job.ID).Return(job, nil)

		var saved *notification.Notification
		repo.On("Save", ctx, mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*notification.Notification)
		}).Return(nil)

		err := h.Handle(ctx, marketplace.NewOfferSubmittedEvent(offer))
		require.NoError(t, err)

		require.NotNil(t, saved)
		assert.Equal(t, job.BuyerOrgID, saved.RecipientOrgID)
		assert.Equal(t, notification.KindOfferSubmitted, saved.Kind)
		require.NotNil(t, saved.OfferID)
		assert.Equal(t, offer.ID, *saved.OfferID)
	})

	t.Run("reports an error when the job cannot be resolved", func(t *testing.T) {
		h, repo, jobRepo := newHandlerFixture()
		_, offer := newEventFixtures(t)

		jobRepo.On("FindByID", ctx, offer.JobID).Return(nil, shared.ErrNotFound)

		err := h.Handle(ctx, marketplace.NewOfferSubmittedEvent(offer))
		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestEventHandlerOfferOutcomes(t *testing.T) {
	ctx := context.Background()

	t.Run("accepted offer notifies the operator", func(t *testing.T) {
		h, repo, _ := newHandlerFixture()
		_, offer := newEventFixtures(t)
		require.NoError(t, offer.Accept())

		var saved *notification.Notification
		repo.On("Save", ctx, mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*notification.Notification)
		}).Return(nil)

		err := h.Handle(ctx, marketplace.NewOfferAcceptedEvent(offer))
		require.NoError(t, err)
		assert.Equal(t, offer.OperatorOrgID, saved.RecipientOrgID)
		assert.Equal(t, notification.KindOfferAccepted, saved.Kind)
	})

	t.Run("rejection reason lands in the body", func(t *testing.T) {
		h, repo, _ := newHandlerFixture()
		_, offer := newEventFixtures(t)
		require.NoError(t, offer.Reject("another offer was accepted"))

		var saved *notification.Notification
		repo.On("Save", ctx, mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*notification.Notification)
		}).Return(nil)

		err := h.Handle(ctx, marketplace.NewOfferRejectedEvent(offer))
		require.NoError(t, err)
		assert.Equal(t, offer.OperatorOrgID, saved.RecipientOrgID)
		assert.Contains(t, saved.Body, "another offer was accepted")
	})

	t.Run("expired offer notifies the operator", func(t *testing.T) {
		h, repo, _ := newHandlerFixture()
		_, offer := newEventFixtures(t)
		require.NoError(t, offer.Expire())

		var saved *notification.Notification
		repo.On("Save", ctx, mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*notification.Notification)
		}).Return(nil)

		err := h.Handle(ctx, marketplace.NewOfferExpiredEvent(offer))
		require.NoError(t, err)
		assert.Equal(t, notification.KindOfferExpired, saved.Kind)
	})
}

func TestEventHandlerJobLifecycle(t *testing.T) {
	ctx := context.Background()

	assignedJob := func(t *testing.T) (*marketplace.Job, *marketplace.Offer) {
		t.Helper()
		job, offer := newEventFixtures(t)
		require.NoError(t, job.Assign(offer.ID, offer.OperatorOrgID))
		job.ClearDomainEvents()
		return job, offer
	}

	t.Run("started job notifies the buyer", func(t *testing.T) {
		h, repo, _ := newHandlerFixture()
		job, _ := assignedJob(t)
		require.NoError(t, job.Start())

		var saved *notification.Notification
		repo.On("Save", ctx, mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*notification.Notification)
		}).Return(nil)

		err := h.Handle(ctx, marketplace.NewJobStartedEvent(job))
		require.NoError(t, err)
		assert.Equal(t, job.BuyerOrgID, saved.RecipientOrgID)
		assert.Equal(t, notification.KindJobStarted, saved.Kind)
	})

	t.Run("completion notifies the other party", func(t *testing.T) {
		h, repo, _ := newHandlerFixture()
		job, offer := assignedJob(t)
		require.NoError(t, job.Start())
		require.NoError(t, job.Complete(uuid.New(), marketplace.CompleterRoleBuyer))

		var saved *notification.Notification
		repo.On("Save", ctx, mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*notification.Notification)
		}).Return(nil)

		err := h.Handle(ctx, marketplace.NewJobCompletedEvent(job))
		require.NoError(t, err)
		assert.Equal(t, offer.OperatorOrgID, saved.RecipientOrgID)
	})

	t.Run("cancelling an assigned job notifies the operator", func(t *testing.T) {
		h, repo, _ := newHandlerFixture()
		job, offer := assignedJob(t)
		require.NoError(t, job.Cancel("weather window closed"))

		var saved *notification.Notification
		repo.On("Save", ctx, mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*notification.Notification)
		}).Return(nil)

		err := h.Handle(ctx, marketplace.NewJobCancelledEvent(job, true))
		require.NoError(t, err)
		assert.Equal(t, offer.OperatorOrgID, saved.RecipientOrgID)
		assert.Contains(t, saved.Body, "weather window closed")
	})

	t.Run("cancelling an open job writes nothing", func(t *testing.T) {
		h, repo, _ := newHandlerFixture()
		job, _ := newEventFixtures(t)
		require.NoError(t, job.Cancel("changed plans"))

		err := h.Handle(ctx, marketplace.NewJobCancelledEvent(job, false))
		require.NoError(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

package notification

import (
	"context"
	"fmt"

	"github.com/agrilink/backend/internal/domain/marketplace"
	"github.com/agrilink/backend/internal/domain/notification"
	"github.com/agrilink/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventHandler subscribes to marketplace lifecycle events and writes in-app
// notification records for the affected organizations. Notification writes
// are best-effort: a failure here never unwinds the transition that emitted
// the event.
type EventHandler struct {
	repo    notification.Repository
	jobRepo marketplace.JobRepository
	logger  *zap.Logger
}

// NewEventHandler creates a new notification event handler
func NewEventHandler(
	repo notification.Repository,
	jobRepo marketplace.JobRepository,
	logger *zap.Logger,
) *EventHandler {
	return &EventHandler{repo: repo, jobRepo: jobRepo, logger: logger}
}

// EventTypes returns the marketplace events this handler reacts to
func (h *EventHandler) EventTypes() []string {
	return []string{
		marketplace.EventTypeOfferSubmitted,
		marketplace.EventTypeOfferAccepted,
		marketplace.EventTypeOfferRejected,
		marketplace.EventTypeOfferWithdrawn,
		marketplace.EventTypeOfferExpired,
		marketplace.EventTypeJobStarted,
		marketplace.EventTypeJobCompleted,
		marketplace.EventTypeJobCancelled,
	}
}

// Handle converts a lifecycle event into notification records
func (h *EventHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *marketplace.OfferSubmittedEvent:
		return h.notifyBuyer(ctx, e.JobID, notification.KindOfferSubmitted,
			"New offer received",
			fmt.Sprintf("An operator offered %s for your job.", e.Amount.StringFixed(2)),
			&e.JobID, &e.OfferID)

	case *marketplace.OfferAcceptedEvent:
		return h.notify(ctx, e.OperatorOrgID, notification.KindOfferAccepted,
			"Offer accepted",
			"Your offer was accepted. The job is now assigned to you.",
			&e.JobID, &e.OfferID)

	case *marketplace.OfferRejectedEvent:
		body := "Your offer was rejected."
		if e.Reason != "" {
			body = fmt.Sprintf("Your offer was rejected: %s.", e.Reason)
		}
		return h.notify(ctx, e.OperatorOrgID, notification.KindOfferRejected,
			"Offer rejected", body, &e.JobID, &e.OfferID)

	case *marketplace.OfferWithdrawnEvent:
		return h.notifyBuyer(ctx, e.JobID, notification.KindOfferWithdrawn,
			"Offer withdrawn",
			"An operator withdrew their offer on your job.",
			&e.JobID, &e.OfferID)

	case *marketplace.OfferExpiredEvent:
		return h.notify(ctx, e.OperatorOrgID, notification.KindOfferExpired,
			"Offer expired",
			"Your pending offer expired without a response.",
			&e.JobID, &e.OfferID)

	case *marketplace.JobStartedEvent:
		return h.notify(ctx, e.BuyerOrgID, notification.KindJobStarted,
			"Work started",
			"The operator marked your job as in progress.",
			&e.JobID, nil)

	case *marketplace.JobCompletedEvent:
		// Notify the party that did not perform the completion
		recipient := e.BuyerOrgID
		if e.CompletedByRole == marketplace.CompleterRoleBuyer {
			recipient = e.OperatorOrgID
		}
		return h.notify(ctx, recipient, notification.KindJobCompleted,
			"Job completed",
			"The job has been marked as completed.",
			&e.JobID, nil)

	case *marketplace.JobCancelledEvent:
		if !e.WasAssigned || e.OperatorOrgID == nil {
			return nil
		}
		body := "A job assigned to you was cancelled by the buyer."
		if e.Reason != "" {
			body = fmt.Sprintf("A job assigned to you was cancelled by the buyer: %s.", e.Reason)
		}
		return h.notify(ctx, *e.OperatorOrgID, notification.KindJobCancelled,
			"Job cancelled", body, &e.JobID, e.OfferID)

	default:
		return nil
	}
}

// notifyBuyer resolves the job's buyer organization before writing. Offer
// events only carry the job reference, not the buyer.
func (h *EventHandler) notifyBuyer(ctx context.Context, jobID uuid.UUID, kind notification.Kind, subject, body string, refJobID, refOfferID *uuid.UUID) error {
	job, err := h.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		h.logger.Warn("Cannot resolve job for notification",
			zap.String("job_id", jobID.String()), zap.Error(err))
		return err
	}
	return h.notify(ctx, job.BuyerOrgID, kind, subject, body, refJobID, refOfferID)
}

func (h *EventHandler) notify(ctx context.Context, recipientOrgID uuid.UUID, kind notification.Kind, subject, body string, jobID, offerID *uuid.UUID) error {
	n, err := notification.New(recipientOrgID, kind, subject, body)
	if err != nil {
		h.logger.Error("Failed to build notification", zap.Error(err))
		return err
	}
	if jobID != nil {
		n.WithJob(*jobID)
	}
	if offerID != nil {
		n.WithOffer(*offerID)
	}

	if err := h.repo.Save(ctx, n); err != nil {
		h.logger.Error("Failed to save notification",
			zap.String("recipient_org_id", recipientOrgID.String()),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return err
	}
	return nil
}

var _ shared.EventHandler = (*EventHandler)(nil)

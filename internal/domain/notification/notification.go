package notification

import (
	"time"

	"github.com/agrilink/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Kind classifies what a notification is about
type Kind string

const (
	KindOfferSubmitted Kind = "OFFER_SUBMITTED"
	KindOfferAccepted  Kind = "OFFER_ACCEPTED"
	KindOfferRejected  Kind = "OFFER_REJECTED"
	KindOfferWithdrawn Kind = "OFFER_WITHDRAWN"
	KindOfferExpired   Kind = "OFFER_EXPIRED"
	KindJobStarted     Kind = "JOB_STARTED"
	KindJobCompleted   Kind = "JOB_COMPLETED"
	KindJobCancelled   Kind = "JOB_CANCELLED"
)

// IsValid checks if the value is a valid Kind
func (k Kind) IsValid() bool {
	switch k {
	case KindOfferSubmitted, KindOfferAccepted, KindOfferRejected, KindOfferWithdrawn,
		KindOfferExpired, KindJobStarted, KindJobCompleted, KindJobCancelled:
		return true
	}
	return false
}

// Notification is an in-app message delivered to an organization after a
// lifecycle transition. Delivery is best-effort: writes happen outside the
// transition's transaction and a failure never rolls the transition back.
type Notification struct {
	shared.BaseEntity
	RecipientOrgID uuid.UUID
	Kind           Kind
	Subject        string
	Body           string
	JobID          *uuid.UUID
	OfferID        *uuid.UUID
	ReadAt         *time.Time
}

// New creates a notification for a recipient organization
func New(recipientOrgID uuid.UUID, kind Kind, subject, body string) (*Notification, error) {
	if recipientOrgID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Recipient organization ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown notification kind")
	}
	if subject == "" {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Subject cannot be empty")
	}

	return &Notification{
		BaseEntity:     shared.NewBaseEntity(),
		RecipientOrgID: recipientOrgID,
		Kind:           kind,
		Subject:        subject,
		Body:           body,
	}, nil
}

// WithJob links the notification to a job
func (n *Notification) WithJob(jobID uuid.UUID) *Notification {
	if jobID != uuid.Nil {
		n.JobID = &jobID
	}
	return n
}

// WithOffer links the notification to an offer
func (n *Notification) WithOffer(offerID uuid.UUID) *Notification {
	if offerID != uuid.Nil {
		n.OfferID = &offerID
	}
	return n
}

// MarkRead marks the notification as read. Reading twice is harmless.
func (n *Notification) MarkRead() {
	if n.ReadAt != nil {
		return
	}
	now := time.Now()
	n.ReadAt = &now
	n.UpdatedAt = now
}

// IsRead returns true if the notification has been read
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}

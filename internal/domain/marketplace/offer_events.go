package marketplace

import (
	"github.com/agrilink/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOffer = "Offer"

// Event type constants
const (
	EventTypeOfferSubmitted = "OfferSubmitted"
	EventTypeOfferAccepted  = "OfferAccepted"
	EventTypeOfferRejected  = "OfferRejected"
	EventTypeOfferWithdrawn = "OfferWithdrawn"
	EventTypeOfferExpired   = "OfferExpired"
)

// OfferSubmittedEvent is raised when an operator submits a new offer
type OfferSubmittedEvent struct {
	shared.BaseDomainEvent
	OfferID       uuid.UUID       `json:"offer_id"`
	JobID         uuid.UUID       `json:"job_id"`
	OperatorOrgID uuid.UUID       `json:"operator_org_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// NewOfferSubmittedEvent creates a new OfferSubmittedEvent
func NewOfferSubmittedEvent(offer *Offer) *OfferSubmittedEvent {
	return &OfferSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOfferSubmitted, AggregateTypeOffer, offer.ID),
		OfferID:         offer.ID,
		JobID:           offer.JobID,
		OperatorOrgID:   offer.OperatorOrgID,
		Amount:          offer.Amount,
	}
}

// EventType returns the event type name
func (e *OfferSubmittedEvent) EventType() string {
	return EventTypeOfferSubmitted
}

// OfferAcceptedEvent is raised when the buyer accepts an offer
type OfferAcceptedEvent struct {
	shared.BaseDomainEvent
	OfferID       uuid.UUID       `json:"offer_id"`
	JobID         uuid.UUID       `json:"job_id"`
	OperatorOrgID uuid.UUID       `json:"operator_org_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// NewOfferAcceptedEvent creates a new OfferAcceptedEvent
func NewOfferAcceptedEvent(offer *Offer) *OfferAcceptedEvent {
	return &OfferAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOfferAccepted, AggregateTypeOffer, offer.ID),
		OfferID:         offer.ID,
		JobID:           offer.JobID,
		OperatorOrgID:   offer.OperatorOrgID,
		Amount:          offer.Amount,
	}
}

// EventType returns the event type name
func (e *OfferAcceptedEvent) EventType() string {
	return EventTypeOfferAccepted
}

// OfferRejectedEvent is raised when an offer is rejected, either directly by
// the buyer or as part of an accept/cancel cascade
type OfferRejectedEvent struct {
	shared.BaseDomainEvent
	OfferID       uuid.UUID `json:"offer_id"`
	JobID         uuid.UUID `json:"job_id"`
	OperatorOrgID uuid.UUID `json:"operator_org_id"`
	Reason        string    `json:"reason,omitempty"`
}

// NewOfferRejectedEvent creates a new OfferRejectedEvent
func NewOfferRejectedEvent(offer *Offer) *OfferRejectedEvent {
	return &OfferRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOfferRejected, AggregateTypeOffer, offer.ID),
		OfferID:         offer.ID,
		JobID:           offer.JobID,
		OperatorOrgID:   offer.OperatorOrgID,
		Reason:          offer.RejectReason,
	}
}

// EventType returns the event type name
func (e *OfferRejectedEvent) EventType() string {
	return EventTypeOfferRejected
}

// OfferWithdrawnEvent is raised when the operator withdraws an offer
type OfferWithdrawnEvent struct {
	shared.BaseDomainEvent
	OfferID       uuid.UUID `json:"offer_id"`
	JobID         uuid.UUID `json:"job_id"`
	OperatorOrgID uuid.UUID `json:"operator_org_id"`
}

// NewOfferWithdrawnEvent creates a new OfferWithdrawnEvent
func NewOfferWithdrawnEvent(offer *Offer) *OfferWithdrawnEvent {
	return &OfferWithdrawnEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOfferWithdrawn, AggregateTypeOffer, offer.ID),
		OfferID:         offer.ID,
		JobID:           offer.JobID,
		OperatorOrgID:   offer.OperatorOrgID,
	}
}

// EventType returns the event type name
func (e *OfferWithdrawnEvent) EventType() string {
	return EventTypeOfferWithdrawn
}

// OfferExpiredEvent is raised when the expiry sweep times out a stale offer
type OfferExpiredEvent struct {
	shared.BaseDomainEvent
	OfferID       uuid.UUID `json:"offer_id"`
	JobID         uuid.UUID `json:"job_id"`
	OperatorOrgID uuid.UUID `json:"operator_org_id"`
}

// NewOfferExpiredEvent creates a new OfferExpiredEvent
func NewOfferExpiredEvent(offer *Offer) *OfferExpiredEvent {
	return &OfferExpiredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOfferExpired, AggregateTypeOffer, offer.ID),
		OfferID:         offer.ID,
		JobID:           offer.JobID,
		OperatorOrgID:   offer.OperatorOrgID,
	}
}

// EventType returns the event type name
func (e *OfferExpiredEvent) EventType() string {
	return EventTypeOfferExpired
}

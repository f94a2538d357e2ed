package marketplace

import (
	"github.com/agrilink/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeJob = "Job"

// Event type constants
const (
	EventTypeJobCreated   = "JobCreated"
	EventTypeJobAssigned  = "JobAssigned"
	EventTypeJobStarted   = "JobStarted"
	EventTypeJobCompleted = "JobCompleted"
	EventTypeJobCancelled = "JobCancelled"
)

// JobCreatedEvent is raised when a buyer posts a new job
type JobCreatedEvent struct {
	shared.BaseDomainEvent
	JobID       uuid.UUID   `json:"job_id"`
	BuyerOrgID  uuid.UUID   `json:"buyer_org_id"`
	ServiceType ServiceType `json:"service_type"`
	CropType    string      `json:"crop_type"`
}

// NewJobCreatedEvent creates a new JobCreatedEvent
func NewJobCreatedEvent(job *Job) *JobCreatedEvent {
	return &JobCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobCreated, AggregateTypeJob, job.ID),
		JobID:           job.ID,
		BuyerOrgID:      job.BuyerOrgID,
		ServiceType:     job.ServiceType,
		CropType:        job.CropType,
	}
}

// EventType returns the event type name
func (e *JobCreatedEvent) EventType() string {
	return EventTypeJobCreated
}

// JobAssignedEvent is raised when an accepted offer assigns the job
type JobAssignedEvent struct {
	shared.BaseDomainEvent
	JobID         uuid.UUID `json:"job_id"`
	BuyerOrgID    uuid.UUID `json:"buyer_org_id"`
	OfferID       uuid.UUID `json:"offer_id"`
	OperatorOrgID uuid.UUID `json:"operator_org_id"`
}

// NewJobAssignedEvent creates a new JobAssignedEvent
func NewJobAssignedEvent(job *Job) *JobAssignedEvent {
	event := &JobAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobAssigned, AggregateTypeJob, job.ID),
		JobID:           job.ID,
		BuyerOrgID:      job.BuyerOrgID,
	}
	if job.AssignedOfferID != nil {
		event.OfferID = *job.AssignedOfferID
	}
	if job.AssignedOrgID != nil {
		event.OperatorOrgID = *job.AssignedOrgID
	}
	return event
}

// EventType returns the event type name
func (e *JobAssignedEvent) EventType() string {
	return EventTypeJobAssigned
}

// JobStartedEvent is raised when the operator starts work on the job
type JobStartedEvent struct {
	shared.BaseDomainEvent
	JobID         uuid.UUID `json:"job_id"`
	BuyerOrgID    uuid.UUID `json:"buyer_org_id"`
	OperatorOrgID uuid.UUID `json:"operator_org_id"`
}

// NewJobStartedEvent creates a new JobStartedEvent
func NewJobStartedEvent(job *Job) *JobStartedEvent {
	event := &JobStartedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobStarted, AggregateTypeJob, job.ID),
		JobID:           job.ID,
		BuyerOrgID:      job.BuyerOrgID,
	}
	if job.AssignedOrgID != nil {
		event.OperatorOrgID = *job.AssignedOrgID
	}
	return event
}

// EventType returns the event type name
func (e *JobStartedEvent) EventType() string {
	return EventTypeJobStarted
}

// JobCompletedEvent is raised when completion is confirmed
type JobCompletedEvent struct {
	shared.BaseDomainEvent
	JobID           uuid.UUID     `json:"job_id"`
	BuyerOrgID      uuid.UUID     `json:"buyer_org_id"`
	OperatorOrgID   uuid.UUID     `json:"operator_org_id"`
	CompletedBy     uuid.UUID     `json:"completed_by"`
	CompletedByRole CompleterRole `json:"completed_by_role"`
}

// NewJobCompletedEvent creates a new JobCompletedEvent
func NewJobCompletedEvent(job *Job) *JobCompletedEvent {
	event := &JobCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobCompleted, AggregateTypeJob, job.ID),
		JobID:           job.ID,
		BuyerOrgID:      job.BuyerOrgID,
		CompletedByRole: job.CompletedByRole,
	}
	if job.AssignedOrgID != nil {
		event.OperatorOrgID = *job.AssignedOrgID
	}
	if job.CompletedBy != nil {
		event.CompletedBy = *job.CompletedBy
	}
	return event
}

// EventType returns the event type name
func (e *JobCompletedEvent) EventType() string {
	return EventTypeJobCompleted
}

// JobCancelledEvent is raised when the buyer cancels the job.
// WasAssigned tells subscribers whether an accepted offer was affected.
type JobCancelledEvent struct {
	shared.BaseDomainEvent
	JobID         uuid.UUID  `json:"job_id"`
	BuyerOrgID    uuid.UUID  `json:"buyer_org_id"`
	Reason        string     `json:"reason"`
	WasAssigned   bool       `json:"was_assigned"`
	OfferID       *uuid.UUID `json:"offer_id,omitempty"`
	OperatorOrgID *uuid.UUID `json:"operator_org_id,omitempty"`
}

// NewJobCancelledEvent creates a new JobCancelledEvent
func NewJobCancelledEvent(job *Job, wasAssigned bool) *JobCancelledEvent {
	return &JobCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobCancelled, AggregateTypeJob, job.ID),
		JobID:           job.ID,
		BuyerOrgID:      job.BuyerOrgID,
		Reason:          job.CancelReason,
		WasAssigned:     wasAssigned,
		OfferID:         job.AssignedOfferID,
		OperatorOrgID:   job.AssignedOrgID,
	}
}

// EventType returns the event type name
func (e *JobCancelledEvent) EventType() string {
	return EventTypeJobCancelled
}

package identity

import (
	"github.com/agrilink/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeOrganization = "Organization"

// Event type constants
const (
	EventTypeOrganizationCreated   = "OrganizationCreated"
	EventTypeOrganizationSuspended = "OrganizationSuspended"
)

// OrganizationCreatedEvent is raised when a new organization registers
type OrganizationCreatedEvent struct {
	shared.BaseDomainEvent
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
	IsBuyer        bool      `json:"is_buyer"`
	IsOperator     bool      `json:"is_operator"`
}

// NewOrganizationCreatedEvent creates a new OrganizationCreatedEvent
func NewOrganizationCreatedEvent(org *Organization) *OrganizationCreatedEvent {
	return &OrganizationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrganizationCreated, AggregateTypeOrganization, org.ID),
		OrganizationID:  org.ID,
		Name:            org.Name,
		IsBuyer:         org.IsBuyer,
		IsOperator:      org.IsOperator,
	}
}

// EventType returns the event type name
func (e *OrganizationCreatedEvent) EventType() string {
	return EventTypeOrganizationCreated
}

// OrganizationSuspendedEvent is raised when an organization is suspended
type OrganizationSuspendedEvent struct {
	shared.BaseDomainEvent
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
}

// NewOrganizationSuspendedEvent creates a new OrganizationSuspendedEvent
func NewOrganizationSuspendedEvent(org *Organization) *OrganizationSuspendedEvent {
	return &OrganizationSuspendedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrganizationSuspended, AggregateTypeOrganization, org.ID),
		OrganizationID:  org.ID,
		Name:            org.Name,
	}
}

// EventType returns the event type name
func (e *OrganizationSuspendedEvent) EventType() string {
	return EventTypeOrganizationSuspended
}

package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/agrilink/backend/internal/domain/shared"
)

// OrganizationStatus represents the status of an organization
type OrganizationStatus string

const (
	OrganizationStatusActive    OrganizationStatus = "ACTIVE"
	OrganizationStatusSuspended OrganizationStatus = "SUSPENDED"
)

// IsValid checks if the status is a valid OrganizationStatus
func (s OrganizationStatus) IsValid() bool {
	return s == OrganizationStatusActive || s == OrganizationStatusSuspended
}

// Organization represents a marketplace tenant. An organization may act as a
// buyer, an operator, or both; jobs and offers reference it as their owner.
type Organization struct {
	shared.BaseAggregateRoot
	Name         string
	ContactEmail string
	IsBuyer      bool
	IsOperator   bool
	Status       OrganizationStatus
	SuspendedAt  *time.Time
}

// NewOrganization creates a new active organization.
// At least one of the buyer/operator roles must be set.
func NewOrganization(name, contactEmail string, isBuyer, isOperator bool) (*Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Organization name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Organization name cannot exceed 200 characters")
	}
	if !isBuyer && !isOperator {
		return nil, shared.NewDomainError("INVALID_ROLES", "Organization must have at least one role")
	}
	contactEmail = strings.ToLower(strings.TrimSpace(contactEmail))
	if contactEmail != "" {
		if err := validateEmail(contactEmail); err != nil {
			return nil, err
		}
	}

	org := &Organization{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		ContactEmail:      contactEmail,
		IsBuyer:           isBuyer,
		IsOperator:        isOperator,
		Status:            OrganizationStatusActive,
	}

	org.AddDomainEvent(NewOrganizationCreatedEvent(org))

	return org, nil
}

// Rename changes the organization name
func (o *Organization) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Organization name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Organization name cannot exceed 200 characters")
	}

	o.Name = name
	o.Touch()
	o.IncrementVersion()

	return nil
}

// SetContactEmail sets the organization contact email
func (o *Organization) SetContactEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	o.ContactEmail = email
	o.Touch()
	o.IncrementVersion()

	return nil
}

// SetRoles replaces the buyer/operator role flags
func (o *Organization) SetRoles(isBuyer, isOperator bool) error {
	if !isBuyer && !isOperator {
		return shared.NewDomainError("INVALID_ROLES", "Organization must have at least one role")
	}

	o.IsBuyer = isBuyer
	o.IsOperator = isOperator
	o.Touch()
	o.IncrementVersion()

	return nil
}

// Suspend suspends the organization
func (o *Organization) Suspend() error {
	if o.Status == OrganizationStatusSuspended {
		return shared.NewDomainError("ALREADY_SUSPENDED", "Organization is already suspended")
	}

	now := time.Now()
	o.Status = OrganizationStatusSuspended
	o.SuspendedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrganizationSuspendedEvent(o))

	return nil
}

// Reactivate reactivates a suspended organization
func (o *Organization) Reactivate() error {
	if o.Status == OrganizationStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Organization is already active")
	}

	o.Status = OrganizationStatusActive
	o.SuspendedAt = nil
	o.Touch()
	o.IncrementVersion()

	return nil
}

// IsActive returns true if the organization is active
func (o *Organization) IsActive() bool {
	return o.Status == OrganizationStatusActive
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return nil
}

package marketplace

import (
	"context"
	"time"

	"github.com/agrilink/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// JobRepository defines the interface for job persistence
type JobRepository interface {
	// FindByID finds a job by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Job, error)

	// FindByIDForUpdate finds a job by ID with a row lock.
	// Must be called inside a transaction; used to close the check-then-act
	// race on accept and cancel.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Job, error)

	// FindByBuyer finds jobs posted by a buyer organization
	FindByBuyer(ctx context.Context, buyerOrgID uuid.UUID, filter shared.Filter) ([]Job, error)

	// FindOpen finds jobs in OPEN status, newest first
	FindOpen(ctx context.Context, filter shared.Filter) ([]Job, error)

	// FindByAssignedOrg finds jobs assigned to an operator organization
	FindByAssignedOrg(ctx context.Context, operatorOrgID uuid.UUID, filter shared.Filter) ([]Job, error)

	// CountByBuyer counts jobs posted by a buyer organization
	CountByBuyer(ctx context.Context, buyerOrgID uuid.UUID) (int64, error)

	// CountOpen counts jobs in OPEN status
	CountOpen(ctx context.Context) (int64, error)

	// Save creates or updates a job
	Save(ctx context.Context, job *Job) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, job *Job) error
}

// OfferRepository defines the interface for offer persistence
type OfferRepository interface {
	// FindByID finds an offer by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Offer, error)

	// FindByIDForUpdate finds an offer by ID with a row lock.
	// Must be called inside a transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Offer, error)

	// FindByJob finds all offers for a job, newest first
	FindByJob(ctx context.Context, jobID uuid.UUID, filter shared.Filter) ([]Offer, error)

	// FindPendingByJob finds PENDING offers for a job
	FindPendingByJob(ctx context.Context, jobID uuid.UUID) ([]Offer, error)

	// FindByOperator finds offers submitted by an operator organization
	FindByOperator(ctx context.Context, operatorOrgID uuid.UUID, filter shared.Filter) ([]Offer, error)

	// FindAcceptedByJob finds the accepted offer for a job, if any
	FindAcceptedByJob(ctx context.Context, jobID uuid.UUID) (*Offer, error)

	// HasPendingByJobAndOperator reports whether the operator already has a
	// PENDING offer on the job
	HasPendingByJobAndOperator(ctx context.Context, jobID, operatorOrgID uuid.UUID) (bool, error)

	// FindStalePending finds PENDING offers created before the cutoff,
	// oldest first, up to limit
	FindStalePending(ctx context.Context, cutoff time.Time, limit int) ([]Offer, error)

	// CountByJob counts offers for a job
	CountByJob(ctx context.Context, jobID uuid.UUID) (int64, error)

	// Save creates or updates an offer
	Save(ctx context.Context, offer *Offer) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, offer *Offer) error
}

// ServiceConfigurationRepository defines the interface for service
// configuration persistence
type ServiceConfigurationRepository interface {
	// FindByOrg finds the configuration for an operator organization.
	// Returns shared.ErrNotFound when the organization has none.
	FindByOrg(ctx context.Context, orgID uuid.UUID) (*ServiceConfiguration, error)

	// Save creates or updates a configuration (one per organization)
	Save(ctx context.Context, cfg *ServiceConfiguration) error
}

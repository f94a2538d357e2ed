package marketplace

import (
	"context"
	"errors"

	"github.com/agrilink/backend/internal/domain/marketplace"
	"github.com/agrilink/backend/internal/domain/shared"
	"github.com/agrilink/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// OfferService handles offer lifecycle operations
type OfferService struct {
	offerRepo      marketplace.OfferRepository
	jobRepo        marketplace.JobRepository
	configRepo     marketplace.ServiceConfigurationRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewOfferService creates a new OfferService
func NewOfferService(
	offerRepo marketplace.OfferRepository,
	jobRepo marketplace.JobRepository,
	configRepo marketplace.ServiceConfigurationRepository,
	txScope TransactionScope,
) *OfferService {
	return &OfferService{
		offerRepo:  offerRepo,
		jobRepo:    jobRepo,
		configRepo: configRepo,
		txScope:    txScope,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OfferService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Submit creates a PENDING offer on an OPEN job. The listing-time matching
// filter is advisory, so the service-type check is re-validated here when the
// operator enforces filters.
func (s *OfferService) Submit(ctx context.Context, actor Actor, jobID uuid.UUID, req SubmitOfferRequest) (*OfferResponse, error) {
	if !actor.IsOperator {
		return nil, shared.NewDomainError("FORBIDDEN", "Only operator organizations can submit offers")
	}

	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.BuyerOrgID == actor.OrgID {
		return nil, shared.NewDomainError("INVALID_INPUT", "Cannot offer on your own job")
	}
	if job.Status != marketplace.JobStatusOpen {
		return nil, shared.NewStateConflictError("job", marketplace.JobStatusOpen.String(), job.Status.String())
	}

	if err := s.checkServiceType(ctx, actor.OrgID, job.ServiceType); err != nil {
		return nil, err
	}

	exists, err := s.offerRepo.HasPendingByJobAndOperator(ctx, jobID, actor.OrgID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A pending offer for this job already exists")
	}

	offer, err := marketplace.NewOffer(jobID, actor.OrgID, valueobject.NewMoneyEUR(req.Amount), req.ProposedStart, req.ProposedEnd, req.Note)
	if err != nil {
		return nil, err
	}

	if err := s.offerRepo.Save(ctx, offer); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, offer)

	response := ToOfferResponse(offer)
	return &response, nil
}

// GetByID returns an offer visible to the actor: the submitting operator or
// the buyer of the referenced job
func (s *OfferService) GetByID(ctx context.Context, actor Actor, offerID uuid.UUID) (*OfferResponse, error) {
	offer, err := s.offerRepo.FindByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	if offer.OperatorOrgID != actor.OrgID {
		job, err := s.jobRepo.FindByID(ctx, offer.JobID)
		if err != nil {
			return nil, err
		}
		if job.BuyerOrgID != actor.OrgID {
			return nil, shared.NewDomainError("FORBIDDEN", "Not allowed to view this offer")
		}
	}

	response := ToOfferResponse(offer)
	return &response, nil
}

// ListByJob lists offers on a job; only the job's buyer may see them
func (s *OfferService) ListByJob(ctx context.Context, actor Actor, jobID uuid.UUID, filter OfferListFilter) ([]OfferResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.BuyerOrgID != actor.OrgID {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the buyer can list offers on this job")
	}

	offers, err := s.offerRepo.FindByJob(ctx, jobID, toSharedFilter(filter.Status, filter.Page, filter.PageSize))
	if err != nil {
		return nil, err
	}
	return toOfferResponses(offers), nil
}

// ListMine lists offers submitted by the actor's organization
func (s *OfferService) ListMine(ctx context.Context, actor Actor, filter OfferListFilter) ([]OfferResponse, error) {
	offers, err := s.offerRepo.FindByOperator(ctx, actor.OrgID, toSharedFilter(filter.Status, filter.Page, filter.PageSize))
	if err != nil {
		return nil, err
	}
	return toOfferResponses(offers), nil
}

// Accept accepts a PENDING offer on an OPEN job. The whole sequence runs in
// one transaction with row locks: the offer and job are re-read FOR UPDATE,
// the offer becomes ACCEPTED, every PENDING sibling becomes REJECTED, and the
// job becomes ASSIGNED. Two concurrent accepts on offers of the same job
// serialize on the job row; the loser re-reads a non-OPEN job and gets a
// state conflict.
func (s *OfferService) Accept(ctx context.Context, actor Actor, offerID uuid.UUID) (*OfferResponse, error) {
	var offer *marketplace.Offer
	var job *marketplace.Job
	var siblings []marketplace.Offer

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		offer, err = repos.OfferRepo().FindByIDForUpdate(ctx, offerID)
		if err != nil {
			return err
		}

		job, err = repos.JobRepo().FindByIDForUpdate(ctx, offer.JobID)
		if err != nil {
			return err
		}
		if job.BuyerOrgID != actor.OrgID {
			return shared.NewDomainError("FORBIDDEN", "Only the buyer can accept offers on this job")
		}

		// Job state is re-checked inside the transaction, not just before it
		if job.Status != marketplace.JobStatusOpen {
			return shared.NewStateConflictError("job", marketplace.JobStatusOpen.String(), job.Status.String())
		}

		if err := offer.Accept(); err != nil {
			return err
		}
		if err := repos.OfferRepo().SaveWithLock(ctx, offer); err != nil {
			return err
		}

		siblings, err = repos.OfferRepo().FindPendingByJob(ctx, offer.JobID)
		if err != nil {
			return err
		}
		for i := range siblings {
			sibling := &siblings[i]
			if sibling.ID == offer.ID {
				continue
			}
			if err := sibling.Reject("another offer was accepted"); err != nil {
				return err
			}
			if err := repos.OfferRepo().SaveWithLock(ctx, sibling); err != nil {
				return err
			}
		}

		if err := job.Assign(offer.ID, offer.OperatorOrgID); err != nil {
			return err
		}
		return repos.JobRepo().SaveWithLock(ctx, job)
	})
	if err != nil {
		return nil, err
	}

	// Events are published only after the transaction committed
	s.publishEvents(ctx, offer)
	for i := range siblings {
		if siblings[i].ID != offer.ID {
			s.publishEvents(ctx, &siblings[i])
		}
	}
	s.publishEvents(ctx, job)

	response := ToOfferResponse(offer)
	return &response, nil
}

// Reject rejects a PENDING offer. Only the buyer of the referenced job may
// reject; the job itself is untouched and stays OPEN for other offers.
func (s *OfferService) Reject(ctx context.Context, actor Actor, offerID uuid.UUID, req RejectOfferRequest) (*OfferResponse, error) {
	offer, err := s.offerRepo.FindByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.FindByID(ctx, offer.JobID)
	if err != nil {
		return nil, err
	}
	if job.BuyerOrgID != actor.OrgID {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the buyer can reject offers on this job")
	}

	if err := offer.Reject(req.Reason); err != nil {
		return nil, err
	}

	if err := s.offerRepo.SaveWithLock(ctx, offer); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, offer)

	response := ToOfferResponse(offer)
	return &response, nil
}

// Withdraw withdraws a PENDING offer. Only the submitting operator may
// withdraw.
func (s *OfferService) Withdraw(ctx context.Context, actor Actor, offerID uuid.UUID) (*OfferResponse, error) {
	offer, err := s.offerRepo.FindByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.OperatorOrgID != actor.OrgID {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the submitting operator can withdraw this offer")
	}

	if err := offer.Withdraw(); err != nil {
		return nil, err
	}

	if err := s.offerRepo.SaveWithLock(ctx, offer); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, offer)

	response := ToOfferResponse(offer)
	return &response, nil
}

// checkServiceType re-validates the matching filter's service-type sub-check
// at submission time, when the operator has an enabled configuration
func (s *OfferService) checkServiceType(ctx context.Context, orgID uuid.UUID, serviceType marketplace.ServiceType) error {
	cfg, err := s.configRepo.FindByOrg(ctx, orgID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if !cfg.EnableJobFilters {
		return nil
	}
	if !cfg.OffersServiceType(serviceType) {
		return shared.NewDomainError("INVALID_INPUT", "Organization does not offer this service type")
	}
	return nil
}

// publishEvents publishes and clears an aggregate's pending events.
// Failures are swallowed: event delivery is best-effort and the bus logs.
func (s *OfferService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	events := aggregate.GetDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
	aggregate.ClearDomainEvents()
}

func toOfferResponses(offers []marketplace.Offer) []OfferResponse {
	responses := make([]OfferResponse, len(offers))
	for i := range offers {
		responses[i] = ToOfferResponse(&offers[i])
	}
	return responses
}

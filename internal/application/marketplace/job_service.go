package marketplace

import (
	"context"
	"errors"

	"github.com/agrilink/backend/internal/domain/marketplace"
	"github.com/agrilink/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// JobService handles job lifecycle operations
type JobService struct {
	jobRepo        marketplace.JobRepository
	offerRepo      marketplace.OfferRepository
	configRepo     marketplace.ServiceConfigurationRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewJobService creates a new JobService
func NewJobService(
	jobRepo marketplace.JobRepository,
	offerRepo marketplace.OfferRepository,
	configRepo marketplace.ServiceConfigurationRepository,
	txScope TransactionScope,
) *JobService {
	return &JobService{
		jobRepo:    jobRepo,
		offerRepo:  offerRepo,
		configRepo: configRepo,
		txScope:    txScope,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *JobService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create posts a new job on behalf of a buyer organization
func (s *JobService) Create(ctx context.Context, actor Actor, req CreateJobRequest) (*JobResponse, error) {
	if !actor.IsBuyer {
		return nil, shared.NewDomainError("FORBIDDEN", "Only buyer organizations can post jobs")
	}

	job, err := marketplace.NewJob(
		actor.OrgID,
		marketplace.ServiceType(req.ServiceType),
		req.CropType,
		marketplace.Terrain(req.Terrain),
		req.DateFrom,
		req.DateTo,
		req.AreaHectares,
	)
	if err != nil {
		return nil, err
	}

	if req.Latitude != nil && req.Longitude != nil {
		if err := job.SetLocation(*req.Latitude, *req.Longitude); err != nil {
			return nil, err
		}
	}
	if req.WindowStartHour != nil && req.WindowEndHour != nil {
		if err := job.SetTimeWindow(*req.WindowStartHour, *req.WindowEndHour); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		job.SetNotes(req.Notes)
	}

	if err := s.jobRepo.Save(ctx, job); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, job)

	response := ToJobResponse(job)
	return &response, nil
}

// GetByID returns a job visible to the actor: its buyer, its assigned
// operator, or any operator while the job is still OPEN
func (s *JobService) GetByID(ctx context.Context, actor Actor, jobID uuid.UUID) (*JobResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if !s.canView(actor, job) {
		return nil, shared.NewDomainError("FORBIDDEN", "Not allowed to view this job")
	}

	response := ToJobResponse(job)
	return &response, nil
}

// ListMine lists jobs posted by the actor's organization
func (s *JobService) ListMine(ctx context.Context, actor Actor, filter JobListFilter) ([]JobResponse, error) {
	jobs, err := s.jobRepo.FindByBuyer(ctx, actor.OrgID, toSharedFilter(filter.Status, filter.Page, filter.PageSize))
	if err != nil {
		return nil, err
	}
	return toJobResponses(jobs), nil
}

// ListAssigned lists jobs assigned to the actor's operator organization
func (s *JobService) ListAssigned(ctx context.Context, actor Actor, filter JobListFilter) ([]JobResponse, error) {
	jobs, err := s.jobRepo.FindByAssignedOrg(ctx, actor.OrgID, toSharedFilter(filter.Status, filter.Page, filter.PageSize))
	if err != nil {
		return nil, err
	}
	return toJobResponses(jobs), nil
}

// Feed lists OPEN jobs for an operator, each with the matching-filter verdict
// for the operator's service configuration. Jobs posted by the operator's own
// organization are excluded. The filter is advisory: ineligible jobs are
// included with their reasons so the UI can explain why.
func (s *JobService) Feed(ctx context.Context, actor Actor, filter JobListFilter) ([]JobFeedItem, error) {
	if !actor.IsOperator {
		return nil, shared.NewDomainError("FORBIDDEN", "Only operator organizations have a job feed")
	}

	cfg, err := s.configRepo.FindByOrg(ctx, actor.OrgID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		cfg = nil // no configuration means no filtering
	}

	jobs, err := s.jobRepo.FindOpen(ctx, toSharedFilter("", filter.Page, filter.PageSize))
	if err != nil {
		return nil, err
	}

	items := make([]JobFeedItem, 0, len(jobs))
	for i := range jobs {
		job := &jobs[i]
		if job.BuyerOrgID == actor.OrgID {
			continue
		}
		items = append(items, JobFeedItem{
			Job:         ToJobResponse(job),
			Eligibility: marketplace.EvaluateJob(job, cfg),
		})
	}

	return items, nil
}

// Start moves an assigned job to IN_PROGRESS. Only the operator organization
// of the accepted offer may start work.
func (s *JobService) Start(ctx context.Context, actor Actor, jobID uuid.UUID) (*JobResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if job.AssignedOrgID == nil || *job.AssignedOrgID != actor.OrgID {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the assigned operator can start this job")
	}

	if err := job.Start(); err != nil {
		return nil, err
	}

	if err := s.jobRepo.SaveWithLock(ctx, job); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, job)

	response := ToJobResponse(job)
	return &response, nil
}

// Complete confirms completion of an in-progress job. Either the buyer or
// the assigned operator may confirm; the confirming side is audited.
func (s *JobService) Complete(ctx context.Context, actor Actor, jobID uuid.UUID) (*JobResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	var role marketplace.CompleterRole
	switch {
	case job.BuyerOrgID == actor.OrgID:
		role = marketplace.CompleterRoleBuyer
	case job.AssignedOrgID != nil && *job.AssignedOrgID == actor.OrgID:
		role = marketplace.CompleterRoleOperator
	default:
		return nil, shared.NewDomainError("FORBIDDEN", "Only the buyer or the assigned operator can complete this job")
	}

	if err := job.Complete(actor.OrgID, role); err != nil {
		return nil, err
	}

	if err := s.jobRepo.SaveWithLock(ctx, job); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, job)

	response := ToJobResponse(job)
	return &response, nil
}

// Cancel cancels a job from OPEN or ASSIGNED. Only the buyer may cancel.
// When the job was ASSIGNED, the accepted offer is moved to REJECTED in the
// same transaction so no ACCEPTED offer is left pointing at a cancelled job.
func (s *JobService) Cancel(ctx context.Context, actor Actor, jobID uuid.UUID, req CancelJobRequest) (*JobResponse, error) {
	var job *marketplace.Job
	var cascaded *marketplace.Offer

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		job, err = repos.JobRepo().FindByIDForUpdate(ctx, jobID)
		if err != nil {
			return err
		}

		if job.BuyerOrgID != actor.OrgID {
			return shared.NewDomainError("FORBIDDEN", "Only the buyer can cancel this job")
		}

		acceptedOfferID := job.AssignedOfferID

		if err := job.Cancel(req.Reason); err != nil {
			return err
		}
		if err := repos.JobRepo().SaveWithLock(ctx, job); err != nil {
			return err
		}

		if acceptedOfferID != nil {
			cascaded, err = repos.OfferRepo().FindByIDForUpdate(ctx, *acceptedOfferID)
			if err != nil {
				return err
			}
			if err := cascaded.RejectAccepted("job cancelled by buyer"); err != nil {
				return err
			}
			if err := repos.OfferRepo().SaveWithLock(ctx, cascaded); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Events are published only after the transaction committed
	s.publishEvents(ctx, job)
	if cascaded != nil {
		s.publishEvents(ctx, cascaded)
	}

	response := ToJobResponse(job)
	return &response, nil
}

// canView reports whether the actor may read the job
func (s *JobService) canView(actor Actor, job *marketplace.Job) bool {
	if job.BuyerOrgID == actor.OrgID {
		return true
	}
	if job.AssignedOrgID != nil && *job.AssignedOrgID == actor.OrgID {
		return true
	}
	return actor.IsOperator && job.Status == marketplace.JobStatusOpen
}

// publishEvents publishes and clears an aggregate's pending events.
// Failures are swallowed: event delivery is best-effort and the bus logs.
func (s *JobService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	events := aggregate.GetDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
	aggregate.ClearDomainEvents()
}

func toSharedFilter(status string, page, pageSize int) shared.Filter {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	if status != "" {
		filter.Filters["status"] = status
	}
	return filter
}

func toJobResponses(jobs []marketplace.Job) []JobResponse {
	responses := make([]JobResponse, len(jobs))
	for i := range jobs {
		responses[i] = ToJobResponse(&jobs[i])
	}
	return responses
}

package marketplace

import (
	"context"
	"time"

	"github.com/agrilink/backend/internal/domain/marketplace"
	"github.com/agrilink/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockJobRepository is a mock implementation of marketplace.JobRepository
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*marketplace.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*marketplace.Job), args.Error(1)
}

func (m *MockJobRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*marketplace.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*marketplace.Job), args.Error(1)
}

func (m *MockJobRepository) FindByBuyer(ctx context.Context, buyerOrgID uuid.UUID, filter shared.Filter) ([]marketplace.Job, error) {
	args := m.Called(ctx, buyerOrgID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]marketplace.Job), args.Error(1)
}

func (m *MockJobRepository) FindOpen(ctx context.Context, filter shared.Filter) ([]marketplace.Job, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]marketplace.Job), args.Error(1)
}

func (m *MockJobRepository) FindByAssignedOrg(ctx context.Context, operatorOrgID uuid.UUID, filter shared.Filter) ([]marketplace.Job, error) {
	args := m.Called(ctx, operatorOrgID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]marketplace.Job), args.Error(1)
}

func (m *MockJobRepository) CountByBuyer(ctx context.Context, buyerOrgID uuid.UUID) (int64, error) {
	args := m.Called(ctx, buyerOrgID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJobRepository) CountOpen(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJobRepository) Save(ctx context.Context, job *marketplace.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) SaveWithLock(ctx context.Context, job *marketplace.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

// MockOfferRepository is a mock implementation of marketplace.OfferRepository
type MockOfferRepository struct {
	mock.Mock
}

func (m *MockOfferRepository) FindByID(ctx context.Context, id uuid.UUID) (*marketplace.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*marketplace.Offer), args.Error(1)
}

func (m *MockOfferRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*marketplace.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*marketplace.Offer), args.Error(1)
}

func (m *MockOfferRepository) FindByJob(ctx context.Context, jobID uuid.UUID, filter shared.Filter) ([]marketplace.Offer, error) {
	args := m.Called(ctx, jobID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]marketplace.Offer), args.Error(1)
}

func (m *MockOfferRepository) FindPendingByJob(ctx context.Context, jobID uuid.UUID) ([]marketplace.Offer, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]marketplace.Offer), args.Error(1)
}

func (m *MockOfferRepository) FindByOperator(ctx context.Context, operatorOrgID uuid.UUID, filter shared.Filter) ([]marketplace.Offer, error) {
	args := m.Called(ctx, operatorOrgID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]marketplace.Offer), args.Error(1)
}

func (m *MockOfferRepository) FindAcceptedByJob(ctx context.Context, jobID uuid.UUID) (*marketplace.Offer, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*marketplace.Offer), args.Error(1)
}

func (m *MockOfferRepository) HasPendingByJobAndOperator(ctx context.Context, jobID, operatorOrgID uuid.UUID) (bool, error) {
	args := m.Called(ctx, jobID, operatorOrgID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOfferRepository) FindStalePending(ctx context.Context, cutoff time.Time, limit int) ([]marketplace.Offer, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]marketplace.Offer), args.Error(1)
}

func (m *MockOfferRepository) CountByJob(ctx context.Context, jobID uuid.UUID) (int64, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOfferRepository) Save(ctx context.Context, offer *marketplace.Offer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

func (m *MockOfferRepository) SaveWithLock(ctx context.Context, offer *marketplace.Offer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

// MockServiceConfigRepository is a mock implementation of
// marketplace.ServiceConfigurationRepository
type MockServiceConfigRepository struct {
	mock.Mock
}

func (m *MockServiceConfigRepository) FindByOrg(ctx context.Context, orgID uuid.UUID) (*marketplace.ServiceConfiguration, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*marketplace.ServiceConfiguration), args.Error(1)
}

func (m *MockServiceConfigRepository) Save(ctx context.Context, cfg *marketplace.ServiceConfiguration) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

// Interface guards
var _ marketplace.JobRepository = (*MockJobRepository)(nil)
var _ marketplace.OfferRepository = (*MockOfferRepository)(nil)
var _ marketplace.ServiceConfigurationRepository = (*MockServiceConfigRepository)(nil)

package notification

import (
	"context"

	"github.com/agrilink/backend/internal/domain/marketplace"
	"github.com/agrilink/backend/internal/domain/notification"
	"github.com/agrilink/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockNotificationRepository is a mock implementation of notification.Repository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) FindByRecipient(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]notification.Notification, error) {
	args := m.Called(ctx, orgID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnreadByRecipient(ctx context.Context, orgID uuid.UUID) (int64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

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

var (
	_ notification.Repository   = (*MockNotificationRepository)(nil)
	_ marketplace.JobRepository = (*MockJobRepository)(nil)
)

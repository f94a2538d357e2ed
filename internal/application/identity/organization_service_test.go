package identity

import (
	"context"
	"testing"

	"github.com/agrilink/backend/internal/domain/identity"
	"github.com/agrilink/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type orgFixture struct {
	orgRepo  *MockOrganizationRepository
	userRepo *MockUserRepository
	service  *OrganizationService
}

func newOrgFixture() *orgFixture {
	orgRepo := &MockOrganizationRepository{}
	userRepo := &MockUserRepository{}
	return &orgFixture{
		orgRepo:  orgRepo,
		userRepo: userRepo,
		service:  NewOrganizationService(orgRepo, userRepo, zap.NewNop()),
	}
}

func validRegisterInput() RegisterOrganizationInput {
	return RegisterOrganizationInput{
		Name:             "SkyFarm Drones",
		ContactEmail:     "office@skyfarm.example",
		IsOperator:       true,
		AdminEmail:       "pilot@skyfarm.example",
		AdminPassword:    "fly1ngh1gh",
		AdminDisplayName: "Chief Pilot",
	}
}

func TestOrganizationServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the organization and its first user", func(t *testing.T) {
		f := newOrgFixture()
		f.userRepo.On("ExistsByEmail", ctx, "pilot@skyfarm.example").Return(false, nil)
		f.orgRepo.On("Save", ctx, mock.Anything).Return(nil)
		f.userRepo.On("Save", ctx, mock.Anything).Return(nil)

		result, err := f.service.Register(ctx, validRegisterInput())
		require.NoError(t, err)

		assert.Equal(t, "SkyFarm Drones", result.Organization.Name)
		assert.True(t, result.Organization.IsOperator)
		assert.False(t, result.Organization.IsBuyer)
		assert.Equal(t, "ACTIVE", result.Organization.Status)
		assert.Equal(t, result.Organization.ID, result.User.OrgID)
		assert.True(t, result.User.IsOperator)
	})

	t.Run("rejects an already registered email", func(t *testing.T) {
		f := newOrgFixture()
		f.userRepo.On("ExistsByEmail", ctx, "pilot@skyfarm.example").Return(true, nil)

		_, err := f.service.Register(ctx, validRegisterInput())
		assertDomainErrorCode(t, err, "EMAIL_TAKEN")
		f.orgRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("requires at least one role", func(t *testing.T) {
		f := newOrgFixture()
		f.userRepo.On("ExistsByEmail", ctx, "pilot@skyfarm.example").Return(false, nil)

		input := validRegisterInput()
		input.IsOperator = false

		_, err := f.service.Register(ctx, input)
		require.Error(t, err)
	})

	t.Run("rejects a weak admin password", func(t *testing.T) {
		f := newOrgFixture()
		f.userRepo.On("ExistsByEmail", ctx, "pilot@skyfarm.example").Return(false, nil)

		input := validRegisterInput()
		input.AdminPassword = "short"

		_, err := f.service.Register(ctx, input)
		require.Error(t, err)
		f.orgRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestOrganizationServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("renames the caller's own organization", func(t *testing.T) {
		f := newOrgFixture()
		org, _ := newTestAccount(t, true, false)

		f.orgRepo.On("FindByID", ctx, org.ID).Return(org, nil)
		f.orgRepo.On("Save", ctx, org).Return(nil)

		newName := "Verdant Farms Kft"
		dto, err := f.service.Update(ctx, org.ID, UpdateOrganizationInput{ID: org.ID, Name: &newName})
		require.NoError(t, err)
		assert.Equal(t, "Verdant Farms Kft", dto.Name)
	})

	t.Run("forbids updating another organization", func(t *testing.T) {
		f := newOrgFixture()
		org, _ := newTestAccount(t, true, false)
		stranger, _ := newTestAccount(t, false, true)

		_, err := f.service.Update(ctx, stranger.ID, UpdateOrganizationInput{ID: org.ID})
		assertDomainErrorCode(t, err, "FORBIDDEN")
		f.orgRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestOrganizationServiceGetAndList(t *testing.T) {
	ctx := context.Background()

	t.Run("returns not found for a missing organization", func(t *testing.T) {
		f := newOrgFixture()
		org, _ := newTestAccount(t, true, false)
		f.orgRepo.On("FindByID", ctx, org.ID).Return(nil, shared.ErrNotFound)

		_, err := f.service.GetByID(ctx, org.ID)
		assertDomainErrorCode(t, err, "NOT_FOUND")
	})

	t.Run("lists organizations with a total count", func(t *testing.T) {
		f := newOrgFixture()
		org, _ := newTestAccount(t, true, false)
		other, _ := newTestAccount(t, false, true)

		f.orgRepo.On("FindAll", ctx, mock.Anything).
			Return([]identity.Organization{*org, *other}, nil)
		f.orgRepo.On("Count", ctx).Return(int64(2), nil)

		dtos, total, err := f.service.List(ctx, OrganizationFilter{Page: 1, PageSize: 20})
		require.NoError(t, err)
		assert.Len(t, dtos, 2)
		assert.Equal(t, int64(2), total)
	})
}

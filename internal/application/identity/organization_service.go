package identity

import (
	"context"

	"github.com/agrilink/backend/internal/domain/identity"
	"github.com/agrilink/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrganizationService handles organization management operations
type OrganizationService struct {
	orgRepo  identity.OrganizationRepository
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(
	orgRepo identity.OrganizationRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *OrganizationService {
	return &OrganizationService{
		orgRepo:  orgRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// Register creates a new organization together with its first user account.
// Registration is open: this is the entry point for both farms and drone
// service companies joining the marketplace.
func (s *OrganizationService) Register(ctx context.Context, input RegisterOrganizationInput) (*RegisterOrganizationResult, error) {
	taken, err := s.userRepo.ExistsByEmail(ctx, input.AdminEmail)
	if err != nil {
		s.logger.Error("Failed to check email uniqueness", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check email availability")
	}
	if taken {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "A user with this email already exists")
	}

	org, err := identity.NewOrganization(input.Name, input.ContactEmail, input.IsBuyer, input.IsOperator)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(org.ID, input.AdminEmail, input.AdminPassword, input.AdminDisplayName)
	if err != nil {
		return nil, err
	}

	if err := s.orgRepo.Save(ctx, org); err != nil {
		s.logger.Error("Failed to save organization", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create organization")
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save first user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create user account")
	}

	s.logger.Info("Organization registered",
		zap.String("org_id", org.ID.String()),
		zap.String("name", org.Name),
		zap.Bool("is_buyer", org.IsBuyer),
		zap.Bool("is_operator", org.IsOperator))

	return &RegisterOrganizationResult{
		Organization: ToOrganizationDTO(org),
		User:         ToUserInfo(user, org),
	}, nil
}

// GetByID returns an organization by ID
func (s *OrganizationService) GetByID(ctx context.Context, id uuid.UUID) (*OrganizationDTO, error) {
	org, err := s.orgRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Organization not found")
	}
	dto := ToOrganizationDTO(org)
	return &dto, nil
}

// List returns organizations matching the filter
func (s *OrganizationService) List(ctx context.Context, filter OrganizationFilter) ([]OrganizationDTO, int64, error) {
	orgs, err := s.orgRepo.FindAll(ctx, filter.ToSharedFilter())
	if err != nil {
		s.logger.Error("Failed to list organizations", zap.Error(err))
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list organizations")
	}

	total, err := s.orgRepo.Count(ctx)
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to count organizations")
	}

	dtos := make([]OrganizationDTO, len(orgs))
	for i := range orgs {
		dtos[i] = ToOrganizationDTO(&orgs[i])
	}
	return dtos, total, nil
}

// Update changes organization details. Only members of the organization may
// update it.
func (s *OrganizationService) Update(ctx context.Context, actorOrgID uuid.UUID, input UpdateOrganizationInput) (*OrganizationDTO, error) {
	if actorOrgID != input.ID {
		return nil, shared.NewDomainError("FORBIDDEN", "Cannot update another organization")
	}

	org, err := s.orgRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Organization not found")
	}

	if input.Name != nil {
		if err := org.Rename(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.ContactEmail != nil {
		if err := org.SetContactEmail(*input.ContactEmail); err != nil {
			return nil, err
		}
	}

	if err := s.orgRepo.Save(ctx, org); err != nil {
		s.logger.Error("Failed to update organization", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update organization")
	}

	dto := ToOrganizationDTO(org)
	return &dto, nil
}

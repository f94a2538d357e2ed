package identity

import (
	"time"

	"github.com/agrilink/backend/internal/domain/identity"
	"github.com/agrilink/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic user information returned after login
type UserInfo struct {
	ID          uuid.UUID
	OrgID       uuid.UUID
	Email       string
	DisplayName string
	IsBuyer     bool
	IsOperator  bool
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID   uuid.UUID
	TokenJTI string        // JWT ID of the access token being revoked
	TokenTTL time.Duration // Remaining lifetime of that token
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// RegisterOrganizationInput contains input for registering a new
// organization together with its first user account.
type RegisterOrganizationInput struct {
	Name         string
	ContactEmail string
	IsBuyer      bool
	IsOperator   bool

	AdminEmail       string
	AdminPassword    string
	AdminDisplayName string
}

// RegisterOrganizationResult contains the created organization and user
type RegisterOrganizationResult struct {
	Organization OrganizationDTO
	User         UserInfo
}

// UpdateOrganizationInput contains input for updating an organization
type UpdateOrganizationInput struct {
	ID           uuid.UUID
	Name         *string
	ContactEmail *string
}

// OrganizationDTO represents organization data returned to callers
type OrganizationDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email"`
	IsBuyer      bool      `json:"is_buyer"`
	IsOperator   bool      `json:"is_operator"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OrganizationFilter represents filter for querying organizations
type OrganizationFilter struct {
	Page     int
	PageSize int
	SortBy   string
	SortDir  string
}

// ToSharedFilter converts OrganizationFilter to shared.Filter
func (f OrganizationFilter) ToSharedFilter() shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.SortBy != "" {
		filter.OrderBy = f.SortBy
	}
	if f.SortDir != "" {
		filter.OrderDir = f.SortDir
	}
	return filter
}

// ToOrganizationDTO converts a domain organization to a DTO
func ToOrganizationDTO(org *identity.Organization) OrganizationDTO {
	return OrganizationDTO{
		ID:           org.ID,
		Name:         org.Name,
		ContactEmail: org.ContactEmail,
		IsBuyer:      org.IsBuyer,
		IsOperator:   org.IsOperator,
		Status:       string(org.Status),
		CreatedAt:    org.CreatedAt,
		UpdatedAt:    org.UpdatedAt,
	}
}

// ToUserInfo converts a domain user plus its organization roles to UserInfo
func ToUserInfo(user *identity.User, org *identity.Organization) UserInfo {
	info := UserInfo{
		ID:          user.ID,
		OrgID:       user.OrgID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}
	if org != nil {
		info.IsBuyer = org.IsBuyer
		info.IsOperator = org.IsOperator
	}
	return info
}

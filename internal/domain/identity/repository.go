package identity

import (
	"context"

	"github.com/agrilink/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrganizationRepository defines the interface for organization persistence
type OrganizationRepository interface {
	// FindByID finds an organization by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Organization, error)

	// FindByName finds an organization by exact name
	FindByName(ctx context.Context, name string) (*Organization, error)

	// FindAll lists organizations with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Organization, error)

	// FindOperators lists active operator organizations
	FindOperators(ctx context.Context, filter shared.Filter) ([]Organization, error)

	// Count counts all organizations
	Count(ctx context.Context) (int64, error)

	// Save creates or updates an organization
	Save(ctx context.Context, org *Organization) error
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email (emails are unique)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByOrg lists users belonging to an organization
	FindByOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]User, error)

	// ExistsByEmail reports whether a user with the email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error
}

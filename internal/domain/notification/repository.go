package notification

import (
	"context"

	"github.com/agrilink/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the interface for notification persistence
type Repository interface {
	// FindByID finds a notification by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)

	// FindByRecipient lists notifications for an organization, newest first
	FindByRecipient(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]Notification, error)

	// CountUnreadByRecipient counts unread notifications for an organization
	CountUnreadByRecipient(ctx context.Context, orgID uuid.UUID) (int64, error)

	// Save creates or updates a notification
	Save(ctx context.Context, n *Notification) error
}

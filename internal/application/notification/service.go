package notification

import (
	"context"
	"time"

	"github.com/agrilink/backend/internal/domain/notification"
	"github.com/agrilink/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationDTO represents a notification returned to callers
type NotificationDTO struct {
	ID        uuid.UUID  `json:"id"`
	Kind      string     `json:"kind"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body"`
	JobID     *uuid.UUID `json:"job_id,omitempty"`
	OfferID   *uuid.UUID `json:"offer_id,omitempty"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ListFilter narrows a notification listing
type ListFilter struct {
	Page       int
	PageSize   int
	UnreadOnly bool
}

// Service exposes an organization's in-app notification feed
type Service struct {
	repo   notification.Repository
	logger *zap.Logger
}

// NewService creates a new notification service
func NewService(repo notification.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns the organization's notifications, newest first, along with
// the unread count for badge display.
func (s *Service) List(ctx context.Context, actorOrgID uuid.UUID, filter ListFilter) ([]NotificationDTO, int64, error) {
	shFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		shFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		shFilter.PageSize = filter.PageSize
	}
	if filter.UnreadOnly {
		shFilter.Filters["unread"] = true
	}

	items, err := s.repo.FindByRecipient(ctx, actorOrgID, shFilter)
	if err != nil {
		s.logger.Error("Failed to list notifications", zap.Error(err))
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list notifications")
	}

	unread, err := s.repo.CountUnreadByRecipient(ctx, actorOrgID)
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to count unread notifications")
	}

	dtos := make([]NotificationDTO, len(items))
	for i := range items {
		dtos[i] = toDTO(&items[i])
	}
	return dtos, unread, nil
}

// MarkRead marks a notification as read. Only the recipient organization may
// mark its own notifications.
func (s *Service) MarkRead(ctx context.Context, actorOrgID, id uuid.UUID) (*NotificationDTO, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Notification not found")
	}

	if n.RecipientOrgID != actorOrgID {
		return nil, shared.NewDomainError("FORBIDDEN", "Not allowed to access this notification")
	}

	n.MarkRead()
	if err := s.repo.Save(ctx, n); err != nil {
		s.logger.Error("Failed to mark notification read", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update notification")
	}

	dto := toDTO(n)
	return &dto, nil
}

func toDTO(n *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID,
		Kind:      string(n.Kind),
		Subject:   n.Subject,
		Body:      n.Body,
		JobID:     n.JobID,
		OfferID:   n.OfferID,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

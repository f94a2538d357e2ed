package models

import (
	"time"

	"github.com/agrilink/backend/internal/domain/notification"
	"github.com/google/uuid"
)

// NotificationModel is the persistence model for in-app notifications.
type NotificationModel struct {
	BaseModel
	RecipientOrgID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Kind           notification.Kind `gorm:"type:varchar(30);not null"`
	Subject        string            `gorm:"type:varchar(200);not null"`
	Body           string            `gorm:"type:text"`
	JobID          *uuid.UUID        `gorm:"type:uuid"`
	OfferID        *uuid.UUID        `gorm:"type:uuid"`
	ReadAt         *time.Time
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts the persistence model to a domain Notification
func (m *NotificationModel) ToDomain() *notification.Notification {
	return &notification.Notification{
		BaseEntity:     m.BaseModel.ToDomain(),
		RecipientOrgID: m.RecipientOrgID,
		Kind:           m.Kind,
		Subject:        m.Subject,
		Body:           m.Body,
		JobID:          m.JobID,
		OfferID:        m.OfferID,
		ReadAt:         m.ReadAt,
	}
}

// NotificationModelFromDomain converts a domain Notification to its
// persistence model
func NotificationModelFromDomain(n *notification.Notification) *NotificationModel {
	m := &NotificationModel{
		RecipientOrgID: n.RecipientOrgID,
		Kind:           n.Kind,
		Subject:        n.Subject,
		Body:           n.Body,
		JobID:          n.JobID,
		OfferID:        n.OfferID,
		ReadAt:         n.ReadAt,
	}
	m.FromDomainBaseEntity(n.BaseEntity)
	return m
}

package models

import (
	"time"

	"github.com/agrilink/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// OrganizationModel is the persistence model for the Organization aggregate.
type OrganizationModel struct {
	AggregateModel
	Name         string                      `gorm:"type:varchar(200);not null;uniqueIndex"`
	ContactEmail string                      `gorm:"type:varchar(255)"`
	IsBuyer      bool                        `gorm:"not null;default:false"`
	IsOperator   bool                        `gorm:"not null;default:false"`
	Status       identity.OrganizationStatus `gorm:"type:varchar(20);not null;index"`
	SuspendedAt  *time.Time
}

// TableName returns the table name for GORM
func (OrganizationModel) TableName() string {
	return "organizations"
}

// ToDomain converts the persistence model to a domain Organization
func (m *OrganizationModel) ToDomain() *identity.Organization {
	return &identity.Organization{
		BaseAggregateRoot: m.ToDomainAggregate(),
		Name:              m.Name,
		ContactEmail:      m.ContactEmail,
		IsBuyer:           m.IsBuyer,
		IsOperator:        m.IsOperator,
		Status:            m.Status,
		SuspendedAt:       m.SuspendedAt,
	}
}

// OrganizationModelFromDomain converts a domain Organization to its
// persistence model
func OrganizationModelFromDomain(org *identity.Organization) *OrganizationModel {
	m := &OrganizationModel{
		Name:         org.Name,
		ContactEmail: org.ContactEmail,
		IsBuyer:      org.IsBuyer,
		IsOperator:   org.IsOperator,
		Status:       org.Status,
		SuspendedAt:  org.SuspendedAt,
	}
	m.FromDomainAggregate(org.BaseAggregateRoot)
	return m
}

// UserModel is the persistence model for the User aggregate.
type UserModel struct {
	AggregateModel
	OrgID        uuid.UUID           `gorm:"type:uuid;not null;index"`
	Email        string              `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string              `gorm:"type:varchar(255);not null"`
	DisplayName  string              `gorm:"type:varchar(100);not null"`
	Status       identity.UserStatus `gorm:"type:varchar(20);not null"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToDomainAggregate(),
		OrgID:             m.OrgID,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		DisplayName:       m.DisplayName,
		Status:            m.Status,
		LastLoginAt:       m.LastLoginAt,
	}
}

// UserModelFromDomain converts a domain User to its persistence model
func UserModelFromDomain(user *identity.User) *UserModel {
	m := &UserModel{
		OrgID:        user.OrgID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		DisplayName:  user.DisplayName,
		Status:       user.Status,
		LastLoginAt:  user.LastLoginAt,
	}
	m.FromDomainAggregate(user.BaseAggregateRoot)
	return m
}

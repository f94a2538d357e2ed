package models

import (
	"strings"
	"time"

	"github.com/agrilink/backend/internal/domain/marketplace"
	"github.com/agrilink/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JobModel is the persistence model for the Job aggregate.
type JobModel struct {
	AggregateModel
	BuyerOrgID      uuid.UUID               `gorm:"type:uuid;not null;index"`
	ServiceType     marketplace.ServiceType `gorm:"type:varchar(20);not null;index"`
	CropType        string                  `gorm:"type:varchar(100);not null"`
	Terrain         marketplace.Terrain     `gorm:"type:varchar(20);not null"`
	DateFrom        time.Time               `gorm:"not null"`
	DateTo          time.Time               `gorm:"not null"`
	AreaHectares    decimal.Decimal         `gorm:"type:decimal(12,2);not null"`
	Latitude        *float64                `gorm:"type:double precision"`
	Longitude       *float64                `gorm:"type:double precision"`
	WindowStartHour *int
	WindowEndHour   *int
	Notes           string                `gorm:"type:text"`
	Status          marketplace.JobStatus `gorm:"type:varchar(20);not null;index"`
	AssignedOfferID *uuid.UUID            `gorm:"type:uuid"`
	AssignedOrgID   *uuid.UUID            `gorm:"type:uuid;index"`
	CancelReason    string                `gorm:"type:text"`
	CompletedBy     *uuid.UUID            `gorm:"type:uuid"`
	CompletedByRole marketplace.CompleterRole `gorm:"type:varchar(20)"`
	AssignedAt      *time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
	CancelledAt     *time.Time
}

// TableName returns the table name for GORM
func (JobModel) TableName() string {
	return "jobs"
}

// ToDomain converts the persistence model to a domain Job
func (m *JobModel) ToDomain() *marketplace.Job {
	return &marketplace.Job{
		BaseAggregateRoot: m.ToDomainAggregate(),
		BuyerOrgID:        m.BuyerOrgID,
		ServiceType:       m.ServiceType,
		CropType:          m.CropType,
		Terrain:           m.Terrain,
		DateFrom:          m.DateFrom,
		DateTo:            m.DateTo,
		AreaHectares:      m.AreaHectares,
		Latitude:          m.Latitude,
		Longitude:         m.Longitude,
		WindowStartHour:   m.WindowStartHour,
		WindowEndHour:     m.WindowEndHour,
		Notes:             m.Notes,
		Status:            m.Status,
		AssignedOfferID:   m.AssignedOfferID,
		AssignedOrgID:     m.AssignedOrgID,
		CancelReason:      m.CancelReason,
		CompletedBy:       m.CompletedBy,
		CompletedByRole:   m.CompletedByRole,
		AssignedAt:        m.AssignedAt,
		StartedAt:         m.StartedAt,
		CompletedAt:       m.CompletedAt,
		CancelledAt:       m.CancelledAt,
	}
}

// JobModelFromDomain converts a domain Job to its persistence model
func JobModelFromDomain(job *marketplace.Job) *JobModel {
	m := &JobModel{
		BuyerOrgID:      job.BuyerOrgID,
		ServiceType:     job.ServiceType,
		CropType:        job.CropType,
		Terrain:         job.Terrain,
		DateFrom:        job.DateFrom,
		DateTo:          job.DateTo,
		AreaHectares:    job.AreaHectares,
		Latitude:        job.Latitude,
		Longitude:       job.Longitude,
		WindowStartHour: job.WindowStartHour,
		WindowEndHour:   job.WindowEndHour,
		Notes:           job.Notes,
		Status:          job.Status,
		AssignedOfferID: job.AssignedOfferID,
		AssignedOrgID:   job.AssignedOrgID,
		CancelReason:    job.CancelReason,
		CompletedBy:     job.CompletedBy,
		CompletedByRole: job.CompletedByRole,
		AssignedAt:      job.AssignedAt,
		StartedAt:       job.StartedAt,
		CompletedAt:     job.CompletedAt,
		CancelledAt:     job.CancelledAt,
	}
	m.FromDomainAggregate(job.BaseAggregateRoot)
	return m
}

// OfferModel is the persistence model for the Offer aggregate.
type OfferModel struct {
	AggregateModel
	JobID         uuid.UUID               `gorm:"type:uuid;not null;index"`
	OperatorOrgID uuid.UUID               `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal         `gorm:"type:decimal(14,2);not null"`
	Currency      valueobject.Currency    `gorm:"type:varchar(3);not null"`
	ProposedStart time.Time               `gorm:"not null"`
	ProposedEnd   time.Time               `gorm:"not null"`
	Note          string                  `gorm:"type:text"`
	Status        marketplace.OfferStatus `gorm:"type:varchar(20);not null;index"`
	RejectReason  string                  `gorm:"type:text"`
	AcceptedAt    *time.Time
	RejectedAt    *time.Time
	WithdrawnAt   *time.Time
	ExpiredAt     *time.Time
}

// TableName returns the table name for GORM
func (OfferModel) TableName() string {
	return "offers"
}

// ToDomain converts the persistence model to a domain Offer
func (m *OfferModel) ToDomain() *marketplace.Offer {
	return &marketplace.Offer{
		BaseAggregateRoot: m.ToDomainAggregate(),
		JobID:             m.JobID,
		OperatorOrgID:     m.OperatorOrgID,
		Amount:            m.Amount,
		Currency:          m.Currency,
		ProposedStart:     m.ProposedStart,
		ProposedEnd:       m.ProposedEnd,
		Note:              m.Note,
		Status:            m.Status,
		RejectReason:      m.RejectReason,
		AcceptedAt:        m.AcceptedAt,
		RejectedAt:        m.RejectedAt,
		WithdrawnAt:       m.WithdrawnAt,
		ExpiredAt:         m.ExpiredAt,
	}
}

// OfferModelFromDomain converts a domain Offer to its persistence model
func OfferModelFromDomain(offer *marketplace.Offer) *OfferModel {
	m := &OfferModel{
		JobID:         offer.JobID,
		OperatorOrgID: offer.OperatorOrgID,
		Amount:        offer.Amount,
		Currency:      offer.Currency,
		ProposedStart: offer.ProposedStart,
		ProposedEnd:   offer.ProposedEnd,
		Note:          offer.Note,
		Status:        offer.Status,
		RejectReason:  offer.RejectReason,
		AcceptedAt:    offer.AcceptedAt,
		RejectedAt:    offer.RejectedAt,
		WithdrawnAt:   offer.WithdrawnAt,
		ExpiredAt:     offer.ExpiredAt,
	}
	m.FromDomainAggregate(offer.BaseAggregateRoot)
	return m
}

// ServiceConfigurationModel is the persistence model for the operator
// matching configuration. Service types and available days are stored as
// comma-joined lists; the domain works with typed slices.
type ServiceConfigurationModel struct {
	AggregateModel
	OrgID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	EnableJobFilters bool      `gorm:"not null;default:false"`
	ServiceTypes     string    `gorm:"type:varchar(100)"`
	AvailableDays    string    `gorm:"type:varchar(100)"`
	WorkdayStartHour *int
	WorkdayEndHour   *int
	BaseLatitude     *float64         `gorm:"type:double precision"`
	BaseLongitude    *float64         `gorm:"type:double precision"`
	ServiceRadiusKm  *decimal.Decimal `gorm:"type:decimal(8,2)"`
}

// TableName returns the table name for GORM
func (ServiceConfigurationModel) TableName() string {
	return "service_configurations"
}

// ToDomain converts the persistence model to a domain ServiceConfiguration
func (m *ServiceConfigurationModel) ToDomain() *marketplace.ServiceConfiguration {
	cfg := &marketplace.ServiceConfiguration{
		BaseAggregateRoot: m.ToDomainAggregate(),
		OrgID:             m.OrgID,
		EnableJobFilters:  m.EnableJobFilters,
		WorkdayStartHour:  m.WorkdayStartHour,
		WorkdayEndHour:    m.WorkdayEndHour,
		BaseLatitude:      m.BaseLatitude,
		BaseLongitude:     m.BaseLongitude,
		ServiceRadiusKm:   m.ServiceRadiusKm,
	}

	if m.ServiceTypes != "" {
		parts := strings.Split(m.ServiceTypes, ",")
		cfg.ServiceTypes = make([]marketplace.ServiceType, 0, len(parts))
		for _, p := range parts {
			cfg.ServiceTypes = append(cfg.ServiceTypes, marketplace.ServiceType(p))
		}
	}
	if m.AvailableDays != "" {
		parts := strings.Split(m.AvailableDays, ",")
		cfg.AvailableDays = make([]marketplace.Weekday, 0, len(parts))
		for _, p := range parts {
			cfg.AvailableDays = append(cfg.AvailableDays, marketplace.Weekday(p))
		}
	}

	return cfg
}

// ServiceConfigurationModelFromDomain converts a domain configuration to its
// persistence model
func ServiceConfigurationModelFromDomain(cfg *marketplace.ServiceConfiguration) *ServiceConfigurationModel {
	m := &ServiceConfigurationModel{
		OrgID:            cfg.OrgID,
		EnableJobFilters: cfg.EnableJobFilters,
		WorkdayStartHour: cfg.WorkdayStartHour,
		WorkdayEndHour:   cfg.WorkdayEndHour,
		BaseLatitude:     cfg.BaseLatitude,
		BaseLongitude:    cfg.BaseLongitude,
		ServiceRadiusKm:  cfg.ServiceRadiusKm,
	}

	if len(cfg.ServiceTypes) > 0 {
		parts := make([]string, len(cfg.ServiceTypes))
		for i, st := range cfg.ServiceTypes {
			parts[i] = string(st)
		}
		m.ServiceTypes = strings.Join(parts, ",")
	}
	if len(cfg.AvailableDays) > 0 {
		parts := make([]string, len(cfg.AvailableDays))
		for i, d := range cfg.AvailableDays {
			parts[i] = string(d)
		}
		m.AvailableDays = strings.Join(parts, ",")
	}

	m.FromDomainAggregate(cfg.BaseAggregateRoot)
	return m
}

package marketplace

import (
	"fmt"
	"time"

	"github.com/agrilink/backend/internal/domain/shared"
	"github.com/agrilink/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceType represents the kind of drone work a job asks for
type ServiceType string

const (
	ServiceTypeSpray   ServiceType = "SPRAY"
	ServiceTypeSpread  ServiceType = "SPREAD"
	ServiceTypeMapping ServiceType = "MAPPING"
)

// IsValid checks if the value is a valid ServiceType
func (s ServiceType) IsValid() bool {
	switch s {
	case ServiceTypeSpray, ServiceTypeSpread, ServiceTypeMapping:
		return true
	}
	return false
}

// String returns the string representation of ServiceType
func (s ServiceType) String() string {
	return string(s)
}

// Terrain represents the terrain condition of the target fields
type Terrain string

const (
	TerrainFlat     Terrain = "FLAT"
	TerrainRolling  Terrain = "ROLLING"
	TerrainHilly    Terrain = "HILLY"
	TerrainTerraced Terrain = "TERRACED"
)

// IsValid checks if the value is a valid Terrain
func (t Terrain) IsValid() bool {
	switch t {
	case TerrainFlat, TerrainRolling, TerrainHilly, TerrainTerraced:
		return true
	}
	return false
}

// String returns the string representation of Terrain
func (t Terrain) String() string {
	return string(t)
}

// JobStatus represents the status of a job
type JobStatus string

const (
	JobStatusOpen       JobStatus = "OPEN"
	JobStatusAssigned   JobStatus = "ASSIGNED"
	JobStatusInProgress JobStatus = "IN_PROGRESS"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusCancelled  JobStatus = "CANCELLED"
)

// IsValid checks if the status is a valid JobStatus
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusOpen, JobStatusAssigned, JobStatusInProgress, JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of JobStatus
func (s JobStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status admits no further transitions
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status
func (s JobStatus) CanTransitionTo(target JobStatus) bool {
	switch s {
	case JobStatusOpen:
		return target == JobStatusAssigned || target == JobStatusCancelled
	case JobStatusAssigned:
		return target == JobStatusInProgress || target == JobStatusCancelled
	case JobStatusInProgress:
		return target == JobStatusCompleted
	case JobStatusCompleted, JobStatusCancelled:
		return false // Terminal states
	}
	return false
}

// CompleterRole identifies which side of the marketplace confirmed completion
type CompleterRole string

const (
	CompleterRoleBuyer    CompleterRole = "BUYER"
	CompleterRoleOperator CompleterRole = "OPERATOR"
)

// IsValid checks if the value is a valid CompleterRole
func (r CompleterRole) IsValid() bool {
	return r == CompleterRoleBuyer || r == CompleterRoleOperator
}

// Job represents a unit of drone work a buyer wants performed.
// It is the aggregate root of the job lifecycle; assignment happens only
// through offer acceptance, never by a direct user action.
type Job struct {
	shared.BaseAggregateRoot
	BuyerOrgID      uuid.UUID
	ServiceType     ServiceType
	CropType        string
	Terrain         Terrain
	DateFrom        time.Time
	DateTo          time.Time
	AreaHectares    decimal.Decimal
	Latitude        *float64
	Longitude       *float64
	WindowStartHour *int // Preferred daily work window, hour of day
	WindowEndHour   *int
	Notes           string
	Status          JobStatus
	AssignedOfferID *uuid.UUID
	AssignedOrgID   *uuid.UUID
	CancelReason    string
	CompletedBy     *uuid.UUID // Org that confirmed completion
	CompletedByRole CompleterRole
	AssignedAt      *time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
	CancelledAt     *time.Time
}

// NewJob creates a new job in OPEN status
func NewJob(buyerOrgID uuid.UUID, serviceType ServiceType, cropType string, terrain Terrain, dateFrom, dateTo time.Time, areaHectares decimal.Decimal) (*Job, error) {
	if buyerOrgID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer organization ID cannot be empty")
	}
	if !serviceType.IsValid() {
		return nil, shared.NewDomainError("INVALID_SERVICE_TYPE", fmt.Sprintf("Unknown service type %q", serviceType))
	}
	if cropType == "" {
		return nil, shared.NewDomainError("INVALID_CROP_TYPE", "Crop type cannot be empty")
	}
	if !terrain.IsValid() {
		return nil, shared.NewDomainError("INVALID_TERRAIN", fmt.Sprintf("Unknown terrain %q", terrain))
	}
	if dateTo.Before(dateFrom) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "End date cannot be before start date")
	}
	if areaHectares.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AREA", "Area must be positive")
	}

	job := &Job{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BuyerOrgID:        buyerOrgID,
		ServiceType:       serviceType,
		CropType:          cropType,
		Terrain:           terrain,
		DateFrom:          dateFrom,
		DateTo:            dateTo,
		AreaHectares:      areaHectares,
		Status:            JobStatusOpen,
	}

	job.AddDomainEvent(NewJobCreatedEvent(job))

	return job, nil
}

// SetLocation sets the job geolocation.
// Coordinates outside WGS84 bounds are rejected.
func (j *Job) SetLocation(lat, lng float64) error {
	point := valueobject.NewGeoPoint(lat, lng)
	if !point.IsValid() {
		return shared.NewDomainError("INVALID_LOCATION", "Coordinates are outside valid bounds")
	}

	j.Latitude = &lat
	j.Longitude = &lng
	j.Touch()

	return nil
}

// SetTimeWindow sets the preferred daily work window in hours of day
func (j *Job) SetTimeWindow(startHour, endHour int) error {
	if startHour < 0 || endHour > 24 || startHour >= endHour {
		return shared.NewDomainError("INVALID_TIME_WINDOW", "Time window must satisfy 0 <= start < end <= 24")
	}

	j.WindowStartHour = &startHour
	j.WindowEndHour = &endHour
	j.Touch()

	return nil
}

// SetNotes sets the free-text notes for the job
func (j *Job) SetNotes(notes string) {
	j.Notes = notes
	j.Touch()
}

// Location returns the job geolocation, if one is set and well-formed
func (j *Job) Location() (valueobject.GeoPoint, bool) {
	if j.Latitude == nil || j.Longitude == nil {
		return valueobject.GeoPoint{}, false
	}
	point := valueobject.NewGeoPoint(*j.Latitude, *j.Longitude)
	if !point.IsValid() {
		return valueobject.GeoPoint{}, false
	}
	return point, true
}

// Assign transitions the job from OPEN to ASSIGNED.
// Triggered only by offer acceptance; the winning offer and its operator
// organization are recorded on the job.
func (j *Job) Assign(offerID, operatorOrgID uuid.UUID) error {
	if !j.Status.CanTransitionTo(JobStatusAssigned) {
		return shared.NewStateConflictError("job", JobStatusOpen.String(), j.Status.String())
	}
	if offerID == uuid.Nil {
		return shared.NewDomainError("INVALID_OFFER", "Offer ID cannot be empty")
	}
	if operatorOrgID == uuid.Nil {
		return shared.NewDomainError("INVALID_OPERATOR", "Operator organization ID cannot be empty")
	}

	now := time.Now()
	j.Status = JobStatusAssigned
	j.AssignedOfferID = &offerID
	j.AssignedOrgID = &operatorOrgID
	j.AssignedAt = &now
	j.UpdatedAt = now

	j.AddDomainEvent(NewJobAssignedEvent(j))

	return nil
}

// Start transitions the job from ASSIGNED to IN_PROGRESS
func (j *Job) Start() error {
	if !j.Status.CanTransitionTo(JobStatusInProgress) {
		return shared.NewStateConflictError("job", JobStatusAssigned.String(), j.Status.String())
	}

	now := time.Now()
	j.Status = JobStatusInProgress
	j.StartedAt = &now
	j.UpdatedAt = now

	j.AddDomainEvent(NewJobStartedEvent(j))

	return nil
}

// Complete transitions the job from IN_PROGRESS to COMPLETED.
// Either the buyer or the operator may confirm completion; the confirming
// organization and its role are recorded for auditing.
func (j *Job) Complete(completedBy uuid.UUID, role CompleterRole) error {
	if !j.Status.CanTransitionTo(JobStatusCompleted) {
		return shared.NewStateConflictError("job", JobStatusInProgress.String(), j.Status.String())
	}
	if completedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_COMPLETER", "Completing organization ID cannot be empty")
	}
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_COMPLETER_ROLE", fmt.Sprintf("Unknown completer role %q", role))
	}

	now := time.Now()
	j.Status = JobStatusCompleted
	j.CompletedBy = &completedBy
	j.CompletedByRole = role
	j.CompletedAt = &now
	j.UpdatedAt = now

	j.AddDomainEvent(NewJobCompletedEvent(j))

	return nil
}

// Cancel transitions the job to CANCELLED from OPEN or ASSIGNED.
// If the job was ASSIGNED, the caller must also move the accepted offer to a
// terminal state in the same transaction (handled by the application service).
func (j *Job) Cancel(reason string) error {
	if !j.Status.CanTransitionTo(JobStatusCancelled) {
		return shared.NewStateConflictError("job", "OPEN or ASSIGNED", j.Status.String())
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	wasAssigned := j.Status == JobStatusAssigned
	now := time.Now()
	j.Status = JobStatusCancelled
	j.CancelReason = reason
	j.CancelledAt = &now
	j.UpdatedAt = now

	j.AddDomainEvent(NewJobCancelledEvent(j, wasAssigned))

	return nil
}

package marketplace

import (
	"time"

	"github.com/agrilink/backend/internal/domain/marketplace"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Actor is the authenticated caller of a marketplace operation, derived from
// the JWT claims by the HTTP layer
type Actor struct {
	UserID     uuid.UUID
	OrgID      uuid.UUID
	IsBuyer    bool
	IsOperator bool
}

// ==================== Job DTOs ====================

// CreateJobRequest represents a request to post a new job
type CreateJobRequest struct {
	ServiceType     string          `json:"service_type" binding:"required,oneof=SPRAY SPREAD MAPPING"`
	CropType        string          `json:"crop_type" binding:"required,min=1,max=100"`
	Terrain         string          `json:"terrain" binding:"required,oneof=FLAT ROLLING HILLY TERRACED"`
	DateFrom        time.Time       `json:"date_from" binding:"required"`
	DateTo          time.Time       `json:"date_to" binding:"required"`
	AreaHectares    decimal.Decimal `json:"area_hectares" binding:"required"`
	Latitude        *float64        `json:"latitude"`
	Longitude       *float64        `json:"longitude"`
	WindowStartHour *int            `json:"window_start_hour"`
	WindowEndHour   *int            `json:"window_end_hour"`
	Notes           string          `json:"notes" binding:"max=2000"`
}

// CancelJobRequest represents a request to cancel a job
type CancelJobRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// JobListFilter represents filter options for job lists
type JobListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=OPEN ASSIGNED IN_PROGRESS COMPLETED CANCELLED"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// JobResponse represents a job in API responses
type JobResponse struct {
	ID              uuid.UUID       `json:"id"`
	BuyerOrgID      uuid.UUID       `json:"buyer_org_id"`
	ServiceType     string          `json:"service_type"`
	CropType        string          `json:"crop_type"`
	Terrain         string          `json:"terrain"`
	DateFrom        time.Time       `json:"date_from"`
	DateTo          time.Time       `json:"date_to"`
	AreaHectares    decimal.Decimal `json:"area_hectares"`
	Latitude        *float64        `json:"latitude,omitempty"`
	Longitude       *float64        `json:"longitude,omitempty"`
	WindowStartHour *int            `json:"window_start_hour,omitempty"`
	WindowEndHour   *int            `json:"window_end_hour,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Status          string          `json:"status"`
	AssignedOfferID *uuid.UUID      `json:"assigned_offer_id,omitempty"`
	AssignedOrgID   *uuid.UUID      `json:"assigned_org_id,omitempty"`
	CancelReason    string          `json:"cancel_reason,omitempty"`
	CompletedBy     *uuid.UUID      `json:"completed_by,omitempty"`
	CompletedByRole string          `json:"completed_by_role,omitempty"`
	AssignedAt      *time.Time      `json:"assigned_at,omitempty"`
	StartedAt       *time.Time      `json:"started_at,omitempty"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
	CancelledAt     *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// JobFeedItem is a job in the operator feed together with the matching
// filter verdict for the requesting operator
type JobFeedItem struct {
	Job         JobResponse             `json:"job"`
	Eligibility marketplace.Eligibility `json:"eligibility"`
}

// ToJobResponse converts a domain Job to a response DTO
func ToJobResponse(job *marketplace.Job) JobResponse {
	return JobResponse{
		ID:              job.ID,
		BuyerOrgID:      job.BuyerOrgID,
		ServiceType:     job.ServiceType.String(),
		CropType:        job.CropType,
		Terrain:         job.Terrain.String(),
		DateFrom:        job.DateFrom,
		DateTo:          job.DateTo,
		AreaHectares:    job.AreaHectares,
		Latitude:        job.Latitude,
		Longitude:       job.Longitude,
		WindowStartHour: job.WindowStartHour,
		WindowEndHour:   job.WindowEndHour,
		Notes:           job.Notes,
		Status:          job.Status.String(),
		AssignedOfferID: job.AssignedOfferID,
		AssignedOrgID:   job.AssignedOrgID,
		CancelReason:    job.CancelReason,
		CompletedBy:     job.CompletedBy,
		CompletedByRole: string(job.CompletedByRole),
		AssignedAt:      job.AssignedAt,
		StartedAt:       job.StartedAt,
		CompletedAt:     job.CompletedAt,
		CancelledAt:     job.CancelledAt,
		CreatedAt:       job.CreatedAt,
		UpdatedAt:       job.UpdatedAt,
	}
}

// ==================== Offer DTOs ====================

// SubmitOfferRequest represents a request to submit an offer on a job
type SubmitOfferRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	ProposedStart time.Time       `json:"proposed_start" binding:"required"`
	ProposedEnd   time.Time       `json:"proposed_end" binding:"required"`
	Note          string          `json:"note" binding:"max=2000"`
}

// RejectOfferRequest represents a request to reject an offer
type RejectOfferRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// OfferListFilter represents filter options for offer lists
type OfferListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=PENDING ACCEPTED REJECTED WITHDRAWN EXPIRED"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// OfferResponse represents an offer in API responses
type OfferResponse struct {
	ID            uuid.UUID       `json:"id"`
	JobID         uuid.UUID       `json:"job_id"`
	OperatorOrgID uuid.UUID       `json:"operator_org_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	ProposedStart time.Time       `json:"proposed_start"`
	ProposedEnd   time.Time       `json:"proposed_end"`
	Note          string          `json:"note,omitempty"`
	Status        string          `json:"status"`
	RejectReason  string          `json:"reject_reason,omitempty"`
	AcceptedAt    *time.Time      `json:"accepted_at,omitempty"`
	RejectedAt    *time.Time      `json:"rejected_at,omitempty"`
	WithdrawnAt   *time.Time      `json:"withdrawn_at,omitempty"`
	ExpiredAt     *time.Time      `json:"expired_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToOfferResponse converts a domain Offer to a response DTO
func ToOfferResponse(offer *marketplace.Offer) OfferResponse {
	return OfferResponse{
		ID:            offer.ID,
		JobID:         offer.JobID,
		OperatorOrgID: offer.OperatorOrgID,
		Amount:        offer.Amount,
		Currency:      string(offer.Currency),
		ProposedStart: offer.ProposedStart,
		ProposedEnd:   offer.ProposedEnd,
		Note:          offer.Note,
		Status:        offer.Status.String(),
		RejectReason:  offer.RejectReason,
		AcceptedAt:    offer.AcceptedAt,
		RejectedAt:    offer.RejectedAt,
		WithdrawnAt:   offer.WithdrawnAt,
		ExpiredAt:     offer.ExpiredAt,
		CreatedAt:     offer.CreatedAt,
		UpdatedAt:     offer.UpdatedAt,
	}
}

// ==================== Service Configuration DTOs ====================

// UpdateServiceConfigRequest represents a request to replace the operator's
// service configuration
type UpdateServiceConfigRequest struct {
	EnableJobFilters bool             `json:"enable_job_filters"`
	ServiceTypes     []string         `json:"service_types" binding:"omitempty,dive,oneof=SPRAY SPREAD MAPPING"`
	AvailableDays    []string         `json:"available_days" binding:"omitempty,dive,oneof=MON TUE WED THU FRI SAT SUN"`
	WorkdayStartHour *int             `json:"workday_start_hour" binding:"omitempty,min=0,max=23"`
	WorkdayEndHour   *int             `json:"workday_end_hour" binding:"omitempty,min=1,max=24"`
	BaseLatitude     *float64         `json:"base_latitude"`
	BaseLongitude    *float64         `json:"base_longitude"`
	ServiceRadiusKm  *decimal.Decimal `json:"service_radius_km"`
}

// ServiceConfigResponse represents a service configuration in API responses
type ServiceConfigResponse struct {
	OrgID            uuid.UUID        `json:"org_id"`
	EnableJobFilters bool             `json:"enable_job_filters"`
	ServiceTypes     []string         `json:"service_types"`
	AvailableDays    []string         `json:"available_days"`
	WorkdayStartHour *int             `json:"workday_start_hour,omitempty"`
	WorkdayEndHour   *int             `json:"workday_end_hour,omitempty"`
	BaseLatitude     *float64         `json:"base_latitude,omitempty"`
	BaseLongitude    *float64         `json:"base_longitude,omitempty"`
	ServiceRadiusKm  *decimal.Decimal `json:"service_radius_km,omitempty"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// ToServiceConfigResponse converts a domain ServiceConfiguration to a response DTO
func ToServiceConfigResponse(cfg *marketplace.ServiceConfiguration) ServiceConfigResponse {
	types := make([]string, len(cfg.ServiceTypes))
	for i, st := range cfg.ServiceTypes {
		types[i] = st.String()
	}
	days := make([]string, len(cfg.AvailableDays))
	for i, d := range cfg.AvailableDays {
		days[i] = d.String()
	}

	return ServiceConfigResponse{
		OrgID:            cfg.OrgID,
		EnableJobFilters: cfg.EnableJobFilters,
		ServiceTypes:     types,
		AvailableDays:    days,
		WorkdayStartHour: cfg.WorkdayStartHour,
		WorkdayEndHour:   cfg.WorkdayEndHour,
		BaseLatitude:     cfg.BaseLatitude,
		BaseLongitude:    cfg.BaseLongitude,
		ServiceRadiusKm:  cfg.ServiceRadiusKm,
		UpdatedAt:        cfg.UpdatedAt,
	}
}

package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/agrilink/backend/internal/domain/marketplace"
	"github.com/agrilink/backend/internal/domain/shared"
	"github.com/agrilink/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOfferRepository implements marketplace.OfferRepository using GORM
type GormOfferRepository struct {
	db *gorm.DB
}

// NewGormOfferRepository creates a new GormOfferRepository
func NewGormOfferRepository(db *gorm.DB) *GormOfferRepository {
	return &GormOfferRepository{db: db}
}

// FindByID finds an offer by its ID
func (r *GormOfferRepository) FindByID(ctx context.Context, id uuid.UUID) (*marketplace.Offer, error) {
	var model models.OfferModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds an offer by ID with a row lock.
// Must be called on a transaction-scoped repository.
func (r *GormOfferRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*marketplace.Offer, error) {
	var model models.OfferModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByJob finds all offers for a job
func (r *GormOfferRepository) FindByJob(ctx context.Context, jobID uuid.UUID, filter shared.Filter) ([]marketplace.Offer, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.OfferModel{}).Where("job_id = ?", jobID),
		filter,
	)
	return r.findOffers(query)
}

// FindPendingByJob finds PENDING offers for a job
func (r *GormOfferRepository) FindPendingByJob(ctx context.Context, jobID uuid.UUID) ([]marketplace.Offer, error) {
	query := r.db.WithContext(ctx).
		Model(&models.OfferModel{}).
		Where("job_id = ? AND status = ?", jobID, marketplace.OfferStatusPending).
		Order("created_at ASC")
	return r.findOffers(query)
}

// FindByOperator finds offers submitted by an operator organization
func (r *GormOfferRepository) FindByOperator(ctx context.Context, operatorOrgID uuid.UUID, filter shared.Filter) ([]marketplace.Offer, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.OfferModel{}).Where("operator_org_id = ?", operatorOrgID),
		filter,
	)
	return r.findOffers(query)
}

// FindAcceptedByJob finds the accepted offer for a job, if any
func (r *GormOfferRepository) FindAcceptedByJob(ctx context.Context, jobID uuid.UUID) (*marketplace.Offer, error) {
	var model models.OfferModel
	if err := r.db.WithContext(ctx).
		Where("job_id = ? AND status = ?", jobID, marketplace.OfferStatusAccepted).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// HasPendingByJobAndOperator reports whether the operator already has a
// PENDING offer on the job
func (r *GormOfferRepository) HasPendingByJobAndOperator(ctx context.Context, jobID, operatorOrgID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.OfferModel{}).
		Where("job_id = ? AND operator_org_id = ? AND status = ?",
			jobID, operatorOrgID, marketplace.OfferStatusPending).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindStalePending finds PENDING offers created before the cutoff, oldest first
func (r *GormOfferRepository) FindStalePending(ctx context.Context, cutoff time.Time, limit int) ([]marketplace.Offer, error) {
	query := r.db.WithContext(ctx).
		Model(&models.OfferModel{}).
		Where("status = ? AND created_at < ?", marketplace.OfferStatusPending, cutoff).
		Order("created_at ASC").
		Limit(limit)
	return r.findOffers(query)
}

// CountByJob counts offers for a job
func (r *GormOfferRepository) CountByJob(ctx context.Context, jobID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.OfferModel{}).
		Where("job_id = ?", jobID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an offer
func (r *GormOfferRepository) Save(ctx context.Context, offer *marketplace.Offer) error {
	model := models.OfferModelFromDomain(offer)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormOfferRepository) SaveWithLock(ctx context.Context, offer *marketplace.Offer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		if err := tx.Model(&models.OfferModel{}).
			Where("id = ?", offer.ID).
			Select("version").
			Scan(&currentVersion).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if currentVersion != offer.Version {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The offer has been modified by another user")
		}

		offer.Version++
		offer.UpdatedAt = time.Now()

		result := tx.Model(&models.OfferModel{}).
			Where("id = ? AND version = ?", offer.ID, currentVersion).
			Updates(map[string]interface{}{
				"amount":         offer.Amount,
				"currency":       offer.Currency,
				"proposed_start": offer.ProposedStart,
				"proposed_end":   offer.ProposedEnd,
				"note":           offer.Note,
				"status":         offer.Status,
				"reject_reason":  offer.RejectReason,
				"accepted_at":    offer.AcceptedAt,
				"rejected_at":    offer.RejectedAt,
				"withdrawn_at":   offer.WithdrawnAt,
				"expired_at":     offer.ExpiredAt,
				"version":        offer.Version,
				"updated_at":     offer.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The offer has been modified by another user")
		}
		return nil
	})
}

func (r *GormOfferRepository) findOffers(query *gorm.DB) ([]marketplace.Offer, error) {
	var offerModels []models.OfferModel
	if err := query.Find(&offerModels).Error; err != nil {
		return nil, err
	}
	offers := make([]marketplace.Offer, len(offerModels))
	for i := range offerModels {
		offers[i] = *offerModels[i].ToDomain()
	}
	return offers, nil
}

// applyFilter applies filter options to the query
func (r *GormOfferRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "statuses":
			if statuses, ok := value.([]string); ok && len(statuses) > 0 {
				query = query.Where("status IN ?", statuses)
			}
		case "job_id":
			query = query.Where("job_id = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// Ensure GormOfferRepository implements OfferRepository
var _ marketplace.OfferRepository = (*GormOfferRepository)(nil)

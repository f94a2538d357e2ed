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

// GormJobRepository implements marketplace.JobRepository using GORM
type GormJobRepository struct {
	db *gorm.DB
}

// NewGormJobRepository creates a new GormJobRepository
func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db}
}

// FindByID finds a job by its ID
func (r *GormJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*marketplace.Job, error) {
	var model models.JobModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a job by ID with a row lock.
// Must be called on a transaction-scoped repository.
func (r *GormJobRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*marketplace.Job, error) {
	var model models.JobModel
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

// FindByBuyer finds jobs posted by a buyer organization
func (r *GormJobRepository) FindByBuyer(ctx context.Context, buyerOrgID uuid.UUID, filter shared.Filter) ([]marketplace.Job, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.JobModel{}).Where("buyer_org_id = ?", buyerOrgID),
		filter,
	)
	return r.findJobs(query)
}

// FindOpen finds jobs in OPEN status, newest first
func (r *GormJobRepository) FindOpen(ctx context.Context, filter shared.Filter) ([]marketplace.Job, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.JobModel{}).Where("status = ?", marketplace.JobStatusOpen),
		filter,
	)
	return r.findJobs(query)
}

// FindByAssignedOrg finds jobs assigned to an operator organization
func (r *GormJobRepository) FindByAssignedOrg(ctx context.Context, operatorOrgID uuid.UUID, filter shared.Filter) ([]marketplace.Job, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.JobModel{}).Where("assigned_org_id = ?", operatorOrgID),
		filter,
	)
	return r.findJobs(query)
}

// CountByBuyer counts jobs posted by a buyer organization
func (r *GormJobRepository) CountByBuyer(ctx context.Context, buyerOrgID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.JobModel{}).
		Where("buyer_org_id = ?", buyerOrgID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountOpen counts jobs in OPEN status
func (r *GormJobRepository) CountOpen(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.JobModel{}).
		Where("status = ?", marketplace.JobStatusOpen).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a job
func (r *GormJobRepository) Save(ctx context.Context, job *marketplace.Job) error {
	model := models.JobModelFromDomain(job)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormJobRepository) SaveWithLock(ctx context.Context, job *marketplace.Job) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		if err := tx.Model(&models.JobModel{}).
			Where("id = ?", job.ID).
			Select("version").
			Scan(&currentVersion).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if currentVersion != job.Version {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The job has been modified by another user")
		}

		job.Version++
		job.UpdatedAt = time.Now()

		result := tx.Model(&models.JobModel{}).
			Where("id = ? AND version = ?", job.ID, currentVersion).
			Updates(map[string]interface{}{
				"service_type":      job.ServiceType,
				"crop_type":         job.CropType,
				"terrain":           job.Terrain,
				"date_from":         job.DateFrom,
				"date_to":           job.DateTo,
				"area_hectares":     job.AreaHectares,
				"latitude":          job.Latitude,
				"longitude":         job.Longitude,
				"window_start_hour": job.WindowStartHour,
				"window_end_hour":   job.WindowEndHour,
				"notes":             job.Notes,
				"status":            job.Status,
				"assigned_offer_id": job.AssignedOfferID,
				"assigned_org_id":   job.AssignedOrgID,
				"cancel_reason":     job.CancelReason,
				"completed_by":      job.CompletedBy,
				"completed_by_role": job.CompletedByRole,
				"assigned_at":       job.AssignedAt,
				"started_at":        job.StartedAt,
				"completed_at":      job.CompletedAt,
				"cancelled_at":      job.CancelledAt,
				"version":           job.Version,
				"updated_at":        job.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The job has been modified by another user")
		}
		return nil
	})
}

func (r *GormJobRepository) findJobs(query *gorm.DB) ([]marketplace.Job, error) {
	var jobModels []models.JobModel
	if err := query.Find(&jobModels).Error; err != nil {
		return nil, err
	}
	jobs := make([]marketplace.Job, len(jobModels))
	for i := range jobModels {
		jobs[i] = *jobModels[i].ToDomain()
	}
	return jobs, nil
}

// applyFilter applies filter options to the query
func (r *GormJobRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

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

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormJobRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("crop_type ILIKE ? OR notes ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "statuses":
			if statuses, ok := value.([]string); ok && len(statuses) > 0 {
				query = query.Where("status IN ?", statuses)
			}
		case "service_type":
			query = query.Where("service_type = ?", value)
		case "terrain":
			query = query.Where("terrain = ?", value)
		case "date_from":
			if t, ok := value.(time.Time); ok {
				query = query.Where("date_to >= ?", t)
			}
		case "date_to":
			if t, ok := value.(time.Time); ok {
				query = query.Where("date_from <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormJobRepository implements JobRepository
var _ marketplace.JobRepository = (*GormJobRepository)(nil)

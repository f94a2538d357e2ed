package persistence

import (
	"context"
	"errors"

	"github.com/agrilink/backend/internal/domain/marketplace"
	"github.com/agrilink/backend/internal/domain/shared"
	"github.com/agrilink/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormServiceConfigurationRepository implements
// marketplace.ServiceConfigurationRepository using GORM
type GormServiceConfigurationRepository struct {
	db *gorm.DB
}

// NewGormServiceConfigurationRepository creates a new GormServiceConfigurationRepository
func NewGormServiceConfigurationRepository(db *gorm.DB) *GormServiceConfigurationRepository {
	return &GormServiceConfigurationRepository{db: db}
}

// FindByOrg finds the configuration for an operator organization
func (r *GormServiceConfigurationRepository) FindByOrg(ctx context.Context, orgID uuid.UUID) (*marketplace.ServiceConfiguration, error) {
	var model models.ServiceConfigurationModel
	if err := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a configuration (one per organization)
func (r *GormServiceConfigurationRepository) Save(ctx context.Context, cfg *marketplace.ServiceConfiguration) error {
	model := models.ServiceConfigurationModelFromDomain(cfg)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormServiceConfigurationRepository implements ServiceConfigurationRepository
var _ marketplace.ServiceConfigurationRepository = (*GormServiceConfigurationRepository)(nil)

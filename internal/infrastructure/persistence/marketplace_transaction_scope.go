package persistence

import (
	"context"

	appmarketplace "github.com/agrilink/backend/internal/application/marketplace"
	"github.com/agrilink/backend/internal/domain/marketplace"
	"gorm.io/gorm"
)

// GormTransactionScope implements the marketplace transaction scope using
// GORM transactions. Repositories handed to the callback share the same
// underlying transaction, so row locks taken via FindByIDForUpdate hold
// until commit or rollback.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appmarketplace.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides repositories bound to one transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) JobRepo() marketplace.JobRepository {
	return NewGormJobRepository(r.tx)
}

func (r *gormTransactionalRepositories) OfferRepo() marketplace.OfferRepository {
	return NewGormOfferRepository(r.tx)
}

// Ensure interfaces are implemented
var (
	_ appmarketplace.TransactionScope          = (*GormTransactionScope)(nil)
	_ appmarketplace.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)

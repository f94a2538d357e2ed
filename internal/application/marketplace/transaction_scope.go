package marketplace

import (
	"context"

	"github.com/agrilink/backend/internal/domain/marketplace"
)

// TransactionScope provides transactional access to marketplace repositories.
// When a function is executed within a transaction scope, all repository
// operations will be part of the same database transaction and will be
// committed or rolled back atomically.
//
// The accept and cancel paths depend on this: accepting an offer mutates the
// offer, its pending siblings, and the job in one unit, re-reading each row
// with a lock inside the transaction to close the check-then-act race.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all marketplace repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// JobRepo returns the job repository scoped to the current transaction
	JobRepo() marketplace.JobRepository
	// OfferRepo returns the offer repository scoped to the current transaction
	OfferRepo() marketplace.OfferRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support is
// not required.
type NoOpTransactionScope struct {
	jobRepo   marketplace.JobRepository
	offerRepo marketplace.OfferRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(jobRepo marketplace.JobRepository, offerRepo marketplace.OfferRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		jobRepo:   jobRepo,
		offerRepo: offerRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// JobRepo returns the job repository.
func (s *NoOpTransactionScope) JobRepo() marketplace.JobRepository {
	return s.jobRepo
}

// OfferRepo returns the offer repository.
func (s *NoOpTransactionScope) OfferRepo() marketplace.OfferRepository {
	return s.offerRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)

package marketplace

import (
	"time"

	"github.com/agrilink/backend/internal/domain/shared"
	"github.com/agrilink/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OfferStatus represents the status of an offer
type OfferStatus string

const (
	OfferStatusPending   OfferStatus = "PENDING"
	OfferStatusAccepted  OfferStatus = "ACCEPTED"
	OfferStatusRejected  OfferStatus = "REJECTED"
	OfferStatusWithdrawn OfferStatus = "WITHDRAWN"
	OfferStatusExpired   OfferStatus = "EXPIRED"
)

// IsValid checks if the status is a valid OfferStatus
func (s OfferStatus) IsValid() bool {
	switch s {
	case OfferStatusPending, OfferStatusAccepted, OfferStatusRejected, OfferStatusWithdrawn, OfferStatusExpired:
		return true
	}
	return false
}

// String returns the string representation of OfferStatus
func (s OfferStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status admits no further operator or buyer
// offer actions. ACCEPTED still leaves one system transition: the cascade to
// REJECTED when the buyer cancels the assigned job (see RejectAccepted).
func (s OfferStatus) IsTerminal() bool {
	return s != OfferStatusPending
}

// CanTransitionTo checks if the status can transition to the target status
// through a regular offer action. The buyer-cancel cascade out of ACCEPTED
// goes through RejectAccepted instead.
func (s OfferStatus) CanTransitionTo(target OfferStatus) bool {
	if s != OfferStatusPending {
		return false
	}
	switch target {
	case OfferStatusAccepted, OfferStatusRejected, OfferStatusWithdrawn, OfferStatusExpired:
		return true
	}
	return false
}

// Offer represents one operator organization's proposal to fulfill a job.
// JobID and OperatorOrgID are immutable after creation.
type Offer struct {
	shared.BaseAggregateRoot
	JobID         uuid.UUID
	OperatorOrgID uuid.UUID
	Amount        decimal.Decimal
	Currency      valueobject.Currency
	ProposedStart time.Time
	ProposedEnd   time.Time
	Note          string
	Status        OfferStatus
	RejectReason  string
	AcceptedAt    *time.Time
	RejectedAt    *time.Time
	WithdrawnAt   *time.Time
	ExpiredAt     *time.Time
}

// NewOffer creates a new offer in PENDING status.
// The job must be OPEN at submission time; that check belongs to the
// application service, which re-reads the job inside the transaction.
func NewOffer(jobID, operatorOrgID uuid.UUID, amount valueobject.Money, proposedStart, proposedEnd time.Time, note string) (*Offer, error) {
	if jobID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_JOB", "Job ID cannot be empty")
	}
	if operatorOrgID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OPERATOR", "Operator organization ID cannot be empty")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Offer amount must be positive")
	}
	if proposedEnd.Before(proposedStart) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "Proposed end cannot be before proposed start")
	}

	offer := &Offer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		JobID:             jobID,
		OperatorOrgID:     operatorOrgID,
		Amount:            amount.Amount(),
		Currency:          amount.Currency(),
		ProposedStart:     proposedStart,
		ProposedEnd:       proposedEnd,
		Note:              note,
		Status:            OfferStatusPending,
	}

	offer.AddDomainEvent(NewOfferSubmittedEvent(offer))

	return offer, nil
}

// AmountMoney returns the offer amount as a Money value object
func (o *Offer) AmountMoney() valueobject.Money {
	money, err := valueobject.NewMoney(o.Amount, o.Currency)
	if err != nil {
		return valueobject.NewMoneyEUR(o.Amount)
	}
	return money
}

// Accept transitions the offer from PENDING to ACCEPTED.
// The surrounding transaction must also reject PENDING siblings and assign
// the job; partial application would leave the marketplace inconsistent.
func (o *Offer) Accept() error {
	if !o.Status.CanTransitionTo(OfferStatusAccepted) {
		return shared.NewStateConflictError("offer", OfferStatusPending.String(), o.Status.String())
	}

	now := time.Now()
	o.Status = OfferStatusAccepted
	o.AcceptedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOfferAcceptedEvent(o))

	return nil
}

// Reject transitions the offer from PENDING to REJECTED.
// The reason is optional; cascading rejections record why the offer lost.
func (o *Offer) Reject(reason string) error {
	if !o.Status.CanTransitionTo(OfferStatusRejected) {
		return shared.NewStateConflictError("offer", OfferStatusPending.String(), o.Status.String())
	}

	now := time.Now()
	o.Status = OfferStatusRejected
	o.RejectReason = reason
	o.RejectedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOfferRejectedEvent(o))

	return nil
}

// RejectAccepted moves an ACCEPTED offer to REJECTED when the buyer cancels
// the assigned job. This is the only transition out of ACCEPTED; the job
// cancellation and this rejection must commit in the same transaction.
func (o *Offer) RejectAccepted(reason string) error {
	if o.Status != OfferStatusAccepted {
		return shared.NewStateConflictError("offer", OfferStatusAccepted.String(), o.Status.String())
	}

	now := time.Now()
	o.Status = OfferStatusRejected
	o.RejectReason = reason
	o.RejectedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOfferRejectedEvent(o))

	return nil
}

// Withdraw transitions the offer from PENDING to WITHDRAWN
func (o *Offer) Withdraw() error {
	if !o.Status.CanTransitionTo(OfferStatusWithdrawn) {
		return shared.NewStateConflictError("offer", OfferStatusPending.String(), o.Status.String())
	}

	now := time.Now()
	o.Status = OfferStatusWithdrawn
	o.WithdrawnAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOfferWithdrawnEvent(o))

	return nil
}

// Expire transitions the offer from PENDING to EXPIRED.
// Called by the background sweep for offers past their pending TTL.
func (o *Offer) Expire() error {
	if !o.Status.CanTransitionTo(OfferStatusExpired) {
		return shared.NewStateConflictError("offer", OfferStatusPending.String(), o.Status.String())
	}

	now := time.Now()
	o.Status = OfferStatusExpired
	o.ExpiredAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOfferExpiredEvent(o))

	return nil
}

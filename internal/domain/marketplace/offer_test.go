package marketplace

import (
	"testing"
	"time"

	"github.com/agrilink/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func createTestOffer(t *testing.T) *Offer {
	jobID := uuid.New()
	operatorOrgID := uuid.New()
	start := time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)
	offer, err := NewOffer(jobID, operatorOrgID, valueobject.NewMoneyEURFromFloat(480.00), start, end, "two drones available")
	require.NoError(t, err)
	return offer
}

// ============================================
// OfferStatus Tests
// ============================================

func TestOfferStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  OfferStatus
		isValid bool
	}{
		{OfferStatusPending, true},
		{OfferStatusAccepted, true},
		{OfferStatusRejected, true},
		{OfferStatusWithdrawn, true},
		{OfferStatusExpired, true},
		{OfferStatus("INVALID"), false},
		{OfferStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestOfferStatus_CanTransitionTo(t *testing.T) {
	terminal := []OfferStatus{OfferStatusAccepted, OfferStatusRejected, OfferStatusWithdrawn, OfferStatusExpired}

	for _, target := range terminal {
		t.Run("PENDING->"+string(target), func(t *testing.T) {
			assert.True(t, OfferStatusPending.CanTransitionTo(target))
		})
	}

	t.Run("PENDING->PENDING", func(t *testing.T) {
		assert.False(t, OfferStatusPending.CanTransitionTo(OfferStatusPending))
	})

	// All terminal states admit nothing
	for _, from := range terminal {
		for _, to := range append(terminal, OfferStatusPending) {
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				assert.False(t, from.CanTransitionTo(to))
			})
		}
	}
}

func TestOfferStatus_IsTerminal(t *testing.T) {
	assert.False(t, OfferStatusPending.IsTerminal())
	assert.True(t, OfferStatusAccepted.IsTerminal())
	assert.True(t, OfferStatusRejected.IsTerminal())
	assert.True(t, OfferStatusWithdrawn.IsTerminal())
	assert.True(t, OfferStatusExpired.IsTerminal())
}

// ============================================
// NewOffer Tests
// ============================================

func TestNewOffer(t *testing.T) {
	jobID := uuid.New()
	operatorOrgID := uuid.New()
	start := time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)
	amount := valueobject.NewMoneyEURFromFloat(480.00)

	t.Run("creates offer with valid inputs", func(t *testing.T) {
		offer, err := NewOffer(jobID, operatorOrgID, amount, start, end, "note")
		require.NoError(t, err)
		require.NotNil(t, offer)

		assert.Equal(t, jobID, offer.JobID)
		assert.Equal(t, operatorOrgID, offer.OperatorOrgID)
		assert.Equal(t, OfferStatusPending, offer.Status)
		assert.Equal(t, valueobject.EUR, offer.Currency)
		assert.True(t, offer.Amount.Equal(amount.Amount()))
		assert.Equal(t, 1, offer.GetVersion())

		events := offer.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOfferSubmitted, events[0].EventType())
	})

	t.Run("fails with empty job", func(t *testing.T) {
		_, err := NewOffer(uuid.Nil, operatorOrgID, amount, start, end, "")
		assert.Error(t, err)
	})

	t.Run("fails with empty operator org", func(t *testing.T) {
		_, err := NewOffer(jobID, uuid.Nil, amount, start, end, "")
		assert.Error(t, err)
	})

	t.Run("fails with non-positive amount", func(t *testing.T) {
		_, err := NewOffer(jobID, operatorOrgID, valueobject.NewMoneyEURFromFloat(0), start, end, "")
		assert.Error(t, err)

		_, err = NewOffer(jobID, operatorOrgID, valueobject.NewMoneyEURFromFloat(-10), start, end, "")
		assert.Error(t, err)
	})

	t.Run("fails with inverted window", func(t *testing.T) {
		_, err := NewOffer(jobID, operatorOrgID, amount, end, start, "")
		assert.Error(t, err)
	})
}

// ============================================
// Offer Transition Tests
// ============================================

func TestOffer_Accept(t *testing.T) {
	t.Run("accepts pending offer", func(t *testing.T) {
		offer := createTestOffer(t)
		offer.ClearDomainEvents()

		require.NoError(t, offer.Accept())
		assert.Equal(t, OfferStatusAccepted, offer.Status)
		assert.NotNil(t, offer.AcceptedAt)

		events := offer.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOfferAccepted, events[0].EventType())
	})

	t.Run("fails when already accepted", func(t *testing.T) {
		offer := createTestOffer(t)
		require.NoError(t, offer.Accept())

		err := offer.Accept()
		assertStateConflict(t, err, "PENDING", "ACCEPTED")
	})
}

func TestOffer_Reject(t *testing.T) {
	t.Run("rejects pending offer with reason", func(t *testing.T) {
		offer := createTestOffer(t)
		offer.ClearDomainEvents()

		require.NoError(t, offer.Reject("another offer was accepted"))
		assert.Equal(t, OfferStatusRejected, offer.Status)
		assert.Equal(t, "another offer was accepted", offer.RejectReason)
		assert.NotNil(t, offer.RejectedAt)

		events := offer.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOfferRejected, events[0].EventType())
	})

	t.Run("reason is optional", func(t *testing.T) {
		offer := createTestOffer(t)
		require.NoError(t, offer.Reject(""))
	})

	t.Run("rejecting twice fails, never silently succeeds", func(t *testing.T) {
		offer := createTestOffer(t)
		require.NoError(t, offer.Reject("first"))

		err := offer.Reject("second")
		assertStateConflict(t, err, "PENDING", "REJECTED")
	})
}

func TestOffer_RejectAccepted(t *testing.T) {
	t.Run("rejects accepted offer when buyer cancels the job", func(t *testing.T) {
		offer := createTestOffer(t)
		require.NoError(t, offer.Accept())
		offer.ClearDomainEvents()

		require.NoError(t, offer.RejectAccepted("job cancelled by buyer"))
		assert.Equal(t, OfferStatusRejected, offer.Status)
		assert.Equal(t, "job cancelled by buyer", offer.RejectReason)
		assert.NotNil(t, offer.RejectedAt)

		events := offer.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOfferRejected, events[0].EventType())
	})

	t.Run("fails on pending offer", func(t *testing.T) {
		offer := createTestOffer(t)

		err := offer.RejectAccepted("job cancelled by buyer")
		assertStateConflict(t, err, "ACCEPTED", "PENDING")
	})

	t.Run("fails on rejected offer", func(t *testing.T) {
		offer := createTestOffer(t)
		require.NoError(t, offer.Reject("another offer was accepted"))

		err := offer.RejectAccepted("job cancelled by buyer")
		assertStateConflict(t, err, "ACCEPTED", "REJECTED")
	})
}

func TestOffer_Withdraw(t *testing.T) {
	t.Run("withdraws pending offer", func(t *testing.T) {
		offer := createTestOffer(t)
		offer.ClearDomainEvents()

		require.NoError(t, offer.Withdraw())
		assert.Equal(t, OfferStatusWithdrawn, offer.Status)
		assert.NotNil(t, offer.WithdrawnAt)

		events := offer.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOfferWithdrawn, events[0].EventType())
	})

	t.Run("fails after rejection", func(t *testing.T) {
		offer := createTestOffer(t)
		require.NoError(t, offer.Reject(""))

		err := offer.Withdraw()
		assertStateConflict(t, err, "PENDING", "REJECTED")
	})
}

func TestOffer_Expire(t *testing.T) {
	t.Run("expires pending offer", func(t *testing.T) {
		offer := createTestOffer(t)
		offer.ClearDomainEvents()

		require.NoError(t, offer.Expire())
		assert.Equal(t, OfferStatusExpired, offer.Status)
		assert.NotNil(t, offer.ExpiredAt)

		events := offer.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOfferExpired, events[0].EventType())
	})

	t.Run("fails on accepted offer", func(t *testing.T) {
		offer := createTestOffer(t)
		require.NoError(t, offer.Accept())

		err := offer.Expire()
		assertStateConflict(t, err, "PENDING", "ACCEPTED")
	})
}

func TestOffer_AmountMoney(t *testing.T) {
	offer := createTestOffer(t)
	money := offer.AmountMoney()
	assert.Equal(t, valueobject.EUR, money.Currency())
	assert.True(t, money.Amount().Equal(offer.Amount))
}

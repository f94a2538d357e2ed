package notification

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	orgID := uuid.New()

	t.Run("creates unread notification", func(t *testing.T) {
		n, err := New(orgID, KindOfferAccepted, "Your offer was accepted", "body")
		require.NoError(t, err)

		assert.Equal(t, orgID, n.RecipientOrgID)
		assert.Equal(t, KindOfferAccepted, n.Kind)
		assert.False(t, n.IsRead())
		assert.Nil(t, n.JobID)
		assert.Nil(t, n.OfferID)
	})

	t.Run("links job and offer references", func(t *testing.T) {
		jobID, offerID := uuid.New(), uuid.New()
		n, err := New(orgID, KindOfferAccepted, "subject", "")
		require.NoError(t, err)

		n.WithJob(jobID).WithOffer(offerID)
		assert.Equal(t, jobID, *n.JobID)
		assert.Equal(t, offerID, *n.OfferID)
	})

	t.Run("fails with empty recipient", func(t *testing.T) {
		_, err := New(uuid.Nil, KindOfferAccepted, "subject", "")
		assert.Error(t, err)
	})

	t.Run("fails with unknown kind", func(t *testing.T) {
		_, err := New(orgID, Kind("PIGEON"), "subject", "")
		assert.Error(t, err)
	})

	t.Run("fails with empty subject", func(t *testing.T) {
		_, err := New(orgID, KindOfferAccepted, "", "")
		assert.Error(t, err)
	})
}

func TestNotification_MarkRead(t *testing.T) {
	n, err := New(uuid.New(), KindJobCancelled, "Job cancelled", "")
	require.NoError(t, err)

	n.MarkRead()
	require.True(t, n.IsRead())
	first := *n.ReadAt

	// Marking again keeps the original timestamp
	n.MarkRead()
	assert.Equal(t, first, *n.ReadAt)
}

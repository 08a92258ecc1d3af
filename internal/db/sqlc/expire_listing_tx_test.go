package db

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Shaloh69/autohub-be/internal/listing"
)

func TestExpireTransition(t *testing.T) {
	l := storedListing()

	params, ok, err := expireTransition(l)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, l.ID, params.ID)
	require.Equal(t, listing.StatusExpired, params.Status)
	require.Equal(t, listing.ApprovalApproved, params.ApprovalStatus)
}

// A listing that left APPROVED after the expiry task was scheduled must be
// left untouched, whatever state won the race.
func TestExpireTransitionLeavesNonApprovedAlone(t *testing.T) {
	for _, status := range []listing.Status{
		listing.StatusSold,
		listing.StatusRemoved,
		listing.StatusReserved,
		listing.StatusSuspended,
		listing.StatusPending,
		listing.StatusExpired,
	} {
		l := storedListing()
		l.Status = status

		params, ok, err := expireTransition(l)
		require.NoError(t, err, "status %s", status)
		require.False(t, ok, "status %s must not expire", status)
		require.Zero(t, params, "status %s must produce no write", status)
	}
}

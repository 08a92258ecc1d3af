package quota

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanCreateListing(t *testing.T) {
	require.NoError(t, FreeTier.CanCreateListing(0))
	require.NoError(t, FreeTier.CanCreateListing(2))

	err := FreeTier.CanCreateListing(3)
	require.Error(t, err)

	var exceeded *ExceededError
	require.True(t, errors.As(err, &exceeded))
	require.EqualValues(t, 3, exceeded.Used)
	require.EqualValues(t, 3, exceeded.Limit)

	// Already over the cap, for example after a plan downgrade.
	require.Error(t, FreeTier.CanCreateListing(10))
}

func TestUnlimitedTier(t *testing.T) {
	unlimited := Limits{MaxActiveListings: UnlimitedListings}
	require.True(t, unlimited.Unlimited())

	require.NoError(t, unlimited.CanCreateListing(0))
	require.NoError(t, unlimited.CanCreateListing(1_000_000))
	require.EqualValues(t, 0, unlimited.ExcessListings(1_000_000))
}

func TestExcessListings(t *testing.T) {
	tier := Limits{MaxActiveListings: 5}

	require.EqualValues(t, 0, tier.ExcessListings(0))
	require.EqualValues(t, 0, tier.ExcessListings(5))
	require.EqualValues(t, 1, tier.ExcessListings(6))
	require.EqualValues(t, 7, tier.ExcessListings(12))
}

func TestFreeTierDefaults(t *testing.T) {
	require.EqualValues(t, 3, FreeTier.MaxActiveListings)
	require.EqualValues(t, 5, FreeTier.MaxImagesPerListing)
	require.EqualValues(t, 0, FreeTier.FeaturedSlots)
	require.EqualValues(t, 0, FreeTier.BoostCredits)
	require.EqualValues(t, 30, FreeTier.ListingDurationDays)
	require.False(t, FreeTier.Unlimited())
}

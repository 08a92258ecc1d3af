// Package quota maps a seller's subscription tier to numeric limits and
// decides listing admission. It is pure: the caller supplies the current
// counts, the policy never reads storage.
package quota

import (
	"fmt"
)

// UnlimitedListings is the sentinel plan value meaning "no listing cap".
const UnlimitedListings = -1

// Limits are the numeric entitlements of one subscription tier.
type Limits struct {
	MaxActiveListings   int32
	MaxImagesPerListing int32
	FeaturedSlots       int32
	BoostCredits        int32
	ListingDurationDays int32
}

// FreeTier is the fallback applied when a seller has no active subscription.
// It is a constant, not a persisted plan row.
var FreeTier = Limits{
	MaxActiveListings:   3,
	MaxImagesPerListing: 5,
	FeaturedSlots:       0,
	BoostCredits:        0,
	ListingDurationDays: 30,
}

// ExceededError is returned when an admission check fails. The listing is not
// created.
type ExceededError struct {
	Used  int32
	Limit int32
}

func (e *ExceededError) Error() string {
	return fmt.Sprintf("listing quota exceeded: %d of %d slots in use", e.Used, e.Limit)
}

// Unlimited reports whether the tier has no listing cap.
func (l Limits) Unlimited() bool {
	return l.MaxActiveListings == UnlimitedListings
}

// CanCreateListing checks whether a seller with `used` quota-consuming
// listings may occupy one more slot. This check must be repeated inside the
// same transaction as the insert; two concurrent creations racing past a
// read-only check could otherwise jointly overshoot the cap.
func (l Limits) CanCreateListing(used int32) error {
	if l.Unlimited() {
		return nil
	}
	if used >= l.MaxActiveListings {
		return &ExceededError{Used: used, Limit: l.MaxActiveListings}
	}
	return nil
}

// ExcessListings returns how many of a seller's `active` approved listings no
// longer fit under the tier. Used by the downgrade sweep: that many of the
// seller's oldest approved listings are suspended, so the newest inventory
// keeps its visibility.
func (l Limits) ExcessListings(active int32) int32 {
	if l.Unlimited() || active <= l.MaxActiveListings {
		return 0
	}
	return active - l.MaxActiveListings
}

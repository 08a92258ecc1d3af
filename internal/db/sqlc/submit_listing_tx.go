package db

import (
	"context"

	"github.com/Shaloh69/autohub-be/internal/listing"
	"github.com/Shaloh69/autohub-be/internal/quota"
)

type SubmitListingTxParams struct {
	ListingID int64
	SellerID  string
	Limits    quota.Limits
}

// SubmitListingTx moves a draft (or rejected) listing into the moderation
// queue. The listing starts consuming quota here, so this is the
// authoritative, race-safe admission check: count and transition run under
// the seller's advisory lock.
func (store *SQLStore) SubmitListingTx(ctx context.Context, arg SubmitListingTxParams) (Listing, error) {
	var submitted Listing

	err := store.ExecTx(ctx, func(qTx *Queries) error {
		if err := qTx.LockSellerQuota(ctx, arg.SellerID); err != nil {
			return err
		}

		l, err := qTx.GetListingForUpdate(ctx, arg.ListingID)
		if err != nil {
			return err
		}
		if l.SellerID != arg.SellerID {
			return ErrListingNotOwned
		}

		nextApproval, err := listing.Transition(l.Status, listing.StatusPending, l.ApprovalStatus)
		if err != nil {
			return err
		}

		// The draft itself is not counted yet; it claims its slot with this
		// transition.
		used, err := qTx.CountQuotaConsumingListings(ctx, arg.SellerID)
		if err != nil {
			return err
		}
		if err = arg.Limits.CanCreateListing(int32(used)); err != nil {
			return err
		}

		submitted, err = qTx.UpdateListingLifecycle(ctx, UpdateListingLifecycleParams{
			ID:             l.ID,
			Status:         listing.StatusPending,
			ApprovalStatus: nextApproval,
		})
		return err
	})

	return submitted, err
}

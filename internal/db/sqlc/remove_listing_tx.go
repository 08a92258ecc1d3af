package db

import (
	"context"

	"github.com/Shaloh69/autohub-be/internal/listing"
)

type RemoveListingTxParams struct {
	ListingID int64
	SellerID  string
}

// RemoveListingTx soft-deletes a listing. The row survives for history but
// the state is terminal; re-listing a removed car means a fresh listing.
func (store *SQLStore) RemoveListingTx(ctx context.Context, arg RemoveListingTxParams) (Listing, error) {
	var removed Listing

	err := store.ExecTx(ctx, func(qTx *Queries) error {
		l, err := qTx.GetListingForUpdate(ctx, arg.ListingID)
		if err != nil {
			return err
		}
		if l.SellerID != arg.SellerID {
			return ErrListingNotOwned
		}

		nextApproval, err := listing.Transition(l.Status, listing.StatusRemoved, l.ApprovalStatus)
		if err != nil {
			return err
		}

		removed, err = qTx.UpdateListingLifecycle(ctx, UpdateListingLifecycleParams{
			ID:             l.ID,
			Status:         listing.StatusRemoved,
			ApprovalStatus: nextApproval,
		})
		return err
	})

	return removed, err
}

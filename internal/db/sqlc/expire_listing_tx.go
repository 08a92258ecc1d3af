package db

import (
	"context"

	"github.com/Shaloh69/autohub-be/internal/listing"
)

type ExpireListingTxResult struct {
	Listing Listing `json:"listing"`

	// Expired is false when the listing left APPROVED between scheduling and
	// execution, in which case Listing holds the row as found.
	Expired bool `json:"expired"`
}

// ExpireListingTx closes a listing's publication window. The row lock makes
// the status check and the write one unit, so a concurrent sale or removal
// can never be overwritten to expired.
func (store *SQLStore) ExpireListingTx(ctx context.Context, listingID int64) (ExpireListingTxResult, error) {
	var result ExpireListingTxResult

	err := store.ExecTx(ctx, func(qTx *Queries) error {
		l, err := qTx.GetListingForUpdate(ctx, listingID)
		if err != nil {
			return err
		}

		params, ok, err := expireTransition(l)
		if err != nil {
			return err
		}
		if !ok {
			result.Listing = l
			return nil
		}

		result.Listing, err = qTx.UpdateListingLifecycle(ctx, params)
		result.Expired = err == nil
		return err
	})

	return result, err
}

// expireTransition decides, from the locked row, whether the listing still
// expires. Any status other than APPROVED means another transition won the
// race and the row must be left alone.
func expireTransition(l Listing) (UpdateListingLifecycleParams, bool, error) {
	if l.Status != listing.StatusApproved {
		return UpdateListingLifecycleParams{}, false, nil
	}

	nextApproval, err := listing.Transition(l.Status, listing.StatusExpired, l.ApprovalStatus)
	if err != nil {
		return UpdateListingLifecycleParams{}, false, err
	}

	return UpdateListingLifecycleParams{
		ID:             l.ID,
		Status:         listing.StatusExpired,
		ApprovalStatus: nextApproval,
	}, true, nil
}

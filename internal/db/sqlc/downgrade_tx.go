package db

import (
	"context"

	"github.com/Shaloh69/autohub-be/internal/listing"
	"github.com/Shaloh69/autohub-be/internal/quota"
)

type DowngradeSellerTxParams struct {
	SellerID string

	// Limits of the tier the seller lands on after the lapse, usually the
	// free tier.
	Limits quota.Limits
}

type DowngradeSellerTxResult struct {
	// Suspended holds the listings that lost visibility, oldest first.
	Suspended []Listing `json:"suspended"`
}

// DowngradeSellerTx enforces a lower quota after a subscription lapse. The
// newest approved listings keep their slots; the oldest beyond the new cap
// are suspended, not removed, so an upgrade can bring them straight back.
func (store *SQLStore) DowngradeSellerTx(ctx context.Context, arg DowngradeSellerTxParams) (DowngradeSellerTxResult, error) {
	var result DowngradeSellerTxResult

	err := store.ExecTx(ctx, func(qTx *Queries) error {
		if err := qTx.LockSellerQuota(ctx, arg.SellerID); err != nil {
			return err
		}

		active, err := qTx.CountApprovedListings(ctx, arg.SellerID)
		if err != nil {
			return err
		}

		excess := arg.Limits.ExcessListings(int32(active))
		if excess == 0 {
			return nil
		}

		victims, err := qTx.ListApprovedListingsBeyondLimit(ctx, arg.SellerID, arg.Limits.MaxActiveListings)
		if err != nil {
			return err
		}

		ids := make([]int64, 0, len(victims))
		for _, v := range victims {
			// Every candidate is approved, so the edge always exists; the
			// check keeps the joint invariant authoritative.
			if _, err := listing.Transition(v.Status, listing.StatusSuspended, v.ApprovalStatus); err != nil {
				return err
			}
			ids = append(ids, v.ID)
		}

		result.Suspended, err = qTx.SuspendListings(ctx, ids)
		return err
	})

	return result, err
}

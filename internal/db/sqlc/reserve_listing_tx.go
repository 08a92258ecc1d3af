package db

import (
	"context"

	"github.com/Shaloh69/autohub-be/internal/listing"
)

type ReserveListingTxParams struct {
	ListingID int64
	SellerID  string

	// Release moves a reserved listing back to approved instead of into the
	// reservation.
	Release bool
}

// ReserveListingTx toggles the reservation hold on an approved listing. A
// reserved listing keeps its quota slot and its approval but disappears from
// search until released or sold.
func (store *SQLStore) ReserveListingTx(ctx context.Context, arg ReserveListingTxParams) (Listing, error) {
	var reserved Listing

	target := listing.StatusReserved
	if arg.Release {
		target = listing.StatusApproved
	}

	err := store.ExecTx(ctx, func(qTx *Queries) error {
		l, err := qTx.GetListingForUpdate(ctx, arg.ListingID)
		if err != nil {
			return err
		}
		if l.SellerID != arg.SellerID {
			return ErrListingNotOwned
		}

		nextApproval, err := listing.Transition(l.Status, target, l.ApprovalStatus)
		if err != nil {
			return err
		}

		reserved, err = qTx.UpdateListingLifecycle(ctx, UpdateListingLifecycleParams{
			ID:             l.ID,
			Status:         target,
			ApprovalStatus: nextApproval,
		})
		return err
	})

	return reserved, err
}

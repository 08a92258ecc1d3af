package db

import (
	"context"

	"github.com/Shaloh69/autohub-be/internal/quota"
)

type CreateListingTxParams struct {
	CreateListingParams
	// Limits are the seller's current tier entitlements, resolved by the
	// caller from the active subscription (or the free-tier fallback).
	Limits quota.Limits
}

// CreateListingTx admits and creates a listing in one critical section. The
// quota count runs under the seller's advisory lock inside the same
// transaction as the insert, so concurrent creations for one seller cannot
// jointly overshoot the plan limit.
func (store *SQLStore) CreateListingTx(ctx context.Context, arg CreateListingTxParams) (Listing, error) {
	var created Listing

	err := store.ExecTx(ctx, func(qTx *Queries) error {
		if err := qTx.LockSellerQuota(ctx, arg.SellerID); err != nil {
			return err
		}

		used, err := qTx.CountQuotaConsumingListings(ctx, arg.SellerID)
		if err != nil {
			return err
		}
		if err = arg.Limits.CanCreateListing(int32(used)); err != nil {
			return err
		}

		created, err = qTx.CreateListing(ctx, arg.CreateListingParams)
		return err
	})

	return created, err
}

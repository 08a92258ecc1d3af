package db

import (
	"context"
)

type BanSellerTxParams struct {
	SellerID string
	// Reason is recorded in the moderation feed, not on the user row.
	Reason string
}

type BanSellerTxResult struct {
	User      User      `json:"user"`
	Suspended []Listing `json:"suspended"`
}

// BanSellerTx bans a seller and pulls all of their approved listings out of
// public view in one transaction. The listings are suspended rather than
// removed so a lifted ban can restore them.
func (store *SQLStore) BanSellerTx(ctx context.Context, arg BanSellerTxParams) (BanSellerTxResult, error) {
	var result BanSellerTxResult

	err := store.ExecTx(ctx, func(qTx *Queries) error {
		var err error
		result.User, err = qTx.BanUser(ctx, arg.SellerID)
		if err != nil {
			return err
		}

		result.Suspended, err = qTx.SuspendApprovedListingsBySeller(ctx, arg.SellerID)
		return err
	})

	return result, err
}

package db

import (
	"context"
	"time"

	"github.com/Shaloh69/autohub-be/internal/listing"
)

type MarkListingSoldTxParams struct {
	ListingID int64
	SellerID  string

	// BuyerID is optional. Off-platform sales are recorded without one.
	BuyerID *string

	// Code for the transaction row, generated by the caller.
	Code string
}

type MarkListingSoldTxResult struct {
	Listing     Listing     `json:"listing"`
	Transaction Transaction `json:"transaction"`
}

// MarkListingSoldTx closes out a listing and records the sale. The sale price
// is the listing price at the moment of closing; the listing row stays
// queryable for the transaction history but leaves search.
func (store *SQLStore) MarkListingSoldTx(ctx context.Context, arg MarkListingSoldTxParams) (MarkListingSoldTxResult, error) {
	var result MarkListingSoldTxResult

	err := store.ExecTx(ctx, func(qTx *Queries) error {
		l, err := qTx.GetListingForUpdate(ctx, arg.ListingID)
		if err != nil {
			return err
		}
		if l.SellerID != arg.SellerID {
			return ErrListingNotOwned
		}

		nextApproval, err := listing.Transition(l.Status, listing.StatusSold, l.ApprovalStatus)
		if err != nil {
			return err
		}

		now := time.Now()
		result.Listing, err = qTx.UpdateListingLifecycle(ctx, UpdateListingLifecycleParams{
			ID:             l.ID,
			Status:         listing.StatusSold,
			ApprovalStatus: nextApproval,
			SoldAt:         &now,
		})
		if err != nil {
			return err
		}

		result.Transaction, err = qTx.CreateTransaction(ctx, CreateTransactionParams{
			Code:      arg.Code,
			ListingID: l.ID,
			SellerID:  l.SellerID,
			BuyerID:   arg.BuyerID,
			Price:     l.Price,
			Currency:  l.Currency,
		})
		return err
	})

	return result, err
}

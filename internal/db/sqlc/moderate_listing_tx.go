package db

import (
	"context"
	"errors"
	"time"

	"github.com/Shaloh69/autohub-be/internal/listing"
)

var ErrEmptyRejectionReason = errors.New("a rejection must carry a reason for the seller")

type ApproveListingTxParams struct {
	ListingID   int64
	ModeratorID string
	Notes       *string

	// DurationDays comes from the seller's plan and fixes the publication
	// window starting at approval time.
	DurationDays int32

	// AfterApprove runs after commit so the expiry task and seller
	// notification never reference a rolled-back row.
	AfterApprove func(l Listing) error
}

// ApproveListingTx publishes a pending listing. The expiry clock starts at
// approval, not at creation.
func (store *SQLStore) ApproveListingTx(ctx context.Context, arg ApproveListingTxParams) (Listing, error) {
	var approved Listing

	err := store.ExecTx(ctx, func(qTx *Queries) error {
		l, err := qTx.GetListingForUpdate(ctx, arg.ListingID)
		if err != nil {
			return err
		}

		nextApproval, err := listing.Transition(l.Status, listing.StatusApproved, l.ApprovalStatus)
		if err != nil {
			return err
		}

		now := time.Now()
		expiresAt := now.AddDate(0, 0, int(arg.DurationDays))

		approved, err = qTx.UpdateListingLifecycle(ctx, UpdateListingLifecycleParams{
			ID:             l.ID,
			Status:         listing.StatusApproved,
			ApprovalStatus: nextApproval,
			ModeratorNotes: arg.Notes,
			ApprovedBy:     &arg.ModeratorID,
			ApprovedAt:     &now,
			ExpiresAt:      &expiresAt,
		})
		return err
	})
	if err != nil {
		return approved, err
	}

	if arg.AfterApprove != nil {
		if err := arg.AfterApprove(approved); err != nil {
			return approved, err
		}
	}

	return approved, nil
}

type RejectListingTxParams struct {
	ListingID   int64
	ModeratorID string
	Reason      string
	Notes       *string
}

// RejectListingTx bounces a pending listing back to its seller. The reason is
// mandatory; a rejection the seller cannot act on is not a rejection.
func (store *SQLStore) RejectListingTx(ctx context.Context, arg RejectListingTxParams) (Listing, error) {
	var rejected Listing

	if arg.Reason == "" {
		return rejected, ErrEmptyRejectionReason
	}

	err := store.ExecTx(ctx, func(qTx *Queries) error {
		l, err := qTx.GetListingForUpdate(ctx, arg.ListingID)
		if err != nil {
			return err
		}

		nextApproval, err := listing.Transition(l.Status, listing.StatusRejected, l.ApprovalStatus)
		if err != nil {
			return err
		}

		rejected, err = qTx.UpdateListingLifecycle(ctx, UpdateListingLifecycleParams{
			ID:             l.ID,
			Status:         listing.StatusRejected,
			ApprovalStatus: nextApproval,
			RejectedReason: &arg.Reason,
			ModeratorNotes: arg.Notes,
		})
		return err
	})

	return rejected, err
}

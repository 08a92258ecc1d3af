package db

import (
	"context"
	"errors"

	"github.com/Shaloh69/autohub-be/internal/listing"
)

var ErrListingNotEditable = errors.New("listing can no longer be edited in its current state")

type UpdateListingTxParams struct {
	SellerID string
	UpdateListingDetailsParams
}

type UpdateListingTxResult struct {
	Listing Listing `json:"listing"`

	// RequiresReapproval is true when a significant field of an approved
	// listing changed and the edit sent it back to the moderation queue. It
	// is a side effect of the edit, not an error, and the caller must
	// surface it.
	RequiresReapproval bool `json:"requires_reapproval"`
}

// editableStatuses are the lifecycle states in which a seller may still change
// listing content. Everything else is either terminal or system-owned.
var editableStatuses = map[listing.Status]bool{
	listing.StatusDraft:    true,
	listing.StatusPending:  true,
	listing.StatusRejected: true,
	listing.StatusApproved: true,
}

// UpdateListingTx applies a partial edit, recomputes the three scores from
// the merged field set, and demotes an approved listing back to pending when
// the edit touched a significant field. Scores and fields land in the same
// UPDATE, the demotion in the same transaction.
func (store *SQLStore) UpdateListingTx(ctx context.Context, arg UpdateListingTxParams) (UpdateListingTxResult, error) {
	var result UpdateListingTxResult

	err := store.ExecTx(ctx, func(qTx *Queries) error {
		l, err := qTx.GetListingForUpdate(ctx, arg.ID)
		if err != nil {
			return err
		}
		if l.SellerID != arg.SellerID {
			return ErrListingNotOwned
		}
		if !editableStatuses[l.Status] {
			return ErrListingNotEditable
		}

		changed := changedFields(l, arg.UpdateListingDetailsParams)
		reapprove := listing.RequiresReapproval(l.Status, changed)

		snap := mergeSnapshot(l, arg.UpdateListingDetailsParams)
		scores := listing.Score(snap)

		details := arg.UpdateListingDetailsParams
		details.QualityScore = scores.Quality
		details.CompletenessScore = scores.Completeness
		details.SearchScore = scores.Search

		updated, err := qTx.UpdateListingDetails(ctx, details)
		if err != nil {
			return err
		}

		if reapprove {
			nextApproval, err := listing.Transition(updated.Status, listing.StatusPending, updated.ApprovalStatus)
			if err != nil {
				return err
			}
			updated, err = qTx.UpdateListingLifecycle(ctx, UpdateListingLifecycleParams{
				ID:             updated.ID,
				Status:         listing.StatusPending,
				ApprovalStatus: nextApproval,
			})
			if err != nil {
				return err
			}
		}

		result = UpdateListingTxResult{Listing: updated, RequiresReapproval: reapprove}
		return nil
	})

	return result, err
}

// changedFields names the fields the edit actually changes. A pointer set to
// the current value is not a change; only real differences can trigger
// re-moderation.
func changedFields(l Listing, p UpdateListingDetailsParams) []string {
	var changed []string

	if p.Title != nil && *p.Title != l.Title {
		changed = append(changed, "title")
	}
	if p.Description != nil && *p.Description != l.Description {
		changed = append(changed, "description")
	}
	if p.Price != nil && *p.Price != l.Price {
		changed = append(changed, "price")
	}
	if p.BrandID != nil && *p.BrandID != l.BrandID {
		changed = append(changed, "brand_id")
	}
	if p.ModelID != nil && *p.ModelID != l.ModelID {
		changed = append(changed, "model_id")
	}
	if p.Year != nil && *p.Year != l.Year {
		changed = append(changed, "year")
	}
	if p.Mileage != nil && (l.Mileage == nil || *p.Mileage != *l.Mileage) {
		changed = append(changed, "mileage")
	}

	return changed
}

// mergeSnapshot overlays the edit onto the stored row, producing the field
// set the new scores are computed from.
func mergeSnapshot(l Listing, p UpdateListingDetailsParams) listing.Snapshot {
	snap := SnapshotFromListing(l)

	if p.Title != nil {
		snap.Title = *p.Title
	}
	if p.Description != nil {
		snap.Description = *p.Description
	}
	if p.Year != nil {
		snap.Year = *p.Year
	}
	if p.Price != nil {
		snap.Price = *p.Price
	}
	if p.Mileage != nil {
		snap.Mileage = p.Mileage
	}
	if p.FuelType != nil {
		snap.FuelType = string(*p.FuelType)
	}
	if p.Transmission != nil {
		snap.Transmission = string(*p.Transmission)
	}
	if p.Condition != nil {
		snap.Condition = string(*p.Condition)
	}
	if p.EngineSizeCc != nil {
		snap.EngineSizeCc = p.EngineSizeCc
	}
	if p.HorsepowerHp != nil {
		snap.HorsepowerHp = p.HorsepowerHp
	}
	if p.Drivetrain != nil {
		snap.Drivetrain = p.Drivetrain
	}
	if p.ExteriorColor != nil {
		snap.ExteriorColor = p.ExteriorColor
	}
	if p.InteriorColor != nil {
		snap.InteriorColor = p.InteriorColor
	}
	if p.Vin != nil {
		snap.Vin = p.Vin
	}
	if p.UnderWarranty != nil {
		snap.UnderWarranty = p.UnderWarranty
	}
	if p.AccidentHistory != nil {
		snap.AccidentHistory = p.AccidentHistory
	}
	if p.FloodHistory != nil {
		snap.FloodHistory = p.FloodHistory
	}
	if p.HasServiceRecords != nil {
		snap.HasServiceRecords = p.HasServiceRecords
	}
	if p.OwnerCount != nil {
		snap.OwnerCount = p.OwnerCount
	}
	if p.City != nil {
		snap.City = p.City
	}
	if p.Province != nil {
		snap.Province = p.Province
	}
	if p.Region != nil {
		snap.Region = p.Region
	}
	if p.Barangay != nil {
		snap.Barangay = p.Barangay
	}
	if p.AddressDetail != nil {
		snap.AddressDetail = p.AddressDetail
	}

	return snap
}

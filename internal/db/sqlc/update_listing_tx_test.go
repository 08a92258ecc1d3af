package db

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Shaloh69/autohub-be/internal/listing"
	"github.com/Shaloh69/autohub-be/internal/util"
)

func storedListing() Listing {
	return Listing{
		ID:             1,
		SellerID:       "seller-1",
		BrandID:        10,
		ModelID:        20,
		Title:          "2019 Toyota Vios 1.3 XLE CVT",
		Description:    "One owner, casa maintained.",
		Year:           2019,
		Price:          58500000,
		Mileage:        util.Int32Pointer(42000),
		FuelType:       listing.FuelGasoline,
		Transmission:   listing.TransmissionAutomatic,
		Condition:      listing.ConditionGood,
		Status:         listing.StatusApproved,
		ApprovalStatus: listing.ApprovalApproved,
	}
}

func TestChangedFields(t *testing.T) {
	l := storedListing()

	require.Empty(t, changedFields(l, UpdateListingDetailsParams{}))

	// A pointer carrying the current value is not a change.
	same := UpdateListingDetailsParams{
		Title: util.StringPointer(l.Title),
		Price: util.Int64Pointer(l.Price),
	}
	require.Empty(t, changedFields(l, same))

	edit := UpdateListingDetailsParams{
		Title:   util.StringPointer("2019 Toyota Vios 1.3 XLE CVT, price drop!"),
		Price:   util.Int64Pointer(55000000),
		Mileage: util.Int32Pointer(43500),
	}
	require.ElementsMatch(t, []string{"title", "price", "mileage"}, changedFields(l, edit))

	// A mileage pointer against a row with no recorded mileage is a change.
	noMileage := l
	noMileage.Mileage = nil
	require.Equal(t, []string{"mileage"}, changedFields(noMileage, UpdateListingDetailsParams{
		Mileage: util.Int32Pointer(1000),
	}))
}

func TestChangedFieldsDriveReapproval(t *testing.T) {
	l := storedListing()

	// A price change on a live listing goes back through moderation.
	priceEdit := UpdateListingDetailsParams{Price: util.Int64Pointer(55000000)}
	require.True(t, listing.RequiresReapproval(l.Status, changedFields(l, priceEdit)))

	// A mileage correction does not.
	mileageEdit := UpdateListingDetailsParams{Mileage: util.Int32Pointer(43500)}
	require.False(t, listing.RequiresReapproval(l.Status, changedFields(l, mileageEdit)))
}

func TestMergeSnapshot(t *testing.T) {
	l := storedListing()

	// No edit reproduces the stored row.
	require.Equal(t, SnapshotFromListing(l), mergeSnapshot(l, UpdateListingDetailsParams{}))

	fuel := listing.FuelDiesel
	merged := mergeSnapshot(l, UpdateListingDetailsParams{
		Description: util.StringPointer("Now with full service history attached."),
		FuelType:    &fuel,
		Vin:         util.StringPointer("MR2B29F38K1234567"),
	})

	require.Equal(t, "Now with full service history attached.", merged.Description)
	require.Equal(t, "diesel", merged.FuelType)
	require.Equal(t, "MR2B29F38K1234567", *merged.Vin)

	// Untouched fields carry over.
	require.Equal(t, l.Title, merged.Title)
	require.Equal(t, l.Price, merged.Price)
	require.Equal(t, *l.Mileage, *merged.Mileage)
}

func TestMergedSnapshotScores(t *testing.T) {
	l := storedListing()
	before := listing.Score(SnapshotFromListing(l))

	// Filling in details can only raise the scores.
	merged := mergeSnapshot(l, UpdateListingDetailsParams{
		Vin:          util.StringPointer("MR2B29F38K1234567"),
		HorsepowerHp: util.Int32Pointer(98),
		OwnerCount:   util.Int32Pointer(1),
	})
	after := listing.Score(merged)

	require.Greater(t, after.Quality, before.Quality)
	require.GreaterOrEqual(t, after.Completeness, before.Completeness)
}

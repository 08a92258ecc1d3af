package db

import (
	"context"

	"github.com/Shaloh69/autohub-be/internal/listing"
)

// LockSellerQuota takes a transaction-scoped advisory lock on the seller.
// Every quota check-and-write sequence acquires it first, so two concurrent
// creations for the same seller serialize instead of both observing the
// pre-insert count.
func (q *Queries) LockSellerQuota(ctx context.Context, sellerID string) error {
	_, err := q.db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, sellerID)
	return err
}

// ListingDetails is the full detail view of one listing.
type ListingDetails struct {
	Listing
	BrandName  string         `json:"brand_name"`
	ModelName  string         `json:"model_name"`
	SellerName string         `json:"seller_name"`
	Images     []ListingImage `json:"images"`
}

// GetListingDetailsByID assembles the detail view. Pass q = nil outside a
// transaction.
func (store *SQLStore) GetListingDetailsByID(ctx context.Context, q *Queries, listingID int64) (ListingDetails, error) {
	qTx := q
	if qTx == nil {
		qTx = store.Queries
	}

	var details ListingDetails

	l, err := qTx.GetListingByID(ctx, listingID)
	if err != nil {
		return details, err
	}

	brand, err := qTx.GetBrandByID(ctx, l.BrandID)
	if err != nil {
		return details, err
	}

	model, err := qTx.GetCarModelByID(ctx, l.ModelID)
	if err != nil {
		return details, err
	}

	seller, err := qTx.GetUserByID(ctx, l.SellerID)
	if err != nil {
		return details, err
	}

	images, err := qTx.ListListingImages(ctx, listingID)
	if err != nil {
		return details, err
	}

	details = ListingDetails{
		Listing:    l,
		BrandName:  brand.Name,
		ModelName:  model.Name,
		SellerName: seller.FullName,
		Images:     images,
	}
	return details, nil
}

// SnapshotFromListing projects the scored field set out of a listing row.
func SnapshotFromListing(l Listing) listing.Snapshot {
	return listing.Snapshot{
		Title:             l.Title,
		Description:       l.Description,
		Year:              l.Year,
		Price:             l.Price,
		Mileage:           l.Mileage,
		FuelType:          string(l.FuelType),
		Transmission:      string(l.Transmission),
		Condition:         string(l.Condition),
		EngineSizeCc:      l.EngineSizeCc,
		HorsepowerHp:      l.HorsepowerHp,
		Drivetrain:        l.Drivetrain,
		ExteriorColor:     l.ExteriorColor,
		InteriorColor:     l.InteriorColor,
		Vin:               l.Vin,
		UnderWarranty:     l.UnderWarranty,
		AccidentHistory:   l.AccidentHistory,
		FloodHistory:      l.FloodHistory,
		HasServiceRecords: l.HasServiceRecords,
		OwnerCount:        l.OwnerCount,
		City:              l.City,
		Province:          l.Province,
		Region:            l.Region,
		Barangay:          l.Barangay,
		AddressDetail:     l.AddressDetail,
	}
}

package db

import (
	"context"

	"github.com/Shaloh69/autohub-be/internal/search"
)

type Querier interface {
	// Catalog
	ListBrands(ctx context.Context) ([]Brand, error)
	GetBrandByID(ctx context.Context, id int64) (Brand, error)
	ListCarModelsByBrand(ctx context.Context, brandID int64) ([]CarModel, error)
	GetCarModelByID(ctx context.Context, id int64) (CarModel, error)
	ListCategories(ctx context.Context) ([]Category, error)

	// Listings
	CreateListing(ctx context.Context, arg CreateListingParams) (Listing, error)
	GetListingByID(ctx context.Context, id int64) (Listing, error)
	GetListingBySlug(ctx context.Context, slug string) (Listing, error)
	GetListingForUpdate(ctx context.Context, id int64) (Listing, error)
	CountQuotaConsumingListings(ctx context.Context, sellerID string) (int64, error)
	CountApprovedListings(ctx context.Context, sellerID string) (int64, error)
	ListSellerListings(ctx context.Context, arg ListSellerListingsParams) ([]Listing, error)
	ListPendingListings(ctx context.Context, arg ListPendingListingsParams) ([]Listing, error)
	UpdateListingLifecycle(ctx context.Context, arg UpdateListingLifecycleParams) (Listing, error)
	UpdateListingDetails(ctx context.Context, arg UpdateListingDetailsParams) (Listing, error)
	ListApprovedListingsBeyondLimit(ctx context.Context, sellerID string, limit int32) ([]Listing, error)
	SuspendListings(ctx context.Context, ids []int64) ([]Listing, error)
	SuspendApprovedListingsBySeller(ctx context.Context, sellerID string) ([]Listing, error)
	ExpireOverdueListings(ctx context.Context) ([]Listing, error)
	IncrementListingViews(ctx context.Context, arg IncrementListingViewsParams) error
	AddListingFavorite(ctx context.Context, id int64) error
	RemoveListingFavorite(ctx context.Context, id int64) error
	IncrementListingInquiries(ctx context.Context, id int64) error
	SetListingFeatured(ctx context.Context, arg SetListingFeaturedParams) (Listing, error)
	LockSellerQuota(ctx context.Context, sellerID string) error

	// Search
	SearchListings(ctx context.Context, f *search.Filter) (SearchListingsResult, error)

	// Listing images
	AddListingImage(ctx context.Context, arg AddListingImageParams) (ListingImage, error)
	CountListingImages(ctx context.Context, listingID int64) (int64, error)
	ListListingImages(ctx context.Context, listingID int64) ([]ListingImage, error)
	SetListingPrimaryImage(ctx context.Context, arg SetListingPrimaryImageParams) error

	// Users
	GetUserByID(ctx context.Context, id string) (User, error)
	BanUser(ctx context.Context, id string) (User, error)

	// Subscriptions
	ListSubscriptionPlans(ctx context.Context) ([]SubscriptionPlan, error)
	GetSubscriptionPlanByID(ctx context.Context, id int64) (SubscriptionPlan, error)
	GetActiveSubscription(ctx context.Context, sellerID string) (SellerSubscription, error)
	CreateSellerSubscription(ctx context.Context, arg CreateSellerSubscriptionParams) (SellerSubscription, error)
	CancelSellerSubscription(ctx context.Context, id int64) (SellerSubscription, error)
	ListSellerSubscriptions(ctx context.Context, sellerID string) ([]SellerSubscription, error)
	ExpireLapsedSubscriptions(ctx context.Context) ([]SellerSubscription, error)

	// Transactions
	CreateTransaction(ctx context.Context, arg CreateTransactionParams) (Transaction, error)
	GetTransactionByListingID(ctx context.Context, listingID int64) (Transaction, error)
}

var _ Querier = (*Queries)(nil)

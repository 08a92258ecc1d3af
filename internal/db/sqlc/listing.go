package db

import (
	"context"
	"errors"
	"time"

	"github.com/Shaloh69/autohub-be/internal/listing"
	"github.com/jackc/pgx/v5"
)

const listingColumns = `id, code, slug, seller_id, brand_id, model_id, category_id,
	title, description, year, price, currency, mileage,
	fuel_type, transmission, condition,
	engine_size_cc, horsepower_hp, drivetrain, exterior_color, interior_color, vin, under_warranty,
	accident_history, flood_history, has_service_records, owner_count,
	city, province, region, barangay, address_detail, latitude, longitude,
	status, approval_status, rejected_reason, moderator_notes,
	quality_score, completeness_score, search_score,
	is_active, is_featured, featured_until, is_premium, premium_until,
	views, unique_views, favorites, inquiries,
	approved_by, approved_at, sold_at, expires_at, created_at, updated_at`

func scanListing(row pgx.Row) (Listing, error) {
	var l Listing
	err := row.Scan(
		&l.ID, &l.Code, &l.Slug, &l.SellerID, &l.BrandID, &l.ModelID, &l.CategoryID,
		&l.Title, &l.Description, &l.Year, &l.Price, &l.Currency, &l.Mileage,
		&l.FuelType, &l.Transmission, &l.Condition,
		&l.EngineSizeCc, &l.HorsepowerHp, &l.Drivetrain, &l.ExteriorColor, &l.InteriorColor, &l.Vin, &l.UnderWarranty,
		&l.AccidentHistory, &l.FloodHistory, &l.HasServiceRecords, &l.OwnerCount,
		&l.City, &l.Province, &l.Region, &l.Barangay, &l.AddressDetail, &l.Latitude, &l.Longitude,
		&l.Status, &l.ApprovalStatus, &l.RejectedReason, &l.ModeratorNotes,
		&l.QualityScore, &l.CompletenessScore, &l.SearchScore,
		&l.IsActive, &l.IsFeatured, &l.FeaturedUntil, &l.IsPremium, &l.PremiumUntil,
		&l.Views, &l.UniqueViews, &l.Favorites, &l.Inquiries,
		&l.ApprovedBy, &l.ApprovedAt, &l.SoldAt, &l.ExpiresAt, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

func collectListings(rows pgx.Rows) ([]Listing, error) {
	defer rows.Close()
	var items []Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

type CreateListingParams struct {
	Code     string
	Slug     string
	SellerID string

	BrandID    int64
	ModelID    int64
	CategoryID *int64

	Title       string
	Description string
	Year        int32
	Price       int64
	Currency    string
	Mileage     *int32

	FuelType     listing.FuelType
	Transmission listing.Transmission
	Condition    listing.Condition

	EngineSizeCc  *int32
	HorsepowerHp  *int32
	Drivetrain    *string
	ExteriorColor *string
	InteriorColor *string
	Vin           *string
	UnderWarranty *bool

	AccidentHistory   *bool
	FloodHistory      *bool
	HasServiceRecords *bool
	OwnerCount        *int32

	City          *string
	Province      *string
	Region        *string
	Barangay      *string
	AddressDetail *string
	Latitude      *float64
	Longitude     *float64

	QualityScore      int32
	CompletenessScore int32
	SearchScore       int32
}

const createListingQuery = `INSERT INTO listings (
	code, slug, seller_id, brand_id, model_id, category_id,
	title, description, year, price, currency, mileage,
	fuel_type, transmission, condition,
	engine_size_cc, horsepower_hp, drivetrain, exterior_color, interior_color, vin, under_warranty,
	accident_history, flood_history, has_service_records, owner_count,
	city, province, region, barangay, address_detail, latitude, longitude,
	status, approval_status, quality_score, completeness_score, search_score
) VALUES (
	$1, $2, $3, $4, $5, $6,
	$7, $8, $9, $10, $11, $12,
	$13, $14, $15,
	$16, $17, $18, $19, $20, $21, $22,
	$23, $24, $25, $26,
	$27, $28, $29, $30, $31, $32, $33,
	'draft', 'pending', $34, $35, $36
) RETURNING ` + listingColumns

func (q *Queries) CreateListing(ctx context.Context, arg CreateListingParams) (Listing, error) {
	row := q.db.QueryRow(ctx, createListingQuery,
		arg.Code, arg.Slug, arg.SellerID, arg.BrandID, arg.ModelID, arg.CategoryID,
		arg.Title, arg.Description, arg.Year, arg.Price, arg.Currency, arg.Mileage,
		arg.FuelType, arg.Transmission, arg.Condition,
		arg.EngineSizeCc, arg.HorsepowerHp, arg.Drivetrain, arg.ExteriorColor, arg.InteriorColor, arg.Vin, arg.UnderWarranty,
		arg.AccidentHistory, arg.FloodHistory, arg.HasServiceRecords, arg.OwnerCount,
		arg.City, arg.Province, arg.Region, arg.Barangay, arg.AddressDetail, arg.Latitude, arg.Longitude,
		arg.QualityScore, arg.CompletenessScore, arg.SearchScore,
	)
	return scanListing(row)
}

func (q *Queries) GetListingByID(ctx context.Context, id int64) (Listing, error) {
	row := q.db.QueryRow(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = $1`, id)
	return scanListing(row)
}

func (q *Queries) GetListingBySlug(ctx context.Context, slug string) (Listing, error) {
	row := q.db.QueryRow(ctx, `SELECT `+listingColumns+` FROM listings WHERE slug = $1`, slug)
	return scanListing(row)
}

// GetListingForUpdate locks the listing row for the duration of the enclosing
// transaction. Every read-then-conditional-transition sequence goes through it.
func (q *Queries) GetListingForUpdate(ctx context.Context, id int64) (Listing, error) {
	row := q.db.QueryRow(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = $1 FOR UPDATE`, id)
	return scanListing(row)
}

// CountQuotaConsumingListings counts the seller's listings currently occupying
// a subscription slot. Always computed fresh, never cached.
func (q *Queries) CountQuotaConsumingListings(ctx context.Context, sellerID string) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM listings WHERE seller_id = $1 AND status IN ('pending', 'approved', 'reserved')`,
		sellerID).Scan(&count)
	return count, err
}

func (q *Queries) CountApprovedListings(ctx context.Context, sellerID string) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM listings WHERE seller_id = $1 AND status = 'approved'`,
		sellerID).Scan(&count)
	return count, err
}

type ListSellerListingsParams struct {
	SellerID string
	Status   *string
	// Removed listings are hidden from the seller's default views unless
	// explicitly requested via Status.
	Limit  int32
	Offset int32
}

func (q *Queries) ListSellerListings(ctx context.Context, arg ListSellerListingsParams) ([]Listing, error) {
	rows, err := q.db.Query(ctx, `SELECT `+listingColumns+` FROM listings
		WHERE seller_id = $1
		  AND ($2::text IS NULL AND status <> 'removed' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`,
		arg.SellerID, arg.Status, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return collectListings(rows)
}

type ListPendingListingsParams struct {
	Limit  int32
	Offset int32
}

// ListPendingListings returns the moderation queue, oldest first.
func (q *Queries) ListPendingListings(ctx context.Context, arg ListPendingListingsParams) ([]Listing, error) {
	rows, err := q.db.Query(ctx, `SELECT `+listingColumns+` FROM listings
		WHERE status = 'pending' AND approval_status = 'pending'
		ORDER BY created_at ASC
		LIMIT $1 OFFSET $2`,
		arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return collectListings(rows)
}

type UpdateListingLifecycleParams struct {
	ID             int64
	Status         listing.Status
	ApprovalStatus listing.ApprovalStatus
	RejectedReason *string
	ModeratorNotes *string
	ApprovedBy     *string
	ApprovedAt     *time.Time
	SoldAt         *time.Time
	ExpiresAt      *time.Time
}

// UpdateListingLifecycle writes both state axes plus the transition metadata
// in one statement. Callers hold the row lock via GetListingForUpdate.
func (q *Queries) UpdateListingLifecycle(ctx context.Context, arg UpdateListingLifecycleParams) (Listing, error) {
	row := q.db.QueryRow(ctx, `UPDATE listings SET
		status = $2,
		approval_status = $3,
		rejected_reason = COALESCE($4, rejected_reason),
		moderator_notes = COALESCE($5, moderator_notes),
		approved_by = COALESCE($6, approved_by),
		approved_at = COALESCE($7, approved_at),
		sold_at = COALESCE($8, sold_at),
		expires_at = COALESCE($9, expires_at),
		updated_at = now()
	WHERE id = $1
	RETURNING `+listingColumns,
		arg.ID, arg.Status, arg.ApprovalStatus, arg.RejectedReason, arg.ModeratorNotes,
		arg.ApprovedBy, arg.ApprovedAt, arg.SoldAt, arg.ExpiresAt)
	return scanListing(row)
}

type UpdateListingDetailsParams struct {
	ID int64

	BrandID    *int64
	ModelID    *int64
	CategoryID *int64

	Title       *string
	Description *string
	Year        *int32
	Price       *int64
	Mileage     *int32

	FuelType     *listing.FuelType
	Transmission *listing.Transmission
	Condition    *listing.Condition

	EngineSizeCc  *int32
	HorsepowerHp  *int32
	Drivetrain    *string
	ExteriorColor *string
	InteriorColor *string
	Vin           *string
	UnderWarranty *bool

	AccidentHistory   *bool
	FloodHistory      *bool
	HasServiceRecords *bool
	OwnerCount        *int32

	City          *string
	Province      *string
	Region        *string
	Barangay      *string
	AddressDetail *string
	Latitude      *float64
	Longitude     *float64

	QualityScore      int32
	CompletenessScore int32
	SearchScore       int32
}

// UpdateListingDetails applies a partial edit. The recomputed scores are
// written in the same statement as the fields they derive from, so a score can
// never drift from a stale computation.
func (q *Queries) UpdateListingDetails(ctx context.Context, arg UpdateListingDetailsParams) (Listing, error) {
	row := q.db.QueryRow(ctx, `UPDATE listings SET
		brand_id = COALESCE($2, brand_id),
		model_id = COALESCE($3, model_id),
		category_id = COALESCE($4, category_id),
		title = COALESCE($5, title),
		description = COALESCE($6, description),
		year = COALESCE($7, year),
		price = COALESCE($8, price),
		mileage = COALESCE($9, mileage),
		fuel_type = COALESCE($10, fuel_type),
		transmission = COALESCE($11, transmission),
		condition = COALESCE($12, condition),
		engine_size_cc = COALESCE($13, engine_size_cc),
		horsepower_hp = COALESCE($14, horsepower_hp),
		drivetrain = COALESCE($15, drivetrain),
		exterior_color = COALESCE($16, exterior_color),
		interior_color = COALESCE($17, interior_color),
		vin = COALESCE($18, vin),
		under_warranty = COALESCE($19, under_warranty),
		accident_history = COALESCE($20, accident_history),
		flood_history = COALESCE($21, flood_history),
		has_service_records = COALESCE($22, has_service_records),
		owner_count = COALESCE($23, owner_count),
		city = COALESCE($24, city),
		province = COALESCE($25, province),
		region = COALESCE($26, region),
		barangay = COALESCE($27, barangay),
		address_detail = COALESCE($28, address_detail),
		latitude = COALESCE($29, latitude),
		longitude = COALESCE($30, longitude),
		quality_score = $31,
		completeness_score = $32,
		search_score = $33,
		updated_at = now()
	WHERE id = $1
	RETURNING `+listingColumns,
		arg.ID, arg.BrandID, arg.ModelID, arg.CategoryID,
		arg.Title, arg.Description, arg.Year, arg.Price, arg.Mileage,
		arg.FuelType, arg.Transmission, arg.Condition,
		arg.EngineSizeCc, arg.HorsepowerHp, arg.Drivetrain, arg.ExteriorColor, arg.InteriorColor, arg.Vin, arg.UnderWarranty,
		arg.AccidentHistory, arg.FloodHistory, arg.HasServiceRecords, arg.OwnerCount,
		arg.City, arg.Province, arg.Region, arg.Barangay, arg.AddressDetail, arg.Latitude, arg.Longitude,
		arg.QualityScore, arg.CompletenessScore, arg.SearchScore)
	return scanListing(row)
}

// ListApprovedListingsBeyondLimit returns the seller's approved listings that
// fall outside the newest `limit`, oldest last. These are the rows the
// downgrade sweep suspends.
func (q *Queries) ListApprovedListingsBeyondLimit(ctx context.Context, sellerID string, limit int32) ([]Listing, error) {
	rows, err := q.db.Query(ctx, `SELECT `+listingColumns+` FROM listings
		WHERE seller_id = $1 AND status = 'approved'
		ORDER BY created_at DESC
		OFFSET $2`,
		sellerID, limit)
	if err != nil {
		return nil, err
	}
	return collectListings(rows)
}

// SuspendListings suspends the given approved listings and returns the rows
// actually transitioned.
func (q *Queries) SuspendListings(ctx context.Context, ids []int64) ([]Listing, error) {
	rows, err := q.db.Query(ctx, `UPDATE listings SET
		status = 'suspended', updated_at = now()
	WHERE id = ANY($1) AND status = 'approved'
	RETURNING `+listingColumns, ids)
	if err != nil {
		return nil, err
	}
	return collectListings(rows)
}

// SuspendApprovedListingsBySeller is the ban cascade.
func (q *Queries) SuspendApprovedListingsBySeller(ctx context.Context, sellerID string) ([]Listing, error) {
	rows, err := q.db.Query(ctx, `UPDATE listings SET
		status = 'suspended', updated_at = now()
	WHERE seller_id = $1 AND status = 'approved'
	RETURNING `+listingColumns, sellerID)
	if err != nil {
		return nil, err
	}
	return collectListings(rows)
}

// ExpireOverdueListings transitions every approved listing whose expiry has
// passed. Single-statement, so the sweep needs no per-row locking.
func (q *Queries) ExpireOverdueListings(ctx context.Context) ([]Listing, error) {
	rows, err := q.db.Query(ctx, `UPDATE listings SET
		status = 'expired', updated_at = now()
	WHERE status = 'approved' AND expires_at IS NOT NULL AND expires_at < now()
	RETURNING `+listingColumns)
	if err != nil {
		return nil, err
	}
	return collectListings(rows)
}

type IncrementListingViewsParams struct {
	ID       int64
	IsUnique bool
}

func (q *Queries) IncrementListingViews(ctx context.Context, arg IncrementListingViewsParams) error {
	_, err := q.db.Exec(ctx, `UPDATE listings SET
		views = views + 1,
		unique_views = unique_views + CASE WHEN $2 THEN 1 ELSE 0 END
	WHERE id = $1`, arg.ID, arg.IsUnique)
	return err
}

func (q *Queries) AddListingFavorite(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, `UPDATE listings SET favorites = favorites + 1 WHERE id = $1`, id)
	return err
}

func (q *Queries) RemoveListingFavorite(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, `UPDATE listings SET favorites = GREATEST(favorites - 1, 0) WHERE id = $1`, id)
	return err
}

func (q *Queries) IncrementListingInquiries(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, `UPDATE listings SET inquiries = inquiries + 1 WHERE id = $1`, id)
	return err
}

type SetListingFeaturedParams struct {
	ID            int64
	IsFeatured    bool
	FeaturedUntil *time.Time
}

// SetListingFeatured runs without a row lock, so the live-listing predicate is
// part of the statement. Zero rows means the listing left public view after
// the caller's read; that surfaces as ErrConcurrentModification because
// listings are soft-removed, a missing row is a status change, not a delete.
func (q *Queries) SetListingFeatured(ctx context.Context, arg SetListingFeaturedParams) (Listing, error) {
	row := q.db.QueryRow(ctx, `UPDATE listings SET
		is_featured = $2, featured_until = $3, updated_at = now()
	WHERE id = $1 AND status = 'approved' AND approval_status = 'approved'
	RETURNING `+listingColumns, arg.ID, arg.IsFeatured, arg.FeaturedUntil)

	l, err := scanListing(row)
	if errors.Is(err, ErrRecordNotFound) {
		return l, ErrConcurrentModification
	}
	return l, err
}

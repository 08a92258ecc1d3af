package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/Shaloh69/autohub-be/internal/geo"
	"github.com/Shaloh69/autohub-be/internal/search"
)

// SearchedListing is one search result row: the listing plus the denormalized
// summaries a result card needs.
type SearchedListing struct {
	Listing
	BrandName       string   `json:"brand_name"`
	ModelName       string   `json:"model_name"`
	SellerName      string   `json:"seller_name"`
	PrimaryImageURL string   `json:"primary_image_url"`
	DistanceKm      *float64 `json:"distance_km,omitempty"`
}

type SearchListingsResult struct {
	Listings []SearchedListing
	Total    int64
}

type searchQuery struct {
	where strings.Builder
	args  []any
}

func (s *searchQuery) add(clause string, args ...any) {
	placeholders := make([]any, len(args))
	for i, a := range args {
		s.args = append(s.args, a)
		placeholders[i] = len(s.args)
	}
	s.where.WriteString(" AND ")
	s.where.WriteString(fmt.Sprintf(clause, placeholders...))
}

// buildSearchQuery assembles the candidate set: the unconditional public
// visibility predicate first, then every supplied filter as a conjunction.
// Multi-valued filters narrow via membership. The filter must be normalized.
func buildSearchQuery(f *search.Filter) *searchQuery {
	s := &searchQuery{}

	// Base predicate: only approved-and-approved, active, unexpired listings
	// are ever candidates, regardless of what the client asked for.
	s.where.WriteString(`l.status = 'approved' AND l.approval_status = 'approved' AND l.is_active
		AND (l.expires_at IS NULL OR l.expires_at > now())`)

	if len(f.BrandIDs) > 0 {
		s.add("l.brand_id = ANY($%d)", f.BrandIDs)
	}
	if len(f.ModelIDs) > 0 {
		s.add("l.model_id = ANY($%d)", f.ModelIDs)
	}
	if len(f.CategoryIDs) > 0 {
		s.add("l.category_id = ANY($%d)", f.CategoryIDs)
	}
	if f.MinPrice != nil {
		s.add("l.price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		s.add("l.price <= $%d", *f.MaxPrice)
	}
	if f.MinYear != nil {
		s.add("l.year >= $%d", *f.MinYear)
	}
	if f.MaxYear != nil {
		s.add("l.year <= $%d", *f.MaxYear)
	}
	if f.MaxMileage != nil {
		s.add("l.mileage <= $%d", *f.MaxMileage)
	}
	if len(f.FuelTypes) > 0 {
		s.add("l.fuel_type = ANY($%d)", f.FuelTypes)
	}
	if len(f.Transmissions) > 0 {
		s.add("l.transmission = ANY($%d)", f.Transmissions)
	}
	if len(f.Conditions) > 0 {
		s.add("l.condition = ANY($%d)", f.Conditions)
	}
	if f.City != nil {
		s.add("l.city = $%d", *f.City)
	}
	if f.Province != nil {
		s.add("l.province = $%d", *f.Province)
	}
	if f.Region != nil {
		s.add("l.region = $%d", *f.Region)
	}

	// Every token must match at least one of title, description, brand name,
	// model name.
	for _, tok := range f.Tokens() {
		pattern := "%" + tok + "%"
		s.add("(l.title ILIKE $%[1]d OR l.description ILIKE $%[1]d OR b.name ILIKE $%[1]d OR m.name ILIKE $%[1]d)", pattern)
	}

	if f.HasGeo() {
		// Index-friendly bounding box first; the exact haversine predicate
		// runs on the outer query.
		minLat, maxLat, minLng, maxLng := geo.BoundingBox(*f.Latitude, *f.Longitude, *f.RadiusKm)
		s.add("l.latitude BETWEEN $%d AND $%d", minLat, maxLat)
		s.add("l.longitude BETWEEN $%d AND $%d", minLng, maxLng)
	}

	return s
}

// distanceExpr yields the haversine distance in kilometers between the query
// point and the listing's coordinates, as a SQL expression.
func distanceExpr(s *searchQuery, f *search.Filter) string {
	if !f.HasGeo() {
		return "NULL::float8"
	}
	s.args = append(s.args, *f.Latitude)
	latIdx := len(s.args)
	s.args = append(s.args, *f.Longitude)
	lngIdx := len(s.args)
	return fmt.Sprintf(`%f * 2 * asin(sqrt(
		power(sin(radians((l.latitude - $%d) / 2)), 2) +
		cos(radians($%d)) * cos(radians(l.latitude)) *
		power(sin(radians((l.longitude - $%d) / 2)), 2)))`,
		geo.EarthRadiusKm, latIdx, latIdx, lngIdx)
}

func orderClause(f *search.Filter) string {
	spec := search.ResolveSort(f.SortBy, f.SortDir)
	dir := "DESC"
	if spec.Direction == search.DirAsc {
		dir = "ASC"
	}
	if spec.FeaturedFirst {
		// A featured or premium run only counts while its window is open.
		// COALESCE keeps a NULL expiry from sorting as active placement.
		return fmt.Sprintf("COALESCE(c.is_featured AND c.featured_until > now(), false) DESC, "+
			"COALESCE(c.is_premium AND c.premium_until > now(), false) DESC, c.created_at %s", dir)
	}
	return fmt.Sprintf("c.%s %s, c.search_score DESC, c.created_at DESC", spec.Column, dir)
}

// SearchListings executes the public search: filter, radius-bound, sort,
// paginate. The total is computed over the fully filtered set before the page
// slice. Search never locks rows; a listing approved mid-flight may or may not
// appear.
func (q *Queries) SearchListings(ctx context.Context, f *search.Filter) (SearchListingsResult, error) {
	var result SearchListingsResult
	f.Normalize()

	sq := buildSearchQuery(f)
	dist := distanceExpr(sq, f)

	inner := fmt.Sprintf(`SELECT l.*,
		b.name AS brand_name,
		m.name AS model_name,
		u.full_name AS seller_name,
		COALESCE((SELECT url FROM listing_images i WHERE i.listing_id = l.id AND i.is_primary LIMIT 1), '') AS primary_image_url,
		%s AS distance_km
	FROM listings l
	JOIN brands b ON b.id = l.brand_id
	JOIN car_models m ON m.id = l.model_id
	JOIN users u ON u.id = l.seller_id
	WHERE %s`, dist, sq.where.String())

	radiusPredicate := ""
	if f.HasGeo() {
		sq.args = append(sq.args, *f.RadiusKm)
		radiusPredicate = fmt.Sprintf(" WHERE c.distance_km <= $%d", len(sq.args))
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM (%s) c%s", inner, radiusPredicate)
	if err := q.db.QueryRow(ctx, countQuery, sq.args...).Scan(&result.Total); err != nil {
		return result, fmt.Errorf("failed to count search results: %w", err)
	}

	// The inner select lists l.* first, so the scan order below matches the
	// listings table column order from the schema.
	pageArgs := append(sq.args, f.PageSize, f.Offset())
	pageQuery := fmt.Sprintf(`SELECT c.* FROM (%s) c%s
	ORDER BY %s
	LIMIT $%d OFFSET $%d`,
		inner, radiusPredicate, orderClause(f), len(pageArgs)-1, len(pageArgs))

	rows, err := q.db.Query(ctx, pageQuery, pageArgs...)
	if err != nil {
		return result, fmt.Errorf("failed to query search results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r SearchedListing
		err = rows.Scan(
			&r.ID, &r.Code, &r.Slug, &r.SellerID, &r.BrandID, &r.ModelID, &r.CategoryID,
			&r.Title, &r.Description, &r.Year, &r.Price, &r.Currency, &r.Mileage,
			&r.FuelType, &r.Transmission, &r.Condition,
			&r.EngineSizeCc, &r.HorsepowerHp, &r.Drivetrain, &r.ExteriorColor, &r.InteriorColor, &r.Vin, &r.UnderWarranty,
			&r.AccidentHistory, &r.FloodHistory, &r.HasServiceRecords, &r.OwnerCount,
			&r.City, &r.Province, &r.Region, &r.Barangay, &r.AddressDetail, &r.Latitude, &r.Longitude,
			&r.Status, &r.ApprovalStatus, &r.RejectedReason, &r.ModeratorNotes,
			&r.QualityScore, &r.CompletenessScore, &r.SearchScore,
			&r.IsActive, &r.IsFeatured, &r.FeaturedUntil, &r.IsPremium, &r.PremiumUntil,
			&r.Views, &r.UniqueViews, &r.Favorites, &r.Inquiries,
			&r.ApprovedBy, &r.ApprovedAt, &r.SoldAt, &r.ExpiresAt, &r.CreatedAt, &r.UpdatedAt,
			&r.BrandName, &r.ModelName, &r.SellerName, &r.PrimaryImageURL, &r.DistanceKm,
		)
		if err != nil {
			return result, err
		}
		if r.DistanceKm != nil {
			rounded := geo.RoundKm(*r.DistanceKm)
			r.DistanceKm = &rounded
		}
		result.Listings = append(result.Listings, r)
	}
	return result, rows.Err()
}

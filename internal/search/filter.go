// Package search holds the request model of the public listing search: a
// closed, exhaustively-enumerated filter set plus its normalization rules.
// Every field is optional; an absent field means "no constraint".
package search

import (
	"strings"
)

const (
	MaxPageSize     = 50
	DefaultPageSize = 20

	SortByPrice    = "price"
	SortByYear     = "year"
	SortByMileage  = "mileage"
	SortByCreated  = "created_at"
	SortByDistance = "distance"

	DirAsc  = "asc"
	DirDesc = "desc"
)

// Filter is the full input of one search request.
type Filter struct {
	BrandIDs    []int64
	ModelIDs    []int64
	CategoryIDs []int64

	MinPrice   *int64
	MaxPrice   *int64
	MinYear    *int32
	MaxYear    *int32
	MaxMileage *int32

	FuelTypes     []string
	Transmissions []string
	Conditions    []string

	City     *string
	Province *string
	Region   *string

	Latitude  *float64
	Longitude *float64
	RadiusKm  *float64

	Query string

	SortBy  string
	SortDir string

	Page     int32
	PageSize int32
}

// HasGeo reports whether a complete location triple was supplied. Partial
// coordinates (for example a radius without a point) are treated as "filter
// omitted", not as an error.
func (f *Filter) HasGeo() bool {
	return f.Latitude != nil && f.Longitude != nil && f.RadiusKm != nil && *f.RadiusKm > 0
}

// Normalize applies the request-shaping rules in place: 1-based page numbers,
// page size clamped to MaxPageSize, incomplete geo dropped, sort direction
// defaulted, distance sort rejected without geo.
func (f *Filter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}

	if !f.HasGeo() {
		f.Latitude, f.Longitude, f.RadiusKm = nil, nil, nil
	}

	f.SortDir = strings.ToLower(f.SortDir)
	if f.SortDir != DirAsc && f.SortDir != DirDesc {
		f.SortDir = DirDesc
	}

	if f.SortBy == SortByDistance && !f.HasGeo() {
		f.SortBy = ""
	}
}

// Offset returns the row offset of the requested page.
func (f *Filter) Offset() int32 {
	return (f.Page - 1) * f.PageSize
}

// Tokens returns the free-text query tokens: lowercased, split on whitespace,
// tokens of length <= 2 discarded as noise. A candidate listing must match
// every token in at least one of title, description, brand name, model name.
func (f *Filter) Tokens() []string {
	var tokens []string
	for _, tok := range strings.Fields(strings.ToLower(f.Query)) {
		if len(tok) <= 2 {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// TotalPages computes the page count for a filtered total.
func (f *Filter) TotalPages(total int64) int64 {
	if total == 0 {
		return 0
	}
	return (total + int64(f.PageSize) - 1) / int64(f.PageSize)
}

package db

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Shaloh69/autohub-be/internal/search"
)

func TestOrderClauseDefaultChecksFeaturedWindow(t *testing.T) {
	clause := orderClause(&search.Filter{})

	// An expired featuring or premium run must not sort ahead of organic
	// results, so both placement prefixes have to consult their expiry
	// timestamps.
	require.Equal(t, "COALESCE(c.is_featured AND c.featured_until > now(), false) DESC, "+
		"COALESCE(c.is_premium AND c.premium_until > now(), false) DESC, c.created_at DESC", clause)
}

func TestOrderClauseExplicitSorts(t *testing.T) {
	tests := []struct {
		sortBy  string
		sortDir string
		want    string
	}{
		{search.SortByPrice, search.DirAsc, "c.price ASC, c.search_score DESC, c.created_at DESC"},
		{search.SortByYear, search.DirDesc, "c.year DESC, c.search_score DESC, c.created_at DESC"},
		{search.SortByMileage, search.DirDesc, "c.mileage ASC, c.search_score DESC, c.created_at DESC"},
	}

	for _, tc := range tests {
		f := &search.Filter{SortBy: tc.sortBy, SortDir: tc.sortDir}
		f.Normalize()
		require.Equal(t, tc.want, orderClause(f), "sort_by=%s dir=%s", tc.sortBy, tc.sortDir)
	}
}

package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Shaloh69/autohub-be/internal/util"
)

func TestNormalizePaging(t *testing.T) {
	f := &Filter{}
	f.Normalize()
	require.EqualValues(t, 1, f.Page)
	require.EqualValues(t, DefaultPageSize, f.PageSize)
	require.EqualValues(t, 0, f.Offset())

	f = &Filter{Page: -3, PageSize: 500}
	f.Normalize()
	require.EqualValues(t, 1, f.Page)
	require.EqualValues(t, MaxPageSize, f.PageSize)

	f = &Filter{Page: 3, PageSize: 25}
	f.Normalize()
	require.EqualValues(t, 50, f.Offset())
}

func TestNormalizeDropsIncompleteGeo(t *testing.T) {
	// A radius without a point is not an error, the geo filter is dropped.
	f := &Filter{RadiusKm: util.Float64Pointer(25)}
	f.Normalize()
	require.False(t, f.HasGeo())
	require.Nil(t, f.RadiusKm)

	f = &Filter{
		Latitude:  util.Float64Pointer(14.5995),
		Longitude: util.Float64Pointer(120.9842),
	}
	f.Normalize()
	require.False(t, f.HasGeo())
	require.Nil(t, f.Latitude)
	require.Nil(t, f.Longitude)

	f = &Filter{
		Latitude:  util.Float64Pointer(14.5995),
		Longitude: util.Float64Pointer(120.9842),
		RadiusKm:  util.Float64Pointer(25),
	}
	f.Normalize()
	require.True(t, f.HasGeo())
}

func TestNormalizeSort(t *testing.T) {
	f := &Filter{SortDir: "ASC"}
	f.Normalize()
	require.Equal(t, DirAsc, f.SortDir)

	f = &Filter{SortDir: "sideways"}
	f.Normalize()
	require.Equal(t, DirDesc, f.SortDir)

	// Distance sort without coordinates falls back to the default order.
	f = &Filter{SortBy: SortByDistance}
	f.Normalize()
	require.Empty(t, f.SortBy)

	f = &Filter{
		SortBy:    SortByDistance,
		Latitude:  util.Float64Pointer(14.5995),
		Longitude: util.Float64Pointer(120.9842),
		RadiusKm:  util.Float64Pointer(25),
	}
	f.Normalize()
	require.Equal(t, SortByDistance, f.SortBy)
}

func TestTokens(t *testing.T) {
	f := &Filter{Query: "  Toyota VIOS  1.3 na "}
	require.Equal(t, []string{"toyota", "vios", "1.3"}, f.Tokens())

	// Short tokens are noise.
	f = &Filter{Query: "a an of"}
	require.Empty(t, f.Tokens())

	f = &Filter{}
	require.Empty(t, f.Tokens())
}

func TestTotalPages(t *testing.T) {
	f := &Filter{PageSize: 20}
	require.EqualValues(t, 0, f.TotalPages(0))
	require.EqualValues(t, 1, f.TotalPages(1))
	require.EqualValues(t, 1, f.TotalPages(20))
	require.EqualValues(t, 2, f.TotalPages(21))
	require.EqualValues(t, 5, f.TotalPages(100))
}

func TestResolveSort(t *testing.T) {
	// Unknown keys take the featured-first default order.
	spec := ResolveSort("", DirDesc)
	require.Equal(t, "created_at", spec.Column)
	require.True(t, spec.FeaturedFirst)

	spec = ResolveSort(SortByPrice, DirAsc)
	require.Equal(t, SortSpec{Column: "price", Direction: DirAsc}, spec)

	spec = ResolveSort(SortByYear, DirDesc)
	require.Equal(t, SortSpec{Column: "year", Direction: DirDesc}, spec)

	// "Best mileage first" means lowest first, so the direction inverts.
	spec = ResolveSort(SortByMileage, DirDesc)
	require.Equal(t, SortSpec{Column: "mileage", Direction: DirAsc}, spec)
	spec = ResolveSort(SortByMileage, DirAsc)
	require.Equal(t, SortSpec{Column: "mileage", Direction: DirDesc}, spec)

	// Nearest first, whatever the client asked for.
	spec = ResolveSort(SortByDistance, DirDesc)
	require.Equal(t, SortSpec{Column: "distance_km", Direction: DirAsc}, spec)
}

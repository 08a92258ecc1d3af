package search

// SortSpec is the resolved ordering of one search: a primary column with a
// direction, always tiebroken by search_score and recency.
type SortSpec struct {
	Column    string
	Direction string
	// FeaturedFirst prefixes the order with the currently-featured predicate
	// so live featured listings surface first. Only the default sort uses it.
	FeaturedFirst bool
}

// sortColumns maps a client sort key to its column.
var sortColumns = map[string]string{
	SortByPrice:    "price",
	SortByYear:     "year",
	SortByMileage:  "mileage",
	SortByCreated:  "created_at",
	SortByDistance: "distance_km",
}

// ResolveSort turns the requested sort key and direction into a SortSpec.
//
// Two keys get special handling: mileage inverts the requested direction,
// because lower mileage is "better" under any best-first framing; distance
// always sorts ascending (nearest first) regardless of the request.
func ResolveSort(sortBy, dir string) SortSpec {
	column, ok := sortColumns[sortBy]
	if !ok {
		return SortSpec{Column: "created_at", Direction: dir, FeaturedFirst: true}
	}

	switch sortBy {
	case SortByMileage:
		if dir == DirAsc {
			dir = DirDesc
		} else {
			dir = DirAsc
		}
	case SortByDistance:
		dir = DirAsc
	}

	return SortSpec{Column: column, Direction: dir}
}

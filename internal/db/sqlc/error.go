package db

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	UniqueViolationCode = "23505"
)

const (
	UniqueListingSlugConstraint = "listings_slug_key"
	UniqueListingVinConstraint  = "listings_vin_key"
)

var ErrRecordNotFound = pgx.ErrNoRows

// ErrConcurrentModification is returned when a conditional transition updated
// zero rows because another request changed the listing first. Callers should
// re-read and retry.
var ErrConcurrentModification = errors.New("listing was modified concurrently")

// ErrListingNotOwned is returned when the acting seller does not own the
// target listing.
var ErrListingNotOwned = errors.New("listing does not belong to this seller")

// ErrorDescription returns the error code and constraint name from a Postgres error.
func ErrorDescription(err error) (errCode string, constraintName string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}

	return
}

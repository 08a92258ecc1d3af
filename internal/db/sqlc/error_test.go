package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestErrorDescription(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           UniqueViolationCode,
		ConstraintName: UniqueListingVinConstraint,
	}

	errCode, constraintName := ErrorDescription(pgErr)
	require.Equal(t, UniqueViolationCode, errCode)
	require.Equal(t, UniqueListingVinConstraint, constraintName)

	// Wrapping along the tx path must not hide the violation.
	wrapped := fmt.Errorf("failed to create listing: %w", pgErr)
	errCode, constraintName = ErrorDescription(wrapped)
	require.Equal(t, UniqueViolationCode, errCode)
	require.Equal(t, UniqueListingVinConstraint, constraintName)

	errCode, constraintName = ErrorDescription(errors.New("not a postgres error"))
	require.Empty(t, errCode)
	require.Empty(t, constraintName)
}

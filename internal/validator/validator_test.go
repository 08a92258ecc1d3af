package validator

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Shaloh69/autohub-be/internal/listing"
	"github.com/Shaloh69/autohub-be/internal/util"
)

func TestValidateTitle(t *testing.T) {
	require.NoError(t, ValidateTitle("Vios 2019"))
	require.Error(t, ValidateTitle("Car"))
	require.Error(t, ValidateTitle(strings.Repeat("x", 201)))
}

func TestValidateYear(t *testing.T) {
	require.NoError(t, ValidateYear(2019))
	// Next-year models are listable.
	require.NoError(t, ValidateYear(int32(time.Now().Year()+1)))

	require.Error(t, ValidateYear(1899))
	require.Error(t, ValidateYear(int32(time.Now().Year()+2)))
}

func TestValidatePrice(t *testing.T) {
	require.NoError(t, ValidatePrice(1))
	require.Error(t, ValidatePrice(0))
	require.Error(t, ValidatePrice(-58500000))
}

func TestValidateMileage(t *testing.T) {
	require.NoError(t, ValidateMileage(0))
	require.NoError(t, ValidateMileage(250000))
	require.Error(t, ValidateMileage(-1))
}

func TestValidateCoordinates(t *testing.T) {
	require.NoError(t, ValidateCoordinates(14.5995, 120.9842))
	require.Error(t, ValidateCoordinates(91, 120))
	require.Error(t, ValidateCoordinates(-91, 120))
	require.Error(t, ValidateCoordinates(14, 181))
	require.Error(t, ValidateCoordinates(14, -181))
}

func TestValidateRadius(t *testing.T) {
	require.NoError(t, ValidateRadius(25))
	require.NoError(t, ValidateRadius(1000))
	require.Error(t, ValidateRadius(0))
	require.Error(t, ValidateRadius(-5))
	require.Error(t, ValidateRadius(1001))
}

func TestValidateVin(t *testing.T) {
	require.NoError(t, ValidateVin("MR2B29F38K1234567"))
	require.NoError(t, ValidateVin("AB123"))
	require.Error(t, ValidateVin("AB12"))
	require.Error(t, ValidateVin("MR2B29F38K12345678"))
}

func submittableSnapshot() listing.Snapshot {
	return listing.Snapshot{
		Title:        "2019 Toyota Vios 1.3 XLE CVT",
		Price:        58500000,
		Mileage:      util.Int32Pointer(42000),
		FuelType:     "gasoline",
		Transmission: "automatic",
		Condition:    "good",
		City:         util.StringPointer("Quezon City"),
		Province:     util.StringPointer("Metro Manila"),
	}
}

func TestValidateForSubmission(t *testing.T) {
	require.NoError(t, ValidateForSubmission(submittableSnapshot()))

	testCases := []struct {
		name   string
		mutate func(s *listing.Snapshot)
	}{
		{"missing title", func(s *listing.Snapshot) { s.Title = "" }},
		{"missing price", func(s *listing.Snapshot) { s.Price = 0 }},
		{"missing mileage", func(s *listing.Snapshot) { s.Mileage = nil }},
		{"invalid fuel type", func(s *listing.Snapshot) { s.FuelType = "plutonium" }},
		{"missing transmission", func(s *listing.Snapshot) { s.Transmission = "" }},
		{"invalid condition", func(s *listing.Snapshot) { s.Condition = "used" }},
		{"missing city", func(s *listing.Snapshot) { s.City = nil }},
		{"empty city", func(s *listing.Snapshot) { s.City = util.StringPointer("") }},
		{"missing province", func(s *listing.Snapshot) { s.Province = nil }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := submittableSnapshot()
			tc.mutate(&s)
			require.Error(t, ValidateForSubmission(s))
		})
	}
}

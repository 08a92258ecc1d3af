package listing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Shaloh69/autohub-be/internal/util"
)

func fullSnapshot() Snapshot {
	return Snapshot{
		Title:       "2019 Toyota Vios 1.3 XLE CVT",
		Description: strings.Repeat("Well maintained, casa records. ", 10),
		Year:        2019,
		Price:       58500000,
		Mileage:     util.Int32Pointer(42000),

		FuelType:     "gasoline",
		Transmission: "automatic",
		Condition:    "good",

		EngineSizeCc:  util.Int32Pointer(1329),
		HorsepowerHp:  util.Int32Pointer(98),
		Drivetrain:    util.StringPointer("fwd"),
		ExteriorColor: util.StringPointer("white"),
		InteriorColor: util.StringPointer("black"),
		Vin:           util.StringPointer("MR2B29F38K1234567"),
		UnderWarranty: util.BoolPointer(false),

		AccidentHistory:   util.BoolPointer(false),
		FloodHistory:      util.BoolPointer(false),
		HasServiceRecords: util.BoolPointer(true),
		OwnerCount:        util.Int32Pointer(1),

		City:          util.StringPointer("Quezon City"),
		Province:      util.StringPointer("Metro Manila"),
		Region:        util.StringPointer("NCR"),
		Barangay:      util.StringPointer("Diliman"),
		AddressDetail: util.StringPointer("Near UP Town Center"),
	}
}

func TestQualityScoreEmptySnapshot(t *testing.T) {
	require.EqualValues(t, 0, QualityScore(Snapshot{}))
}

func TestQualityScoreFullSnapshot(t *testing.T) {
	// Every bucket filled sums past 100 and is capped there.
	require.EqualValues(t, 100, QualityScore(fullSnapshot()))
}

func TestQualityScoreBuckets(t *testing.T) {
	// Long title (20) + long description (20) + VIN (10) + two detail
	// buckets (5 each) = 60.
	s := Snapshot{
		Title:        "2019 Toyota Vios 1.3 XLE CVT",
		Description:  strings.Repeat("x", 200),
		Vin:          util.StringPointer("MR2B29F38K1234567"),
		HorsepowerHp: util.Int32Pointer(98),
		OwnerCount:   util.Int32Pointer(1),
	}
	require.EqualValues(t, 60, QualityScore(s))
}

func TestQualityScoreShortBuckets(t *testing.T) {
	s := Snapshot{
		Title:       "Toyota Vios",            // 11 chars, short bucket
		Description: strings.Repeat("x", 100), // short bucket
	}
	require.EqualValues(t, 20, QualityScore(s))
}

func TestQualityScoreIgnoresEmptyStrings(t *testing.T) {
	// A pointer to an empty string is not a filled field.
	s := Snapshot{
		Vin:        util.StringPointer(""),
		Drivetrain: util.StringPointer(""),
	}
	require.EqualValues(t, 0, QualityScore(s))
}

func TestCompletenessScore(t *testing.T) {
	require.EqualValues(t, 0, CompletenessScore(Snapshot{}))
	require.EqualValues(t, 100, CompletenessScore(fullSnapshot()))

	// All required fields and no optional ones land exactly on the 70%
	// required weight.
	requiredOnly := Snapshot{
		Title:        "2019 Toyota Vios 1.3 XLE CVT",
		Description:  "One owner, all original.",
		Year:         2019,
		Price:        58500000,
		Mileage:      util.Int32Pointer(42000),
		FuelType:     "gasoline",
		Transmission: "automatic",
		Condition:    "good",
		City:         util.StringPointer("Quezon City"),
		Province:     util.StringPointer("Metro Manila"),
		Region:       util.StringPointer("NCR"),
	}
	require.EqualValues(t, 70, CompletenessScore(requiredOnly))
}

func TestSearchScore(t *testing.T) {
	require.EqualValues(t, 0, SearchScore(0, 0))
	require.EqualValues(t, 10, SearchScore(100, 100))

	// (60*0.6 + 70*0.4) / 10 = 6.4, rounded to 6.
	require.EqualValues(t, 6, SearchScore(60, 70))

	// (55*0.6 + 80*0.4) / 10 = 6.5, rounded half away from zero to 7.
	require.EqualValues(t, 7, SearchScore(55, 80))
}

func TestScoreBundlesAllThree(t *testing.T) {
	s := fullSnapshot()
	scores := Score(s)

	require.Equal(t, QualityScore(s), scores.Quality)
	require.Equal(t, CompletenessScore(s), scores.Completeness)
	require.Equal(t, SearchScore(scores.Quality, scores.Completeness), scores.Search)
}

// Pinned historical scores. Search ranking of existing listings must not move
// when the bucket weights are touched; a failure here means stored scores need
// a backfill.
func TestScoreRegression(t *testing.T) {
	scores := Score(fullSnapshot())
	require.Equal(t, Scores{Quality: 100, Completeness: 100, Search: 10}, scores)
}

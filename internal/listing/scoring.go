package listing

import (
	"math"
)

// Quality point buckets. The exact values are load-bearing: search ranking of
// historical listings must not move when this file is touched, so treat any
// change here as a data migration.
const (
	pointsTitleLong  = 20 // title length >= 20
	pointsTitleShort = 10 // title length >= 10
	pointsDescLong   = 20 // description length >= 200
	pointsDescShort  = 10 // description length >= 100
	pointsVin        = 10
	pointsDetail     = 5 // every other optional detail bucket

	maxQualityScore = 100
)

// QualityScore computes the 0-100 quality score from additive point buckets.
func QualityScore(s Snapshot) int32 {
	score := 0

	switch {
	case len(s.Title) >= 20:
		score += pointsTitleLong
	case len(s.Title) >= 10:
		score += pointsTitleShort
	}

	switch {
	case len(s.Description) >= 200:
		score += pointsDescLong
	case len(s.Description) >= 100:
		score += pointsDescShort
	}

	if strSet(s.Vin) {
		score += pointsVin
	}

	for _, present := range []bool{
		int32Set(s.HorsepowerHp),
		int32Set(s.EngineSizeCc),
		strSet(s.Drivetrain),
		boolSet(s.UnderWarranty),
		boolSet(s.AccidentHistory),
		boolSet(s.FloodHistory),
		boolSet(s.HasServiceRecords),
		int32Set(s.OwnerCount),
		strSet(s.AddressDetail),
		strSet(s.Barangay),
	} {
		if present {
			score += pointsDetail
		}
	}

	if score > maxQualityScore {
		score = maxQualityScore
	}
	return int32(score)
}

// CompletenessScore computes the 0-100 completeness score: required fields
// carry 70% of the weight, optional fields the remaining 30%.
func CompletenessScore(s Snapshot) int32 {
	required := []bool{
		s.Title != "",
		s.Description != "",
		s.Year > 0,
		s.Price > 0,
		int32Set(s.Mileage),
		s.FuelType != "",
		s.Transmission != "",
		s.Condition != "",
		strSet(s.City),
		strSet(s.Province),
		strSet(s.Region),
	}
	optional := []bool{
		int32Set(s.EngineSizeCc),
		int32Set(s.HorsepowerHp),
		strSet(s.Drivetrain),
		strSet(s.ExteriorColor),
		strSet(s.InteriorColor),
		strSet(s.Vin),
		strSet(s.AddressDetail),
		strSet(s.Barangay),
	}

	filled := func(fields []bool) float64 {
		n := 0
		for _, ok := range fields {
			if ok {
				n++
			}
		}
		return float64(n) / float64(len(fields))
	}

	score := 70*filled(required) + 30*filled(optional)
	return int32(math.Round(score))
}

// SearchScore compresses quality and completeness into the 0-10 ranking boost
// used as a sort tiebreaker.
func SearchScore(quality, completeness int32) int32 {
	return int32(math.Round((float64(quality)*0.6 + float64(completeness)*0.4) / 10))
}

// Scores bundles the three derived scores of one snapshot.
type Scores struct {
	Quality      int32
	Completeness int32
	Search       int32
}

// Score computes all derived scores for a snapshot.
func Score(s Snapshot) Scores {
	q := QualityScore(s)
	c := CompletenessScore(s)
	return Scores{Quality: q, Completeness: c, Search: SearchScore(q, c)}
}

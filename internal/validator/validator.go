package validator

import (
	"fmt"
	"time"
)

func ValidateString(value string, minLength int, maxLength int) error {
	n := len(value)
	if n < minLength || n > maxLength {
		return fmt.Errorf("must contain from %d to %d characters", minLength, maxLength)
	}

	return nil
}

func ValidateTitle(value string) error {
	return ValidateString(value, 5, 200)
}

func ValidateDescription(value string) error {
	return ValidateString(value, 0, 10000)
}

// ValidateYear accepts model years up to one year ahead, matching how dealers
// list next-year models.
func ValidateYear(year int32) error {
	maxYear := int32(time.Now().Year() + 1)
	if year < 1900 || year > maxYear {
		return fmt.Errorf("year must be between 1900 and %d, provided: %d", maxYear, year)
	}
	return nil
}

func ValidatePrice(price int64) error {
	if price <= 0 {
		return fmt.Errorf("price must be positive, provided: %d", price)
	}
	return nil
}

func ValidateMileage(mileage int32) error {
	if mileage < 0 {
		return fmt.Errorf("mileage cannot be negative, provided: %d", mileage)
	}
	return nil
}

func ValidateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude must be between -90 and 90, provided: %f", lat)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude must be between -180 and 180, provided: %f", lng)
	}
	return nil
}

func ValidateRadius(radiusKm float64) error {
	if radiusKm <= 0 || radiusKm > 1000 {
		return fmt.Errorf("radius_km must be between 0 and 1000, provided: %f", radiusKm)
	}
	return nil
}

func ValidateVin(vin string) error {
	// VINs since 1981 are 17 characters, but older and imported vehicles
	// carry shorter plates, so only the upper bound is hard.
	return ValidateString(vin, 5, 17)
}

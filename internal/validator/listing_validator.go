package validator

import (
	"fmt"

	"github.com/Shaloh69/autohub-be/internal/listing"
)

// ValidateForSubmission checks the mandatory field set a listing needs before
// it can enter the moderation queue. Drafts may be saved without these.
func ValidateForSubmission(s listing.Snapshot) error {
	if err := ValidateTitle(s.Title); err != nil {
		return fmt.Errorf("title: %w", err)
	}
	if err := ValidatePrice(s.Price); err != nil {
		return err
	}
	if s.Mileage == nil {
		return fmt.Errorf("mileage is required before submission")
	}
	if err := ValidateMileage(*s.Mileage); err != nil {
		return err
	}
	if err := listing.IsValidFuelType(s.FuelType); err != nil {
		return err
	}
	if err := listing.IsValidTransmission(s.Transmission); err != nil {
		return err
	}
	if err := listing.IsValidCondition(s.Condition); err != nil {
		return err
	}
	if s.City == nil || *s.City == "" {
		return fmt.Errorf("city is required before submission")
	}
	if s.Province == nil || *s.Province == "" {
		return fmt.Errorf("province is required before submission")
	}
	return nil
}

package listing

// Snapshot is the immutable field set the scoring engine works on. Scores are
// derived from a snapshot taken at write time, never from a live row, so the
// ranking of a listing version is reproducible.
type Snapshot struct {
	Title       string
	Description string
	Year        int32
	Price       int64
	Mileage     *int32

	FuelType     string
	Transmission string
	Condition    string

	EngineSizeCc  *int32
	HorsepowerHp  *int32
	Drivetrain    *string
	ExteriorColor *string
	InteriorColor *string
	Vin           *string
	UnderWarranty *bool

	AccidentHistory   *bool
	FloodHistory      *bool
	HasServiceRecords *bool
	OwnerCount        *int32

	City          *string
	Province      *string
	Region        *string
	Barangay      *string
	AddressDetail *string
}

func strSet(p *string) bool  { return p != nil && *p != "" }
func int32Set(p *int32) bool { return p != nil }
func boolSet(p *bool) bool   { return p != nil }

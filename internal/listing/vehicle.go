package listing

import (
	"fmt"
)

type FuelType string

const (
	FuelGasoline FuelType = "gasoline"
	FuelDiesel   FuelType = "diesel"
	FuelHybrid   FuelType = "hybrid"
	FuelElectric FuelType = "electric"
	FuelLPG      FuelType = "lpg"
)

type Transmission string

const (
	TransmissionManual    Transmission = "manual"
	TransmissionAutomatic Transmission = "automatic"
	TransmissionCVT       Transmission = "cvt"
)

type Drivetrain string

const (
	DrivetrainFWD Drivetrain = "fwd"
	DrivetrainRWD Drivetrain = "rwd"
	DrivetrainAWD Drivetrain = "awd"
	Drivetrain4WD Drivetrain = "4wd"
)

type Condition string

const (
	ConditionBrandNew Condition = "brand_new"
	ConditionLikeNew  Condition = "like_new"
	ConditionGood     Condition = "good"
	ConditionFair     Condition = "fair"
	ConditionPoor     Condition = "poor"
)

var allFuelTypes = map[FuelType]bool{
	FuelGasoline: true, FuelDiesel: true, FuelHybrid: true, FuelElectric: true, FuelLPG: true,
}

var allTransmissions = map[Transmission]bool{
	TransmissionManual: true, TransmissionAutomatic: true, TransmissionCVT: true,
}

var allDrivetrains = map[Drivetrain]bool{
	DrivetrainFWD: true, DrivetrainRWD: true, DrivetrainAWD: true, Drivetrain4WD: true,
}

var allConditions = map[Condition]bool{
	ConditionBrandNew: true, ConditionLikeNew: true, ConditionGood: true, ConditionFair: true, ConditionPoor: true,
}

func IsValidFuelType(value string) error {
	if !allFuelTypes[FuelType(value)] {
		return fmt.Errorf("invalid fuel type %q", value)
	}
	return nil
}

func IsValidTransmission(value string) error {
	if !allTransmissions[Transmission(value)] {
		return fmt.Errorf("invalid transmission %q", value)
	}
	return nil
}

func IsValidDrivetrain(value string) error {
	if !allDrivetrains[Drivetrain(value)] {
		return fmt.Errorf("invalid drivetrain %q", value)
	}
	return nil
}

func IsValidCondition(value string) error {
	if !allConditions[Condition(value)] {
		return fmt.Errorf("invalid condition %q", value)
	}
	return nil
}

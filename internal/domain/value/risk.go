package value

import "strings"

type RiskTolerance string

const (
	RiskConservative RiskTolerance = "conservative"
	RiskBalanced     RiskTolerance = "balanced"
	RiskAggressive   RiskTolerance = "aggressive"
)

// ParseRiskTolerance normalises case and spacing. Values outside the three
// known tolerances are kept and scored with the neutral weight.
func ParseRiskTolerance(s string) RiskTolerance {
	return RiskTolerance(strings.ToLower(strings.TrimSpace(s)))
}

func (r RiskTolerance) Known() bool {
	switch r {
	case RiskConservative, RiskBalanced, RiskAggressive:
		return true
	default:
		return false
	}
}

type VehicleType string

const (
	VehicleCar  VehicleType = "car"
	VehicleBike VehicleType = "bike"
)

// ParseVehicleType normalises case and spacing. An unknown vehicle type
// matches no motor policy.
func ParseVehicleType(s string) VehicleType {
	return VehicleType(strings.ToLower(strings.TrimSpace(s)))
}

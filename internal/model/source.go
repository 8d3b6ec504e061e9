package model

import "strings"

// energyTypeMultipliers maps normalized project technology names to their
// clean multiplier. Types not listed fall back to 0.5 (partially clean,
// e.g. mixed portfolios we cannot classify).
var energyTypeMultipliers = map[string]float64{
	"solar":                   1.0,
	"wind":                    1.0,
	"battery storage + solar": 0.95,
	"hydro":                   0.95,
	"nuclear":                 0.9,
	"fossil":                  0.0,
}

// DefaultCleanMultiplier is used for project technology types with no
// explicit multiplier.
const DefaultCleanMultiplier = 0.5

// EnergySource is a clean-generation project from the PPA project dataset.
// Location may be absent until the address has been geocoded. Immutable
// after catalog load.
type EnergySource struct {
	Name          string      `json:"name"`
	EnergyType    string      `json:"energy_source"`
	PPACapacityMW float64     `json:"ppa_capacity_mw"`
	Address       string      `json:"address,omitempty"`
	Coordinate    *Coordinate `json:"coordinates,omitempty"`

	// Geocoded records whether Coordinate came from the geocoder rather
	// than the source dataset.
	Geocoded bool `json:"geocoded,omitempty"`
}

// CleanMultiplier returns the per-technology factor in [0,1] describing how
// fully the project counts toward clean generation.
func (s EnergySource) CleanMultiplier() float64 {
	if m, ok := energyTypeMultipliers[strings.ToLower(strings.TrimSpace(s.EnergyType))]; ok {
		return m
	}
	return DefaultCleanMultiplier
}

// Located reports whether the source has usable coordinates.
func (s EnergySource) Located() bool {
	return s.Coordinate != nil
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinateValidate(t *testing.T) {
	tests := []struct {
		name    string
		coord   Coordinate
		wantErr bool
	}{
		{"valid continental US", Coordinate{Latitude: 41.88, Longitude: -87.63}, false},
		{"north pole", Coordinate{Latitude: 90, Longitude: 0}, false},
		{"antimeridian", Coordinate{Latitude: 0, Longitude: -180}, false},
		{"latitude too high", Coordinate{Latitude: 90.1, Longitude: 0}, true},
		{"latitude too low", Coordinate{Latitude: -91, Longitude: 0}, true},
		{"longitude too high", Coordinate{Latitude: 0, Longitude: 180.5}, true},
		{"longitude too low", Coordinate{Latitude: 0, Longitude: -181}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.coord.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWeightsValidate(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
		wantErr bool
	}{
		{"defaults", DefaultWeights(), false},
		{"even split within tolerance", Weights{Clean: 1.0 / 3, Transmission: 1.0 / 3, Reliability: 1.0 / 3}, false},
		{"single criterion", Weights{Clean: 1.0}, false},
		{"sum above one", Weights{Clean: 0.5, Transmission: 0.5, Reliability: 0.5}, true},
		{"sum below one", Weights{Clean: 0.2, Transmission: 0.2, Reliability: 0.2}, true},
		{"negative component", Weights{Clean: -0.1, Transmission: 0.6, Reliability: 0.5}, true},
		{"component above one", Weights{Clean: 1.2, Transmission: -0.1, Reliability: -0.1}, true},
		{"zero weights", Weights{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDemandProfileValidate(t *testing.T) {
	valid := DemandProfile{DemandType: DemandDataCenter, SizeMW: 500, LoadFactor: 0.85, DurationYears: 15}
	require.NoError(t, valid.Validate())

	tooSmall := DemandProfile{DemandType: DemandEVHub, SizeMW: 5}
	assert.Error(t, tooSmall.Validate())

	tooLarge := DemandProfile{DemandType: DemandAICompute, SizeMW: 2500}
	assert.Error(t, tooLarge.Validate())

	badLoadFactor := DemandProfile{DemandType: DemandDataCenter, SizeMW: 100, LoadFactor: 1.5}
	assert.Error(t, badLoadFactor.Validate())
}

func TestPowerPlantIsClean(t *testing.T) {
	tests := []struct {
		name      string
		fuel      string
		fuelGroup string
		clean     bool
	}{
		{"wind by fuel code", "WND", "", true},
		{"solar by fuel code", "SUN", "", true},
		{"hydro by fuel code", "WAT", "", true},
		{"geothermal by category", "", FuelGeothermal, true},
		{"wind by category", "", FuelWind, true},
		{"nuclear excluded", "NUC", FuelNuclear, false},
		{"biomass excluded", "WDS", FuelBiomass, false},
		{"gas excluded", "NG", FuelGas, false},
		{"coal excluded", "BIT", FuelCoal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PowerPlant{PrimaryFuel: tt.fuel, PrimaryFuelGroup: tt.fuelGroup}
			assert.Equal(t, tt.clean, p.IsClean())
			assert.Equal(t, tt.clean, p.IsRenewable())
		})
	}
}

func TestEnergySourceCleanMultiplier(t *testing.T) {
	tests := []struct {
		energyType string
		expected   float64
	}{
		{"Solar", 1.0},
		{"wind", 1.0},
		{"  Wind  ", 1.0},
		{"Battery Storage + Solar", 0.95},
		{"Hydro", 0.95},
		{"Nuclear", 0.9},
		{"Fossil", 0.0},
		{"Tidal", 0.5},
		{"", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.energyType, func(t *testing.T) {
			s := EnergySource{EnergyType: tt.energyType}
			assert.InDelta(t, tt.expected, s.CleanMultiplier(), 1e-9)
		})
	}
}

func TestSiteWithScores(t *testing.T) {
	original := Site{ID: 1, Name: "Reno NV", CleanGen: 10, TransmissionHeadroom: 20, Reliability: 30}

	updated := original.WithScores(70, 80, 90)
	assert.Equal(t, 70.0, updated.CleanGen)
	assert.Equal(t, 80.0, updated.TransmissionHeadroom)
	assert.Equal(t, 90.0, updated.Reliability)

	// The original is untouched.
	assert.Equal(t, 10.0, original.CleanGen)
	assert.Equal(t, 20.0, original.TransmissionHeadroom)
	assert.Equal(t, 30.0, original.Reliability)
}

func TestFuelCategoryColor(t *testing.T) {
	assert.Equal(t, "#22c55e", FuelCategoryColor(FuelSolar))
	assert.Equal(t, "#6b7280", FuelCategoryColor("UNKNOWN"))
	assert.Equal(t, "#ef4444", PowerPlant{PrimaryFuelGroup: FuelCoal}.FuelColor())
}

package model

import (
	"math"

	"github.com/rotisserie/eris"
)

// weightSumTolerance is the floating-point tolerance applied when checking
// that weights sum to 1.0.
const weightSumTolerance = 1e-9

// Weights is the allocation across the three siting criteria. Components
// must each lie in [0,1] and sum to exactly 1.0 (within tolerance); every
// scoring call validates before any math runs.
type Weights struct {
	Clean        float64 `json:"weight_clean"`
	Transmission float64 `json:"weight_transmission"`
	Reliability  float64 `json:"weight_reliability"`
}

// DefaultWeights is the allocation used when the caller supplies none.
func DefaultWeights() Weights {
	return Weights{Clean: 0.4, Transmission: 0.3, Reliability: 0.3}
}

// Validate checks component ranges and the sum-to-one constraint. Weights
// are never silently renormalized.
func (w Weights) Validate() error {
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"clean", w.Clean},
		{"transmission", w.Transmission},
		{"reliability", w.Reliability},
	} {
		if c.value < 0 || c.value > 1 {
			return eris.Errorf("model: weight %s = %.4f out of range [0, 1]", c.name, c.value)
		}
	}

	total := w.Clean + w.Transmission + w.Reliability
	if math.Abs(total-1.0) > weightSumTolerance {
		return eris.Errorf("model: weights must sum to 1.0, got %.10f", total)
	}
	return nil
}

// Demand types accepted for a DemandProfile.
const (
	DemandDataCenter    = "data_center"
	DemandElectrolyzer  = "electrolyzer"
	DemandEVHub         = "ev_hub"
	DemandHydrogenPlant = "hydrogen_plant"
	DemandAICompute     = "ai_compute"
)

// DemandProfile describes the electricity-intensive load being sited. Only
// SizeMW feeds the scoring math (capacity adequacy); the rest is context for
// the caller.
type DemandProfile struct {
	DemandType    string  `json:"demand_type"`
	SizeMW        int     `json:"size_mw"`
	LoadFactor    float64 `json:"load_factor"`
	DurationYears int     `json:"duration_years"`
}

// Validate checks the profile's field ranges.
func (d DemandProfile) Validate() error {
	if d.SizeMW < 10 || d.SizeMW > 2000 {
		return eris.Errorf("model: demand size %d MW out of range [10, 2000]", d.SizeMW)
	}
	if d.LoadFactor < 0 || d.LoadFactor > 1 {
		return eris.Errorf("model: load factor %.2f out of range [0, 1]", d.LoadFactor)
	}
	return nil
}

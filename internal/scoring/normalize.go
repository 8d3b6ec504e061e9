package scoring

import (
	"sort"

	"go.uber.org/zap"

	"github.com/gridsight/siting-cli/internal/model"
)

// Normalization fallbacks and floors. A factor below the floor is treated as
// degenerate (too few or too distant sources) and replaced.
const (
	defaultGenNormalization   = 100.0
	genNormalizationFloor     = 1.0
	defaultTransNormalization = 5000.0
	transNormalizationFloor   = 1000.0
)

// GenSource is the capability surface the generation scoring loops consume:
// a located capacity with a clean multiplier. Both catalog variants
// (EnergySource projects and clean PowerPlants) convert to it.
type GenSource struct {
	Coordinate model.Coordinate
	CapacityMW float64
	Multiplier float64
}

// rawGenScore is the unnormalized clean-generation sum for one location.
func rawGenScore(loc model.Coordinate, sources []GenSource) float64 {
	var raw float64
	for _, s := range sources {
		proximity := GenerationProximity(Distance(loc, s.Coordinate))
		raw += s.CapacityMW * s.Multiplier * proximity
	}
	return raw
}

// rawTransmissionScore is the unnormalized transmission sum for one location.
func rawTransmissionScore(loc model.Coordinate, plants []model.PowerPlant) float64 {
	var raw float64
	for _, p := range plants {
		decay := TransmissionDecay(Distance(loc, p.Coordinate()), p.NameplateMW)
		raw += p.NameplateMW * decay
	}
	return raw
}

// percentile90 returns the value at the floor(0.9*n) index of the sorted
// scores.
func percentile90(scores []float64) float64 {
	sort.Float64s(scores)
	return scores[int(float64(len(scores))*0.9)]
}

// EstimateGenNormalization estimates the divisor that maps raw clean
// generation sums onto the 0-100 scale: the 90th percentile of raw scores
// across the candidate population, so the top decile of candidates lands
// near 90-100 regardless of catalog size.
//
// The factor is a property of the (candidates, sources) pair, not a
// universal constant: recompute it whenever the source catalog changes.
// Capacity adequacy is deliberately excluded here so a single demand size
// cannot bias the shared scale.
func EstimateGenNormalization(candidates []model.Coordinate, sources []GenSource) float64 {
	if len(candidates) == 0 || len(sources) == 0 {
		zap.L().Warn("scoring: cannot estimate generation normalization with empty data")
		return defaultGenNormalization
	}

	raw := make([]float64, 0, len(candidates))
	for _, c := range candidates {
		raw = append(raw, rawGenScore(c, sources))
	}

	factor := percentile90(raw)
	if factor < genNormalizationFloor {
		// Sparse catalogs can zero out the percentile; fall back to the max.
		factor = raw[len(raw)-1]
		if factor <= 0 {
			factor = defaultGenNormalization
		}
	}

	zap.L().Info("scoring: estimated generation normalization factor",
		zap.Float64("factor", factor),
		zap.Int("candidates", len(candidates)),
		zap.Int("sources", len(sources)),
	)
	return factor
}

// EstimateTransmissionNormalization estimates the divisor for transmission
// headroom scoring: the 90th percentile of raw capacity-weighted decay sums
// across the candidate population, floored at 1000 MW-equivalents.
func EstimateTransmissionNormalization(candidates []model.Coordinate, plants []model.PowerPlant) float64 {
	if len(candidates) == 0 || len(plants) == 0 {
		zap.L().Warn("scoring: cannot estimate transmission normalization with empty data")
		return defaultTransNormalization
	}

	raw := make([]float64, 0, len(candidates))
	for _, c := range candidates {
		raw = append(raw, rawTransmissionScore(c, plants))
	}

	factor := percentile90(raw)
	if factor < transNormalizationFloor {
		factor = raw[len(raw)-1]
		if factor < transNormalizationFloor {
			factor = defaultTransNormalization
		}
	}

	zap.L().Info("scoring: estimated transmission normalization factor",
		zap.Float64("factor", factor),
		zap.Int("candidates", len(candidates)),
		zap.Int("plants", len(plants)),
	)
	return factor
}

package scoring

import (
	"math"

	"go.uber.org/zap"

	"github.com/gridsight/siting-cli/internal/model"
)

// Capacity adequacy ratio bands and their multipliers.
var adequacyBands = []struct {
	minRatio float64
	factor   float64
}{
	{3.0, 1.20}, // 3x+ capacity: surplus bonus
	{2.0, 1.10},
	{1.5, 1.00},
	{1.0, 0.95},
	{0.7, 0.85},
	{0.5, 0.70},
}

// adequacyFloorFactor applies when nearby capacity is under half the demand.
const adequacyFloorFactor = 0.50

// CapacityAdequacyFactor maps the ratio of nearby clean capacity to target
// demand onto a multiplier in [0.5, 1.2]. Ratios of 3x and above earn a 20%
// bonus; severe shortfalls halve the score. Returns 1.0 when no demand is
// specified.
func CapacityAdequacyFactor(availableMW, demandMW float64) float64 {
	if demandMW <= 0 {
		return 1.0
	}
	ratio := availableMW / demandMW
	for _, band := range adequacyBands {
		if ratio >= band.minRatio {
			return band.factor
		}
	}
	return adequacyFloorFactor
}

// CleanGenScore computes the clean generation score for a location: the sum
// over all sources of capacity x clean multiplier x proximity decay, divided
// by the normalization factor, scaled to 0-100 and clamped.
//
// When demandMW > 0 the base score is additionally multiplied by the
// capacity adequacy factor for clean capacity within 300 km. The adequacy
// multiplier is applied after clamping and is NOT re-clamped: a site with a
// large surplus can legitimately score above 100, signaling headroom beyond
// the population's top decile. Scores are rounded to one decimal.
//
// An empty source catalog is an expected, recoverable state and yields 0.0.
func CleanGenScore(loc model.Coordinate, sources []GenSource, normalization, demandMW float64) float64 {
	if len(sources) == 0 {
		zap.L().Warn("scoring: no energy sources for clean generation score")
		return 0.0
	}

	var raw, nearbyCapacity float64
	for _, s := range sources {
		distance := Distance(loc, s.Coordinate)
		proximity := GenerationProximity(distance)
		raw += s.CapacityMW * s.Multiplier * proximity

		// Capacity within the outermost proximity band counts toward adequacy.
		if distance < distanceFair {
			nearbyCapacity += s.CapacityMW * s.Multiplier
		}
	}

	base := math.Min(100.0, raw/normalization*100.0)

	if demandMW > 0 {
		factor := CapacityAdequacyFactor(nearbyCapacity, demandMW)
		adjusted := base * factor
		zap.L().Debug("scoring: capacity adequacy adjustment",
			zap.Float64("nearby_capacity_mw", nearbyCapacity),
			zap.Float64("demand_mw", demandMW),
			zap.Float64("factor", factor),
			zap.Float64("base", base),
			zap.Float64("adjusted", adjusted),
		)
		return round1(adjusted)
	}

	return round1(base)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

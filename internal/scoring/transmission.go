package scoring

import (
	"math"

	"go.uber.org/zap"

	"github.com/gridsight/siting-cli/internal/model"
)

// neutralTransmissionScore is returned when no plant catalog is available:
// with no data we assume neither strong nor weak infrastructure.
const neutralTransmissionScore = 50.0

// TransmissionScore computes the transmission headroom score for a location
// from ALL power plants, any fuel type: transmission infrastructure serves
// every generator, and large fossil plants often anchor the strongest lines.
//
// Each plant contributes nameplate capacity times its capacity-aware decay
// factor; the sum is divided by the normalization factor, scaled to 0-100,
// clamped, and rounded to one decimal.
func TransmissionScore(loc model.Coordinate, plants []model.PowerPlant, normalization float64) float64 {
	if len(plants) == 0 {
		zap.L().Warn("scoring: no power plants for transmission score")
		return neutralTransmissionScore
	}

	var raw float64
	var considered int
	var capacityNearby float64

	for _, p := range plants {
		distance := Distance(loc, p.Coordinate())
		decay := TransmissionDecay(distance, p.NameplateMW)
		if decay > 0 {
			raw += p.NameplateMW * decay
			considered++
			if distance < transmissionRegional {
				capacityNearby += p.NameplateMW
			}
		}
	}

	if considered > 0 {
		zap.L().Debug("scoring: transmission contributions",
			zap.Int("plants_considered", considered),
			zap.Float64("capacity_within_150km_mw", capacityNearby),
			zap.Float64("raw_score", raw),
		)
	}

	return round1(math.Min(100.0, raw/normalization*100.0))
}

package scoring

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/gridsight/siting-cli/internal/model"
)

// Composite combines a site's three dimension scores into one weighted
// composite. Weights are validated first; invalid weights fail before any
// math runs. Contributions and the composite are rounded to one decimal.
func Composite(site model.Site, weights model.Weights) (model.ScoreBreakdown, error) {
	if err := weights.Validate(); err != nil {
		return model.ScoreBreakdown{}, eris.Wrap(err, "scoring: composite")
	}

	cleanContribution := site.CleanGen * weights.Clean
	transContribution := site.TransmissionHeadroom * weights.Transmission
	relContribution := site.Reliability * weights.Reliability

	composite := round1(cleanContribution + transContribution + relContribution)

	zap.L().Info("scoring: composite score",
		zap.String("site", site.Name),
		zap.Float64("composite", composite),
		zap.Float64("clean_contribution", cleanContribution),
		zap.Float64("transmission_contribution", transContribution),
		zap.Float64("reliability_contribution", relContribution),
	)

	return model.ScoreBreakdown{
		CleanGenScore:            site.CleanGen,
		CleanGenContribution:     round1(cleanContribution),
		TransmissionScore:        site.TransmissionHeadroom,
		TransmissionContribution: round1(transContribution),
		ReliabilityScore:         site.Reliability,
		ReliabilityContribution:  round1(relContribution),
		CompositeScore:           composite,
		WeightsUsed:              weights,
	}, nil
}

package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridsight/siting-cli/internal/model"
)

func TestComposite(t *testing.T) {
	site := model.Site{
		ID:                   7,
		Name:                 "Columbus OH",
		Coordinates:          model.Coordinate{Latitude: 39.96, Longitude: -82.99},
		CleanGen:             72.0,
		TransmissionHeadroom: 68.0,
		Reliability:          88.0,
	}

	t.Run("default weights", func(t *testing.T) {
		breakdown, err := Composite(site, model.DefaultWeights())
		require.NoError(t, err)

		// 72*0.4 + 68*0.3 + 88*0.3 = 75.6
		assert.InDelta(t, 75.6, breakdown.CompositeScore, 1e-9)
		assert.InDelta(t, 28.8, breakdown.CleanGenContribution, 1e-9)
		assert.InDelta(t, 20.4, breakdown.TransmissionContribution, 1e-9)
		assert.InDelta(t, 26.4, breakdown.ReliabilityContribution, 1e-9)
		assert.Equal(t, model.DefaultWeights(), breakdown.WeightsUsed)
	})

	t.Run("single dimension weight isolates that score", func(t *testing.T) {
		breakdown, err := Composite(site, model.Weights{Clean: 1.0})
		require.NoError(t, err)

		assert.InDelta(t, site.CleanGen, breakdown.CompositeScore, 1e-9)
	})

	t.Run("weights summing past one are rejected", func(t *testing.T) {
		_, err := Composite(site, model.Weights{Clean: 0.5, Transmission: 0.5, Reliability: 0.5})
		require.Error(t, err)
	})

	t.Run("negative weight is rejected", func(t *testing.T) {
		_, err := Composite(site, model.Weights{Clean: -0.2, Transmission: 0.6, Reliability: 0.6})
		require.Error(t, err)
	})

	t.Run("composite rounds to one decimal", func(t *testing.T) {
		odd := site.WithScores(33.33, 33.33, 33.33)

		breakdown, err := Composite(odd, model.DefaultWeights())
		require.NoError(t, err)
		assert.InDelta(t, 33.3, breakdown.CompositeScore, 1e-9)
	})
}

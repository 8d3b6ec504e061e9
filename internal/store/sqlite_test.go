package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridsight/siting-cli/internal/model"
	"github.com/gridsight/siting-cli/pkg/geocode"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "siting.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func sampleEvaluation(siteID int, score float64) model.SiteEvaluation {
	return model.SiteEvaluation{
		Site: model.Site{
			ID: siteID, Name: "Test Site",
			Coordinates: model.Coordinate{Latitude: 40.0, Longitude: -100.0},
			CleanGen:    80, TransmissionHeadroom: 70, Reliability: 60,
		},
		Weights:        model.DefaultWeights(),
		ScoreBreakdown: model.ScoreBreakdown{CompositeScore: score, WeightsUsed: model.DefaultWeights()},
		EvaluatedAt:    time.Now().UTC(),
	}
}

func TestSQLiteEvaluationRoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	saved, err := s.SaveEvaluation(ctx, "baseline", sampleEvaluation(7, 71.5))
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	got, err := s.GetEvaluation(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "baseline", got.Name)
	assert.Equal(t, 7, got.Evaluation.Site.ID)
	assert.InDelta(t, 71.5, got.Evaluation.ScoreBreakdown.CompositeScore, 1e-9)
}

func TestSQLiteGetEvaluationNotFound(t *testing.T) {
	s := newTestSQLite(t)

	_, err := s.GetEvaluation(context.Background(), "no-such-id")
	require.Error(t, err)
}

func TestSQLiteListEvaluations(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	_, err := s.SaveEvaluation(ctx, "a", sampleEvaluation(1, 60))
	require.NoError(t, err)
	_, err = s.SaveEvaluation(ctx, "b", sampleEvaluation(2, 70))
	require.NoError(t, err)
	_, err = s.SaveEvaluation(ctx, "c", sampleEvaluation(1, 65))
	require.NoError(t, err)

	all, err := s.ListEvaluations(ctx, EvaluationFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	site1, err := s.ListEvaluations(ctx, EvaluationFilter{SiteID: 1})
	require.NoError(t, err)
	assert.Len(t, site1, 2)

	limited, err := s.ListEvaluations(ctx, EvaluationFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLiteClearEvaluations(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	_, err := s.SaveEvaluation(ctx, "a", sampleEvaluation(1, 60))
	require.NoError(t, err)
	_, err = s.SaveEvaluation(ctx, "b", sampleEvaluation(2, 70))
	require.NoError(t, err)

	n, err := s.ClearEvaluations(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	all, err := s.ListEvaluations(ctx, EvaluationFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)

	// Clearing an empty table is not an error.
	n, err = s.ClearEvaluations(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSQLiteComparisonRoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	cmp := model.ScenarioComparison{
		ScenarioName: "shortlist",
		Scenarios:    []model.SiteEvaluation{sampleEvaluation(1, 70), sampleEvaluation(2, 65)},
		BestSiteID:   1,
		ScoreRange:   model.ScoreRange{Min: 65, Max: 70},
		Deltas:       map[int]float64{1: 0, 2: -5},
		CreatedAt:    time.Now().UTC(),
	}

	saved, err := s.SaveComparison(ctx, cmp)
	require.NoError(t, err)

	got, err := s.GetComparison(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "shortlist", got.Comparison.ScenarioName)
	assert.Equal(t, 1, got.Comparison.BestSiteID)
	assert.InDelta(t, -5.0, got.Comparison.Deltas[2], 1e-9)
}

func TestSQLiteGeocodeCache(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	miss, err := s.GetGeocode(ctx, "deadbeef")
	require.NoError(t, err)
	assert.Nil(t, miss)

	entry := geocode.Result{Latitude: 37.75, Longitude: -100.02, Quality: "rooftop", Matched: true}
	require.NoError(t, s.PutGeocode(ctx, "deadbeef", entry))

	hit, err := s.GetGeocode(ctx, "deadbeef")
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.InDelta(t, 37.75, hit.Latitude, 1e-9)
	assert.True(t, hit.Matched)

	// Upsert replaces the entry in place.
	entry.Matched = false
	require.NoError(t, s.PutGeocode(ctx, "deadbeef", entry))
	hit, err = s.GetGeocode(ctx, "deadbeef")
	require.NoError(t, err)
	assert.False(t, hit.Matched)
}

func TestSQLitePlantsRoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	plants := []model.PowerPlant{
		{ORISCode: 2, PlantName: "beta", Latitude: 40, Longitude: -100, PrimaryFuel: "NG",
			PrimaryFuelGroup: model.FuelGas, NameplateMW: 400, AnnualNetGenMWh: 1.2e6},
		{ORISCode: 1, PlantName: "alpha", Latitude: 41, Longitude: -99, PrimaryFuel: "WND",
			PrimaryFuelGroup: model.FuelWind, NameplateMW: 150},
	}

	n, err := s.ReplacePlants(ctx, plants)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	loaded, err := s.LoadPlants(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "alpha", loaded[0].PlantName) // ordered by oris_code

	// Replace is wholesale, not additive.
	n, err = s.ReplacePlants(ctx, plants[:1])
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	loaded, err = s.LoadPlants(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestSQLiteSitesRoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	sites := []model.Site{
		{ID: 1, Name: "one", Coordinates: model.Coordinate{Latitude: 40, Longitude: -100}, CleanGen: 10},
		{ID: 2, Name: "two", Coordinates: model.Coordinate{Latitude: 41, Longitude: -99}, CleanGen: 20},
	}
	require.NoError(t, s.SaveSites(ctx, sites))

	// Upsert: re-saving with new scores overwrites.
	sites[0] = sites[0].WithCleanGen(99)
	require.NoError(t, s.SaveSites(ctx, sites[:1]))

	loaded, err := s.LoadSites(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.InDelta(t, 99.0, loaded[0].CleanGen, 1e-9)
	assert.Equal(t, "two", loaded[1].Name)
}

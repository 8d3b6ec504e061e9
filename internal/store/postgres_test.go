package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridsight/siting-cli/internal/model"
	"github.com/gridsight/siting-cli/pkg/geocode"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &PostgresStore{pool: mock}, mock
}

func TestPostgresSaveEvaluation(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO evaluations`).
		WithArgs(pgxmock.AnyArg(), "baseline", 7, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	saved, err := s.SaveEvaluation(context.Background(), "baseline", sampleEvaluation(7, 71.5))
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "baseline", saved.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetEvaluation(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	payload, err := json.Marshal(sampleEvaluation(7, 71.5))
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT id, name, payload, created_at FROM evaluations`).
		WithArgs("abc-123").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "payload", "created_at"}).
			AddRow("abc-123", "baseline", payload, time.Now().UTC()))

	saved, err := s.GetEvaluation(context.Background(), "abc-123")
	require.NoError(t, err)
	assert.Equal(t, 7, saved.Evaluation.Site.ID)
	assert.InDelta(t, 71.5, saved.Evaluation.ScoreBreakdown.CompositeScore, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetEvaluationNotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, name, payload, created_at FROM evaluations`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetEvaluation(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListEvaluationsBySite(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	payload, err := json.Marshal(sampleEvaluation(1, 60))
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT id, name, payload, created_at FROM evaluations WHERE 1=1 AND site_id = \$1`).
		WithArgs(1, 100).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "payload", "created_at"}).
			AddRow("a", "first", payload, time.Now().UTC()).
			AddRow("b", "second", payload, time.Now().UTC()))

	saved, err := s.ListEvaluations(context.Background(), EvaluationFilter{SiteID: 1})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "first", saved[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresClearEvaluations(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`DELETE FROM evaluations`).
		WillReturnResult(pgxmock.NewResult("DELETE", 4))

	n, err := s.ClearEvaluations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresComparisonRoundTrip(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	cmp := model.ScenarioComparison{
		ScenarioName: "shortlist",
		BestSiteID:   1,
		Deltas:       map[int]float64{1: 0, 2: -5},
		CreatedAt:    time.Now().UTC(),
	}
	payload, err := json.Marshal(cmp)
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO comparisons`).
		WithArgs(pgxmock.AnyArg(), "shortlist", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(`SELECT id, payload, created_at FROM comparisons`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "payload", "created_at"}).
			AddRow("cmp-1", payload, time.Now().UTC()))

	saved, err := s.SaveComparison(context.Background(), cmp)
	require.NoError(t, err)

	got, err := s.GetComparison(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "shortlist", got.Comparison.ScenarioName)
	assert.Equal(t, 1, got.Comparison.BestSiteID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGeocodeMiss(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT latitude, longitude, quality, matched FROM geocode_cache`).
		WithArgs("deadbeef").
		WillReturnError(pgx.ErrNoRows)

	r, err := s.GetGeocode(context.Background(), "deadbeef")
	require.NoError(t, err)
	assert.Nil(t, r)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGeocodeHit(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO geocode_cache`).
		WithArgs("deadbeef", 37.75, -100.02, "rooftop", true).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(`SELECT latitude, longitude, quality, matched FROM geocode_cache`).
		WithArgs("deadbeef").
		WillReturnRows(pgxmock.NewRows([]string{"latitude", "longitude", "quality", "matched"}).
			AddRow(37.75, -100.02, "rooftop", true))

	err := s.PutGeocode(context.Background(), "deadbeef",
		geocode.Result{Latitude: 37.75, Longitude: -100.02, Quality: "rooftop", Matched: true})
	require.NoError(t, err)

	r, err := s.GetGeocode(context.Background(), "deadbeef")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.InDelta(t, -100.02, r.Longitude, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresReplacePlants(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	cols := []string{
		"oris_code", "plant_name", "latitude", "longitude",
		"primary_fuel", "primary_fuel_category", "nameplate_mw", "annual_net_gen_mwh",
	}
	mock.ExpectExec(`DELETE FROM power_plants`).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectCopyFrom(pgx.Identifier{"power_plants"}, cols).WillReturnResult(2)

	n, err := s.ReplacePlants(context.Background(), []model.PowerPlant{
		{ORISCode: 1, PlantName: "alpha", Latitude: 41, Longitude: -99,
			PrimaryFuel: "WND", PrimaryFuelGroup: model.FuelWind, NameplateMW: 150},
		{ORISCode: 2, PlantName: "beta", Latitude: 40, Longitude: -100,
			PrimaryFuel: "NG", PrimaryFuelGroup: model.FuelGas, NameplateMW: 400},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSaveSites(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	// BulkUpsert flow: Begin -> CREATE TEMP TABLE -> COPY -> INSERT ON CONFLICT -> Commit.
	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TEMP TABLE`).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"_tmp_upsert_sites"}, []string{"id", "payload"}).WillReturnResult(2)
	mock.ExpectExec(`INSERT INTO "sites"`).WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	err := s.SaveSites(context.Background(), []model.Site{
		{ID: 1, Name: "one", Coordinates: model.Coordinate{Latitude: 40, Longitude: -100}},
		{ID: 2, Name: "two", Coordinates: model.Coordinate{Latitude: 41, Longitude: -99}},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresLoadSites(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	site := model.Site{ID: 3, Name: "three", Coordinates: model.Coordinate{Latitude: 39, Longitude: -104}}
	payload, err := json.Marshal(site)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT payload FROM sites ORDER BY id`).
		WillReturnRows(pgxmock.NewRows([]string{"payload"}).AddRow(payload))

	sites, err := s.LoadSites(context.Background())
	require.NoError(t, err)
	require.Len(t, sites, 1)
	assert.Equal(t, "three", sites[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

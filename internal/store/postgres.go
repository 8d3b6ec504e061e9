package store

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/gridsight/siting-cli/internal/db"
	"github.com/gridsight/siting-cli/internal/model"
	"github.com/gridsight/siting-cli/pkg/geocode"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS evaluations (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	name       TEXT NOT NULL,
	site_id    INTEGER NOT NULL,
	payload    JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS comparisons (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	name       TEXT NOT NULL,
	payload    JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS geocode_cache (
	address_hash TEXT PRIMARY KEY,
	latitude     DOUBLE PRECISION NOT NULL,
	longitude    DOUBLE PRECISION NOT NULL,
	quality      TEXT NOT NULL,
	matched      BOOLEAN NOT NULL,
	cached_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS power_plants (
	oris_code             INTEGER PRIMARY KEY,
	plant_name            TEXT NOT NULL,
	latitude              DOUBLE PRECISION NOT NULL,
	longitude             DOUBLE PRECISION NOT NULL,
	primary_fuel          TEXT NOT NULL,
	primary_fuel_category TEXT NOT NULL,
	nameplate_mw          DOUBLE PRECISION NOT NULL,
	annual_net_gen_mwh    DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS sites (
	id      INTEGER PRIMARY KEY,
	payload JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_evaluations_site_id ON evaluations(site_id);
CREATE INDEX IF NOT EXISTS idx_evaluations_created_at ON evaluations(created_at);
CREATE INDEX IF NOT EXISTS idx_power_plants_fuel_category ON power_plants(primary_fuel_category);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) SaveEvaluation(ctx context.Context, name string, eval model.SiteEvaluation) (*SavedEvaluation, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	payload, err := json.Marshal(eval)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal evaluation")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO evaluations (id, name, site_id, payload, created_at) VALUES ($1, $2, $3, $4, $5)`,
		id, name, eval.Site.ID, payload, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert evaluation")
	}

	return &SavedEvaluation{ID: id, Name: name, Evaluation: eval, CreatedAt: now}, nil
}

func (s *PostgresStore) GetEvaluation(ctx context.Context, id string) (*SavedEvaluation, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, name, payload, created_at FROM evaluations WHERE id = $1`, id)

	var saved SavedEvaluation
	var payload []byte
	err := row.Scan(&saved.ID, &saved.Name, &payload, &saved.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Errorf("postgres: evaluation not found: %s", id)
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get evaluation")
	}
	if err := json.Unmarshal(payload, &saved.Evaluation); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal evaluation")
	}
	return &saved, nil
}

func (s *PostgresStore) ListEvaluations(ctx context.Context, filter EvaluationFilter) ([]SavedEvaluation, error) {
	query := `SELECT id, name, payload, created_at FROM evaluations WHERE 1=1`
	var args []any

	if filter.SiteID > 0 {
		args = append(args, filter.SiteID)
		query += ` AND site_id = $1`
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += placeholderSuffix(` LIMIT `, len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += placeholderSuffix(` OFFSET `, len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list evaluations")
	}
	defer rows.Close()

	var saved []SavedEvaluation
	for rows.Next() {
		var ev SavedEvaluation
		var payload []byte
		if err := rows.Scan(&ev.ID, &ev.Name, &payload, &ev.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan evaluation")
		}
		if err := json.Unmarshal(payload, &ev.Evaluation); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal evaluation")
		}
		saved = append(saved, ev)
	}
	return saved, eris.Wrap(rows.Err(), "postgres: list evaluations iterate")
}

func (s *PostgresStore) ClearEvaluations(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM evaluations`)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: clear evaluations")
	}
	return tag.RowsAffected(), nil
}

func (s *PostgresStore) SaveComparison(ctx context.Context, cmp model.ScenarioComparison) (*SavedComparison, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	payload, err := json.Marshal(cmp)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal comparison")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO comparisons (id, name, payload, created_at) VALUES ($1, $2, $3, $4)`,
		id, cmp.ScenarioName, payload, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert comparison")
	}

	return &SavedComparison{ID: id, Comparison: cmp, CreatedAt: now}, nil
}

func (s *PostgresStore) GetComparison(ctx context.Context, id string) (*SavedComparison, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, payload, created_at FROM comparisons WHERE id = $1`, id)

	var saved SavedComparison
	var payload []byte
	err := row.Scan(&saved.ID, &payload, &saved.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Errorf("postgres: comparison not found: %s", id)
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get comparison")
	}
	if err := json.Unmarshal(payload, &saved.Comparison); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal comparison")
	}
	return &saved, nil
}

func (s *PostgresStore) GetGeocode(ctx context.Context, addressHash string) (*geocode.Result, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT latitude, longitude, quality, matched FROM geocode_cache WHERE address_hash = $1`,
		addressHash)

	var r geocode.Result
	err := row.Scan(&r.Latitude, &r.Longitude, &r.Quality, &r.Matched)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get geocode")
	}
	return &r, nil
}

func (s *PostgresStore) PutGeocode(ctx context.Context, addressHash string, result geocode.Result) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO geocode_cache (address_hash, latitude, longitude, quality, matched, cached_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 ON CONFLICT (address_hash) DO UPDATE SET
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			quality = EXCLUDED.quality,
			matched = EXCLUDED.matched,
			cached_at = now()`,
		addressHash, result.Latitude, result.Longitude, result.Quality, result.Matched,
	)
	return eris.Wrap(err, "postgres: put geocode")
}

// ReplacePlants swaps the plant inventory wholesale using the COPY protocol;
// the eGRID export is ~12k rows and replace-not-merge matches how EPA
// publishes it.
func (s *PostgresStore) ReplacePlants(ctx context.Context, plants []model.PowerPlant) (int64, error) {
	if _, err := s.pool.Exec(ctx, `DELETE FROM power_plants`); err != nil {
		return 0, eris.Wrap(err, "postgres: clear power plants")
	}

	rows := make([][]any, 0, len(plants))
	for _, p := range plants {
		rows = append(rows, []any{
			p.ORISCode, p.PlantName, p.Latitude, p.Longitude,
			p.PrimaryFuel, p.PrimaryFuelGroup, p.NameplateMW, p.AnnualNetGenMWh,
		})
	}

	return db.CopyFrom(ctx, s.pool, "power_plants", []string{
		"oris_code", "plant_name", "latitude", "longitude",
		"primary_fuel", "primary_fuel_category", "nameplate_mw", "annual_net_gen_mwh",
	}, rows)
}

func (s *PostgresStore) LoadPlants(ctx context.Context) ([]model.PowerPlant, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT oris_code, plant_name, latitude, longitude,
			primary_fuel, primary_fuel_category, nameplate_mw, annual_net_gen_mwh
		 FROM power_plants ORDER BY oris_code`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: load plants")
	}
	defer rows.Close()

	var plants []model.PowerPlant
	for rows.Next() {
		var p model.PowerPlant
		if err := rows.Scan(&p.ORISCode, &p.PlantName, &p.Latitude, &p.Longitude,
			&p.PrimaryFuel, &p.PrimaryFuelGroup, &p.NameplateMW, &p.AnnualNetGenMWh); err != nil {
			return nil, eris.Wrap(err, "postgres: scan plant")
		}
		plants = append(plants, p)
	}
	return plants, eris.Wrap(rows.Err(), "postgres: load plants iterate")
}

// SaveSites upserts recalculated sites keyed by id.
func (s *PostgresStore) SaveSites(ctx context.Context, sites []model.Site) error {
	rows := make([][]any, 0, len(sites))
	for _, site := range sites {
		payload, err := json.Marshal(site)
		if err != nil {
			return eris.Wrapf(err, "postgres: marshal site %d", site.ID)
		}
		rows = append(rows, []any{site.ID, payload})
	}

	_, err := db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "sites",
		Columns:      []string{"id", "payload"},
		ConflictKeys: []string{"id"},
	}, rows)
	return err
}

func (s *PostgresStore) LoadSites(ctx context.Context) ([]model.Site, error) {
	rows, err := s.pool.Query(ctx, `SELECT payload FROM sites ORDER BY id`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: load sites")
	}
	defer rows.Close()

	var sites []model.Site
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, eris.Wrap(err, "postgres: scan site")
		}
		var site model.Site
		if err := json.Unmarshal(payload, &site); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal site")
		}
		sites = append(sites, site)
	}
	return sites, eris.Wrap(rows.Err(), "postgres: load sites iterate")
}

// placeholderSuffix appends a positional placeholder like " LIMIT $3".
func placeholderSuffix(keyword string, n int) string {
	return keyword + "$" + strconv.Itoa(n)
}

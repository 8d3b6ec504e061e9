package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/gridsight/siting-cli/internal/model"
	"github.com/gridsight/siting-cli/pkg/geocode"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS evaluations (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	site_id    INTEGER NOT NULL,
	payload    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS comparisons (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	payload    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS geocode_cache (
	address_hash TEXT PRIMARY KEY,
	latitude     REAL NOT NULL,
	longitude    REAL NOT NULL,
	quality      TEXT NOT NULL,
	matched      INTEGER NOT NULL,
	cached_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS power_plants (
	oris_code             INTEGER PRIMARY KEY,
	plant_name            TEXT NOT NULL,
	latitude              REAL NOT NULL,
	longitude             REAL NOT NULL,
	primary_fuel          TEXT NOT NULL,
	primary_fuel_category TEXT NOT NULL,
	nameplate_mw          REAL NOT NULL,
	annual_net_gen_mwh    REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS sites (
	id      INTEGER PRIMARY KEY,
	payload TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_evaluations_site_id ON evaluations(site_id);
CREATE INDEX IF NOT EXISTS idx_evaluations_created_at ON evaluations(created_at);
CREATE INDEX IF NOT EXISTS idx_power_plants_fuel_category ON power_plants(primary_fuel_category);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveEvaluation(ctx context.Context, name string, eval model.SiteEvaluation) (*SavedEvaluation, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	payload, err := json.Marshal(eval)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal evaluation")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO evaluations (id, name, site_id, payload, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, name, eval.Site.ID, string(payload), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert evaluation")
	}

	return &SavedEvaluation{ID: id, Name: name, Evaluation: eval, CreatedAt: now}, nil
}

func (s *SQLiteStore) GetEvaluation(ctx context.Context, id string) (*SavedEvaluation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, payload, created_at FROM evaluations WHERE id = ?`, id)

	var saved SavedEvaluation
	var payload string
	err := row.Scan(&saved.ID, &saved.Name, &payload, &saved.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("sqlite: evaluation not found: %s", id)
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get evaluation")
	}
	if err := json.Unmarshal([]byte(payload), &saved.Evaluation); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal evaluation")
	}
	return &saved, nil
}

func (s *SQLiteStore) ListEvaluations(ctx context.Context, filter EvaluationFilter) ([]SavedEvaluation, error) {
	query := `SELECT id, name, payload, created_at FROM evaluations WHERE 1=1`
	var args []any

	if filter.SiteID > 0 {
		query += ` AND site_id = ?`
		args = append(args, filter.SiteID)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list evaluations")
	}
	defer rows.Close()

	var saved []SavedEvaluation
	for rows.Next() {
		var ev SavedEvaluation
		var payload string
		if err := rows.Scan(&ev.ID, &ev.Name, &payload, &ev.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan evaluation")
		}
		if err := json.Unmarshal([]byte(payload), &ev.Evaluation); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal evaluation")
		}
		saved = append(saved, ev)
	}
	return saved, eris.Wrap(rows.Err(), "sqlite: list evaluations iterate")
}

func (s *SQLiteStore) ClearEvaluations(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM evaluations`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: clear evaluations")
	}
	n, err := res.RowsAffected()
	return n, eris.Wrap(err, "sqlite: clear evaluations rows affected")
}

func (s *SQLiteStore) SaveComparison(ctx context.Context, cmp model.ScenarioComparison) (*SavedComparison, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	payload, err := json.Marshal(cmp)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal comparison")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO comparisons (id, name, payload, created_at) VALUES (?, ?, ?, ?)`,
		id, cmp.ScenarioName, string(payload), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert comparison")
	}

	return &SavedComparison{ID: id, Comparison: cmp, CreatedAt: now}, nil
}

func (s *SQLiteStore) GetComparison(ctx context.Context, id string) (*SavedComparison, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, payload, created_at FROM comparisons WHERE id = ?`, id)

	var saved SavedComparison
	var payload string
	err := row.Scan(&saved.ID, &payload, &saved.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("sqlite: comparison not found: %s", id)
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get comparison")
	}
	if err := json.Unmarshal([]byte(payload), &saved.Comparison); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal comparison")
	}
	return &saved, nil
}

func (s *SQLiteStore) GetGeocode(ctx context.Context, addressHash string) (*geocode.Result, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT latitude, longitude, quality, matched FROM geocode_cache WHERE address_hash = ?`,
		addressHash)

	var r geocode.Result
	var matched int
	err := row.Scan(&r.Latitude, &r.Longitude, &r.Quality, &matched)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get geocode")
	}
	r.Matched = matched != 0
	return &r, nil
}

func (s *SQLiteStore) PutGeocode(ctx context.Context, addressHash string, result geocode.Result) error {
	matched := 0
	if result.Matched {
		matched = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO geocode_cache (address_hash, latitude, longitude, quality, matched, cached_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (address_hash) DO UPDATE SET
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			quality = excluded.quality,
			matched = excluded.matched,
			cached_at = excluded.cached_at`,
		addressHash, result.Latitude, result.Longitude, result.Quality, matched, time.Now().UTC(),
	)
	return eris.Wrap(err, "sqlite: put geocode")
}

func (s *SQLiteStore) ReplacePlants(ctx context.Context, plants []model.PowerPlant) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin replace plants")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM power_plants`); err != nil {
		return 0, eris.Wrap(err, "sqlite: clear power plants")
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO power_plants (oris_code, plant_name, latitude, longitude,
			primary_fuel, primary_fuel_category, nameplate_mw, annual_net_gen_mwh)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare plant insert")
	}
	defer stmt.Close()

	var n int64
	for _, p := range plants {
		if _, err := stmt.ExecContext(ctx,
			p.ORISCode, p.PlantName, p.Latitude, p.Longitude,
			p.PrimaryFuel, p.PrimaryFuelGroup, p.NameplateMW, p.AnnualNetGenMWh,
		); err != nil {
			return 0, eris.Wrapf(err, "sqlite: insert plant %d", p.ORISCode)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit replace plants")
	}
	return n, nil
}

func (s *SQLiteStore) LoadPlants(ctx context.Context) ([]model.PowerPlant, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT oris_code, plant_name, latitude, longitude,
			primary_fuel, primary_fuel_category, nameplate_mw, annual_net_gen_mwh
		 FROM power_plants ORDER BY oris_code`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: load plants")
	}
	defer rows.Close()

	var plants []model.PowerPlant
	for rows.Next() {
		var p model.PowerPlant
		if err := rows.Scan(&p.ORISCode, &p.PlantName, &p.Latitude, &p.Longitude,
			&p.PrimaryFuel, &p.PrimaryFuelGroup, &p.NameplateMW, &p.AnnualNetGenMWh); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan plant")
		}
		plants = append(plants, p)
	}
	return plants, eris.Wrap(rows.Err(), "sqlite: load plants iterate")
}

func (s *SQLiteStore) SaveSites(ctx context.Context, sites []model.Site) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin save sites")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sites (id, payload) VALUES (?, ?)
		 ON CONFLICT (id) DO UPDATE SET payload = excluded.payload`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare site upsert")
	}
	defer stmt.Close()

	for _, site := range sites {
		payload, err := json.Marshal(site)
		if err != nil {
			return eris.Wrapf(err, "sqlite: marshal site %d", site.ID)
		}
		if _, err := stmt.ExecContext(ctx, site.ID, string(payload)); err != nil {
			return eris.Wrapf(err, "sqlite: upsert site %d", site.ID)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit save sites")
}

func (s *SQLiteStore) LoadSites(ctx context.Context) ([]model.Site, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM sites ORDER BY id`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: load sites")
	}
	defer rows.Close()

	var sites []model.Site
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan site")
		}
		var site model.Site
		if err := json.Unmarshal([]byte(payload), &site); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal site")
		}
		sites = append(sites, site)
	}
	return sites, eris.Wrap(rows.Err(), "sqlite: load sites iterate")
}

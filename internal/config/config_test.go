package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chtemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chtemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "siting.db", cfg.Store.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.InDelta(t, 0.4, cfg.Scoring.CleanGenWeight, 0.001)
	assert.InDelta(t, 0.3, cfg.Scoring.TransmissionWeight, 0.001)
	assert.InDelta(t, 0.3, cfg.Scoring.ReliabilityWeight, 0.001)
	assert.InDelta(t, 100, cfg.Scoring.DefaultDemandMW, 0.001)
	assert.Contains(t, cfg.Geocode.BaseURL, "geocoding.geo.census.gov")
	assert.InDelta(t, 50, cfg.Geocode.RequestsPerSec, 0.001)
	assert.InDelta(t, 100, cfg.Lines.MaxKM, 0.001)
	assert.Equal(t, 3, cfg.Lines.PerSite)
	assert.Equal(t, 100, cfg.Lines.MinVoltKV)
}

func TestLoadFromYAML(t *testing.T) {
	chtemp(t)

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/siting
log:
  level: debug
  format: console
server:
  port: 9090
scoring:
  clean_gen_weight: 0.5
  transmission_weight: 0.25
  reliability_weight: 0.25
`
	dir, _ := os.Getwd()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.InDelta(t, 0.5, cfg.Scoring.CleanGenWeight, 0.001)
	// Defaults still apply for unset values
	assert.InDelta(t, 100, cfg.Scoring.DefaultDemandMW, 0.001)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	chtemp(t)

	yaml := `
store:
  driver: sqlite
log:
  level: debug
`
	dir, _ := os.Getwd()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("SITING_STORE_DRIVER", "postgres")
	t.Setenv("SITING_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chtemp(t)

	t.Setenv("SITING_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config that passes validation in every mode.
func validDefaults() *Config {
	return &Config{
		Store:   StoreConfig{Driver: "sqlite", Path: "siting.db"},
		Catalog: CatalogConfig{PlantsURL: "https://api.epa.gov/easey/egrid/plants"},
		Scoring: ScoringConfig{CleanGenWeight: 0.4, TransmissionWeight: 0.3, ReliabilityWeight: 0.3},
		Server:  ServerConfig{Port: 8080},
	}
}

func TestValidateServe(t *testing.T) {
	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("serve"))

	cfg.Server.Port = 0
	err := cfg.Validate("serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")
}

func TestValidateStoreDriver(t *testing.T) {
	cfg := validDefaults()
	cfg.Store.Driver = "postgres"

	err := cfg.Validate("rank")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.database_url is required")

	cfg.Store.DatabaseURL = "postgres://localhost/siting"
	assert.NoError(t, cfg.Validate("rank"))

	cfg.Store.Driver = "mysql"
	err = cfg.Validate("rank")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.driver must be sqlite or postgres")
}

func TestValidateImportRequiresPlantsURL(t *testing.T) {
	cfg := validDefaults()
	cfg.Catalog.PlantsURL = ""

	err := cfg.Validate("import")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog.plants_url is required")
}

func TestValidateWeightsSum(t *testing.T) {
	cfg := validDefaults()
	cfg.Scoring.ReliabilityWeight = 0.5

	err := cfg.Validate("rank")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weights must sum to 1.0")
}

func TestValidateUnknownMode(t *testing.T) {
	cfg := validDefaults()
	err := cfg.Validate("unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

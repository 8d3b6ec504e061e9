// Package config loads application configuration from config.yaml and
// SITING_-prefixed environment variables, and bootstraps the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Catalog CatalogConfig `yaml:"catalog" mapstructure:"catalog"`
	Scoring ScoringConfig `yaml:"scoring" mapstructure:"scoring"`
	Geocode GeocodeConfig `yaml:"geocode" mapstructure:"geocode"`
	Lines   LinesConfig   `yaml:"lines" mapstructure:"lines"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the persistence backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// CatalogConfig configures the dataset imports.
type CatalogConfig struct {
	PlantsURL  string `yaml:"plants_url" mapstructure:"plants_url"`
	SourcesURL string `yaml:"sources_url" mapstructure:"sources_url"`
	TempDir    string `yaml:"temp_dir" mapstructure:"temp_dir"`
}

// ScoringConfig holds scoring defaults.
type ScoringConfig struct {
	CleanGenWeight     float64 `yaml:"clean_gen_weight" mapstructure:"clean_gen_weight"`
	TransmissionWeight float64 `yaml:"transmission_weight" mapstructure:"transmission_weight"`
	ReliabilityWeight  float64 `yaml:"reliability_weight" mapstructure:"reliability_weight"`
	DefaultDemandMW    float64 `yaml:"default_demand_mw" mapstructure:"default_demand_mw"`
}

// GeocodeConfig configures the Census geocoder.
type GeocodeConfig struct {
	BaseURL        string  `yaml:"base_url" mapstructure:"base_url"`
	RequestsPerSec float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
}

// LinesConfig configures the transmission-line shapefile import.
type LinesConfig struct {
	URL       string  `yaml:"url" mapstructure:"url"`
	MaxKM     float64 `yaml:"max_km" mapstructure:"max_km"`
	PerSite   int     `yaml:"per_site" mapstructure:"per_site"`
	MinVoltKV int     `yaml:"min_voltage_kv" mapstructure:"min_voltage_kv"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SITING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Defaults returns the configuration that Load produces when no file or
// environment overrides are present. Used by `config init` to scaffold a
// config.yaml.
func Defaults() Config {
	return Config{
		Store: StoreConfig{
			Driver:   "sqlite",
			Path:     "siting.db",
			MaxConns: 10,
			MinConns: 2,
		},
		Catalog: CatalogConfig{
			PlantsURL: "https://api.epa.gov/easey/egrid/plants",
			TempDir:   "/tmp/siting",
		},
		Scoring: ScoringConfig{
			CleanGenWeight:     0.4,
			TransmissionWeight: 0.3,
			ReliabilityWeight:  0.3,
			DefaultDemandMW:    100,
		},
		Geocode: GeocodeConfig{
			BaseURL:        "https://geocoding.geo.census.gov/geocoder/locations/onelineaddress",
			RequestsPerSec: 50,
		},
		Lines: LinesConfig{
			MaxKM:     100,
			PerSite:   3,
			MinVoltKV: 100,
		},
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"*"},
		},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "siting.db")
	v.SetDefault("store.max_conns", 10)
	v.SetDefault("store.min_conns", 2)

	v.SetDefault("catalog.plants_url", "https://api.epa.gov/easey/egrid/plants")
	v.SetDefault("catalog.temp_dir", "/tmp/siting")

	v.SetDefault("scoring.clean_gen_weight", 0.4)
	v.SetDefault("scoring.transmission_weight", 0.3)
	v.SetDefault("scoring.reliability_weight", 0.3)
	v.SetDefault("scoring.default_demand_mw", 100)

	v.SetDefault("geocode.base_url", "https://geocoding.geo.census.gov/geocoder/locations/onelineaddress")
	v.SetDefault("geocode.requests_per_sec", 50)

	v.SetDefault("lines.max_km", 100)
	v.SetDefault("lines.per_site", 3)
	v.SetDefault("lines.min_voltage_kv", 100)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Validate checks the configuration for the given run mode. Modes:
// "serve" requires a usable port; "import" requires a plants URL; every
// mode checks the store and scoring sections.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch c.Store.Driver {
	case "sqlite":
		if c.Store.Path == "" {
			problems = append(problems, "store.path is required for the sqlite driver")
		}
	case "postgres":
		if c.Store.DatabaseURL == "" {
			problems = append(problems, "store.database_url is required for the postgres driver")
		}
	default:
		problems = append(problems, "store.driver must be sqlite or postgres")
	}

	sum := c.Scoring.CleanGenWeight + c.Scoring.TransmissionWeight + c.Scoring.ReliabilityWeight
	if sum < 0.999 || sum > 1.001 {
		problems = append(problems, "scoring weights must sum to 1.0")
	}

	switch mode {
	case "serve":
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	case "import":
		if c.Catalog.PlantsURL == "" {
			problems = append(problems, "catalog.plants_url is required")
		}
	case "evaluate", "rank", "score":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

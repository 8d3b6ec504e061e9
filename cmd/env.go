package main

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/gridsight/siting-cli/internal/catalog"
	"github.com/gridsight/siting-cli/internal/fetcher"
	"github.com/gridsight/siting-cli/internal/model"
	"github.com/gridsight/siting-cli/internal/siting"
	"github.com/gridsight/siting-cli/internal/store"
	"github.com/gridsight/siting-cli/pkg/geocode"
)

// appEnv holds the wired application dependencies for one command run.
type appEnv struct {
	Store    store.Store
	Catalog  *catalog.Catalog
	Engine   *siting.Engine
	Geocoder geocode.Client
}

// initEnv validates configuration for the mode, opens the store, and builds
// the catalog from persisted datasets. A fresh store gets the built-in
// candidate sites.
func initEnv(ctx context.Context, mode string) (*appEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	st, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}

	sites, err := st.LoadSites(ctx)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	if len(sites) == 0 {
		sites = catalog.SeedSites()
		if err := st.SaveSites(ctx, sites); err != nil {
			_ = st.Close()
			return nil, err
		}
		zap.L().Info("seeded candidate sites", zap.Int("count", len(sites)))
	}

	plants, err := st.LoadPlants(ctx)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	sources, err := loadSources(ctx)
	if err != nil {
		zap.L().Warn("energy source load failed, scoring falls back to plants",
			zap.Error(err))
	}

	geocoder := geocode.NewClient(
		geocode.WithBaseURL(cfg.Geocode.BaseURL),
		geocode.WithRateLimit(cfg.Geocode.RequestsPerSec),
		geocode.WithCache(store.NewGeocodeCache(st)),
	)

	return &appEnv{
		Store:    st,
		Catalog:  catalog.New(sites, plants, sources),
		Engine:   siting.New(),
		Geocoder: geocoder,
	}, nil
}

func (e *appEnv) Close() {
	if err := e.Store.Close(); err != nil {
		zap.L().Warn("store close failed", zap.Error(err))
	}
}

func openStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
	default:
		return store.NewSQLite(cfg.Store.Path)
	}
}

// loadSources reads the PPA project dataset from the configured location,
// which may be a local path or an HTTP URL. No configured location means no
// sources, which is fine; scoring then uses clean plants only.
func loadSources(ctx context.Context) ([]model.EnergySource, error) {
	loc := cfg.Catalog.SourcesURL
	if loc == "" {
		return nil, nil
	}

	var r io.ReadCloser
	if strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://") {
		body, err := fetcher.NewClient().Fetch(ctx, loc)
		if err != nil {
			return nil, eris.Wrapf(err, "download energy sources from %s", loc)
		}
		r = body
	} else {
		f, err := os.Open(loc)
		if err != nil {
			return nil, eris.Wrapf(err, "open energy sources file %s", loc)
		}
		r = f
	}
	defer r.Close() //nolint:errcheck

	return catalog.LoadEnergySources(ctx, r)
}


// coordinateGeocoder adapts the Census client to the catalog's Geocoder
// interface.
type coordinateGeocoder struct {
	client geocode.Client
}

func (g coordinateGeocoder) Geocode(ctx context.Context, address string) (model.Coordinate, error) {
	result, err := g.client.Geocode(ctx, address)
	if err != nil {
		return model.Coordinate{}, err
	}
	if !result.Matched {
		return model.Coordinate{}, eris.Wrapf(geocode.ErrNoMatch, "address %q", address)
	}
	return model.Coordinate{Latitude: result.Latitude, Longitude: result.Longitude}, nil
}

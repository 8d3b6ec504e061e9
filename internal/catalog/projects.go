package catalog

import (
	"context"
	"io"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/gridsight/siting-cli/internal/fetcher"
	"github.com/gridsight/siting-cli/internal/model"
)

// sourceRecord is the raw PPA project JSON shape. Coordinates are present
// only when the dataset already carries them; most records need geocoding.
type sourceRecord struct {
	Name          string  `json:"name"`
	EnergySource  string  `json:"energy_source"`
	PPACapacityMW float64 `json:"ppa_capacity_mw"`
	Address       string  `json:"address"`
	Coordinates   *struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Geocoded  bool    `json:"geocoded"`
	} `json:"coordinates"`
}

// LoadEnergySources streams the clean energy PPA project dataset from r.
// Records with nonpositive capacity are skipped with a warning.
func LoadEnergySources(ctx context.Context, r io.Reader) ([]model.EnergySource, error) {
	var sources []model.EnergySource
	var skipped int

	err := fetcher.DecodeArray(ctx, r, func(rec sourceRecord) error {
		if rec.PPACapacityMW <= 0 {
			skipped++
			zap.L().Warn("catalog: skipping project with nonpositive capacity",
				zap.String("name", rec.Name), zap.Float64("ppa_capacity_mw", rec.PPACapacityMW))
			return nil
		}

		source := model.EnergySource{
			Name:          rec.Name,
			EnergyType:    rec.EnergySource,
			PPACapacityMW: rec.PPACapacityMW,
			Address:       rec.Address,
		}
		if rec.Coordinates != nil {
			coord := model.Coordinate{Latitude: rec.Coordinates.Latitude, Longitude: rec.Coordinates.Longitude}
			if err := coord.Validate(); err != nil {
				skipped++
				zap.L().Warn("catalog: skipping project with invalid coordinates",
					zap.String("name", rec.Name), zap.Error(err))
				return nil
			}
			source.Coordinate = &coord
			source.Geocoded = rec.Coordinates.Geocoded
		}
		sources = append(sources, source)
		return nil
	})
	if err != nil {
		return nil, eris.Wrap(err, "catalog: load energy sources")
	}

	zap.L().Info("catalog: loaded energy sources",
		zap.Int("loaded", len(sources)), zap.Int("skipped", skipped))
	return sources, nil
}

// Geocoder resolves a street address to a coordinate.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (model.Coordinate, error)
}

// GeocodeSources fills in coordinates for sources that lack them, using the
// given geocoder. Failures are logged and skipped so one bad address cannot
// block the rest of the catalog; the returned count is how many sources were
// successfully located.
func GeocodeSources(ctx context.Context, g Geocoder, sources []model.EnergySource) (int, error) {
	var located int
	for i := range sources {
		if sources[i].Located() {
			continue
		}
		if sources[i].Address == "" {
			zap.L().Warn("catalog: project has no address to geocode", zap.String("name", sources[i].Name))
			continue
		}

		coord, err := g.Geocode(ctx, sources[i].Address)
		if err != nil {
			if ctx.Err() != nil {
				return located, eris.Wrap(ctx.Err(), "catalog: geocode sources")
			}
			zap.L().Warn("catalog: geocoding failed",
				zap.String("name", sources[i].Name),
				zap.String("address", sources[i].Address),
				zap.Error(err))
			continue
		}

		sources[i].Coordinate = &coord
		sources[i].Geocoded = true
		located++
	}

	zap.L().Info("catalog: geocoded energy sources", zap.Int("located", located))
	return located, nil
}

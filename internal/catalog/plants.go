package catalog

import (
	"context"
	"io"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/gridsight/siting-cli/internal/fetcher"
	"github.com/gridsight/siting-cli/internal/model"
)

// plantRecord is the raw eGRID JSON shape. Annual generation is nullable in
// the export; everything else is required.
type plantRecord struct {
	ORISCode         int      `json:"oris_code"`
	PlantName        string   `json:"plant_name"`
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	PrimaryFuel      string   `json:"primary_fuel"`
	PrimaryFuelGroup string   `json:"primary_fuel_category"`
	NameplateMW      float64  `json:"nameplate_mw"`
	AnnualNetGenMWh  *float64 `json:"annual_net_gen_mwh"`
}

// LoadPowerPlants streams the eGRID plant export from r. Records with
// out-of-range coordinates or nonpositive capacity are skipped with a
// warning rather than failing the whole load; the export always contains a
// handful of malformed rows.
func LoadPowerPlants(ctx context.Context, r io.Reader) ([]model.PowerPlant, error) {
	var plants []model.PowerPlant
	var skipped int

	err := fetcher.DecodeArray(ctx, r, func(rec plantRecord) error {
		plant, ok := plantFromRecord(rec)
		if !ok {
			skipped++
			return nil
		}
		plants = append(plants, plant)
		return nil
	})
	if err != nil {
		return nil, eris.Wrap(err, "catalog: load power plants")
	}

	zap.L().Info("catalog: loaded power plants",
		zap.Int("loaded", len(plants)), zap.Int("skipped", skipped))
	return plants, nil
}

// plantFromRecord validates a raw record and converts it. Returns false when
// the record should be dropped; the reason is logged.
func plantFromRecord(rec plantRecord) (model.PowerPlant, bool) {
	coord := model.Coordinate{Latitude: rec.Latitude, Longitude: rec.Longitude}
	if err := coord.Validate(); err != nil {
		zap.L().Warn("catalog: skipping plant with invalid coordinates",
			zap.Int("oris_code", rec.ORISCode), zap.Error(err))
		return model.PowerPlant{}, false
	}
	if rec.NameplateMW <= 0 {
		zap.L().Warn("catalog: skipping plant with nonpositive capacity",
			zap.Int("oris_code", rec.ORISCode), zap.Float64("nameplate_mw", rec.NameplateMW))
		return model.PowerPlant{}, false
	}

	var annualGen float64
	if rec.AnnualNetGenMWh != nil {
		annualGen = *rec.AnnualNetGenMWh
	}

	return model.PowerPlant{
		ORISCode:         rec.ORISCode,
		PlantName:        rec.PlantName,
		Latitude:         rec.Latitude,
		Longitude:        rec.Longitude,
		PrimaryFuel:      rec.PrimaryFuel,
		PrimaryFuelGroup: rec.PrimaryFuelGroup,
		NameplateMW:      rec.NameplateMW,
		AnnualNetGenMWh:  annualGen,
	}, true
}

package catalog

import (
	"context"
	"io"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/gridsight/siting-cli/internal/fetcher"
	"github.com/gridsight/siting-cli/internal/model"
)

// eGRID plant-sheet column codes. The workbook puts human-readable labels in
// the first row and these codes in the second; the CSV export uses the codes
// directly as its header.
const (
	egridColORIS      = "ORISPL"
	egridColName      = "PNAME"
	egridColLat       = "LAT"
	egridColLon       = "LON"
	egridColFuel      = "PLPRMFL"
	egridColFuelCat   = "PLFUELCT"
	egridColCapacity  = "NAMEPCAP"
	egridColAnnualGen = "PLNGENAN"
)

// egridTable describes the plant table layout. headerScan bounds how many
// label rows may precede the code header.
func egridTable(headerScan int) fetcher.TableOptions {
	return fetcher.TableOptions{
		KeyColumn:  egridColORIS,
		HeaderScan: headerScan,
		Required: []string{
			egridColORIS, egridColName, egridColLat, egridColLon,
			egridColFuel, egridColFuelCat, egridColCapacity,
		},
	}
}

// LoadPowerPlantsCSV streams an eGRID plant CSV export. The first row must be
// the column-code header; rows failing validation are skipped with a warning,
// matching LoadPowerPlants.
func LoadPowerPlantsCSV(ctx context.Context, r io.Reader) ([]model.PowerPlant, error) {
	var plants []model.PowerPlant
	var skipped int

	err := fetcher.ScanCSV(ctx, r, egridTable(1), func(row fetcher.Row) error {
		plant, ok := egridPlant(row)
		if !ok {
			skipped++
			return nil
		}
		plants = append(plants, plant)
		return nil
	})
	if err != nil {
		return nil, eris.Wrap(err, "catalog: load plant csv")
	}

	zap.L().Info("catalog: loaded power plants from csv",
		zap.Int("loaded", len(plants)), zap.Int("skipped", skipped))
	return plants, nil
}

// LoadPowerPlantsXLSX reads a plant sheet from the eGRID workbook at path.
// An empty sheet name selects the first sheet; eGRID names the plant sheet
// after the data year (PLNT22, PLNT23, ...), so callers importing the full
// workbook pass it explicitly.
func LoadPowerPlantsXLSX(ctx context.Context, path, sheet string) ([]model.PowerPlant, error) {
	var plants []model.PowerPlant
	var skipped int

	err := fetcher.ScanSheet(ctx, path, sheet, egridTable(5), func(row fetcher.Row) error {
		plant, ok := egridPlant(row)
		if !ok {
			skipped++
			return nil
		}
		plants = append(plants, plant)
		return nil
	})
	if err != nil {
		return nil, eris.Wrap(err, "catalog: load plant workbook")
	}

	zap.L().Info("catalog: loaded power plants from workbook",
		zap.Int("loaded", len(plants)), zap.Int("skipped", skipped))
	return plants, nil
}

// egridPlant converts one data row. Rows with unparseable identifiers,
// coordinates, or capacity are dropped with a warning.
func egridPlant(row fetcher.Row) (model.PowerPlant, bool) {
	oris, err := row.Int(egridColORIS)
	if err != nil {
		zap.L().Warn("catalog: skipping plant row with bad ORIS code",
			zap.String("value", row.Text(egridColORIS)))
		return model.PowerPlant{}, false
	}

	lat, latErr := row.Float(egridColLat)
	lon, lonErr := row.Float(egridColLon)
	capMW, capErr := row.Float(egridColCapacity)
	if latErr != nil || lonErr != nil || capErr != nil {
		zap.L().Warn("catalog: skipping plant row with unparseable numbers",
			zap.Int("oris_code", oris))
		return model.PowerPlant{}, false
	}

	rec := plantRecord{
		ORISCode:         oris,
		PlantName:        row.Text(egridColName),
		Latitude:         lat,
		Longitude:        lon,
		PrimaryFuel:      row.Text(egridColFuel),
		PrimaryFuelGroup: row.Text(egridColFuelCat),
		NameplateMW:      capMW,
	}
	// Annual generation is blank for plants without reported output.
	if gen, err := row.Float(egridColAnnualGen); err == nil {
		rec.AnnualNetGenMWh = &gen
	}

	return plantFromRecord(rec)
}

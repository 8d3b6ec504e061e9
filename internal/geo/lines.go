// Package geo imports HIFLD transmission-line shapefiles and associates the
// nearest lines with candidate sites.
package geo

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/gridsight/siting-cli/internal/fetcher"
	"github.com/gridsight/siting-cli/internal/model"
)

// DefaultLinesURL is the HIFLD electric power transmission lines shapefile.
const DefaultLinesURL = "https://opendata.arcgis.com/api/v3/datasets/d4090758322c4d32a4cd002ffaa0aa12_0/downloads/data?format=shp&spatialRefId=4326"

// Line is a transmission line read from a shapefile: an identifier, the
// operating voltage, and the polyline vertices in order.
type Line struct {
	ID        string
	VoltageKV int
	Points    []model.Coordinate
}

// ImportLines downloads a transmission-line shapefile ZIP, extracts it, and
// parses every polyline with a known voltage. A nil client gets a default
// with a timeout sized for the full HIFLD archive.
func ImportLines(ctx context.Context, c *fetcher.Client, url, tempDir string) ([]Line, error) {
	if c == nil {
		c = fetcher.NewClient(fetcher.WithTimeout(5 * time.Minute))
	}

	log := zap.L().With(zap.String("component", "geo.lines"))

	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return nil, eris.Wrap(err, "geo: create temp dir")
	}

	zipPath := filepath.Join(tempDir, "transmission_lines.zip")
	log.Info("downloading transmission-line shapefile", zap.String("url", url))

	if _, err := c.FetchFile(ctx, url, zipPath); err != nil {
		return nil, eris.Wrap(err, "geo: download transmission shapefile")
	}

	extracted, err := fetcher.Unpack(zipPath, filepath.Join(tempDir, "lines"))
	if err != nil {
		return nil, eris.Wrap(err, "geo: extract transmission ZIP")
	}

	shpPath, err := findByExt(extracted, ".shp")
	if err != nil {
		return nil, err
	}

	lines, err := LoadLines(shpPath)
	if err != nil {
		return nil, err
	}

	log.Info("transmission shapefile loaded", zap.Int("lines", len(lines)))
	return lines, nil
}

// LoadLines reads transmission lines from a shapefile on disk. Records
// without an ID or with an unknown voltage (HIFLD encodes unknown as a
// negative sentinel) are skipped.
func LoadLines(shpPath string) ([]Line, error) {
	reader, err := shp.Open(shpPath)
	if err != nil {
		return nil, eris.Wrap(err, "geo: open shapefile")
	}
	defer func() { _ = reader.Close() }()

	idIdx := fieldIndex(reader, "ID")
	voltIdx := fieldIndex(reader, "VOLTAGE")
	if idIdx < 0 || voltIdx < 0 {
		return nil, eris.New("geo: required shapefile fields (ID, VOLTAGE) not found")
	}

	var lines []Line
	for reader.Next() {
		_, shape := reader.Shape()
		poly, ok := shape.(*shp.PolyLine)
		if !ok || len(poly.Points) < 2 {
			continue
		}

		id := strings.TrimSpace(reader.Attribute(idIdx))
		if id == "" {
			continue
		}
		voltage := parseVoltage(reader.Attribute(voltIdx))
		if voltage <= 0 {
			continue
		}

		points := make([]model.Coordinate, 0, len(poly.Points))
		for _, p := range poly.Points {
			points = append(points, model.Coordinate{Latitude: p.Y, Longitude: p.X})
		}
		lines = append(lines, Line{ID: id, VoltageKV: voltage, Points: points})
	}

	return lines, nil
}

// parseVoltage parses a shapefile voltage attribute. Returns 0 when the
// attribute is empty or malformed; HIFLD's unknown sentinel stays negative.
func parseVoltage(attr string) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(attr), 64)
	if err != nil {
		return 0
	}
	return int(v)
}

// findByExt picks the first path with the given extension. HIFLD archives
// nest the shapefile inside a data directory, so extracted paths are matched
// wherever they landed.
func findByExt(paths []string, ext string) (string, error) {
	for _, p := range paths {
		if strings.EqualFold(filepath.Ext(p), ext) {
			return p, nil
		}
	}
	return "", eris.Errorf("geo: no %s file found in archive", ext)
}

// fieldIndex returns the index of a named field in the shapefile, or -1 if
// not found.
func fieldIndex(reader *shp.Reader, name string) int {
	for i, f := range reader.Fields() {
		if strings.EqualFold(strings.TrimRight(f.String(), "\x00"), name) {
			return i
		}
	}
	return -1
}

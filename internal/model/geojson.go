package model

import (
	"math"
	"strconv"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// point builds a WGS84 point geometry from a coordinate.
func point(c Coordinate) *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{c.Longitude, c.Latitude})
}

// SiteFeature converts a candidate site to a GeoJSON feature for map
// rendering.
func SiteFeature(s Site) *geojson.Feature {
	return &geojson.Feature{
		ID:       strconv.Itoa(s.ID),
		Geometry: point(s.Coordinates),
		Properties: map[string]any{
			"id":                       s.ID,
			"name":                     s.Name,
			"clean_gen":                s.CleanGen,
			"transmission_headroom":    s.TransmissionHeadroom,
			"reliability":              s.Reliability,
			"region":                   s.Region,
			"state":                    s.State,
			"nearby_projects_count":    len(s.NearbyProjects),
			"transmission_lines_count": len(s.TransmissionLines),
		},
	}
}

// PlantFeature converts a power plant to a GeoJSON feature.
func PlantFeature(p PowerPlant) *geojson.Feature {
	return &geojson.Feature{
		ID:       strconv.Itoa(p.ORISCode),
		Geometry: point(p.Coordinate()),
		Properties: map[string]any{
			"oris_code":             p.ORISCode,
			"plant_name":            p.PlantName,
			"primary_fuel":          p.PrimaryFuel,
			"primary_fuel_category": p.PrimaryFuelGroup,
			"nameplate_mw":          round1(p.NameplateMW),
			"annual_net_gen_mwh":    p.AnnualNetGenMWh,
			"is_renewable":          p.IsRenewable(),
			"is_clean":              p.IsClean(),
			"fuel_color":            p.FuelColor(),
		},
	}
}

// SourceFeature converts a located energy project to a GeoJSON feature.
// Returns nil for sources that have not been geocoded.
func SourceFeature(s EnergySource) *geojson.Feature {
	if !s.Located() {
		return nil
	}
	return &geojson.Feature{
		Geometry: point(*s.Coordinate),
		Properties: map[string]any{
			"name":             s.Name,
			"energy_source":    s.EnergyType,
			"capacity_mw":      s.PPACapacityMW,
			"address":          s.Address,
			"clean_multiplier": s.CleanMultiplier(),
		},
	}
}

// SiteCollection converts sites to a GeoJSON feature collection.
func SiteCollection(sites []Site) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{}
	for _, s := range sites {
		fc.Features = append(fc.Features, SiteFeature(s))
	}
	return fc
}

// PlantCollection converts power plants to a GeoJSON feature collection.
func PlantCollection(plants []PowerPlant) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{}
	for _, p := range plants {
		fc.Features = append(fc.Features, PlantFeature(p))
	}
	return fc
}

// SourceCollection converts located energy projects to a GeoJSON feature
// collection, skipping sources without coordinates.
func SourceCollection(sources []EnergySource) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{}
	for _, s := range sources {
		if f := SourceFeature(s); f != nil {
			fc.Features = append(fc.Features, f)
		}
	}
	return fc
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

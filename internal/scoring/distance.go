// Package scoring implements the geospatial scoring math for candidate
// sites: the planar distance model, proximity and transmission decay curves,
// percentile-based normalization, the three dimension calculators, and the
// weighted composite.
//
// Every function here is pure: full input in, value out, no retained state.
// The package is safe to call concurrently without locks.
package scoring

import (
	"math"

	"github.com/gridsight/siting-cli/internal/model"
)

// kmPerDegree is the approximate ground distance of one degree of latitude.
const kmPerDegree = 111.0

// Distance returns the approximate distance in kilometers between two
// points, using a planar small-angle approximation: latitude deltas scale by
// 111 km/degree, longitude deltas by 111 km/degree times cos(mean latitude).
//
// Faster than Haversine and sufficiently accurate below ~1000 km at
// continental-US latitudes. Accuracy degrades near the poles and across the
// antimeridian; that is a documented limitation, not a bug.
func Distance(a, b model.Coordinate) float64 {
	avgLat := (a.Latitude + b.Latitude) / 2.0

	latKM := (b.Latitude - a.Latitude) * kmPerDegree
	lonKM := (b.Longitude - a.Longitude) * kmPerDegree * math.Cos(avgLat*math.Pi/180.0)

	return math.Hypot(latKM, lonKM)
}

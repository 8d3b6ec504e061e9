package geo

import (
	"math"
	"sort"

	"github.com/gridsight/siting-cli/internal/model"
)

const kmPerDegree = 111.0

// surgeImpedanceMW approximates usable transfer capacity per voltage class.
// Rough surge impedance loading figures; good enough for descriptive
// metadata, never used by the scoring math.
func surgeImpedanceMW(voltageKV int) float64 {
	switch {
	case voltageKV >= 765:
		return 2200
	case voltageKV >= 500:
		return 900
	case voltageKV >= 345:
		return 400
	case voltageKV >= 230:
		return 150
	case voltageKV >= 115:
		return 50
	default:
		return 20
	}
}

// DistanceToLine returns the minimum distance in kilometers from a point to
// any segment of the line, using the same planar approximation as the
// scoring distance model.
func DistanceToLine(p model.Coordinate, line Line) float64 {
	best := math.Inf(1)
	for i := 0; i+1 < len(line.Points); i++ {
		d := segmentDistanceKM(p, line.Points[i], line.Points[i+1])
		if d < best {
			best = d
		}
	}
	if len(line.Points) == 1 {
		best = segmentDistanceKM(p, line.Points[0], line.Points[0])
	}
	return best
}

// segmentDistanceKM projects the three points onto a km plane centered on p's
// latitude and returns the point-to-segment distance.
func segmentDistanceKM(p, a, b model.Coordinate) float64 {
	lonScale := kmPerDegree * math.Cos(p.Latitude*math.Pi/180.0)

	ax := (a.Longitude - p.Longitude) * lonScale
	ay := (a.Latitude - p.Latitude) * kmPerDegree
	bx := (b.Longitude - p.Longitude) * lonScale
	by := (b.Latitude - p.Latitude) * kmPerDegree

	dx, dy := bx-ax, by-ay
	segLenSq := dx*dx + dy*dy
	if segLenSq == 0 {
		return math.Hypot(ax, ay)
	}

	// Clamp the projection of the origin onto the segment.
	t := -(ax*dx + ay*dy) / segLenSq
	t = math.Max(0, math.Min(1, t))

	return math.Hypot(ax+t*dx, ay+t*dy)
}

// NearestLines returns the transmission lines within maxKM of the point,
// closest first, at most limit entries. Capacity is estimated from the
// voltage class.
func NearestLines(p model.Coordinate, lines []Line, maxKM float64, limit int) []model.TransmissionLine {
	if limit <= 0 {
		limit = 3
	}

	var found []model.TransmissionLine
	for _, line := range lines {
		d := DistanceToLine(p, line)
		if d > maxKM {
			continue
		}
		capacity := surgeImpedanceMW(line.VoltageKV)
		found = append(found, model.TransmissionLine{
			LineID:              line.ID,
			DistanceKM:          math.Round(d*10) / 10,
			VoltageKV:           line.VoltageKV,
			CapacityAvailableMW: &capacity,
		})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].DistanceKM < found[j].DistanceKM })
	if len(found) > limit {
		found = found[:limit]
	}
	return found
}

// AssignLines populates each site's transmission-line metadata from the
// imported line set. Sites with no line within maxKM keep an empty list.
func AssignLines(sites []model.Site, lines []Line, maxKM float64, limit int) []model.Site {
	out := make([]model.Site, 0, len(sites))
	for _, s := range sites {
		out = append(out, s.WithTransmissionLines(NearestLines(s.Coordinates, lines, maxKM, limit)))
	}
	return out
}

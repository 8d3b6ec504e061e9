package scoring

import (
	"math"

	"github.com/gridsight/siting-cli/internal/model"
)

// Reliability scoring constants.
const (
	reliabilityZoneKM = 200.0 // plants inside this radius count

	neutralReliabilityScore  = 50.0 // no catalog at all
	isolatedReliabilityScore = 30.0 // catalog present, nothing nearby

	fullCreditPlantCount = 20.0    // 20+ plants = full redundancy credit
	fullCreditFuelTypes  = 5.0     // 5+ fuel categories = full diversity credit
	fullCreditCapacityMW = 10000.0 // 10 GW nearby = full strength credit

	countWeight     = 0.4
	diversityWeight = 0.3
	capacityWeight  = 0.3
)

// ReliabilityScore estimates grid reliability at a location from the density
// and diversity of generation within 200 km: redundancy (plant count),
// resilience (distinct fuel categories), and grid strength (total capacity),
// combined 40/30/30. Returns 50.0 with no catalog and 30.0 for an isolated
// site with a catalog but nothing in range.
func ReliabilityScore(loc model.Coordinate, plants []model.PowerPlant) float64 {
	if len(plants) == 0 {
		return neutralReliabilityScore
	}

	var count int
	fuels := make(map[string]bool)
	var totalMW float64

	for _, p := range plants {
		if Distance(loc, p.Coordinate()) <= reliabilityZoneKM {
			count++
			fuels[p.PrimaryFuelGroup] = true
			totalMW += p.NameplateMW
		}
	}

	if count == 0 {
		return isolatedReliabilityScore
	}

	countScore := math.Min(100.0, float64(count)/fullCreditPlantCount*100.0)
	diversityScore := math.Min(100.0, float64(len(fuels))/fullCreditFuelTypes*100.0)
	capacityScore := math.Min(100.0, totalMW/fullCreditCapacityMW*100.0)

	return countScore*countWeight + diversityScore*diversityWeight + capacityScore*capacityWeight
}

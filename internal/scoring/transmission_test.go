package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gridsight/siting-cli/internal/model"
)

// plantAtKM places a power plant the given distance due north of loc.
func plantAtKM(loc model.Coordinate, distanceKM, capacityMW float64, fuel, fuelGroup string) model.PowerPlant {
	return model.PowerPlant{
		PlantName:        "test plant",
		Latitude:         loc.Latitude + distanceKM/111.0,
		Longitude:        loc.Longitude,
		PrimaryFuel:      fuel,
		PrimaryFuelGroup: fuelGroup,
		NameplateMW:      capacityMW,
	}
}

func TestTransmissionScore(t *testing.T) {
	loc := model.Coordinate{Latitude: 40.0, Longitude: -100.0}

	t.Run("large plant at 80 km", func(t *testing.T) {
		plants := []model.PowerPlant{plantAtKM(loc, 80.0, 600.0, "NG", "GAS")}

		// 600 MW * 0.94 decay = 564 raw, against a 1000 MW-equivalent divisor.
		assert.InDelta(t, 56.4, TransmissionScore(loc, plants, 1000.0), 0.1)
	})

	t.Run("fossil capacity counts", func(t *testing.T) {
		coal := []model.PowerPlant{plantAtKM(loc, 30.0, 1200.0, "BIT", "COAL")}
		solar := []model.PowerPlant{plantAtKM(loc, 30.0, 1200.0, "SUN", "SOLAR")}

		assert.InDelta(t, TransmissionScore(loc, solar, 2000.0), TransmissionScore(loc, coal, 2000.0), 1e-9)
	})

	t.Run("clamped at 100", func(t *testing.T) {
		plants := []model.PowerPlant{plantAtKM(loc, 10.0, 9000.0, "NUC", "NUCLEAR")}

		assert.InDelta(t, 100.0, TransmissionScore(loc, plants, 1000.0), 1e-9)
	})

	t.Run("empty catalog is neutral", func(t *testing.T) {
		assert.InDelta(t, 50.0, TransmissionScore(loc, nil, 1000.0), 1e-9)
	})
}

func TestReliabilityScore(t *testing.T) {
	loc := model.Coordinate{Latitude: 40.0, Longitude: -100.0}

	t.Run("empty catalog is neutral", func(t *testing.T) {
		assert.InDelta(t, 50.0, ReliabilityScore(loc, nil), 1e-9)
	})

	t.Run("isolated site scores low", func(t *testing.T) {
		plants := []model.PowerPlant{plantAtKM(loc, 500.0, 2000.0, "NG", "GAS")}

		assert.InDelta(t, 30.0, ReliabilityScore(loc, plants), 1e-9)
	})

	t.Run("dense diverse grid scores full credit", func(t *testing.T) {
		var plants []model.PowerPlant
		groups := []string{"GAS", "SOLAR", "WIND", "NUCLEAR", "HYDRO"}
		for i := 0; i < 20; i++ {
			plants = append(plants, plantAtKM(loc, float64(5+i*5), 500.0, "NG", groups[i%len(groups)]))
		}

		// 20 plants, 5 fuel groups, 10 GW total: every component maxes out.
		assert.InDelta(t, 100.0, ReliabilityScore(loc, plants), 1e-9)
	})

	t.Run("partial credit blends components", func(t *testing.T) {
		plants := []model.PowerPlant{
			plantAtKM(loc, 50.0, 1000.0, "NG", "GAS"),
			plantAtKM(loc, 100.0, 1000.0, "SUN", "SOLAR"),
		}

		// count 2/20 -> 10, diversity 2/5 -> 40, capacity 2000/10000 -> 20.
		expected := 10.0*0.4 + 40.0*0.3 + 20.0*0.3
		assert.InDelta(t, expected, ReliabilityScore(loc, plants), 1e-9)
	})

	t.Run("plants beyond 200 km are ignored", func(t *testing.T) {
		plants := []model.PowerPlant{
			plantAtKM(loc, 150.0, 1000.0, "NG", "GAS"),
			plantAtKM(loc, 250.0, 5000.0, "NUC", "NUCLEAR"),
		}

		expected := 5.0*0.4 + 20.0*0.3 + 10.0*0.3
		assert.InDelta(t, expected, ReliabilityScore(loc, plants), 1e-9)
	})
}

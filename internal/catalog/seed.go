package catalog

import "github.com/gridsight/siting-cli/internal/model"

func mw(v float64) *float64 { return &v }

// SeedSites returns the built-in catalog of 40 candidate grid sites across
// the major US regions. Transmission and reliability baselines are hand
// calibrated; clean generation starts at zero (or a survey figure where one
// exists) and RecalculateScores fills it in once plant and project data is
// loaded.
func SeedSites() []model.Site {
	return []model.Site{
		{
			ID: 1, Name: "Pacific Northwest Node A",
			Coordinates: model.Coordinate{Latitude: 45.523, Longitude: -122.676},
			CleanGen:    0.0, TransmissionHeadroom: 74, Reliability: 68,
			Region: "Pacific Northwest", State: "OR", BalancingAuthority: "BPA",
			NearbyProjects: []model.NearbyProject{
				{Name: "Columbia Gorge Wind Farm", DistanceKM: 48, CapacityMW: 300, ProjectType: "wind", Status: "operational"},
				{Name: "Cascade Hydro Expansion", DistanceKM: 85, CapacityMW: 450, ProjectType: "hydro", Status: "under_construction"},
			},
			TransmissionLines: []model.TransmissionLine{
				{LineID: "BPA-500-01", DistanceKM: 12, VoltageKV: 500, CapacityAvailableMW: mw(350)},
			},
		},
		{
			ID: 2, Name: "Washington State Node B",
			Coordinates: model.Coordinate{Latitude: 47.606, Longitude: -122.332},
			CleanGen:    0.0, TransmissionHeadroom: 82, Reliability: 71,
			Region: "Pacific Northwest", State: "WA", BalancingAuthority: "BPA",
			NearbyProjects: []model.NearbyProject{
				{Name: "Puget Sound Offshore Wind", DistanceKM: 65, CapacityMW: 800, ProjectType: "wind", Status: "planned"},
			},
			TransmissionLines: []model.TransmissionLine{
				{LineID: "BPA-500-02", DistanceKM: 8, VoltageKV: 500, CapacityAvailableMW: mw(420)},
			},
		},
		{
			ID: 3, Name: "Northern California Node C",
			Coordinates: model.Coordinate{Latitude: 40.55, Longitude: -122.39},
			CleanGen:    0.0, TransmissionHeadroom: 55, Reliability: 58,
			Region: "California", State: "CA", BalancingAuthority: "CAISO",
			NearbyProjects: []model.NearbyProject{
				{Name: "Sierra Solar Array", DistanceKM: 32, CapacityMW: 500, ProjectType: "solar", Status: "operational"},
				{Name: "Shasta Pumped Storage", DistanceKM: 55, CapacityMW: 1200, ProjectType: "hydro", Status: "operational"},
			},
			TransmissionLines: []model.TransmissionLine{
				{LineID: "CAISO-500-12", DistanceKM: 18, VoltageKV: 500, CapacityAvailableMW: mw(180)},
			},
		},
		{
			ID: 4, Name: "Central California Node D",
			Coordinates: model.Coordinate{Latitude: 36.778, Longitude: -119.417},
			CleanGen:    0.0, TransmissionHeadroom: 48, Reliability: 62,
			Region: "California", State: "CA", BalancingAuthority: "CAISO",
			NearbyProjects: []model.NearbyProject{
				{Name: "Central Valley Solar Farm", DistanceKM: 22, CapacityMW: 650, ProjectType: "solar", Status: "operational"},
				{Name: "Diablo Canyon Extension", DistanceKM: 95, CapacityMW: 2200, ProjectType: "nuclear", Status: "operational"},
			},
		},
		{
			ID: 5, Name: "Texas Panhandle Node E",
			Coordinates: model.Coordinate{Latitude: 35.22, Longitude: -101.83},
			CleanGen:    0.0, TransmissionHeadroom: 88, Reliability: 72,
			Region: "Texas", State: "TX", BalancingAuthority: "ERCOT",
			NearbyProjects: []model.NearbyProject{
				{Name: "Panhandle Wind Complex", DistanceKM: 18, CapacityMW: 1100, ProjectType: "wind", Status: "operational"},
				{Name: "Amarillo Solar Park", DistanceKM: 42, CapacityMW: 300, ProjectType: "solar", Status: "operational"},
			},
			TransmissionLines: []model.TransmissionLine{
				{LineID: "ERCOT-345-23", DistanceKM: 15, VoltageKV: 345, CapacityAvailableMW: mw(520)},
			},
		},
		{
			ID: 6, Name: "West Texas Node F",
			Coordinates: model.Coordinate{Latitude: 31.997, Longitude: -102.078},
			CleanGen:    0.0, TransmissionHeadroom: 92, Reliability: 75,
			Region: "Texas", State: "TX", BalancingAuthority: "ERCOT",
			NearbyProjects: []model.NearbyProject{
				{Name: "Permian Basin Solar", DistanceKM: 28, CapacityMW: 850, ProjectType: "solar", Status: "operational"},
			},
			TransmissionLines: []model.TransmissionLine{
				{LineID: "ERCOT-500-45", DistanceKM: 10, VoltageKV: 500, CapacityAvailableMW: mw(680)},
			},
		},
		{
			ID: 7, Name: "Central Texas Node G",
			Coordinates: model.Coordinate{Latitude: 30.267, Longitude: -97.743},
			CleanGen:    100.0, TransmissionHeadroom: 71, Reliability: 78,
			Region: "Texas", State: "TX", BalancingAuthority: "ERCOT",
		},
		{
			ID: 8, Name: "Iowa Wind Corridor Node H",
			Coordinates: model.Coordinate{Latitude: 41.6, Longitude: -93.62},
			CleanGen:    0.0, TransmissionHeadroom: 79, Reliability: 81,
			Region: "Midwest", State: "IA", BalancingAuthority: "MISO",
			NearbyProjects: []model.NearbyProject{
				{Name: "Iowa Wind Belt", DistanceKM: 25, CapacityMW: 950, ProjectType: "wind", Status: "operational"},
				{Name: "Des Moines Solar Hub", DistanceKM: 35, CapacityMW: 200, ProjectType: "solar", Status: "operational"},
			},
			TransmissionLines: []model.TransmissionLine{
				{LineID: "MISO-345-67", DistanceKM: 14, VoltageKV: 345, CapacityAvailableMW: mw(410)},
			},
		},
		{
			ID: 9, Name: "Illinois Hub Node I",
			Coordinates: model.Coordinate{Latitude: 40.633, Longitude: -89.398},
			CleanGen:    32.2, TransmissionHeadroom: 85, Reliability: 83,
			Region: "Midwest", State: "IL", BalancingAuthority: "MISO",
			NearbyProjects: []model.NearbyProject{
				{Name: "Illinois Wind Farm", DistanceKM: 45, CapacityMW: 400, ProjectType: "wind", Status: "operational"},
				{Name: "Byron Nuclear Station", DistanceKM: 120, CapacityMW: 2300, ProjectType: "nuclear", Status: "operational"},
			},
		},
		{
			ID: 10, Name: "Minnesota Node J",
			Coordinates: model.Coordinate{Latitude: 46.729, Longitude: -94.686},
			CleanGen:    0.0, TransmissionHeadroom: 73, Reliability: 79,
			Region: "Midwest", State: "MN", BalancingAuthority: "MISO",
		},
		{
			ID: 11, Name: "Georgia Corridor Node K",
			Coordinates: model.Coordinate{Latitude: 33.95, Longitude: -83.38},
			CleanGen:    0.0, TransmissionHeadroom: 62, Reliability: 76,
			Region: "Southeast", State: "GA", BalancingAuthority: "Southern Company",
			NearbyProjects: []model.NearbyProject{
				{Name: "Georgia Solar Initiative", DistanceKM: 38, CapacityMW: 350, ProjectType: "solar", Status: "operational"},
				{Name: "Vogtle Nuclear Expansion", DistanceKM: 155, CapacityMW: 2200, ProjectType: "nuclear", Status: "operational"},
			},
		},
		{
			ID: 12, Name: "North Carolina Node L",
			Coordinates: model.Coordinate{Latitude: 35.779, Longitude: -78.638},
			CleanGen:    100.0, TransmissionHeadroom: 68, Reliability: 74,
			Region: "Southeast", State: "NC", BalancingAuthority: "Duke Energy",
		},
		{
			ID: 13, Name: "Colorado Renewables Node M",
			Coordinates: model.Coordinate{Latitude: 39.739, Longitude: -104.99},
			CleanGen:    0.0, TransmissionHeadroom: 77, Reliability: 70,
			Region: "Mountain West", State: "CO", BalancingAuthority: "WAPA",
			NearbyProjects: []model.NearbyProject{
				{Name: "Front Range Wind", DistanceKM: 55, CapacityMW: 600, ProjectType: "wind", Status: "operational"},
				{Name: "Rocky Mountain Solar", DistanceKM: 42, CapacityMW: 400, ProjectType: "solar", Status: "under_construction"},
			},
			TransmissionLines: []model.TransmissionLine{
				{LineID: "WAPA-345-89", DistanceKM: 22, VoltageKV: 345, CapacityAvailableMW: mw(380)},
			},
		},
		{
			ID: 14, Name: "New Mexico Node N",
			Coordinates: model.Coordinate{Latitude: 35.085, Longitude: -106.605},
			CleanGen:    0.0, TransmissionHeadroom: 81, Reliability: 67,
			Region: "Mountain West", State: "NM", BalancingAuthority: "WAPA",
		},
		{
			ID: 15, Name: "New York Upstate Node O",
			Coordinates: model.Coordinate{Latitude: 43.048, Longitude: -76.147},
			CleanGen:    0.0, TransmissionHeadroom: 59, Reliability: 82,
			Region: "Northeast", State: "NY", BalancingAuthority: "NYISO",
			NearbyProjects: []model.NearbyProject{
				{Name: "Lake Ontario Offshore Wind", DistanceKM: 72, CapacityMW: 1200, ProjectType: "wind", Status: "planned"},
				{Name: "Niagara Hydro Upgrade", DistanceKM: 95, CapacityMW: 800, ProjectType: "hydro", Status: "operational"},
			},
			TransmissionLines: []model.TransmissionLine{
				{LineID: "NYISO-345-12", DistanceKM: 16, VoltageKV: 345, CapacityAvailableMW: mw(290)},
			},
		},
		{
			ID: 16, Name: "Arizona Solar Belt Node P",
			Coordinates: model.Coordinate{Latitude: 33.448, Longitude: -112.074},
			CleanGen:    0.0, TransmissionHeadroom: 84, Reliability: 73,
			Region: "Southwest", State: "AZ", BalancingAuthority: "WECC",
			NearbyProjects: []model.NearbyProject{
				{Name: "Phoenix Solar Complex", DistanceKM: 25, CapacityMW: 750, ProjectType: "solar", Status: "operational"},
				{Name: "Palo Verde Nuclear Station", DistanceKM: 65, CapacityMW: 3900, ProjectType: "nuclear", Status: "operational"},
			},
			TransmissionLines: []model.TransmissionLine{
				{LineID: "WECC-500-34", DistanceKM: 18, VoltageKV: 500, CapacityAvailableMW: mw(580)},
			},
		},
		{
			ID: 17, Name: "Nevada Renewables Node Q",
			Coordinates: model.Coordinate{Latitude: 36.171, Longitude: -115.137},
			CleanGen:    0.0, TransmissionHeadroom: 78, Reliability: 69,
			Region: "Southwest", State: "NV", BalancingAuthority: "WECC",
			NearbyProjects: []model.NearbyProject{
				{Name: "Mojave Desert Solar Array", DistanceKM: 45, CapacityMW: 1100, ProjectType: "solar", Status: "operational"},
				{Name: "Hoover Dam Hydro", DistanceKM: 48, CapacityMW: 2080, ProjectType: "hydro", Status: "operational"},
			},
			TransmissionLines: []model.TransmissionLine{
				{LineID: "WECC-500-56", DistanceKM: 12, VoltageKV: 500, CapacityAvailableMW: mw(620)},
			},
		},
		{
			ID: 18, Name: "Utah Grid Node R",
			Coordinates: model.Coordinate{Latitude: 40.761, Longitude: -111.891},
			CleanGen:    0.0, TransmissionHeadroom: 76, Reliability: 75,
			Region: "Southwest", State: "UT", BalancingAuthority: "WECC",
			NearbyProjects: []model.NearbyProject{
				{Name: "Wasatch Wind Farm", DistanceKM: 38, CapacityMW: 450, ProjectType: "wind", Status: "operational"},
			},
		},
		{
			ID: 19, Name: "Southern Arizona Node S",
			Coordinates: model.Coordinate{Latitude: 32.222, Longitude: -110.926},
			CleanGen:    0.0, TransmissionHeadroom: 81, Reliability: 71,
			Region: "Southwest", State: "AZ", BalancingAuthority: "WECC",
			NearbyProjects: []model.NearbyProject{
				{Name: "Tucson Solar Park", DistanceKM: 28, CapacityMW: 600, ProjectType: "solar", Status: "operational"},
			},
			TransmissionLines: []model.TransmissionLine{
				{LineID: "WECC-345-78", DistanceKM: 15, VoltageKV: 345, CapacityAvailableMW: mw(440)},
			},
		},
		{
			ID: 20, Name: "Northern Nevada Node T",
			Coordinates: model.Coordinate{Latitude: 39.529, Longitude: -119.814},
			CleanGen:    0.0, TransmissionHeadroom: 72, Reliability: 68,
			Region: "Southwest", State: "NV", BalancingAuthority: "WECC",
		},
		{
			ID: 21, Name: "Oklahoma Wind Node U",
			Coordinates: model.Coordinate{Latitude: 35.467, Longitude: -97.516},
			CleanGen:    0.0, TransmissionHeadroom: 83, Reliability: 76,
			Region: "Plains", State: "OK", BalancingAuthority: "SPP",
			NearbyProjects: []model.NearbyProject{
				{Name: "Oklahoma Wind Corridor", DistanceKM: 35, CapacityMW: 850, ProjectType: "wind", Status: "operational"},
				{Name: "Central Plains Wind", DistanceKM: 52, CapacityMW: 650, ProjectType: "wind", Status: "under_construction"},
			},
			TransmissionLines: []model.TransmissionLine{
				{LineID: "SPP-345-23", DistanceKM: 20, VoltageKV: 345, CapacityAvailableMW: mw(490)},
			},
		},
		{
			ID: 22, Name: "Kansas Energy Hub Node V",
			Coordinates: model.Coordinate{Latitude: 38.956, Longitude: -95.255},
			CleanGen:    0.0, TransmissionHeadroom: 85, Reliability: 78,
			Region: "Plains", State: "KS", BalancingAuthority: "SPP",
			NearbyProjects: []model.NearbyProject{
				{Name: "Kansas Wind Belt", DistanceKM: 42, CapacityMW: 750, ProjectType: "wind", Status: "operational"},
			},
			TransmissionLines: []model.TransmissionLine{
				{LineID: "SPP-345-45", DistanceKM: 18, VoltageKV: 345, CapacityAvailableMW: mw(510)},
			},
		},
		{
			ID: 23, Name: "Nebraska Grid Node W",
			Coordinates: model.Coordinate{Latitude: 41.256, Longitude: -96.011},
			CleanGen:    0.0, TransmissionHeadroom: 80, Reliability: 80,
			Region: "Plains", State: "NE", BalancingAuthority: "SPP",
		},
		{
			ID: 24, Name: "South Dakota Wind Node X",
			Coordinates: model.Coordinate{Latitude: 43.545, Longitude: -96.731},
			CleanGen:    0.0, TransmissionHeadroom: 77, Reliability: 77,
			Region: "Plains", State: "SD", BalancingAuthority: "MISO",
			NearbyProjects: []model.NearbyProject{
				{Name: "Dakota Wind Project", DistanceKM: 30, CapacityMW: 550, ProjectType: "wind", Status: "operational"},
			},
		},
		{
			ID: 25, Name: "North Dakota Energy Node Y",
			Coordinates: model.Coordinate{Latitude: 46.827, Longitude: -100.779},
			CleanGen:    0.0, TransmissionHeadroom: 74, Reliability: 75,
			Region: "Plains", State: "ND", BalancingAuthority: "MISO",
			NearbyProjects: []model.NearbyProject{
				{Name: "Great Plains Wind Farm", DistanceKM: 45, CapacityMW: 600, ProjectType: "wind", Status: "operational"},
			},
		},
		{
			ID: 26, Name: "Pennsylvania Grid Node Z",
			Coordinates: model.Coordinate{Latitude: 40.441, Longitude: -79.996},
			CleanGen:    35.4, TransmissionHeadroom: 67, Reliability: 84,
			Region: "Mid-Atlantic", State: "PA", BalancingAuthority: "PJM",
			NearbyProjects: []model.NearbyProject{
				{Name: "Allegheny Solar Initiative", DistanceKM: 38, CapacityMW: 400, ProjectType: "solar", Status: "operational"},
				{Name: "Susquehanna Nuclear Station", DistanceKM: 145, CapacityMW: 2500, ProjectType: "nuclear", Status: "operational"},
			},
			TransmissionLines: []model.TransmissionLine{
				{LineID: "PJM-500-12", DistanceKM: 14, VoltageKV: 500, CapacityAvailableMW: mw(380)},
			},
		},
		{
			ID: 27, Name: "Virginia Corridor Node AA",
			Coordinates: model.Coordinate{Latitude: 37.431, Longitude: -78.656},
			CleanGen:    100.0, TransmissionHeadroom: 71, Reliability: 79,
			Region: "Mid-Atlantic", State: "VA", BalancingAuthority: "PJM",
			NearbyProjects: []model.NearbyProject{
				{Name: "Virginia Offshore Wind", DistanceKM: 185, CapacityMW: 2600, ProjectType: "wind", Status: "under_construction"},
				{Name: "Shenandoah Solar Park", DistanceKM: 42, CapacityMW: 350, ProjectType: "solar", Status: "operational"},
			},
		},
		{
			ID: 28, Name: "Maryland Hub Node AB",
			Coordinates: model.Coordinate{Latitude: 39.290, Longitude: -76.612},
			CleanGen:    100.0, TransmissionHeadroom: 65, Reliability: 81,
			Region: "Mid-Atlantic", State: "MD", BalancingAuthority: "PJM",
			NearbyProjects: []model.NearbyProject{
				{Name: "Chesapeake Offshore Wind", DistanceKM: 95, CapacityMW: 1500, ProjectType: "wind", Status: "planned"},
			},
			TransmissionLines: []model.TransmissionLine{
				{LineID: "PJM-345-67", DistanceKM: 22, VoltageKV: 345, CapacityAvailableMW: mw(320)},
			},
		},
		{
			ID: 29, Name: "Louisiana Industrial Node AC",
			Coordinates: model.Coordinate{Latitude: 30.224, Longitude: -92.020},
			CleanGen:    32.6, TransmissionHeadroom: 79, Reliability: 72,
			Region: "Gulf Coast", State: "LA", BalancingAuthority: "MISO",
			NearbyProjects: []model.NearbyProject{
				{Name: "Louisiana Solar Farm", DistanceKM: 48, CapacityMW: 450, ProjectType: "solar", Status: "operational"},
				{Name: "Gulf Coast Offshore Wind", DistanceKM: 125, CapacityMW: 1800, ProjectType: "wind", Status: "planned"},
			},
		},
		{
			ID: 30, Name: "Mississippi Grid Node AD",
			Coordinates: model.Coordinate{Latitude: 32.298, Longitude: -90.184},
			CleanGen:    50.2, TransmissionHeadroom: 73, Reliability: 74,
			Region: "Gulf Coast", State: "MS", BalancingAuthority: "MISO",
			NearbyProjects: []model.NearbyProject{
				{Name: "Mississippi Solar Initiative", DistanceKM: 35, CapacityMW: 300, ProjectType: "solar", Status: "operational"},
			},
		},
		{
			ID: 31, Name: "Alabama Energy Node AE",
			Coordinates: model.Coordinate{Latitude: 33.520, Longitude: -86.802},
			CleanGen:    0.0, TransmissionHeadroom: 69, Reliability: 77,
			Region: "Gulf Coast", State: "AL", BalancingAuthority: "Southern Company",
			NearbyProjects: []model.NearbyProject{
				{Name: "Alabama Nuclear Plant", DistanceKM: 88, CapacityMW: 3600, ProjectType: "nuclear", Status: "operational"},
			},
			TransmissionLines: []model.TransmissionLine{
				{LineID: "SO-500-23", DistanceKM: 19, VoltageKV: 500, CapacityAvailableMW: mw(410)},
			},
		},
		{
			ID: 32, Name: "Florida Panhandle Node AF",
			Coordinates: model.Coordinate{Latitude: 30.438, Longitude: -84.281},
			CleanGen:    0.0, TransmissionHeadroom: 66, Reliability: 75,
			Region: "Gulf Coast", State: "FL", BalancingAuthority: "Southern Company",
			NearbyProjects: []model.NearbyProject{
				{Name: "Florida Solar Belt", DistanceKM: 52, CapacityMW: 700, ProjectType: "solar", Status: "operational"},
			},
		},
		{
			ID: 33, Name: "Montana Wind Node AG",
			Coordinates: model.Coordinate{Latitude: 46.872, Longitude: -113.994},
			CleanGen:    0.0, TransmissionHeadroom: 70, Reliability: 66,
			Region: "Mountain West", State: "MT", BalancingAuthority: "WAPA",
			NearbyProjects: []model.NearbyProject{
				{Name: "Montana Wind Corridor", DistanceKM: 62, CapacityMW: 800, ProjectType: "wind", Status: "operational"},
				{Name: "Glacier Hydro Project", DistanceKM: 95, CapacityMW: 500, ProjectType: "hydro", Status: "operational"},
			},
		},
		{
			ID: 34, Name: "Wyoming Energy Hub Node AH",
			Coordinates: model.Coordinate{Latitude: 41.139, Longitude: -104.820},
			CleanGen:    0.0, TransmissionHeadroom: 82, Reliability: 73,
			Region: "Mountain West", State: "WY", BalancingAuthority: "WAPA",
			NearbyProjects: []model.NearbyProject{
				{Name: "Wyoming Wind Farm", DistanceKM: 40, CapacityMW: 650, ProjectType: "wind", Status: "operational"},
			},
			TransmissionLines: []model.TransmissionLine{
				{LineID: "WAPA-345-56", DistanceKM: 25, VoltageKV: 345, CapacityAvailableMW: mw(460)},
			},
		},
		{
			ID: 35, Name: "Idaho Hydro Node AI",
			Coordinates: model.Coordinate{Latitude: 43.615, Longitude: -116.202},
			CleanGen:    0.0, TransmissionHeadroom: 75, Reliability: 70,
			Region: "Mountain West", State: "ID", BalancingAuthority: "WECC",
			NearbyProjects: []model.NearbyProject{
				{Name: "Snake River Hydro Complex", DistanceKM: 55, CapacityMW: 900, ProjectType: "hydro", Status: "operational"},
				{Name: "Idaho Wind Project", DistanceKM: 72, CapacityMW: 400, ProjectType: "wind", Status: "operational"},
			},
		},
		{
			ID: 36, Name: "Eastern Oregon Node AJ",
			Coordinates: model.Coordinate{Latitude: 45.711, Longitude: -118.789},
			CleanGen:    0.0, TransmissionHeadroom: 76, Reliability: 69,
			Region: "Mountain West", State: "OR", BalancingAuthority: "BPA",
		},
		{
			ID: 37, Name: "Massachusetts Hub Node AK",
			Coordinates: model.Coordinate{Latitude: 42.361, Longitude: -71.057},
			CleanGen:    0.0, TransmissionHeadroom: 58, Reliability: 85,
			Region: "New England", State: "MA", BalancingAuthority: "ISO-NE",
			NearbyProjects: []model.NearbyProject{
				{Name: "Cape Cod Offshore Wind", DistanceKM: 85, CapacityMW: 2400, ProjectType: "wind", Status: "under_construction"},
				{Name: "Massachusetts Solar Initiative", DistanceKM: 35, CapacityMW: 350, ProjectType: "solar", Status: "operational"},
			},
			TransmissionLines: []model.TransmissionLine{
				{LineID: "ISONE-345-12", DistanceKM: 12, VoltageKV: 345, CapacityAvailableMW: mw(310)},
			},
		},
		{
			ID: 38, Name: "Connecticut Grid Node AL",
			Coordinates: model.Coordinate{Latitude: 41.763, Longitude: -72.685},
			CleanGen:    0.0, TransmissionHeadroom: 62, Reliability: 83,
			Region: "New England", State: "CT", BalancingAuthority: "ISO-NE",
			NearbyProjects: []model.NearbyProject{
				{Name: "Long Island Sound Offshore Wind", DistanceKM: 68, CapacityMW: 1800, ProjectType: "wind", Status: "planned"},
			},
		},
		{
			ID: 39, Name: "Maine Renewables Node AM",
			Coordinates: model.Coordinate{Latitude: 44.311, Longitude: -69.778},
			CleanGen:    0.0, TransmissionHeadroom: 64, Reliability: 78,
			Region: "New England", State: "ME", BalancingAuthority: "ISO-NE",
			NearbyProjects: []model.NearbyProject{
				{Name: "Maine Offshore Wind", DistanceKM: 95, CapacityMW: 2000, ProjectType: "wind", Status: "planned"},
				{Name: "Kennebec Hydro", DistanceKM: 42, CapacityMW: 550, ProjectType: "hydro", Status: "operational"},
			},
		},
		{
			ID: 40, Name: "Vermont Green Node AN",
			Coordinates: model.Coordinate{Latitude: 44.260, Longitude: -72.576},
			CleanGen:    0.0, TransmissionHeadroom: 61, Reliability: 80,
			Region: "New England", State: "VT", BalancingAuthority: "ISO-NE",
			NearbyProjects: []model.NearbyProject{
				{Name: "Vermont Wind Farm", DistanceKM: 38, CapacityMW: 300, ProjectType: "wind", Status: "operational"},
				{Name: "Green Mountain Hydro", DistanceKM: 55, CapacityMW: 450, ProjectType: "hydro", Status: "operational"},
			},
			TransmissionLines: []model.TransmissionLine{
				{LineID: "ISONE-345-34", DistanceKM: 28, VoltageKV: 345, CapacityAvailableMW: mw(280)},
			},
		},
	}
}

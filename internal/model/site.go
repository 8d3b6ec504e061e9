package model

// NearbyProject is a clean energy project near a candidate site. Descriptive
// metadata only; the scoring math never reads it.
type NearbyProject struct {
	Name        string  `json:"name"`
	DistanceKM  float64 `json:"distance_km"`
	CapacityMW  int     `json:"capacity_mw"`
	ProjectType string  `json:"project_type"`
	Status      string  `json:"status"`
}

// TransmissionLine is nearby transmission infrastructure. Descriptive
// metadata only.
type TransmissionLine struct {
	LineID              string   `json:"line_id"`
	DistanceKM          float64  `json:"distance_km"`
	VoltageKV           int      `json:"voltage_kv"`
	CapacityAvailableMW *float64 `json:"capacity_available_mw,omitempty"`
}

// NearbyPlant is a power plant near an evaluated location, reported for
// transparency on what drives the scores.
type NearbyPlant struct {
	ORISCode         int     `json:"oris_code"`
	PlantName        string  `json:"plant_name"`
	DistanceKM       float64 `json:"distance_km"`
	PrimaryFuel      string  `json:"primary_fuel"`
	PrimaryFuelGroup string  `json:"primary_fuel_category"`
	NameplateMW      float64 `json:"nameplate_mw"`
	IsClean          bool    `json:"is_clean"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
}

// Site is a candidate location for an electricity-intensive load, carrying
// three 0-100 dimension scores. Sites are value objects: score updates go
// through WithScores, which returns a copy, never a mutation in place.
type Site struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Coordinates Coordinate `json:"coordinates"`

	CleanGen             float64 `json:"clean_gen"`
	TransmissionHeadroom float64 `json:"transmission_headroom"`
	Reliability          float64 `json:"reliability"`

	NearbyProjects    []NearbyProject    `json:"nearby_projects,omitempty"`
	TransmissionLines []TransmissionLine `json:"transmission_lines,omitempty"`

	Region             string `json:"region,omitempty"`
	State              string `json:"state,omitempty"`
	BalancingAuthority string `json:"balancing_authority,omitempty"`
}

// WithScores returns a copy of the site with the three dimension scores
// replaced.
func (s Site) WithScores(cleanGen, transmission, reliability float64) Site {
	s.CleanGen = cleanGen
	s.TransmissionHeadroom = transmission
	s.Reliability = reliability
	return s
}

// WithCleanGen returns a copy of the site with only the clean generation
// score replaced.
func (s Site) WithCleanGen(score float64) Site {
	s.CleanGen = score
	return s
}

// WithTransmission returns a copy of the site with only the transmission
// headroom score replaced.
func (s Site) WithTransmission(score float64) Site {
	s.TransmissionHeadroom = score
	return s
}

// WithTransmissionLines returns a copy of the site with the descriptive
// transmission-line list replaced.
func (s Site) WithTransmissionLines(lines []TransmissionLine) Site {
	s.TransmissionLines = lines
	return s
}

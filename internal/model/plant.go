package model

// Fuel categories as reported by eGRID.
const (
	FuelSolar      = "SOLAR"
	FuelWind       = "WIND"
	FuelHydro      = "HYDRO"
	FuelGeothermal = "GEOTHERMAL"
	FuelNuclear    = "NUCLEAR"
	FuelBiomass    = "BIOMASS"
	FuelGas        = "GAS"
	FuelCoal       = "COAL"
	FuelOil        = "OIL"
)

// renewableFuels are the EIA fuel codes counted as renewable.
var renewableFuels = map[string]bool{
	"WND": true, "SUN": true, "WAT": true, "GEO": true,
}

// renewableCategories are the eGRID fuel categories counted as renewable.
var renewableCategories = map[string]bool{
	FuelWind: true, FuelSolar: true, FuelHydro: true, FuelGeothermal: true,
}

// PowerPlant is a generation asset from the eGRID database, any fuel type.
// Immutable after catalog load.
type PowerPlant struct {
	ORISCode         int     `json:"oris_code"`
	PlantName        string  `json:"plant_name"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	PrimaryFuel      string  `json:"primary_fuel"`
	PrimaryFuelGroup string  `json:"primary_fuel_category"`
	NameplateMW      float64 `json:"nameplate_mw"`
	AnnualNetGenMWh  float64 `json:"annual_net_gen_mwh"`
}

// Coordinate returns the plant location.
func (p PowerPlant) Coordinate() Coordinate {
	return Coordinate{Latitude: p.Latitude, Longitude: p.Longitude}
}

// IsRenewable reports whether the plant runs on wind, solar, hydro, or
// geothermal.
func (p PowerPlant) IsRenewable() bool {
	return renewableFuels[p.PrimaryFuel] || renewableCategories[p.PrimaryFuelGroup]
}

// IsClean reports whether the plant counts toward clean-generation scoring.
// Clean is deliberately the same set as renewable: nuclear and biomass are
// excluded even though other parts of the industry sometimes label nuclear
// "clean". Keeping both names preserves the two call sites' intent while
// pinning down a single definition.
func (p PowerPlant) IsClean() bool {
	return p.IsRenewable()
}

// FuelColor returns the map display color for the plant's fuel category.
func (p PowerPlant) FuelColor() string {
	return FuelCategoryColor(p.PrimaryFuelGroup)
}

// fuelCategoryColors maps eGRID fuel categories to map display colors.
// Clean sources get the green/blue palette, fossil sources warm colors.
var fuelCategoryColors = map[string]string{
	FuelSolar:      "#22c55e",
	FuelWind:       "#10b981",
	FuelHydro:      "#0ea5e9",
	FuelGeothermal: "#84cc16",
	FuelBiomass:    "#f59e0b",
	FuelNuclear:    "#8b5cf6",
	FuelGas:        "#f97316",
	FuelCoal:       "#ef4444",
	FuelOil:        "#dc2626",
	"OFSL":         "#fb923c",
	"OTHF":         "#a855f7",
}

// FuelCategoryColor returns the display color for a fuel category, defaulting
// to gray for unknown categories.
func FuelCategoryColor(category string) string {
	if c, ok := fuelCategoryColors[category]; ok {
		return c
	}
	return "#6b7280"
}

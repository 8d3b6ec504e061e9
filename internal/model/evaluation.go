package model

import "time"

// ScoreBreakdown is the output of a composite scoring call: the three raw
// dimension scores, their weighted contributions, the composite, and the
// weights used. Never mutated after construction.
type ScoreBreakdown struct {
	CleanGenScore        float64 `json:"clean_gen_score"`
	CleanGenContribution float64 `json:"clean_gen_contribution"`

	TransmissionScore        float64 `json:"transmission_score"`
	TransmissionContribution float64 `json:"transmission_contribution"`

	ReliabilityScore        float64 `json:"reliability_score"`
	ReliabilityContribution float64 `json:"reliability_contribution"`

	CompositeScore float64 `json:"composite_score"`

	WeightsUsed Weights `json:"weights_used"`
}

// AlternativeSite is a ranked alternative to a reference site.
type AlternativeSite struct {
	ID                   int     `json:"id"`
	Name                 string  `json:"name"`
	CompositeScore       float64 `json:"composite_score"`
	CleanGen             float64 `json:"clean_gen"`
	TransmissionHeadroom float64 `json:"transmission_headroom"`
	Reliability          float64 `json:"reliability"`
	Region               string  `json:"region,omitempty"`
	State                string  `json:"state,omitempty"`
}

// SiteEvaluation is the complete result of evaluating one candidate site:
// breakdown, ranking context, nearby plants, and human-readable notes.
type SiteEvaluation struct {
	Site          Site           `json:"site"`
	Weights       Weights        `json:"weights"`
	DemandProfile *DemandProfile `json:"demand_profile,omitempty"`

	ScoreBreakdown ScoreBreakdown `json:"score_breakdown"`

	PercentileRank   *float64          `json:"percentile_rank,omitempty"`
	AlternativeSites []AlternativeSite `json:"alternative_sites,omitempty"`
	NearbyPlants     []NearbyPlant     `json:"nearby_power_plants,omitempty"`

	EvaluatedAt     time.Time `json:"evaluated_at"`
	EvaluationNotes []string  `json:"evaluation_notes,omitempty"`
}

// ScoreRange is the (min, max) composite score across a set of evaluations.
type ScoreRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ScenarioComparison diffs multiple saved site evaluations: best site,
// score range, and each site's delta from the best.
type ScenarioComparison struct {
	ScenarioName string           `json:"scenario_name"`
	Scenarios    []SiteEvaluation `json:"scenarios"`

	BestSiteID int             `json:"best_site_id"`
	ScoreRange ScoreRange      `json:"score_range"`
	Deltas     map[int]float64 `json:"score_deltas"`

	CreatedAt time.Time `json:"created_at"`
}

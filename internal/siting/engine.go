// Package siting ranks candidate sites and contextualizes individual
// evaluations: composite ranking, percentile rank, alternative sites, and
// scenario comparison. The engine is stateless between calls; all catalog
// data arrives as arguments and is owned by the caller.
package siting

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/gridsight/siting-cli/internal/model"
	"github.com/gridsight/siting-cli/internal/scoring"
)

// ErrNoEvaluations is returned by CompareScenarios when there is nothing to
// compare.
var ErrNoEvaluations = eris.New("siting: at least one evaluation required")

// Defaults for nearby-plant reporting.
const (
	defaultNearbyRadiusKM = 200.0
	defaultNearbyLimit    = 20
	defaultAlternatives   = 5
)

// RankedSite pairs a site with its composite score.
type RankedSite struct {
	Site  model.Site
	Score float64
}

// Engine computes composite scores and ranking context for candidate sites.
type Engine struct {
	defaultWeights model.Weights
}

// New returns an Engine using the standard 0.4/0.3/0.3 default weights.
func New() *Engine {
	return &Engine{defaultWeights: model.DefaultWeights()}
}

// DefaultWeights returns the engine's fallback weight allocation.
func (e *Engine) DefaultWeights() model.Weights {
	return e.defaultWeights
}

// Rank scores every site and returns them in descending composite order.
// Ties keep their input order (stable sort), so a deterministic catalog
// yields a deterministic ranking.
func (e *Engine) Rank(sites []model.Site, weights model.Weights) ([]RankedSite, error) {
	if err := weights.Validate(); err != nil {
		return nil, eris.Wrap(err, "siting: rank")
	}

	ranked := make([]RankedSite, 0, len(sites))
	for _, s := range sites {
		breakdown, err := scoring.Composite(s, weights)
		if err != nil {
			return nil, eris.Wrapf(err, "siting: score site %d", s.ID)
		}
		ranked = append(ranked, RankedSite{Site: s, Score: breakdown.CompositeScore})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked, nil
}

// Percentile returns the percentage of sites in the population this site
// strictly outscores, rounded to one decimal. The score list is computed
// once; callers ranking many sites should prefer Rank and derive percentiles
// from its result.
func (e *Engine) Percentile(site model.Site, all []model.Site, weights model.Weights) (float64, error) {
	ranked, err := e.Rank(all, weights)
	if err != nil {
		return 0, err
	}

	breakdown, err := scoring.Composite(site, weights)
	if err != nil {
		return 0, err
	}

	return percentileOf(breakdown.CompositeScore, ranked), nil
}

// percentileOf computes the strictly-outscored fraction against an already
// ranked population.
func percentileOf(score float64, ranked []RankedSite) float64 {
	if len(ranked) == 0 {
		return 0
	}
	var beaten int
	for _, r := range ranked {
		if score > r.Score {
			beaten++
		}
	}
	return round1(float64(beaten) / float64(len(ranked)) * 100.0)
}

// Alternatives returns the top-limit sites by composite score, excluding the
// reference site, in rank order.
func (e *Engine) Alternatives(reference model.Site, all []model.Site, weights model.Weights, limit int) ([]model.AlternativeSite, error) {
	if limit <= 0 {
		limit = defaultAlternatives
	}

	ranked, err := e.Rank(all, weights)
	if err != nil {
		return nil, err
	}

	alternatives := make([]model.AlternativeSite, 0, limit)
	for _, r := range ranked {
		if r.Site.ID == reference.ID {
			continue
		}
		alternatives = append(alternatives, model.AlternativeSite{
			ID:                   r.Site.ID,
			Name:                 r.Site.Name,
			CompositeScore:       r.Score,
			CleanGen:             r.Site.CleanGen,
			TransmissionHeadroom: r.Site.TransmissionHeadroom,
			Reliability:          r.Site.Reliability,
			Region:               r.Site.Region,
			State:                r.Site.State,
		})
		if len(alternatives) == limit {
			break
		}
	}
	return alternatives, nil
}

// EvaluateSite produces the complete evaluation for one cataloged site:
// breakdown under the given weights (or the defaults), percentile rank and
// alternatives against the full population when provided, nearby plants for
// transparency, and reviewer notes.
func (e *Engine) EvaluateSite(
	site model.Site,
	weights *model.Weights,
	demand *model.DemandProfile,
	allSites []model.Site,
	plants []model.PowerPlant,
) (model.SiteEvaluation, error) {
	w := e.defaultWeights
	if weights != nil {
		w = *weights
	}

	breakdown, err := scoring.Composite(site, w)
	if err != nil {
		return model.SiteEvaluation{}, eris.Wrapf(err, "siting: evaluate site %d", site.ID)
	}

	evaluation := model.SiteEvaluation{
		Site:           site,
		Weights:        w,
		DemandProfile:  demand,
		ScoreBreakdown: breakdown,
		EvaluatedAt:    time.Now().UTC(),
	}

	if len(allSites) > 0 {
		ranked, err := e.Rank(allSites, w)
		if err != nil {
			return model.SiteEvaluation{}, err
		}
		pct := percentileOf(breakdown.CompositeScore, ranked)
		evaluation.PercentileRank = &pct

		for _, r := range ranked {
			if r.Site.ID == site.ID {
				continue
			}
			evaluation.AlternativeSites = append(evaluation.AlternativeSites, model.AlternativeSite{
				ID:                   r.Site.ID,
				Name:                 r.Site.Name,
				CompositeScore:       r.Score,
				CleanGen:             r.Site.CleanGen,
				TransmissionHeadroom: r.Site.TransmissionHeadroom,
				Reliability:          r.Site.Reliability,
				Region:               r.Site.Region,
				State:                r.Site.State,
			})
			if len(evaluation.AlternativeSites) == defaultAlternatives {
				break
			}
		}
	}

	if len(plants) > 0 {
		evaluation.NearbyPlants = NearbyPlants(site.Coordinates, plants, defaultNearbyRadiusKM, defaultNearbyLimit, false)
	}

	evaluation.EvaluationNotes = evaluationNotes(site, breakdown)
	return evaluation, nil
}

// ScoreLocation evaluates an arbitrary coordinate against the plant catalog:
// clean plants drive the generation score, all plants drive transmission and
// reliability, and both normalization factors are estimated against the
// candidate-site population so the scale matches ranked sites.
func (e *Engine) ScoreLocation(
	loc model.Coordinate,
	plants []model.PowerPlant,
	candidates []model.Coordinate,
	weights model.Weights,
	demand *model.DemandProfile,
) (model.ScoreBreakdown, error) {
	if err := weights.Validate(); err != nil {
		return model.ScoreBreakdown{}, eris.Wrap(err, "siting: score location")
	}
	if err := loc.Validate(); err != nil {
		return model.ScoreBreakdown{}, eris.Wrap(err, "siting: score location")
	}

	var demandMW float64
	if demand != nil {
		demandMW = float64(demand.SizeMW)
	}

	var cleanGen float64
	var transmission float64
	if len(plants) > 0 {
		// All clean plants count equally toward generation; eGRID has no
		// per-plant PPA terms to differentiate them.
		var gen []scoring.GenSource
		for _, p := range plants {
			if p.IsClean() {
				gen = append(gen, scoring.GenSource{
					Coordinate: p.Coordinate(),
					CapacityMW: p.NameplateMW,
					Multiplier: 1.0,
				})
			}
		}

		if len(gen) > 0 {
			genNorm := scoring.EstimateGenNormalization(candidates, gen)
			cleanGen = scoring.CleanGenScore(loc, gen, genNorm, demandMW)
		}

		transNorm := scoring.EstimateTransmissionNormalization(candidates, plants)
		transmission = scoring.TransmissionScore(loc, plants, transNorm)
	}

	reliability := scoring.ReliabilityScore(loc, plants)

	cleanContribution := cleanGen * weights.Clean
	transContribution := transmission * weights.Transmission
	relContribution := reliability * weights.Reliability
	composite := round1(cleanContribution + transContribution + relContribution)

	zap.L().Info("siting: scored location",
		zap.Float64("latitude", loc.Latitude),
		zap.Float64("longitude", loc.Longitude),
		zap.Float64("composite", composite),
	)

	return model.ScoreBreakdown{
		CleanGenScore:            round1(cleanGen),
		CleanGenContribution:     round1(cleanContribution),
		TransmissionScore:        round1(transmission),
		TransmissionContribution: round1(transContribution),
		ReliabilityScore:         round1(reliability),
		ReliabilityContribution:  round1(relContribution),
		CompositeScore:           composite,
		WeightsUsed:              weights,
	}, nil
}

// EvaluateLocation produces a full evaluation for an arbitrary coordinate
// that is not in the catalog. The breakdown comes from ScoreLocation; the
// synthetic site carries ID -1 so callers can tell it apart from cataloged
// sites, and no percentile or alternatives are computed because the location
// is not part of the ranked population.
func (e *Engine) EvaluateLocation(
	loc model.Coordinate,
	name string,
	plants []model.PowerPlant,
	candidates []model.Coordinate,
	weights model.Weights,
	demand *model.DemandProfile,
) (model.SiteEvaluation, error) {
	breakdown, err := e.ScoreLocation(loc, plants, candidates, weights, demand)
	if err != nil {
		return model.SiteEvaluation{}, err
	}

	if name == "" {
		name = fmt.Sprintf("Location (%.3f, %.3f)", loc.Latitude, loc.Longitude)
	}

	site := model.Site{
		ID:                   -1,
		Name:                 name,
		Coordinates:          loc,
		CleanGen:             breakdown.CleanGenScore,
		TransmissionHeadroom: breakdown.TransmissionScore,
		Reliability:          breakdown.ReliabilityScore,
		Region:               "Custom Location",
	}

	evaluation := model.SiteEvaluation{
		Site:           site,
		Weights:        weights,
		DemandProfile:  demand,
		ScoreBreakdown: breakdown,
		EvaluatedAt:    time.Now().UTC(),
	}
	if len(plants) > 0 {
		evaluation.NearbyPlants = NearbyPlants(loc, plants, defaultNearbyRadiusKM, defaultNearbyLimit, false)
	}
	evaluation.EvaluationNotes = evaluationNotes(site, breakdown)
	return evaluation, nil
}

// CompareScenarios diffs multiple saved evaluations: which site won, the
// composite score range, and each site's delta from the best. Fails on an
// empty input because there is no meaningful best-of-none.
func (e *Engine) CompareScenarios(evaluations []model.SiteEvaluation, name string) (model.ScenarioComparison, error) {
	if len(evaluations) == 0 {
		return model.ScenarioComparison{}, ErrNoEvaluations
	}

	best := evaluations[0]
	minScore := best.ScoreBreakdown.CompositeScore
	maxScore := minScore
	for _, ev := range evaluations[1:] {
		score := ev.ScoreBreakdown.CompositeScore
		if score > best.ScoreBreakdown.CompositeScore {
			best = ev
		}
		minScore = math.Min(minScore, score)
		maxScore = math.Max(maxScore, score)
	}

	deltas := make(map[int]float64, len(evaluations))
	for _, ev := range evaluations {
		deltas[ev.Site.ID] = round1(ev.ScoreBreakdown.CompositeScore - best.ScoreBreakdown.CompositeScore)
	}

	return model.ScenarioComparison{
		ScenarioName: name,
		Scenarios:    evaluations,
		BestSiteID:   best.Site.ID,
		ScoreRange:   model.ScoreRange{Min: minScore, Max: maxScore},
		Deltas:       deltas,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// NearbyPlants returns the plants within maxKM of a location, closest first,
// capped at limit. With cleanOnly set, fossil and nuclear plants are skipped.
func NearbyPlants(loc model.Coordinate, plants []model.PowerPlant, maxKM float64, limit int, cleanOnly bool) []model.NearbyPlant {
	var nearby []model.NearbyPlant
	for _, p := range plants {
		if cleanOnly && !p.IsClean() {
			continue
		}
		distance := scoring.Distance(loc, p.Coordinate())
		if distance <= maxKM {
			nearby = append(nearby, model.NearbyPlant{
				ORISCode:         p.ORISCode,
				PlantName:        p.PlantName,
				DistanceKM:       round1(distance),
				PrimaryFuel:      p.PrimaryFuel,
				PrimaryFuelGroup: p.PrimaryFuelGroup,
				NameplateMW:      round1(p.NameplateMW),
				IsClean:          p.IsClean(),
				Latitude:         p.Latitude,
				Longitude:        p.Longitude,
			})
		}
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceKM < nearby[j].DistanceKM
	})

	if limit > 0 && len(nearby) > limit {
		nearby = nearby[:limit]
	}
	return nearby
}

// evaluationNotes renders a short human-readable assessment of a breakdown.
func evaluationNotes(site model.Site, breakdown model.ScoreBreakdown) []string {
	var notes []string

	switch score := breakdown.CompositeScore; {
	case score >= 80:
		notes = append(notes, "Excellent overall siting location")
	case score >= 70:
		notes = append(notes, "Very good siting location with minor trade-offs")
	case score >= 60:
		notes = append(notes, "Good siting location suitable for most applications")
	case score >= 50:
		notes = append(notes, "Moderate siting location with some constraints")
	default:
		notes = append(notes, "Challenging siting location requiring mitigation")
	}

	if site.CleanGen >= 80 {
		notes = append(notes, "Outstanding clean energy resources nearby")
	} else if site.CleanGen < 50 {
		notes = append(notes, "Limited clean energy access may require additional renewables")
	}

	if site.TransmissionHeadroom >= 80 {
		notes = append(notes, "Excellent transmission capacity available")
	} else if site.TransmissionHeadroom < 40 {
		notes = append(notes, "Transmission upgrades likely required")
	}

	if site.Reliability >= 80 {
		notes = append(notes, "Highly reliable grid infrastructure")
	} else if site.Reliability < 60 {
		notes = append(notes, "Grid reliability concerns should be assessed")
	}

	if n := len(site.NearbyProjects); n >= 2 {
		notes = append(notes, fmt.Sprintf("%d nearby clean energy projects identified", n))
	}

	if len(site.TransmissionLines) >= 1 {
		closest := site.TransmissionLines[0]
		for _, line := range site.TransmissionLines[1:] {
			if line.DistanceKM < closest.DistanceKM {
				closest = line
			}
		}
		notes = append(notes, fmt.Sprintf("High-voltage transmission line (%dkV) within %.0fkm",
			closest.VoltageKV, closest.DistanceKM))
	}

	return notes
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

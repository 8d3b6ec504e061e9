package catalog

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gridsight/siting-cli/internal/model"
	"github.com/gridsight/siting-cli/internal/scoring"
)

// recalcConcurrency bounds the per-site scoring goroutines. Scoring is CPU
// bound; a small fixed limit keeps the pool from thrashing on large catalogs.
const recalcConcurrency = 8

// genSources converts the catalog's generation data into scoring inputs.
// Located PPA projects are preferred because they carry per-technology clean
// multipliers; without any, clean plants from the eGRID inventory stand in at
// full multiplier.
func genSources(sources []model.EnergySource, plants []model.PowerPlant) []scoring.GenSource {
	var gen []scoring.GenSource
	for _, s := range sources {
		if !s.Located() {
			continue
		}
		gen = append(gen, scoring.GenSource{
			Coordinate: *s.Coordinate,
			CapacityMW: s.PPACapacityMW,
			Multiplier: s.CleanMultiplier(),
		})
	}
	if len(gen) > 0 {
		return gen
	}

	for _, p := range plants {
		if p.IsClean() {
			gen = append(gen, scoring.GenSource{
				Coordinate: p.Coordinate(),
				CapacityMW: p.NameplateMW,
				Multiplier: 1.0,
			})
		}
	}
	return gen
}

// RecalculateScores recomputes all three dimension scores for every site in
// the catalog from the loaded plant and project data, then swaps the updated
// site list in atomically. Baseline scores survive for any dimension whose
// backing dataset is missing. demandMW > 0 enables capacity adequacy scoring.
func RecalculateScores(ctx context.Context, c *Catalog, demandMW float64) error {
	sites := c.Sites()
	if len(sites) == 0 {
		return eris.New("catalog: no sites to score")
	}
	plants := c.Plants()
	sources := c.Sources()

	coords := make([]model.Coordinate, len(sites))
	for i, s := range sites {
		coords[i] = s.Coordinates
	}

	gen := genSources(sources, plants)

	var genNorm, transNorm float64
	if len(gen) > 0 {
		genNorm = scoring.EstimateGenNormalization(coords, gen)
	}
	if len(plants) > 0 {
		transNorm = scoring.EstimateTransmissionNormalization(coords, plants)
	}

	updated := make([]model.Site, len(sites))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(recalcConcurrency)

	for i, site := range sites {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return eris.Wrap(err, "catalog: recalculate scores")
			}

			cleanGen := site.CleanGen
			if len(gen) > 0 {
				cleanGen = scoring.CleanGenScore(site.Coordinates, gen, genNorm, demandMW)
			}

			transmission := site.TransmissionHeadroom
			reliability := site.Reliability
			if len(plants) > 0 {
				transmission = scoring.TransmissionScore(site.Coordinates, plants, transNorm)
				reliability = scoring.ReliabilityScore(site.Coordinates, plants)
			}

			updated[i] = site.WithScores(cleanGen, transmission, reliability)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	c.ReplaceSites(updated)
	zap.L().Info("catalog: recalculated site scores",
		zap.Int("sites", len(updated)),
		zap.Int("gen_sources", len(gen)),
		zap.Int("plants", len(plants)),
		zap.Float64("demand_mw", demandMW),
	)
	return nil
}

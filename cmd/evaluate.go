package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridsight/siting-cli/internal/export"
	"github.com/gridsight/siting-cli/internal/model"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a candidate site or arbitrary coordinate",
	Long: `Produce a full siting evaluation: the weighted score breakdown,
percentile rank against all candidates, the closest-scoring alternatives,
and the power plants driving the result.

Evaluate either a cataloged site by ID, or an arbitrary location by
latitude and longitude.

Examples:
  # Evaluate site 3 with default weights
  evaluate --site 3

  # Evaluate a 500 MW data center at site 3
  evaluate --site 3 --demand-type data_center --size-mw 500

  # Evaluate an arbitrary coordinate
  evaluate --lat 40.0 --lon -100.0 --name "West Pad"

  # Persist the evaluation as a named scenario
  evaluate --site 3 --save baseline`,
	RunE: runEvaluate,
}

func init() {
	f := evaluateCmd.Flags()
	f.Int("site", 0, "candidate site ID to evaluate")
	f.Float64("lat", 0, "latitude for an ad-hoc location evaluation")
	f.Float64("lon", 0, "longitude for an ad-hoc location evaluation")
	f.String("name", "", "display name for an ad-hoc location")
	f.Float64("weight-clean", 0, "clean generation weight (overrides config)")
	f.Float64("weight-transmission", 0, "transmission headroom weight (overrides config)")
	f.Float64("weight-reliability", 0, "grid reliability weight (overrides config)")
	f.String("demand-type", "", "load type: data_center, electrolyzer, ev_hub, hydrogen_plant, ai_compute")
	f.Int("size-mw", 0, "load size in MW (10-2000)")
	f.Float64("load-factor", 0.8, "load factor (0-1)")
	f.Int("duration-years", 10, "contract duration in years")
	f.String("save", "", "persist the evaluation as a scenario with this name")
	f.String("output", "", "output file path (default: stdout)")
	f.String("format", "text", "output format: text, csv, or xlsx")

	rootCmd.AddCommand(evaluateCmd)
}

func demandFromFlags(cmd *cobra.Command) (*model.DemandProfile, error) {
	sizeMW, _ := cmd.Flags().GetInt("size-mw")
	if sizeMW == 0 {
		return nil, nil
	}
	demandType, _ := cmd.Flags().GetString("demand-type")
	loadFactor, _ := cmd.Flags().GetFloat64("load-factor")
	durationYears, _ := cmd.Flags().GetInt("duration-years")

	d := &model.DemandProfile{
		DemandType:    demandType,
		SizeMW:        sizeMW,
		LoadFactor:    loadFactor,
		DurationYears: durationYears,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env, err := initEnv(ctx, "evaluate")
	if err != nil {
		return err
	}
	defer env.Close()

	log := zap.L().With(zap.String("command", "evaluate"))

	siteID, _ := cmd.Flags().GetInt("site")
	lat, _ := cmd.Flags().GetFloat64("lat")
	lon, _ := cmd.Flags().GetFloat64("lon")
	saveName, _ := cmd.Flags().GetString("save")
	outputPath, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")

	if format != "text" && format != "csv" && format != "xlsx" {
		return eris.Errorf("evaluate: --format must be text, csv, or xlsx (got %q)", format)
	}

	weights := weightsFromFlags(cmd)
	demand, err := demandFromFlags(cmd)
	if err != nil {
		return err
	}

	var evaluation model.SiteEvaluation
	switch {
	case siteID > 0:
		site, err := env.Catalog.SiteByID(siteID)
		if err != nil {
			return err
		}
		evaluation, err = env.Engine.EvaluateSite(site, &weights, demand, env.Catalog.Sites(), env.Catalog.Plants())
		if err != nil {
			return err
		}

	case lat != 0 || lon != 0:
		name, _ := cmd.Flags().GetString("name")
		loc := model.Coordinate{Latitude: lat, Longitude: lon}
		candidates := make([]model.Coordinate, 0)
		for _, s := range env.Catalog.Sites() {
			candidates = append(candidates, s.Coordinates)
		}
		evaluation, err = env.Engine.EvaluateLocation(loc, name, env.Catalog.Plants(), candidates, weights, demand)
		if err != nil {
			return err
		}

	default:
		return eris.New("evaluate: either --site or --lat/--lon is required")
	}

	log.Info("evaluation complete",
		zap.Int("site_id", evaluation.Site.ID),
		zap.Float64("composite", evaluation.ScoreBreakdown.CompositeScore),
	)

	if saveName != "" {
		saved, err := env.Store.SaveEvaluation(ctx, saveName, evaluation)
		if err != nil {
			return eris.Wrap(err, "evaluate: save scenario")
		}
		fmt.Printf("Saved scenario %q (%s)\n", saveName, saved.ID)
	}

	return outputEvaluation(evaluation, format, outputPath)
}

func outputEvaluation(evaluation model.SiteEvaluation, format, outputPath string) error {
	var w io.Writer = os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "evaluate: create output file %s", outputPath)
		}
		defer f.Close() //nolint:errcheck
		w = f
	}

	switch format {
	case "csv":
		return export.WriteEvaluationCSV(w, []model.SiteEvaluation{evaluation})
	case "xlsx":
		return export.WriteEvaluationXLSX(w, []model.SiteEvaluation{evaluation})
	default:
		printEvaluation(w, evaluation)
		return nil
	}
}

func printEvaluation(w io.Writer, e model.SiteEvaluation) {
	b := e.ScoreBreakdown
	fmt.Fprintf(w, "Site:       %s (ID %d)\n", e.Site.Name, e.Site.ID)
	if e.Site.State != "" {
		fmt.Fprintf(w, "Location:   %s, %s\n", e.Site.State, e.Site.Region)
	}
	fmt.Fprintf(w, "Composite:  %.1f / 100\n", b.CompositeScore)
	if e.PercentileRank != nil {
		fmt.Fprintf(w, "Percentile: %.1f\n", *e.PercentileRank)
	}

	fmt.Fprintln(w, "\nComponents:")
	fmt.Fprintf(w, "  %-22s %6.1f  (weighted %.1f)\n", "Clean generation", b.CleanGenScore, b.CleanGenContribution)
	fmt.Fprintf(w, "  %-22s %6.1f  (weighted %.1f)\n", "Transmission headroom", b.TransmissionScore, b.TransmissionContribution)
	fmt.Fprintf(w, "  %-22s %6.1f  (weighted %.1f)\n", "Grid reliability", b.ReliabilityScore, b.ReliabilityContribution)

	if len(e.NearbyPlants) > 0 {
		fmt.Fprintln(w, "\nNearby plants:")
		for _, p := range e.NearbyPlants {
			fmt.Fprintf(w, "  %-30s %-10s %8.1f MW  %6.1f km\n",
				truncate(p.PlantName, 30), p.PrimaryFuelGroup, p.NameplateMW, p.DistanceKM)
		}
	}

	if len(e.AlternativeSites) > 0 {
		fmt.Fprintln(w, "\nAlternatives:")
		for _, a := range e.AlternativeSites {
			fmt.Fprintf(w, "  %-30s %-5s %6.1f\n", truncate(a.Name, 30), a.State, a.CompositeScore)
		}
	}

	for _, note := range e.EvaluationNotes {
		fmt.Fprintf(w, "\nNote: %s\n", note)
	}
}

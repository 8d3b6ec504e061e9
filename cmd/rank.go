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
	"github.com/gridsight/siting-cli/internal/siting"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank candidate sites by composite score",
	Long: `Rank all candidate grid locations by their weighted composite score.

Weights must sum to 1.0. Unset weights fall back to the configured
defaults (clean 0.4, transmission 0.3, reliability 0.3).

Examples:
  # Rank everything with default weights
  rank

  # Clean-generation-heavy ranking, top ten only
  rank --weight-clean 0.6 --weight-transmission 0.2 --weight-reliability 0.2 --limit 10

  # Texas sites only, exported as a spreadsheet
  rank --state TX --format xlsx --output rankings.xlsx`,
	RunE: runRank,
}

func init() {
	f := rankCmd.Flags()
	f.Float64("weight-clean", 0, "clean generation weight (overrides config)")
	f.Float64("weight-transmission", 0, "transmission headroom weight (overrides config)")
	f.Float64("weight-reliability", 0, "grid reliability weight (overrides config)")
	f.String("region", "", "only rank sites in this region")
	f.String("state", "", "only rank sites in this state")
	f.Int("limit", 0, "maximum number of rankings (0=all)")
	f.String("output", "", "output file path (default: stdout)")
	f.String("format", "table", "output format: table, csv, or xlsx")

	rootCmd.AddCommand(rankCmd)
}

// weightsFromFlags returns the configured default weights with any flag
// overrides applied.
func weightsFromFlags(cmd *cobra.Command) model.Weights {
	w := model.Weights{
		Clean:        cfg.Scoring.CleanGenWeight,
		Transmission: cfg.Scoring.TransmissionWeight,
		Reliability:  cfg.Scoring.ReliabilityWeight,
	}
	if v, _ := cmd.Flags().GetFloat64("weight-clean"); v > 0 {
		w.Clean = v
	}
	if v, _ := cmd.Flags().GetFloat64("weight-transmission"); v > 0 {
		w.Transmission = v
	}
	if v, _ := cmd.Flags().GetFloat64("weight-reliability"); v > 0 {
		w.Reliability = v
	}
	return w
}

func runRank(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env, err := initEnv(ctx, "rank")
	if err != nil {
		return err
	}
	defer env.Close()

	log := zap.L().With(zap.String("command", "rank"))

	region, _ := cmd.Flags().GetString("region")
	state, _ := cmd.Flags().GetString("state")
	limit, _ := cmd.Flags().GetInt("limit")
	outputPath, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")

	if format != "table" && format != "csv" && format != "xlsx" {
		return eris.Errorf("rank: --format must be table, csv, or xlsx (got %q)", format)
	}

	sites := env.Catalog.Sites()
	switch {
	case region != "":
		sites = env.Catalog.SitesByRegion(region)
	case state != "":
		sites = env.Catalog.SitesByState(state)
	}
	if len(sites) == 0 {
		fmt.Println("No candidate sites match the filter.")
		return nil
	}

	weights := weightsFromFlags(cmd)
	ranked, err := env.Engine.Rank(sites, weights)
	if err != nil {
		return eris.Wrap(err, "rank")
	}
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	log.Info("ranking complete",
		zap.Int("sites", len(sites)),
		zap.Int("returned", len(ranked)),
		zap.Float64("weight_clean", weights.Clean),
		zap.Float64("weight_transmission", weights.Transmission),
		zap.Float64("weight_reliability", weights.Reliability),
	)

	return outputRankings(ranked, format, outputPath)
}

func outputRankings(ranked []siting.RankedSite, format, outputPath string) error {
	var w io.Writer = os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "rank: create output file %s", outputPath)
		}
		defer f.Close() //nolint:errcheck
		w = f
	}

	switch format {
	case "csv":
		return export.WriteRankingCSV(w, ranked)
	case "xlsx":
		return export.WriteRankingXLSX(w, ranked)
	default:
		return writeRankingTable(w, ranked)
	}
}

func writeRankingTable(w io.Writer, ranked []siting.RankedSite) error {
	header := fmt.Sprintf("%-5s %-30s %-5s %-12s %7s %7s %7s %7s\n",
		"Rank", "Site", "State", "Region", "Score", "Clean", "Trans", "Rel")
	if _, err := fmt.Fprint(w, header); err != nil {
		return eris.Wrap(err, "rank: write table header")
	}

	for i, r := range ranked {
		row := fmt.Sprintf("%-5d %-30s %-5s %-12s %7.1f %7.1f %7.1f %7.1f\n",
			i+1, truncate(r.Site.Name, 30), r.Site.State, r.Site.Region,
			r.Score, r.Site.CleanGen, r.Site.TransmissionHeadroom, r.Site.Reliability)
		if _, err := fmt.Fprint(w, row); err != nil {
			return eris.Wrap(err, "rank: write table row")
		}
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridsight/siting-cli/internal/catalog"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Recompute dimension scores for all candidate sites",
	Long: `Recompute the clean generation, transmission headroom, and grid
reliability scores for every candidate site from the imported plant and
PPA project datasets, then persist the updated sites.

Run this after 'import plants', 'import projects', or 'import lines' so
rankings reflect the new data.

Examples:
  # Recompute with the configured default demand
  score

  # Recompute for a 500 MW load
  score --demand-mw 500`,
	RunE: runRecalculate,
}

func init() {
	f := scoreCmd.Flags()
	f.Float64("demand-mw", 0, "demand in MW used for adequacy checks (overrides config)")

	rootCmd.AddCommand(scoreCmd)
}

func runRecalculate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env, err := initEnv(ctx, "score")
	if err != nil {
		return err
	}
	defer env.Close()

	log := zap.L().With(zap.String("command", "score"))

	demandMW := cfg.Scoring.DefaultDemandMW
	if v, _ := cmd.Flags().GetFloat64("demand-mw"); v > 0 {
		demandMW = v
	}

	log.Info("recomputing site scores",
		zap.Int("sites", len(env.Catalog.Sites())),
		zap.Int("plants", len(env.Catalog.Plants())),
		zap.Int("sources", len(env.Catalog.Sources())),
		zap.Float64("demand_mw", demandMW),
	)

	if err := catalog.RecalculateScores(ctx, env.Catalog, demandMW); err != nil {
		return eris.Wrap(err, "score: recalculate")
	}

	sites := env.Catalog.Sites()
	if err := env.Store.SaveSites(ctx, sites); err != nil {
		return eris.Wrap(err, "score: persist sites")
	}

	log.Info("site scores updated", zap.Int("sites", len(sites)))
	fmt.Printf("Updated scores for %d sites.\n", len(sites))
	return nil
}

package main

import (
	"context"
	"fmt"
	"os/signal"
	"sort"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridsight/siting-cli/internal/model"
	"github.com/gridsight/siting-cli/internal/store"
)

var compareCmd = &cobra.Command{
	Use:   "compare [scenario-id...]",
	Short: "Compare saved evaluation scenarios",
	Long: `Compare two or more saved scenarios: which site scored best, the
composite score spread, and each site's delta from the winner.

Scenario IDs come from 'evaluate --save' or the scenarios API; run
'compare --list' to see what is stored.

Examples:
  # List saved scenarios
  compare --list

  # Compare three saved scenarios
  compare 1f0c... 2a9d... 77be... --name "Q3 shortlist"`,
	RunE: runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.Bool("list", false, "list saved scenarios instead of comparing")
	f.String("name", "Comparison", "name for the comparison")
	f.Int("site", 0, "with --list, only show scenarios for this site ID")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env, err := initEnv(ctx, "evaluate")
	if err != nil {
		return err
	}
	defer env.Close()

	if list, _ := cmd.Flags().GetBool("list"); list {
		return listScenarios(ctx, cmd, env)
	}

	if len(args) < 2 {
		return eris.New("compare: at least two scenario IDs required (or use --list)")
	}

	evaluations := make([]model.SiteEvaluation, 0, len(args))
	for _, id := range args {
		saved, err := env.Store.GetEvaluation(ctx, id)
		if err != nil {
			return eris.Wrapf(err, "compare: scenario %s", id)
		}
		evaluations = append(evaluations, saved.Evaluation)
	}

	name, _ := cmd.Flags().GetString("name")
	comparison, err := env.Engine.CompareScenarios(evaluations, name)
	if err != nil {
		return eris.Wrap(err, "compare")
	}

	saved, err := env.Store.SaveComparison(ctx, comparison)
	if err != nil {
		return eris.Wrap(err, "compare: save")
	}
	zap.L().Info("saved comparison", zap.String("comparison_id", saved.ID))

	printComparison(comparison)
	return nil
}

func listScenarios(ctx context.Context, cmd *cobra.Command, env *appEnv) error {
	siteID, _ := cmd.Flags().GetInt("site")
	scenarios, err := env.Store.ListEvaluations(ctx, store.EvaluationFilter{SiteID: siteID})
	if err != nil {
		return eris.Wrap(err, "compare: list scenarios")
	}
	if len(scenarios) == 0 {
		fmt.Println("No saved scenarios.")
		return nil
	}

	fmt.Printf("%-36s %-20s %-30s %7s  %s\n", "ID", "Name", "Site", "Score", "Saved")
	for _, s := range scenarios {
		fmt.Printf("%-36s %-20s %-30s %7.1f  %s\n",
			s.ID, truncate(s.Name, 20), truncate(s.Evaluation.Site.Name, 30),
			s.Evaluation.ScoreBreakdown.CompositeScore,
			s.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printComparison(c model.ScenarioComparison) {
	fmt.Printf("Comparison: %s\n", c.ScenarioName)
	fmt.Printf("Best site:  %d\n", c.BestSiteID)
	fmt.Printf("Range:      %.1f – %.1f\n\n", c.ScoreRange.Min, c.ScoreRange.Max)

	type row struct {
		name  string
		score float64
		delta float64
	}
	rows := make([]row, 0, len(c.Scenarios))
	for _, s := range c.Scenarios {
		rows = append(rows, row{
			name:  s.Site.Name,
			score: s.ScoreBreakdown.CompositeScore,
			delta: c.Deltas[s.Site.ID],
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].score > rows[j].score })

	fmt.Printf("%-30s %7s %7s\n", "Site", "Score", "Delta")
	for _, r := range rows {
		fmt.Printf("%-30s %7.1f %+7.1f\n", truncate(r.name, 30), r.score, r.delta)
	}
}

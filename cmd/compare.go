package cmd

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sdendorfer/nasbudget/internal/config"
	"github.com/sdendorfer/nasbudget/internal/stats"
)

var (
	flagCmpA       string
	flagCmpB       string
	flagCmpTarget  float64
	flagCmpBudgets []float64
	flagCmpReps    int
	flagCmpSeed    int64
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two strategies' expected best accuracy across budgets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			store, err := loadStore(cfg)
			if err != nil {
				return err
			}
			sampleA, err := store.Sample(flagCmpA)
			if err != nil {
				return err
			}
			sampleB, err := store.Sample(flagCmpB)
			if err != nil {
				return err
			}

			opts := stats.CompareOpts{Repetitions: flagCmpReps, Seed: flagCmpSeed}
			curveA, curveB, err := stats.Compare(sampleA, sampleB, flagCmpTarget, flagCmpBudgets, opts)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "BUDGET\tE[BEST] %s\tE[BEST] %s\n", flagCmpA, flagCmpB)
			for i := range curveA {
				fmt.Fprintf(tw, "%.1f\t%.4f\t%.4f\n",
					curveA[i].Budget, curveA[i].ExpectedBestAccuracy, curveB[i].ExpectedBestAccuracy)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			costA, err := stats.ExpectedCostToTarget(sampleA, flagCmpTarget)
			if err != nil {
				return err
			}
			costB, err := stats.ExpectedCostToTarget(sampleB, flagCmpTarget)
			if err != nil {
				return err
			}
			fmt.Printf("\nexpected cost to reach %.4f: %s=%s %s=%s\n",
				flagCmpTarget, flagCmpA, costString(costA), flagCmpB, costString(costB))
			return nil
		},
	}
	cmd.Flags().StringVar(&flagCmpA, "a", "", "strategy A dataset label")
	cmd.Flags().StringVar(&flagCmpB, "b", "", "strategy B dataset label")
	cmd.Flags().Float64Var(&flagCmpTarget, "target", 0.94, "target accuracy")
	cmd.Flags().Float64SliceVar(&flagCmpBudgets, "budgets", nil, "ascending budget grid")
	cmd.Flags().IntVar(&flagCmpReps, "reps", stats.DefaultRepetitions, "Monte Carlo repetitions")
	cmd.Flags().Int64Var(&flagCmpSeed, "seed", stats.DefaultSeed, "simulation seed")
	cmd.MarkFlagRequired("a")
	cmd.MarkFlagRequired("b")
	cmd.MarkFlagRequired("budgets")
	return cmd
}

func costString(cost float64) string {
	if math.IsInf(cost, 1) {
		return "unreachable"
	}
	return fmt.Sprintf("%.1f", cost)
}

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sdendorfer/nasbudget/internal/config"
	"github.com/sdendorfer/nasbudget/internal/stats"
)

var (
	flagEstDataset   string
	flagEstThreshold float64
	flagEstRepeats   []int
)

func newEstimateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate success probabilities for a target accuracy",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			store, err := loadStore(cfg)
			if err != nil {
				return err
			}
			sample, err := store.Sample(flagEstDataset)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "THRESHOLD\tP(SINGLE)\tN\tP(>=1 OF N)")
			for _, n := range flagEstRepeats {
				result, err := stats.Estimate(sample, flagEstThreshold, n)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%.4f\t%.4f\t%d\t%.4f\n",
					flagEstThreshold, result.ProbabilitySingle, result.N, result.ProbabilityAtLeastOne)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&flagEstDataset, "dataset", "", "dataset label")
	cmd.Flags().Float64Var(&flagEstThreshold, "threshold", 0.9, "target accuracy threshold")
	cmd.Flags().IntSliceVar(&flagEstRepeats, "repeats", []int{1}, "repeat counts to evaluate")
	cmd.MarkFlagRequired("dataset")
	return cmd
}

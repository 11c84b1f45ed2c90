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
	flagCLTDataset string
	flagCLTMetric  string
	flagCLTBins    int
)

func newCLTCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clt",
		Short: "Fit a normal approximation and histogram to a dataset metric",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			store, err := loadStore(cfg)
			if err != nil {
				return err
			}
			sample, err := store.Sample(flagCLTDataset)
			if err != nil {
				return err
			}
			metric, err := stats.ParseMetric(flagCLTMetric)
			if err != nil {
				return err
			}

			params, err := stats.Approximate(sample, metric)
			if err != nil {
				return err
			}
			hist, err := stats.NewHistogram(sample, metric, flagCLTBins)
			if err != nil {
				return err
			}
			overlay := hist.Overlay(params)

			fmt.Printf("mean=%.5f std_dev=%.5f std_err=%.5f samples=%d\n\n",
				params.Mean, params.StdDev, params.StdErr(), params.SampleSize)

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "BIN LO\tBIN HI\tCOUNT\tNORMAL")
			for i, b := range hist.Bins {
				fmt.Fprintf(tw, "%.5f\t%.5f\t%d\t%.2f\n", b.Lo, b.Hi, b.Count, overlay[i])
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&flagCLTDataset, "dataset", "", "dataset label")
	cmd.Flags().StringVar(&flagCLTMetric, "metric", "accuracy", "metric (accuracy or cost)")
	cmd.Flags().IntVar(&flagCLTBins, "bins", 30, "histogram bin count")
	cmd.MarkFlagRequired("dataset")
	return cmd
}

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sdendorfer/nasbudget/internal/config"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured datasets with record counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			store, err := loadStore(cfg)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DATASET\tRECORDS\tMIN ACC\tMAX ACC\tTOTAL COST")
			for _, label := range store.Labels() {
				sample, err := store.Sample(label)
				if err != nil {
					return err
				}
				minAcc, maxAcc, totalCost := 1.0, 0.0, 0.0
				for _, r := range sample {
					if r.Accuracy < minAcc {
						minAcc = r.Accuracy
					}
					if r.Accuracy > maxAcc {
						maxAcc = r.Accuracy
					}
					totalCost += r.Cost
				}
				if len(sample) == 0 {
					minAcc, maxAcc = 0, 0
				}
				fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t%.1f\n", label, len(sample), minAcc, maxAcc, totalCost)
			}
			return tw.Flush()
		},
	}
}

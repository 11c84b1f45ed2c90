package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sdendorfer/nasbudget/internal/config"
	"github.com/sdendorfer/nasbudget/internal/record"
)

var cfgFile string

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nasbudget",
		Short: "Statistical analysis of NAS benchmark runs under time budgets",
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "nasbudget.yaml", "config file path")
	root.AddCommand(newListCmd())
	root.AddCommand(newEstimateCmd())
	root.AddCommand(newCLTCmd())
	root.AddCommand(newCompareCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newValidateCmd())
	return root
}

func loadStore(cfg *config.Config) (*record.Store, error) {
	store := record.NewStore()
	for _, d := range cfg.Datasets {
		if err := store.Load(d.Label, d.Path, d.Format); err != nil {
			return nil, err
		}
	}
	return store, nil
}

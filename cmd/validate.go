package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sdendorfer/nasbudget/internal/config"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the config and that every dataset file loads cleanly",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			store, err := loadStore(cfg)
			if err != nil {
				return err
			}
			for _, label := range store.Labels() {
				sample, err := store.Sample(label)
				if err != nil {
					return err
				}
				fmt.Printf("  %s: %d records OK\n", label, len(sample))
			}
			fmt.Printf("Config OK: %d datasets, %d success, %d clt, %d budget experiments\n",
				len(cfg.Datasets), len(cfg.Experiments.Success),
				len(cfg.Experiments.CLT), len(cfg.Experiments.Budget))
			return nil
		},
	}
}

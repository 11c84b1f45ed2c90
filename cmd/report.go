package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdendorfer/nasbudget/internal/analysis"
	"github.com/sdendorfer/nasbudget/internal/config"
	"github.com/sdendorfer/nasbudget/internal/logx"
	"github.com/sdendorfer/nasbudget/internal/record"
	"github.com/sdendorfer/nasbudget/internal/report"
)

var (
	flagFormat   string
	flagParallel int
	flagWrite    bool
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run all configured experiments and summarize the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			log := logx.New(cfg.Log.Level, cfg.Log.Format)

			store, err := loadStore(cfg)
			if err != nil {
				return err
			}
			log.Info("datasets loaded", "count", len(store.Labels()))

			bundle, err := analysis.Run(store, cfg, flagParallel, log)
			if err != nil {
				return err
			}

			if flagWrite {
				runDir, err := record.CreateRunDir(cfg.Results.Dir)
				if err != nil {
					return err
				}
				if err := record.WriteDocument(runDir, "analysis", bundle); err != nil {
					return err
				}
				log.Info("results written", "dir", runDir)
				fmt.Printf("Results directory: %s\n\n", runDir)
			}

			return report.Write(bundle, flagFormat, os.Stdout)
		},
	}
	cmd.Flags().StringVar(&flagFormat, "format", "table", "output format (table, markdown, json)")
	cmd.Flags().IntVar(&flagParallel, "parallel", 1, "max concurrent experiments")
	cmd.Flags().BoolVar(&flagWrite, "write", false, "persist the analysis bundle under the results dir")
	return cmd
}

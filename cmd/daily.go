package cmd

import (
	"time"

	"github.com/flazor/stride/core"
	"github.com/flazor/stride/internal/outwriter"
	"github.com/flazor/stride/internal/parquet"
	"github.com/spf13/cobra"
)

// dailyCmd prints daily mileage with trailing averages from a snapshot.
var dailyCmd = &cobra.Command{
	Use:     "daily <snapshot.parquet>",
	Short:   "Show daily miles with trailing 7- and 30-day averages.",
	Args:    cobra.ExactArgs(1),
	PreRunE: setupSnapshotPath,
	RunE: func(_ *cobra.Command, _ []string) error {
		table, err := parquet.ReadTable(cfg.SnapshotPath)
		if err != nil {
			return err
		}

		// The axis upper bound is wall-clock now, so re-running on a static
		// snapshot on a later day grows the zero tail.
		series := core.BuildDailySeries(table, cfg.ActivityType, time.Now(), logger)
		series = core.FilterPeriod(series, cfg.Period)

		return outwriter.WriteDailyResults(series, cfg)
	},
}

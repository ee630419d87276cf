package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/flazor/stride/core"
	"github.com/flazor/stride/internal/outwriter"
	"github.com/flazor/stride/internal/parquet"
	"github.com/flazor/stride/schema"
	"github.com/spf13/cobra"
)

// heatmapCmd prints per-year calendar grids of daily mileage.
var heatmapCmd = &cobra.Command{
	Use:     "heatmap <snapshot.parquet>",
	Short:   "Show a per-year calendar heatmap of daily miles.",
	Args:    cobra.ExactArgs(1),
	PreRunE: setupSnapshotPath,
	RunE: func(_ *cobra.Command, _ []string) error {
		table, err := parquet.ReadTable(cfg.SnapshotPath)
		if err != nil {
			return err
		}

		series := core.BuildDailySeries(table, cfg.ActivityType, time.Now(), logger)

		grid, err := core.BuildCalendarGrid(series)
		if err != nil {
			if errors.Is(err, schema.ErrNoData) {
				fmt.Printf("No %s activity data to display.\n", cfg.ActivityType)
				return nil
			}
			return err
		}

		return outwriter.WriteHeatmapResults(grid, cfg)
	},
}

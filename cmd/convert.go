package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/flazor/stride/core"
	"github.com/flazor/stride/internal/archive"
	"github.com/flazor/stride/internal/parquet"
	"github.com/spf13/cobra"
)

// convertCmd turns a raw activity dump into the columnar snapshot.
var convertCmd = &cobra.Command{
	Use:     "convert <dump.json>",
	Short:   "Convert a raw Strava activity dump into a Parquet snapshot.",
	Long:    `Convert repairs a possibly-concatenated JSON dump, flattens each activity into a columnar table with typed columns, and overwrites the Parquet snapshot atomically.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: setupInputPath,
	RunE: func(_ *cobra.Command, _ []string) error {
		raw, err := os.ReadFile(cfg.InputPath)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		records, err := core.Repair(raw)
		if err != nil {
			return err
		}
		logger.Info("loaded activities", "records", len(records))

		table, err := core.BuildTable(records)
		if err != nil {
			return err
		}
		core.Coerce(table, logger)

		if err := parquet.WriteTable(table, cfg.OutputPath, logger); err != nil {
			return err
		}

		if cfg.ArchiveDir != "" {
			if _, err := archive.WriteRaw(raw, cfg.ArchiveDir, time.Now(), logger); err != nil {
				return err
			}
		}

		logger.Info("conversion completed", "output", cfg.OutputPath)
		return nil
	},
}

package cmd

import (
	"net/http"
	"time"

	"github.com/flazor/stride/internal/parquet"
	"github.com/flazor/stride/internal/server"
	"github.com/spf13/cobra"
)

// serveCmd exposes snapshot aggregates over a read-only JSON API.
var serveCmd = &cobra.Command{
	Use:     "serve <snapshot.parquet>",
	Short:   "Serve snapshot aggregates as a read-only JSON API.",
	Long:    `Serve loads a Parquet snapshot once and exposes its summary, daily series, heatmap grid and activity types as JSON endpoints for dashboard frontends.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: setupSnapshotPath,
	RunE: func(_ *cobra.Command, _ []string) error {
		table, err := parquet.ReadTable(cfg.SnapshotPath)
		if err != nil {
			return err
		}

		srv := server.New(table, logger, time.Now)
		logger.Info("serving snapshot aggregates",
			"addr", cfg.Addr,
			"records", table.NumRows(),
			"columns", table.NumColumns())

		httpSrv := &http.Server{
			Addr:              cfg.Addr,
			Handler:           srv.Router(cfg.CORSOrigins),
			ReadHeaderTimeout: 10 * time.Second,
		}
		return httpSrv.ListenAndServe()
	},
}

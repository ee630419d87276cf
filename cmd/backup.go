package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/flazor/stride/internal/contract"
	"github.com/flazor/stride/internal/strava"
	"github.com/spf13/cobra"
)

// backupCmd fetches every activity from the Strava API and writes a
// timestamped JSON dump. Dumps are append-only: one file per run.
var backupCmd = &cobra.Command{
	Use:     "backup",
	Short:   "Fetch all activities from Strava and save a timestamped JSON dump.",
	Long:    `Backup exchanges the configured refresh token for an access token, pages through the athlete's activities, and writes them as a JSON array named by the run timestamp. Credentials come from STRAVA_CLIENT_ID, STRAVA_CLIENT_SECRET and STRAVA_REFRESH_TOKEN (a .env file is honored).`,
	PreRunE: setupPlain,
	RunE: func(cmd *cobra.Command, _ []string) error {
		creds, err := contract.LoadStravaCredentials()
		if err != nil {
			return err
		}

		client := strava.NewClient(strava.DefaultBaseURL, cfg.RequestsPerMinute, logger)

		token, err := client.RefreshAccessToken(cmd.Context(), creds)
		if err != nil {
			return fmt.Errorf("obtain access token: %w", err)
		}

		activities, err := client.FetchActivities(cmd.Context(), token)
		if err != nil {
			return fmt.Errorf("fetch activities: %w", err)
		}

		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}

		name := fmt.Sprintf("strava_activities_%s.json", time.Now().Format("20060102_150405"))
		path := filepath.Join(cfg.DataDir, name)

		dump, err := json.MarshalIndent(activities, "", "  ")
		if err != nil {
			return fmt.Errorf("encode dump: %w", err)
		}
		if err := os.WriteFile(path, dump, 0o644); err != nil {
			return fmt.Errorf("write dump: %w", err)
		}

		logger.Info("backup completed", "activities", len(activities), "path", path)
		return nil
	},
}

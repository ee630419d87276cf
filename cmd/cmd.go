// Package cmd defines the command-line interface for stride.
package cmd

import (
	"github.com/flazor/stride/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(heatmapCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", "text", "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("type", "All", "Activity type filter (e.g. Run, Ride)")
	rootCmd.PersistentFlags().String("period", "ALL", "Display period: 1W 1M 3M 6M YTD 1Y 2Y 5Y 10Y ALL")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Raise log verbosity to debug")
	rootCmd.PersistentFlags().String("log-file", "", "Tee logs into this file in addition to stderr")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of convertCmd to Viper. The -o flag is the snapshot
	// destination, so it binds to its own key instead of the format key.
	convertCmd.Flags().StringP("output", "o", "", "Output Parquet file path (default: input with .parquet extension)")
	convertCmd.Flags().String("archive-dir", "", "Directory for a timestamped compressed copy of the raw dump")
	if err := viper.BindPFlag("output-path", convertCmd.Flags().Lookup("output")); err != nil {
		contract.LogFatal("Error binding convert output flag", err)
	}
	if err := viper.BindPFlag("archive-dir", convertCmd.Flags().Lookup("archive-dir")); err != nil {
		contract.LogFatal("Error binding convert archive flag", err)
	}

	// Bind all flags of backupCmd to Viper
	backupCmd.Flags().String("data-dir", contract.DefaultDataDir, "Directory for timestamped activity dumps")
	backupCmd.Flags().Int("requests-per-minute", contract.DefaultRequestsPerMinute, "Strava API request budget")
	if err := viper.BindPFlags(backupCmd.Flags()); err != nil {
		contract.LogFatal("Error binding backup flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultAddr, "Listen address for the JSON API")
	serveCmd.Flags().String("cors-origins", "", "Comma-separated list of allowed CORS origins")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}
}

package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/flazor/stride/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file,
// env, flags). Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// logger is built during setup and injected into every component.
var logger *slog.Logger

// closeLogger releases the optional log file sink; set during setup.
var closeLogger = func() {}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "stride",
	Short:              "Turn Strava activity dumps into a queryable snapshot and training trends.",
	Long:               `Stride repairs raw Strava activity dumps, normalizes them into a columnar snapshot, and derives daily mileage and calendar heatmap aggregates.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".stride") // Name of config file (without extension)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")     // Look in the current directory
		viper.AddConfigPath("$HOME") // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("STRIDE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Set defaults in Viper
	viper.SetDefault("output", "text")
	viper.SetDefault("period", "ALL")
	viper.SetDefault("type", "All")
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("data-dir", contract.DefaultDataDir)
	viper.SetDefault("addr", contract.DefaultAddr)
	viper.SetDefault("requests-per-minute", contract.DefaultRequestsPerMinute)
}

// sharedSetup unmarshals config, runs validation, and builds the logger.
// Positional arguments land in the raw input before validation.
func sharedSetup(_ *cobra.Command, args []string, assign func(*contract.ConfigRawInput, []string)) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	if assign != nil {
		assign(input, args)
	}

	// 4. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 5. Build the injected logger from the validated config.
	l, closer, err := contract.NewLogger(cfg.Verbose, cfg.LogFile)
	if err != nil {
		return err
	}
	logger = l
	closeLogger = closer

	return nil
}

// setupPlain is the PreRunE for commands without positional arguments.
func setupPlain(cmd *cobra.Command, args []string) error {
	return sharedSetup(cmd, args, nil)
}

// setupInputPath is the PreRunE for the conversion entrypoint.
func setupInputPath(cmd *cobra.Command, args []string) error {
	return sharedSetup(cmd, args, func(input *contract.ConfigRawInput, args []string) {
		input.InputPathStr = args[0]
	})
}

// setupSnapshotPath is the PreRunE for aggregation consumers.
func setupSnapshotPath(cmd *cobra.Command, args []string) error {
	return sharedSetup(cmd, args, func(input *contract.ConfigRawInput, args []string) {
		input.SnapshotPathStr = args[0]
	})
}

// Execute runs the root command.
func Execute() error {
	// closeLogger is reassigned during setup, so resolve it at exit.
	defer func() { closeLogger() }()
	return rootCmd.Execute()
}

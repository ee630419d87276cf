// Package contract provides validated configuration and shared utilities
// for the stride CLI's internal architecture.
package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flazor/stride/core"
	"github.com/flazor/stride/schema"
)

// Default values for configuration.
const (
	DefaultPrecision         = 1
	DefaultDataDir           = "data"
	DefaultAddr              = ":8080"
	DefaultRequestsPerMinute = 6
)

// Config holds the runtime configuration for a stride invocation.
// This struct remains the "final, validated" config.
type Config struct {
	// Conversion entrypoint.
	InputPath  string // positional: raw JSON dump
	OutputPath string // snapshot destination; derived from InputPath when empty
	ArchiveDir string // when set, a compressed raw copy is archived per run

	// Backup entrypoint.
	DataDir           string
	RequestsPerMinute int

	// Aggregation consumers.
	SnapshotPath string // positional: parquet snapshot to read
	ActivityType string
	Period       schema.Period

	// Output surface.
	Output     schema.OutputMode
	OutputFile string
	Precision  int

	// Serve entrypoint.
	Addr        string
	CORSOrigins []string

	// Logging.
	Verbose bool
	LogFile string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually from positional args, so no tag.
	InputPathStr    string
	SnapshotPathStr string

	Output            string `mapstructure:"output"`
	OutputFile        string `mapstructure:"output-file"`
	OutputPath        string `mapstructure:"output-path"`
	ArchiveDir        string `mapstructure:"archive-dir"`
	DataDir           string `mapstructure:"data-dir"`
	RequestsPerMinute int    `mapstructure:"requests-per-minute"`
	ActivityType      string `mapstructure:"type"`
	Period            string `mapstructure:"period"`
	Precision         int    `mapstructure:"precision"`
	Addr              string `mapstructure:"addr"`
	CORSOrigins       string `mapstructure:"cors-origins"`
	Verbose           bool   `mapstructure:"verbose"`
	LogFile           string `mapstructure:"log-file"`
}

// ProcessAndValidate turns raw input into the final validated config.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	cfg.InputPath = input.InputPathStr
	cfg.SnapshotPath = input.SnapshotPathStr
	cfg.ArchiveDir = input.ArchiveDir
	cfg.OutputFile = input.OutputFile
	cfg.Verbose = input.Verbose
	cfg.LogFile = input.LogFile

	cfg.OutputPath = input.OutputPath
	if cfg.OutputPath == "" && cfg.InputPath != "" {
		cfg.OutputPath = DefaultOutputPath(cfg.InputPath)
	}

	cfg.DataDir = input.DataDir
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}

	cfg.RequestsPerMinute = input.RequestsPerMinute
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = DefaultRequestsPerMinute
	}

	cfg.ActivityType = input.ActivityType
	if cfg.ActivityType == "" {
		cfg.ActivityType = schema.AllActivityTypes
	}

	cfg.Period = schema.Period(strings.ToUpper(input.Period))
	if input.Period == "" {
		cfg.Period = schema.PeriodAll
	}
	if !core.IsValidPeriod(cfg.Period) {
		return fmt.Errorf("invalid period %q (valid: %v)", input.Period, core.ValidPeriods)
	}

	switch schema.OutputMode(input.Output) {
	case schema.TextOut, schema.CSVOut, schema.JSONOut:
		cfg.Output = schema.OutputMode(input.Output)
	case "":
		cfg.Output = schema.TextOut
	default:
		return fmt.Errorf("invalid output mode %q (valid: text, csv, json)", input.Output)
	}

	cfg.Precision = input.Precision
	if cfg.Precision < 0 || cfg.Precision > 10 {
		return fmt.Errorf("precision must be between 0 and 10, got %d", input.Precision)
	}

	cfg.Addr = input.Addr
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	if input.CORSOrigins != "" {
		for _, origin := range strings.Split(input.CORSOrigins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
			}
		}
	}

	return nil
}

// DefaultOutputPath derives the snapshot path from the input filename by
// swapping its extension for .parquet.
func DefaultOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + ".parquet"
}

// SelectOutputFile returns the file handle results are written to, falling
// back to stdout when no path is configured.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/penwyp/go-temp-monitor/internal/config"
	"github.com/penwyp/go-temp-monitor/internal/data/store"
	"github.com/penwyp/go-temp-monitor/internal/presentation/layout"
	"github.com/penwyp/go-temp-monitor/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Logging related
	debug bool

	// Config and data paths
	configFile string
	dataFile   string

	// Time zones
	timezone        string
	storageTimezone string

	// Output related
	noColor bool

	// Resolved per invocation by setup
	cfg config.Config

	// Overridden in tests so runs do not touch the user's home
	logFilePath = config.DefaultLogFile

	rootCmd = &cobra.Command{
		Use:   "go-temp-monitor [command]",
		Short: "Body temperature log with statistics and charts",
		Long: `go-temp-monitor records body temperature readings in a local CSV file and shows
statistics and a time-series chart of them. Readings may carry a medication note,
which is highlighted on the chart.

Examples:
  go-temp-monitor add 37.8                                   # Record a reading taken now
  go-temp-monitor add 38.4 --medication "paracetamol 500mg"  # Record a reading with medication
  go-temp-monitor add 37.1 --at "2024-03-01 07:30"           # Record an earlier reading
  go-temp-monitor stats --daily                              # Average/min/max, per day too
  go-temp-monitor chart                                      # Temperature over time
  go-temp-monitor list --limit 10                            # Latest ten readings
  go-temp-monitor watch                                      # Redraw whenever the file changes
  go-temp-monitor --timezone Asia/Shanghai chart             # Show times in another zone`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              runOverview,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultConfigFile,
		"Config file path")
	rootCmd.PersistentFlags().StringVarP(&dataFile, "file", "f", config.DefaultDataFile,
		"Temperature data file (CSV)")

	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", config.DefaultTimezone,
		"Display timezone (e.g., Asia/Shanghai, UTC, Local)")
	rootCmd.PersistentFlags().StringVar(&storageTimezone, "storage-timezone", config.DefaultStorageTimezone,
		"Timezone new readings are written in")

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
}

// Execute runs the root command. The logger is closed on every exit path,
// including failed commands.
func Execute() error {
	defer util.CloseLogger()

	err := rootCmd.Execute()
	if err != nil {
		util.LogError("Command failed", util.F("error", err.Error()))
	}
	return err
}

// setup initializes logging, resolves the layered configuration and the
// display timezone for every command.
func setup(cmd *cobra.Command, args []string) error {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(logFilePath)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := util.InitLogger(logLevel, logFile, debug); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	loaded, err := config.Load(expandPath(configFile))
	if err != nil {
		return err
	}
	applyFlags(cmd, &loaded)
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	loaded.DataFile = expandPath(loaded.DataFile)
	cfg = loaded

	if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
		return err
	}

	util.LogDebug("Configuration resolved",
		util.F("data_file", cfg.DataFile),
		util.F("timezone", cfg.Timezone),
		util.F("storage_timezone", cfg.StorageTimezone))
	return nil
}

// applyFlags copies explicitly set flags over the file configuration.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("file") {
		c.DataFile = dataFile
	}
	if flags.Changed("timezone") {
		c.Timezone = timezone
	}
	if flags.Changed("storage-timezone") {
		c.StorageTimezone = storageTimezone
	}
	if noColor {
		off := false
		c.Color = &off
	}
}

// newStore opens the configured data file.
func newStore() (*store.FileStore, error) {
	loc, err := util.LoadLocation(cfg.StorageTimezone)
	if err != nil {
		return nil, err
	}
	return store.NewFileStore(cfg.DataFile, store.WithLocation(loc)), nil
}

// colorEnabled reports whether ANSI colors should be written to stdout.
func colorEnabled(sizer *layout.Sizer) bool {
	return cfg.ColorEnabled() && sizer.IsTerminal()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

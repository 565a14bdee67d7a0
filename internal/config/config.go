package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/penwyp/go-temp-monitor/internal/util"
)

const (
	DefaultConfigFile      = "~/.go-temp-monitor/config.yaml"
	DefaultDataFile        = "~/.go-temp-monitor/temperature_data.csv"
	DefaultLogFile         = "~/.go-temp-monitor/logs/app.log"
	DefaultTimezone        = "Local"
	DefaultStorageTimezone = "UTC"
)

// Config holds settings shared by all commands. Values come from built-in
// defaults, then the YAML config file, then explicitly set flags.
type Config struct {
	DataFile        string `yaml:"data_file"`
	Timezone        string `yaml:"timezone"`
	StorageTimezone string `yaml:"storage_timezone"`
	ChartWidth      int    `yaml:"chart_width"` // 0 means fit the terminal
	Color           *bool  `yaml:"color"`
}

// Default returns the built-in configuration.
func Default() Config {
	color := true
	return Config{
		DataFile:        DefaultDataFile,
		Timezone:        DefaultTimezone,
		StorageTimezone: DefaultStorageTimezone,
		Color:           &color,
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			util.LogDebug("No config file, using defaults", util.F("path", path))
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fileCfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.merge(fileCfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) merge(other Config) {
	if s := strings.TrimSpace(other.DataFile); s != "" {
		c.DataFile = s
	}
	if s := strings.TrimSpace(other.Timezone); s != "" {
		c.Timezone = s
	}
	if s := strings.TrimSpace(other.StorageTimezone); s != "" {
		c.StorageTimezone = s
	}
	if other.ChartWidth != 0 {
		c.ChartWidth = other.ChartWidth
	}
	if other.Color != nil {
		c.Color = other.Color
	}
}

// Validate checks zone names and numeric ranges.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DataFile) == "" {
		return errors.New("data_file must not be empty")
	}
	if _, err := util.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	if _, err := util.LoadLocation(c.StorageTimezone); err != nil {
		return fmt.Errorf("storage_timezone: %w", err)
	}
	if c.ChartWidth < 0 {
		return fmt.Errorf("chart_width must be >= 0, got %d", c.ChartWidth)
	}
	return nil
}

// ColorEnabled reports whether ANSI colors should be used.
func (c Config) ColorEnabled() bool {
	return c.Color == nil || *c.Color
}

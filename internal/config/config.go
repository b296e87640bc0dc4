package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roguewave/hufcheck/internal/diagnostic"
	"github.com/roguewave/hufcheck/internal/gate"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = FormatText
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the top-level hufcheck configuration.
type Config struct {
	// Thresholds overrides the reference limits. Absent fields keep their
	// default values.
	Thresholds diagnostic.Thresholds `yaml:"thresholds"`

	Log LogConfig `yaml:"log"`

	// Gates decide the exit status of evaluate. When empty, gate.Default applies.
	Gates []gate.Gate `yaml:"gates"`

	Export ExportConfig `yaml:"export"`
}

// LogConfig controls the process-wide slog handler.
type LogConfig struct {
	// Level is one of: debug | info | warn | error.
	Level string `yaml:"level"`

	// Format is text (coloured console output) or json.
	Format string `yaml:"format"`
}

// SlogLevel returns Level as a slog.Level. Unknown levels map to info;
// validate rejects them before this is reached.
func (l LogConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// ExportConfig configures Prometheus exposition of reports.
type ExportConfig struct {
	// Textfile is written atomically after every evaluation when set, for the
	// node-exporter textfile collector.
	Textfile string `yaml:"textfile"`
}

// Load reads and parses the YAML config file at path.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Thresholds: diagnostic.DefaultThresholds(),
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// validate checks enums, thresholds and gate conditions.
func validate(cfg *Config) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		return fmt.Errorf("log.level: unknown level %q", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("log.format: unknown format %q", cfg.Log.Format)
	}
	if err := cfg.Thresholds.Validate(); err != nil {
		return fmt.Errorf("thresholds: %w", err)
	}
	if err := gate.Validate(cfg.Gates); err != nil {
		return err
	}
	return nil
}

// Package config provides configuration types, defaults and persistence for envreg.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zjrosen/envreg/internal/log"
)

// Config holds all configuration options for envreg.
type Config struct {
	// Manifests are YAML registration files applied after the built-ins,
	// in order.
	Manifests []string       `mapstructure:"manifests"`
	Log       LogConfig      `mapstructure:"log"`
	Resolver  ResolverConfig `mapstructure:"resolver"`
	Tracing   TracingConfig  `mapstructure:"tracing"`
}

// LogConfig controls the debug log file.
type LogConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`  // default: ~/.config/envreg/debug.log
	Level   string `mapstructure:"level"` // "debug", "info", "warn" or "error"
}

// ResolverConfig controls entry point resolution caching.
type ResolverConfig struct {
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	CacheCleanup time.Duration `mapstructure:"cache_cleanup"`
	DisableCache bool          `mapstructure:"disable_cache"`
	SlidingTTL   bool          `mapstructure:"sliding_ttl"` // reads extend cache_ttl
}

// TracingConfig holds OpenTelemetry settings.
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	Exporter     string  `mapstructure:"exporter"` // "none", "file", "stdout" or "otlp"
	FilePath     string  `mapstructure:"file_path"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate"`
	ServiceName  string  `mapstructure:"service_name"`
}

// Dir returns ~/.config/envreg, or "" if the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "envreg")
}

// DefaultLogPath returns the debug log location.
func DefaultLogPath() string {
	if dir := Dir(); dir != "" {
		return filepath.Join(dir, "debug.log")
	}
	return "envreg-debug.log"
}

// DefaultTracesFilePath returns the file exporter location, or "" if the
// home directory is unknown.
func DefaultTracesFilePath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// Defaults returns the configuration used when no file is found.
func Defaults() Config {
	return Config{
		Manifests: nil,
		Log: LogConfig{
			Enabled: false,
			Path:    "", // Derived at runtime
			Level:   "info",
		},
		Resolver: ResolverConfig{
			CacheTTL:     5 * time.Minute,
			CacheCleanup: 10 * time.Minute,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
			ServiceName:  "envreg",
		},
	}
}

// Validate checks every section.
func Validate(cfg Config) error {
	if err := ValidateManifests(cfg.Manifests); err != nil {
		return err
	}
	if err := ValidateLog(cfg.Log); err != nil {
		return err
	}
	if err := ValidateResolver(cfg.Resolver); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateManifests rejects blank entries.
func ValidateManifests(paths []string) error {
	for i, p := range paths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("manifests[%d]: path is empty", i)
		}
	}
	return nil
}

// ValidateLog checks the log level name.
func ValidateLog(cfg LogConfig) error {
	if _, err := log.ParseLevel(cfg.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// ValidateResolver rejects negative durations. Zero selects the default.
func ValidateResolver(cfg ResolverConfig) error {
	if cfg.CacheTTL < 0 {
		return fmt.Errorf("resolver.cache_ttl must not be negative, got %v", cfg.CacheTTL)
	}
	if cfg.CacheCleanup < 0 {
		return fmt.Errorf("resolver.cache_cleanup must not be negative, got %v", cfg.CacheCleanup)
	}
	return nil
}

// ValidateTracing checks the exporter, sample rate and exporter-specific
// settings.
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	switch tracing.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
	}

	// Path requirements only matter once tracing is on
	if tracing.Enabled && tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

// DefaultConfigTemplate returns the default config as commented YAML.
func DefaultConfigTemplate() string {
	return `# envreg configuration

# Manifests registered after the built-in environments, in order.
# Within a manifest, v0 of a name must come before v1.
manifests: []
#  - ./environments.yaml

# Debug log (also enabled by --debug or ENVREG_DEBUG=1)
log:
  enabled: false
  # path: ~/.config/envreg/debug.log
  level: info   # debug, info, warn, error

# Entry point resolution cache
resolver:
  cache_ttl: 5m
  cache_cleanup: 10m
  disable_cache: false
  sliding_ttl: false   # each hit restarts cache_ttl

# OpenTelemetry tracing
tracing:
  enabled: false
  exporter: file          # none, file, stdout, otlp
  # file_path: ~/.config/envreg/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0
  service_name: envreg
`
}

// WriteDefaultConfig creates a config file at configPath from
// DefaultConfigTemplate, creating the parent directory if needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "created default config", "path", configPath)
	return nil
}

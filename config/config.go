// Package config loads deployment configuration from TOML.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the full deployment configuration.
type Config struct {
	Store    StoreConfig    `toml:"store"`
	Issuance IssuanceConfig `toml:"issuance"`
	Bus      BusConfig      `toml:"bus"`
	Archive  ArchiveConfig  `toml:"archive"`
	Logging  LoggingConfig  `toml:"logging"`
}

// StoreConfig selects and configures the work package state backend.
type StoreConfig struct {
	// Backend is "memory" or "nats".
	Backend string `toml:"backend"`

	// URL is the NATS server URL when Backend is "nats".
	URL string `toml:"url"`

	// Bucket is the JetStream key-value bucket name.
	Bucket string `toml:"bucket"`
}

// IssuanceConfig tunes task issuance.
type IssuanceConfig struct {
	// DefaultTTL expires issued work packages that carry no explicit
	// ttl. Zero disables the default; packages then never expire.
	DefaultTTL Duration `toml:"default_ttl"`

	// RateCapacity is the per-client issuance budget per window. Zero
	// disables rate limiting.
	RateCapacity int `toml:"rate_capacity"`

	// RateWindow is the refill window for the issuance budget.
	RateWindow Duration `toml:"rate_window"`
}

// BusConfig configures lifecycle event publication.
type BusConfig struct {
	// Enabled turns event publication on.
	Enabled bool `toml:"enabled"`

	// URL is the NATS server URL. Empty falls back to the store URL.
	URL string `toml:"url"`
}

// ArchiveConfig configures the interaction search index.
type ArchiveConfig struct {
	// Enabled turns indexing of completed text interactions on.
	Enabled bool `toml:"enabled"`

	// Path is the on-disk index location. Empty means in-memory.
	Path string `toml:"path"`
}

// LoggingConfig configures console output.
type LoggingConfig struct {
	// Level is one of DEBUG, INFO, WARN, ERROR.
	Level string `toml:"level"`
}

// Duration wraps time.Duration so TOML values can be written as "30m".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the configuration used when no file is given:
// in-memory store, no rate limit, no expiry, no bus, no archive.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Backend: "memory",
			Bucket:  "annokit-work-packages",
		},
		Issuance: IssuanceConfig{
			RateWindow: Duration(time.Minute),
		},
		Logging: LoggingConfig{
			Level: "INFO",
		},
	}
}

// Load reads and validates a TOML configuration file. Absent keys keep
// their defaults.
func Load(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	return Parse(string(content))
}

// Parse parses TOML configuration content over the defaults.
func Parse(content string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case "memory", "nats":
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Store.Backend == "nats" && c.Store.URL == "" {
		return fmt.Errorf("store backend nats requires a url")
	}
	if c.Store.Bucket == "" {
		return fmt.Errorf("store bucket name is required")
	}

	if c.Issuance.RateCapacity < 0 {
		return fmt.Errorf("rate_capacity must not be negative")
	}
	if c.Issuance.RateCapacity > 0 && c.Issuance.RateWindow.Std() <= 0 {
		return fmt.Errorf("rate_window must be positive when rate_capacity is set")
	}
	if c.Issuance.DefaultTTL.Std() < 0 {
		return fmt.Errorf("default_ttl must not be negative")
	}

	switch c.Logging.Level {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}

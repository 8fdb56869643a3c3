// Package config loads the server configuration from YAML with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FEEDPOST_"

// Config holds all server settings.
type Config struct {
	Addr            string          `yaml:"addr"`
	DBPath          string          `yaml:"db_path"`
	Locale          string          `yaml:"locale"`
	Timezone        string          `yaml:"timezone"`
	LogLevel        string          `yaml:"log_level"`
	SeedFile        string          `yaml:"seed_file"`
	ShutdownTimeout string          `yaml:"shutdown_timeout"`
	Instances       InstancesConfig `yaml:"instances"`
}

// InstancesConfig bounds the mounted post cards kept in memory.
type InstancesConfig struct {
	Capacity int    `yaml:"capacity"`
	TTL      string `yaml:"ttl"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:            ":8080",
		DBPath:          "data/badger",
		Locale:          "pt_BR",
		Timezone:        "UTC",
		LogLevel:        "info",
		ShutdownTimeout: "5s",
		Instances: InstancesConfig{
			Capacity: 1024,
			TTL:      "30m",
		},
	}
}

// Load reads the YAML file at path over the defaults and applies
// environment overrides. An empty or missing path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	strs := map[string]*string{
		"ADDR":             &c.Addr,
		"DB_PATH":          &c.DBPath,
		"LOCALE":           &c.Locale,
		"TIMEZONE":         &c.Timezone,
		"LOG_LEVEL":        &c.LogLevel,
		"SEED_FILE":        &c.SeedFile,
		"SHUTDOWN_TIMEOUT": &c.ShutdownTimeout,
		"INSTANCES_TTL":    &c.Instances.TTL,
	}
	for name, field := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			*field = v
		}
	}

	if v, ok := os.LookupEnv(EnvPrefix + "INSTANCES_CAPACITY"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sINSTANCES_CAPACITY %q: %w", EnvPrefix, v, err)
		}
		c.Instances.Capacity = n
	}
	return nil
}

// Validate checks the settings that cannot be defaulted.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	if c.Instances.Capacity <= 0 {
		return fmt.Errorf("instances.capacity must be positive, got %d", c.Instances.Capacity)
	}
	if _, err := c.GetInstanceTTL(); err != nil {
		return err
	}
	if _, err := c.GetShutdownTimeout(); err != nil {
		return err
	}
	if _, err := c.GetLocation(); err != nil {
		return err
	}
	if _, err := c.GetLogLevel(); err != nil {
		return err
	}
	return nil
}

// GetInstanceTTL returns how long an untouched card stays mounted.
// Zero disables expiry.
func (c *Config) GetInstanceTTL() (time.Duration, error) {
	if c.Instances.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Instances.TTL)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid instances.ttl %q", c.Instances.TTL)
	}
	return d, nil
}

// GetShutdownTimeout returns the graceful shutdown deadline.
func (c *Config) GetShutdownTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.ShutdownTimeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid shutdown_timeout %q", c.ShutdownTimeout)
	}
	return d, nil
}

// GetLocation returns the time zone dates are rendered in.
func (c *Config) GetLocation() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

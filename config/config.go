package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the complete application configuration
type Config struct {
	// HTTP server settings
	HTTP struct {
		Address string `yaml:"address"`
		Port    string `yaml:"port"`
	} `yaml:"http"`

	// Storage settings
	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`

	// EPG preview settings
	EPG struct {
		PreviewURL string        `yaml:"preview_url"`
		Debounce   time.Duration `yaml:"debounce"`
	} `yaml:"epg"`

	// Remote fetch settings (URL import and EPG preview share the chain)
	Fetch struct {
		RelayURL string        `yaml:"relay_url"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"fetch"`

	// Logging settings
	LogLevel string `yaml:"log_level"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	cfg := &Config{}

	// HTTP defaults
	cfg.HTTP.Address = "127.0.0.1"
	cfg.HTTP.Port = "8080"

	// Storage defaults
	cfg.Storage.Path = "playlist-manager.db"

	// EPG preview defaults
	cfg.EPG.PreviewURL = "https://guiacanais.alwaysdata.net/"
	cfg.EPG.Debounce = 1 * time.Second

	// Fetch defaults
	cfg.Fetch.RelayURL = "https://api.allorigins.win/raw"
	cfg.Fetch.Timeout = 15 * time.Second

	cfg.LogLevel = "INFO"

	return cfg
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	var errs []string

	if c.HTTP.Port == "" {
		errs = append(errs, "HTTP port is required")
	}
	if c.Storage.Path == "" {
		errs = append(errs, "storage path is required")
	}
	if c.EPG.PreviewURL == "" {
		errs = append(errs, "EPG preview URL is required")
	} else if _, err := url.ParseRequestURI(c.EPG.PreviewURL); err != nil {
		errs = append(errs, fmt.Sprintf("EPG preview URL is invalid: %v", err))
	}
	if c.Fetch.RelayURL != "" {
		if _, err := url.ParseRequestURI(c.Fetch.RelayURL); err != nil {
			errs = append(errs, fmt.Sprintf("fetch relay URL is invalid: %v", err))
		}
	}
	if c.Fetch.Timeout <= 0 {
		errs = append(errs, "fetch timeout must be positive")
	}
	if c.EPG.Debounce < 0 {
		errs = append(errs, "EPG debounce cannot be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Load loads configuration from a file (if present) and applies
// environment variable overrides
func Load() (*Config, error) {
	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); err == nil {
		cfg, err = LoadFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg = Default()
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration
func applyEnvOverrides(cfg *Config) error {
	if val := os.Getenv("HTTP_ADDRESS"); val != "" {
		cfg.HTTP.Address = val
	}
	if val := os.Getenv("HTTP_PORT"); val != "" {
		cfg.HTTP.Port = val
	}
	if val := os.Getenv("STORAGE_PATH"); val != "" {
		cfg.Storage.Path = val
	}
	if val := os.Getenv("EPG_PREVIEW_URL"); val != "" {
		cfg.EPG.PreviewURL = val
	}
	if val := os.Getenv("FETCH_RELAY_URL"); val != "" {
		cfg.Fetch.RelayURL = val
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		cfg.LogLevel = val
	}
	if val := os.Getenv("EPG_DEBOUNCE"); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("invalid EPG_DEBOUNCE: %w", err)
		}
		cfg.EPG.Debounce = d
	}
	if val := os.Getenv("FETCH_TIMEOUT"); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("invalid FETCH_TIMEOUT: %w", err)
		}
		cfg.Fetch.Timeout = d
	}
	return nil
}

// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the token goes to the OS keychain.
//
// Precedence, lowest first: built-in defaults, config.yaml, environment, flags.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"examdesk/cli/internal/backend"
	"examdesk/cli/internal/xdg"
)

// DefaultAPIURL is the local development backend.
const DefaultAPIURL = "http://localhost:8000/api/v1"

// Environment variables that override the file.
const (
	EnvAPIURL    = "EXAMDESK_API_URL"
	EnvLogLevel  = "EXAMDESK_LOG_LEVEL"
	EnvTimeoutMS = "EXAMDESK_TIMEOUT_MS"
	EnvToken     = "EXAMDESK_TOKEN"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	APIURL    string      `yaml:"api_url"`
	TimeoutMS int         `yaml:"timeout_ms"`
	Retry     RetryConfig `yaml:"retry"`
	RateLimit float64     `yaml:"rate_limit"`
	LogLevel  string      `yaml:"log_level"`
}

// RetryConfig mirrors backend.RetryPolicy in file-friendly units.
type RetryConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
	DelayMS     int `yaml:"delay_ms"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		APIURL:    DefaultAPIURL,
		TimeoutMS: 30000,
		Retry:     RetryConfig{MaxAttempts: 3, DelayMS: 1000},
		LogLevel:  "warn",
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads configuration from the XDG config file and applies environment
// overrides; a missing file yields defaults.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Config{}, err
	}
	return LoadFile(p)
}

// LoadFile is Load for an explicit path.
func LoadFile(p string) (Config, error) {
	c, err := readFile(p)
	if err != nil {
		return c, err
	}
	applyEnv(&c)
	return c, c.validate()
}

// readFile returns defaults overlaid with the file at p, without environment overrides.
func readFile(p string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(p)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return c, err
	default:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, err
		}
	}
	return c, nil
}

func applyEnv(c *Config) {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvTimeoutMS); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			c.TimeoutMS = ms
		}
	}
}

func (c Config) validate() error {
	if c.APIURL == "" {
		return errors.New("config: api_url must not be empty")
	}
	if c.TimeoutMS < 0 || c.Retry.MaxAttempts < 0 || c.Retry.DelayMS < 0 {
		return errors.New("config: timeout_ms, retry.max_attempts and retry.delay_ms must be >= 0")
	}
	return nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

// SaveAPIURL stores url as the default backend in the config file. Other settings
// in the file are kept and environment overrides are not written back.
func SaveAPIURL(url string) error {
	p, err := Path()
	if err != nil {
		return err
	}
	c, err := readFile(p)
	if err != nil {
		return err
	}
	c.APIURL = url
	if err := c.validate(); err != nil {
		return err
	}
	return Save(c)
}

// Gateway converts the settings into request gateway configuration.
func (c Config) Gateway() backend.Config {
	cfg := backend.DefaultConfig(c.APIURL)
	if c.TimeoutMS > 0 {
		cfg.Timeout = time.Duration(c.TimeoutMS) * time.Millisecond
	}
	cfg.Retry = backend.RetryPolicy{
		MaxAttempts: c.Retry.MaxAttempts,
		Delay:       time.Duration(c.Retry.DelayMS) * time.Millisecond,
	}
	cfg.RateLimit = c.RateLimit
	return cfg
}

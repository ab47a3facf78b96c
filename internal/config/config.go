// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

// Package config loads service configuration with layered sources:
// built-in defaults, then an optional YAML file, then CINEMOOD_*
// environment variables. Later layers win.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/cinemood/internal/recommend"
)

// DefaultConfigPaths lists where config files are searched, first hit
// wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cinemood/config.yaml",
	"/etc/cinemood/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CINEMOOD_CONFIG_PATH"

// envPrefix namespaces all environment overrides.
const envPrefix = "CINEMOOD_"

// Config is the root service configuration.
type Config struct {
	Server    ServerConfig     `koanf:"server"`
	TMDB      TMDBConfig       `koanf:"tmdb"`
	Store     StoreConfig      `koanf:"store"`
	Recommend recommend.Config `koanf:"recommend"`
	Mood      MoodConfig       `koanf:"mood"`
	Logging   LoggingConfig    `koanf:"logging"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// TMDBConfig holds the catalog client settings. BearerToken is the TMDB
// v4 read access token and is required.
type TMDBConfig struct {
	BaseURL     string        `koanf:"base_url"`
	BearerToken string        `koanf:"bearer_token"`
	Timeout     time.Duration `koanf:"timeout"`
	RateLimit   float64       `koanf:"rate_limit"`
	RateBurst   int           `koanf:"rate_burst"`
}

// StoreConfig holds the snapshot store settings.
type StoreConfig struct {
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`
}

// MoodConfig holds the mood scoring settings.
type MoodConfig struct {
	// QuestionsPath points to a YAML file overriding the built-in puzzle
	// question bank. Empty means use the embedded defaults.
	QuestionsPath string `koanf:"questions_path"`
}

// LoggingConfig holds the logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns the built-in defaults, overridden by file and env
// layers.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8475,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		TMDB: TMDBConfig{
			BaseURL:     "https://api.themoviedb.org/3",
			BearerToken: "",
			Timeout:     10 * time.Second,
			RateLimit:   20,
			RateBurst:   10,
		},
		Store: StoreConfig{
			Path:     "/data/cinemood",
			InMemory: false,
		},
		Recommend: recommend.DefaultConfig(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load builds the configuration from defaults, optional YAML file, and
// environment variables, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envTransform maps CINEMOOD_SERVER_PORT to server.port: the first
// underscore after the prefix separates the section from the key, which
// keeps multi-word keys like tmdb.bearer_token addressable.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	section, key, found := strings.Cut(s, "_")
	if !found {
		return section
	}
	return section + "." + key
}

// findConfigFile returns the first existing config file path, or empty.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	if c.TMDB.BearerToken == "" {
		return fmt.Errorf("config: tmdb.bearer_token is required (set CINEMOOD_TMDB_BEARER_TOKEN)")
	}
	if c.TMDB.BaseURL == "" {
		return fmt.Errorf("config: tmdb.base_url must not be empty")
	}
	if !c.Store.InMemory && c.Store.Path == "" {
		return fmt.Errorf("config: store.path is required unless store.in_memory is set")
	}
	if c.Recommend.DefaultLimit <= 0 || c.Recommend.MaxLimit <= 0 {
		return fmt.Errorf("config: recommend limits must be positive")
	}
	if c.Recommend.DefaultLimit > c.Recommend.MaxLimit {
		return fmt.Errorf("config: recommend.default_limit %d exceeds recommend.max_limit %d",
			c.Recommend.DefaultLimit, c.Recommend.MaxLimit)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: logging.format %q must be json or console", c.Logging.Format)
	}
	return nil
}

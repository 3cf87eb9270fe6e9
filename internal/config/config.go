// Package config handles application configuration management.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Base directory for all CampusPocket data (~/.local/share/campuspocket)
	BaseDir string

	// Remote portal API settings
	API APIConfig

	// Image download settings
	Fetch FetchConfig
}

// APIConfig holds remote portal API settings.
type APIConfig struct {
	// BaseURL of the portal REST API (CAMPUSPOCKET_API_URL)
	BaseURL string
	// Token is the bearer token for authenticated endpoints. Usually read
	// from the cached session rather than the environment.
	Token string
	// Timeout for API requests
	Timeout time.Duration
}

// FetchConfig holds image download settings.
type FetchConfig struct {
	// Retries per image before giving up
	Retries int
	// Timeout per download attempt
	Timeout time.Duration
	// BaseDelay for exponential backoff between attempts
	BaseDelay time.Duration
	// RPS caps download requests per second; 0 disables throttling
	RPS int
}

// DefaultFetchConfig returns sensible defaults for image downloads.
func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		Retries:   3,
		Timeout:   10 * time.Second,
		BaseDelay: time.Second,
		RPS:       0,
	}
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if dir := os.Getenv("CAMPUSPOCKET_DIR"); dir != "" {
		cfg.BaseDir = dir
	}

	if url := os.Getenv("CAMPUSPOCKET_API_URL"); url != "" {
		cfg.API.BaseURL = url
	}

	if retries := os.Getenv("CAMPUSPOCKET_FETCH_RETRIES"); retries != "" {
		if n, err := strconv.Atoi(retries); err == nil && n > 0 {
			cfg.Fetch.Retries = n
		}
	}

	if rps := os.Getenv("CAMPUSPOCKET_FETCH_RPS"); rps != "" {
		if n, err := strconv.Atoi(rps); err == nil && n >= 0 {
			cfg.Fetch.RPS = n
		}
	}

	return cfg, nil
}

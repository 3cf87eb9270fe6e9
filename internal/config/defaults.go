package config

import "time"

// DefaultAPIBaseURL is the production portal API endpoint.
const DefaultAPIBaseURL = "https://api.campuspocket.app/api/v1"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseDir: DefaultBaseDir(),

		API: APIConfig{
			BaseURL: DefaultAPIBaseURL,
			Timeout: 30 * time.Second,
		},

		Fetch: DefaultFetchConfig(),
	}
}

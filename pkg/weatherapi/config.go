// Package weatherapi provides a Go client for the Skywarn weather-alert
// REST API. Every remote call passes through this package: it attaches
// the bearer credential, enforces the request timeout, and normalizes
// failures into model.Error values.
package weatherapi

import "time"

// Default client settings.
const (
	DefaultBaseURL = "http://localhost:8787"
	DefaultTimeout = 10 * time.Second
)

// Config holds configuration for the API client.
type Config struct {
	// BaseURL is the root of the weather-alert API, without trailing slash.
	BaseURL string

	// Timeout is the fixed per-request timeout. Exceeding it surfaces as
	// a network-kind error. There is no automatic retry.
	Timeout time.Duration
}

// DefaultConfig returns a Config with default settings.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// WithBaseURL returns a copy of the config with the specified base URL.
func (c Config) WithBaseURL(baseURL string) Config {
	c.BaseURL = baseURL
	return c
}

// WithTimeout returns a copy of the config with the specified timeout.
func (c Config) WithTimeout(timeout time.Duration) Config {
	c.Timeout = timeout
	return c
}

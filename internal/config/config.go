// Package config holds client and dev-server configuration. Client
// settings come from ~/.skywarn/config.yaml with environment and flag
// overrides layered on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ClientConfig holds configuration for the skywarn CLI.
type ClientConfig struct {
	ServerURL      string `yaml:"server_url"`      // Weather-alert API base URL
	TimeoutSeconds int    `yaml:"timeout_seconds"` // Per-request timeout
	LogLevel       string `yaml:"log_level"`       // debug, info, warn, error
	LogFormat      string `yaml:"log_format"`      // text, json
	CredentialsDB  string `yaml:"credentials_db"`  // Credential store database path
	KeyFile        string `yaml:"key_file"`        // Credential store master key path
}

// DefaultClientConfig returns sensible defaults rooted in ~/.skywarn.
func DefaultClientConfig() ClientConfig {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dir := filepath.Join(home, ".skywarn")
	return ClientConfig{
		ServerURL:      "http://localhost:8787",
		TimeoutSeconds: 10,
		LogLevel:       "info",
		LogFormat:      "text",
		CredentialsDB:  filepath.Join(dir, "credentials.db"),
		KeyFile:        filepath.Join(dir, "store.key"),
	}
}

// Timeout returns the per-request timeout as a duration.
func (c ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LoadClientConfig reads the YAML config at path over the defaults and
// applies environment overrides. A missing file is not an error; the
// defaults apply.
func LoadClientConfig(path string) (ClientConfig, error) {
	cfg := DefaultClientConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// no config file, defaults apply
	case err != nil:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if s := os.Getenv("SKYWARN_SERVER"); s != "" {
		cfg.ServerURL = s
	}
	return cfg, nil
}

// DefaultConfigPath returns ~/.skywarn/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".skywarn", "config.yaml")
}

// ServerConfig holds configuration for the local dev server.
type ServerConfig struct {
	Addr      string // Listen address (default ":8787")
	LogLevel  string // Log level: debug, info, warn, error
	LogFormat string // Log format: text, json
	Secret    string // Token signing secret
}

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:      ":8787",
		LogLevel:  "info",
		LogFormat: "text",
		Secret:    "dev-secret-change-me",
	}
}

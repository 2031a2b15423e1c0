// Package config loads server configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all icon-atlas-mcp configuration.
type Config struct {
	// SearchPaths is the ordered list of directories scanned for
	// configuration files at startup.
	SearchPaths []string `env:"ICON_ATLAS_SEARCH_PATHS" envSeparator:":"`

	// ConfigPattern selects which filenames inside a search path are
	// treated as configuration files. Matched case-insensitively.
	ConfigPattern string `env:"ICON_ATLAS_CONFIG_PATTERN" envDefault:"*.cfg"`

	// Logging
	LogLevel  string `env:"ICON_ATLAS_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"ICON_ATLAS_LOG_FORMAT" envDefault:"console"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

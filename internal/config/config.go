package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds process configuration, populated from QUESTLINE_* env vars.
// Cobra flags override individual fields after parsing.
type Config struct {
	// ContentBaseURL is the static content endpoint serving
	// {language}.json payloads.
	ContentBaseURL string `env:"QUESTLINE_CONTENT_URL" envDefault:"https://realtoken.example/content/learning"`

	// DefaultLanguage is the fallback language for content loading.
	DefaultLanguage string `env:"QUESTLINE_LANG" envDefault:"en"`

	// ConversionRate is the REAL-per-XP rate used by the reward ledger.
	ConversionRate float64 `env:"QUESTLINE_CONVERSION_RATE" envDefault:"0.04"`

	// DBPath overrides the default SQLite database location.
	DBPath string `env:"QUESTLINE_DB"`

	// LogMode selects the zap config ("dev" or "prod").
	LogMode string `env:"QUESTLINE_LOG_MODE" envDefault:"dev"`

	// Verbose lowers the log level to debug.
	Verbose bool `env:"QUESTLINE_VERBOSE"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

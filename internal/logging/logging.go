package logging

import (
	"strings"

	"go.uber.org/zap"
)

// New builds a zap logger for the given mode. "prod"/"production" selects
// the JSON production config; anything else gets the development console
// config. Persistence warnings and content-load fallbacks are the main
// consumers, so the default level stays at Warn unless verbose is set.
func New(mode string, verbose bool) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://realtoken.example/content/learning", cfg.ContentBaseURL)
	assert.Equal(t, "en", cfg.DefaultLanguage)
	assert.Equal(t, 0.04, cfg.ConversionRate)
	assert.Equal(t, "dev", cfg.LogMode)
	assert.Empty(t, cfg.DBPath)
	assert.False(t, cfg.Verbose)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("QUESTLINE_CONTENT_URL", "https://cdn.example/learning")
	t.Setenv("QUESTLINE_LANG", "fr")
	t.Setenv("QUESTLINE_CONVERSION_RATE", "0.1")
	t.Setenv("QUESTLINE_DB", "/tmp/questline.db")
	t.Setenv("QUESTLINE_LOG_MODE", "prod")
	t.Setenv("QUESTLINE_VERBOSE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example/learning", cfg.ContentBaseURL)
	assert.Equal(t, "fr", cfg.DefaultLanguage)
	assert.Equal(t, 0.1, cfg.ConversionRate)
	assert.Equal(t, "/tmp/questline.db", cfg.DBPath)
	assert.Equal(t, "prod", cfg.LogMode)
	assert.True(t, cfg.Verbose)
}

func TestLoad_BadRateFails(t *testing.T) {
	t.Setenv("QUESTLINE_CONVERSION_RATE", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("TOKEN_BOT", "123:abc")
	t.Setenv("RAWG_API_KEY", "rawg")
	t.Setenv("YOUTUBE_API_KEY", "yt")
	t.Setenv("TRANSLATE_API_KEY", "Api-Key tr")
}

func TestNewConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := NewConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.EnvLogsLevel)
	assert.Equal(t, "yandex", cfg.EnvTranslateProvider)
	assert.Equal(t, "https://api.rawg.io/api", cfg.EnvRawgApiEndpoint)
	assert.Equal(t, 3, cfg.EnvResultLimit)
	assert.Equal(t, 3, cfg.SearchPageSize())
	assert.Equal(t, 15*time.Second, cfg.EnvHTTPTimeout)
	assert.Equal(t, 24*time.Hour, cfg.EnvStateTTL)
	assert.Equal(t, 8, cfg.EnvMaxConcurrentUpdates)
	assert.Empty(t, cfg.EnvMetricsAddr)
}

func TestNewConfigFromFile(t *testing.T) {
	setRequiredEnv(t)
	path := filepath.Join(t.TempDir(), "bot.env")
	content := "RESULT_LIMIT=5\nSEARCH_PAGE_SIZE=20\nMETRICS_ADDR=:9090\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Cleanup(func() {
		for _, key := range []string{"RESULT_LIMIT", "SEARCH_PAGE_SIZE", "METRICS_ADDR"} {
			_ = os.Unsetenv(key)
		}
	})

	cfg, err := NewConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.EnvResultLimit)
	assert.Equal(t, 20, cfg.SearchPageSize())
	assert.Equal(t, ":9090", cfg.EnvMetricsAddr)
}

func TestNewConfigMissingKeys(t *testing.T) {
	t.Setenv("TOKEN_BOT", "")
	t.Setenv("RAWG_API_KEY", "")
	t.Setenv("YOUTUBE_API_KEY", "")
	t.Setenv("TRANSLATE_API_KEY", "")

	_, err := NewConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	for _, key := range []string{"TOKEN_BOT", "RAWG_API_KEY", "YOUTUBE_API_KEY", "TRANSLATE_API_KEY"} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		EnvBotToken:             "t",
		EnvRawgApiKey:           "r",
		EnvYoutubeApiKey:        "y",
		EnvTranslateApiKey:      "k",
		EnvTranslateProvider:    "yandex",
		EnvResultLimit:          3,
		EnvMaxConcurrentUpdates: 1,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantMsg string
	}{
		{"zero limit", func(c *Config) { c.EnvResultLimit = 0 }, "RESULT_LIMIT"},
		{"negative page size", func(c *Config) { c.EnvSearchPageSize = -1 }, "SEARCH_PAGE_SIZE"},
		{"no workers", func(c *Config) { c.EnvMaxConcurrentUpdates = 0 }, "MAX_CONCURRENT_UPDATES"},
		{"generative without model", func(c *Config) { c.EnvTranslateProvider = "gemini" }, "GENERATIVE_MODEL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

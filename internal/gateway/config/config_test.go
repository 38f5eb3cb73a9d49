package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "APP_ENV", "ALLOWED_ORIGINS", "LLM_PROVIDER", "LLM_MAX_RETRIES", "LLM_RETRY_BACKOFF",
		"OPENROUTER_API_KEY", "OPENROUTER_BASE_URL", "OPENROUTER_MODEL", "OPENROUTER_SITE", "OPENROUTER_TITLE",
		"GEMINI_API_KEY", "GEMINI_MODEL", "ARCHIVE_S3_ENDPOINT", "ARCHIVE_S3_USE_SSL", "ARCHIVE_S3_BUCKET",
		"ARCHIVE_S3_ACCESS_KEY", "ARCHIVE_S3_SECRET_KEY", "MINIO_ROOT_USER", "MINIO_ROOT_PASSWORD", "LEDGER_PG_DSN",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_RequiresOpenRouterKey(t *testing.T) {
	clearEnv(t)
	_, err := FromEnv(":8000")
	var ce *ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "OPENROUTER_API_KEY", ce.Key)
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "sk-test")

	cfg, err := FromEnv("8000")
	require.NoError(t, err)
	assert.Equal(t, ":8000", cfg.Port)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001", "http://127.0.0.1:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, ProviderOpenRouter, cfg.LLM.Provider)
	assert.Equal(t, 3, cfg.LLM.MaxRetries)
	assert.Equal(t, time.Second, cfg.LLM.Backoff)
	assert.Equal(t, "Virtual Infrastructure Lab", cfg.LLM.OpenRouterTitle)
	assert.Equal(t, "http://localhost:3000", cfg.LLM.OpenRouterSite)
	assert.False(t, cfg.Archive.Enabled)
	assert.Equal(t, "infralab-proposals", cfg.Archive.Bucket)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LLM_PROVIDER", "Fake")
	t.Setenv("LLM_MAX_RETRIES", "5")
	t.Setenv("LLM_RETRY_BACKOFF", "250ms")
	t.Setenv("ALLOWED_ORIGINS", " https://lab.example.com , ,http://localhost:5173")
	t.Setenv("ARCHIVE_S3_ENDPOINT", "minio:9000")
	t.Setenv("ARCHIVE_S3_USE_SSL", "false")
	t.Setenv("MINIO_ROOT_USER", "lab")

	cfg, err := FromEnv(":8000")
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, ProviderFake, cfg.LLM.Provider)
	assert.Equal(t, 5, cfg.LLM.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.LLM.Backoff)
	assert.Equal(t, []string{"https://lab.example.com", "http://localhost:5173"}, cfg.AllowedOrigins)
	assert.True(t, cfg.Archive.Enabled)
	assert.False(t, cfg.Archive.UseSSL)
	assert.Equal(t, "lab", cfg.Archive.AccessKey)
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"unknown provider": {"LLM_PROVIDER", "llama"},
		"bad retries":      {"LLM_MAX_RETRIES", "0"},
		"bad backoff":      {"LLM_RETRY_BACKOFF", "soon"},
		"gemini key":       {"LLM_PROVIDER", "gemini"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("OPENROUTER_API_KEY", "sk-test")
			t.Setenv(kv[0], kv[1])
			_, err := FromEnv(":8000")
			var ce *ConfigurationError
			assert.True(t, errors.As(err, &ce), "got %v", err)
		})
	}
}

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activitymagic/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.NotEmpty(t, cfg.CORS.AllowedOrigins)

	assert.Equal(t, "gpt-3.5-turbo", cfg.OpenAI.Fast.Model)
	assert.Equal(t, 500, cfg.OpenAI.Fast.MaxTokens)
	assert.Equal(t, 0.3, cfg.OpenAI.Fast.Temperature)
	assert.Equal(t, 10*time.Second, cfg.OpenAI.Fast.Timeout())

	assert.Equal(t, "gpt-3.5-turbo", cfg.OpenAI.Balanced.Model)
	assert.Equal(t, 800, cfg.OpenAI.Balanced.MaxTokens)
	assert.Equal(t, 15*time.Second, cfg.OpenAI.Balanced.Timeout())

	assert.Equal(t, "gpt-4", cfg.OpenAI.Quality.Model)
	assert.Equal(t, 1000, cfg.OpenAI.Quality.MaxTokens)
	assert.Equal(t, 30*time.Second, cfg.OpenAI.Quality.Timeout())

	assert.Equal(t, 10, cfg.Fetch.TimeoutSecs)
	assert.Equal(t, 2000, cfg.Fetch.MaxContentLen)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ACTIVITYMAGIC_OPENAI_API_KEY", "secret")
	t.Setenv("ACTIVITYMAGIC_OPENAI_FAST_MODEL", "gpt-4o-mini")
	t.Setenv("ACTIVITYMAGIC_DB_HOST", "db.internal")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Fast.Model)
	assert.Equal(t, "db.internal", cfg.DB.Host)
}

func TestLoad_PlatformPortFallback(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
}

func TestDBConfig_DSN(t *testing.T) {
	cfg := config.DBConfig{
		Host: "localhost", Port: 5432, User: "u", Password: "p", Name: "d", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://u:p@localhost:5432/d?sslmode=disable", cfg.DSN())
}

func TestProfileFor_TaskMapping(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, &cfg.OpenAI.Fast, cfg.OpenAI.ProfileFor("activity-from-text"))
	assert.Equal(t, &cfg.OpenAI.Fast, cfg.OpenAI.ProfileFor("recipe-analysis-from-url"))
	assert.Equal(t, &cfg.OpenAI.Balanced, cfg.OpenAI.ProfileFor("meal-suggestions-for-category"))
	assert.Equal(t, &cfg.OpenAI.Quality, cfg.OpenAI.ProfileFor("ingredients-for-meal"))
	assert.Equal(t, &cfg.OpenAI.Quality, cfg.OpenAI.ProfileFor("inventory-items-from-text"))
	assert.Equal(t, &cfg.OpenAI.Quality, cfg.OpenAI.ProfileFor("meals-from-inventory"))
}

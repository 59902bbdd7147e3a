// nolint: funlen
package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mflix/pkg/config"
)

func TestLoadConfig(t *testing.T) {
	t.Run("loads config from environment variables", func(t *testing.T) {
		envVars := map[string]string{
			"APP_ENV":            "test",
			"PORT":               "8080",
			"SENTRY_DSN":         "https://test@sentry.io/123",
			"ALLOW_ORIGINS":      "*",
			"MONGO_URI":          "mongodb://mongo:27017",
			"MONGO_DATABASE":     "mflix_test",
			"MONGO_SEARCH_INDEX": "plotIndex",
			"MONGO_TIMEOUT":      "3",
			"AUTH_JWT_SECRET":    "secret",
		}
		for key, value := range envVars {
			t.Setenv(key, value)
		}

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "https://test@sentry.io/123", cfg.SentryDSN)
		assert.Equal(t, "*", cfg.AllowOrigins)
		assert.Equal(t, "mongodb://mongo:27017", cfg.Mongo.URI)
		assert.Equal(t, "mflix_test", cfg.Mongo.Database)
		assert.Equal(t, "plotIndex", cfg.Mongo.SearchIndex)
		assert.Equal(t, 3*time.Second, cfg.MongoTimeout())
		assert.Equal(t, "secret", cfg.Auth.JWTSecret)
	})

	t.Run("applies defaults", func(t *testing.T) {
		for _, key := range []string{"PORT", "MONGO_URI", "MONGO_DATABASE", "MONGO_SEARCH_INDEX", "MONGO_TIMEOUT"} {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 3001, cfg.Port)
		assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
		assert.Equal(t, "sample_mflix", cfg.Mongo.Database)
		assert.Equal(t, "movieSearchIndex", cfg.Mongo.SearchIndex)
		assert.Equal(t, 10*time.Second, cfg.MongoTimeout())
	})

	t.Run("handles invalid port number", func(t *testing.T) {
		t.Setenv("PORT", "invalid")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("handles invalid mongo timeout", func(t *testing.T) {
		t.Setenv("MONGO_TIMEOUT", "soon")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})
}

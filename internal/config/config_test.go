package config_test

import (
	"testing"
	"time"

	"github.com/progressly/progressly-api/internal/config"
	"github.com/stretchr/testify/require"
)

type environment string

const (
	production  environment = "production"
	staging     environment = "staging"
	development environment = "development"
)

var requiredOutsideDevelopment = []string{"DB_CONNECTION_STRING", "SENTRY_DSN"}

func TestGetConfig(t *testing.T) {
	requireEnvironment := func(t *testing.T, env environment, conf config.Config) {
		t.Helper()
		require.Equal(t, env == production, conf.IsProduction())
		require.Equal(t, env == staging, conf.IsStaging())
		require.Equal(t, env == development, conf.IsDevelopment())
	}

	t.Run("environment is missing", func(t *testing.T) {
		// PROGRESSLY_ENVIRONMENT is required, so this should fail
		_, err := config.ConfigFromEnv()
		require.ErrorIs(t, err, config.ErrMissingRequiredValue)
	})

	t.Run("invalid environment", func(t *testing.T) {
		t.Setenv("PROGRESSLY_ENVIRONMENT", "prod")

		_, err := config.ConfigFromEnv()
		require.ErrorIs(t, err, config.ErrInvalidValue)
	})

	t.Run("development defaults", func(t *testing.T) {
		t.Setenv("PROGRESSLY_ENVIRONMENT", "development")

		conf, err := config.ConfigFromEnv()
		require.NoError(t, err)
		requireEnvironment(t, development, conf)
		require.Equal(t, "8080", conf.Port())
		require.Equal(t, config.LOCAL_CONNECTION_STRING, conf.DBConnectionString())
		require.Equal(t, "", conf.SentryDSN())
		require.False(t, conf.OTelEnabled())
		require.Empty(t, conf.AllowedOriginSuffixes())
		require.Equal(t, 10*time.Minute, conf.SleepCategoryCacheTTL())
	})

	t.Run("values are read correctly", func(t *testing.T) {
		t.Setenv("PORT", "9000")
		t.Setenv("DB_CONNECTION_STRING", "host=db")
		t.Setenv("SENTRY_DSN", "https://sentry.example")
		t.Setenv("OTEL_ENABLED", "true")
		t.Setenv("ALLOWED_ORIGIN_SUFFIXES", "progressly.app, staging.progressly.app,")
		t.Setenv("SLEEP_CATEGORY_CACHE_TTL", "1m30s")

		for _, env := range []environment{production, staging, development} {
			t.Run(string(env), func(t *testing.T) {
				t.Setenv("PROGRESSLY_ENVIRONMENT", string(env))

				conf, err := config.ConfigFromEnv()
				require.NoError(t, err)
				requireEnvironment(t, env, conf)
				require.Equal(t, "9000", conf.Port())
				require.Equal(t, "host=db", conf.DBConnectionString())
				require.Equal(t, "https://sentry.example", conf.SentryDSN())
				require.True(t, conf.OTelEnabled())
				require.Equal(t, []string{"progressly.app", "staging.progressly.app"}, conf.AllowedOriginSuffixes())
				require.Equal(t, 90*time.Second, conf.SleepCategoryCacheTTL())
			})
		}
	})

	t.Run("invalid duration", func(t *testing.T) {
		t.Setenv("PROGRESSLY_ENVIRONMENT", "development")
		t.Setenv("SLEEP_CATEGORY_CACHE_TTL", "soon")

		_, err := config.ConfigFromEnv()
		require.ErrorIs(t, err, config.ErrInvalidValue)
	})

	t.Run("production and staging fail when missing variables", func(t *testing.T) {
		for _, variable := range requiredOutsideDevelopment {
			t.Setenv(variable, "placeholder_value")
		}

		for _, env := range []environment{production, staging} {
			t.Run(string(env), func(t *testing.T) {
				t.Setenv("PROGRESSLY_ENVIRONMENT", string(env))

				for _, variable := range requiredOutsideDevelopment {
					t.Run(variable, func(t *testing.T) {
						t.Setenv(variable, "")

						_, err := config.ConfigFromEnv()
						require.ErrorIs(t, err, config.ErrMissingRequiredValue)
					})
				}
			})
		}
	})

	t.Run("NonSensitiveString does not leak secrets", func(t *testing.T) {
		t.Setenv("PROGRESSLY_ENVIRONMENT", "production")
		t.Setenv("DB_CONNECTION_STRING", "password=hunter2")
		t.Setenv("SENTRY_DSN", "https://secret@sentry.example")

		conf, err := config.ConfigFromEnv()
		require.NoError(t, err)
		require.NotContains(t, conf.NonSensitiveString(), "hunter2")
		require.NotContains(t, conf.NonSensitiveString(), "secret")
	})
}

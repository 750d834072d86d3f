package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

var ErrMissingRequiredValue = errors.New("missing required value")
var ErrInvalidValue = errors.New("invalid value")

type environment string

const (
	production  environment = "production"
	staging     environment = "staging"
	development environment = "development"
)

const LOCAL_CONNECTION_STRING = "user=postgres password=postgres dbname=progressly sslmode=disable"

type rawConfig struct {
	Environment           string        `env:"PROGRESSLY_ENVIRONMENT"`
	Port                  string        `env:"PORT"                     env-default:"8080"`
	DBConnectionString    string        `env:"DB_CONNECTION_STRING"`
	SentryDSN             string        `env:"SENTRY_DSN"`
	OTelEnabled           bool          `env:"OTEL_ENABLED"             env-default:"false"`
	AllowedOriginSuffixes []string      `env:"ALLOWED_ORIGIN_SUFFIXES"  env-separator:","`
	SleepCategoryCacheTTL time.Duration `env:"SLEEP_CATEGORY_CACHE_TTL" env-default:"10m"`
}

type Config struct {
	port                  string
	dbConnectionString    string
	sentryDSN             string
	otelEnabled           bool
	allowedOriginSuffixes []string
	sleepCategoryCacheTTL time.Duration
	env                   environment
}

func (c *Config) Port() string {
	return c.port
}

func (c *Config) DBConnectionString() string {
	return c.dbConnectionString
}

func (c *Config) SentryDSN() string {
	return c.sentryDSN
}

func (c *Config) OTelEnabled() bool {
	return c.otelEnabled
}

func (c *Config) AllowedOriginSuffixes() []string {
	return c.allowedOriginSuffixes
}

func (c *Config) SleepCategoryCacheTTL() time.Duration {
	return c.sleepCategoryCacheTTL
}

func (c *Config) Environment() string {
	return string(c.env)
}

func (c *Config) IsProduction() bool {
	return c.env == production
}

func (c *Config) IsStaging() bool {
	return c.env == staging
}

func (c *Config) IsDevelopment() bool {
	return c.env == development
}

// Return a string representation suitable for logging etc
func (c *Config) NonSensitiveString() string {
	return fmt.Sprintf(
		"Config{env: %s, port: %s, otelEnabled: %t, allowedOriginSuffixes: %v, sleepCategoryCacheTTL: %s, ...}",
		string(c.env), c.port, c.otelEnabled, c.allowedOriginSuffixes, c.sleepCategoryCacheTTL,
	)
}

func ConfigFromEnv() (Config, error) {
	missingKey := func(key string) (Config, error) {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingRequiredValue, key)
	}

	if _, ok := os.LookupEnv("PROGRESSLY_ENVIRONMENT"); !ok {
		return missingKey("PROGRESSLY_ENVIRONMENT")
	}

	var raw rawConfig
	if err := cleanenv.ReadEnv(&raw); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}

	var env environment
	switch raw.Environment {
	case "production":
		env = production
	case "staging":
		env = staging
	case "development":
		env = development
	default:
		return Config{}, fmt.Errorf("%w: PROGRESSLY_ENVIRONMENT (%s)", ErrInvalidValue, raw.Environment)
	}
	if string(env) == "" {
		panic("logic error: env is empty")
	}

	if raw.SleepCategoryCacheTTL < 0 {
		return Config{}, fmt.Errorf("%w: SLEEP_CATEGORY_CACHE_TTL (%s)", ErrInvalidValue, raw.SleepCategoryCacheTTL)
	}

	allowedOriginSuffixes := make([]string, 0, len(raw.AllowedOriginSuffixes))
	for _, suffix := range raw.AllowedOriginSuffixes {
		suffix = strings.TrimSpace(suffix)
		if suffix != "" {
			allowedOriginSuffixes = append(allowedOriginSuffixes, suffix)
		}
	}

	dbConnectionString := raw.DBConnectionString

	if env == production || env == staging {
		if dbConnectionString == "" {
			return missingKey("DB_CONNECTION_STRING")
		}
		if raw.SentryDSN == "" {
			return missingKey("SENTRY_DSN")
		}
	} else if dbConnectionString == "" {
		dbConnectionString = LOCAL_CONNECTION_STRING
	}

	return Config{
		port:                  raw.Port,
		dbConnectionString:    dbConnectionString,
		sentryDSN:             raw.SentryDSN,
		otelEnabled:           raw.OTelEnabled,
		allowedOriginSuffixes: allowedOriginSuffixes,
		sleepCategoryCacheTTL: raw.SleepCategoryCacheTTL,
		env:                   env,
	}, nil
}

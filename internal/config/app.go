// Package config loads the API server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"foodgram/internal/infra/shortlink"
	envconfig "foodgram/internal/pkg/config"
)

// minJWTSecretLength is the shortest accepted HS256 signing key.
const minJWTSecretLength = 32

// AppConfig holds configuration for the API server.
type AppConfig struct {
	// HTTPAddr is the listen address. Default: ":8080"
	HTTPAddr string

	// Version is reported by /health and attached to traces.
	Version string

	// PublicBaseURL prefixes short links, e.g. "https://foodgram.example".
	// Default: "http://localhost:8080"
	PublicBaseURL string

	// ShutdownTimeout bounds graceful shutdown. Default: 10s
	ShutdownTimeout time.Duration

	Auth      AuthConfig
	Redis     RedisConfig
	ShortLink ShortLinkConfig
	Tracing   TracingConfig
}

// AuthConfig holds token issuing and login throttling settings.
type AuthConfig struct {
	// JWTSecret signs auth tokens. Required, at least 32 characters.
	JWTSecret string
	// TokenTTL is the lifetime of an issued token. Default: 24h
	TokenTTL time.Duration
	// RateLimitRPS is the sustained login/logout rate per client IP. Default: 1
	RateLimitRPS int
	// RateLimitBurst is the token bucket size. Default: 5
	RateLimitBurst int
}

// RedisConfig configures the token revocation store.
type RedisConfig struct {
	// URL such as "redis://localhost:6379/0". Empty selects the in-memory store.
	URL string
}

// ShortLinkConfig configures recipe short codes.
type ShortLinkConfig struct {
	Alphabet  string
	MinLength int
}

// TracingConfig configures OpenTelemetry sampling.
type TracingConfig struct {
	// SamplePercent is the share of root spans recorded. Default: 100
	SamplePercent int
}

// LoadAppConfig loads configuration from environment variables and validates it.
func LoadAppConfig() (*AppConfig, error) {
	cfg := &AppConfig{
		HTTPAddr:        envconfig.GetEnvString("HTTP_ADDR", ":8080"),
		Version:         envconfig.GetEnvString("VERSION", "dev"),
		PublicBaseURL:   envconfig.GetEnvString("PUBLIC_BASE_URL", "http://localhost:8080"),
		ShutdownTimeout: envconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		Auth: AuthConfig{
			JWTSecret:      envconfig.GetEnvString("JWT_SECRET", ""),
			TokenTTL:       envconfig.GetEnvDuration("JWT_TTL", 24*time.Hour),
			RateLimitRPS:   envconfig.GetEnvInt("AUTH_RATE_LIMIT_RPS", 1),
			RateLimitBurst: envconfig.GetEnvInt("AUTH_RATE_LIMIT_BURST", 5),
		},
		Redis: RedisConfig{
			URL: envconfig.GetEnvString("REDIS_URL", ""),
		},
		ShortLink: ShortLinkConfig{
			Alphabet:  envconfig.GetEnvString("SHORTLINK_ALPHABET", shortlink.DefaultAlphabet),
			MinLength: envconfig.GetEnvInt("SHORTLINK_MIN_LENGTH", shortlink.DefaultMinLength),
		},
		Tracing: TracingConfig{
			SamplePercent: envconfig.GetEnvInt("TRACING_SAMPLE_PERCENT", 100),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration correctness.
func (c *AppConfig) Validate() error {
	if c.HTTPAddr == "" {
		return errors.New("HTTP_ADDR cannot be empty")
	}

	if len(c.Auth.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength)
	}

	if err := envconfig.ValidatePositiveDuration(c.Auth.TokenTTL); err != nil {
		return fmt.Errorf("JWT_TTL: %w", err)
	}

	if c.Auth.RateLimitRPS <= 0 {
		return errors.New("AUTH_RATE_LIMIT_RPS must be positive")
	}

	if c.Auth.RateLimitBurst <= 0 {
		return errors.New("AUTH_RATE_LIMIT_BURST must be positive")
	}

	if c.Redis.URL != "" {
		if _, err := url.Parse(c.Redis.URL); err != nil {
			return fmt.Errorf("REDIS_URL is not a valid URL: %w", err)
		}
	}

	u, err := url.Parse(c.PublicBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("PUBLIC_BASE_URL must be an absolute URL")
	}

	if c.ShortLink.MinLength < 0 || c.ShortLink.MinLength > 255 {
		return errors.New("SHORTLINK_MIN_LENGTH must be between 0 and 255")
	}

	if c.Tracing.SamplePercent < 0 || c.Tracing.SamplePercent > 100 {
		return errors.New("TRACING_SAMPLE_PERCENT must be between 0 and 100")
	}

	if err := envconfig.ValidatePositiveDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}

	return nil
}

// SampleRatio returns the tracing sample ratio in [0, 1].
func (c *AppConfig) SampleRatio() float64 {
	return float64(c.Tracing.SamplePercent) / 100
}

package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the report service.
// Environment variables are parsed from the REPORTSVC_ prefix,
// e.g. REPORTSVC_HTTP_PORT, REPORTSVC_GEMINI_API_KEY.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Store driver selects the record-store backend: supabase | postgres
	StoreDriver string `envconfig:"STORE_DRIVER" default:"supabase"`

	// Supabase (PostgREST) store configuration. The service key is the
	// elevated server-side credential; it never reaches clients.
	SupabaseURL        string `envconfig:"SUPABASE_URL" default:""`
	SupabaseServiceKey string `envconfig:"SUPABASE_SERVICE_KEY" default:""`

	// Postgres store configuration
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Generation provider configuration
	GeminiAPIKey  string `envconfig:"GEMINI_API_KEY" default:""`
	GeminiModel   string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash-lite"`
	GeminiBaseURL string `envconfig:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com"`

	// HS256 secret used to verify caller access tokens
	AuthJWTSecret string `envconfig:"AUTH_JWT_SECRET" default:""`
}

// New creates a new Config by parsing environment variables.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("REPORTSVC", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Int("http_port", cfg.HTTPPort).
		Str("store_driver", cfg.StoreDriver).
		Str("gemini_model", cfg.GeminiModel).
		Bool("gemini_key_present", cfg.GeminiAPIKey != "").
		Bool("jwt_secret_present", cfg.AuthJWTSecret != "").
		Msg("Configuration loaded")

	return &cfg, nil
}

// Validate checks that every secret required by the active store driver and
// the generation provider is present. Run once at startup so that a missing
// secret aborts boot instead of surfacing as per-request failures.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case "supabase":
		if c.SupabaseURL == "" {
			return fmt.Errorf("missing required REPORTSVC_SUPABASE_URL")
		}
		if c.SupabaseServiceKey == "" {
			return fmt.Errorf("missing required REPORTSVC_SUPABASE_SERVICE_KEY")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("missing required REPORTSVC_POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER: %s", c.StoreDriver)
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("missing required REPORTSVC_GEMINI_API_KEY")
	}
	if c.AuthJWTSecret == "" {
		return fmt.Errorf("missing required REPORTSVC_AUTH_JWT_SECRET")
	}
	return nil
}

// NewForTesting creates a config suitable for unit tests.
func NewForTesting() *Config {
	return &Config{
		Environment:   EnvTesting,
		HTTPPort:      8080,
		StoreDriver:   "supabase",
		SupabaseURL:   "http://localhost:54321",
		GeminiModel:   "gemini-2.5-flash-lite",
		GeminiBaseURL: "http://localhost:11111",
		AuthJWTSecret: "test-secret",
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool { return c.Environment == EnvTesting }

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool { return c.Environment == EnvProduction }

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string { return fmt.Sprintf(":%d", c.HTTPPort) }

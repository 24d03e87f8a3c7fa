package config

import (
	"os"
	"testing"
)

func TestConfigLoad_Defaults(t *testing.T) {
	_ = os.Unsetenv("REPORTSVC_HTTP_PORT")
	_ = os.Unsetenv("REPORTSVC_STORE_DRIVER")
	_ = os.Unsetenv("REPORTSVC_GEMINI_MODEL")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.HTTPPort != 8080 || cfg.StoreDriver != "supabase" || cfg.GeminiModel != "gemini-2.5-flash-lite" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.GeminiBaseURL != "https://generativelanguage.googleapis.com" {
		t.Fatalf("unexpected gemini base url: %s", cfg.GeminiBaseURL)
	}
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	_ = os.Setenv("REPORTSVC_GEMINI_MODEL", "test-model")
	defer func() { _ = os.Unsetenv("REPORTSVC_GEMINI_MODEL") }()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.GeminiModel != "test-model" {
		t.Fatalf("gemini model env override failed, got %s", cfg.GeminiModel)
	}
}

func TestValidate_MissingSecrets(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(*Config)
		wants string
	}{
		{"no supabase url", func(c *Config) { c.SupabaseURL = "" }, "SUPABASE_URL"},
		{"no service key", func(c *Config) { c.SupabaseServiceKey = "" }, "SUPABASE_SERVICE_KEY"},
		{"no gemini key", func(c *Config) { c.GeminiAPIKey = "" }, "GEMINI_API_KEY"},
		{"no jwt secret", func(c *Config) { c.AuthJWTSecret = "" }, "AUTH_JWT_SECRET"},
		{"bad driver", func(c *Config) { c.StoreDriver = "dynamo" }, "STORE_DRIVER"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validTestConfig()
			tc.mut(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestValidate_PostgresDriver(t *testing.T) {
	cfg := validTestConfig()
	cfg.StoreDriver = "postgres"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error without DSN")
	}
	cfg.PostgresDSN = "postgres://localhost/rescuelink"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func validTestConfig() *Config {
	cfg := NewForTesting()
	cfg.SupabaseServiceKey = "service-key"
	cfg.GeminiAPIKey = "gemini-key"
	return cfg
}

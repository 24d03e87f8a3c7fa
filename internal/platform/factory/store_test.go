package factory

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/rescuelink/rescuelink-backend/internal/config"
)

func TestNewStore_Supabase(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.SupabaseServiceKey = "service-key"

	st, err := NewStore(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st == nil {
		t.Fatalf("expected store instance")
	}
}

func TestNewStore_PostgresEmptyDSN(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.StoreDriver = "postgres"
	cfg.PostgresDSN = ""

	if _, err := NewStore(cfg, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for empty DSN")
	}
}

func TestNewStore_UnknownDriver(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.StoreDriver = "mongodb"

	if _, err := NewStore(cfg, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

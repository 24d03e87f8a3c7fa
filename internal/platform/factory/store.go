// Package factory wires configuration to concrete store drivers.
package factory

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rescuelink/rescuelink-backend/internal/config"
	"github.com/rescuelink/rescuelink-backend/internal/store"
	"github.com/rescuelink/rescuelink-backend/internal/store/postgres"
	"github.com/rescuelink/rescuelink-backend/internal/store/supabase"
)

// NewStore selects the record-store adapter based on cfg.StoreDriver.
func NewStore(cfg *config.Config, log zerolog.Logger) (store.Store, error) {
	switch cfg.StoreDriver {
	case "supabase":
		log.Info().Str("url", cfg.SupabaseURL).Msg("using supabase store")
		return supabase.New(cfg.SupabaseURL, cfg.SupabaseServiceKey), nil
	case "postgres":
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		log.Info().Msg("using postgres store")
		return postgres.NewWithDB(db), nil
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER: %s", cfg.StoreDriver)
	}
}

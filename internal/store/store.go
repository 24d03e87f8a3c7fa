package store

import (
	"context"

	"github.com/rescuelink/rescuelink-backend/internal/model"
)

// Store exposes the record-store operations required by the report pipeline.
// All access runs with elevated server-side credentials; callers' own tokens
// are never used for data access. Implementations live under
// internal/store/<driver>/ (supabase, postgres).
type Store interface {
	Emergencies() Emergencies
	Profiles() Profiles

	// Ping verifies store connectivity for health checks.
	Ping(ctx context.Context) error
}

type Emergencies interface {
	// GetByID fetches exactly one emergency record.
	// Returns model.ErrNotFound when no record matches.
	GetByID(ctx context.Context, id int64) (*model.Emergency, error)

	// SetReportIfEmpty writes the generated report text into the record,
	// but only while the report slot is still blank. Returns false when a
	// concurrent writer already populated it.
	SetReportIfEmpty(ctx context.Context, id int64, text string) (bool, error)
}

type Profiles interface {
	// GetByID fetches the profile keyed by the caller's subject id.
	// An absent profile is not an error: returns (nil, nil).
	GetByID(ctx context.Context, userID string) (*model.Profile, error)
}

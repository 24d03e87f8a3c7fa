package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/rescuelink/rescuelink-backend/internal/model"
	"github.com/rescuelink/rescuelink-backend/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a native Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Emergencies() store.Emergencies { return &emergencies{db: s.db} }
func (s *pgStore) Profiles() store.Profiles       { return &profiles{db: s.db} }

func (s *pgStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// --- Emergencies ---

type emergencies struct{ db *sql.DB }

func (e *emergencies) GetByID(ctx context.Context, id int64) (*model.Emergency, error) {
	var out model.Emergency
	row := e.db.QueryRowContext(ctx, `
        SELECT id, user_id, type, status, phone, notes,
               location_lat, location_lng, location_details,
               photo_url, voice_note_url, voice_note_duration_sec,
               share_location, notify_contacts,
               report_by_ai, created_at
        FROM emergencies WHERE id=$1
    `, id)
	if err := row.Scan(
		&out.ID, &out.UserID, &out.Type, &out.Status, &out.Phone, &out.Notes,
		&out.LocationLat, &out.LocationLng, &out.LocationDetails,
		&out.PhotoURL, &out.VoiceNoteURL, &out.VoiceNoteDurationSec,
		&out.ShareLocation, &out.NotifyContacts,
		&out.ReportText, &out.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (e *emergencies) SetReportIfEmpty(ctx context.Context, id int64, text string) (bool, error) {
	res, err := e.db.ExecContext(ctx, `
        UPDATE emergencies SET report_by_ai=$2
        WHERE id=$1 AND (report_by_ai IS NULL OR btrim(report_by_ai)='')
    `, id, text)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// --- Profiles ---

type profiles struct{ db *sql.DB }

func (p *profiles) GetByID(ctx context.Context, userID string) (*model.Profile, error) {
	var out model.Profile
	row := p.db.QueryRowContext(ctx, `
        SELECT full_name, phone, email,
               blood_type, allergies, chronic_conditions, medications, disabilities,
               preferred_hospital, other_notes, age, gender
        FROM profiles WHERE id=$1
    `, userID)
	if err := row.Scan(
		&out.FullName, &out.Phone, &out.Email,
		&out.BloodType, &out.Allergies, &out.ChronicConditions, &out.Medications, &out.Disabilities,
		&out.PreferredHospital, &out.OtherNotes, &out.Age, &out.Gender,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

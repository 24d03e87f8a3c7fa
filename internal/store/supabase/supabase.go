package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rescuelink/rescuelink-backend/internal/model"
	"github.com/rescuelink/rescuelink-backend/internal/store"
)

const emergencySelect = "id,user_id,type,status,phone,notes," +
	"location_lat,location_lng,location_details," +
	"photo_url,voice_note_url,voice_note_duration_sec," +
	"share_location,notify_contacts,report_by_ai,created_at"

const profileSelect = "full_name,phone,email," +
	"blood_type,allergies,chronic_conditions,medications,disabilities," +
	"preferred_hospital,other_notes,age,gender"

// New constructs a store backed by the Supabase PostgREST API. The service
// role key grants elevated access that bypasses row-level security, so this
// client must only ever run server-side.
func New(baseURL, serviceKey string) store.Store {
	c := resty.New().
		SetBaseURL(baseURL+"/rest/v1").
		SetHeader("apikey", serviceKey).
		SetHeader("Authorization", "Bearer "+serviceKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)
	return &sbStore{client: c}
}

type sbStore struct{ client *resty.Client }

func (s *sbStore) Emergencies() store.Emergencies { return &emergencies{client: s.client} }
func (s *sbStore) Profiles() store.Profiles       { return &profiles{client: s.client} }

func (s *sbStore) Ping(ctx context.Context) error {
	resp, err := s.client.R().SetContext(ctx).Get("/")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("supabase ping status %d", resp.StatusCode())
	}
	return nil
}

// emergencyRow mirrors the emergencies table columns as PostgREST returns them.
type emergencyRow struct {
	ID                   int64     `json:"id"`
	UserID               string    `json:"user_id"`
	Type                 string    `json:"type"`
	Status               string    `json:"status"`
	Phone                *string   `json:"phone"`
	Notes                *string   `json:"notes"`
	LocationLat          *float64  `json:"location_lat"`
	LocationLng          *float64  `json:"location_lng"`
	LocationDetails      *string   `json:"location_details"`
	PhotoURL             *string   `json:"photo_url"`
	VoiceNoteURL         *string   `json:"voice_note_url"`
	VoiceNoteDurationSec *int      `json:"voice_note_duration_sec"`
	ShareLocation        bool      `json:"share_location"`
	NotifyContacts       bool      `json:"notify_contacts"`
	ReportByAI           *string   `json:"report_by_ai"`
	CreatedAt            time.Time `json:"created_at"`
}

func (r *emergencyRow) toModel() *model.Emergency {
	return &model.Emergency{
		ID:                   r.ID,
		UserID:               r.UserID,
		Type:                 r.Type,
		Status:               r.Status,
		Phone:                r.Phone,
		Notes:                r.Notes,
		LocationLat:          r.LocationLat,
		LocationLng:          r.LocationLng,
		LocationDetails:      r.LocationDetails,
		PhotoURL:             r.PhotoURL,
		VoiceNoteURL:         r.VoiceNoteURL,
		VoiceNoteDurationSec: r.VoiceNoteDurationSec,
		ShareLocation:        r.ShareLocation,
		NotifyContacts:       r.NotifyContacts,
		ReportText:           r.ReportByAI,
		CreatedAt:            r.CreatedAt,
	}
}

type emergencies struct{ client *resty.Client }

func (e *emergencies) GetByID(ctx context.Context, id int64) (*model.Emergency, error) {
	resp, err := e.client.R().
		SetContext(ctx).
		SetQueryParam("id", fmt.Sprintf("eq.%d", id)).
		SetQueryParam("select", emergencySelect).
		Get("/emergencies")
	if err != nil {
		return nil, fmt.Errorf("emergencies fetch: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("emergencies fetch status %d: %s", resp.StatusCode(), resp.String())
	}

	var rows []emergencyRow
	if err := json.Unmarshal(resp.Body(), &rows); err != nil {
		return nil, fmt.Errorf("emergencies decode: %w", err)
	}
	if len(rows) == 0 {
		return nil, model.ErrNotFound
	}
	return rows[0].toModel(), nil
}

func (e *emergencies) SetReportIfEmpty(ctx context.Context, id int64, text string) (bool, error) {
	// The or filter restricts the PATCH to rows whose report slot is still
	// blank; return=representation tells us whether the write landed.
	resp, err := e.client.R().
		SetContext(ctx).
		SetQueryParam("id", fmt.Sprintf("eq.%d", id)).
		SetQueryParam("or", "(report_by_ai.is.null,report_by_ai.eq.)").
		SetHeader("Prefer", "return=representation").
		SetBody(map[string]string{"report_by_ai": text}).
		Patch("/emergencies")
	if err != nil {
		return false, fmt.Errorf("report update: %w", err)
	}
	if resp.IsError() {
		return false, fmt.Errorf("report update status %d: %s", resp.StatusCode(), resp.String())
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(resp.Body(), &rows); err != nil {
		return false, fmt.Errorf("report update decode: %w", err)
	}
	return len(rows) > 0, nil
}

// profileRow mirrors the profiles table columns as PostgREST returns them.
type profileRow struct {
	FullName          *string `json:"full_name"`
	Phone             *string `json:"phone"`
	Email             *string `json:"email"`
	BloodType         *string `json:"blood_type"`
	Allergies         *string `json:"allergies"`
	ChronicConditions *string `json:"chronic_conditions"`
	Medications       *string `json:"medications"`
	Disabilities      *string `json:"disabilities"`
	PreferredHospital *string `json:"preferred_hospital"`
	OtherNotes        *string `json:"other_notes"`
	Age               *int    `json:"age"`
	Gender            *string `json:"gender"`
}

type profiles struct{ client *resty.Client }

func (p *profiles) GetByID(ctx context.Context, userID string) (*model.Profile, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("id", "eq."+userID).
		SetQueryParam("select", profileSelect).
		Get("/profiles")
	if err != nil {
		return nil, fmt.Errorf("profile fetch: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("profile fetch status %d: %s", resp.StatusCode(), resp.String())
	}

	var rows []profileRow
	if err := json.Unmarshal(resp.Body(), &rows); err != nil {
		return nil, fmt.Errorf("profile decode: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	r := rows[0]
	return &model.Profile{
		FullName:          r.FullName,
		Phone:             r.Phone,
		Email:             r.Email,
		BloodType:         r.BloodType,
		Allergies:         r.Allergies,
		ChronicConditions: r.ChronicConditions,
		Medications:       r.Medications,
		Disabilities:      r.Disabilities,
		PreferredHospital: r.PreferredHospital,
		OtherNotes:        r.OtherNotes,
		Age:               r.Age,
		Gender:            r.Gender,
	}, nil
}

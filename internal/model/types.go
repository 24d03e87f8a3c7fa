package model

import (
	"strings"
	"time"
)

// Emergency is an incident record created by the mobile app. This service
// only ever mutates ReportText; everything else is owned by other components.
type Emergency struct {
	ID                   int64     `json:"id"`
	UserID               string    `json:"userId"`
	Type                 string    `json:"type"`
	Status               string    `json:"status"`
	Phone                *string   `json:"phone,omitempty"`
	Notes                *string   `json:"notes,omitempty"`
	LocationLat          *float64  `json:"locationLat,omitempty"`
	LocationLng          *float64  `json:"locationLng,omitempty"`
	LocationDetails      *string   `json:"locationDetails,omitempty"`
	PhotoURL             *string   `json:"photoUrl,omitempty"`
	VoiceNoteURL         *string   `json:"voiceNoteUrl,omitempty"`
	VoiceNoteDurationSec *int      `json:"voiceNoteDurationSec,omitempty"`
	ShareLocation        bool      `json:"shareLocation"`
	NotifyContacts       bool      `json:"notifyContacts"`
	ReportText           *string   `json:"reportText,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
}

// HasReport reports whether a non-blank generated report is already stored.
func (e *Emergency) HasReport() bool {
	return e.ReportText != nil && strings.TrimSpace(*e.ReportText) != ""
}

// Profile holds supplementary identity and medical metadata keyed by the
// caller's subject id. Every field is optional; the whole record may be absent.
type Profile struct {
	FullName          *string `json:"fullName,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	Email             *string `json:"email,omitempty"`
	BloodType         *string `json:"bloodType,omitempty"`
	Allergies         *string `json:"allergies,omitempty"`
	ChronicConditions *string `json:"chronicConditions,omitempty"`
	Medications       *string `json:"medications,omitempty"`
	Disabilities      *string `json:"disabilities,omitempty"`
	PreferredHospital *string `json:"preferredHospital,omitempty"`
	OtherNotes        *string `json:"otherNotes,omitempty"`
	Age               *int    `json:"age,omitempty"`
	Gender            *string `json:"gender,omitempty"`
}

// ReportResult is the outcome of a generate call. Cached is true when the
// text was read back from the record instead of freshly generated.
type ReportResult struct {
	Text   string `json:"reportText"`
	Cached bool   `json:"cached"`
}

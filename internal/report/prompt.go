// Package report renders emergency and profile records into the instruction
// block sent to the generation provider.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rescuelink/rescuelink-backend/internal/model"
)

// BuildPrompt renders the prompt for the generation provider. It is pure and
// byte-for-byte reproducible for identical inputs: every missing field renders
// as an explicit placeholder so the model always sees the same shape.
func BuildPrompt(em *model.Emergency, p *model.Profile) string {
	var b strings.Builder

	b.WriteString("You are an emergency incident report generator. Turn the database record into a clear professional report.\n")
	b.WriteString("\n")
	b.WriteString("EMERGENCY:\n")
	fmt.Fprintf(&b, "- ID: %d\n", em.ID)
	fmt.Fprintf(&b, "- Type: %s\n", em.Type)
	fmt.Fprintf(&b, "- Status: %s\n", em.Status)
	fmt.Fprintf(&b, "- Phone: %s\n", strOr(em.Phone, "N/A"))
	fmt.Fprintf(&b, "- Notes: %s\n", strOr(em.Notes, "N/A"))
	fmt.Fprintf(&b, "- Location: lat=%s, lng=%s\n", floatOr(em.LocationLat, "N/A"), floatOr(em.LocationLng, "N/A"))
	fmt.Fprintf(&b, "- Location details: %s\n", strOr(em.LocationDetails, "N/A"))
	fmt.Fprintf(&b, "- Photo URL: %s\n", strOr(em.PhotoURL, "None"))
	fmt.Fprintf(&b, "- Voice URL: %s\n", strOr(em.VoiceNoteURL, "None"))
	fmt.Fprintf(&b, "- Voice duration sec: %s\n", intOr(em.VoiceNoteDurationSec, "N/A"))
	fmt.Fprintf(&b, "- share_location: %t\n", em.ShareLocation)
	fmt.Fprintf(&b, "- notify_contacts: %t\n", em.NotifyContacts)
	fmt.Fprintf(&b, "- created_at: %s\n", em.CreatedAt.UTC().Format(time.RFC3339))
	b.WriteString("\n")
	b.WriteString("USER PROFILE:\n")
	fmt.Fprintf(&b, "- Name: %s\n", profileStr(p, func(p *model.Profile) *string { return p.FullName }, "Unknown"))
	fmt.Fprintf(&b, "- Phone: %s\n", profileStr(p, func(p *model.Profile) *string { return p.Phone }, "Unknown"))
	fmt.Fprintf(&b, "- Email: %s\n", profileStr(p, func(p *model.Profile) *string { return p.Email }, "Unknown"))
	fmt.Fprintf(&b, "- Age: %s\n", profileAge(p))
	fmt.Fprintf(&b, "- Gender: %s\n", profileStr(p, func(p *model.Profile) *string { return p.Gender }, "Unknown"))
	fmt.Fprintf(&b, "- Blood type: %s\n", profileStr(p, func(p *model.Profile) *string { return p.BloodType }, "Unknown"))
	fmt.Fprintf(&b, "- Allergies: %s\n", profileStr(p, func(p *model.Profile) *string { return p.Allergies }, "None"))
	fmt.Fprintf(&b, "- Chronic conditions: %s\n", profileStr(p, func(p *model.Profile) *string { return p.ChronicConditions }, "None"))
	fmt.Fprintf(&b, "- Medications: %s\n", profileStr(p, func(p *model.Profile) *string { return p.Medications }, "None"))
	fmt.Fprintf(&b, "- Disabilities: %s\n", profileStr(p, func(p *model.Profile) *string { return p.Disabilities }, "None"))
	fmt.Fprintf(&b, "- Preferred hospital: %s\n", profileStr(p, func(p *model.Profile) *string { return p.PreferredHospital }, "None"))
	fmt.Fprintf(&b, "- Other notes: %s\n", profileStr(p, func(p *model.Profile) *string { return p.OtherNotes }, "None"))
	b.WriteString("\n")
	b.WriteString("OUTPUT FORMAT:\n")
	b.WriteString("1) Incident Summary\n")
	b.WriteString("2) Key Facts (bullets)\n")
	b.WriteString("3) Medical Risk Flags (bullets)\n")
	b.WriteString("4) Location & Access Notes (bullets)\n")
	b.WriteString("5) Recommended Immediate Actions (bullets)\n")
	b.WriteString("6) Questions / Missing Information (bullets)\n")
	b.WriteString("7) Dispatch Priority: Low/Medium/High + reason\n")
	b.WriteString("\n")
	b.WriteString("No speculation. Mention missing fields as missing.\n")

	return b.String()
}

func strOr(v *string, placeholder string) string {
	if v == nil || *v == "" {
		return placeholder
	}
	return *v
}

func floatOr(v *float64, placeholder string) string {
	if v == nil {
		return placeholder
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func intOr(v *int, placeholder string) string {
	if v == nil {
		return placeholder
	}
	return strconv.Itoa(*v)
}

func profileStr(p *model.Profile, get func(*model.Profile) *string, placeholder string) string {
	if p == nil {
		return placeholder
	}
	return strOr(get(p), placeholder)
}

func profileAge(p *model.Profile) string {
	if p == nil {
		return "Unknown"
	}
	return intOr(p.Age, "Unknown")
}

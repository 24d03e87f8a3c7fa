package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/rescuelink/rescuelink-backend/internal/genai"
	"github.com/rescuelink/rescuelink-backend/internal/model"
	"github.com/rescuelink/rescuelink-backend/internal/report"
	"github.com/rescuelink/rescuelink-backend/internal/store"
)

// ReportService orchestrates the report pipeline: fetch, ownership check,
// cache short-circuit, profile enrichment, generation and write-once persist.
type ReportService struct {
	store store.Store
	gen   genai.Generator
	sf    singleflight.Group
}

func NewReportService(st store.Store, gen genai.Generator) *ReportService {
	return &ReportService{store: st, gen: gen}
}

// Generate produces (or returns the cached) report for the given emergency.
// subject is the verified caller identity; it must match the record's owner.
func (s *ReportService) Generate(ctx context.Context, subject string, emergencyID int64) (*model.ReportResult, error) {
	em, err := s.store.Emergencies().GetByID(ctx, emergencyID)
	if err != nil {
		return nil, err
	}

	if em.UserID != subject {
		return nil, fmt.Errorf("%w: not your emergency", model.ErrForbidden)
	}

	if em.HasReport() {
		return &model.ReportResult{Text: *em.ReportText, Cached: true}, nil
	}

	// Concurrent requests for the same emergency collapse into a single
	// provider call and a single write; losers share the winner's result.
	v, err, _ := s.sf.Do(strconv.FormatInt(emergencyID, 10), func() (interface{}, error) {
		return s.generateAndPersist(ctx, em)
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.ReportResult), nil
}

func (s *ReportService) generateAndPersist(ctx context.Context, em *model.Emergency) (*model.ReportResult, error) {
	profile, err := s.store.Profiles().GetByID(ctx, em.UserID)
	if err != nil {
		// The report is still useful without profile enrichment.
		log.Warn().Err(err).Str("user_id", em.UserID).Msg("profile fetch failed, generating without profile")
		profile = nil
	}

	prompt := report.BuildPrompt(em, profile)

	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	wrote, err := s.store.Emergencies().SetReportIfEmpty(ctx, em.ID, text)
	if err != nil {
		// Fail closed: the generated text is discarded rather than handed
		// to the caller as unsaved state.
		return nil, fmt.Errorf("%w: failed to save report: %v", model.ErrPersistence, err)
	}
	if !wrote {
		// Another writer won the slot; return what it stored.
		stored, err := s.store.Emergencies().GetByID(ctx, em.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: report slot contested: %v", model.ErrPersistence, err)
		}
		if !stored.HasReport() {
			return nil, fmt.Errorf("%w: report slot contested", model.ErrPersistence)
		}
		return &model.ReportResult{Text: *stored.ReportText, Cached: true}, nil
	}

	return &model.ReportResult{Text: text, Cached: false}, nil
}

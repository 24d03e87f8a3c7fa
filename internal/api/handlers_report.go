package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rescuelink/rescuelink-backend/internal/api/respond"
	"github.com/rescuelink/rescuelink-backend/internal/auth"
	"github.com/rescuelink/rescuelink-backend/internal/genai"
	"github.com/rescuelink/rescuelink-backend/internal/model"
)

// ReportGenerator is the service seam the handler depends on.
type ReportGenerator interface {
	Generate(ctx context.Context, subject string, emergencyID int64) (*model.ReportResult, error)
}

type ReportHandler struct {
	verifier *auth.Verifier
	svc      ReportGenerator
}

func NewReportHandler(verifier *auth.Verifier, svc ReportGenerator) *ReportHandler {
	return &ReportHandler{verifier: verifier, svc: svc}
}

// GenerateReport handles POST /api/reports/generate.
// The caller authenticates with a bearer token; the body carries the numeric
// emergencyId. The caller's token is used for identity only; data access runs
// with the service's elevated store credentials.
func (h *ReportHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	token, err := auth.ExtractBearer(r)
	if err != nil {
		respond.WriteError(w, http.StatusUnauthorized, "Missing Authorization Bearer token")
		return
	}

	subject, err := h.verifier.Subject(token)
	if err != nil {
		respond.WriteError(w, http.StatusUnauthorized, "Unauthorized: cannot read user from token")
		return
	}

	// An unparseable body is tolerated as an empty object; the emergencyId
	// check below rejects it. A string emergencyId fails to decode into the
	// numeric field and is rejected the same way.
	var in struct {
		EmergencyID *float64 `json:"emergencyId"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&in)
	}
	if in.EmergencyID == nil {
		respond.WriteError(w, http.StatusBadRequest, "emergencyId must be a number")
		return
	}

	res, err := h.svc.Generate(r.Context(), subject, int64(*in.EmergencyID))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, res)
}

// writeServiceError maps pipeline errors onto the response contract.
func writeServiceError(w http.ResponseWriter, err error) {
	var pe *genai.ProviderError
	switch {
	case errors.Is(err, model.ErrUnauthenticated):
		respond.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, model.ErrInvalidInput):
		respond.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrNotFound):
		respond.WriteError(w, http.StatusNotFound, "Emergency not found")
	case errors.Is(err, model.ErrForbidden):
		respond.WriteError(w, http.StatusForbidden, "Forbidden: not your emergency")
	case errors.As(err, &pe):
		respond.WriteErrorDetails(w, http.StatusInternalServerError, "Server error", pe.Error())
	case errors.Is(err, model.ErrEmptyGeneration):
		respond.WriteError(w, http.StatusBadGateway, "Empty report from model")
	case errors.Is(err, model.ErrPersistence):
		respond.WriteError(w, http.StatusInternalServerError, "Failed to save report")
	case errors.Is(err, model.ErrConfiguration):
		respond.WriteError(w, http.StatusInternalServerError, err.Error())
	default:
		respond.WriteErrorDetails(w, http.StatusInternalServerError, "Server error", err.Error())
	}
}

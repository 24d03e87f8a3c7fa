package api

import (
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/rescuelink/rescuelink-backend/internal/api/recovery"
	"github.com/rescuelink/rescuelink-backend/internal/api/requestlog"
	"github.com/rescuelink/rescuelink-backend/internal/auth"
	"github.com/rescuelink/rescuelink-backend/internal/store"
)

// NewRouter creates the HTTP router with all API routes.
func NewRouter(log zerolog.Logger, verifier *auth.Verifier, svc ReportGenerator, st store.Store) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recovery.Middleware)
	router.Use(requestlog.Middleware(log))

	reportHandler := NewReportHandler(verifier, svc)
	router.HandleFunc("/api/reports/generate", reportHandler.GenerateReport).Methods("POST")

	healthHandler := NewHealthHandler(st)
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	router.HandleFunc("/api/health/store", healthHandler.CheckStoreHealth).Methods("GET")

	return router
}

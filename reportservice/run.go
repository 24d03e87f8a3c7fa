// Package reportservice boots the incident report HTTP service.
package reportservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rescuelink/rescuelink-backend/internal/api"
	"github.com/rescuelink/rescuelink-backend/internal/auth"
	"github.com/rescuelink/rescuelink-backend/internal/config"
	"github.com/rescuelink/rescuelink-backend/internal/genai"
	"github.com/rescuelink/rescuelink-backend/internal/platform/factory"
	"github.com/rescuelink/rescuelink-backend/internal/platform/logger"
	"github.com/rescuelink/rescuelink-backend/internal/services"
)

// Run starts the report service HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("report-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	// Fail fast on missing secrets instead of surfacing per-request 500s.
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("Configuration invalid")
		return err
	}

	log.Info().
		Int("http_port", cfg.HTTPPort).
		Str("store_driver", cfg.StoreDriver).
		Str("gemini_model", cfg.GeminiModel).
		Msg("Report service starting")

	// Cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	st, err := factory.NewStore(cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("Store adapter unavailable")
		return err
	}

	verifier := auth.NewVerifier(cfg.AuthJWTSecret)
	gen := genai.NewGeminiClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel)
	svc := services.NewReportService(st, gen)

	router := api.NewRouter(log, verifier, svc, st)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Err(err).Msg("HTTP server failed")
		return err
	}
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

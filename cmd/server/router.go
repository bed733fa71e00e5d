package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/deckforge/deckforge/internal/api"
	apimiddleware "github.com/deckforge/deckforge/internal/api/middleware"
	"github.com/deckforge/deckforge/internal/api/shared"
	"github.com/deckforge/deckforge/internal/broker"
	"github.com/deckforge/deckforge/internal/config"
	"github.com/deckforge/deckforge/internal/service"
)

// newRouter configures all routes and middleware for the REST tier.
func newRouter(jobService service.JobService, b broker.Broker, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.Trace)

	jobHandler := api.NewJobHandler(jobService, cfg.Upload.Dir, cfg.Upload.MaxBytes, logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/jobs", jobHandler.SubmitJob)
		r.Post("/upload", jobHandler.UploadFiles)
		r.Get("/jobs", jobHandler.ListJobs)
		r.Get("/jobs/{id}", jobHandler.GetJobStatus)
		r.Get("/jobs/{id}/deck", jobHandler.DownloadDeck)
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if err := b.Ping(ctx); err != nil {
			shared.RespondWithError(w, req, http.StatusServiceUnavailable, "coordination store unreachable")
			return
		}
		shared.RespondWithJSON(w, req, http.StatusOK, map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	return r
}

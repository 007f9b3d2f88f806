package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/hirescope/hirescope/internal/api/handlers"
	appMiddleware "github.com/hirescope/hirescope/internal/api/middlewares"
	"github.com/hirescope/hirescope/internal/config"
	"github.com/hirescope/hirescope/internal/services"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, jobs *services.JobService, candidates *services.CandidateService, extract *services.ExtractService, logger *slog.Logger) *Server {
	jobsHandler := handlers.NewJobsHandler(jobs)
	candidatesHandler := handlers.NewCandidatesHandler(candidates)
	extractHandler := handlers.NewExtractHandler(extract)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	// OCR on a multi-page scan is slow; the budget has to cover it.
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(appMiddleware.ServiceAuth(cfg.ServiceToken))

		api.Get("/jobs", jobsHandler.ListJobs)
		api.Get("/jobs/{jobID}", jobsHandler.GetJob)
		api.Get("/jobs/{jobID}/candidates", candidatesHandler.PipelineBasic)
		api.Get("/jobs/{jobID}/candidates/evaluation", candidatesHandler.PipelineEvaluation)

		api.Get("/candidates/{candidateID}", candidatesHandler.Profile)
		api.Get("/candidates/{candidateID}/notes", candidatesHandler.Notes)
		api.Post("/candidates/search", candidatesHandler.Search)

		api.Post("/extract", extractHandler.Extract)
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv, logger: logger}
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.httpServer.Shutdown(ctx)
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/jobpost/internal/config"
	"github.com/dgallion1/jobpost/internal/posting"
	"github.com/dgallion1/jobpost/internal/stats"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for jobpost.
type Server struct {
	router  chi.Router
	parser  *posting.Parser
	stats   *stats.Recorder
	metrics *Metrics
	log     *slog.Logger
	cfg     config.Config
}

// NewServer creates and configures the HTTP server. The parser is expected
// to report to rec and m through posting.WithObserver; either may be nil.
func NewServer(p *posting.Parser, rec *stats.Recorder, m *Metrics, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		parser:  p,
		stats:   rec,
		metrics: m,
		log:     log,
		cfg:     cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	// Authenticated endpoints when an API key is configured.
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/parse", s.handleParse)
		r.Post("/api/parse/file", s.handleParseFile)
		r.Get("/api/vocabulary", s.handleVocabulary)
		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

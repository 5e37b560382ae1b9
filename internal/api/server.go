package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/kk-code-lab/mdlens/internal/config"
	"github.com/kk-code-lab/mdlens/internal/markup"
	"github.com/kk-code-lab/mdlens/internal/store"
	"github.com/rs/zerolog"
)

// Server is the HTTP API over the document store.
type Server struct {
	router   chi.Router
	store    store.Store
	cache    *snapshotCache
	validate *validator.Validate
	log      zerolog.Logger
	cfg      config.Config
	http     *http.Server
}

// NewServer creates and configures the HTTP server.
func NewServer(st store.Store, parser *markup.Parser, log zerolog.Logger, cfg config.Config) *Server {
	s := &Server{
		store:    st,
		cache:    newSnapshotCache(parser, defaultCacheEntries),
		validate: newValidator(),
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	s.http = &http.Server{
		Addr:              cfg.HTTPServerAddress,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start serves until Shutdown is called. It returns nil after a clean
// shutdown.
func (s *Server) Start() error {
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api/documents", func(r chi.Router) {
		r.Post("/", s.handleCreateDocument)
		r.Route("/{docID}", func(r chi.Router) {
			r.Use(s.documentIDMiddleware)
			r.Get("/", s.handleGetDocument)
			r.Put("/", s.handleUpdateDocument)
			r.Delete("/", s.handleDeleteDocument)
			r.Get("/plain", s.handlePlainText)
			r.Get("/search", s.handleSearch)
		})
	})

	s.router = r
}

type pinger interface {
	Ping(ctx context.Context) error
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if p, ok := s.store.(pinger); ok {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			s.log.Warn().Err(err).Msg("store ping failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

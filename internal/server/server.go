// Package server exposes the availability checks over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/nameclaim/nameclaim/internal/config"
	"github.com/nameclaim/nameclaim/internal/core"
	servermw "github.com/nameclaim/nameclaim/internal/server/middleware"
)

// Aggregator fans a name out across the enabled registries.
type Aggregator interface {
	CheckAll(ctx context.Context, name string, sel core.Selection) []core.Outcome
}

// TLDChecker sweeps one label across a list of top-level domains and checks
// fully qualified domains as given.
type TLDChecker interface {
	CheckTLDs(ctx context.Context, name string, tlds []string) []core.DomainOutcome
	CheckDomains(ctx context.Context, domains []string) []core.DomainOutcome
}

// SelectionStore reads and persists the registry selection.
type SelectionStore interface {
	Load() (*config.Config, error)
	SaveSelection(sel core.Selection) error
}

// Server is the HTTP server wrapping the check engine.
type Server struct {
	router  *chi.Mux
	server  *http.Server
	cfg     config.ServerConfig
	logger  *zap.Logger
	version string

	checks  Aggregator
	domains TLDChecker
	store   SelectionStore
}

// New wires the router and middleware around the check engine.
func New(cfg config.ServerConfig, checks Aggregator, domains TLDChecker, store SelectionStore, version string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		router:  chi.NewRouter(),
		cfg:     cfg,
		logger:  logger,
		version: version,
		checks:  checks,
		domains: domains,
		store:   store,
	}

	s.router.Use(chimw.RealIP)
	s.router.Use(servermw.RequestID)
	s.router.Use(servermw.Logging(logger))
	s.router.Use(servermw.Recovery(logger))

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "resource not found")
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/version", s.handleVersion)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/check", s.handleCheck)
		r.Post("/domain", s.handleDomain)
		r.Post("/domain/full", s.handleFullDomains)
		r.Get("/config", s.handleGetConfig)
		r.Post("/config", s.handleSetConfig)
	})
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Package server exposes the authoring workflow over HTTP: region
// suggestions for page images, pool reads and upserts, and practice-paper
// generation with optional websocket progress streaming.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MeKo-Tech/paperforge/internal/config"
	"github.com/MeKo-Tech/paperforge/internal/exam"
	"github.com/MeKo-Tech/paperforge/internal/pipeline"
)

// Server serves the paperforge HTTP API.
type Server struct {
	cfg       config.ServerConfig
	paperCfg  config.PaperConfig
	suggester *pipeline.Suggester
	store     *exam.Store
	sources   SourceResolver
	http      *http.Server
}

// SourceResolver opens the page source of an exam booklet for paper
// generation, typically via pipeline.NewBookletSource.
type SourceResolver func(examID string) (pipeline.PageSource, error)

// New creates a Server.
func New(cfg config.ServerConfig, paperCfg config.PaperConfig,
	suggester *pipeline.Suggester, store *exam.Store, sources SourceResolver,
) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Server{
		cfg:       cfg,
		paperCfg:  paperCfg,
		suggester: suggester,
		store:     store,
		sources:   sources,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.wrap(s.healthHandler))
	mux.HandleFunc("/suggest", s.wrap(s.suggestHandler))
	mux.HandleFunc("/papers", s.wrap(s.papersHandler))
	mux.HandleFunc("/pools/", s.wrap(s.poolsHandler))
	mux.HandleFunc("/ws/papers", s.paperWebSocketHandler)
	mux.Handle("/metrics", promhttp.Handler())

	s.http = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      mux,
		ReadTimeout:  time.Duration(cfg.TimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.TimeoutSec) * time.Second,
	}
	return s, nil
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string { return s.http.Addr }

// Handler returns the server's root handler, for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Start runs the server until it fails or is shut down.
func (s *Server) Start() error {
	slog.Info("starting HTTP server", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("shutting down HTTP server")
	return s.http.Shutdown(ctx)
}

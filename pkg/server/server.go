// Package server exposes the puzzle pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz           liveness and build info
//	POST /api/v1/validate   strict config import, returns a summary
//	POST /api/v1/preview    puzzle, edge or adjacency preview (svg, png, pdf, dot)
//	POST /api/v1/pieces     compiled piece outlines as JSON
//	POST /api/v1/export     per-piece asset archive (zip)
//
// Request bodies are config JSON. Preview and export also accept multipart forms
// with a "config" part and an optional "image" texture part. Errors are returned as
// JSON objects {"code": ..., "message": ...} with a status derived from the code.
package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/jigsaw/pkg/cache"
	"github.com/matzehuels/jigsaw/pkg/errors"
	pkgio "github.com/matzehuels/jigsaw/pkg/io"
	"github.com/matzehuels/jigsaw/pkg/pipeline"
	"github.com/matzehuels/jigsaw/pkg/settings"
)

// KeyPrefix scopes API cache entries away from CLI entries in a shared backend.
const KeyPrefix = "api"

// MaxBodySize bounds request bodies, textures included.
const MaxBodySize = pkgio.MaxConfigSize

// RequestTimeout bounds the handling time of a single request.
const RequestTimeout = 2 * time.Minute

// Server serves the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	settings settings.Settings
	logger   *log.Logger
	router   chi.Router
}

// New creates a server on top of c. A nil cache disables caching and a nil logger
// discards output.
func New(c cache.Cache, s settings.Settings, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	srv := &Server{
		runner:   pipeline.NewRunner(c, cache.NewScopedKeyer(cache.NewDefaultKeyer(), KeyPrefix), logger),
		settings: s,
		logger:   logger,
	}
	srv.router = srv.routes()
	return srv
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(limitBody(MaxBodySize))
		r.Post("/validate", s.handleValidate)
		r.Post("/preview", s.handlePreview)
		r.Post("/pieces", s.handlePieces)
		r.Post("/export", s.handleExport)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, s.logger, notFound(r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, apiError{
			Code:    errors.ErrCodeInvalidInput,
			Message: r.Method + " not allowed on " + r.URL.Path,
		})
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- hs.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// Close releases the cache.
func (s *Server) Close() error {
	return s.runner.Close()
}

// Package httpapi is the thin net/http adapter for the §6.1 surface. The
// HTTP server framework, request parsing, CORS, rate limiting, and
// multipart upload handling are explicitly out of scope (§1): this package
// only wires routes to internal/usecases.Service and maps its errors to
// the §7 status taxonomy, the same role the teacher's internal/http
// package plays for the CMS admin surface.
package httpapi

import (
	"net/http"
	"strings"

	"github.com/itkodovaya/site-builder/internal/logging"
	"github.com/itkodovaya/site-builder/internal/usecases"
	"github.com/itkodovaya/site-builder/pkg/interfaces"
)

// Server holds the dependencies every handler needs.
type Server struct {
	service       *usecases.Service
	logger        interfaces.Logger
	internalToken string
	allowedOrigin string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger injects a module-scoped logger. Defaults to a no-op logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithInternalToken sets the shared secret required on POST
// /drafts/{id}/commit via the X-Internal-Token header (§6.2).
func WithInternalToken(token string) Option {
	return func(s *Server) {
		s.internalToken = token
	}
}

// WithAllowedOrigin sets the single Access-Control-Allow-Origin value
// applied to every response. Full CORS handling (preflight, per-route
// policy) is out of scope; this is the thin header pass-through the
// adapter owns per its contract with the (out of scope) framework layer.
func WithAllowedOrigin(origin string) Option {
	return func(s *Server) {
		s.allowedOrigin = strings.TrimSpace(origin)
	}
}

// NewServer wires a Server against service.
func NewServer(service *usecases.Service, opts ...Option) *Server {
	s := &Server{service: service, logger: logging.NoOp()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes builds the http.Handler exposing the §6.1 surface.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/v1/drafts", s.handleCreateDraft)
	mux.HandleFunc("PATCH /api/v1/drafts/{draftId}", s.handleUpdateDraft)
	mux.HandleFunc("GET /api/v1/drafts/{draftId}", s.handleGetDraft)
	mux.HandleFunc("GET /api/v1/drafts/{draftId}/preview", s.handleGetPreview)
	mux.HandleFunc("GET /p/{draftId}", s.handleDirectPreview)
	mux.HandleFunc("POST /api/v1/drafts/{draftId}/commit", s.handleCommit)
	return s.withCORS(mux)
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.allowedOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", s.allowedOrigin)
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

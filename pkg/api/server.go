// Package api serves the widget catalog over HTTP for navigation and SEO
// consumers.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gnana997/widgetspec/pkg/catalog"
)

// Options configures a Server.
type Options struct {
	// BaseURL prefixes sitemap locations, e.g. https://example.com.
	BaseURL string
	// Timeout bounds each request (default 30s).
	Timeout time.Duration
	Logger  *slog.Logger
}

// Server is an http.Handler over a swappable catalog snapshot.
type Server struct {
	query   atomic.Pointer[catalog.QueryService]
	router  chi.Router
	baseURL string
	logger  *slog.Logger
}

// NewServer builds the router over qs.
func NewServer(qs *catalog.QueryService, opts Options) *Server {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		logger:  logger,
	}
	s.query.Store(qs)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(opts.Timeout))

	r.Route("/widgets", func(r chi.Router) {
		r.Get("/", s.handleListWidgets)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetWidget)
			r.Get("/recommended", s.handleRecommended)
			r.Get("/faqs", s.handleFAQs)
		})
	})
	r.Get("/paths/{path}", s.handleGetByPath)
	r.Get("/categories", s.handleListCategories)
	r.Get("/categories/{category}", s.handleCategory)
	r.Get("/tags", s.handleListTags)
	r.Get("/tags/{tag}", s.handleTag)
	r.Get("/search", s.handleSearch)
	r.Get("/sitemap.xml", s.handleSitemap)
	r.Get("/system", s.handleSystem)
	r.Get("/user-agent", s.handleUserAgent)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetQuery swaps in a reloaded catalog.
func (s *Server) SetQuery(qs *catalog.QueryService) {
	s.query.Store(qs)
}

// Query returns the catalog snapshot currently served.
func (s *Server) Query() *catalog.QueryService {
	return s.query.Load()
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorBody{Error: err.Error()})
}

func (s *Server) notFound(w http.ResponseWriter, what string) {
	s.writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", catalog.ErrNotFound, what))
}

// Package server exposes the activity table and its derived aggregates as
// a read-only JSON API for dashboard frontends. Handlers never mutate the
// table; empty data degrades to explicit no-data responses.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"

	"github.com/flazor/stride/schema"
)

// Server serves aggregates computed over one loaded snapshot.
type Server struct {
	table  *schema.Table
	logger *slog.Logger
	now    func() time.Time
}

// New creates a server over an already-loaded table. The now function is
// the daily axis upper bound; tests pin it, production passes time.Now.
func New(table *schema.Table, logger *slog.Logger, now func() time.Time) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &Server{table: table, logger: logger, now: now}
}

// Router creates and configures the chi router with all middleware and routes.
func (s *Server) Router(corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5)) // gzip

	c := corslib.New(corslib.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/daily", s.handleDaily)
		r.Get("/heatmap", s.handleHeatmap)
		r.Get("/types", s.handleTypes)
	})

	return r
}

// requestLogger logs one line per request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, req)
		s.logger.Debug("request",
			"method", req.Method,
			"path", req.URL.Path,
			"duration", time.Since(start))
	})
}

// Package httpapi exposes the pipeline trigger endpoints plus health,
// readiness, and metrics routes.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gridwatch-ng/grid-data-etl/internal/pipeline"
)

// MetricsRunner triggers one grid-metrics extraction run.
type MetricsRunner interface {
	Run(ctx context.Context) pipeline.MetricsResult
}

// NewsRunner triggers one news extraction run.
type NewsRunner interface {
	Run(ctx context.Context) pipeline.NewsResult
}

// Pinger reports sink reachability for the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server exposes the scrape trigger endpoints. Triggers are stateless
// request/response units: any method is accepted, no body is required, and
// CORS is open so browser-hosted dashboards can invoke them directly.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates the HTTP surface: /api/scrape/grid, /api/scrape/news,
// /healthz, /readyz, and /metrics.
func NewServer(addr string, grid MetricsRunner, news NewsRunner, ready Pinger, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("/api/scrape/grid", withCORS(s.handleScrapeGrid(grid)))
	mux.HandleFunc("/api/scrape/news", withCORS(s.handleScrapeNews(news)))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleScrapeGrid runs the grid-metrics pipeline. Handled outcomes,
// including a fetch-failure envelope, respond 200; only a synchronous
// persistence failure maps to 500.
func (s *Server) handleScrapeGrid(grid MetricsRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result := grid.Run(r.Context())
		status := http.StatusOK
		if result.PersistFailed {
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, result)
	}
}

// handleScrapeNews runs the news pipeline. Per-item persist failures are
// already absorbed into the envelope counts, so every handled outcome is 200.
func (s *Server) handleScrapeNews(news NewsRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, news.Run(r.Context()))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(pinger Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := pinger.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// withCORS opens the endpoint to cross-origin callers and answers preflight
// requests with a no-op 204.
func withCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

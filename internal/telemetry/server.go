package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// ServerConfig configures the local-only monitoring HTTP server
// (spec.md §6.1's `monitor` subcommand).
type ServerConfig struct {
	Host string
	Port int
}

// HealthStatus is served as JSON from /healthz.
type HealthStatus struct {
	Status        string `json:"status"`
	OracleBreaker string `json:"oracle_breaker"`
	LockBackend   string `json:"lock_backend"`
}

// HealthFunc is polled on every /healthz request so the server always
// reports live state rather than a snapshot taken at startup.
type HealthFunc func() HealthStatus

// Server exposes /healthz and /metrics over a gorilla/mux router,
// grounded on sawpanic-cryptorun/internal/interfaces/http/server.go's
// Server shape (mux.Router, a wrapping http.Server, Start/Shutdown).
type Server struct {
	router *mux.Router
	server *http.Server
	health HealthFunc
}

// NewServer wires /healthz (backed by health) and /metrics (promhttp's
// default handler, which serves prometheus.DefaultGatherer; reg itself
// is not consulted) behind a mux.Router.
func NewServer(cfg ServerConfig, reg *Registry, health HealthFunc) *Server {
	router := mux.NewRouter()
	router.Use(loggingMiddleware)

	s := &Server{router: router, health: health}

	router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	status := s.health()
	w.Header().Set("Content-Type", "application/json")
	if status.Status != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(status)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("monitor request")
	})
}

// Start runs the server until it errors or Shutdown is called.
func (s *Server) Start() error {
	log.Info().Str("addr", s.server.Addr).Msg("starting monitor server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

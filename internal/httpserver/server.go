// Package httpserver wires the HTTP surface: routes, middleware, and the
// JSON handlers around the client IP resolver.
package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abczzz13/ipapi/clientip"
	"github.com/abczzz13/ipapi/internal/config"
	"github.com/abczzz13/ipapi/internal/version"
)

// Server holds the HTTP server dependencies.
type Server struct {
	Router   *chi.Mux
	Logger   *slog.Logger
	Resolver *clientip.Resolver
	Metrics  *prometheus.Registry
}

// NewServer creates an HTTP server with middleware and the service routes.
func NewServer(cfg *config.Config, logger *slog.Logger, resolver *clientip.Resolver, metricsReg *prometheus.Registry) *Server {
	s := &Server{
		Router:   chi.NewRouter(),
		Logger:   logger,
		Resolver: resolver,
		Metrics:  metricsReg,
	}

	// Global middleware. ProxyFix runs first so every later consumer of
	// RemoteAddr sees the rewritten peer.
	s.Router.Use(ProxyFix(cfg.ProxyLayers))
	s.Router.Use(RequestID)
	s.Router.Use(Logger(logger, resolver))
	s.Router.Use(Metrics)
	s.Router.Use(Recoverer(logger))
	s.Router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	s.Router.Get("/", s.handleHome)
	s.Router.Get("/health", s.handleHealth)
	s.Router.Get("/ip", s.handleIP)

	// Prometheus metrics (unauthenticated)
	s.Router.Handle(cfg.MetricsPath, promhttp.HandlerFor(metricsReg, promhttp.HandlerOpts{}))

	// Every unmatched route, wrong methods included, gets the same 404 body.
	s.Router.NotFound(handleNotFound)
	s.Router.MethodNotAllowed(handleNotFound)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	Respond(w, http.StatusOK, map[string]string{
		"message": "Welcome to IP Address API Service!",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	Respond(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": version.Version,
	})
}

func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	RespondError(w, http.StatusNotFound, "Endpoint not found")
}

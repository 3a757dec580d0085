package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/goextrato/internal/adapter/http/handler"
	"github.com/iho/goextrato/internal/adapter/http/middleware"
	"github.com/iho/goextrato/internal/infrastructure/metrics"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ImportHandler *handler.ImportHandler
	HealthHandler *handler.HealthHandler
	Metrics       *metrics.Metrics
	MetricsPath   http.Handler
	UploadLimiter *middleware.UploadLimiter
	Logger        zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	metricsHandler := cfg.MetricsPath
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Handle("/metrics", metricsHandler)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/imports", func(r chi.Router) {
			if cfg.UploadLimiter != nil {
				r.Use(cfg.UploadLimiter.Limit)
			}
			r.Post("/", cfg.ImportHandler.Import)
			r.Post("/extract", cfg.ImportHandler.Extract)
		})
	})

	return r
}

// Package http assembles the HTTP interface: route tree, middleware chain,
// and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/logging"
	"github.com/afyabot/afyabot/internal/infrastructure/monitoring/prometheus"
	"github.com/afyabot/afyabot/internal/interfaces/http/handlers"
	"github.com/afyabot/afyabot/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handler and infrastructure dependencies of the
// route tree.
type RouterConfig struct {
	ChatHandler     *handlers.ChatHandler
	HospitalHandler *handlers.HospitalHandler
	FeedbackHandler *handlers.FeedbackHandler
	HealthHandler   *handlers.HealthHandler

	Logger  logging.Logger
	Metrics *prometheus.Metrics
}

// NewRouter constructs the complete route tree: global middleware, public
// probes, the metrics endpoint, and the versioned API group.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.Logger != nil {
		r.Use(middleware.RequestLogging(cfg.Logger, middleware.DefaultLoggingConfig()))
	}

	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}

	if cfg.ChatHandler != nil || cfg.HospitalHandler != nil || cfg.FeedbackHandler != nil {
		r.Route("/api/v1", func(api chi.Router) {
			if cfg.ChatHandler != nil {
				api.Post("/messages", cfg.ChatHandler.ProcessMessage)
				api.Get("/messages/history", cfg.ChatHandler.History)
			}
			if cfg.HospitalHandler != nil {
				api.Post("/hospitals/nearby", cfg.HospitalHandler.Nearby)
			}
			if cfg.FeedbackHandler != nil {
				api.Post("/feedback", cfg.FeedbackHandler.Submit)
			}
		})
	}

	return r
}

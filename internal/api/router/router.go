// Package router assembles the HTTP surface over the clinic registry.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dentalia/clinic-registry/internal/http/handlers"
	httpmiddleware "github.com/dentalia/clinic-registry/internal/http/middleware"
	"github.com/dentalia/clinic-registry/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	ProviderHandler    *handlers.ProviderHandler
	PatientHandler     *handlers.PatientHandler
	AppointmentHandler *handlers.AppointmentHandler
	MetricsHandler     http.Handler
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", handlers.Health)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Mount("/providers", cfg.ProviderHandler.Routes())
	r.Mount("/patients", cfg.PatientHandler.Routes())
	r.Mount("/appointments", cfg.AppointmentHandler.Routes())

	return r
}

package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pr-poehali-dev/warehouse-consultation-site/internal/storage"
)

// NewRouter creates a chi.Mux with the two function endpoints mounted over
// HTTP, plus health and metrics endpoints for the local server mode.
func NewRouter(contact, articles EventHandler, db *storage.DB, log zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(CorrelationIDMiddleware(log))
	r.Use(LoggingMiddleware(log))
	r.Use(RecoverMiddleware(log))

	// Health and metrics endpoints
	r.Get("/healthz", HealthzHandler())
	r.Get("/readyz", ReadyzHandler(db))
	r.Handle("/metrics", promhttp.Handler())

	// Function endpoints. Method dispatch (including OPTIONS and 405) lives
	// inside the handlers, so every method is routed through.
	r.HandleFunc("/api/contact", AdaptEvent(contact))
	r.HandleFunc("/api/articles", AdaptEvent(articles))

	return r
}

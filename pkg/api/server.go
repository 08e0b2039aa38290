// Package api provides the keywire inspection HTTP service: endpoints to
// encode and decode key-event packets and to journal them for replay.
package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StartServer starts the HTTP server with all routes configured
func StartServer(journal EventJournal, config ServerConfig) error {
	metrics := NewMetrics()
	server := NewServer(journal, config, metrics)

	r := Router(server, config, metrics)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	log.Printf("keywire API listening on %s", addr)
	return http.ListenAndServe(addr, r)
}

// Router builds the chi router for the given server. Split out from
// StartServer so tests can drive it with httptest.
func Router(server *Server, config ServerConfig, metrics *Metrics) chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API key authentication middleware for protected routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiKeyMiddleware(config.APIKey))

		// Health check
		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		// Codec operations
		r.Post("/decode", metrics.InstrumentHandler("POST", "/api/v1/decode", server.handleDecode))
		r.Post("/encode", metrics.InstrumentHandler("POST", "/api/v1/encode", server.handleEncode))

		// Journal operations
		r.Post("/events", metrics.InstrumentHandler("POST", "/api/v1/events", server.handleAppendEvent))
		r.Get("/events/{id}", metrics.InstrumentHandler("GET", "/api/v1/events/{id}", server.handleGetEvent))
	})

	return r
}

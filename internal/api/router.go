// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/cohortpulse/internal/config"
	"github.com/tomtom215/cohortpulse/internal/metrics"
	"github.com/tomtom215/cohortpulse/internal/middleware"
)

// Router builds the HTTP handler tree for the service.
type Router struct {
	handler *Handler
	config  *config.Config
}

// NewRouter creates a Router around the given handler set.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	return &Router{
		handler: handler,
		config:  cfg,
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler so it can be used with r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Setup configures all HTTP routes using Chi router.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: router.config.Security.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		if !router.config.Security.RateLimitDisabled {
			r.Use(httprate.Limit(
				router.config.Security.RateLimitReqs,
				router.config.Security.RateLimitWindow,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					metrics.APIRateLimitHits.WithLabelValues(r.URL.Path).Inc()
					respondError(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Too many requests", nil)
				}),
			))
		}
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Get("/health", router.handler.Health)

		r.Post("/analyze", router.handler.Analyze)
		r.Post("/analyze/export", router.handler.AnalyzeExport)

		r.Route("/claims", func(r chi.Router) {
			r.Post("/upload", router.handler.ClaimsUpload)
			r.Get("/{uploadID}/waterfall", router.handler.ClaimsWaterfall)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

// Package main is the entry point for the CohortPulse server application.
//
// CohortPulse is a self-hosted analytics service for customer cohort
// retention and healthcare claims payment waterfalls. Clients upload CSV
// files; the server parses, validates, and analyzes them synchronously
// and returns pivot tables, metrics, and generated insights.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Logging: Structured zerolog output (json or console format)
//  3. Upload Store: In-memory TTL store for parsed claims uploads
//  4. Analyzer: Cohort analysis pipeline with configurable insight thresholds
//  5. HTTP Server: Chi router with CORS, rate limiting, and Prometheus metrics
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (HTTP_PORT, UPLOAD_MAX_BYTES, LOG_LEVEL, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Closes the upload store cleanup goroutine
//
// # Example Usage
//
//	export HTTP_PORT=3858
//	export UPLOAD_MAX_BYTES=33554432
//	export LOG_LEVEL=debug
//	./cohortpulse
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/cohortpulse/internal/analytics"
	"github.com/tomtom215/cohortpulse/internal/api"
	"github.com/tomtom215/cohortpulse/internal/config"
	"github.com/tomtom215/cohortpulse/internal/logging"
	"github.com/tomtom215/cohortpulse/internal/metrics"
	"github.com/tomtom215/cohortpulse/internal/store"
)

const version = "1.0.0"

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Str("version", version).Msg("Starting CohortPulse")

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
	startTime := time.Now()

	// Upload store for claims waterfall queries
	uploadStore := store.New(cfg.Upload.TTL, cfg.Upload.MaxStored)
	defer uploadStore.Close()

	analyzer := analytics.NewAnalyzer(cfg.Insights)

	handler := api.NewHandler(uploadStore, analyzer, cfg)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Track uptime for the /metrics endpoint
	uptimeDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.AppUptime.Set(time.Since(startTime).Seconds())
			case <-uptimeDone:
				return
			}
		}
	}()
	defer close(uptimeDone)

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	serveErrCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		serveErrCh <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-serveErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("HTTP server shutdown error")
	}

	logging.Info().Msg("Application stopped gracefully")
}

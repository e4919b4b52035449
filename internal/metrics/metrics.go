// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

// Package metrics exposes Prometheus instrumentation for:
//   - API endpoint latency and throughput
//   - Analysis pipeline runs and dataset sizes
//   - Claims upload store activity
//   - Export downloads
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}, // Optimized for API latency
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Analysis Pipeline Metrics
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyses_total",
			Help: "Total number of analysis runs",
		},
		[]string{"pipeline", "status"}, // pipeline: "orders", "claims"; status: "success", "error"
	)

	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analysis_duration_seconds",
			Help:    "Duration of analysis pipeline runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"pipeline"},
	)

	DatasetRows = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dataset_rows",
			Help:    "Number of valid rows in analyzed datasets",
			Buckets: []float64{10, 100, 1000, 10000, 100000, 1000000},
		},
		[]string{"pipeline"},
	)

	// Upload Store Metrics
	StoreUploads = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "store_uploads",
			Help: "Current number of retained claims uploads",
		},
	)

	StoreEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "store_evictions_total",
			Help: "Total number of claims uploads evicted (TTL expiry or capacity)",
		},
	)

	// Export Metrics
	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exports_total",
			Help: "Total number of export downloads",
		},
		[]string{"format"}, // "xlsx", "csv"
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordAnalysis records one analysis pipeline run
func RecordAnalysis(pipeline, status string, rows int, duration time.Duration) {
	AnalysesTotal.WithLabelValues(pipeline, status).Inc()
	if status == "success" {
		AnalysisDuration.WithLabelValues(pipeline).Observe(duration.Seconds())
		DatasetRows.WithLabelValues(pipeline).Observe(float64(rows))
	}
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

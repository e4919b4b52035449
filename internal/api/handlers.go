// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

package api

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cohortpulse/internal/analytics"
	"github.com/tomtom215/cohortpulse/internal/config"
	"github.com/tomtom215/cohortpulse/internal/dataset"
	"github.com/tomtom215/cohortpulse/internal/export"
	"github.com/tomtom215/cohortpulse/internal/logging"
	"github.com/tomtom215/cohortpulse/internal/metrics"
	"github.com/tomtom215/cohortpulse/internal/models"
	"github.com/tomtom215/cohortpulse/internal/store"
)

const version = "1.0.0"

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	store     *store.Store
	analyzer  *analytics.Analyzer
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a Handler wired to the upload store and analyzer.
func NewHandler(st *store.Store, analyzer *analytics.Analyzer, cfg *config.Config) *Handler {
	return &Handler{
		store:     st,
		analyzer:  analyzer,
		config:    cfg,
		startTime: time.Now(),
	}
}

// Health handles health check requests
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.HealthStatus{
			Status:        "healthy",
			Version:       version,
			UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// readUpload extracts the uploaded CSV from a multipart form, enforcing
// the configured size limit. On failure it writes the error response
// itself and returns ok=false. The caller owns closing the file.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (multipart.File, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.Upload.MaxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE",
				fmt.Sprintf("Upload exceeds the %d byte limit", maxErr.Limit), nil)
			return nil, false
		}
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "No file provided", nil)
		return nil, false
	}

	if header.Filename == "" {
		_ = file.Close()
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "No file selected", nil)
		return nil, false
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		_ = file.Close()
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "File must be a CSV", nil)
		return nil, false
	}

	return file, true
}

// runOrdersAnalysis reads, parses, and analyzes an uploaded orders CSV.
// On failure it writes the error response itself and returns ok=false.
func (h *Handler) runOrdersAnalysis(w http.ResponseWriter, r *http.Request) (*models.Analysis, time.Duration, bool) {
	start := time.Now()

	file, ok := h.readUpload(w, r)
	if !ok {
		return nil, 0, false
	}
	defer file.Close() //nolint:errcheck // read-only multipart part

	frame, err := dataset.ReadCSV(file)
	if err != nil {
		metrics.RecordAnalysis("orders", "error", 0, 0)
		respondDatasetError(w, err)
		return nil, 0, false
	}

	orders, err := dataset.ParseOrders(frame)
	if err != nil {
		metrics.RecordAnalysis("orders", "error", 0, 0)
		respondDatasetError(w, err)
		return nil, 0, false
	}

	analysis, err := h.analyzer.Analyze(orders)
	if err != nil {
		metrics.RecordAnalysis("orders", "error", 0, 0)
		respondDatasetError(w, err)
		return nil, 0, false
	}

	elapsed := time.Since(start)
	metrics.RecordAnalysis("orders", "success", len(orders), elapsed)
	return analysis, elapsed, true
}

// Analyze handles orders CSV uploads and returns the full cohort analysis.
// The pipeline is stateless: nothing is retained after the response.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	analysis, elapsed, ok := h.runOrdersAnalysis(w, r)
	if !ok {
		return
	}

	logging.Ctx(r.Context()).Info().
		Int("orders", analysis.Summary.TotalOrders).
		Int("cohorts", analysis.Summary.NumCohorts).
		Dur("compute_time", elapsed).
		Msg("Cohort analysis completed")

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   analysis,
		Metadata: models.Metadata{
			Timestamp:     time.Now(),
			ComputeTimeMS: elapsed.Milliseconds(),
		},
	})
}

// AnalyzeExport handles orders CSV uploads and streams the analysis back
// as a downloadable file instead of a JSON body.
func (h *Handler) AnalyzeExport(w http.ResponseWriter, r *http.Request) {
	req := ExportRequest{
		Format: r.URL.Query().Get("format"),
		Table:  r.URL.Query().Get("table"),
	}
	if req.Format == "" {
		req.Format = "xlsx"
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	analysis, _, ok := h.runOrdersAnalysis(w, r)
	if !ok {
		return
	}

	var (
		data        []byte
		filename    string
		contentType string
		err         error
	)
	switch req.Format {
	case "xlsx":
		data, err = export.Workbook(analysis)
		filename = "cohort_analysis.xlsx"
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "csv":
		table, name := exportTable(analysis, req.Table)
		data, err = export.TableCSV(table)
		filename = name
		contentType = "text/csv; charset=utf-8"
	}
	if err != nil {
		logging.Error().Err(err).Str("format", req.Format).Msg("Export rendering failed")
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to render export", nil)
		return
	}

	metrics.ExportsTotal.WithLabelValues(req.Format).Inc()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write export response")
	}
}

// exportTable selects which pivot table a CSV export renders.
// An empty selector defaults to the retention table.
func exportTable(a *models.Analysis, table string) (*models.Table, string) {
	switch table {
	case "revenue":
		return a.RevenueTable, "cohort_revenue.csv"
	case "customers":
		return a.CustomerTable, "cohort_customers.csv"
	case "revenue_retention":
		return a.RevenueRetentionTable, "cohort_revenue_retention.csv"
	default:
		return a.RetentionTable, "cohort_retention.csv"
	}
}

// ClaimsUpload handles claims CSV uploads. Parsed claims are stored
// under a fresh upload ID for follow-up waterfall queries; the response
// carries the unfiltered waterfall plus the available filter values.
func (h *Handler) ClaimsUpload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	file, ok := h.readUpload(w, r)
	if !ok {
		return
	}
	defer file.Close() //nolint:errcheck // read-only multipart part

	frame, err := dataset.ReadCSV(file)
	if err != nil {
		metrics.RecordAnalysis("claims", "error", 0, 0)
		respondDatasetError(w, err)
		return
	}

	claims, err := dataset.ParseClaims(frame)
	if err != nil {
		metrics.RecordAnalysis("claims", "error", 0, 0)
		respondDatasetError(w, err)
		return
	}

	payers := analytics.Payers(claims)
	serviceTypes := analytics.ServiceTypes(claims)
	uploadID := h.store.Put(claims, payers, serviceTypes)
	metrics.StoreUploads.Set(float64(h.store.Len()))

	elapsed := time.Since(start)
	metrics.RecordAnalysis("claims", "success", len(claims), elapsed)

	logging.Ctx(r.Context()).Info().
		Str("upload_id", uploadID).
		Int("claims", len(claims)).
		Dur("compute_time", elapsed).
		Msg("Claims upload stored")

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.UploadReceipt{
			UploadID: uploadID,
			Message:  "File uploaded successfully",
			Rows:     len(claims),
			Filters: models.UploadFilters{
				Payers:       payers,
				ServiceTypes: serviceTypes,
			},
			Waterfall: analytics.BuildWaterfall(claims, analytics.ClaimFilter{}),
		},
		Metadata: models.Metadata{
			Timestamp:     time.Now(),
			ComputeTimeMS: elapsed.Milliseconds(),
		},
	})
}

// ClaimsWaterfall recomputes the payment waterfall for a stored upload,
// optionally filtered by payer and service type.
func (h *Handler) ClaimsWaterfall(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := WaterfallRequest{
		UploadID:    chi.URLParam(r, "uploadID"),
		Payer:       r.URL.Query().Get("payer"),
		ServiceType: r.URL.Query().Get("service_type"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	entry, ok := h.store.Get(req.UploadID)
	if !ok {
		logging.Ctx(r.Context()).Debug().
			Str("upload_id", sanitizeLogValue(req.UploadID)).
			Msg("Waterfall requested for unknown upload")
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Upload not found or expired", nil)
		return
	}

	waterfall := analytics.BuildWaterfall(entry.Claims, analytics.ClaimFilter{
		Payer:       req.Payer,
		ServiceType: req.ServiceType,
	})

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   waterfall,
		Metadata: models.Metadata{
			Timestamp:     time.Now(),
			ComputeTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

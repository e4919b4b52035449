// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
// It provides consistent structure for both successful and error responses, with metadata
// for observability.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Fields:
//   - Status: Response status ("success" or "error")
//   - Data: Response payload (any JSON-serializable type)
//   - Metadata: Execution metadata (timing, timestamp)
//   - Error: Error details (populated only when Status is "error")
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"summary": {...}, "insights": [...]},
//	  "metadata": {
//	    "timestamp": "2026-08-31T12:00:00Z",
//	    "compute_time_ms": 45
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "Missing required columns: customer_id, order_date",
//	    "details": {"columns": ["customer_id", "order_date"]}
//	  },
//	  "metadata": {"timestamp": "2026-08-31T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability and performance tracking.
//
// Fields:
//   - Timestamp: Server time when response was generated (RFC3339 format)
//   - ComputeTimeMS: Analysis pipeline execution time in milliseconds
type Metadata struct {
	Timestamp     time.Time `json:"timestamp"`
	ComputeTimeMS int64     `json:"compute_time_ms,omitempty"`
}

// APIError represents an error response with structured error details.
// Provides consistent error format across all API endpoints for better client handling.
//
// Fields:
//   - Code: Machine-readable error code (e.g., "VALIDATION_ERROR", "NOT_FOUND")
//   - Message: Human-readable error message
//   - Details: Additional context (field names, row counts, etc.)
//
// Common error codes:
//   - VALIDATION_ERROR: Malformed or incomplete input data
//   - PAYLOAD_TOO_LARGE: Upload exceeds the configured size limit
//   - NOT_FOUND: Upload identifier doesn't exist or has expired
//   - RATE_LIMIT_EXCEEDED: Too many requests
//   - INTERNAL_ERROR: Unexpected server failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is the payload of the health endpoint.
type HealthStatus struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

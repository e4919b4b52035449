// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cohortpulse/internal/dataset"
	"github.com/tomtom215/cohortpulse/internal/logging"
	"github.com/tomtom215/cohortpulse/internal/models"
	"github.com/tomtom215/cohortpulse/internal/validation"
)

// sanitizeLogValue removes control characters from user-controlled strings
// before they reach log output. Prevents log injection via newlines and
// ANSI escape sequences.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, code, message string, details map[string]interface{}) {
	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Data:   nil,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// respondDatasetError maps pipeline errors to HTTP responses. Dataset
// validation failures carry user-facing messages verbatim; anything
// else is an internal error and the message is not exposed.
func respondDatasetError(w http.ResponseWriter, err error) {
	var verr *dataset.ValidationError
	if errors.As(err, &verr) {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", verr.Message, verr.Details)
		return
	}

	logging.Error().Err(err).Msg("Analysis pipeline failed")
	respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred", nil)
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes, or a models.APIError if validation fails.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}
